package calculator

import (
	"sort"

	"github.com/shopspring/decimal"
)

// SettlementMode selects which balance view feeds the simplifier.
type SettlementMode int

const (
	// PairwiseMode derives nets from the netted pairwise debt matrix.
	// This is the default: it preserves who-owes-whom detail before
	// collapsing, and stays correct when shares don't cover the amount.
	PairwiseMode SettlementMode = iota

	// NetMode feeds total net balances (paid minus owed) directly.
	// Simplified view; equivalent to PairwiseMode when every expense's
	// shares sum to its amount.
	NetMode
)

// Transaction is one recommended payment in a settlement plan.
type Transaction struct {
	From     string
	To       string
	Amount   decimal.Decimal
	Currency string
}

// side is one entry in the debtor or creditor worklist.
type side struct {
	id     string
	amount decimal.Decimal
}

// Plan produces the ordered list of transactions that settles the ledger
// under the given mode.
func (l *Ledger) Plan(mode SettlementMode) []Transaction {
	if mode == NetMode {
		return Simplify(l.NetBalances(), l.Order, l.DefaultCurrency)
	}
	return SimplifyPairwise(l.Pairwise, l.Order, l.DefaultCurrency)
}

// SimplifyPairwise nets the pairwise debt matrix, folds it into per-member
// balances and simplifies those.
func SimplifyPairwise(pairwise map[Pair]decimal.Decimal, order []string, currency string) []Transaction {
	return Simplify(NetFromPairwise(NetPairwise(pairwise)), order, currency)
}

// Simplify reduces signed net balances to an ordered list of transactions
// that drives every balance to within Epsilon of zero.
//
// Procedure: members within Epsilon of zero are already settled and
// excluded. Debtors and creditors are each sorted descending by magnitude,
// ties broken by position in order so equal amounts settle reproducibly.
// The largest remaining debtor pays the largest remaining creditor
// min(debt, credit); amounts are emitted rounded to two decimal places,
// half away from zero, and either side is dropped once its remainder falls
// below Epsilon. Accumulated rounding error is bounded by Epsilon times the
// smaller list's length.
//
// This is a greedy heuristic. It is optimal for the common two-sided case
// but does not always reach the theoretical minimum transaction count that
// exhaustive subset matching could find.
//
// An empty or fully settled input yields an empty list: "all settled" is a
// normal terminal state, not an error.
func Simplify(net map[string]decimal.Decimal, order []string, currency string) []Transaction {
	var debtors, creditors []side
	for _, id := range orderedIDs(net, order) {
		balance := net[id]
		switch {
		case balance.LessThan(Epsilon.Neg()):
			debtors = append(debtors, side{id: id, amount: balance.Neg()})
		case balance.GreaterThan(Epsilon):
			creditors = append(creditors, side{id: id, amount: balance})
		}
	}

	sort.SliceStable(debtors, func(i, j int) bool {
		return debtors[i].amount.GreaterThan(debtors[j].amount)
	})
	sort.SliceStable(creditors, func(i, j int) bool {
		return creditors[i].amount.GreaterThan(creditors[j].amount)
	})

	var plan []Transaction
	i, j := 0, 0
	for i < len(debtors) && j < len(creditors) {
		debtor := &debtors[i]
		creditor := &creditors[j]

		settle := decimal.Min(debtor.amount, creditor.amount)
		if settle.GreaterThan(Epsilon) {
			plan = append(plan, Transaction{
				From:     debtor.id,
				To:       creditor.id,
				Amount:   settle.Round(2),
				Currency: currency,
			})
		}

		debtor.amount = debtor.amount.Sub(settle)
		creditor.amount = creditor.amount.Sub(settle)

		if debtor.amount.LessThan(Epsilon) {
			i++
		}
		if creditor.amount.LessThan(Epsilon) {
			j++
		}
	}

	return plan
}

// orderedIDs returns the keys of net in roster order, with any members not
// present in the roster appended in lexical order so output stays
// deterministic regardless of map iteration.
func orderedIDs(net map[string]decimal.Decimal, order []string) []string {
	ids := make([]string, 0, len(net))
	seen := make(map[string]bool, len(net))
	for _, id := range order {
		if _, ok := net[id]; ok && !seen[id] {
			ids = append(ids, id)
			seen[id] = true
		}
	}

	var extra []string
	for id := range net {
		if !seen[id] {
			extra = append(extra, id)
		}
	}
	sort.Strings(extra)
	return append(ids, extra...)
}
