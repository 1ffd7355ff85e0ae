package calculator

import (
	"github.com/shopspring/decimal"

	"github.com/renteduse/cost-collective-calc/internal/models"
)

// Epsilon is the tolerance below which a balance or transaction amount is
// treated as zero (one minor unit of the reporting currency).
var Epsilon = decimal.New(1, -2)

// ShareMode controls validation of participant share sums.
type ShareMode int

const (
	// LenientShares sums shares exactly as given, even when they under- or
	// over-cover the expense amount. Matches custom and partial splits;
	// any drift is the caller's responsibility.
	LenientShares ShareMode = iota

	// StrictShares rejects an expense with ShareSumError when the shares
	// differ from the amount by more than Epsilon.
	StrictShares
)

// Options configures ledger construction.
type Options struct {
	Conversion ConversionMode
	Shares     ShareMode
}

// Balance holds one member's totals in the group's default currency.
type Balance struct {
	MemberID string

	// Paid is the total this member paid out across all expenses.
	Paid decimal.Decimal

	// Owed is this member's total consumed share across all expenses,
	// including their share of expenses they paid for themselves.
	Owed decimal.Decimal

	// Net is Paid minus Owed. Positive means the member is owed money.
	Net decimal.Decimal
}

// Pair is a directed debtor -> creditor edge in the pairwise debt matrix.
type Pair struct {
	Debtor   string
	Creditor string
}

// Ledger is the result of folding a set of expenses into per-member totals
// and a netted pairwise debt matrix. It is a fresh value per computation;
// nothing is cached between calls.
type Ledger struct {
	// DefaultCurrency is the currency all amounts below are expressed in.
	DefaultCurrency string

	// Balances maps member ID to that member's totals.
	Balances map[string]*Balance

	// Pairwise maps a directed (debtor, creditor) pair to the net amount
	// owed. Only the net positive direction of each pair is kept.
	Pairwise map[Pair]decimal.Decimal

	// Order is the roster order the ledger was built with, used as the
	// deterministic tie-break when simplifying settlements.
	Order []string
}

// BuildLedger folds the given expenses into a Ledger, converting every
// amount and share into defaultCurrency.
//
// Accounting rules:
//   - The payer's Paid gets the full converted expense amount.
//   - Every participant's Owed gets their converted share, including the
//     payer's own share. Paid counts the whole outlay and Owed counts the
//     whole consumption, so net balances sum to zero whenever shares cover
//     the amount.
//   - Pairwise debt is recorded only for participants other than the payer
//     (paying for yourself is not a debt), netted against the reverse
//     direction as it accumulates.
//
// Validation failures (unknown member, invalid amount, strict-mode share or
// currency mismatches) abort the build; partial results are never returned.
func BuildLedger(expenses []models.Expense, roster []string, rates models.RateTable, defaultCurrency string, opts Options) (*Ledger, error) {
	ledger := &Ledger{
		DefaultCurrency: defaultCurrency,
		Balances:        make(map[string]*Balance, len(roster)),
		Pairwise:        make(map[Pair]decimal.Decimal),
		Order:           append([]string(nil), roster...),
	}
	for _, id := range roster {
		ledger.Balances[id] = &Balance{MemberID: id}
	}

	conv := NewConverter(rates, opts.Conversion)

	for i := range expenses {
		exp := &expenses[i]
		if err := validateExpense(exp, ledger.Balances, opts.Shares); err != nil {
			return nil, err
		}

		paid, err := conv.Convert(exp.Amount, exp.Currency, defaultCurrency)
		if err != nil {
			return nil, err
		}
		ledger.Balances[exp.PaidBy].Paid = ledger.Balances[exp.PaidBy].Paid.Add(paid)

		for _, share := range exp.Participants {
			owed, err := conv.Convert(share.Amount, exp.Currency, defaultCurrency)
			if err != nil {
				return nil, err
			}

			bal := ledger.Balances[share.MemberID]
			bal.Owed = bal.Owed.Add(owed)

			if share.MemberID != exp.PaidBy {
				addDebt(ledger.Pairwise, share.MemberID, exp.PaidBy, owed)
			}
		}
	}

	for _, bal := range ledger.Balances {
		bal.Net = bal.Paid.Sub(bal.Owed)
	}

	return ledger, nil
}

// validateExpense checks roster membership, amount signs and, under
// StrictShares, that the shares cover the amount within Epsilon.
func validateExpense(exp *models.Expense, balances map[string]*Balance, shares ShareMode) error {
	if _, ok := balances[exp.PaidBy]; !ok {
		return &UnknownMemberError{MemberID: exp.PaidBy, ExpenseID: exp.ID}
	}
	if exp.Amount.IsNegative() {
		return &InvalidAmountError{ExpenseID: exp.ID, Amount: exp.Amount}
	}
	for _, share := range exp.Participants {
		if _, ok := balances[share.MemberID]; !ok {
			return &UnknownMemberError{MemberID: share.MemberID, ExpenseID: exp.ID}
		}
		if share.Amount.IsNegative() {
			return &InvalidAmountError{ExpenseID: exp.ID, MemberID: share.MemberID, Amount: share.Amount}
		}
	}
	if shares == StrictShares {
		sum := exp.ShareSum()
		if sum.Sub(exp.Amount).Abs().GreaterThan(Epsilon) {
			return &ShareSumError{ExpenseID: exp.ID, Amount: exp.Amount, ShareSum: sum}
		}
	}
	return nil
}

// addDebt records debtor owing creditor amt, first offsetting any debt in
// the reverse direction so the matrix stays net and one-directional.
func addDebt(pairwise map[Pair]decimal.Decimal, debtor, creditor string, amt decimal.Decimal) {
	if amt.IsZero() {
		return
	}

	reverse := Pair{Debtor: creditor, Creditor: debtor}
	if rev, ok := pairwise[reverse]; ok {
		switch {
		case rev.GreaterThan(amt):
			pairwise[reverse] = rev.Sub(amt)
			return
		case rev.Equal(amt):
			delete(pairwise, reverse)
			return
		default:
			delete(pairwise, reverse)
			amt = amt.Sub(rev)
		}
	}

	forward := Pair{Debtor: debtor, Creditor: creditor}
	pairwise[forward] = pairwise[forward].Add(amt)
}
