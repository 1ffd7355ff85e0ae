package calculator

import "github.com/shopspring/decimal"

// NetBalances reduces the ledger to one signed net balance per member:
// paid minus owed, positive meaning the member is owed money.
func (l *Ledger) NetBalances() map[string]decimal.Decimal {
	net := make(map[string]decimal.Decimal, len(l.Balances))
	for id, bal := range l.Balances {
		net[id] = bal.Paid.Sub(bal.Owed)
	}
	return net
}

// NetPairwise collapses any residual two-directional entries into a single
// net direction. BuildLedger already nets as it accumulates, but pairwise
// maps assembled elsewhere (or merged from several ledgers) can carry both
// debt[a][b] and debt[b][a]; only the net positive direction survives.
func NetPairwise(pairwise map[Pair]decimal.Decimal) map[Pair]decimal.Decimal {
	net := make(map[Pair]decimal.Decimal, len(pairwise))
	for pair, amt := range pairwise {
		reverse := Pair{Debtor: pair.Creditor, Creditor: pair.Debtor}
		if _, seen := net[pair]; seen {
			continue
		}
		if _, seen := net[reverse]; seen {
			continue
		}

		balance := amt.Sub(pairwise[reverse])
		switch {
		case balance.IsPositive():
			net[pair] = balance
		case balance.IsNegative():
			net[reverse] = balance.Neg()
		}
	}
	return net
}

// NetFromPairwise derives each member's signed net balance from a netted
// pairwise debt matrix: creditors accumulate what they are owed, debtors
// what they owe. This is the canonical simplifier input, since it preserves
// who-owes-whom detail up to the last step.
func NetFromPairwise(pairwise map[Pair]decimal.Decimal) map[string]decimal.Decimal {
	net := make(map[string]decimal.Decimal)
	for pair, amt := range pairwise {
		net[pair.Debtor] = net[pair.Debtor].Sub(amt)
		net[pair.Creditor] = net[pair.Creditor].Add(amt)
	}
	return net
}
