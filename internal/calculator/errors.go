package calculator

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// UnknownCurrencyError reports a currency code missing from the rate table.
type UnknownCurrencyError struct {
	Code string
}

func (e *UnknownCurrencyError) Error() string {
	return fmt.Sprintf("unknown currency: no rate for %q", e.Code)
}

// UnknownMemberError reports an expense referencing a member that is not in
// the supplied roster. These are never silently dropped: a missing member
// changes the settlement math, so the caller has to decide what to do.
type UnknownMemberError struct {
	MemberID  string
	ExpenseID string
}

func (e *UnknownMemberError) Error() string {
	return fmt.Sprintf("unknown member %q referenced by expense %q", e.MemberID, e.ExpenseID)
}

// InvalidAmountError reports a negative expense amount or participant share.
// MemberID is empty when the expense total itself is invalid.
type InvalidAmountError struct {
	ExpenseID string
	MemberID  string
	Amount    decimal.Decimal
}

func (e *InvalidAmountError) Error() string {
	if e.MemberID != "" {
		return fmt.Sprintf("invalid share %s for member %q in expense %q", e.Amount, e.MemberID, e.ExpenseID)
	}
	return fmt.Sprintf("invalid amount %s in expense %q", e.Amount, e.ExpenseID)
}

// ShareSumError reports an expense whose participant shares do not add up to
// its amount. Only returned under StrictShares; the lenient default sums
// shares as given, mirroring real-world partial and custom splits.
type ShareSumError struct {
	ExpenseID string
	Amount    decimal.Decimal
	ShareSum  decimal.Decimal
}

func (e *ShareSumError) Error() string {
	return fmt.Sprintf("expense %q shares sum to %s, amount is %s", e.ExpenseID, e.ShareSum, e.Amount)
}
