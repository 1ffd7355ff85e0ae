package models

import "github.com/shopspring/decimal"

// Split types for an expense. The engine does not re-derive shares from the
// split type; shares arrive already computed by the expense-entry workflow.
const (
	SplitEqual  = "equal"
	SplitCustom = "custom"
)

// Share is one participant's portion of an expense, in the expense's currency.
type Share struct {
	// MemberID references the participating member.
	MemberID string

	// Amount is this participant's share. Non-negative.
	Amount decimal.Decimal
}

// Expense represents a single expense record. Once read by the engine it is
// immutable: every computation works on a snapshot.
type Expense struct {
	// ID is the unique identifier for the expense (UUID format).
	ID string

	// GroupID is the group this expense belongs to.
	GroupID string

	// Description is the human-readable label (e.g., "Dinner", "Fuel").
	Description string

	// Amount is the total paid, in Currency. Positive.
	Amount decimal.Decimal

	// Currency is the ISO-style code the expense was paid in. It does not
	// have to match the group's default currency.
	Currency string

	// PaidBy is the member ID of the payer.
	PaidBy string

	// SplitType records how the shares were derived (equal or custom).
	// Informational only; the engine sums Participants as given.
	SplitType string

	// Participants lists each member's share of the expense, in the
	// expense's currency. The payer may appear here like anyone else.
	Participants []Share

	// Notes is free-form text attached by the creator.
	Notes string

	// Date is the Unix timestamp of when the expense occurred.
	Date int64

	// CreatedAt is the Unix timestamp when the record was created.
	CreatedAt int64
}

// ShareSum returns the sum of all participant shares, in the expense's
// currency. Whether this must equal Amount is a validation-mode decision
// made by the caller, not a model invariant.
func (e *Expense) ShareSum() decimal.Decimal {
	sum := decimal.Zero
	for _, p := range e.Participants {
		sum = sum.Add(p.Amount)
	}
	return sum
}
