package models

import "github.com/shopspring/decimal"

// Settlement represents a payment between group members to clear debts.
// The engine emits these as recommendations; the surrounding layer may
// persist them and track whether the payment actually happened. Marking a
// settlement as settled never feeds back into balance computation, which is
// always a fresh function of the expense snapshot.
type Settlement struct {
	// ID is the unique identifier for the settlement (UUID format).
	ID string

	// GroupID is the group this settlement belongs to.
	GroupID string

	// FromMemberID is the debtor making the payment.
	FromMemberID string

	// ToMemberID is the creditor receiving the payment.
	ToMemberID string

	// Amount is the payment amount, in Currency.
	Amount decimal.Decimal

	// Currency is the group's default currency at the time the plan was
	// computed.
	Currency string

	// Settled reports whether the payment has been confirmed.
	Settled bool

	// SettledAt is the Unix timestamp when the payment was confirmed,
	// zero while unsettled.
	SettledAt int64

	// CreatedAt is the Unix timestamp when the settlement was recorded.
	CreatedAt int64

	// Note is an optional description.
	Note string
}
