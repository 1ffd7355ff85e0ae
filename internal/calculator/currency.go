// Package calculator implements the ledger and settlement engine: currency
// normalization, per-member and pairwise balance derivation, and greedy
// settlement simplification.
//
// Every entry point is a pure function over an immutable snapshot of
// expenses and rates. Nothing in this package holds state across calls, so
// computations for different groups (or repeated computations for the same
// group) can run fully in parallel.
package calculator

import (
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/renteduse/cost-collective-calc/internal/models"
)

// ConversionMode controls what happens when a currency code is missing from
// the rate table.
type ConversionMode int

const (
	// StrictConversion aborts the computation with UnknownCurrencyError.
	// This is the default: silently keeping the unconverted amount corrupts
	// cross-currency totals.
	StrictConversion ConversionMode = iota

	// LenientConversion logs a warning and passes the amount through
	// unconverted. Callers that prefer degraded output over a failed
	// request opt into this.
	LenientConversion
)

// Converter converts monetary amounts between currencies using a rate table
// anchored to one base currency. The table is treated as a read-only
// snapshot; Converter never mutates it.
type Converter struct {
	table models.RateTable
	mode  ConversionMode
}

// NewConverter returns a Converter over the given rate snapshot.
func NewConverter(table models.RateTable, mode ConversionMode) *Converter {
	return &Converter{table: table, mode: mode}
}

// Convert converts amount from one currency code to another via the base
// currency. Equal currency codes and zero amounts are returned unchanged
// without touching the table.
func (c *Converter) Convert(amount decimal.Decimal, from, to string) (decimal.Decimal, error) {
	if from == to || amount.IsZero() {
		return amount, nil
	}

	fromRate, ok := c.table.Rate(from)
	if !ok {
		return c.unknown(amount, from)
	}
	toRate, ok := c.table.Rate(to)
	if !ok {
		return c.unknown(amount, to)
	}

	inBase := amount
	if from != c.table.Base {
		inBase = amount.Div(fromRate)
	}
	if to == c.table.Base {
		return inBase, nil
	}
	return inBase.Mul(toRate), nil
}

func (c *Converter) unknown(amount decimal.Decimal, code string) (decimal.Decimal, error) {
	if c.mode == LenientConversion {
		slog.Warn("currency rate not found, returning amount unconverted", "currency", code)
		return amount, nil
	}
	return decimal.Zero, &UnknownCurrencyError{Code: code}
}
