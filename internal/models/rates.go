package models

import "github.com/shopspring/decimal"

// RateTable is a snapshot of exchange rates anchored to a single base
// currency (the base has rate 1). It is supplied per computation and never
// mutated or cached by the engine; refreshing rates is an external concern.
type RateTable struct {
	// Base is the currency code all rates are expressed against.
	Base string

	// Rates maps a currency code to its value relative to Base.
	// Base itself should be present with rate 1.
	Rates map[string]decimal.Decimal
}

// Rate returns the rate for the given currency code and whether it is known.
func (t RateTable) Rate(code string) (decimal.Decimal, bool) {
	r, ok := t.Rates[code]
	return r, ok
}

// DefaultRates returns a static USD-anchored rate table. It exists so the
// demo CLI and tests have a usable snapshot without an external rate feed;
// production callers supply their own table per call.
func DefaultRates() RateTable {
	return RateTable{
		Base: "USD",
		Rates: map[string]decimal.Decimal{
			"USD": decimal.NewFromInt(1),
			"EUR": decimal.RequireFromString("0.93"),
			"GBP": decimal.RequireFromString("0.79"),
			"JPY": decimal.RequireFromString("150.14"),
			"CAD": decimal.RequireFromString("1.37"),
			"AUD": decimal.RequireFromString("1.53"),
			"INR": decimal.RequireFromString("83.11"),
			"CNY": decimal.RequireFromString("7.23"),
			"BRL": decimal.RequireFromString("5.05"),
			"RUB": decimal.RequireFromString("93.21"),
		},
	}
}
