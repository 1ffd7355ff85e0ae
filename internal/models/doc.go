// Package models defines the core domain models for the ledger and
// settlement engine.
//
// # Current Models
//
//   - Member: a person in a group roster
//   - Group: a shared-expense group with a roster and a default currency
//   - Expense: an expense record with payer, currency and participant shares
//   - RateTable: a snapshot of exchange rates anchored to one base currency
//   - Settlement: a recommended (and optionally recorded) payment between members
//
// # Design Principles
//
//  1. Models are plain data: no behavior beyond trivial helpers, no
//     references back into services or storage.
//  2. Relationships use ID strings instead of pointers to avoid circular
//     references.
//  3. Monetary values are decimal.Decimal, never float64. Settlement math
//     accumulates too much error on binary floats to compare against the
//     0.01 epsilon reliably.
//  4. The engine treats every model it receives as an immutable snapshot.
//     RateTable in particular is a value passed per computation; rate refresh
//     is the currency-data provider's job, not the engine's.
package models
