// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"

	"github.com/renteduse/cost-collective-calc/internal/models"
)

// Store defines the interface for group, expense and settlement storage.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL,
// etc.) without changing the service layer. The settlement engine itself
// never touches a Store: it only sees the snapshots the service loads.
type Store interface {
	// CreateGroup persists a new group including its roster.
	// The group.ID field will be populated by the store when empty.
	CreateGroup(ctx context.Context, group *models.Group) error

	// GetGroup retrieves a group with its roster in insertion order.
	GetGroup(ctx context.Context, groupID string) (*models.Group, error)

	// AddGroupMembers appends members to a group's roster.
	AddGroupMembers(ctx context.Context, groupID string, members []models.Member) error

	// CreateExpense persists a new expense record with its shares.
	CreateExpense(ctx context.Context, expense *models.Expense) error

	// ListExpensesByGroup retrieves all expenses for a group, newest first.
	ListExpensesByGroup(ctx context.Context, groupID string) ([]models.Expense, error)

	// DeleteExpense removes an expense and its shares.
	DeleteExpense(ctx context.Context, expenseID string) error

	// RecordSettlements persists a computed settlement plan as unsettled rows.
	RecordSettlements(ctx context.Context, settlements []*models.Settlement) error

	// ListSettlementsByGroup retrieves all recorded settlements for a group,
	// newest first.
	ListSettlementsByGroup(ctx context.Context, groupID string) ([]*models.Settlement, error)

	// MarkSettlementSettled flips the settled flag and stamps SettledAt.
	// Recorded settlements are a lifecycle convenience only; balance
	// computation always starts from the expense snapshot.
	MarkSettlementSettled(ctx context.Context, settlementID string) error

	// Close releases any resources held by the store.
	Close() error
}
