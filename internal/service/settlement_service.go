// Package service orchestrates the settlement engine over stored groups and
// expenses. It is the collaborator layer around the pure calculator: it
// loads snapshots, runs computations, and optionally records the resulting
// plan for lifecycle tracking.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/renteduse/cost-collective-calc/internal/calculator"
	"github.com/renteduse/cost-collective-calc/internal/models"
	"github.com/renteduse/cost-collective-calc/internal/storage"
)

// MemberBalance pairs a roster member with their computed totals in the
// group's default currency.
type MemberBalance struct {
	Member models.Member
	Paid   decimal.Decimal
	Owed   decimal.Decimal
	Net    decimal.Decimal
}

// Result is one group's computed balances and settlement plan. It is a
// snapshot: recomputing after any expense change produces a fresh Result.
type Result struct {
	Group    *models.Group
	Balances []MemberBalance // roster order
	Plan     []calculator.Transaction
}

// SettlementService computes balances and settlement plans for groups.
// Each computation receives its own snapshot of expenses and rates, so
// calls for different groups can run concurrently without coordination.
type SettlementService struct {
	store storage.Store
	rates models.RateTable
	opts  calculator.Options
	mode  calculator.SettlementMode
}

// NewSettlementService creates a service over the given store and rate
// snapshot.
func NewSettlementService(store storage.Store, rates models.RateTable, opts calculator.Options, mode calculator.SettlementMode) *SettlementService {
	return &SettlementService{store: store, rates: rates, opts: opts, mode: mode}
}

// AddExpense validates an expense against its group's roster and persists
// it. Validation failures surface the calculator's typed errors so callers
// can distinguish an unknown member from a storage fault.
func (s *SettlementService) AddExpense(ctx context.Context, expense *models.Expense) error {
	group, err := s.store.GetGroup(ctx, expense.GroupID)
	if err != nil {
		return fmt.Errorf("failed to load group: %w", err)
	}

	if !group.HasMember(expense.PaidBy) {
		return &calculator.UnknownMemberError{MemberID: expense.PaidBy, ExpenseID: expense.ID}
	}
	for _, share := range expense.Participants {
		if !group.HasMember(share.MemberID) {
			return &calculator.UnknownMemberError{MemberID: share.MemberID, ExpenseID: expense.ID}
		}
		if share.Amount.IsNegative() {
			return &calculator.InvalidAmountError{ExpenseID: expense.ID, MemberID: share.MemberID, Amount: share.Amount}
		}
	}
	if expense.Amount.IsNegative() {
		return &calculator.InvalidAmountError{ExpenseID: expense.ID, Amount: expense.Amount}
	}

	if err := s.store.CreateExpense(ctx, expense); err != nil {
		return fmt.Errorf("failed to store expense: %w", err)
	}

	slog.Info("Expense added", "expense_id", expense.ID, "group_id", expense.GroupID,
		"amount", expense.Amount, "currency", expense.Currency)
	return nil
}

// ComputeGroup loads a group's expense snapshot, builds the ledger and
// returns balances plus the simplified settlement plan.
func (s *SettlementService) ComputeGroup(ctx context.Context, groupID string) (*Result, error) {
	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to load group: %w", err)
	}

	expenses, err := s.store.ListExpensesByGroup(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to load expenses: %w", err)
	}

	start := time.Now()
	ledger, err := calculator.BuildLedger(expenses, group.MemberIDs(), s.rates, group.DefaultCurrency, s.opts)
	if err != nil {
		computationsTotal.WithLabelValues("error").Inc()
		return nil, err
	}
	plan := ledger.Plan(s.mode)

	computationsTotal.WithLabelValues("ok").Inc()
	computeDuration.Observe(time.Since(start).Seconds())
	planTransactions.Observe(float64(len(plan)))

	balances := make([]MemberBalance, 0, len(group.Members))
	for _, member := range group.Members {
		bal := ledger.Balances[member.ID]
		balances = append(balances, MemberBalance{
			Member: member,
			Paid:   bal.Paid,
			Owed:   bal.Owed,
			Net:    bal.Net,
		})
	}

	slog.Debug("Group settlement computed", "group_id", groupID,
		"expenses", len(expenses), "transactions", len(plan))

	return &Result{Group: group, Balances: balances, Plan: plan}, nil
}

// ComputeGroups computes settlements for several groups concurrently.
// The engine is pure, so the only shared resource is the store; each
// goroutine works on its own snapshot. The first error cancels the rest.
func (s *SettlementService) ComputeGroups(ctx context.Context, groupIDs []string) ([]*Result, error) {
	results := make([]*Result, len(groupIDs))

	g, ctx := errgroup.WithContext(ctx)
	for i, groupID := range groupIDs {
		i, groupID := i, groupID
		g.Go(func() error {
			result, err := s.ComputeGroup(ctx, groupID)
			if err != nil {
				return err
			}
			results[i] = result
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}

// RecordPlan persists a computed plan as unsettled settlement rows and
// returns them. Recording is optional bookkeeping for the surrounding
// product; it never feeds back into balance computation.
func (s *SettlementService) RecordPlan(ctx context.Context, result *Result, note string) ([]*models.Settlement, error) {
	if len(result.Plan) == 0 {
		return nil, nil
	}

	settlements := make([]*models.Settlement, len(result.Plan))
	for i, tx := range result.Plan {
		settlements[i] = &models.Settlement{
			GroupID:      result.Group.ID,
			FromMemberID: tx.From,
			ToMemberID:   tx.To,
			Amount:       tx.Amount,
			Currency:     tx.Currency,
			Note:         note,
		}
	}

	if err := s.store.RecordSettlements(ctx, settlements); err != nil {
		return nil, fmt.Errorf("failed to record plan: %w", err)
	}

	slog.Info("Settlement plan recorded", "group_id", result.Group.ID, "transactions", len(settlements))
	return settlements, nil
}

// MarkSettled flags a recorded settlement as paid.
func (s *SettlementService) MarkSettled(ctx context.Context, settlementID string) error {
	if err := s.store.MarkSettlementSettled(ctx, settlementID); err != nil {
		return err
	}
	slog.Info("Settlement marked as settled", "settlement_id", settlementID)
	return nil
}
