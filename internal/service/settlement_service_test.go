package service

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/renteduse/cost-collective-calc/internal/calculator"
	"github.com/renteduse/cost-collective-calc/internal/models"
	"github.com/renteduse/cost-collective-calc/internal/storage/sqlite"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func newTestService(t *testing.T) (*SettlementService, *sqlite.SQLiteStore) {
	t.Helper()
	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	svc := NewSettlementService(store, models.DefaultRates(), calculator.Options{}, calculator.PairwiseMode)
	return svc, store
}

func seedGroup(t *testing.T, store *sqlite.SQLiteStore, names ...string) *models.Group {
	t.Helper()
	group := &models.Group{Name: "Trip", DefaultCurrency: "USD"}
	for _, name := range names {
		group.Members = append(group.Members, models.Member{Name: name})
	}
	require.NoError(t, store.CreateGroup(context.Background(), group))
	return group
}

func equalShares(amount string, memberIDs ...string) []models.Share {
	shares := make([]models.Share, len(memberIDs))
	for i, id := range memberIDs {
		shares[i] = models.Share{MemberID: id, Amount: dec(amount)}
	}
	return shares
}

func TestComputeGroup(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()
	group := seedGroup(t, store, "Alice", "Bob", "Carol")
	alice, bob, carol := group.Members[0].ID, group.Members[1].ID, group.Members[2].ID

	require.NoError(t, svc.AddExpense(ctx, &models.Expense{
		GroupID: group.ID, Description: "Hotel", Amount: dec("90"), Currency: "USD",
		PaidBy: alice, Participants: equalShares("30", alice, bob, carol),
	}))
	require.NoError(t, svc.AddExpense(ctx, &models.Expense{
		GroupID: group.ID, Description: "Dinner", Amount: dec("30"), Currency: "USD",
		PaidBy: bob, Participants: equalShares("10", alice, bob, carol),
	}))

	result, err := svc.ComputeGroup(ctx, group.ID)
	require.NoError(t, err)

	require.Len(t, result.Balances, 3)
	assert.Equal(t, "Alice", result.Balances[0].Member.Name)
	assert.True(t, result.Balances[0].Net.Equal(dec("50")), "alice net = %s", result.Balances[0].Net)
	assert.True(t, result.Balances[1].Net.Equal(dec("-10")), "bob net = %s", result.Balances[1].Net)
	assert.True(t, result.Balances[2].Net.Equal(dec("-40")), "carol net = %s", result.Balances[2].Net)

	require.Len(t, result.Plan, 2)
	assert.Equal(t, carol, result.Plan[0].From)
	assert.Equal(t, alice, result.Plan[0].To)
	assert.True(t, result.Plan[0].Amount.Equal(dec("40")))
	assert.Equal(t, bob, result.Plan[1].From)
	assert.True(t, result.Plan[1].Amount.Equal(dec("10")))
	assert.Equal(t, "USD", result.Plan[0].Currency)
}

func TestComputeGroupCrossCurrency(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()
	group := seedGroup(t, store, "Alice", "Bob")
	alice, bob := group.Members[0].ID, group.Members[1].ID

	// 93 EUR at 0.93 EUR/USD is exactly 100 USD.
	require.NoError(t, svc.AddExpense(ctx, &models.Expense{
		GroupID: group.ID, Description: "Train", Amount: dec("93"), Currency: "EUR",
		PaidBy: alice, Participants: equalShares("46.5", alice, bob),
	}))

	result, err := svc.ComputeGroup(ctx, group.ID)
	require.NoError(t, err)

	require.Len(t, result.Plan, 1)
	assert.Equal(t, bob, result.Plan[0].From)
	assert.True(t, result.Plan[0].Amount.Equal(dec("50")), "amount = %s", result.Plan[0].Amount)
	assert.Equal(t, "USD", result.Plan[0].Currency)
}

func TestComputeGroupEmpty(t *testing.T) {
	svc, store := newTestService(t)
	group := seedGroup(t, store, "Alice", "Bob")

	result, err := svc.ComputeGroup(context.Background(), group.ID)
	require.NoError(t, err)
	assert.Empty(t, result.Plan)
	for _, bal := range result.Balances {
		assert.True(t, bal.Net.IsZero())
	}
}

func TestAddExpenseValidation(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()
	group := seedGroup(t, store, "Alice", "Bob")
	alice := group.Members[0].ID

	t.Run("unknown payer", func(t *testing.T) {
		err := svc.AddExpense(ctx, &models.Expense{
			GroupID: group.ID, Amount: dec("10"), Currency: "USD", PaidBy: "stranger",
			Participants: equalShares("10", alice),
		})
		var memberErr *calculator.UnknownMemberError
		require.ErrorAs(t, err, &memberErr)
		assert.Equal(t, "stranger", memberErr.MemberID)
	})

	t.Run("unknown participant", func(t *testing.T) {
		err := svc.AddExpense(ctx, &models.Expense{
			GroupID: group.ID, Amount: dec("10"), Currency: "USD", PaidBy: alice,
			Participants: equalShares("10", "stranger"),
		})
		var memberErr *calculator.UnknownMemberError
		require.ErrorAs(t, err, &memberErr)
	})

	t.Run("negative amount", func(t *testing.T) {
		err := svc.AddExpense(ctx, &models.Expense{
			GroupID: group.ID, Amount: dec("-10"), Currency: "USD", PaidBy: alice,
			Participants: equalShares("10", alice),
		})
		var amountErr *calculator.InvalidAmountError
		require.ErrorAs(t, err, &amountErr)
	})

	t.Run("nothing invalid was persisted", func(t *testing.T) {
		result, err := svc.ComputeGroup(ctx, group.ID)
		require.NoError(t, err)
		assert.Empty(t, result.Plan)
	})
}

func TestComputeGroups(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	var ids []string
	for i := 0; i < 5; i++ {
		group := seedGroup(t, store, "Alice", "Bob")
		alice, bob := group.Members[0].ID, group.Members[1].ID
		require.NoError(t, svc.AddExpense(ctx, &models.Expense{
			GroupID: group.ID, Amount: dec("100"), Currency: "USD",
			PaidBy: alice, Participants: equalShares("50", alice, bob),
		}))
		ids = append(ids, group.ID)
	}

	results, err := svc.ComputeGroups(ctx, ids)
	require.NoError(t, err)
	require.Len(t, results, 5)
	for i, result := range results {
		assert.Equal(t, ids[i], result.Group.ID)
		require.Len(t, result.Plan, 1)
		assert.True(t, result.Plan[0].Amount.Equal(dec("50")))
	}

	t.Run("missing group fails the batch", func(t *testing.T) {
		_, err := svc.ComputeGroups(ctx, append(ids, "nonexistent-id"))
		assert.Error(t, err)
	})
}

func TestRecordPlanAndMarkSettled(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()
	group := seedGroup(t, store, "Alice", "Bob")
	alice, bob := group.Members[0].ID, group.Members[1].ID

	require.NoError(t, svc.AddExpense(ctx, &models.Expense{
		GroupID: group.ID, Amount: dec("100"), Currency: "USD",
		PaidBy: alice, Participants: equalShares("50", alice, bob),
	}))

	result, err := svc.ComputeGroup(ctx, group.ID)
	require.NoError(t, err)

	recorded, err := svc.RecordPlan(ctx, result, "june trip")
	require.NoError(t, err)
	require.Len(t, recorded, 1)
	assert.Equal(t, bob, recorded[0].FromMemberID)
	assert.Equal(t, alice, recorded[0].ToMemberID)
	assert.False(t, recorded[0].Settled)

	require.NoError(t, svc.MarkSettled(ctx, recorded[0].ID))

	settlements, err := store.ListSettlementsByGroup(ctx, group.ID)
	require.NoError(t, err)
	require.Len(t, settlements, 1)
	assert.True(t, settlements[0].Settled)
	assert.Equal(t, "june trip", settlements[0].Note)

	// Marking settled is bookkeeping only: recomputation still sees the
	// original expense snapshot.
	again, err := svc.ComputeGroup(ctx, group.ID)
	require.NoError(t, err)
	require.Len(t, again.Plan, 1)
}

func TestRecordPlanEmpty(t *testing.T) {
	svc, store := newTestService(t)
	group := seedGroup(t, store, "Alice")

	result, err := svc.ComputeGroup(context.Background(), group.ID)
	require.NoError(t, err)

	recorded, err := svc.RecordPlan(context.Background(), result, "")
	require.NoError(t, err)
	assert.Empty(t, recorded)
}

func TestComputeGroupStrictCurrency(t *testing.T) {
	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	// Rate table without EUR: strict mode must surface the typed error.
	rates := models.RateTable{Base: "USD", Rates: map[string]decimal.Decimal{"USD": dec("1")}}
	svc := NewSettlementService(store, rates, calculator.Options{Conversion: calculator.StrictConversion}, calculator.PairwiseMode)

	group := seedGroup(t, store, "Alice", "Bob")
	alice, bob := group.Members[0].ID, group.Members[1].ID
	ctx := context.Background()

	require.NoError(t, svc.AddExpense(ctx, &models.Expense{
		GroupID: group.ID, Amount: dec("10"), Currency: "EUR",
		PaidBy: alice, Participants: equalShares("5", alice, bob),
	}))

	_, err = svc.ComputeGroup(ctx, group.ID)
	var currErr *calculator.UnknownCurrencyError
	require.True(t, errors.As(err, &currErr), "error = %v", err)
	assert.Equal(t, "EUR", currErr.Code)
}
