package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/renteduse/cost-collective-calc/internal/models"
)

// CreateExpense persists a new expense record with its participant shares.
func (s *SQLiteStore) CreateExpense(ctx context.Context, expense *models.Expense) error {
	if expense.ID == "" {
		expense.ID = uuid.New().String()
	}
	if expense.CreatedAt == 0 {
		expense.CreatedAt = time.Now().Unix()
	}
	if expense.Date == 0 {
		expense.Date = expense.CreatedAt
	}
	if expense.SplitType == "" {
		expense.SplitType = models.SplitEqual
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO expenses (id, group_id, description, amount, currency, paid_by, split_type, notes, date, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		expense.ID, expense.GroupID, expense.Description, expense.Amount.String(), expense.Currency,
		expense.PaidBy, expense.SplitType, expense.Notes, expense.Date, expense.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert expense: %w", err)
	}

	for _, share := range expense.Participants {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO expense_shares (expense_id, member_id, amount) VALUES (?, ?, ?)",
			expense.ID, share.MemberID, share.Amount.String(),
		)
		if err != nil {
			return fmt.Errorf("failed to insert share: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// ListExpensesByGroup retrieves all expenses for a group, newest first,
// including participant shares in insertion order.
func (s *SQLiteStore) ListExpensesByGroup(ctx context.Context, groupID string) ([]models.Expense, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, group_id, description, amount, currency, paid_by, split_type, notes, date, created_at
		 FROM expenses WHERE group_id = ? ORDER BY date DESC, created_at DESC`,
		groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	var expenses []models.Expense
	for rows.Next() {
		var exp models.Expense
		var amount string
		if err := rows.Scan(&exp.ID, &exp.GroupID, &exp.Description, &amount, &exp.Currency,
			&exp.PaidBy, &exp.SplitType, &exp.Notes, &exp.Date, &exp.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		exp.Amount, err = decimal.NewFromString(amount)
		if err != nil {
			return nil, fmt.Errorf("failed to parse expense amount %q: %w", amount, err)
		}
		expenses = append(expenses, exp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expenses: %w", err)
	}

	for i := range expenses {
		shares, err := s.listShares(ctx, expenses[i].ID)
		if err != nil {
			return nil, err
		}
		expenses[i].Participants = shares
	}

	return expenses, nil
}

func (s *SQLiteStore) listShares(ctx context.Context, expenseID string) ([]models.Share, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT member_id, amount FROM expense_shares WHERE expense_id = ? ORDER BY rowid",
		expenseID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get shares: %w", err)
	}
	defer rows.Close()

	var shares []models.Share
	for rows.Next() {
		var share models.Share
		var amount string
		if err := rows.Scan(&share.MemberID, &amount); err != nil {
			return nil, fmt.Errorf("failed to scan share: %w", err)
		}
		share.Amount, err = decimal.NewFromString(amount)
		if err != nil {
			return nil, fmt.Errorf("failed to parse share amount %q: %w", amount, err)
		}
		shares = append(shares, share)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate shares: %w", err)
	}

	return shares, nil
}

// DeleteExpense removes an expense; its shares cascade.
func (s *SQLiteStore) DeleteExpense(ctx context.Context, expenseID string) error {
	var exists int
	err := s.db.QueryRowContext(ctx, "SELECT 1 FROM expenses WHERE id = ?", expenseID).Scan(&exists)
	if err == sql.ErrNoRows {
		return fmt.Errorf("expense not found: %s", expenseID)
	}
	if err != nil {
		return fmt.Errorf("failed to check expense existence: %w", err)
	}

	_, err = s.db.ExecContext(ctx, "DELETE FROM expenses WHERE id = ?", expenseID)
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}

	return nil
}
