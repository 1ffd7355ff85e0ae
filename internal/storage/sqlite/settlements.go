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

// RecordSettlements persists a computed settlement plan as unsettled rows.
// All rows are written in one transaction so a plan is recorded whole or
// not at all.
func (s *SQLiteStore) RecordSettlements(ctx context.Context, settlements []*models.Settlement) error {
	if len(settlements) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().Unix()
	for _, settlement := range settlements {
		if settlement.ID == "" {
			settlement.ID = uuid.New().String()
		}
		if settlement.CreatedAt == 0 {
			settlement.CreatedAt = now
		}

		var note interface{}
		if settlement.Note != "" {
			note = settlement.Note
		}

		_, err = tx.ExecContext(ctx,
			`INSERT INTO settlements (id, group_id, from_member_id, to_member_id, amount, currency, settled, settled_at, created_at, note)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			settlement.ID, settlement.GroupID, settlement.FromMemberID, settlement.ToMemberID,
			settlement.Amount.String(), settlement.Currency, boolToInt(settlement.Settled),
			settlement.SettledAt, settlement.CreatedAt, note,
		)
		if err != nil {
			return fmt.Errorf("failed to insert settlement: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// ListSettlementsByGroup retrieves all recorded settlements for a group,
// newest first.
func (s *SQLiteStore) ListSettlementsByGroup(ctx context.Context, groupID string) ([]*models.Settlement, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, group_id, from_member_id, to_member_id, amount, currency, settled, settled_at, created_at, note
		 FROM settlements WHERE group_id = ? ORDER BY created_at DESC, rowid DESC`,
		groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list settlements by group: %w", err)
	}
	defer rows.Close()

	var settlements []*models.Settlement
	for rows.Next() {
		settlement := &models.Settlement{}
		var amount string
		var settled int
		var note sql.NullString

		if err := rows.Scan(&settlement.ID, &settlement.GroupID, &settlement.FromMemberID, &settlement.ToMemberID,
			&amount, &settlement.Currency, &settled, &settlement.SettledAt, &settlement.CreatedAt, &note); err != nil {
			return nil, fmt.Errorf("failed to scan settlement: %w", err)
		}

		settlement.Amount, err = decimal.NewFromString(amount)
		if err != nil {
			return nil, fmt.Errorf("failed to parse settlement amount %q: %w", amount, err)
		}
		settlement.Settled = settled != 0
		if note.Valid {
			settlement.Note = note.String
		}

		settlements = append(settlements, settlement)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate settlements: %w", err)
	}

	return settlements, nil
}

// MarkSettlementSettled flips the settled flag and stamps the time.
func (s *SQLiteStore) MarkSettlementSettled(ctx context.Context, settlementID string) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE settlements SET settled = 1, settled_at = ? WHERE id = ?",
		time.Now().Unix(), settlementID,
	)
	if err != nil {
		return fmt.Errorf("failed to mark settlement settled: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check settlement update: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("settlement not found: %s", settlementID)
	}

	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
