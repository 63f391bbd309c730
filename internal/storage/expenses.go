package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/hizkiajonathanbudiana/Tracker-Money/internal/core"
)

const expenseColumns = `id, owner_id, amount_cents, category, occurred_on, recorded_at, notes, cash_usage`

func (r *SQLiteRepository) CreateExpense(ctx context.Context, e core.Expense) error {
	usage, err := marshalUsage(e.CashUsage)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO expenses (`+expenseColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.OwnerID, e.Amount.Cents, e.Category, e.OccurredAt.Key(), e.RecordedAt, e.Notes, usage)
	if err != nil {
		return fmt.Errorf("create expense: %w", err)
	}

	slog.InfoContext(ctx, "Expense saved",
		"id", e.ID,
		"owner_id", e.OwnerID,
		"amount_cents", e.Amount.Cents,
		"category", e.Category,
		"occurred_on", e.OccurredAt.Key())
	return nil
}

func (r *SQLiteRepository) UpdateExpense(ctx context.Context, e core.Expense) error {
	usage, err := marshalUsage(e.CashUsage)
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx,
		`UPDATE expenses SET amount_cents = ?, category = ?, occurred_on = ?, notes = ?, cash_usage = ?
		 WHERE id = ? AND owner_id = ?`,
		e.Amount.Cents, e.Category, e.OccurredAt.Key(), e.Notes, usage, e.ID, e.OwnerID)
	if err != nil {
		return fmt.Errorf("update expense: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *SQLiteRepository) DeleteExpense(ctx context.Context, ownerID, id string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM expenses WHERE id = ? AND owner_id = ?`, id, ownerID)
	if err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *SQLiteRepository) GetExpense(ctx context.Context, ownerID, id string) (core.Expense, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+expenseColumns+` FROM expenses WHERE id = ? AND owner_id = ?`, id, ownerID)
	e, err := scanExpense(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Expense{}, ErrNotFound
	}
	return e, err
}

// ListExpenses returns every expense of one owner, newest recording first,
// matching the live subscription ordering of the original client.
func (r *SQLiteRepository) ListExpenses(ctx context.Context, ownerID string) ([]core.Expense, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+expenseColumns+` FROM expenses WHERE owner_id = ? ORDER BY recorded_at DESC, id`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	defer rows.Close()

	var expenses []core.Expense
	for rows.Next() {
		e, err := scanExpense(rows.Scan)
		if err != nil {
			return nil, err
		}
		expenses = append(expenses, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	return expenses, nil
}

func scanExpense(scan func(dest ...any) error) (core.Expense, error) {
	var (
		e          core.Expense
		occurredOn string
		usage      string
	)
	err := scan(&e.ID, &e.OwnerID, &e.Amount.Cents, &e.Category, &occurredOn, &e.RecordedAt, &e.Notes, &usage)
	if err != nil {
		return core.Expense{}, err
	}

	day, err := time.Parse("2006-01-02", occurredOn)
	if err != nil {
		return core.Expense{}, fmt.Errorf("parse occurred_on %q: %w", occurredOn, err)
	}
	e.OccurredAt = core.DateOf(day)

	if usage != "" && usage != "{}" {
		if err := json.Unmarshal([]byte(usage), &e.CashUsage); err != nil {
			return core.Expense{}, fmt.Errorf("decode cash usage: %w", err)
		}
	}
	return e, nil
}

func marshalUsage(usage map[string]int64) (string, error) {
	if len(usage) == 0 {
		return "{}", nil
	}
	raw, err := json.Marshal(usage)
	if err != nil {
		return "", fmt.Errorf("encode cash usage: %w", err)
	}
	return string(raw), nil
}
