package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/hizkiajonathanbudiana/Tracker-Money/internal/core"
	"github.com/hizkiajonathanbudiana/Tracker-Money/internal/wallet"
)

// GetWallet returns the owner's wallet, creating it with a zero balance and
// the default denomination ladder on first access.
func (r *SQLiteRepository) GetWallet(ctx context.Context, ownerID string) (wallet.Wallet, error) {
	w, err := r.loadWallet(ctx, ownerID)
	if err == nil {
		return w, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return wallet.Wallet{}, err
	}

	if err := r.seedWallet(ctx, ownerID); err != nil {
		return wallet.Wallet{}, err
	}
	w, err = r.loadWallet(ctx, ownerID)
	if err != nil {
		return wallet.Wallet{}, fmt.Errorf("load seeded wallet: %w", err)
	}
	return w, nil
}

func (r *SQLiteRepository) loadWallet(ctx context.Context, ownerID string) (wallet.Wallet, error) {
	var (
		w      wallet.Wallet
		denoms string
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT owner_id, balance_cents, denominations, updated_at FROM wallets WHERE owner_id = ?`,
		ownerID).Scan(&w.OwnerID, &w.Balance.Cents, &denoms, &w.UpdatedAt)
	if err != nil {
		return wallet.Wallet{}, err
	}
	if err := json.Unmarshal([]byte(denoms), &w.Denominations); err != nil {
		return wallet.Wallet{}, fmt.Errorf("decode denominations: %w", err)
	}
	return w, nil
}

func (r *SQLiteRepository) seedWallet(ctx context.Context, ownerID string) error {
	raw, err := json.Marshal(wallet.DefaultDenominations())
	if err != nil {
		return fmt.Errorf("encode default denominations: %w", err)
	}
	// INSERT OR IGNORE keeps concurrent first reads from racing each other.
	_, err = r.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO wallets (owner_id, balance_cents, denominations, updated_at) VALUES (?, 0, ?, ?)`,
		ownerID, string(raw), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("seed wallet: %w", err)
	}
	return nil
}

// SetBalance overwrites the balance. Used only by the explicit
// sync-from-cash-total operation and manual balance edits.
func (r *SQLiteRepository) SetBalance(ctx context.Context, ownerID string, balance core.Money) error {
	if err := r.seedWallet(ctx, ownerID); err != nil {
		return err
	}
	_, err := r.db.ExecContext(ctx,
		`UPDATE wallets SET balance_cents = ?, updated_at = ? WHERE owner_id = ?`,
		balance.Cents, time.Now().UTC(), ownerID)
	if err != nil {
		return fmt.Errorf("set balance: %w", err)
	}
	return nil
}

// AdjustBalance applies a signed delta inside the database. This is the
// atomic increment primitive income and deduct-from-wallet rely on; emulating
// it with read-then-write would lose concurrent updates.
func (r *SQLiteRepository) AdjustBalance(ctx context.Context, ownerID string, deltaCents int64) error {
	if err := r.seedWallet(ctx, ownerID); err != nil {
		return err
	}
	_, err := r.db.ExecContext(ctx,
		`UPDATE wallets SET balance_cents = balance_cents + ?, updated_at = ? WHERE owner_id = ?`,
		deltaCents, time.Now().UTC(), ownerID)
	if err != nil {
		return fmt.Errorf("adjust balance: %w", err)
	}
	return nil
}

// SetDenominations overwrites the denomination document. Last writer wins;
// concurrent edits from two sessions are not merged.
func (r *SQLiteRepository) SetDenominations(ctx context.Context, ownerID string, denoms []wallet.Denomination) error {
	if err := r.seedWallet(ctx, ownerID); err != nil {
		return err
	}
	raw, err := json.Marshal(denoms)
	if err != nil {
		return fmt.Errorf("encode denominations: %w", err)
	}
	_, err = r.db.ExecContext(ctx,
		`UPDATE wallets SET denominations = ?, updated_at = ? WHERE owner_id = ?`,
		string(raw), time.Now().UTC(), ownerID)
	if err != nil {
		return fmt.Errorf("set denominations: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) CreateIncome(ctx context.Context, in core.Income) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO incomes (id, owner_id, amount_cents, note, recorded_at) VALUES (?, ?, ?, ?, ?)`,
		in.ID, in.OwnerID, in.Amount.Cents, in.Note, in.RecordedAt)
	if err != nil {
		return fmt.Errorf("create income: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) ListIncomes(ctx context.Context, ownerID string) ([]core.Income, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, owner_id, amount_cents, note, recorded_at FROM incomes WHERE owner_id = ? ORDER BY recorded_at DESC, id`,
		ownerID)
	if err != nil {
		return nil, fmt.Errorf("list incomes: %w", err)
	}
	defer rows.Close()

	var incomes []core.Income
	for rows.Next() {
		var in core.Income
		if err := rows.Scan(&in.ID, &in.OwnerID, &in.Amount.Cents, &in.Note, &in.RecordedAt); err != nil {
			return nil, fmt.Errorf("scan income: %w", err)
		}
		incomes = append(incomes, in)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list incomes: %w", err)
	}
	return incomes, nil
}
