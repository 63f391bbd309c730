package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/hizkiajonathanbudiana/Tracker-Money/internal/category"
)

// GetCategories returns the owner's ordered category list, creating it with
// the default set on first access.
func (r *SQLiteRepository) GetCategories(ctx context.Context, ownerID string) ([]string, error) {
	names, err := r.loadCategories(ctx, ownerID)
	if err == nil {
		return names, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	if err := r.seedCategories(ctx, ownerID); err != nil {
		return nil, err
	}
	names, err = r.loadCategories(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("load seeded categories: %w", err)
	}
	return names, nil
}

func (r *SQLiteRepository) loadCategories(ctx context.Context, ownerID string) ([]string, error) {
	var raw string
	err := r.db.QueryRowContext(ctx,
		`SELECT names FROM categories WHERE owner_id = ?`, ownerID).Scan(&raw)
	if err != nil {
		return nil, err
	}
	var names []string
	if err := json.Unmarshal([]byte(raw), &names); err != nil {
		return nil, fmt.Errorf("decode categories: %w", err)
	}
	return names, nil
}

func (r *SQLiteRepository) seedCategories(ctx context.Context, ownerID string) error {
	raw, err := json.Marshal(category.Defaults())
	if err != nil {
		return fmt.Errorf("encode default categories: %w", err)
	}
	_, err = r.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO categories (owner_id, names, updated_at) VALUES (?, ?, ?)`,
		ownerID, string(raw), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("seed categories: %w", err)
	}
	return nil
}

// SetCategories overwrites the list document. Last writer wins.
func (r *SQLiteRepository) SetCategories(ctx context.Context, ownerID string, names []string) error {
	if err := r.seedCategories(ctx, ownerID); err != nil {
		return err
	}
	raw, err := json.Marshal(names)
	if err != nil {
		return fmt.Errorf("encode categories: %w", err)
	}
	_, err = r.db.ExecContext(ctx,
		`UPDATE categories SET names = ?, updated_at = ? WHERE owner_id = ?`,
		string(raw), time.Now().UTC(), ownerID)
	if err != nil {
		return fmt.Errorf("set categories: %w", err)
	}
	return nil
}
