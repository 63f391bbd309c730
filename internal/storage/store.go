// Package storage persists users, expenses, wallets, categories and incomes
// in SQLite. Wallet and category documents follow the original product's
// write semantics: denomination lists and category lists are full-document
// last-writer-wins overwrites, while balance deltas go through a true atomic
// increment so concurrent sessions never lose updates.
package storage

import (
	"context"
	"errors"

	"github.com/hizkiajonathanbudiana/Tracker-Money/internal/core"
	"github.com/hizkiajonathanbudiana/Tracker-Money/internal/wallet"
)

// ErrNotFound is returned when a record does not exist or belongs to a
// different owner. The two cases are deliberately indistinguishable.
var ErrNotFound = errors.New("record not found")

// Ports for the service layer.
type (
	ExpenseStore interface {
		CreateExpense(ctx context.Context, e core.Expense) error
		UpdateExpense(ctx context.Context, e core.Expense) error
		DeleteExpense(ctx context.Context, ownerID, id string) error
		GetExpense(ctx context.Context, ownerID, id string) (core.Expense, error)
		// ListExpenses returns every expense of one owner, newest recording
		// first.
		ListExpenses(ctx context.Context, ownerID string) ([]core.Expense, error)
	}

	WalletStore interface {
		// GetWallet lazily creates the wallet with a zero balance and the
		// default denomination ladder on first access.
		GetWallet(ctx context.Context, ownerID string) (wallet.Wallet, error)
		// SetBalance overwrites the balance (explicit sync semantics).
		SetBalance(ctx context.Context, ownerID string, balance core.Money) error
		// AdjustBalance applies a signed delta atomically in the database,
		// never via read-modify-write.
		AdjustBalance(ctx context.Context, ownerID string, deltaCents int64) error
		// SetDenominations overwrites the denomination document, last writer
		// wins.
		SetDenominations(ctx context.Context, ownerID string, denoms []wallet.Denomination) error
	}

	CategoryStore interface {
		// GetCategories lazily creates the default list on first access.
		GetCategories(ctx context.Context, ownerID string) ([]string, error)
		// SetCategories overwrites the list document, last writer wins.
		SetCategories(ctx context.Context, ownerID string, names []string) error
	}

	IncomeStore interface {
		CreateIncome(ctx context.Context, in core.Income) error
		ListIncomes(ctx context.Context, ownerID string) ([]core.Income, error)
	}
)
