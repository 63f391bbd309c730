// Package services orchestrates the domain rules against storage and the
// change-notification fan-out. Each write goes to exactly one store; related
// writes (expense insert, wallet decrement, denomination usage) are separate
// operations with no cross-store atomicity, matching the original client's
// behavior of issuing independent document writes.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/hizkiajonathanbudiana/Tracker-Money/internal/amqp"
	"github.com/hizkiajonathanbudiana/Tracker-Money/internal/core"
	"github.com/hizkiajonathanbudiana/Tracker-Money/internal/events"
	"github.com/hizkiajonathanbudiana/Tracker-Money/internal/storage"
	"github.com/hizkiajonathanbudiana/Tracker-Money/internal/wallet"
)

// ErrUnknownCategory rejects expenses whose category is not in the owner's
// current list. Existing records keep their category even after it is
// renamed or removed.
var ErrUnknownCategory = errors.New("category not in the owner's list")

// ExpenseInput is the validated user submission for creating or editing an
// expense.
type ExpenseInput struct {
	Amount           core.Money
	Category         string
	OccurredAt       core.Date
	Notes            string
	CashUsage        map[string]int64
	DeductFromWallet bool
}

type ExpenseService struct {
	expenses   storage.ExpenseStore
	wallets    storage.WalletStore
	categories storage.CategoryStore
	hub        *events.Hub
	publisher  *amqp.Client
}

func NewExpenseService(
	expenses storage.ExpenseStore,
	wallets storage.WalletStore,
	categories storage.CategoryStore,
	hub *events.Hub,
	publisher *amqp.Client,
) *ExpenseService {
	return &ExpenseService{
		expenses:   expenses,
		wallets:    wallets,
		categories: categories,
		hub:        hub,
		publisher:  publisher,
	}
}

// Create validates and stores a new expense, then applies its wallet effects.
// The expense write is the source of truth: if a follow-up wallet write
// fails, the expense stays recorded and the error tells the caller which part
// did not land.
func (s *ExpenseService) Create(ctx context.Context, ownerID string, in ExpenseInput) (core.Expense, error) {
	e := core.Expense{
		ID:         uuid.NewString(),
		OwnerID:    ownerID,
		Amount:     in.Amount,
		Category:   in.Category,
		OccurredAt: in.OccurredAt,
		RecordedAt: time.Now().UTC(),
		Notes:      in.Notes,
		CashUsage:  in.CashUsage,
	}
	if err := e.Validate(); err != nil {
		return core.Expense{}, err
	}
	if err := s.checkCategory(ctx, ownerID, in.Category); err != nil {
		return core.Expense{}, err
	}

	if err := s.expenses.CreateExpense(ctx, e); err != nil {
		return core.Expense{}, fmt.Errorf("save expense: %w", err)
	}
	s.notify(ctx, ownerID, events.KindExpenses, "create", e.ID)

	if err := s.applyWalletEffects(ctx, ownerID, e.Amount, in.DeductFromWallet, in.CashUsage); err != nil {
		return e, fmt.Errorf("expense recorded, wallet update failed: %w", err)
	}
	return e, nil
}

// Update edits amount, category, date and notes of an existing expense. It
// never replays wallet effects; the original product treats those as
// moment-of-spend actions.
func (s *ExpenseService) Update(ctx context.Context, ownerID, id string, in ExpenseInput) (core.Expense, error) {
	existing, err := s.expenses.GetExpense(ctx, ownerID, id)
	if err != nil {
		return core.Expense{}, err
	}

	existing.Amount = in.Amount
	existing.Category = in.Category
	existing.OccurredAt = in.OccurredAt
	existing.Notes = in.Notes
	if err := existing.Validate(); err != nil {
		return core.Expense{}, err
	}
	if err := s.checkCategory(ctx, ownerID, in.Category); err != nil {
		return core.Expense{}, err
	}

	if err := s.expenses.UpdateExpense(ctx, existing); err != nil {
		return core.Expense{}, fmt.Errorf("update expense: %w", err)
	}
	s.notify(ctx, ownerID, events.KindExpenses, "update", id)
	return existing, nil
}

func (s *ExpenseService) Delete(ctx context.Context, ownerID, id string) error {
	if err := s.expenses.DeleteExpense(ctx, ownerID, id); err != nil {
		return err
	}
	s.notify(ctx, ownerID, events.KindExpenses, "delete", id)
	return nil
}

func (s *ExpenseService) Get(ctx context.Context, ownerID, id string) (core.Expense, error) {
	return s.expenses.GetExpense(ctx, ownerID, id)
}

// List returns the owner's full expense collection, newest recording first.
// Aggregation runs on this snapshot in internal/core.
func (s *ExpenseService) List(ctx context.Context, ownerID string) ([]core.Expense, error) {
	return s.expenses.ListExpenses(ctx, ownerID)
}

func (s *ExpenseService) checkCategory(ctx context.Context, ownerID, name string) error {
	names, err := s.categories.GetCategories(ctx, ownerID)
	if err != nil {
		return fmt.Errorf("load categories: %w", err)
	}
	for _, existing := range names {
		if existing == name {
			return nil
		}
	}
	return ErrUnknownCategory
}

// applyWalletEffects decrements the balance when the deduct flag is set and
// books the cash breakdown against the denomination inventory. The two are
// independent: a breakdown without the flag adjusts only the physical counts.
func (s *ExpenseService) applyWalletEffects(ctx context.Context, ownerID string, amount core.Money, deduct bool, usage map[string]int64) error {
	touched := false

	if deduct {
		if err := s.wallets.AdjustBalance(ctx, ownerID, -amount.Cents); err != nil {
			return fmt.Errorf("deduct balance: %w", err)
		}
		touched = true
	}

	if len(usage) > 0 {
		w, err := s.wallets.GetWallet(ctx, ownerID)
		if err != nil {
			return fmt.Errorf("load wallet: %w", err)
		}
		denoms := wallet.ApplyUsage(w.Denominations, usage)
		if err := s.wallets.SetDenominations(ctx, ownerID, denoms); err != nil {
			return fmt.Errorf("apply cash breakdown: %w", err)
		}
		touched = true
	}

	if touched {
		s.notify(ctx, ownerID, events.KindWallet, "update", "")
	}
	return nil
}

func (s *ExpenseService) notify(ctx context.Context, ownerID string, kind events.Kind, op, id string) {
	ev := events.Event{OwnerID: ownerID, Kind: kind, Op: op, ID: id, At: time.Now().UTC()}
	if s.hub != nil {
		s.hub.Publish(ev)
	}
	if err := s.publisher.PublishChange(ctx, ev); err != nil {
		// Change fan-out is best effort; the write already committed.
		slog.ErrorContext(ctx, "Failed to publish change message",
			"error", err, "owner_id", ownerID, "kind", kind, "op", op)
	}
}
