package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/hizkiajonathanbudiana/Tracker-Money/internal/core"
	"github.com/hizkiajonathanbudiana/Tracker-Money/internal/events"
	"github.com/hizkiajonathanbudiana/Tracker-Money/internal/storage"
)

func newExpenseFixture() (*ExpenseService, *fakeExpenseStore, *fakeWalletStore, *events.Hub) {
	expenses := newFakeExpenseStore()
	wallets := newFakeWalletStore()
	hub := events.NewHub()
	svc := NewExpenseService(expenses, wallets, newFakeCategoryStore(), hub, nil)
	return svc, expenses, wallets, hub
}

func validInput() ExpenseInput {
	return ExpenseInput{
		Amount:     core.Money{Cents: 12500},
		Category:   "Food & Beverage",
		OccurredAt: core.NewDate(2026, time.February, 13),
		Notes:      "lunch",
	}
}

func TestCreateExpense(t *testing.T) {
	svc, expenses, wallets, hub := newExpenseFixture()
	defer hub.Close()
	ctx := context.Background()

	ch, cancel := hub.Subscribe("u-1")
	defer cancel()

	e, err := svc.Create(ctx, "u-1", validInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if e.ID == "" || e.OwnerID != "u-1" || e.RecordedAt.IsZero() {
		t.Fatalf("expense not filled in: %+v", e)
	}
	if _, ok := expenses.byID[e.ID]; !ok {
		t.Fatal("expense not persisted")
	}
	// No deduct flag, no breakdown: wallet untouched.
	if len(wallets.adjustCalls) != 0 {
		t.Fatalf("unexpected balance adjustments: %v", wallets.adjustCalls)
	}

	select {
	case ev := <-ch:
		if ev.Kind != events.KindExpenses || ev.Op != "create" {
			t.Fatalf("unexpected event: %+v", ev)
		}
	case <-time.After(time.Second):
		t.Fatal("change event not published")
	}
}

func TestCreateExpenseValidation(t *testing.T) {
	svc, expenses, _, hub := newExpenseFixture()
	defer hub.Close()
	ctx := context.Background()

	in := validInput()
	in.Amount = core.Money{Cents: 0}
	if _, err := svc.Create(ctx, "u-1", in); err != core.ErrInvalidAmount {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}

	in = validInput()
	in.Category = "No Such Category"
	if _, err := svc.Create(ctx, "u-1", in); err != ErrUnknownCategory {
		t.Fatalf("expected ErrUnknownCategory, got %v", err)
	}

	// Nothing was written before validation failed.
	if len(expenses.byID) != 0 {
		t.Fatal("rejected input must not be persisted")
	}
}

func TestCreateExpenseDeductsFromWallet(t *testing.T) {
	svc, _, wallets, hub := newExpenseFixture()
	defer hub.Close()
	ctx := context.Background()

	in := validInput()
	in.DeductFromWallet = true
	if _, err := svc.Create(ctx, "u-1", in); err != nil {
		t.Fatalf("create: %v", err)
	}

	if len(wallets.adjustCalls) != 1 || wallets.adjustCalls[0] != -12500 {
		t.Fatalf("expected one -12500 adjustment, got %v", wallets.adjustCalls)
	}
	w, _ := wallets.GetWallet(ctx, "u-1")
	if w.Balance.Cents != -12500 {
		t.Fatalf("balance = %d", w.Balance.Cents)
	}
}

func TestCreateExpenseAppliesCashBreakdown(t *testing.T) {
	svc, _, wallets, hub := newExpenseFixture()
	defer hub.Close()
	ctx := context.Background()

	// Stock the wallet first.
	w, _ := wallets.GetWallet(ctx, "u-1")
	for i := range w.Denominations {
		if w.Denominations[i].ID == "twd-100" {
			w.Denominations[i].Count = 3
		}
	}
	wallets.wallets["u-1"] = w

	in := validInput()
	in.CashUsage = map[string]int64{"twd-100": 1, "gone-denom": 2}
	if _, err := svc.Create(ctx, "u-1", in); err != nil {
		t.Fatalf("create: %v", err)
	}

	w, _ = wallets.GetWallet(ctx, "u-1")
	for _, d := range w.Denominations {
		if d.ID == "twd-100" && d.Count != 2 {
			t.Fatalf("twd-100 count = %d, want 2", d.Count)
		}
	}
	// Breakdown without the deduct flag leaves the balance alone.
	if len(wallets.adjustCalls) != 0 {
		t.Fatalf("breakdown must not adjust balance: %v", wallets.adjustCalls)
	}
}

func TestCreateExpenseSurvivesWalletFailure(t *testing.T) {
	svc, expenses, wallets, hub := newExpenseFixture()
	defer hub.Close()
	ctx := context.Background()
	wallets.failAdjust = true

	in := validInput()
	in.DeductFromWallet = true
	e, err := svc.Create(ctx, "u-1", in)
	if err == nil {
		t.Fatal("expected wallet failure to surface")
	}
	// The expense write committed before the wallet write failed; the two
	// stores are intentionally not atomic.
	if _, ok := expenses.byID[e.ID]; !ok {
		t.Fatal("expense must stay recorded when wallet update fails")
	}
}

func TestUpdateExpense(t *testing.T) {
	svc, _, wallets, hub := newExpenseFixture()
	defer hub.Close()
	ctx := context.Background()

	e, err := svc.Create(ctx, "u-1", validInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	in := validInput()
	in.Amount = core.Money{Cents: 9900}
	in.Category = "Bills"
	in.DeductFromWallet = true // must be ignored on update
	got, err := svc.Update(ctx, "u-1", e.ID, in)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got.Amount.Cents != 9900 || got.Category != "Bills" {
		t.Fatalf("update not applied: %+v", got)
	}
	if len(wallets.adjustCalls) != 0 {
		t.Fatal("update must not replay wallet effects")
	}

	if _, err := svc.Update(ctx, "u-2", e.ID, in); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("cross-owner update must be not found, got %v", err)
	}
}

func TestDeleteExpense(t *testing.T) {
	svc, _, _, hub := newExpenseFixture()
	defer hub.Close()
	ctx := context.Background()

	e, err := svc.Create(ctx, "u-1", validInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := svc.Delete(ctx, "u-1", e.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := svc.Delete(ctx, "u-1", e.ID); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("second delete must be not found, got %v", err)
	}
}
