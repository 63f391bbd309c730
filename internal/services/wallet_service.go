package services

import (
	"context"
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

// WalletService owns the balance and denomination operations. Balance deltas
// go through the store's atomic increment; the explicit sync and manual edits
// are the only full overwrites.
type WalletService struct {
	wallets   storage.WalletStore
	incomes   storage.IncomeStore
	hub       *events.Hub
	publisher *amqp.Client
}

func NewWalletService(wallets storage.WalletStore, incomes storage.IncomeStore, hub *events.Hub, publisher *amqp.Client) *WalletService {
	return &WalletService{wallets: wallets, incomes: incomes, hub: hub, publisher: publisher}
}

func (s *WalletService) Get(ctx context.Context, ownerID string) (wallet.Wallet, error) {
	return s.wallets.GetWallet(ctx, ownerID)
}

// AddIncome records an audit row and increments the balance. The increment
// is monotonic, never a destructive overwrite, so concurrent incomes from
// two sessions both land.
func (s *WalletService) AddIncome(ctx context.Context, ownerID string, amount core.Money, note string) (core.Income, error) {
	in := core.Income{
		ID:         uuid.NewString(),
		OwnerID:    ownerID,
		Amount:     amount,
		Note:       note,
		RecordedAt: time.Now().UTC(),
	}
	if err := in.Validate(); err != nil {
		return core.Income{}, err
	}

	if err := s.incomes.CreateIncome(ctx, in); err != nil {
		return core.Income{}, fmt.Errorf("record income: %w", err)
	}
	s.notify(ctx, ownerID, events.KindIncomes, "create", in.ID)

	if err := s.wallets.AdjustBalance(ctx, ownerID, amount.Cents); err != nil {
		return in, fmt.Errorf("income recorded, balance update failed: %w", err)
	}
	s.notify(ctx, ownerID, events.KindWallet, "update", "")
	return in, nil
}

func (s *WalletService) ListIncomes(ctx context.Context, ownerID string) ([]core.Income, error) {
	return s.incomes.ListIncomes(ctx, ownerID)
}

// SetBalance overwrites the balance with a user-entered value.
func (s *WalletService) SetBalance(ctx context.Context, ownerID string, balance core.Money) error {
	if err := s.wallets.SetBalance(ctx, ownerID, balance); err != nil {
		return err
	}
	s.notify(ctx, ownerID, events.KindWallet, "update", "")
	return nil
}

// SyncBalance overwrites the balance with the current cash total. This is
// the explicit "use cash as balance" action; it is deliberately a full
// overwrite, not an increment.
func (s *WalletService) SyncBalance(ctx context.Context, ownerID string) (core.Money, error) {
	w, err := s.wallets.GetWallet(ctx, ownerID)
	if err != nil {
		return core.Money{}, fmt.Errorf("load wallet: %w", err)
	}
	total := wallet.CashTotal(w.Denominations)
	if err := s.wallets.SetBalance(ctx, ownerID, total); err != nil {
		return core.Money{}, err
	}
	s.notify(ctx, ownerID, events.KindWallet, "update", "")
	return total, nil
}

// AddDenomination appends a new zero-count denomination.
func (s *WalletService) AddDenomination(ctx context.Context, ownerID string, d wallet.Denomination) error {
	return s.mutateDenominations(ctx, ownerID, func(denoms []wallet.Denomination) ([]wallet.Denomination, error) {
		return wallet.Add(denoms, d)
	})
}

func (s *WalletService) RemoveDenomination(ctx context.Context, ownerID, id string) error {
	return s.mutateDenominations(ctx, ownerID, func(denoms []wallet.Denomination) ([]wallet.Denomination, error) {
		return wallet.Remove(denoms, id)
	})
}

func (s *WalletService) EditDenomination(ctx context.Context, ownerID string, d wallet.Denomination) error {
	return s.mutateDenominations(ctx, ownerID, func(denoms []wallet.Denomination) ([]wallet.Denomination, error) {
		return wallet.Edit(denoms, d)
	})
}

// mutateDenominations loads the current document, applies the pure mutation
// and overwrites the whole list. Last writer wins across concurrent sessions.
func (s *WalletService) mutateDenominations(ctx context.Context, ownerID string, mutate func([]wallet.Denomination) ([]wallet.Denomination, error)) error {
	w, err := s.wallets.GetWallet(ctx, ownerID)
	if err != nil {
		return fmt.Errorf("load wallet: %w", err)
	}
	denoms, err := mutate(w.Denominations)
	if err != nil {
		return err
	}
	if err := s.wallets.SetDenominations(ctx, ownerID, denoms); err != nil {
		return fmt.Errorf("save denominations: %w", err)
	}
	s.notify(ctx, ownerID, events.KindWallet, "update", "")
	return nil
}

func (s *WalletService) notify(ctx context.Context, ownerID string, kind events.Kind, op, id string) {
	ev := events.Event{OwnerID: ownerID, Kind: kind, Op: op, ID: id, At: time.Now().UTC()}
	if s.hub != nil {
		s.hub.Publish(ev)
	}
	if err := s.publisher.PublishChange(ctx, ev); err != nil {
		slog.ErrorContext(ctx, "Failed to publish change message",
			"error", err, "owner_id", ownerID, "kind", kind, "op", op)
	}
}
