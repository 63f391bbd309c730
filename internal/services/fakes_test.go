package services

import (
	"context"
	"errors"

	"github.com/hizkiajonathanbudiana/Tracker-Money/internal/core"
	"github.com/hizkiajonathanbudiana/Tracker-Money/internal/storage"
	"github.com/hizkiajonathanbudiana/Tracker-Money/internal/wallet"
)

// errFail simulates a store-operation failure (network/permission).
var errFail = errors.New("store unavailable")

type fakeExpenseStore struct {
	byID    map[string]core.Expense
	order   []string
	failAll bool
}

func newFakeExpenseStore() *fakeExpenseStore {
	return &fakeExpenseStore{byID: make(map[string]core.Expense)}
}

func (f *fakeExpenseStore) CreateExpense(_ context.Context, e core.Expense) error {
	if f.failAll {
		return errFail
	}
	f.byID[e.ID] = e
	f.order = append(f.order, e.ID)
	return nil
}

func (f *fakeExpenseStore) UpdateExpense(_ context.Context, e core.Expense) error {
	if f.failAll {
		return errFail
	}
	existing, ok := f.byID[e.ID]
	if !ok || existing.OwnerID != e.OwnerID {
		return storage.ErrNotFound
	}
	f.byID[e.ID] = e
	return nil
}

func (f *fakeExpenseStore) DeleteExpense(_ context.Context, ownerID, id string) error {
	if f.failAll {
		return errFail
	}
	existing, ok := f.byID[id]
	if !ok || existing.OwnerID != ownerID {
		return storage.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

func (f *fakeExpenseStore) GetExpense(_ context.Context, ownerID, id string) (core.Expense, error) {
	existing, ok := f.byID[id]
	if !ok || existing.OwnerID != ownerID {
		return core.Expense{}, storage.ErrNotFound
	}
	return existing, nil
}

func (f *fakeExpenseStore) ListExpenses(_ context.Context, ownerID string) ([]core.Expense, error) {
	var out []core.Expense
	for i := len(f.order) - 1; i >= 0; i-- {
		if e, ok := f.byID[f.order[i]]; ok && e.OwnerID == ownerID {
			out = append(out, e)
		}
	}
	return out, nil
}

type fakeWalletStore struct {
	wallets     map[string]wallet.Wallet
	failAdjust  bool
	failSetDoc  bool
	adjustCalls []int64
}

func newFakeWalletStore() *fakeWalletStore {
	return &fakeWalletStore{wallets: make(map[string]wallet.Wallet)}
}

func (f *fakeWalletStore) GetWallet(_ context.Context, ownerID string) (wallet.Wallet, error) {
	w, ok := f.wallets[ownerID]
	if !ok {
		w = wallet.Wallet{OwnerID: ownerID, Denominations: wallet.DefaultDenominations()}
		f.wallets[ownerID] = w
	}
	return w, nil
}

func (f *fakeWalletStore) SetBalance(_ context.Context, ownerID string, balance core.Money) error {
	w, _ := f.GetWallet(context.Background(), ownerID)
	w.Balance = balance
	f.wallets[ownerID] = w
	return nil
}

func (f *fakeWalletStore) AdjustBalance(_ context.Context, ownerID string, deltaCents int64) error {
	if f.failAdjust {
		return errFail
	}
	w, _ := f.GetWallet(context.Background(), ownerID)
	w.Balance.Cents += deltaCents
	f.wallets[ownerID] = w
	f.adjustCalls = append(f.adjustCalls, deltaCents)
	return nil
}

func (f *fakeWalletStore) SetDenominations(_ context.Context, ownerID string, denoms []wallet.Denomination) error {
	if f.failSetDoc {
		return errFail
	}
	w, _ := f.GetWallet(context.Background(), ownerID)
	w.Denominations = denoms
	f.wallets[ownerID] = w
	return nil
}

type fakeCategoryStore struct {
	lists map[string][]string
}

func newFakeCategoryStore() *fakeCategoryStore {
	return &fakeCategoryStore{lists: make(map[string][]string)}
}

func (f *fakeCategoryStore) GetCategories(_ context.Context, ownerID string) ([]string, error) {
	names, ok := f.lists[ownerID]
	if !ok {
		names = []string{"Food & Beverage", "Shopping", "Transport", "Bills", "Other"}
		f.lists[ownerID] = names
	}
	return names, nil
}

func (f *fakeCategoryStore) SetCategories(_ context.Context, ownerID string, names []string) error {
	f.lists[ownerID] = names
	return nil
}

type fakeIncomeStore struct {
	incomes []core.Income
	failAll bool
}

func (f *fakeIncomeStore) CreateIncome(_ context.Context, in core.Income) error {
	if f.failAll {
		return errFail
	}
	f.incomes = append(f.incomes, in)
	return nil
}

func (f *fakeIncomeStore) ListIncomes(_ context.Context, ownerID string) ([]core.Income, error) {
	var out []core.Income
	for i := len(f.incomes) - 1; i >= 0; i-- {
		if f.incomes[i].OwnerID == ownerID {
			out = append(out, f.incomes[i])
		}
	}
	return out, nil
}
