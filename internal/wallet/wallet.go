// Package wallet keeps a cash-denomination inventory and a liquid balance
// loosely reconciled. The balance has no forced relationship to the cash
// total; the two meet only on an explicit sync or when an expense is marked
// "deduct from wallet".
package wallet

import (
	"errors"
	"strings"
	"time"

	"github.com/hizkiajonathanbudiana/Tracker-Money/internal/core"
)

const (
	KindBill = "bill"
	KindCoin = "coin"
)

type (
	// Denomination is one tracked bill or coin type. Kind is display-only.
	Denomination struct {
		ID    string `json:"id"`
		Label string `json:"label"`
		Value int64  `json:"value"` // face value in cents
		Kind  string `json:"kind"`
		Count int64  `json:"count"` // on-hand quantity, never negative
	}

	// Wallet is the per-user document: a bank-side balance plus the physical
	// cash inventory.
	Wallet struct {
		OwnerID       string
		Balance       core.Money
		Denominations []Denomination
		UpdatedAt     time.Time
	}
)

var (
	ErrEmptyLabel       = errors.New("empty denomination label")
	ErrInvalidValue     = errors.New("denomination value must be positive")
	ErrInvalidKind      = errors.New("denomination kind must be bill or coin")
	ErrNegativeCount    = errors.New("denomination count must not be negative")
	ErrUnknownDenom     = errors.New("unknown denomination")
	ErrDuplicateDenomID = errors.New("duplicate denomination id")
)

// DefaultDenominations is the NT$ bill/coin ladder a fresh wallet starts with.
func DefaultDenominations() []Denomination {
	return []Denomination{
		{ID: "twd-1000", Label: "NT$1000", Value: 100000, Kind: KindBill},
		{ID: "twd-500", Label: "NT$500", Value: 50000, Kind: KindBill},
		{ID: "twd-200", Label: "NT$200", Value: 20000, Kind: KindBill},
		{ID: "twd-100", Label: "NT$100", Value: 10000, Kind: KindBill},
		{ID: "twd-50", Label: "NT$50", Value: 5000, Kind: KindCoin},
		{ID: "twd-10", Label: "NT$10", Value: 1000, Kind: KindCoin},
		{ID: "twd-5", Label: "NT$5", Value: 500, Kind: KindCoin},
		{ID: "twd-1", Label: "NT$1", Value: 100, Kind: KindCoin},
	}
}

func (d Denomination) Validate() error {
	if strings.TrimSpace(d.Label) == "" {
		return ErrEmptyLabel
	}
	if d.Value <= 0 {
		return ErrInvalidValue
	}
	if d.Kind != KindBill && d.Kind != KindCoin {
		return ErrInvalidKind
	}
	if d.Count < 0 {
		return ErrNegativeCount
	}
	return nil
}

// CashTotal sums value x count over the inventory. Order-invariant and linear
// in the counts.
func CashTotal(denoms []Denomination) core.Money {
	var sum int64
	for _, d := range denoms {
		sum += d.Value * d.Count
	}
	return core.Money{Cents: sum}
}

// ApplyUsage decrements each referenced denomination's count by its used
// amount, floored at zero. Usage beyond the on-hand count is clamped and
// references to unknown denominations are dropped: physical cash tracking is
// advisory, not authoritative. Returns a new slice; the input is not mutated.
func ApplyUsage(denoms []Denomination, usage map[string]int64) []Denomination {
	out := make([]Denomination, len(denoms))
	copy(out, denoms)
	if len(usage) == 0 {
		return out
	}
	for i := range out {
		used, ok := usage[out[i].ID]
		if !ok || used <= 0 {
			continue
		}
		out[i].Count -= used
		if out[i].Count < 0 {
			out[i].Count = 0
		}
	}
	return out
}

// UsageTotal values a usage map against the inventory, ignoring stale IDs.
// It is what the expense form shows next to the cash breakdown.
func UsageTotal(denoms []Denomination, usage map[string]int64) core.Money {
	var sum int64
	for _, d := range denoms {
		if used, ok := usage[d.ID]; ok && used > 0 {
			sum += d.Value * used
		}
	}
	return core.Money{Cents: sum}
}

// Add appends a new denomination with a zero count. The ID must not collide
// with an existing one.
func Add(denoms []Denomination, d Denomination) ([]Denomination, error) {
	d.Count = 0
	if err := d.Validate(); err != nil {
		return nil, err
	}
	for _, existing := range denoms {
		if existing.ID == d.ID {
			return nil, ErrDuplicateDenomID
		}
	}
	out := make([]Denomination, len(denoms), len(denoms)+1)
	copy(out, denoms)
	return append(out, d), nil
}

// Remove drops the denomination with the given ID.
func Remove(denoms []Denomination, id string) ([]Denomination, error) {
	out := make([]Denomination, 0, len(denoms))
	found := false
	for _, d := range denoms {
		if d.ID == id {
			found = true
			continue
		}
		out = append(out, d)
	}
	if !found {
		return nil, ErrUnknownDenom
	}
	return out, nil
}

// Edit replaces the label, value, kind and count of an existing denomination.
func Edit(denoms []Denomination, d Denomination) ([]Denomination, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	out := make([]Denomination, len(denoms))
	copy(out, denoms)
	for i := range out {
		if out[i].ID == d.ID {
			out[i] = d
			return out, nil
		}
	}
	return nil, ErrUnknownDenom
}
