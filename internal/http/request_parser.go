package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/hizkiajonathanbudiana/Tracker-Money/internal/core"
	"github.com/hizkiajonathanbudiana/Tracker-Money/internal/services"
	"github.com/hizkiajonathanbudiana/Tracker-Money/internal/wallet"
)

const maxBodyBytes = 64 << 10

var errBadBody = errors.New("invalid request body")

// decodeJSON reads a size-capped JSON body into dst, rejecting unknown fields
// so typos in payload keys surface as errors instead of silent drops.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("%w: %v", errBadBody, err)
	}
	// Exactly one JSON value per request.
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return errBadBody
	}
	return nil
}

// expensePayload is the wire form of an expense submission. Amount arrives as
// a decimal string exactly as typed, so parsing and rounding stay server-side.
type expensePayload struct {
	Amount           string           `json:"amount"`
	Category         string           `json:"category"`
	Date             string           `json:"date"`
	Notes            string           `json:"notes"`
	CashUsage        map[string]int64 `json:"cash_usage,omitempty"`
	DeductFromWallet bool             `json:"deduct_from_wallet,omitempty"`
}

func (p expensePayload) toInput() (services.ExpenseInput, error) {
	amount, err := core.ParseAmount(p.Amount)
	if err != nil {
		return services.ExpenseInput{}, err
	}
	occurred, err := parseDate(p.Date)
	if err != nil {
		return services.ExpenseInput{}, err
	}
	return services.ExpenseInput{
		Amount:           amount,
		Category:         strings.TrimSpace(p.Category),
		OccurredAt:       occurred,
		Notes:            strings.TrimSpace(p.Notes),
		CashUsage:        p.CashUsage,
		DeductFromWallet: p.DeductFromWallet,
	}, nil
}

func parseDate(s string) (core.Date, error) {
	t, err := time.Parse("2006-01-02", strings.TrimSpace(s))
	if err != nil {
		return core.Date{}, core.ErrInvalidDate
	}
	return core.DateOf(t), nil
}

type credentialsPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type changePasswordPayload struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

type balancePayload struct {
	Amount string `json:"amount"`
}

type incomePayload struct {
	Amount string `json:"amount"`
	Note   string `json:"note"`
}

type denominationPayload struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Value string `json:"value"` // decimal currency units, like amounts
	Kind  string `json:"kind"`
	Count int64  `json:"count"`
}

func (p denominationPayload) toDenomination() (wallet.Denomination, error) {
	value, err := core.ParseAmount(p.Value)
	if err != nil {
		return wallet.Denomination{}, wallet.ErrInvalidValue
	}
	return wallet.Denomination{
		ID:    strings.TrimSpace(p.ID),
		Label: strings.TrimSpace(p.Label),
		Value: value.Cents,
		Kind:  strings.TrimSpace(p.Kind),
		Count: p.Count,
	}, nil
}

type categoryPayload struct {
	Name string `json:"name"`
}

type renamePayload struct {
	NewName string `json:"new_name"`
}
