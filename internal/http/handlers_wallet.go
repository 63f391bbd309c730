package http

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/hizkiajonathanbudiana/Tracker-Money/internal/core"
	"github.com/hizkiajonathanbudiana/Tracker-Money/internal/wallet"
)

type walletResponse struct {
	Balance       string                `json:"balance"`
	BalanceCents  int64                 `json:"balance_cents"`
	CashTotal     string                `json:"cash_total"`
	CashCents     int64                 `json:"cash_total_cents"`
	Denominations []wallet.Denomination `json:"denominations"`
}

func toWalletResponse(w wallet.Wallet) walletResponse {
	cash := wallet.CashTotal(w.Denominations)
	return walletResponse{
		Balance:       w.Balance.String(),
		BalanceCents:  w.Balance.Cents,
		CashTotal:     cash.String(),
		CashCents:     cash.Cents,
		Denominations: w.Denominations,
	}
}

func (s *Server) handleGetWallet(w http.ResponseWriter, r *http.Request) {
	wal, err := s.wallets.Get(r.Context(), ownerID(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toWalletResponse(wal))
}

func (s *Server) handleSetBalance(w http.ResponseWriter, r *http.Request) {
	var payload balancePayload
	if err := decodeJSON(w, r, &payload); err != nil {
		writeErrorMessage(w, http.StatusBadRequest, err.Error())
		return
	}
	amount, err := core.ParseAmount(payload.Amount)
	if err != nil {
		writeError(w, r, err)
		return
	}

	owner := ownerID(r)
	if err := s.wallets.SetBalance(r.Context(), owner, amount); err != nil {
		writeError(w, r, err)
		return
	}
	s.respondWallet(w, r, owner)
}

func (s *Server) handleSyncBalance(w http.ResponseWriter, r *http.Request) {
	owner := ownerID(r)
	if _, err := s.wallets.SyncBalance(r.Context(), owner); err != nil {
		writeError(w, r, err)
		return
	}
	s.respondWallet(w, r, owner)
}

func (s *Server) handleAddDenomination(w http.ResponseWriter, r *http.Request) {
	var payload denominationPayload
	if err := decodeJSON(w, r, &payload); err != nil {
		writeErrorMessage(w, http.StatusBadRequest, err.Error())
		return
	}
	d, err := payload.toDenomination()
	if err != nil {
		writeError(w, r, err)
		return
	}
	if d.ID == "" {
		d.ID = uuid.NewString()
	}

	owner := ownerID(r)
	if err := s.wallets.AddDenomination(r.Context(), owner, d); err != nil {
		writeError(w, r, err)
		return
	}
	s.respondWallet(w, r, owner)
}

func (s *Server) handleEditDenomination(w http.ResponseWriter, r *http.Request) {
	var payload denominationPayload
	if err := decodeJSON(w, r, &payload); err != nil {
		writeErrorMessage(w, http.StatusBadRequest, err.Error())
		return
	}
	d, err := payload.toDenomination()
	if err != nil {
		writeError(w, r, err)
		return
	}
	d.ID = r.PathValue("id")

	owner := ownerID(r)
	if err := s.wallets.EditDenomination(r.Context(), owner, d); err != nil {
		writeError(w, r, err)
		return
	}
	s.respondWallet(w, r, owner)
}

func (s *Server) handleRemoveDenomination(w http.ResponseWriter, r *http.Request) {
	owner := ownerID(r)
	if err := s.wallets.RemoveDenomination(r.Context(), owner, r.PathValue("id")); err != nil {
		writeError(w, r, err)
		return
	}
	s.respondWallet(w, r, owner)
}

type incomeResponse struct {
	ID          string    `json:"id"`
	Amount      string    `json:"amount"`
	AmountCents int64     `json:"amount_cents"`
	Note        string    `json:"note,omitempty"`
	RecordedAt  time.Time `json:"recorded_at"`
}

func (s *Server) handleAddIncome(w http.ResponseWriter, r *http.Request) {
	var payload incomePayload
	if err := decodeJSON(w, r, &payload); err != nil {
		writeErrorMessage(w, http.StatusBadRequest, err.Error())
		return
	}
	amount, err := core.ParseAmount(payload.Amount)
	if err != nil {
		writeError(w, r, err)
		return
	}

	in, err := s.wallets.AddIncome(r.Context(), ownerID(r), amount, payload.Note)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, incomeResponse{
		ID:          in.ID,
		Amount:      in.Amount.String(),
		AmountCents: in.Amount.Cents,
		Note:        in.Note,
		RecordedAt:  in.RecordedAt,
	})
}

func (s *Server) handleListIncomes(w http.ResponseWriter, r *http.Request) {
	incomes, err := s.wallets.ListIncomes(r.Context(), ownerID(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	out := make([]incomeResponse, 0, len(incomes))
	for _, in := range incomes {
		out = append(out, incomeResponse{
			ID:          in.ID,
			Amount:      in.Amount.String(),
			AmountCents: in.Amount.Cents,
			Note:        in.Note,
			RecordedAt:  in.RecordedAt,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

// respondWallet reloads and returns the wallet after a mutation so clients
// always render the committed state.
func (s *Server) respondWallet(w http.ResponseWriter, r *http.Request, owner string) {
	wal, err := s.wallets.Get(r.Context(), owner)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toWalletResponse(wal))
}
