package http

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/hizkiajonathanbudiana/Tracker-Money/internal/core"
	"github.com/hizkiajonathanbudiana/Tracker-Money/internal/export"
)

type expenseResponse struct {
	ID          string           `json:"id"`
	Amount      string           `json:"amount"`
	AmountCents int64            `json:"amount_cents"`
	Category    string           `json:"category"`
	Date        string           `json:"date"`
	RecordedAt  time.Time        `json:"recorded_at"`
	Notes       string           `json:"notes,omitempty"`
	CashUsage   map[string]int64 `json:"cash_usage,omitempty"`
}

func toExpenseResponse(e core.Expense) expenseResponse {
	return expenseResponse{
		ID:          e.ID,
		Amount:      e.Amount.String(),
		AmountCents: e.Amount.Cents,
		Category:    e.Category,
		Date:        e.OccurredAt.Key(),
		RecordedAt:  e.RecordedAt,
		Notes:       e.Notes,
		CashUsage:   e.CashUsage,
	}
}

func (s *Server) handleListExpenses(w http.ResponseWriter, r *http.Request) {
	owner := ownerID(r)
	expenses, err := s.expenses.List(r.Context(), owner)
	if err != nil {
		writeError(w, r, err)
		return
	}

	// Optional month and category narrowing, same selectors as the dashboard.
	if monthKey := strings.TrimSpace(r.URL.Query().Get("month")); monthKey != "" {
		year, month, err := core.ParseMonthKey(monthKey)
		if err != nil {
			writeError(w, r, err)
			return
		}
		expenses = core.FilterMonth(expenses, year, month)
	}
	expenses = core.FilterCategory(expenses, strings.TrimSpace(r.URL.Query().Get("category")))

	out := make([]expenseResponse, 0, len(expenses))
	for _, e := range expenses {
		out = append(out, toExpenseResponse(e))
	}
	writeJSON(w, http.StatusOK, out)
}

type createExpenseResponse struct {
	expenseResponse
	// Warning reports a wallet follow-up that failed after the expense itself
	// was stored.
	Warning string `json:"warning,omitempty"`
}

func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	var payload expensePayload
	if err := decodeJSON(w, r, &payload); err != nil {
		writeErrorMessage(w, http.StatusBadRequest, err.Error())
		return
	}
	in, err := payload.toInput()
	if err != nil {
		writeError(w, r, err)
		return
	}

	owner := ownerID(r)
	e, err := s.expenses.Create(r.Context(), owner, in)
	if err != nil {
		if e.ID == "" {
			writeError(w, r, err)
			return
		}
		// The expense committed; only the wallet follow-up failed.
		slog.WarnContext(r.Context(), "Expense stored with failed wallet update",
			"error", err, "owner_id", owner, "expense_id", e.ID)
		s.invalidateStats(owner)
		writeJSON(w, http.StatusCreated, createExpenseResponse{
			expenseResponse: toExpenseResponse(e),
			Warning:         "expense recorded, wallet update failed",
		})
		return
	}

	s.invalidateStats(owner)
	writeJSON(w, http.StatusCreated, createExpenseResponse{expenseResponse: toExpenseResponse(e)})
}

func (s *Server) handleGetExpense(w http.ResponseWriter, r *http.Request) {
	e, err := s.expenses.Get(r.Context(), ownerID(r), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toExpenseResponse(e))
}

func (s *Server) handleUpdateExpense(w http.ResponseWriter, r *http.Request) {
	var payload expensePayload
	if err := decodeJSON(w, r, &payload); err != nil {
		writeErrorMessage(w, http.StatusBadRequest, err.Error())
		return
	}
	in, err := payload.toInput()
	if err != nil {
		writeError(w, r, err)
		return
	}

	owner := ownerID(r)
	e, err := s.expenses.Update(r.Context(), owner, r.PathValue("id"), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	s.invalidateStats(owner)
	writeJSON(w, http.StatusOK, toExpenseResponse(e))
}

func (s *Server) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	owner := ownerID(r)
	if err := s.expenses.Delete(r.Context(), owner, r.PathValue("id")); err != nil {
		writeError(w, r, err)
		return
	}
	s.invalidateStats(owner)
	writeJSON(w, http.StatusNoContent, nil)
}

// handleExportExpenses streams a month's expenses as CSV. With mirror=sheets
// the same rows are also appended to the configured Google spreadsheet.
func (s *Server) handleExportExpenses(w http.ResponseWriter, r *http.Request) {
	owner := ownerID(r)

	monthKey := strings.TrimSpace(r.URL.Query().Get("month"))
	if monthKey == "" {
		monthKey = core.DateOf(time.Now().UTC()).MonthKey()
	}
	year, month, err := core.ParseMonthKey(monthKey)
	if err != nil {
		writeError(w, r, err)
		return
	}

	expenses, err := s.expenses.List(r.Context(), owner)
	if err != nil {
		writeError(w, r, err)
		return
	}
	subset := core.FilterMonth(expenses, year, month)
	subset = core.FilterCategory(subset, strings.TrimSpace(r.URL.Query().Get("category")))

	if r.URL.Query().Get("mirror") == "sheets" {
		if s.sheets == nil {
			writeErrorMessage(w, http.StatusConflict, "sheets export not configured")
			return
		}
		if err := s.sheets.AppendExpenses(r.Context(), subset); err != nil {
			slog.ErrorContext(r.Context(), "Sheets mirror failed",
				"error", err, "owner_id", owner, "month", monthKey)
			writeErrorMessage(w, http.StatusBadGateway, "sheets mirror failed")
			return
		}
	}

	doc := export.CSV(subset)
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+export.Filename(monthKey)+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(doc))
}
