package http

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/hizkiajonathanbudiana/Tracker-Money/internal/core"
)

type categoryAmountResponse struct {
	Name        string `json:"name"`
	Amount      string `json:"amount"`
	AmountCents int64  `json:"amount_cents"`
}

type dashboardResponse struct {
	Month       string                   `json:"month"`
	Total       string                   `json:"total"`
	TotalCents  int64                    `json:"total_cents"`
	AvgPerDay   float64                  `json:"avg_per_day_cents"`
	Largest     *expenseResponse         `json:"largest,omitempty"`
	TopCategory categoryAmountResponse   `json:"top_category"`
	ByCategory  []categoryAmountResponse `json:"by_category"`
}

// handleDashboard returns the month summary: total, average per calendar day,
// largest single expense and per-category totals. Cached per owner and month.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
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

	key := statsCacheKey(owner, monthKey)
	stats, found := s.statsCache.Get(key)
	if !found {
		expenses, err := s.expenses.List(r.Context(), owner)
		if err != nil {
			writeError(w, r, err)
			return
		}
		stats = core.MonthOverview(expenses, year, month)
		s.statsCache.Set(key, stats)
	}

	resp := dashboardResponse{
		Month:      monthKey,
		Total:      stats.Total.String(),
		TotalCents: stats.Total.Cents,
		AvgPerDay:  stats.AvgPerDay,
		TopCategory: categoryAmountResponse{
			Name:        stats.Top.Name,
			Amount:      stats.Top.Amount.String(),
			AmountCents: stats.Top.Amount.Cents,
		},
		ByCategory: make([]categoryAmountResponse, 0, len(stats.ByCategory)),
	}
	// A zero-amount largest is the empty-month placeholder, not a record.
	if stats.Largest.Amount.Cents > 0 {
		largest := toExpenseResponse(stats.Largest)
		resp.Largest = &largest
	}
	for _, ca := range stats.ByCategory {
		resp.ByCategory = append(resp.ByCategory, categoryAmountResponse{
			Name:        ca.Name,
			Amount:      ca.Amount.String(),
			AmountCents: ca.Amount.Cents,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

type dayBucketResponse struct {
	Date       string `json:"date"`
	Total      string `json:"total"`
	TotalCents int64  `json:"total_cents"`
}

type chartResponse struct {
	Category string                   `json:"category"`
	Days     []dayBucketResponse      `json:"days"`
	ByCat    []categoryAmountResponse `json:"by_category"`
}

// handleChart returns a dense daily spending series for the trailing N-day
// window ending today (or at ?end=YYYY-MM-DD), optionally narrowed to one
// category, plus the category breakdown of the same window.
func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	owner := ownerID(r)

	days := 7
	if v := strings.TrimSpace(r.URL.Query().Get("days")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			writeError(w, r, core.ErrInvalidWindow)
			return
		}
		days = n
	}

	end := core.DateOf(time.Now().UTC())
	if v := strings.TrimSpace(r.URL.Query().Get("end")); v != "" {
		var err error
		end, err = parseDate(v)
		if err != nil {
			writeError(w, r, err)
			return
		}
	}

	category := strings.TrimSpace(r.URL.Query().Get("category"))

	expenses, err := s.expenses.List(r.Context(), owner)
	if err != nil {
		writeError(w, r, err)
		return
	}
	windowed, err := core.FilterRange(expenses, end.AddDays(-(days-1)), end)
	if err != nil {
		writeError(w, r, err)
		return
	}
	subset := core.FilterCategory(windowed, category)

	series := core.DailySeries(subset, end, days)
	totals := core.CategoryTotals(windowed)

	resp := chartResponse{
		Category: category,
		Days:     make([]dayBucketResponse, 0, len(series)),
		ByCat:    make([]categoryAmountResponse, 0, len(totals)),
	}
	if resp.Category == "" {
		resp.Category = core.CategoryAll
	}
	for _, b := range series {
		resp.Days = append(resp.Days, dayBucketResponse{
			Date:       b.Day.Key(),
			Total:      b.Total.String(),
			TotalCents: b.Total.Cents,
		})
	}
	for _, ca := range totals {
		resp.ByCat = append(resp.ByCat, categoryAmountResponse{
			Name:        ca.Name,
			Amount:      ca.Amount.String(),
			AmountCents: ca.Amount.Cents,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}
