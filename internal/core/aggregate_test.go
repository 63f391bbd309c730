package core

import (
	"math"
	"testing"
	"time"
)

func exp(amountCents int64, category string, d Date) Expense {
	return Expense{Amount: Money{Cents: amountCents}, Category: category, OccurredAt: d}
}

func TestFilterMonth(t *testing.T) {
	expenses := []Expense{
		exp(100, "Food & Beverage", NewDate(2026, time.February, 13)),
		exp(200, "Transport", NewDate(2026, time.January, 31)),
		exp(300, "Bills", NewDate(2026, time.February, 1)),
	}
	got := FilterMonth(expenses, 2026, time.February)
	if len(got) != 2 {
		t.Fatalf("expected 2 expenses, got %d", len(got))
	}
	// Relative input order preserved
	if got[0].Amount.Cents != 100 || got[1].Amount.Cents != 300 {
		t.Fatalf("order not preserved: %+v", got)
	}
	if len(expenses) != 3 {
		t.Fatal("input mutated")
	}
}

func TestFilterCategory(t *testing.T) {
	expenses := []Expense{
		exp(100, "Food & Beverage", NewDate(2026, time.February, 13)),
		exp(200, "Transport", NewDate(2026, time.February, 14)),
	}
	if got := FilterCategory(expenses, "Transport"); len(got) != 1 || got[0].Amount.Cents != 200 {
		t.Fatalf("category filter wrong: %+v", got)
	}
	if got := FilterCategory(expenses, CategoryAll); len(got) != 2 {
		t.Fatalf("All should be identity, got %d", len(got))
	}
}

func TestFilterRange(t *testing.T) {
	expenses := []Expense{
		exp(100, "Food & Beverage", NewDate(2026, time.February, 10)),
		exp(200, "Transport", NewDate(2026, time.February, 15)),
		exp(300, "Bills", NewDate(2026, time.February, 20)),
	}
	got, err := FilterRange(expenses, NewDate(2026, time.February, 10), NewDate(2026, time.February, 15))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 expenses inside inclusive range, got %d", len(got))
	}

	if _, err := FilterRange(expenses, NewDate(2026, time.March, 1), NewDate(2026, time.February, 1)); err != ErrInvalidRange {
		t.Fatalf("expected ErrInvalidRange, got %v", err)
	}
}

func TestTotalProperties(t *testing.T) {
	expenses := []Expense{
		exp(12500, "Food & Beverage", NewDate(2026, time.February, 13)),
		exp(3000, "Food & Beverage", NewDate(2026, time.February, 13)),
		exp(7000, "Transport", NewDate(2026, time.February, 11)),
	}
	total := Total(expenses)
	if total.Cents != 22500 {
		t.Fatalf("total = %d, want 22500", total.Cents)
	}
	if total.Cents < Largest(expenses).Amount.Cents {
		t.Fatal("total must be >= max single amount")
	}
	if Total(nil).Cents != 0 {
		t.Fatal("empty subset must total zero")
	}
}

func TestAvgPerDay(t *testing.T) {
	total := Money{Cents: 28000}
	avg := AvgPerDay(total, 2026, time.February) // 2026 is not a leap year: 28 days
	if avg != 1000 {
		t.Fatalf("avg = %v, want 1000", avg)
	}
	// avg * days-in-month == total within tolerance
	if diff := math.Abs(avg*float64(DaysInMonth(2026, time.February)) - float64(total.Cents)); diff > 1e-6 {
		t.Fatalf("avg*days differs from total by %v", diff)
	}
	if AvgPerDay(Money{}, 2026, time.February) != 0 {
		t.Fatal("zero total must yield zero average")
	}
}

func TestDaysInMonth(t *testing.T) {
	cases := []struct {
		year  int
		month time.Month
		want  int
	}{
		{2026, time.February, 28},
		{2024, time.February, 29},
		{2026, time.April, 30},
		{2026, time.December, 31},
	}
	for _, tc := range cases {
		if got := DaysInMonth(tc.year, tc.month); got != tc.want {
			t.Errorf("DaysInMonth(%d, %v) = %d, want %d", tc.year, tc.month, got, tc.want)
		}
	}
}

func TestLargest(t *testing.T) {
	a := exp(500, "Food & Beverage", NewDate(2026, time.February, 1))
	a.Notes = "first"
	b := exp(500, "Transport", NewDate(2026, time.February, 2))
	b.Notes = "second"
	got := Largest([]Expense{a, b})
	if got.Notes != "first" {
		t.Fatalf("tie must keep first-encountered, got %q", got.Notes)
	}

	placeholder := Largest(nil)
	if placeholder.Amount.Cents != 0 || placeholder.Notes != "" {
		t.Fatalf("empty subset must return zero placeholder, got %+v", placeholder)
	}
}

func TestCategoryTotalsSumMatchesTotal(t *testing.T) {
	expenses := []Expense{
		exp(12500, "Food & Beverage", NewDate(2026, time.February, 13)),
		exp(3000, "Food & Beverage", NewDate(2026, time.February, 13)),
		exp(7000, "Transport", NewDate(2026, time.February, 11)),
	}
	totals := CategoryTotals(expenses)
	var sum int64
	for _, ca := range totals {
		sum += ca.Amount.Cents
	}
	if sum != Total(expenses).Cents {
		t.Fatalf("category totals sum %d != total %d", sum, Total(expenses).Cents)
	}
	if len(totals) != 2 {
		t.Fatalf("only categories actually present should appear, got %d", len(totals))
	}
	if totals[0].Name != "Food & Beverage" || totals[1].Name != "Transport" {
		t.Fatalf("first-encounter order broken: %+v", totals)
	}
}

func TestTopCategory(t *testing.T) {
	top := TopCategory([]CategoryAmount{
		{Name: "Food & Beverage", Amount: Money{Cents: 15500}},
		{Name: "Transport", Amount: Money{Cents: 7000}},
	})
	if top.Name != "Food & Beverage" || top.Amount.Cents != 15500 {
		t.Fatalf("top = %+v", top)
	}

	// Tie keeps the first-encountered entry.
	tied := TopCategory([]CategoryAmount{
		{Name: "Shopping", Amount: Money{Cents: 100}},
		{Name: "Bills", Amount: Money{Cents: 100}},
	})
	if tied.Name != "Shopping" {
		t.Fatalf("tie-break broken, got %q", tied.Name)
	}

	empty := TopCategory(nil)
	if empty.Name != TopCategoryNone || empty.Amount.Cents != 0 {
		t.Fatalf("empty totals must yield placeholder, got %+v", empty)
	}
}

// Three-day window ending 2026-02-13: [70, 0, 155] with Food on top.
func TestDailySeriesScenario(t *testing.T) {
	expenses := []Expense{
		exp(12500, "Food & Beverage", NewDate(2026, time.February, 13)),
		exp(3000, "Food & Beverage", NewDate(2026, time.February, 13)),
		exp(7000, "Transport", NewDate(2026, time.February, 11)),
	}
	series := DailySeries(expenses, NewDate(2026, time.February, 13), 3)
	if len(series) != 3 {
		t.Fatalf("expected 3 buckets, got %d", len(series))
	}
	want := []int64{7000, 0, 15500}
	var sum int64
	for i, bucket := range series {
		if bucket.Total.Cents != want[i] {
			t.Errorf("bucket %d (%s) = %d, want %d", i, bucket.Day.Key(), bucket.Total.Cents, want[i])
		}
		sum += bucket.Total.Cents
	}
	if sum != Total(expenses).Cents {
		t.Fatalf("series sum %d != window total %d", sum, Total(expenses).Cents)
	}

	totals := CategoryTotals(expenses)
	if top := TopCategory(totals); top.Name != "Food & Beverage" {
		t.Fatalf("top category = %q, want Food & Beverage", top.Name)
	}
}

func TestDailySeriesExcludesOutsideWindow(t *testing.T) {
	expenses := []Expense{
		exp(100, "Other", NewDate(2026, time.February, 9)),
		exp(200, "Other", NewDate(2026, time.February, 13)),
	}
	series := DailySeries(expenses, NewDate(2026, time.February, 13), 3)
	var sum int64
	for _, b := range series {
		sum += b.Total.Cents
	}
	if sum != 200 {
		t.Fatalf("expense before window leaked in: sum = %d", sum)
	}
	if !series[0].Day.SameDay(NewDate(2026, time.February, 11)) {
		t.Fatalf("window start = %s, want 2026-02-11", series[0].Day.Key())
	}
}

func TestMonthOverview(t *testing.T) {
	expenses := []Expense{
		exp(12500, "Food & Beverage", NewDate(2026, time.February, 13)),
		exp(7000, "Transport", NewDate(2026, time.February, 11)),
		exp(9999, "Bills", NewDate(2026, time.March, 1)),
	}
	stats := MonthOverview(expenses, 2026, time.February)
	if stats.Total.Cents != 19500 {
		t.Fatalf("total = %d", stats.Total.Cents)
	}
	if stats.Largest.Amount.Cents != 12500 {
		t.Fatalf("largest = %d", stats.Largest.Amount.Cents)
	}
	if stats.Top.Name != "Food & Beverage" {
		t.Fatalf("top = %q", stats.Top.Name)
	}
	if len(stats.ByCategory) != 2 {
		t.Fatalf("by-category entries = %d", len(stats.ByCategory))
	}
}

func TestParseMonthKey(t *testing.T) {
	year, month, err := ParseMonthKey("2026-02")
	if err != nil || year != 2026 || month != time.February {
		t.Fatalf("got %d-%v err=%v", year, month, err)
	}
	for _, bad := range []string{"", "2026", "26-02", "2026-13", "2026-xx", "2026-02-01"} {
		if _, _, err := ParseMonthKey(bad); err == nil {
			t.Errorf("expected error for %q", bad)
		}
	}
}
