package core

import (
	"strconv"
	"strings"
	"time"
)

// CategoryAll is the filter value that selects every category.
const CategoryAll = "All"

// TopCategoryNone is the placeholder name returned when no expenses exist.
const TopCategoryNone = "N/A"

type (
	// CategoryAmount is an amount aggregated under one category name.
	CategoryAmount struct {
		Name   string
		Amount Money
	}

	// DayBucket is one calendar day of a dense daily series.
	DayBucket struct {
		Day   Date
		Total Money
	}

	// MonthStats is the compact dashboard summary for one calendar month.
	MonthStats struct {
		Year       int
		Month      time.Month
		Total      Money
		AvgPerDay  float64 // cents per calendar day of the month
		Largest    Expense
		Top        CategoryAmount
		ByCategory []CategoryAmount
	}
)

// ParseMonthKey parses a "YYYY-MM" selector.
func ParseMonthKey(key string) (int, time.Month, error) {
	parts := strings.Split(key, "-")
	if len(parts) != 2 || len(parts[0]) != 4 {
		return 0, 0, ErrInvalidMonthKey
	}
	year, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, ErrInvalidMonthKey
	}
	month, err := strconv.Atoi(parts[1])
	if err != nil || month < 1 || month > 12 {
		return 0, 0, ErrInvalidMonthKey
	}
	return year, time.Month(month), nil
}

// FilterMonth returns the expenses whose OccurredAt falls in the given
// calendar month, preserving input order. The input is never mutated.
func FilterMonth(expenses []Expense, year int, month time.Month) []Expense {
	out := make([]Expense, 0, len(expenses))
	for _, e := range expenses {
		if e.OccurredAt.Year() == year && e.OccurredAt.Month() == month {
			out = append(out, e)
		}
	}
	return out
}

// FilterCategory returns the expenses in the given category. CategoryAll is
// the identity transform.
func FilterCategory(expenses []Expense, category string) []Expense {
	if category == CategoryAll || category == "" {
		return expenses
	}
	out := make([]Expense, 0, len(expenses))
	for _, e := range expenses {
		if e.Category == category {
			out = append(out, e)
		}
	}
	return out
}

// FilterRange returns the expenses whose OccurredAt falls inside the inclusive
// [start, end] day window. A start after end is a validation error.
func FilterRange(expenses []Expense, start, end Date) ([]Expense, error) {
	if start.After(end.Time) {
		return nil, ErrInvalidRange
	}
	out := make([]Expense, 0, len(expenses))
	for _, e := range expenses {
		d := e.OccurredAt
		if d.Before(start.Time) || d.After(end.Time) {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

// Total sums the amounts of a subset. Zero for an empty subset.
func Total(expenses []Expense) Money {
	var sum int64
	for _, e := range expenses {
		sum += e.Amount.Cents
	}
	return Money{Cents: sum}
}

// DaysInMonth returns the actual day count of a calendar month (28-31).
func DaysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// AvgPerDay divides a monthly total across every calendar day of the month,
// not just the days that saw spending. Returned in cents per day.
func AvgPerDay(total Money, year int, month time.Month) float64 {
	if total.Cents == 0 {
		return 0
	}
	return float64(total.Cents) / float64(DaysInMonth(year, month))
}

// Largest returns the expense with the maximum amount, first occurrence
// winning ties. On an empty subset it returns a zero-amount placeholder;
// callers check Amount.Cents == 0 before rendering.
func Largest(expenses []Expense) Expense {
	var max Expense
	for _, e := range expenses {
		if e.Amount.Cents > max.Amount.Cents {
			max = e
		}
	}
	return max
}

// CategoryTotals sums a subset per category, listing only categories that
// actually appear, in first-encounter order. The stable order makes the
// TopCategory tie-break deterministic.
func CategoryTotals(expenses []Expense) []CategoryAmount {
	index := make(map[string]int, len(expenses))
	totals := make([]CategoryAmount, 0, len(expenses))
	for _, e := range expenses {
		i, ok := index[e.Category]
		if !ok {
			i = len(totals)
			index[e.Category] = i
			totals = append(totals, CategoryAmount{Name: e.Category})
		}
		totals[i].Amount.Cents += e.Amount.Cents
	}
	return totals
}

// TopCategory picks the entry with the maximum sum, first occurrence winning
// ties. Empty input yields the "N/A" placeholder.
func TopCategory(totals []CategoryAmount) CategoryAmount {
	top := CategoryAmount{Name: TopCategoryNone}
	for _, ca := range totals {
		if ca.Amount.Cents > top.Amount.Cents {
			top = ca
		}
	}
	return top
}

// DailySeries buckets a subset into exactly `days` consecutive calendar days
// ending at `end`. Days without expenses stay at zero so charts render flat
// regions instead of gaps. Callers validate days >= 1 before calling.
func DailySeries(expenses []Expense, end Date, days int) []DayBucket {
	start := end.AddDays(-(days - 1))
	series := make([]DayBucket, days)
	offsets := make(map[string]int, days)
	for i := range series {
		day := start.AddDays(i)
		series[i] = DayBucket{Day: day}
		offsets[day.Key()] = i
	}
	for _, e := range expenses {
		if i, ok := offsets[e.OccurredAt.Key()]; ok {
			series[i].Total.Cents += e.Amount.Cents
		}
	}
	return series
}

// MonthOverview derives the full dashboard summary for one month from the raw
// expense collection.
func MonthOverview(expenses []Expense, year int, month time.Month) MonthStats {
	subset := FilterMonth(expenses, year, month)
	total := Total(subset)
	byCategory := CategoryTotals(subset)
	return MonthStats{
		Year:       year,
		Month:      month,
		Total:      total,
		AvgPerDay:  AvgPerDay(total, year, month),
		Largest:    Largest(subset),
		Top:        TopCategory(byCategory),
		ByCategory: byCategory,
	}
}
