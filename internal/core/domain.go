package core

import (
	"errors"
	"strings"
	"time"
)

type (
	// Date carries day-granularity calendar semantics. The time-of-day part of
	// the embedded time is always midnight UTC; comparisons go through calendar
	// days, never instants.
	Date struct {
		time.Time
	}

	Money struct {
		Cents int64
	}

	// Expense is a single spending record owned by one user. CashUsage maps a
	// wallet denomination ID to the number of pieces handed over; it is only
	// set when the expense was paid with tracked cash. Stale denomination IDs
	// are tolerated downstream.
	Expense struct {
		ID         string
		OwnerID    string
		Amount     Money
		Category   string
		OccurredAt Date
		RecordedAt time.Time
		Notes      string
		CashUsage  map[string]int64
	}

	// Income is a write-only audit record; the wallet balance is adjusted
	// separately via an atomic increment.
	Income struct {
		ID         string
		OwnerID    string
		Amount     Money
		Note       string
		RecordedAt time.Time
	}
)

var (
	ErrInvalidDate     = errors.New("invalid date")
	ErrInvalidAmount   = errors.New("invalid amount")
	ErrEmptyCategory   = errors.New("empty category")
	ErrNotesTooLong    = errors.New("notes too long (max 500 characters)")
	ErrNegativeUsage   = errors.New("negative denomination usage")
	ErrInvalidRange    = errors.New("start date after end date")
	ErrInvalidWindow   = errors.New("day window must be at least 1")
	ErrInvalidMonthKey = errors.New("invalid month key, want YYYY-MM")
)

// NewDate builds a day-granularity date. Inputs are normalized by the time
// package, so NewDate(2026, 2, 30) is March 2nd rather than an error; Validate
// only rejects the zero value.
func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates an arbitrary timestamp to its calendar day.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

// SameDay reports whether two dates fall on the same calendar day.
func (d Date) SameDay(other Date) bool {
	return d.Year() == other.Year() && d.YearDay() == other.YearDay()
}

// AddDays returns the date shifted by the given number of calendar days.
func (d Date) AddDays(days int) Date {
	return NewDate(d.Year(), d.Month(), d.Day()+days)
}

// Key renders the date as YYYY-MM-DD.
func (d Date) Key() string {
	return d.Format("2006-01-02")
}

// MonthKey renders the date's month as YYYY-MM.
func (d Date) MonthKey() string {
	return d.Format("2006-01")
}

func (m Money) Validate() error {
	if m.Cents <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

func (e Expense) Validate() error {
	if err := e.OccurredAt.Validate(); err != nil {
		return err
	}
	if err := e.Amount.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(e.Category) == "" {
		return ErrEmptyCategory
	}
	if len(e.Notes) > 500 {
		return ErrNotesTooLong
	}
	for _, count := range e.CashUsage {
		if count < 0 {
			return ErrNegativeUsage
		}
	}
	return nil
}

func (in Income) Validate() error {
	return in.Amount.Validate()
}
