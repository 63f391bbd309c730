package core

import (
	"testing"
	"time"
)

func TestExpenseValidate(t *testing.T) {
	good := Expense{
		OccurredAt: NewDate(2026, time.February, 13),
		Amount:     Money{Cents: 100},
		Category:   "Food & Beverage",
		Notes:      "lunch",
	}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	bads := []Expense{
		{Amount: Money{Cents: 100}, Category: "c"},                                                           // zero date
		{OccurredAt: NewDate(2026, time.February, 13), Amount: Money{Cents: 0}, Category: "c"},               // zero amount
		{OccurredAt: NewDate(2026, time.February, 13), Amount: Money{Cents: -5}, Category: "c"},              // negative amount
		{OccurredAt: NewDate(2026, time.February, 13), Amount: Money{Cents: 100}, Category: "  "},            // blank category
		{OccurredAt: NewDate(2026, time.February, 13), Amount: Money{Cents: 100}, Category: "c", CashUsage: map[string]int64{"twd-100": -1}},
	}
	for i, e := range bads {
		if err := e.Validate(); err == nil {
			t.Errorf("case %d expected error", i)
		}
	}
}

func TestDateHelpers(t *testing.T) {
	d := NewDate(2026, time.February, 13)
	if d.Key() != "2026-02-13" {
		t.Fatalf("Key = %q", d.Key())
	}
	if d.MonthKey() != "2026-02" {
		t.Fatalf("MonthKey = %q", d.MonthKey())
	}
	if !d.AddDays(-2).SameDay(NewDate(2026, time.February, 11)) {
		t.Fatal("AddDays broken")
	}
	// Month boundary rollover
	if !NewDate(2026, time.February, 28).AddDays(1).SameDay(NewDate(2026, time.March, 1)) {
		t.Fatal("AddDays must roll over month boundary")
	}
	if DateOf(time.Date(2026, time.February, 13, 23, 59, 0, 0, time.UTC)).Key() != "2026-02-13" {
		t.Fatal("DateOf must truncate to the calendar day")
	}
}

func TestIncomeValidate(t *testing.T) {
	if err := (Income{Amount: Money{Cents: 500}}).Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if err := (Income{}).Validate(); err == nil {
		t.Fatal("expected error for zero amount")
	}
}
