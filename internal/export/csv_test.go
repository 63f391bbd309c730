package export

import (
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/hizkiajonathanbudiana/Tracker-Money/internal/core"
)

func expense(day int, cat string, cents int64, notes string) core.Expense {
	return core.Expense{
		Amount:     core.Money{Cents: cents},
		Category:   cat,
		OccurredAt: core.NewDate(2026, time.February, day),
		Notes:      notes,
	}
}

func TestCSVLayout(t *testing.T) {
	got := CSV([]core.Expense{
		expense(13, "Food & Beverage", 12500, "lunch"),
		expense(11, "Transport", 7000, ""),
	})

	want := strings.Join([]string{
		"Date,Category,Amount,Notes",
		"2026-02-13,Food & Beverage,125,lunch",
		"2026-02-11,Transport,70,",
		"",
		",Total,195",
		"",
	}, "\n")
	if got != want {
		t.Fatalf("csv mismatch:\ngot:\n%q\nwant:\n%q", got, want)
	}
}

func TestCSVEscaping(t *testing.T) {
	got := CSV([]core.Expense{
		expense(1, "Food, drinks", 9950, `he said "ok"`),
	})
	if !strings.Contains(got, `"Food, drinks"`) {
		t.Fatalf("comma field not quoted: %q", got)
	}
	if !strings.Contains(got, `"he said ""ok"""`) {
		t.Fatalf("quote field not doubled: %q", got)
	}
}

// The rows section must survive a round trip through a standard CSV reader.
func TestCSVParsesBack(t *testing.T) {
	doc := CSV([]core.Expense{
		expense(13, "Food & Beverage", 12550, "lunch, downtown"),
		expense(11, "Transport", 7000, ""),
	})

	sections := strings.SplitN(doc, "\n\n", 2)
	if len(sections) != 2 {
		t.Fatalf("missing blank separator line: %q", doc)
	}
	records, err := csv.NewReader(strings.NewReader(sections[0])).ReadAll()
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("records = %d, want header + 2 rows", len(records))
	}
	if records[1][1] != "Food & Beverage" || records[1][2] != "125.50" {
		t.Fatalf("row = %v", records[1])
	}
	if records[2][3] != "" {
		t.Fatalf("empty notes round-trip: %v", records[2])
	}

	if !strings.HasPrefix(sections[1], ",Total,195.50\n") {
		t.Fatalf("total row = %q", sections[1])
	}
}

func TestCSVEmpty(t *testing.T) {
	got := CSV(nil)
	want := "Date,Category,Amount,Notes\n\n,Total,0\n"
	if got != want {
		t.Fatalf("empty export = %q, want %q", got, want)
	}
}

func TestFilename(t *testing.T) {
	if got := Filename("2026-02"); got != "expenses-2026-02.csv" {
		t.Fatalf("filename = %q", got)
	}
}
