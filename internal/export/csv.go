package export

import (
	"strings"

	"github.com/hizkiajonathanbudiana/Tracker-Money/internal/core"
)

// csvHeader is the fixed column order consumed by the spreadsheet import
// flows users already have. Do not reorder.
const csvHeader = "Date,Category,Amount,Notes"

// CSV renders expenses as a spreadsheet-friendly document: a header row, one
// row per expense, a blank separator line and a trailing total row. The
// total is recomputed from the rows so the document is self-consistent even
// when the caller filtered the slice.
func CSV(expenses []core.Expense) string {
	var b strings.Builder
	b.WriteString(csvHeader)
	b.WriteByte('\n')

	var total core.Money
	for _, e := range expenses {
		b.WriteString(e.OccurredAt.Key())
		b.WriteByte(',')
		b.WriteString(escapeField(e.Category))
		b.WriteByte(',')
		b.WriteString(e.Amount.String())
		b.WriteByte(',')
		b.WriteString(escapeField(e.Notes))
		b.WriteByte('\n')
		total = total.Add(e.Amount)
	}

	b.WriteByte('\n')
	b.WriteString(",Total,")
	b.WriteString(total.String())
	b.WriteByte('\n')
	return b.String()
}

// Filename derives the suggested download name for a month export,
// e.g. "expenses-2026-02.csv".
func Filename(monthKey string) string {
	return "expenses-" + monthKey + ".csv"
}

// escapeField quotes a field when it contains a comma, quote or newline,
// doubling embedded quotes per RFC 4180.
func escapeField(s string) string {
	if !strings.ContainsAny(s, ",\"\n\r") {
		return s
	}
	return "\"" + strings.ReplaceAll(s, "\"", "\"\"") + "\""
}
