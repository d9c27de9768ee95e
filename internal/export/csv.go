// Package export serializes expense records to the CSV payload offered
// for download. It only produces text; turning the payload into a file
// is the presentation layer's concern.
package export

import (
	"errors"
	"strings"
	"time"

	"noura/internal/core"
)

// ErrNothingToExport is returned when the full ledger holds no records.
var ErrNothingToExport = errors.New("no expenses to export")

const header = `Date,Name,Category,Amount,Notes`

// Payload builds the CSV text for the given filtered records.
//
// The empty-export check runs against the full ledger, not the filtered
// subset: an empty filter result over a non-empty ledger still exports,
// producing a headers-only payload.
//
// Every field is double-quoted and amounts carry exactly two decimals.
// Rows are LF-joined UTF-8 text.
func Payload(ledgerRecords, filtered []core.ExpenseRecord) (string, error) {
	if len(ledgerRecords) == 0 {
		return "", ErrNothingToExport
	}

	var b strings.Builder
	b.WriteString(header)
	for _, r := range filtered {
		b.WriteByte('\n')
		writeRow(&b, r)
	}
	return b.String(), nil
}

func writeRow(b *strings.Builder, r core.ExpenseRecord) {
	fields := []string{
		r.Date.String(),
		r.Name,
		r.Category,
		core.FormatAmount(r.Amount),
		r.Notes, // zero value already is the empty-string default
	}
	for i, f := range fields {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteByte('"')
		b.WriteString(strings.ReplaceAll(f, `"`, `""`))
		b.WriteByte('"')
	}
}

// Filename suggests the download name: noura_<username>_<ISO-date>.csv.
func Filename(username string, now time.Time) string {
	return "noura_" + username + "_" + now.Format("2006-01-02") + ".csv"
}
