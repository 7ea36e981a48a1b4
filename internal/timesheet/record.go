// Package timesheet turns raw time-tracking records into invoice line
// items. Record sources (a spreadsheet, the local task store) produce
// the named Record shape so nothing downstream interprets column
// positions.
package timesheet

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/angelofallars/hourbill/internal/invoice"
)

// Billing-status values. Matching against StatusUnbilled is exact and
// case-sensitive.
const (
	StatusUnbilled = "Not Billed"
	StatusBilled   = "Billed"
)

// noteDelimiter separates an optional short title from the description
// inside the notes field.
const noteDelimiter = " | "

// wrapWidth is the line width descriptions are rewrapped to so the
// generated document stays readable.
const wrapWidth = 70

var (
	// ErrMalformedRecord marks a raw record whose fields cannot be
	// interpreted. It is a data error, never worth retrying.
	ErrMalformedRecord = errors.New("malformed record")

	// ErrSourceRead marks a failure to read records from their source.
	// Callers may re-run the whole read; the pipeline itself does not.
	ErrSourceRead = errors.New("reading time-tracking records failed")
)

// Record is one raw time-tracking entry.
type Record struct {
	// ID is the task-store row id. Zero for read-only sources.
	ID     int64
	Date   string
	Hours  string
	Rate   string
	Notes  string
	Status string
}

// Source reads the ordered raw records for one client.
type Source interface {
	Records(ctx context.Context) ([]Record, error)
}

// Marker is implemented by sources that can flag records as billed
// after an invoice covering them has been saved.
type Marker interface {
	MarkBilled(ctx context.Context, recs []Record) error
}

// SelectUnbilled returns the records eligible for invoicing, in source
// order. A record qualifies only when its status is exactly
// StatusUnbilled and its work date is non-empty (trailing blank rows in
// spreadsheets carry a status cell but no date).
func SelectUnbilled(recs []Record) []Record {
	out := make([]Record, 0, len(recs))
	for _, rec := range recs {
		if rec.Status != StatusUnbilled {
			continue
		}
		if rec.Date == "" {
			continue
		}
		out = append(out, rec)
	}
	return out
}

// Parse interprets one raw record as an invoice line item.
func Parse(rec Record, loc *time.Location) (invoice.LineItem, error) {
	date, err := time.ParseInLocation(invoice.DateLayout, rec.Date, loc)
	if err != nil {
		return invoice.LineItem{}, fmt.Errorf("%w: work date %q", ErrMalformedRecord, rec.Date)
	}

	hours, err := parseAmount("hours", rec.Hours)
	if err != nil {
		return invoice.LineItem{}, err
	}

	rate, err := parseAmount("rate", rec.Rate)
	if err != nil {
		return invoice.LineItem{}, err
	}

	title, description, err := splitNotes(rec.Notes)
	if err != nil {
		return invoice.LineItem{}, err
	}

	return invoice.LineItem{
		Date:        date,
		Hours:       hours,
		Rate:        rate,
		Description: description,
		Title:       title,
	}, nil
}

// parseAmount parses a finite, non-negative number. Unparsable values
// are rejected, never coerced to zero.
func parseAmount(field, s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s %q is not a number", ErrMalformedRecord, field, s)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0, fmt.Errorf("%w: %s %q must be finite and non-negative", ErrMalformedRecord, field, s)
	}
	return v, nil
}

// splitNotes derives the optional title and the description from the
// notes field. No delimiter: the whole string is the description.
// One delimiter: (title, wrapped description). More: bad formatting.
func splitNotes(notes string) (title, description string, err error) {
	parts := strings.Split(notes, noteDelimiter)
	switch len(parts) {
	case 1:
		return "", parts[0], nil
	case 2:
		return parts[0], wrap(parts[1], wrapWidth), nil
	default:
		return "", "", fmt.Errorf("%w: bad formatting in %q", ErrMalformedRecord, notes)
	}
}

// wrap greedily rewraps s at word boundaries so no line exceeds width.
// Words longer than width stay on their own line, untruncated.
func wrap(s string, width int) string {
	words := strings.Fields(s)
	if len(words) == 0 {
		return ""
	}

	var b strings.Builder
	lineLen := 0
	for i, word := range words {
		if i == 0 {
			b.WriteString(word)
			lineLen = len(word)
			continue
		}
		if lineLen+1+len(word) > width {
			b.WriteByte('\n')
			b.WriteString(word)
			lineLen = len(word)
			continue
		}
		b.WriteByte(' ')
		b.WriteString(word)
		lineLen += 1 + len(word)
	}
	return b.String()
}
