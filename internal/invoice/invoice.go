// Package invoice holds the invoice domain types.
package invoice

import (
	"encoding/hex"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	// DateLayout is the long-form calendar date used on invoices and in
	// time-tracking records, e.g. "March 3, 2024".
	DateLayout = "January 2, 2006"

	// FileStampLayout names saved artifacts. It sorts lexically and
	// carries a timezone marker.
	FileStampLayout = "2006-01-02_15:04:05_MST"
)

// Default column headers, set for hourly billing.
const (
	DefaultItemHeader     = "Description"
	DefaultQuantityHeader = "Hours"
)

// LineItem is a single billable unit of work on an invoice.
type LineItem struct {
	Date        time.Time
	Hours       float64
	Rate        float64
	Description string
	Title       string
}

// Invoice is the complete data for one invoice. It is built once per
// generation run and not mutated afterwards.
type Invoice struct {
	SenderName     string
	SenderLogoURL  string
	RecipientName  string
	Items          []LineItem
	DueDate        time.Time
	ItemHeader     string
	QuantityHeader string
	Number         string
	Terms          string
}

// GeneratedInvoice is a rendered PDF invoice.
type GeneratedInvoice struct {
	Invoice     *Invoice
	PDFData     []byte
	GeneratedAt time.Time
}

// NewNumber returns a fresh invoice number: sixteen uppercase hex
// characters from a random UUID. Numbers are locally distinguishing,
// not globally unique.
func NewNumber() string {
	id := uuid.New()
	return strings.ToUpper(hex.EncodeToString(id[8:]))
}

// PrettyDate formats t the way it appears on the invoice.
func PrettyDate(t time.Time) string { return t.Format(DateLayout) }

// FileStamp formats t for artifact filenames.
func FileStamp(t time.Time) string { return t.Format(FileStampLayout) }
