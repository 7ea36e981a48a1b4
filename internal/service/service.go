// Package service wires the invoice pipeline: select a client's
// unbilled records, parse them into line items, assemble an invoice,
// generate the PDF and persist it.
package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/angelofallars/hourbill/internal/config"
	"github.com/angelofallars/hourbill/internal/invoice"
	"github.com/angelofallars/hourbill/internal/timesheet"
)

// Generator renders an invoice into a PDF artifact.
type Generator interface {
	Generate(ctx context.Context, inv *invoice.Invoice) (*invoice.GeneratedInvoice, error)
}

type Invoice interface {
	Assemble(items []invoice.LineItem, client config.ClientProfile, sender config.SenderProfile) *invoice.Invoice
	Run(ctx context.Context, src timesheet.Source, client config.ClientProfile, sender config.SenderProfile) (string, error)
}

type pipeline struct {
	cfg  *config.Config
	gen  Generator
	slog *slog.Logger
	now  func() time.Time
}

func NewInvoice(cfg *config.Config, gen Generator, logger *slog.Logger) *pipeline {
	return &pipeline{
		cfg:  cfg,
		gen:  gen,
		slog: logger,
		now:  cfg.Now,
	}
}

// WithNow overrides the pipeline clock.
func (p *pipeline) WithNow(now func() time.Time) *pipeline {
	p.now = now
	return p
}

// Assemble combines line items with the client and sender profiles into
// a complete invoice. The due date is now plus the client's offset, and
// every call mints a fresh invoice number.
func (p *pipeline) Assemble(items []invoice.LineItem, client config.ClientProfile, sender config.SenderProfile) *invoice.Invoice {
	inv := &invoice.Invoice{
		SenderName:     sender.From,
		SenderLogoURL:  sender.LogoURL,
		RecipientName:  client.InvoiceTo,
		Items:          items,
		DueDate:        p.now().AddDate(0, 0, client.DueDateDays),
		ItemHeader:     invoice.DefaultItemHeader,
		QuantityHeader: invoice.DefaultQuantityHeader,
		Number:         invoice.NewNumber(),
		Terms:          sender.Terms,
	}
	if client.ItemHeader != "" {
		inv.ItemHeader = client.ItemHeader
	}
	if client.QuantityHeader != "" {
		inv.QuantityHeader = client.QuantityHeader
	}
	return inv
}

// Run executes the pipeline for one client and returns the path of the
// saved artifact. From the caller's point of view an invoice is
// generated and persisted atomically or not at all; any failure aborts
// the run before a path is reported.
func (p *pipeline) Run(ctx context.Context, src timesheet.Source, client config.ClientProfile, sender config.SenderProfile) (string, error) {
	recs, err := src.Records(ctx)
	if err != nil {
		return "", err
	}

	unbilled := timesheet.SelectUnbilled(recs)
	items := make([]invoice.LineItem, 0, len(unbilled))
	billed := make([]timesheet.Record, 0, len(unbilled))
	for _, rec := range unbilled {
		item, err := timesheet.Parse(rec, p.cfg.Location())
		if err != nil {
			if p.cfg.OnMalformed == config.MalformedSkip {
				p.slog.Warn("skipping malformed record", "date", rec.Date, "err", err)
				continue
			}
			return "", err
		}
		items = append(items, item)
		billed = append(billed, rec)
	}

	inv := p.Assemble(items, client, sender)
	p.slog.Info("assembled invoice",
		"client", client.Name, "number", inv.Number, "items", len(inv.Items))

	gen, err := p.gen.Generate(ctx, inv)
	if err != nil {
		return "", err
	}

	path, err := p.Persist(gen, client)
	if err != nil {
		return "", err
	}
	p.slog.Info("saved invoice", "path", path)

	if marker, ok := src.(timesheet.Marker); ok {
		if err := marker.MarkBilled(ctx, billed); err != nil {
			// The artifact is already on disk; failing the run here
			// would make the caller regenerate a saved invoice.
			p.slog.Warn("invoice saved but records not marked billed", "path", path, "err", err)
		}
	}

	return path, nil
}
