package invoicegen

import (
	"fmt"
	"net/url"

	"github.com/angelofallars/hourbill/internal/invoice"
)

// Payload flattens an invoice into the key/value request shape the
// generation service expects. Line items become bracket-indexed keys
// (items[1][name], items[1][quantity], ...) counted from 1 in item
// order; the one-based index is part of the service's contract.
func Payload(inv *invoice.Invoice, date string) url.Values {
	v := url.Values{}
	v.Set("from", inv.SenderName)
	v.Set("to", inv.RecipientName)
	v.Set("logo", inv.SenderLogoURL)
	v.Set("date", date)
	v.Set("due_date", invoice.PrettyDate(inv.DueDate))
	v.Set("item_header", inv.ItemHeader)
	v.Set("quantity_header", inv.QuantityHeader)
	v.Set("number", inv.Number)
	if inv.Terms != "" {
		v.Set("terms", inv.Terms)
	}

	for i, item := range inv.Items {
		name := invoice.PrettyDate(item.Date)
		if item.Title != "" {
			name += " - " + item.Title
		}
		n := i + 1
		v.Set(fmt.Sprintf("items[%d][name]", n), name)
		v.Set(fmt.Sprintf("items[%d][quantity]", n), fmt.Sprintf("%.1f", item.Hours))
		v.Set(fmt.Sprintf("items[%d][unit_cost]", n), fmt.Sprintf("%.0f", item.Rate))
		v.Set(fmt.Sprintf("items[%d][description]", n), item.Description)
	}
	return v
}
