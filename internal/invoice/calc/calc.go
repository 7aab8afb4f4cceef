// Package calc implements invoice total computation. It is pure: no I/O, no
// clock, no randomness. The same function runs at creation and update time so
// stored totals can never drift from the item list.
package calc

import (
	"strings"

	"github.com/smallbiznis/billora/internal/invoice/domain"
)

// Totals aggregates the derived amounts of an invoice.
type Totals struct {
	SubTotal float64
	TaxTotal float64
	Total    float64
}

// ComputeTotals derives per-item and aggregate totals from caller-supplied
// lines. Item totals are overwritten, never trusted. Values keep full float64
// precision; rounding is a display concern at output boundaries.
func ComputeTotals(items []domain.LineItemInput) ([]domain.LineItem, Totals, error) {
	if len(items) == 0 {
		return nil, Totals{}, domain.ErrItemsRequired
	}

	out := make([]domain.LineItem, 0, len(items))
	var totals Totals
	for _, in := range items {
		base := in.Quantity * in.UnitPrice
		tax := base * in.TaxPercent / 100

		totals.SubTotal += base
		totals.TaxTotal += tax

		out = append(out, domain.LineItem{
			Name:       in.Name,
			Quantity:   in.Quantity,
			UnitPrice:  in.UnitPrice,
			TaxPercent: in.TaxPercent,
			Total:      base + tax,
		})
	}
	totals.Total = totals.SubTotal + totals.TaxTotal

	return out, totals, nil
}

// ParseStatus validates a status string against the lifecycle enum. The empty
// string maps to Pending so creation without an explicit status works.
func ParseStatus(raw string) (domain.InvoiceStatus, error) {
	switch domain.InvoiceStatus(strings.TrimSpace(raw)) {
	case domain.InvoiceStatusPaid:
		return domain.InvoiceStatusPaid, nil
	case domain.InvoiceStatusPending, "":
		return domain.InvoiceStatusPending, nil
	case domain.InvoiceStatusUnPaid:
		return domain.InvoiceStatusUnPaid, nil
	default:
		return "", domain.ErrInvalidStatus
	}
}
