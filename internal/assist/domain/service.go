package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
)

type Service interface {
	// ExtractInvoiceDraft never fails: any error in the pipeline collapses
	// to the fixed demo draft.
	ExtractInvoiceDraft(ctx context.Context, text string) ExtractedInvoiceDraft
	GenerateInsights(ctx context.Context, ownerID snowflake.ID) (DashboardInsights, error)
	GeneratePaymentReminder(ctx context.Context, ownerID, invoiceID snowflake.ID) (string, error)
}
