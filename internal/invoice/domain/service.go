package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
)

type Service interface {
	Create(ctx context.Context, ownerID snowflake.ID, req CreateInvoiceRequest) (*Invoice, error)
	List(ctx context.Context, ownerID snowflake.ID) ([]Invoice, error)
	GetByID(ctx context.Context, ownerID, id snowflake.ID) (*Invoice, error)
	Update(ctx context.Context, ownerID, id snowflake.ID, req UpdateInvoiceRequest) (*Invoice, error)
	Delete(ctx context.Context, ownerID, id snowflake.ID) error
}

// LineItemInput is a caller-supplied line; totals are never trusted from it.
type LineItemInput struct {
	Name       string  `json:"name"`
	Quantity   float64 `json:"quantity"`
	UnitPrice  float64 `json:"unitPrice"`
	TaxPercent float64 `json:"taxPercent"`
}

type CreateInvoiceRequest struct {
	InvoiceNumber string          `json:"invoiceNumber"`
	InvoiceDate   time.Time       `json:"invoiceDate"`
	DueDate       time.Time       `json:"dueDate"`
	BillFrom      Party           `json:"billFrom"`
	BillTo        Party           `json:"billTo"`
	Items         []LineItemInput `json:"items"`
	Notes         string          `json:"notes"`
	PaymentTerms  string          `json:"paymentTerms"`
	Status        string          `json:"status"`
}

// UpdateInvoiceRequest carries partial updates; nil fields keep the stored
// value. Totals are recomputed only when Items is present.
type UpdateInvoiceRequest struct {
	InvoiceNumber *string          `json:"invoiceNumber"`
	InvoiceDate   *time.Time       `json:"invoiceDate"`
	DueDate       *time.Time       `json:"dueDate"`
	BillFrom      *Party           `json:"billFrom"`
	BillTo        *Party           `json:"billTo"`
	Items         *[]LineItemInput `json:"items"`
	Notes         *string          `json:"notes"`
	PaymentTerms  *string          `json:"paymentTerms"`
	Status        *string          `json:"status"`
}
