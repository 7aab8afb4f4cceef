// Package domain contains persistence models for invoicing.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// InvoiceStatus represents invoice lifecycle states.
type InvoiceStatus string

const (
	InvoiceStatusPaid    InvoiceStatus = "Paid"
	InvoiceStatusPending InvoiceStatus = "Pending"
	InvoiceStatusUnPaid  InvoiceStatus = "UnPaid"
)

// Party identifies one side of an invoice (issuer or client).
type Party struct {
	BusinessName string `json:"businessName,omitempty"`
	ClientName   string `json:"clientName,omitempty"`
	Email        string `json:"email"`
	Address      string `json:"address"`
	Phone        string `json:"phone"`
}

// LineItem is one billable entry on an invoice. Total is always derived
// server-side from the other three fields; a caller-supplied value is
// discarded.
type LineItem struct {
	Name       string  `json:"name"`
	Quantity   float64 `json:"quantity"`
	UnitPrice  float64 `json:"unitPrice"`
	TaxPercent float64 `json:"taxPercent"`
	Total      float64 `json:"total"`
}

// Invoice represents an issued invoice owned by a single user.
type Invoice struct {
	ID            snowflake.ID      `gorm:"primaryKey" json:"id"`
	OwnerID       snowflake.ID      `gorm:"column:owner_id;not null;index;uniqueIndex:ux_invoice_owner_number" json:"ownerId"`
	InvoiceNumber string            `gorm:"type:text;not null;uniqueIndex:ux_invoice_owner_number" json:"invoiceNumber"`
	InvoiceDate   time.Time         `gorm:"not null" json:"invoiceDate"`
	DueDate       time.Time         `gorm:"not null" json:"dueDate"`
	BillFrom      Party             `gorm:"serializer:json" json:"billFrom"`
	BillTo        Party             `gorm:"serializer:json" json:"billTo"`
	Items         []LineItem        `gorm:"serializer:json" json:"items"`
	Notes         string            `gorm:"type:text" json:"notes"`
	PaymentTerms  string            `gorm:"type:text" json:"paymentTerms"`
	Status        InvoiceStatus     `gorm:"type:text;not null;default:'Pending'" json:"status"`
	SubTotal      float64           `gorm:"not null;default:0" json:"subTotal"`
	TaxTotal      float64           `gorm:"not null;default:0" json:"taxTotal"`
	Total         float64           `gorm:"not null;default:0" json:"total"`
	Metadata      datatypes.JSONMap `gorm:"type:jsonb" json:"metadata,omitempty"`
	CreatedAt     time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"createdAt"`
	UpdatedAt     time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updatedAt"`
}

// TableName sets the database table name.
func (Invoice) TableName() string { return "invoices" }
