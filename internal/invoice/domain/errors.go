package domain

import "errors"

var (
	ErrNotFound              = errors.New("invoice_not_found")
	ErrItemsRequired         = errors.New("invoice_items_required")
	ErrInvoiceNumberRequired = errors.New("invoice_number_required")
	ErrInvalidStatus         = errors.New("invalid_status")
	ErrDuplicateNumber       = errors.New("duplicate_invoice_number")
)
