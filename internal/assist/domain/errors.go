package domain

import "errors"

var (
	// ErrEmptyResponse marks a completion that came back structurally empty.
	ErrEmptyResponse = errors.New("empty model response")
	// ErrMalformedResponse marks a completion that could not be parsed.
	ErrMalformedResponse = errors.New("malformed model response")
	// ErrNoInvoices is returned when insights are requested with no data.
	ErrNoInvoices = errors.New("no invoices found")
)
