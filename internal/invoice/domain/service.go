package domain

import (
	"context"
	"errors"
)

type CreateInvoiceRequest struct {
	ClientID    string
	InvoiceDate string
	DueDate     string
	Total       string
	Status      string
}

// UpdateInvoiceRequest carries a partial update; nil fields are left untouched.
type UpdateInvoiceRequest struct {
	ID          string
	InvoiceDate *string
	DueDate     *string
	Total       *string
	Status      *string
}

type Service interface {
	Create(ctx context.Context, req CreateInvoiceRequest) (Invoice, error)
	// List returns the authenticated user's invoices with embedded clients.
	List(ctx context.Context) ([]Invoice, error)
	GetByID(ctx context.Context, id string) (Invoice, error)
	Update(ctx context.Context, req UpdateInvoiceRequest) (Invoice, error)
	Delete(ctx context.Context, id string) error
}

var (
	ErrInvalidID      = errors.New("invalid_id")
	ErrInvalidClient  = errors.New("invalid_client")
	ErrInvalidDate    = errors.New("invalid_invoice_date")
	ErrInvalidDueDate = errors.New("invalid_due_date")
	ErrInvalidTotal   = errors.New("invalid_total")
	ErrInvalidStatus  = errors.New("invalid_status")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrNotFound       = errors.New("not_found")
)
