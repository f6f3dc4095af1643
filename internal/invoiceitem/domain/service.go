package domain

import (
	"context"
	"errors"
)

type CreateItemRequest struct {
	InvoiceID     string
	Description   string
	Quantity      *int64
	UnitPrice     string
	TaxPercentage *string
}

// UpdateItemRequest carries a partial update; nil fields keep their stored
// values. The derived amounts are always recomputed from the merged set.
type UpdateItemRequest struct {
	ID            string
	Description   *string
	Quantity      *int64
	UnitPrice     *string
	TaxPercentage *string
}

type Service interface {
	Create(ctx context.Context, req CreateItemRequest) (InvoiceItem, error)
	ListByInvoice(ctx context.Context, invoiceID string) ([]InvoiceItem, error)
	GetByID(ctx context.Context, id string) (InvoiceItem, error)
	Update(ctx context.Context, req UpdateItemRequest) (InvoiceItem, error)
	Delete(ctx context.Context, id string) error
}

var (
	ErrInvalidID            = errors.New("invalid_id")
	ErrInvalidInvoice       = errors.New("invalid_invoice")
	ErrInvalidDescription   = errors.New("invalid_description")
	ErrInvalidQuantity      = errors.New("invalid_quantity")
	ErrInvalidUnitPrice     = errors.New("invalid_unit_price")
	ErrInvalidTaxPercentage = errors.New("invalid_tax_percentage")
	ErrNotFound             = errors.New("not_found")
)
