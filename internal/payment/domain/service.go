package domain

import (
	"context"
	"errors"
)

type CreatePaymentRequest struct {
	InvoiceID     string
	Amount        string
	PaymentDate   string
	PaymentMethod string
	Note          string
}

// UpdatePaymentRequest carries a partial update; nil fields are left untouched.
type UpdatePaymentRequest struct {
	ID            string
	Amount        *string
	PaymentDate   *string
	PaymentMethod *string
	Note          *string
}

type Service interface {
	Create(ctx context.Context, req CreatePaymentRequest) (Payment, error)
	List(ctx context.Context) ([]Payment, error)
	GetByID(ctx context.Context, id string) (Payment, error)
	Update(ctx context.Context, req UpdatePaymentRequest) (Payment, error)
	Delete(ctx context.Context, id string) error
}

var (
	ErrInvalidID      = errors.New("invalid_id")
	ErrInvalidInvoice = errors.New("invalid_invoice")
	ErrInvalidAmount  = errors.New("invalid_amount")
	ErrInvalidDate    = errors.New("invalid_payment_date")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrNotFound       = errors.New("not_found")
)
