package domain

import (
	"context"
	"errors"
)

type CreateClientRequest struct {
	Name    string
	Email   string
	Phone   string
	Address string
	Company string
	State   string
	GSTIN   string
}

// UpdateClientRequest carries a partial update; nil fields are left untouched.
type UpdateClientRequest struct {
	ID      string
	Name    *string
	Email   *string
	Phone   *string
	Address *string
	Company *string
	State   *string
	GSTIN   *string
}

type Service interface {
	Create(ctx context.Context, req CreateClientRequest) (Client, error)
	List(ctx context.Context) ([]Client, error)
	GetByID(ctx context.Context, id string) (Client, error)
	Update(ctx context.Context, req UpdateClientRequest) (Client, error)
	Delete(ctx context.Context, id string) error
}

var (
	ErrInvalidID    = errors.New("invalid_id")
	ErrInvalidName  = errors.New("invalid_name")
	ErrInvalidEmail = errors.New("invalid_email")
	ErrEmailTaken   = errors.New("email_taken")
	ErrNotFound     = errors.New("not_found")
)
