package domain

import (
	"context"
	"errors"
)

// Service resolves the tenant a request belongs to.
type Service interface {
	// Resolve looks up a tenant by its normalized slug. A nil tenant with a
	// nil error means the slug is unknown; the request proceeds unscoped.
	Resolve(ctx context.Context, slug string) (*Tenant, error)
}

var ErrInvalidSlug = errors.New("invalid_slug")
