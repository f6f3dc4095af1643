package domain

import (
	"context"
	"time"
)

type RegisterRequest struct {
	Name                 string
	Email                string
	Password             string
	PasswordConfirmation string
}

type LoginRequest struct {
	Email    string
	Password string
}

// LoginResult carries the one-time plaintext token back to the caller.
type LoginResult struct {
	User      User
	RawToken  string
	ExpiresAt time.Time
}

type Service interface {
	Register(ctx context.Context, req RegisterRequest) (User, error)
	// Login verifies credentials, revokes the user's previous tokens, and
	// issues a fresh bearer token.
	Login(ctx context.Context, req LoginRequest) (LoginResult, error)
	Logout(ctx context.Context, rawToken string) error
	Authenticate(ctx context.Context, rawToken string) (User, error)
}
