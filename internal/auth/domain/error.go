package domain

import "errors"

var (
	ErrInvalidName        = errors.New("invalid_name")
	ErrInvalidEmail       = errors.New("invalid_email")
	ErrEmailTaken         = errors.New("email_taken")
	ErrPasswordTooShort   = errors.New("password_too_short")
	ErrPasswordMismatch   = errors.New("password_mismatch")
	ErrInvalidCredentials = errors.New("invalid_credentials")
	ErrTokenExpired       = errors.New("token_expired")
	ErrUnauthenticated    = errors.New("unauthenticated")
)
