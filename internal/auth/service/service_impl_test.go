package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	authdomain "github.com/khatahq/khata/internal/auth/domain"
	"github.com/khatahq/khata/internal/auth/repository"
	"github.com/khatahq/khata/internal/config"
	"github.com/khatahq/khata/pkg/db"
	"go.uber.org/zap"
)

func newTestService(t *testing.T) authdomain.Service {
	t.Helper()

	dbConn, err := db.NewTest()
	if err != nil {
		t.Fatalf("failed to open db: %v", err)
	}
	if err := dbConn.AutoMigrate(&authdomain.User{}, &authdomain.AccessToken{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatalf("failed to create snowflake node: %v", err)
	}

	return New(Params{
		Cfg:   config.Config{AuthTokenTTL: time.Hour},
		DB:    dbConn,
		Log:   zap.NewNop(),
		GenID: node,
		Repo:  repository.Provide(),
	})
}

func register(t *testing.T, svc authdomain.Service, email, pass string) authdomain.User {
	t.Helper()

	user, err := svc.Register(context.Background(), authdomain.RegisterRequest{
		Name:                 "Test User",
		Email:                email,
		Password:             pass,
		PasswordConfirmation: pass,
	})
	if err != nil {
		t.Fatalf("failed to register: %v", err)
	}
	return user
}

func TestRegisterValidation(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Register(context.Background(), authdomain.RegisterRequest{
		Name: "", Email: "a@b.com", Password: "secret1", PasswordConfirmation: "secret1",
	})
	if err != authdomain.ErrInvalidName {
		t.Fatalf("expected ErrInvalidName, got %v", err)
	}

	_, err = svc.Register(context.Background(), authdomain.RegisterRequest{
		Name: "A", Email: "not-an-email", Password: "secret1", PasswordConfirmation: "secret1",
	})
	if err != authdomain.ErrInvalidEmail {
		t.Fatalf("expected ErrInvalidEmail, got %v", err)
	}

	_, err = svc.Register(context.Background(), authdomain.RegisterRequest{
		Name: "A", Email: "a@b.com", Password: "short", PasswordConfirmation: "short",
	})
	if err != authdomain.ErrPasswordTooShort {
		t.Fatalf("expected ErrPasswordTooShort, got %v", err)
	}

	_, err = svc.Register(context.Background(), authdomain.RegisterRequest{
		Name: "A", Email: "a@b.com", Password: "secret1", PasswordConfirmation: "secret2",
	})
	if err != authdomain.ErrPasswordMismatch {
		t.Fatalf("expected ErrPasswordMismatch, got %v", err)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := newTestService(t)

	register(t, svc, "alice@example.com", "correct-password")

	_, err := svc.Register(context.Background(), authdomain.RegisterRequest{
		Name:                 "Alice Again",
		Email:                "Alice@Example.com",
		Password:             "another-password",
		PasswordConfirmation: "another-password",
	})
	if err != authdomain.ErrEmailTaken {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	svc := newTestService(t)

	register(t, svc, "alice@example.com", "correct-password")

	_, err := svc.Login(context.Background(), authdomain.LoginRequest{
		Email:    "alice@example.com",
		Password: "wrong-password",
	})
	if err != authdomain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLoginIssuesToken(t *testing.T) {
	svc := newTestService(t)

	register(t, svc, "alice@example.com", "correct-password")

	result, err := svc.Login(context.Background(), authdomain.LoginRequest{
		Email:    "alice@example.com",
		Password: "correct-password",
	})
	if err != nil {
		t.Fatalf("failed to login: %v", err)
	}
	if result.RawToken == "" {
		t.Fatal("expected raw token")
	}
	if !result.ExpiresAt.After(time.Now()) {
		t.Fatal("expected future expiry")
	}

	user, err := svc.Authenticate(context.Background(), result.RawToken)
	if err != nil {
		t.Fatalf("failed to authenticate: %v", err)
	}
	if user.Email != "alice@example.com" {
		t.Fatalf("expected alice, got %s", user.Email)
	}
}

func TestLoginRevokesPreviousTokens(t *testing.T) {
	svc := newTestService(t)

	register(t, svc, "alice@example.com", "correct-password")

	first, err := svc.Login(context.Background(), authdomain.LoginRequest{
		Email: "alice@example.com", Password: "correct-password",
	})
	if err != nil {
		t.Fatalf("failed to login: %v", err)
	}
	second, err := svc.Login(context.Background(), authdomain.LoginRequest{
		Email: "alice@example.com", Password: "correct-password",
	})
	if err != nil {
		t.Fatalf("failed to login: %v", err)
	}

	if _, err := svc.Authenticate(context.Background(), first.RawToken); err != authdomain.ErrUnauthenticated {
		t.Fatalf("expected first token revoked, got %v", err)
	}
	if _, err := svc.Authenticate(context.Background(), second.RawToken); err != nil {
		t.Fatalf("expected second token valid, got %v", err)
	}
}

func TestLogoutRevokesToken(t *testing.T) {
	svc := newTestService(t)

	register(t, svc, "alice@example.com", "correct-password")

	result, err := svc.Login(context.Background(), authdomain.LoginRequest{
		Email: "alice@example.com", Password: "correct-password",
	})
	if err != nil {
		t.Fatalf("failed to login: %v", err)
	}

	if err := svc.Logout(context.Background(), result.RawToken); err != nil {
		t.Fatalf("failed to logout: %v", err)
	}
	if _, err := svc.Authenticate(context.Background(), result.RawToken); err != authdomain.ErrUnauthenticated {
		t.Fatalf("expected revoked token, got %v", err)
	}
}
