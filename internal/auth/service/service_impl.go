package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/khatahq/khata/internal/auth/domain"
	"github.com/khatahq/khata/internal/auth/password"
	"github.com/khatahq/khata/internal/config"
	"github.com/khatahq/khata/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const minPasswordLen = 6

type Params struct {
	fx.In

	Cfg   config.Config
	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Repo  domain.Repository
}

type Service struct {
	cfg   config.Config
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	repo  domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		cfg:   p.Cfg,
		db:    p.DB,
		log:   p.Log.Named("auth.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) Register(ctx context.Context, req domain.RegisterRequest) (domain.User, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.User{}, domain.ErrInvalidName
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || !strings.Contains(email, "@") {
		return domain.User{}, domain.ErrInvalidEmail
	}

	if len(req.Password) < minPasswordLen {
		return domain.User{}, domain.ErrPasswordTooShort
	}
	if req.Password != req.PasswordConfirmation {
		return domain.User{}, domain.ErrPasswordMismatch
	}

	hash, err := password.Hash(req.Password)
	if err != nil {
		return domain.User{}, err
	}

	now := time.Now().UTC()
	user := domain.User{
		ID:           s.genID.Generate(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Metadata:     datatypes.JSONMap{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.InsertUser(ctx, s.db, &user); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return domain.User{}, domain.ErrEmailTaken
		}
		return domain.User{}, err
	}

	s.log.Info("user registered", zap.String("user_id", user.ID.String()))
	return user, nil
}

func (s *Service) Login(ctx context.Context, req domain.LoginRequest) (domain.LoginResult, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || req.Password == "" {
		return domain.LoginResult{}, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindUserByEmail(ctx, s.db, email)
	if err != nil {
		return domain.LoginResult{}, err
	}
	if user == nil || !password.Verify(req.Password, user.PasswordHash) {
		s.log.Warn("login failed", zap.String("email", email))
		return domain.LoginResult{}, domain.ErrInvalidCredentials
	}

	// Single active token per user: revoke earlier logins.
	if err := s.repo.DeleteTokensForUser(ctx, s.db, user.ID); err != nil {
		return domain.LoginResult{}, err
	}

	raw, err := generateToken()
	if err != nil {
		return domain.LoginResult{}, err
	}

	expiresAt := time.Now().UTC().Add(s.cfg.AuthTokenTTL)
	token := domain.AccessToken{
		ID:        s.genID.Generate(),
		UserID:    user.ID,
		Name:      "auth_token",
		TokenHash: hashToken(raw),
		ExpiresAt: &expiresAt,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.InsertToken(ctx, s.db, &token); err != nil {
		return domain.LoginResult{}, err
	}

	s.log.Info("login successful", zap.String("user_id", user.ID.String()))
	return domain.LoginResult{
		User:      *user,
		RawToken:  raw,
		ExpiresAt: expiresAt,
	}, nil
}

func (s *Service) Logout(ctx context.Context, rawToken string) error {
	token, err := s.repo.FindTokenByHash(ctx, s.db, hashToken(rawToken))
	if err != nil {
		return err
	}
	if token == nil {
		return domain.ErrUnauthenticated
	}
	return s.repo.DeleteToken(ctx, s.db, token.ID)
}

func (s *Service) Authenticate(ctx context.Context, rawToken string) (domain.User, error) {
	rawToken = strings.TrimSpace(rawToken)
	if rawToken == "" {
		return domain.User{}, domain.ErrUnauthenticated
	}

	token, err := s.repo.FindTokenByHash(ctx, s.db, hashToken(rawToken))
	if err != nil {
		return domain.User{}, err
	}
	if token == nil {
		return domain.User{}, domain.ErrUnauthenticated
	}
	if token.ExpiresAt != nil && token.ExpiresAt.Before(time.Now().UTC()) {
		return domain.User{}, domain.ErrTokenExpired
	}

	user, err := s.repo.FindUserByID(ctx, s.db, token.UserID)
	if err != nil {
		return domain.User{}, err
	}
	if user == nil {
		return domain.User{}, domain.ErrUnauthenticated
	}

	_ = s.repo.TouchToken(ctx, s.db, token.ID, time.Now().UTC())
	return *user, nil
}

func generateToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

func hashToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}
