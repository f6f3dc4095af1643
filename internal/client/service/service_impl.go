package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/khatahq/khata/internal/client/domain"
	"github.com/khatahq/khata/pkg/tenantctx"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Repo  domain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	repo  domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("client.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateClientRequest) (domain.Client, error) {
	tenantID, _ := tenantctx.TenantID(ctx)

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.Client{}, domain.ErrInvalidName
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email != "" {
		if !strings.Contains(email, "@") {
			return domain.Client{}, domain.ErrInvalidEmail
		}
		existing, err := s.repo.FindByEmail(ctx, s.db, tenantID, email)
		if err != nil {
			return domain.Client{}, err
		}
		if existing != nil {
			return domain.Client{}, domain.ErrEmailTaken
		}
	}

	now := time.Now().UTC()
	client := domain.Client{
		ID:        s.genID.Generate(),
		TenantID:  tenantID,
		Name:      name,
		Email:     email,
		Phone:     strings.TrimSpace(req.Phone),
		Address:   strings.TrimSpace(req.Address),
		Company:   strings.TrimSpace(req.Company),
		State:     strings.TrimSpace(req.State),
		GSTIN:     strings.TrimSpace(req.GSTIN),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Insert(ctx, s.db, &client); err != nil {
		return domain.Client{}, err
	}
	return client, nil
}

func (s *Service) List(ctx context.Context) ([]domain.Client, error) {
	tenantID, _ := tenantctx.TenantID(ctx)
	return s.repo.List(ctx, s.db, tenantID)
}

func (s *Service) GetByID(ctx context.Context, id string) (domain.Client, error) {
	tenantID, _ := tenantctx.TenantID(ctx)

	clientID, err := parseID(id)
	if err != nil {
		return domain.Client{}, err
	}

	client, err := s.repo.FindByID(ctx, s.db, tenantID, clientID)
	if err != nil {
		return domain.Client{}, err
	}
	if client == nil {
		return domain.Client{}, domain.ErrNotFound
	}
	return *client, nil
}

func (s *Service) Update(ctx context.Context, req domain.UpdateClientRequest) (domain.Client, error) {
	tenantID, _ := tenantctx.TenantID(ctx)

	clientID, err := parseID(req.ID)
	if err != nil {
		return domain.Client{}, err
	}

	client, err := s.repo.FindByID(ctx, s.db, tenantID, clientID)
	if err != nil {
		return domain.Client{}, err
	}
	if client == nil {
		return domain.Client{}, domain.ErrNotFound
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return domain.Client{}, domain.ErrInvalidName
		}
		client.Name = name
	}
	if req.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*req.Email))
		if email != "" {
			if !strings.Contains(email, "@") {
				return domain.Client{}, domain.ErrInvalidEmail
			}
			existing, err := s.repo.FindByEmail(ctx, s.db, tenantID, email)
			if err != nil {
				return domain.Client{}, err
			}
			if existing != nil && existing.ID != client.ID {
				return domain.Client{}, domain.ErrEmailTaken
			}
		}
		client.Email = email
	}
	if req.Phone != nil {
		client.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.Address != nil {
		client.Address = strings.TrimSpace(*req.Address)
	}
	if req.Company != nil {
		client.Company = strings.TrimSpace(*req.Company)
	}
	if req.State != nil {
		client.State = strings.TrimSpace(*req.State)
	}
	if req.GSTIN != nil {
		client.GSTIN = strings.TrimSpace(*req.GSTIN)
	}
	client.UpdatedAt = time.Now().UTC()

	if err := s.repo.Save(ctx, s.db, client); err != nil {
		return domain.Client{}, err
	}
	return *client, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	tenantID, _ := tenantctx.TenantID(ctx)

	clientID, err := parseID(id)
	if err != nil {
		return err
	}

	client, err := s.repo.FindByID(ctx, s.db, tenantID, clientID)
	if err != nil {
		return err
	}
	if client == nil {
		return domain.ErrNotFound
	}
	return s.repo.Delete(ctx, s.db, tenantID, clientID)
}

func parseID(value string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(value))
	if err != nil || id == 0 {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}
