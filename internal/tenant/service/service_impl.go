package service

import (
	"context"
	"strings"

	"github.com/khatahq/khata/internal/tenant/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB   *gorm.DB
	Log  *zap.Logger
	Repo domain.Repository
}

type Service struct {
	db   *gorm.DB
	log  *zap.Logger
	repo domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:   p.DB,
		log:  p.Log.Named("tenant.service"),
		repo: p.Repo,
	}
}

func (s *Service) Resolve(ctx context.Context, slug string) (*domain.Tenant, error) {
	normalized := domain.NormalizeSlug(slug)
	if strings.Trim(normalized, "-") == "" {
		return nil, domain.ErrInvalidSlug
	}

	tenant, err := s.repo.FindBySlug(ctx, s.db, normalized)
	if err != nil {
		return nil, err
	}
	if tenant == nil {
		s.log.Debug("unknown tenant slug", zap.String("slug", normalized))
	}
	return tenant, nil
}
