package service

import (
	"context"
	"strings"
	"time"

	"github.com/khatahq/khata/internal/gstreport/domain"
	invoicedomain "github.com/khatahq/khata/internal/invoice/domain"
	tenantdomain "github.com/khatahq/khata/internal/tenant/domain"
	"github.com/khatahq/khata/pkg/tenantctx"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	dateLayout       = "2006-01-02"
	defaultRate      = "18"
	defaultHomeState = "Karnataka"
)

type Params struct {
	fx.In

	DB          *gorm.DB
	Log         *zap.Logger
	InvoiceRepo invoicedomain.Repository
	TenantRepo  tenantdomain.Repository
}

type Service struct {
	db          *gorm.DB
	log         *zap.Logger
	invoiceRepo invoicedomain.Repository
	tenantRepo  tenantdomain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:          p.DB,
		log:         p.Log.Named("gstreport.service"),
		invoiceRepo: p.InvoiceRepo,
		tenantRepo:  p.TenantRepo,
	}
}

// BuildReport loads the caller's invoices and runs them through the report
// builder with defaulted parameters.
func (s *Service) BuildReport(ctx context.Context, q domain.Query) (domain.Result, error) {
	tenantID, _ := tenantctx.TenantID(ctx)
	userID, ok := tenantctx.UserID(ctx)
	if !ok {
		return domain.Result{}, invoicedomain.ErrUnauthorized
	}

	params, err := s.applyDefaults(ctx, q)
	if err != nil {
		return domain.Result{}, err
	}

	invoices, err := s.invoiceRepo.List(ctx, s.db, tenantID, userID)
	if err != nil {
		return domain.Result{}, err
	}

	sources := make([]domain.Source, 0, len(invoices))
	for _, inv := range invoices {
		src := domain.Source{
			ID:            inv.ID.String(),
			InvoiceNumber: inv.InvoiceNumber,
			Date:          inv.InvoiceDate.Format(dateLayout),
			Status:        string(inv.Status),
			Total:         inv.Total.String(),
		}
		if inv.Client != nil {
			src.ClientName = inv.Client.Name
			src.ClientState = inv.Client.State
			src.ClientAddress = inv.Client.Address
		}
		sources = append(sources, src)
	}

	return domain.Result{
		Params: params,
		Report: domain.Build(sources, params),
	}, nil
}

func (s *Service) applyDefaults(ctx context.Context, q domain.Query) (domain.Params, error) {
	now := time.Now()
	params := domain.Params{
		From:        strings.TrimSpace(q.From),
		To:          strings.TrimSpace(q.To),
		HomeState:   strings.TrimSpace(q.HomeState),
		Status:      strings.TrimSpace(q.Status),
		RatePercent: strings.TrimSpace(q.RatePercent),
		Inclusive:   true,
	}
	if q.Inclusive != nil {
		params.Inclusive = *q.Inclusive
	}
	if params.From == "" {
		startOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		params.From = startOfMonth.AddDate(0, -1, 0).Format(dateLayout)
	}
	if params.To == "" {
		params.To = now.Format(dateLayout)
	}
	if params.Status == "" {
		params.Status = domain.StatusAll
	}
	if params.RatePercent == "" {
		params.RatePercent = defaultRate
	}
	if params.HomeState == "" {
		params.HomeState = s.tenantHomeState(ctx)
	}
	return params, nil
}

func (s *Service) tenantHomeState(ctx context.Context) string {
	tenantID, ok := tenantctx.TenantID(ctx)
	if ok {
		tenant, err := s.tenantRepo.FindByID(ctx, s.db, tenantID)
		if err != nil {
			s.log.Warn("tenant lookup failed", zap.Error(err))
		} else if tenant != nil && strings.TrimSpace(tenant.HomeState) != "" {
			return strings.TrimSpace(tenant.HomeState)
		}
	}
	return defaultHomeState
}
