package service

import (
	"context"
	"time"

	"github.com/khatahq/khata/internal/dashboard/domain"
	invoicedomain "github.com/khatahq/khata/internal/invoice/domain"
	paymentdomain "github.com/khatahq/khata/internal/payment/domain"
	"github.com/khatahq/khata/pkg/tenantctx"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB          *gorm.DB
	Log         *zap.Logger
	InvoiceRepo invoicedomain.Repository
	PaymentRepo paymentdomain.Repository
}

type Service struct {
	db          *gorm.DB
	log         *zap.Logger
	invoiceRepo invoicedomain.Repository
	paymentRepo paymentdomain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:          p.DB,
		log:         p.Log.Named("dashboard.service"),
		invoiceRepo: p.InvoiceRepo,
		paymentRepo: p.PaymentRepo,
	}
}

func (s *Service) Summary(ctx context.Context) (domain.Summary, error) {
	tenantID, _ := tenantctx.TenantID(ctx)
	userID, ok := tenantctx.UserID(ctx)
	if !ok {
		return domain.Summary{}, invoicedomain.ErrUnauthorized
	}

	invoices, err := s.invoiceRepo.List(ctx, s.db, tenantID, userID)
	if err != nil {
		return domain.Summary{}, err
	}
	payments, err := s.paymentRepo.List(ctx, s.db, tenantID, userID)
	if err != nil {
		return domain.Summary{}, err
	}

	return domain.Compute(invoices, payments, time.Now()), nil
}
