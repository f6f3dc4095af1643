package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	invoicedomain "github.com/khatahq/khata/internal/invoice/domain"
	"github.com/khatahq/khata/internal/payment/domain"
	"github.com/khatahq/khata/pkg/tenantctx"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const dateLayout = "2006-01-02"

type Params struct {
	fx.In

	DB          *gorm.DB
	Log         *zap.Logger
	GenID       *snowflake.Node
	Repo        domain.Repository
	InvoiceRepo invoicedomain.Repository
}

type Service struct {
	db          *gorm.DB
	log         *zap.Logger
	genID       *snowflake.Node
	repo        domain.Repository
	invoiceRepo invoicedomain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:          p.DB,
		log:         p.Log.Named("payment.service"),
		genID:       p.GenID,
		repo:        p.Repo,
		invoiceRepo: p.InvoiceRepo,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreatePaymentRequest) (domain.Payment, error) {
	tenantID, _ := tenantctx.TenantID(ctx)
	userID, ok := tenantctx.UserID(ctx)
	if !ok {
		return domain.Payment{}, domain.ErrUnauthorized
	}

	invoiceID, err := snowflake.ParseString(strings.TrimSpace(req.InvoiceID))
	if err != nil || invoiceID == 0 {
		return domain.Payment{}, domain.ErrInvalidInvoice
	}
	invoice, err := s.invoiceRepo.FindByID(ctx, s.db, tenantID, userID, invoiceID)
	if err != nil {
		return domain.Payment{}, err
	}
	if invoice == nil {
		return domain.Payment{}, domain.ErrInvalidInvoice
	}

	amount, err := decimal.NewFromString(strings.TrimSpace(req.Amount))
	if err != nil || !amount.IsPositive() {
		return domain.Payment{}, domain.ErrInvalidAmount
	}

	paymentDate, err := time.Parse(dateLayout, strings.TrimSpace(req.PaymentDate))
	if err != nil {
		return domain.Payment{}, domain.ErrInvalidDate
	}

	now := time.Now().UTC()
	payment := domain.Payment{
		ID:            s.genID.Generate(),
		TenantID:      tenantID,
		UserID:        userID,
		InvoiceID:     invoiceID,
		Amount:        amount.Round(2),
		PaymentDate:   paymentDate,
		PaymentMethod: strings.TrimSpace(req.PaymentMethod),
		Note:          strings.TrimSpace(req.Note),
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.repo.Insert(ctx, s.db, &payment); err != nil {
		return domain.Payment{}, err
	}

	payment.Invoice = invoice
	s.log.Info("payment recorded",
		zap.String("payment_id", payment.ID.String()),
		zap.String("invoice_id", invoiceID.String()),
		zap.String("amount", payment.Amount.String()),
	)
	return payment, nil
}

func (s *Service) List(ctx context.Context) ([]domain.Payment, error) {
	tenantID, _ := tenantctx.TenantID(ctx)
	userID, ok := tenantctx.UserID(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	return s.repo.List(ctx, s.db, tenantID, userID)
}

func (s *Service) GetByID(ctx context.Context, id string) (domain.Payment, error) {
	payment, err := s.find(ctx, id)
	if err != nil {
		return domain.Payment{}, err
	}
	return *payment, nil
}

func (s *Service) Update(ctx context.Context, req domain.UpdatePaymentRequest) (domain.Payment, error) {
	payment, err := s.find(ctx, req.ID)
	if err != nil {
		return domain.Payment{}, err
	}

	if req.Amount != nil {
		amount, err := decimal.NewFromString(strings.TrimSpace(*req.Amount))
		if err != nil || !amount.IsPositive() {
			return domain.Payment{}, domain.ErrInvalidAmount
		}
		payment.Amount = amount.Round(2)
	}
	if req.PaymentDate != nil {
		paymentDate, err := time.Parse(dateLayout, strings.TrimSpace(*req.PaymentDate))
		if err != nil {
			return domain.Payment{}, domain.ErrInvalidDate
		}
		payment.PaymentDate = paymentDate
	}
	if req.PaymentMethod != nil {
		payment.PaymentMethod = strings.TrimSpace(*req.PaymentMethod)
	}
	if req.Note != nil {
		payment.Note = strings.TrimSpace(*req.Note)
	}
	payment.UpdatedAt = time.Now().UTC()

	if err := s.repo.Save(ctx, s.db, payment); err != nil {
		return domain.Payment{}, err
	}
	return *payment, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	payment, err := s.find(ctx, id)
	if err != nil {
		return err
	}

	tenantID, _ := tenantctx.TenantID(ctx)
	userID, _ := tenantctx.UserID(ctx)
	return s.repo.Delete(ctx, s.db, tenantID, userID, payment.ID)
}

func (s *Service) find(ctx context.Context, id string) (*domain.Payment, error) {
	tenantID, _ := tenantctx.TenantID(ctx)
	userID, ok := tenantctx.UserID(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	paymentID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil || paymentID == 0 {
		return nil, domain.ErrInvalidID
	}

	payment, err := s.repo.FindByID(ctx, s.db, tenantID, userID, paymentID)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, domain.ErrNotFound
	}
	return payment, nil
}
