package service

import (
	"context"
	"crypto/rand"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	clientdomain "github.com/khatahq/khata/internal/client/domain"
	"github.com/khatahq/khata/internal/invoice/domain"
	"github.com/khatahq/khata/pkg/tenantctx"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const dateLayout = "2006-01-02"

type Params struct {
	fx.In

	DB         *gorm.DB
	Log        *zap.Logger
	GenID      *snowflake.Node
	Repo       domain.Repository
	ClientRepo clientdomain.Repository
}

type Service struct {
	db         *gorm.DB
	log        *zap.Logger
	genID      *snowflake.Node
	repo       domain.Repository
	clientRepo clientdomain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:         p.DB,
		log:        p.Log.Named("invoice.service"),
		genID:      p.GenID,
		repo:       p.Repo,
		clientRepo: p.ClientRepo,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateInvoiceRequest) (domain.Invoice, error) {
	tenantID, _ := tenantctx.TenantID(ctx)
	userID, ok := tenantctx.UserID(ctx)
	if !ok {
		return domain.Invoice{}, domain.ErrUnauthorized
	}

	clientID, err := snowflake.ParseString(strings.TrimSpace(req.ClientID))
	if err != nil || clientID == 0 {
		return domain.Invoice{}, domain.ErrInvalidClient
	}
	client, err := s.clientRepo.FindByID(ctx, s.db, tenantID, clientID)
	if err != nil {
		return domain.Invoice{}, err
	}
	if client == nil {
		return domain.Invoice{}, domain.ErrInvalidClient
	}

	invoiceDate, err := time.Parse(dateLayout, strings.TrimSpace(req.InvoiceDate))
	if err != nil {
		return domain.Invoice{}, domain.ErrInvalidDate
	}
	dueDate, err := time.Parse(dateLayout, strings.TrimSpace(req.DueDate))
	if err != nil || dueDate.Before(invoiceDate) {
		return domain.Invoice{}, domain.ErrInvalidDueDate
	}

	total, err := decimal.NewFromString(strings.TrimSpace(req.Total))
	if err != nil || total.IsNegative() {
		return domain.Invoice{}, domain.ErrInvalidTotal
	}

	status := domain.InvoiceStatus(strings.ToLower(strings.TrimSpace(req.Status)))
	if status == "" {
		status = domain.InvoiceStatusDraft
	}
	if !domain.WritableStatus(status) {
		return domain.Invoice{}, domain.ErrInvalidStatus
	}

	now := time.Now().UTC()
	invoice := domain.Invoice{
		ID:            s.genID.Generate(),
		TenantID:      tenantID,
		UserID:        userID,
		ClientID:      clientID,
		InvoiceNumber: generateInvoiceNumber(),
		InvoiceDate:   invoiceDate,
		DueDate:       dueDate,
		Total:         total.Round(2),
		Status:        status,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.repo.Insert(ctx, s.db, &invoice); err != nil {
		return domain.Invoice{}, err
	}

	invoice.Client = client
	s.log.Info("invoice created",
		zap.String("invoice_id", invoice.ID.String()),
		zap.String("invoice_number", invoice.InvoiceNumber),
	)
	return invoice, nil
}

func (s *Service) List(ctx context.Context) ([]domain.Invoice, error) {
	tenantID, _ := tenantctx.TenantID(ctx)
	userID, ok := tenantctx.UserID(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	return s.repo.List(ctx, s.db, tenantID, userID)
}

func (s *Service) GetByID(ctx context.Context, id string) (domain.Invoice, error) {
	invoice, err := s.find(ctx, id)
	if err != nil {
		return domain.Invoice{}, err
	}
	return *invoice, nil
}

func (s *Service) Update(ctx context.Context, req domain.UpdateInvoiceRequest) (domain.Invoice, error) {
	invoice, err := s.find(ctx, req.ID)
	if err != nil {
		return domain.Invoice{}, err
	}

	if req.InvoiceDate != nil {
		invoiceDate, err := time.Parse(dateLayout, strings.TrimSpace(*req.InvoiceDate))
		if err != nil {
			return domain.Invoice{}, domain.ErrInvalidDate
		}
		invoice.InvoiceDate = invoiceDate
	}
	if req.DueDate != nil {
		dueDate, err := time.Parse(dateLayout, strings.TrimSpace(*req.DueDate))
		if err != nil {
			return domain.Invoice{}, domain.ErrInvalidDueDate
		}
		invoice.DueDate = dueDate
	}
	if invoice.DueDate.Before(invoice.InvoiceDate) {
		return domain.Invoice{}, domain.ErrInvalidDueDate
	}
	if req.Total != nil {
		total, err := decimal.NewFromString(strings.TrimSpace(*req.Total))
		if err != nil || total.IsNegative() {
			return domain.Invoice{}, domain.ErrInvalidTotal
		}
		invoice.Total = total.Round(2)
	}
	if req.Status != nil {
		status := domain.InvoiceStatus(strings.ToLower(strings.TrimSpace(*req.Status)))
		if !domain.WritableStatus(status) {
			return domain.Invoice{}, domain.ErrInvalidStatus
		}
		invoice.Status = status
	}
	invoice.UpdatedAt = time.Now().UTC()

	if err := s.repo.Save(ctx, s.db, invoice); err != nil {
		return domain.Invoice{}, err
	}
	return *invoice, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	invoice, err := s.find(ctx, id)
	if err != nil {
		return err
	}

	tenantID, _ := tenantctx.TenantID(ctx)
	userID, _ := tenantctx.UserID(ctx)
	return s.repo.Delete(ctx, s.db, tenantID, userID, invoice.ID)
}

func (s *Service) find(ctx context.Context, id string) (*domain.Invoice, error) {
	tenantID, _ := tenantctx.TenantID(ctx)
	userID, ok := tenantctx.UserID(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	invoiceID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil || invoiceID == 0 {
		return nil, domain.ErrInvalidID
	}

	invoice, err := s.repo.FindByID(ctx, s.db, tenantID, userID, invoiceID)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, domain.ErrNotFound
	}
	return invoice, nil
}

const invoiceNumberAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

func generateInvoiceNumber() string {
	buf := make([]byte, 8)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand only fails when the platform entropy source is broken
		panic(err)
	}
	for i, b := range buf {
		buf[i] = invoiceNumberAlphabet[int(b)%len(invoiceNumberAlphabet)]
	}
	return "INV-" + string(buf)
}
