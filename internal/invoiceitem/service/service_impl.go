package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	invoicedomain "github.com/khatahq/khata/internal/invoice/domain"
	"github.com/khatahq/khata/internal/invoiceitem/domain"
	"github.com/khatahq/khata/pkg/tenantctx"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

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
		log:         p.Log.Named("invoiceitem.service"),
		genID:       p.GenID,
		repo:        p.Repo,
		invoiceRepo: p.InvoiceRepo,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateItemRequest) (domain.InvoiceItem, error) {
	tenantID, _ := tenantctx.TenantID(ctx)

	invoiceID, err := s.resolveInvoice(ctx, req.InvoiceID)
	if err != nil {
		return domain.InvoiceItem{}, err
	}

	description := strings.TrimSpace(req.Description)
	if description == "" {
		return domain.InvoiceItem{}, domain.ErrInvalidDescription
	}

	if req.Quantity == nil {
		return domain.InvoiceItem{}, domain.ErrInvalidQuantity
	}
	quantity := *req.Quantity

	unitPrice, err := decimal.NewFromString(strings.TrimSpace(req.UnitPrice))
	if err != nil {
		return domain.InvoiceItem{}, domain.ErrInvalidUnitPrice
	}
	// round once before computing, so the stored price and the derived
	// amounts always agree with a later recompute
	unitPrice = unitPrice.Round(2)

	taxPercentage := decimal.Zero
	if req.TaxPercentage != nil && strings.TrimSpace(*req.TaxPercentage) != "" {
		taxPercentage, err = decimal.NewFromString(strings.TrimSpace(*req.TaxPercentage))
		if err != nil {
			return domain.InvoiceItem{}, domain.ErrInvalidTaxPercentage
		}
	}

	amounts, err := domain.ComputeLine(quantity, unitPrice, taxPercentage)
	if err != nil {
		return domain.InvoiceItem{}, err
	}

	now := time.Now().UTC()
	item := domain.InvoiceItem{
		ID:            s.genID.Generate(),
		TenantID:      tenantID,
		InvoiceID:     invoiceID,
		Description:   description,
		Quantity:      quantity,
		UnitPrice:     unitPrice,
		TaxPercentage: taxPercentage,
		Subtotal:      amounts.Subtotal,
		TaxAmount:     amounts.TaxAmount,
		TotalWithTax:  amounts.TotalWithTax,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.repo.Insert(ctx, s.db, &item); err != nil {
		return domain.InvoiceItem{}, err
	}
	return item, nil
}

func (s *Service) ListByInvoice(ctx context.Context, invoiceID string) ([]domain.InvoiceItem, error) {
	tenantID, _ := tenantctx.TenantID(ctx)

	id, err := s.resolveInvoice(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	return s.repo.ListByInvoice(ctx, s.db, tenantID, id)
}

func (s *Service) GetByID(ctx context.Context, id string) (domain.InvoiceItem, error) {
	item, err := s.find(ctx, id)
	if err != nil {
		return domain.InvoiceItem{}, err
	}
	return *item, nil
}

// Update merges the supplied fields over the stored ones and recomputes the
// derived amounts from the merged inputs.
func (s *Service) Update(ctx context.Context, req domain.UpdateItemRequest) (domain.InvoiceItem, error) {
	item, err := s.find(ctx, req.ID)
	if err != nil {
		return domain.InvoiceItem{}, err
	}

	if req.Description != nil {
		description := strings.TrimSpace(*req.Description)
		if description == "" {
			return domain.InvoiceItem{}, domain.ErrInvalidDescription
		}
		item.Description = description
	}
	if req.Quantity != nil {
		item.Quantity = *req.Quantity
	}
	if req.UnitPrice != nil {
		unitPrice, err := decimal.NewFromString(strings.TrimSpace(*req.UnitPrice))
		if err != nil {
			return domain.InvoiceItem{}, domain.ErrInvalidUnitPrice
		}
		item.UnitPrice = unitPrice.Round(2)
	}
	if req.TaxPercentage != nil {
		taxPercentage, err := decimal.NewFromString(strings.TrimSpace(*req.TaxPercentage))
		if err != nil {
			return domain.InvoiceItem{}, domain.ErrInvalidTaxPercentage
		}
		item.TaxPercentage = taxPercentage
	}

	amounts, err := domain.ComputeLine(item.Quantity, item.UnitPrice, item.TaxPercentage)
	if err != nil {
		return domain.InvoiceItem{}, err
	}
	item.Subtotal = amounts.Subtotal
	item.TaxAmount = amounts.TaxAmount
	item.TotalWithTax = amounts.TotalWithTax
	item.UpdatedAt = time.Now().UTC()

	if err := s.repo.Save(ctx, s.db, item); err != nil {
		return domain.InvoiceItem{}, err
	}
	return *item, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	item, err := s.find(ctx, id)
	if err != nil {
		return err
	}

	tenantID, _ := tenantctx.TenantID(ctx)
	return s.repo.Delete(ctx, s.db, tenantID, item.ID)
}

// resolveInvoice parses the invoice id and checks the invoice is visible to
// the calling user before any item is touched.
func (s *Service) resolveInvoice(ctx context.Context, raw string) (snowflake.ID, error) {
	tenantID, _ := tenantctx.TenantID(ctx)
	userID, _ := tenantctx.UserID(ctx)

	id, err := snowflake.ParseString(strings.TrimSpace(raw))
	if err != nil || id == 0 {
		return 0, domain.ErrInvalidInvoice
	}
	invoice, err := s.invoiceRepo.FindByID(ctx, s.db, tenantID, userID, id)
	if err != nil {
		return 0, err
	}
	if invoice == nil {
		return 0, domain.ErrInvalidInvoice
	}
	return id, nil
}

func (s *Service) find(ctx context.Context, id string) (*domain.InvoiceItem, error) {
	tenantID, _ := tenantctx.TenantID(ctx)

	itemID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil || itemID == 0 {
		return nil, domain.ErrInvalidID
	}

	item, err := s.repo.FindByID(ctx, s.db, tenantID, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	return item, nil
}
