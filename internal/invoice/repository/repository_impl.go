package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/khatahq/khata/internal/invoice/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func scoped(tenantID, userID snowflake.ID) func(*gorm.DB) *gorm.DB {
	return func(stmt *gorm.DB) *gorm.DB {
		if tenantID != 0 {
			stmt = stmt.Where("tenant_id = ?", tenantID)
		}
		if userID != 0 {
			stmt = stmt.Where("user_id = ?", userID)
		}
		return stmt
	}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, invoice *domain.Invoice) error {
	return db.WithContext(ctx).Create(invoice).Error
}

func (r *repo) Save(ctx context.Context, db *gorm.DB, invoice *domain.Invoice) error {
	return db.WithContext(ctx).Omit("Client").Save(invoice).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, tenantID, userID, id snowflake.ID) (*domain.Invoice, error) {
	var invoice domain.Invoice
	err := db.WithContext(ctx).
		Preload("Client").
		Scopes(scoped(tenantID, userID)).
		Where("id = ?", id).
		First(&invoice).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &invoice, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, tenantID, userID snowflake.ID) ([]domain.Invoice, error) {
	var invoices []domain.Invoice
	err := db.WithContext(ctx).
		Preload("Client").
		Scopes(scoped(tenantID, userID)).
		Order("invoice_date desc, id desc").
		Find(&invoices).Error
	if err != nil {
		return nil, err
	}
	return invoices, nil
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, tenantID, userID, id snowflake.ID) error {
	return db.WithContext(ctx).
		Scopes(scoped(tenantID, userID)).
		Where("id = ?", id).
		Delete(&domain.Invoice{}).Error
}
