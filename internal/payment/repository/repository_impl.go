package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/khatahq/khata/internal/payment/domain"
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

func (r *repo) Insert(ctx context.Context, db *gorm.DB, payment *domain.Payment) error {
	return db.WithContext(ctx).Create(payment).Error
}

func (r *repo) Save(ctx context.Context, db *gorm.DB, payment *domain.Payment) error {
	return db.WithContext(ctx).Omit("Invoice").Save(payment).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, tenantID, userID, id snowflake.ID) (*domain.Payment, error) {
	var payment domain.Payment
	err := db.WithContext(ctx).
		Preload("Invoice").
		Preload("Invoice.Client").
		Scopes(scoped(tenantID, userID)).
		Where("id = ?", id).
		First(&payment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, tenantID, userID snowflake.ID) ([]domain.Payment, error) {
	var payments []domain.Payment
	err := db.WithContext(ctx).
		Preload("Invoice").
		Preload("Invoice.Client").
		Scopes(scoped(tenantID, userID)).
		Order("payment_date desc, id desc").
		Find(&payments).Error
	if err != nil {
		return nil, err
	}
	return payments, nil
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, tenantID, userID, id snowflake.ID) error {
	return db.WithContext(ctx).
		Scopes(scoped(tenantID, userID)).
		Where("id = ?", id).
		Delete(&domain.Payment{}).Error
}
