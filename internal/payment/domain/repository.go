package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, payment *Payment) error
	Save(ctx context.Context, db *gorm.DB, payment *Payment) error
	FindByID(ctx context.Context, db *gorm.DB, tenantID, userID, id snowflake.ID) (*Payment, error)
	List(ctx context.Context, db *gorm.DB, tenantID, userID snowflake.ID) ([]Payment, error)
	Delete(ctx context.Context, db *gorm.DB, tenantID, userID, id snowflake.ID) error
}
