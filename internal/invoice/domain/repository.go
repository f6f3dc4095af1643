package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, invoice *Invoice) error
	Save(ctx context.Context, db *gorm.DB, invoice *Invoice) error
	FindByID(ctx context.Context, db *gorm.DB, tenantID, userID, id snowflake.ID) (*Invoice, error)
	List(ctx context.Context, db *gorm.DB, tenantID, userID snowflake.ID) ([]Invoice, error)
	Delete(ctx context.Context, db *gorm.DB, tenantID, userID, id snowflake.ID) error
}
