package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, item *InvoiceItem) error
	Save(ctx context.Context, db *gorm.DB, item *InvoiceItem) error
	FindByID(ctx context.Context, db *gorm.DB, tenantID, id snowflake.ID) (*InvoiceItem, error)
	ListByInvoice(ctx context.Context, db *gorm.DB, tenantID, invoiceID snowflake.ID) ([]InvoiceItem, error)
	Delete(ctx context.Context, db *gorm.DB, tenantID, id snowflake.ID) error
}
