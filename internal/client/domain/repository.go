package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, client *Client) error
	Save(ctx context.Context, db *gorm.DB, client *Client) error
	FindByID(ctx context.Context, db *gorm.DB, tenantID, id snowflake.ID) (*Client, error)
	FindByEmail(ctx context.Context, db *gorm.DB, tenantID snowflake.ID, email string) (*Client, error)
	List(ctx context.Context, db *gorm.DB, tenantID snowflake.ID) ([]Client, error)
	Delete(ctx context.Context, db *gorm.DB, tenantID, id snowflake.ID) error
}
