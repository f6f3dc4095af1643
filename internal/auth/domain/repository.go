package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	InsertUser(ctx context.Context, db *gorm.DB, user *User) error
	FindUserByEmail(ctx context.Context, db *gorm.DB, email string) (*User, error)
	FindUserByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*User, error)

	InsertToken(ctx context.Context, db *gorm.DB, token *AccessToken) error
	FindTokenByHash(ctx context.Context, db *gorm.DB, hash string) (*AccessToken, error)
	TouchToken(ctx context.Context, db *gorm.DB, id snowflake.ID, at time.Time) error
	DeleteToken(ctx context.Context, db *gorm.DB, id snowflake.ID) error
	DeleteTokensForUser(ctx context.Context, db *gorm.DB, userID snowflake.ID) error
}
