// Package seed bootstraps the rows a fresh install needs.
package seed

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	tenantdomain "github.com/khatahq/khata/internal/tenant/domain"
	"gorm.io/gorm"
)

const defaultTenantName = "Default"

// EnsureDefaultTenant creates the tenant every unscoped request falls back
// to. Safe to call on every startup.
func EnsureDefaultTenant(db *gorm.DB, slug string) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	slug = tenantdomain.NormalizeSlug(slug)
	if slug == "" {
		slug = "default"
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		return err
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var tenant tenantdomain.Tenant
		err := tx.Where("slug = ?", slug).First(&tenant).Error
		if err == nil {
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		now := time.Now().UTC()
		tenant = tenantdomain.Tenant{
			ID:        node.Generate(),
			Name:      defaultTenantName,
			Slug:      slug,
			CreatedAt: now,
			UpdatedAt: now,
		}
		return tx.Create(&tenant).Error
	})
}
