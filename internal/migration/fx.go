package migration

import (
	authdomain "github.com/khatahq/khata/internal/auth/domain"
	clientdomain "github.com/khatahq/khata/internal/client/domain"
	"github.com/khatahq/khata/internal/config"
	invoicedomain "github.com/khatahq/khata/internal/invoice/domain"
	invoiceitemdomain "github.com/khatahq/khata/internal/invoiceitem/domain"
	paymentdomain "github.com/khatahq/khata/internal/payment/domain"
	"github.com/khatahq/khata/internal/seed"
	tenantdomain "github.com/khatahq/khata/internal/tenant/domain"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config) error {
		if cfg.DBType == "postgres" {
			sqlDB, err := conn.DB()
			if err != nil {
				return err
			}
			if err := RunMigrations(sqlDB); err != nil {
				return err
			}
		} else {
			// mysql and sqlite installs get the gorm-derived schema
			if err := conn.AutoMigrate(
				&tenantdomain.Tenant{},
				&tenantdomain.TenantUser{},
				&authdomain.User{},
				&authdomain.AccessToken{},
				&clientdomain.Client{},
				&invoicedomain.Invoice{},
				&invoiceitemdomain.InvoiceItem{},
				&paymentdomain.Payment{},
			); err != nil {
				return err
			}
		}

		return seed.EnsureDefaultTenant(conn, cfg.DefaultTenantSlug)
	}),
)
