// Package domain contains persistence models for invoice payments.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	invoicedomain "github.com/khatahq/khata/internal/invoice/domain"
	"github.com/shopspring/decimal"
)

// Payment records money received against an invoice.
type Payment struct {
	ID            snowflake.ID           `gorm:"primaryKey" json:"id"`
	TenantID      snowflake.ID           `gorm:"index" json:"tenant_id,omitempty"`
	UserID        snowflake.ID           `gorm:"not null;index" json:"user_id"`
	InvoiceID     snowflake.ID           `gorm:"not null;index" json:"invoice_id"`
	Invoice       *invoicedomain.Invoice `gorm:"foreignKey:InvoiceID" json:"invoice,omitempty"`
	Amount        decimal.Decimal        `gorm:"type:decimal(12,2);not null" json:"amount"`
	PaymentDate   time.Time              `gorm:"column:payment_date;not null" json:"payment_date"`
	PaymentMethod string                 `gorm:"column:payment_method;type:text" json:"payment_method"`
	Note          string                 `gorm:"type:text" json:"note"`
	CreatedAt     time.Time              `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt     time.Time              `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Payment) TableName() string { return "payments" }
