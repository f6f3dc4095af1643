// Package domain contains persistence models and the line amount
// calculator for invoice items.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

// InvoiceItem is a billable line on an invoice. Subtotal, TaxAmount and
// TotalWithTax are derived from the three input fields and recomputed on
// every write.
type InvoiceItem struct {
	ID            snowflake.ID    `gorm:"primaryKey" json:"id"`
	TenantID      snowflake.ID    `gorm:"index" json:"tenant_id,omitempty"`
	InvoiceID     snowflake.ID    `gorm:"not null;index" json:"invoice_id"`
	Description   string          `gorm:"type:text;not null" json:"description"`
	Quantity      int64           `gorm:"not null;default:1" json:"quantity"`
	UnitPrice     decimal.Decimal `gorm:"column:unit_price;type:decimal(12,2);not null" json:"unit_price"`
	TaxPercentage decimal.Decimal `gorm:"column:tax_percentage;type:decimal(5,2);not null;default:0" json:"tax_percentage"`
	Subtotal      decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"subtotal"`
	TaxAmount     decimal.Decimal `gorm:"column:tax_amount;type:decimal(12,2);not null" json:"tax_amount"`
	TotalWithTax  decimal.Decimal `gorm:"column:total_with_tax;type:decimal(12,2);not null" json:"total_with_tax"`
	CreatedAt     time.Time       `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt     time.Time       `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (InvoiceItem) TableName() string { return "invoice_items" }
