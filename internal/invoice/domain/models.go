// Package domain contains persistence models for invoices.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	clientdomain "github.com/khatahq/khata/internal/client/domain"
	"github.com/shopspring/decimal"
)

// InvoiceStatus represents invoice lifecycle states.
type InvoiceStatus string

const (
	InvoiceStatusDraft   InvoiceStatus = "draft"
	InvoiceStatusSent    InvoiceStatus = "sent"
	InvoiceStatusPaid    InvoiceStatus = "paid"
	InvoiceStatusOverdue InvoiceStatus = "overdue"
)

// ValidStatus reports whether s is a known lifecycle state.
func ValidStatus(s InvoiceStatus) bool {
	switch s {
	case InvoiceStatusDraft, InvoiceStatusSent, InvoiceStatusPaid, InvoiceStatusOverdue:
		return true
	default:
		return false
	}
}

// WritableStatus reports whether s may be set through the API. Overdue is
// derived from the due date, never written directly.
func WritableStatus(s InvoiceStatus) bool {
	switch s {
	case InvoiceStatusDraft, InvoiceStatusSent, InvoiceStatusPaid:
		return true
	default:
		return false
	}
}

// Invoice represents an issued invoice. Total is the sticker amount the GST
// report splits into taxable and tax portions.
type Invoice struct {
	ID            snowflake.ID         `gorm:"primaryKey" json:"id"`
	TenantID      snowflake.ID         `gorm:"index" json:"tenant_id,omitempty"`
	UserID        snowflake.ID         `gorm:"not null;index" json:"user_id"`
	ClientID      snowflake.ID         `gorm:"not null;index" json:"client_id"`
	Client        *clientdomain.Client `gorm:"foreignKey:ClientID" json:"client,omitempty"`
	InvoiceNumber string               `gorm:"column:invoice_number;type:text;not null;uniqueIndex" json:"invoice_number"`
	InvoiceDate   time.Time            `gorm:"column:invoice_date;not null" json:"invoice_date"`
	DueDate       time.Time            `gorm:"column:due_date;not null" json:"due_date"`
	Total         decimal.Decimal      `gorm:"type:decimal(12,2);not null" json:"total"`
	Status        InvoiceStatus        `gorm:"type:text;not null;default:'draft'" json:"status"`
	CreatedAt     time.Time            `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt     time.Time            `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Invoice) TableName() string { return "invoices" }
