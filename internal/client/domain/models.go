// Package domain contains persistence models for billing clients.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Client is a party invoices are issued to. State and GSTIN feed the GST
// summary report; address is a free-text fallback for state resolution.
type Client struct {
	ID        snowflake.ID `gorm:"primaryKey" json:"id"`
	TenantID  snowflake.ID `gorm:"index" json:"tenant_id,omitempty"`
	Name      string       `gorm:"not null" json:"name"`
	Email     string       `gorm:"type:text" json:"email,omitempty"`
	Phone     string       `gorm:"type:text" json:"phone,omitempty"`
	Address   string       `gorm:"type:text" json:"address,omitempty"`
	Company   string       `gorm:"type:text" json:"company,omitempty"`
	State     string       `gorm:"type:text" json:"state,omitempty"`
	GSTIN     string       `gorm:"column:gstin;type:text" json:"gstin,omitempty"`
	CreatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Client) TableName() string { return "clients" }
