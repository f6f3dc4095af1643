// Package domain contains persistence models for tenancy.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Tenant represents an isolated billing workspace.
type Tenant struct {
	ID        snowflake.ID `gorm:"primaryKey" json:"id"`
	Name      string       `gorm:"not null" json:"name"`
	Slug      string       `gorm:"type:text;not null;uniqueIndex" json:"slug"`
	GSTIN     string       `gorm:"column:gstin;type:text" json:"gstin,omitempty"`
	HomeState string       `gorm:"column:home_state;type:text" json:"home_state,omitempty"`
	CreatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Tenant) TableName() string { return "tenants" }

// Membership roles.
const (
	RoleAdmin = "admin"
	RoleStaff = "staff"
)

// TenantUser links a user to a tenant with a role.
type TenantUser struct {
	ID        snowflake.ID `gorm:"primaryKey" json:"id"`
	TenantID  snowflake.ID `gorm:"not null;index;uniqueIndex:ux_tenant_user" json:"tenant_id"`
	UserID    snowflake.ID `gorm:"not null;index;uniqueIndex:ux_tenant_user" json:"user_id"`
	Role      string       `gorm:"type:text;not null;default:'admin'" json:"role"`
	CreatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName sets the database table name.
func (TenantUser) TableName() string { return "tenant_users" }
