// Package tenantctx carries request-scoped tenant and user identity.
package tenantctx

import (
	"context"

	"github.com/bwmarrin/snowflake"
)

type keyType string

const (
	tenantIDKey keyType = "tenant_id"
	userIDKey   keyType = "user_id"
)

// WithTenantID returns a context annotated with the resolved tenant.
func WithTenantID(ctx context.Context, id snowflake.ID) context.Context {
	return context.WithValue(ctx, tenantIDKey, id)
}

// TenantID reports the tenant the request was resolved to. A zero ID means
// no tenant could be resolved and rows are not tenant-scoped.
func TenantID(ctx context.Context) (snowflake.ID, bool) {
	id, ok := ctx.Value(tenantIDKey).(snowflake.ID)
	return id, ok && id != 0
}

// WithUserID returns a context annotated with the authenticated user.
func WithUserID(ctx context.Context, id snowflake.ID) context.Context {
	return context.WithValue(ctx, userIDKey, id)
}

// UserID reports the authenticated user, if any.
func UserID(ctx context.Context) (snowflake.ID, bool) {
	id, ok := ctx.Value(userIDKey).(snowflake.ID)
	return id, ok && id != 0
}
