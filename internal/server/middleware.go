package server

import (
	"strings"

	"github.com/gin-gonic/gin"
	tenantdomain "github.com/khatahq/khata/internal/tenant/domain"
	"github.com/khatahq/khata/pkg/tenantctx"
	"go.uber.org/zap"
)

const (
	HeaderTenant = "X-Tenant"

	contextUserIDKey     = "user_id"
	contextTenantSlugKey = "tenant_slug"
)

// AuthRequired authenticates the bearer token and puts the user on the
// request context.
func (s *Server) AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		user, err := s.authsvc.Authenticate(c.Request.Context(), token)
		if err != nil {
			AbortWithError(c, err)
			return
		}

		c.Set(contextUserIDKey, user.ID.String())
		c.Request = c.Request.WithContext(tenantctx.WithUserID(c.Request.Context(), user.ID))
		c.Next()
	}
}

// TenantContext resolves the tenant from the X-Tenant header, then the
// request host, then the configured default slug. An unknown slug does not
// reject the request; it just leaves the context unscoped.
func (s *Server) TenantContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		slug := strings.TrimSpace(c.GetHeader(HeaderTenant))
		if slug == "" {
			slug = tenantdomain.SlugFromHost(c.Request.Host)
		}
		if slug == "" {
			slug = s.cfg.DefaultTenantSlug
		}

		tenant, err := s.tenantsvc.Resolve(c.Request.Context(), slug)
		if err != nil {
			s.log.Warn("tenant resolution failed", zap.String("slug", slug), zap.Error(err))
			c.Next()
			return
		}
		if tenant != nil {
			c.Set(contextTenantSlugKey, tenant.Slug)
			c.Request = c.Request.WithContext(tenantctx.WithTenantID(c.Request.Context(), tenant.ID))
		}
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	header := strings.TrimSpace(c.GetHeader("Authorization"))
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
