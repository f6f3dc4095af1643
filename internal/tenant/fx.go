package tenant

import (
	"github.com/khatahq/khata/internal/tenant/repository"
	"github.com/khatahq/khata/internal/tenant/service"
	"go.uber.org/fx"
)

var Module = fx.Module("tenant.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
