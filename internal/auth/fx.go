package auth

import (
	"github.com/khatahq/khata/internal/auth/repository"
	"github.com/khatahq/khata/internal/auth/service"
	"go.uber.org/fx"
)

var Module = fx.Module("auth.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
