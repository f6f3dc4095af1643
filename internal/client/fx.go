package client

import (
	"github.com/khatahq/khata/internal/client/repository"
	"github.com/khatahq/khata/internal/client/service"
	"go.uber.org/fx"
)

var Module = fx.Module("client.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
