package invoice

import (
	"github.com/khatahq/khata/internal/invoice/repository"
	"github.com/khatahq/khata/internal/invoice/service"
	"go.uber.org/fx"
)

var Module = fx.Module("invoice.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
