package payment

import (
	"github.com/khatahq/khata/internal/payment/repository"
	"github.com/khatahq/khata/internal/payment/service"
	"go.uber.org/fx"
)

var Module = fx.Module("payment.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
