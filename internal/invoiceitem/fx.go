package invoiceitem

import (
	"github.com/khatahq/khata/internal/invoiceitem/repository"
	"github.com/khatahq/khata/internal/invoiceitem/service"
	"go.uber.org/fx"
)

var Module = fx.Module("invoiceitem.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
