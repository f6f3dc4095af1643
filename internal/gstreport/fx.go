package gstreport

import (
	"github.com/khatahq/khata/internal/gstreport/service"
	"go.uber.org/fx"
)

var Module = fx.Module("gstreport.service",
	fx.Provide(service.New),
)
