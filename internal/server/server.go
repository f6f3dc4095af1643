package server

import (
	"context"
	"net/http"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/khatahq/khata/internal/auth"
	authdomain "github.com/khatahq/khata/internal/auth/domain"
	"github.com/khatahq/khata/internal/client"
	clientdomain "github.com/khatahq/khata/internal/client/domain"
	"github.com/khatahq/khata/internal/config"
	"github.com/khatahq/khata/internal/dashboard"
	dashboarddomain "github.com/khatahq/khata/internal/dashboard/domain"
	"github.com/khatahq/khata/internal/gstreport"
	gstreportdomain "github.com/khatahq/khata/internal/gstreport/domain"
	"github.com/khatahq/khata/internal/invoice"
	invoicedomain "github.com/khatahq/khata/internal/invoice/domain"
	"github.com/khatahq/khata/internal/invoiceitem"
	invoiceitemdomain "github.com/khatahq/khata/internal/invoiceitem/domain"
	"github.com/khatahq/khata/internal/observability"
	obslogger "github.com/khatahq/khata/internal/observability/logger"
	obsmetrics "github.com/khatahq/khata/internal/observability/metrics"
	obstracing "github.com/khatahq/khata/internal/observability/tracing"
	"github.com/khatahq/khata/internal/payment"
	paymentdomain "github.com/khatahq/khata/internal/payment/domain"
	"github.com/khatahq/khata/internal/tenant"
	tenantdomain "github.com/khatahq/khata/internal/tenant/domain"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var Module = fx.Module("http.server",
	fx.Provide(newSnowflakeNode),
	fx.Provide(registerGin),
	tenant.Module,
	auth.Module,
	client.Module,
	invoice.Module,
	invoiceitem.Module,
	payment.Module,
	gstreport.Module,
	dashboard.Module,
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func newSnowflakeNode() (*snowflake.Node, error) {
	return snowflake.NewNode(1)
}

func NewEngine(obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obslogger.GinMiddleware(obslogger.MiddlewareConfig{
		Debug:           obsCfg.Debug(),
		ErrorClassifier: classifyErrorForLog,
	}))
	r.Use(obstracing.GinMiddleware())
	r.Use(obsmetrics.GinMiddleware(httpMetrics))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func registerGin(obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	return NewEngine(obsCfg, httpMetrics)
}

func run(lc fx.Lifecycle, r *gin.Engine, cfg config.Config, log *zap.Logger) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Info("http server listening", zap.String("addr", srv.Addr))
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal("http server failed", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine         *gin.Engine
	cfg            config.Config
	db             *gorm.DB
	log            *zap.Logger
	genID          *snowflake.Node
	authsvc        authdomain.Service
	tenantsvc      tenantdomain.Service
	clientSvc      clientdomain.Service
	invoiceSvc     invoicedomain.Service
	invoiceItemSvc invoiceitemdomain.Service
	paymentSvc     paymentdomain.Service
	gstReportSvc   gstreportdomain.Service
	dashboardSvc   dashboarddomain.Service
}

type ServerParams struct {
	fx.In

	Gin            *gin.Engine
	Cfg            config.Config
	DB             *gorm.DB
	Log            *zap.Logger
	GenID          *snowflake.Node
	Authsvc        authdomain.Service
	Tenantsvc      tenantdomain.Service
	ClientSvc      clientdomain.Service
	InvoiceSvc     invoicedomain.Service
	InvoiceItemSvc invoiceitemdomain.Service
	PaymentSvc     paymentdomain.Service
	GstReportSvc   gstreportdomain.Service
	DashboardSvc   dashboarddomain.Service
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:         p.Gin,
		cfg:            p.Cfg,
		db:             p.DB,
		log:            p.Log.Named("http.server"),
		genID:          p.GenID,
		authsvc:        p.Authsvc,
		tenantsvc:      p.Tenantsvc,
		clientSvc:      p.ClientSvc,
		invoiceSvc:     p.InvoiceSvc,
		invoiceItemSvc: p.InvoiceItemSvc,
		paymentSvc:     p.PaymentSvc,
		gstReportSvc:   p.GstReportSvc,
		dashboardSvc:   p.DashboardSvc,
	}

	svc.registerAuthRoutes()
	svc.registerAPIRoutes()

	return svc
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerAuthRoutes() {
	auth := s.engine.Group("/auth")

	auth.POST("/register", s.Register)
	auth.POST("/login", s.Login)
	auth.POST("/logout", s.AuthRequired(), s.Logout)
	auth.GET("/me", s.AuthRequired(), s.Me)
}

func (s *Server) registerAPIRoutes() {
	api := s.engine.Group("/api")

	api.Use(s.TenantContext())
	api.Use(s.AuthRequired())

	// -------- Clients --------
	api.GET("/clients", s.ListClients)
	api.POST("/clients", s.CreateClient)
	api.GET("/clients/:id", s.GetClientByID)
	api.PATCH("/clients/:id", s.UpdateClient)
	api.DELETE("/clients/:id", s.DeleteClient)

	// -------- Invoices --------
	api.GET("/invoices", s.ListInvoices)
	api.POST("/invoices", s.CreateInvoice)
	api.GET("/invoices/:id", s.GetInvoiceByID)
	api.PATCH("/invoices/:id", s.UpdateInvoice)
	api.DELETE("/invoices/:id", s.DeleteInvoice)
	api.GET("/invoices/:id/items", s.ListInvoiceItems)
	api.POST("/invoices/:id/items", s.CreateInvoiceItem)

	// -------- Invoice items --------
	api.GET("/invoice-items/:id", s.GetInvoiceItemByID)
	api.PATCH("/invoice-items/:id", s.UpdateInvoiceItem)
	api.DELETE("/invoice-items/:id", s.DeleteInvoiceItem)

	// -------- Payments --------
	api.GET("/payments", s.ListPayments)
	api.POST("/payments", s.CreatePayment)
	api.GET("/payments/:id", s.GetPaymentByID)
	api.PATCH("/payments/:id", s.UpdatePayment)
	api.DELETE("/payments/:id", s.DeletePayment)

	// -------- Reports --------
	api.GET("/reports/gst", s.GetGSTReport)
	api.GET("/dashboard", s.GetDashboard)
}
