package server

import (
	"context"
	"net/http"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/smallbiznis/voltra/internal/allocation"
	allocationdomain "github.com/smallbiznis/voltra/internal/allocation/domain"
	"github.com/smallbiznis/voltra/internal/billing"
	billingdomain "github.com/smallbiznis/voltra/internal/billing/domain"
	"github.com/smallbiznis/voltra/internal/config"
	"github.com/smallbiznis/voltra/internal/customer"
	customerdomain "github.com/smallbiznis/voltra/internal/customer/domain"
	"github.com/smallbiznis/voltra/internal/feeder"
	feederdomain "github.com/smallbiznis/voltra/internal/feeder/domain"
	"github.com/smallbiznis/voltra/internal/loadcategory"
	lcdomain "github.com/smallbiznis/voltra/internal/loadcategory/domain"
	"github.com/smallbiznis/voltra/internal/observability"
	obsmiddleware "github.com/smallbiznis/voltra/internal/observability/logger"
	obsmetrics "github.com/smallbiznis/voltra/internal/observability/metrics"
	obstracing "github.com/smallbiznis/voltra/internal/observability/tracing"
	"github.com/smallbiznis/voltra/internal/reading"
	readingdomain "github.com/smallbiznis/voltra/internal/reading/domain"
	"github.com/smallbiznis/voltra/internal/vacation"
	vacationdomain "github.com/smallbiznis/voltra/internal/vacation/domain"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("http.server",
	fx.Provide(registerGin),
	loadcategory.Module,
	feeder.Module,
	customer.Module,
	vacation.Module,
	reading.Module,
	billing.Module,
	allocation.Module,
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obsmiddleware.GinMiddleware(obsmiddleware.MiddlewareConfig{
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

func run(lc fx.Lifecycle, cfg config.Config, r *gin.Engine) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					panic(err)
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
	engine          *gin.Engine
	cfg             config.Config
	db              *gorm.DB
	genID           *snowflake.Node
	loadCategorySvc lcdomain.Service
	feederSvc       feederdomain.Service
	customerSvc     customerdomain.Service
	vacationSvc     vacationdomain.Service
	readingSvc      readingdomain.Service
	billingSvc      billingdomain.Service
	allocationSvc   allocationdomain.Service
}

type ServerParams struct {
	fx.In

	Gin             *gin.Engine
	Cfg             config.Config
	DB              *gorm.DB
	GenID           *snowflake.Node
	LoadCategorySvc lcdomain.Service
	FeederSvc       feederdomain.Service
	CustomerSvc     customerdomain.Service
	VacationSvc     vacationdomain.Service
	ReadingSvc      readingdomain.Service
	BillingSvc      billingdomain.Service
	AllocationSvc   allocationdomain.Service
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:          p.Gin,
		cfg:             p.Cfg,
		db:              p.DB,
		genID:           p.GenID,
		loadCategorySvc: p.LoadCategorySvc,
		feederSvc:       p.FeederSvc,
		customerSvc:     p.CustomerSvc,
		vacationSvc:     p.VacationSvc,
		readingSvc:      p.ReadingSvc,
		billingSvc:      p.BillingSvc,
		allocationSvc:   p.AllocationSvc,
	}

	svc.registerAPIRoutes()

	return svc
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerAPIRoutes() {
	api := s.engine.Group("/api")

	// -------- Load categories --------
	api.GET("/load-categories", s.ListLoadCategories)
	api.POST("/load-categories", s.CreateLoadCategory)

	// -------- Feeders --------
	api.GET("/feeders", s.ListFeeders)
	api.POST("/feeders", s.CreateFeeder)
	api.GET("/feeders/:code", s.GetFeederByCode)
	api.GET("/feeders/:code/readings", s.ListReadings)
	api.POST("/feeders/:code/readings", s.IngestReading)

	// -------- Customers --------
	api.GET("/customers", s.ListCustomers)
	api.POST("/customers", s.CreateCustomer)
	api.GET("/customers/:id", s.GetCustomerByID)
	api.POST("/customers/:id/verify", s.VerifyCustomer)
	api.GET("/customers/:id/vacations", s.ListVacations)
	api.POST("/customers/:id/vacations", s.CreateVacation)
	api.GET("/customers/:id/bills", s.ListCustomerBills)

	// -------- Vacations --------
	api.POST("/vacations/:id/status", s.UpdateVacationStatus)

	// -------- Billing --------
	api.POST("/billing/runs", s.RunAllocation)
	api.GET("/billing/runs", s.ListAllocationRuns)
	api.GET("/billing/bills", s.ListBillsByPeriod)
}
