package server

import (
	"context"
	"net/http"
	"time"

	"github.com/SanguinaInc/playbridge/internal/billing/domain"
	"github.com/SanguinaInc/playbridge/internal/cache"
	"github.com/SanguinaInc/playbridge/internal/config"
	"github.com/SanguinaInc/playbridge/internal/observability"
	obsmiddleware "github.com/SanguinaInc/playbridge/internal/observability/logger"
	obsmetrics "github.com/SanguinaInc/playbridge/internal/observability/metrics"
	obstracing "github.com/SanguinaInc/playbridge/internal/observability/tracing"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("http.server",
	fx.Provide(registerGin),
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

func run(lc fx.Lifecycle, r *gin.Engine, cfg config.Config, log *zap.Logger) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("http server listening", zap.String("addr", cfg.HTTPAddr))
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
	engine      *gin.Engine
	cfg         config.Config
	client      domain.Client
	bridge      *config.BridgeConfigHolder
	obsMetrics  *obsmetrics.Metrics
	symbolCache *cache.SymbolCache
}

type ServerParams struct {
	fx.In

	Gin        *gin.Engine
	Cfg        config.Config
	Client     domain.Client
	Bridge     *config.BridgeConfigHolder
	ObsMetrics *obsmetrics.Metrics `optional:"true"`
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:      p.Gin,
		cfg:         p.Cfg,
		client:      p.Client,
		bridge:      p.Bridge,
		obsMetrics:  p.ObsMetrics,
		symbolCache: cache.NewSymbolCache(),
	}

	svc.registerAPIRoutes()

	return svc
}

func (s *Server) registerAPIRoutes() {
	v1 := s.engine.Group("/v1")
	v1.POST("/products/query", s.QueryProductDetails)
	v1.GET("/purchases", s.QueryPurchases)
	v1.GET("/purchase-history", s.QueryPurchaseHistory)
	v1.GET("/billing-config", s.GetBillingConfig)
	v1.POST("/alternative-billing/reporting-details", s.CreateAlternativeBillingOnlyReportingDetails)
	v1.GET("/currency-symbol", s.GetCurrencySymbol)
}
