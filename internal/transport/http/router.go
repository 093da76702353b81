package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"logomarket/internal/config"
	"logomarket/internal/database"
)

// NewRouter assembles the HTTP surface: the payment endpoints the checkout
// client drives, the catalog endpoints the gallery reads, and health checks.
func NewRouter(cfg config.Config, payments *PaymentHandler, catalog *CatalogHandler, purchases *PurchaseHandler, health database.Service, log *zap.Logger) *gin.Engine {
	if !cfg.DevMode() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestLogger(log))

	corsCfg := cors.DefaultConfig()
	if len(cfg.HTTP.AllowedOrigins) > 0 {
		corsCfg.AllowOrigins = cfg.HTTP.AllowedOrigins
	} else {
		corsCfg.AllowAllOrigins = true
	}
	corsCfg.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	r.Use(cors.New(corsCfg))

	pay := r.Group("/payment")
	{
		pay.POST("/create-order", payments.CreateOrder)
		pay.POST("/verify-payment", payments.VerifyPayment)
		pay.GET("/health", payments.Health)
	}

	r.GET("/catalog", catalog.List)
	r.POST("/catalog/:id/click", catalog.Click)
	r.POST("/downloads", catalog.RecordDownload)
	r.POST("/purchases", purchases.Create)

	r.GET("/healthz", func(c *gin.Context) {
		stats := health.Health(c.Request.Context())
		status := http.StatusOK
		if stats["status"] != "up" {
			status = http.StatusServiceUnavailable
		}
		c.JSON(status, stats)
	})

	return r
}

func requestLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("took", time.Since(start)),
		)
	}
}

// Serve runs the server until ctx is cancelled, then drains in-flight
// requests.
func Serve(ctx context.Context, cfg config.HTTPConfig, handler http.Handler, log *zap.Logger) error {
	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      handler,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		log.Info("shutting down http server")
		return srv.Shutdown(shutdownCtx)
	}
}
