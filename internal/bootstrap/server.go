// Package bootstrap assembles the storefront from configuration. Both
// binaries under cmd/ start the server through it.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	storefrontapp "github.com/gustavohenri316/Montink-Store/internal/application/storefront"
	"github.com/gustavohenri316/Montink-Store/internal/domain/catalog"
	"github.com/gustavohenri316/Montink-Store/internal/domain/shared"
	"github.com/gustavohenri316/Montink-Store/internal/infrastructure/auth"
	"github.com/gustavohenri316/Montink-Store/internal/infrastructure/config"
	"github.com/gustavohenri316/Montink-Store/internal/infrastructure/scheduler"
	"github.com/gustavohenri316/Montink-Store/internal/infrastructure/telemetry"
	"github.com/gustavohenri316/Montink-Store/internal/infrastructure/viacep"
	"github.com/gustavohenri316/Montink-Store/internal/interfaces/http/handler"
	"github.com/gustavohenri316/Montink-Store/internal/interfaces/http/middleware"
	"github.com/gustavohenri316/Montink-Store/internal/interfaces/http/router"
)

// Version is overridden at build time with -ldflags "-X ...bootstrap.Version=..."
var Version = "dev"

// Server is a fully wired storefront HTTP server
type Server struct {
	cfg     *config.Config
	log     *zap.Logger
	http    *http.Server
	store   shared.SnapshotStore
	tracer  *telemetry.TracerProvider
	limiter *middleware.RateLimiter
	purge   *scheduler.PurgeTrigger
}

// NewViaCEPClient builds the address lookup client from configuration
func NewViaCEPClient(cfg *config.Config, log *zap.Logger, metrics *telemetry.Metrics) (*viacep.Client, error) {
	return viacep.NewClient(viacep.Config{
		BaseURL:   cfg.ViaCEP.BaseURL,
		Timeout:   cfg.ViaCEP.Timeout,
		RateLimit: cfg.ViaCEP.RateLimit,
		Burst:     cfg.ViaCEP.Burst,
	}, viacep.WithLogger(log), viacep.WithMetrics(metrics))
}

// NewServer wires tracing, metrics, the snapshot store, the address lookup
// client and the HTTP engine
func NewServer(ctx context.Context, cfg *config.Config, log *zap.Logger) (*Server, error) {
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	tracer, err := telemetry.NewTracerProvider(ctx, telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		ServiceVersion:    Version,
		Environment:       cfg.App.Env,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize tracing: %w", err)
	}

	metrics := telemetry.NewMetrics()

	store, err := OpenSnapshotStore(ctx, cfg, log)
	if err != nil {
		_ = tracer.Shutdown(ctx)
		return nil, err
	}

	lookup, err := NewViaCEPClient(cfg, log, metrics)
	if err != nil {
		_ = store.Close()
		_ = tracer.Shutdown(ctx)
		return nil, fmt.Errorf("failed to create address lookup client: %w", err)
	}

	cat := catalog.NewStaticCatalog(catalog.CourtVisionLow())
	svc := storefrontapp.NewServices(store, cat, lookup,
		storefrontapp.WithLogger(log),
		storefrontapp.WithMetrics(metrics),
	)

	var pinger handler.Pinger
	if p, ok := store.(handler.Pinger); ok {
		pinger = p
	}

	// SQL stores keep expired rows until purged
	var purge *scheduler.PurgeTrigger
	if p, ok := store.(scheduler.Purger); ok {
		purge = scheduler.NewPurgeTrigger(scheduler.PurgeTriggerConfig{
			Interval: cfg.Snapshot.CleanupInterval,
		}, p, log)
	}

	var limiter *middleware.RateLimiter
	if cfg.HTTP.RateLimitEnabled {
		limiter = middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}

	metricsPath := ""
	if cfg.Metrics.Enabled {
		metricsPath = cfg.Metrics.Path
	}

	engine := router.NewEngine(router.EngineConfig{
		HTTP:           cfg.HTTP,
		Visitor:        cfg.Visitor,
		ServiceName:    cfg.Telemetry.ServiceName,
		TracingEnabled: cfg.Telemetry.Enabled,
		MetricsPath:    metricsPath,
		Logger:         log,
		Metrics:        metrics,
		Tokens:         auth.NewVisitorTokenService(cfg.Visitor),
		RateLimiter:    limiter,
		System:         handler.NewSystemHandler(cfg.App.Name, Version, pinger),
	}, router.Handlers{
		Catalog:      handler.NewCatalogHandler(cat),
		Page:         handler.NewPageHandler(svc.Page, svc.Confirmation),
		Confirmation: handler.NewConfirmationHandler(svc.Confirmation),
		Cart:         handler.NewCartHandler(svc.Cart),
		Wishlist:     handler.NewWishlistHandler(svc.Wishlist),
		Header:       handler.NewHeaderHandler(svc.Header),
	})

	return &Server{
		cfg: cfg,
		log: log,
		http: &http.Server{
			Addr:           ":" + cfg.App.Port,
			Handler:        engine,
			ReadTimeout:    cfg.HTTP.ReadTimeout,
			WriteTimeout:   cfg.HTTP.WriteTimeout,
			IdleTimeout:    cfg.HTTP.IdleTimeout,
			MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
		},
		store:   store,
		tracer:  tracer,
		limiter: limiter,
		purge:   purge,
	}, nil
}

// Handler returns the HTTP handler, for tests
func (s *Server) Handler() http.Handler {
	return s.http.Handler
}

// Run serves until ctx is cancelled, then drains in-flight requests within
// http.shutdown_timeout and releases the store and tracer
func (s *Server) Run(ctx context.Context) error {
	stop := make(chan struct{})
	defer close(stop)
	if s.limiter != nil {
		go s.limiter.Run(stop)
	}
	if s.purge != nil {
		if err := s.purge.Start(ctx); err != nil {
			return err
		}
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("Server starting", zap.String("addr", s.http.Addr))
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	var serveErr error
	select {
	case <-ctx.Done():
		s.log.Info("Shutting down server...")
	case serveErr = <-errCh:
		if serveErr != nil {
			s.log.Error("Server failed", zap.Error(serveErr))
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout())
	defer cancel()

	if err := s.http.Shutdown(shutdownCtx); err != nil {
		s.log.Error("Server forced to shutdown", zap.Error(err))
		serveErr = errors.Join(serveErr, err)
	}
	if s.purge != nil {
		if err := s.purge.Stop(shutdownCtx); err != nil {
			s.log.Error("Error stopping snapshot purge", zap.Error(err))
		}
	}
	if err := s.store.Close(); err != nil {
		s.log.Error("Error closing snapshot store", zap.Error(err))
	}
	if err := s.tracer.Shutdown(shutdownCtx); err != nil {
		s.log.Error("Error shutting down tracer", zap.Error(err))
	}

	if serveErr == nil {
		s.log.Info("Server exited gracefully")
	}
	return serveErr
}

func (s *Server) shutdownTimeout() time.Duration {
	if s.cfg.HTTP.ShutdownTimeout > 0 {
		return s.cfg.HTTP.ShutdownTimeout
	}
	return 30 * time.Second
}
