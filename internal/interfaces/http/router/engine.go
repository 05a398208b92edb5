package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/gustavohenri316/Montink-Store/internal/infrastructure/auth"
	"github.com/gustavohenri316/Montink-Store/internal/infrastructure/config"
	"github.com/gustavohenri316/Montink-Store/internal/infrastructure/logger"
	"github.com/gustavohenri316/Montink-Store/internal/infrastructure/telemetry"
	"github.com/gustavohenri316/Montink-Store/internal/interfaces/http/handler"
	"github.com/gustavohenri316/Montink-Store/internal/interfaces/http/middleware"
)

// EngineConfig holds everything NewEngine wires into the gin engine
type EngineConfig struct {
	HTTP    config.HTTPConfig
	Visitor config.VisitorConfig

	ServiceName    string
	TracingEnabled bool
	// TracerProvider overrides the global provider
	TracerProvider trace.TracerProvider

	// MetricsPath exposes Prometheus metrics; empty disables the endpoint
	MetricsPath string

	Logger      *zap.Logger
	Metrics     *telemetry.Metrics
	Tokens      *auth.VisitorTokenService
	RateLimiter *middleware.RateLimiter // nil disables rate limiting
	System      *handler.SystemHandler
}

// NewEngine builds the HTTP engine. Middleware runs in this order:
//
//  1. RequestID, Recovery, request logging
//  2. security headers, CORS
//  3. tracing, metrics, body limit
//  4. on /api routes only: visitor cookie, span tags, rate limiting
func NewEngine(cfg EngineConfig, h Handlers) *gin.Engine {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())

	cors := middleware.DefaultCORSConfig()
	cors.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		cors.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		cors.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}
	cors.MaxAge = 12 * time.Hour
	engine.Use(middleware.CORSWithConfig(cors))

	engine.Use(middleware.TracingWithConfig(middleware.TracingConfig{
		ServiceName:    cfg.ServiceName,
		Enabled:        cfg.TracingEnabled,
		TracerProvider: cfg.TracerProvider,
	}))
	engine.Use(middleware.HTTPMetrics(cfg.Metrics))
	if cfg.HTTP.MaxBodySize > 0 {
		engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))
	}

	if cfg.System != nil {
		engine.GET("/health", cfg.System.Health)
	}
	if cfg.MetricsPath != "" && cfg.Metrics != nil {
		engine.GET(cfg.MetricsPath, gin.WrapH(cfg.Metrics.Handler()))
	}

	r := NewRouter(engine, WithAPIVersion("v1"))
	r.Use(middleware.Visitor(middleware.VisitorConfig{
		Tokens:     cfg.Tokens,
		CookieName: cfg.Visitor.CookieName,
		Secure:     cfg.Visitor.Secure,
		SameSite:   middleware.ParseSameSite(cfg.Visitor.SameSite),
		Logger:     log,
	}))
	r.Use(middleware.SpanEnricher())
	if cfg.RateLimiter != nil {
		r.Use(middleware.RateLimit(cfg.RateLimiter))
	}
	for _, group := range StorefrontGroups(h) {
		r.Register(group)
	}
	r.Setup()

	return engine
}
