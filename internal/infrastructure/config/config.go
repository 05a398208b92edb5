package config

import (
	"errors"
	"fmt"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of environment variables overriding config.toml
const EnvPrefix = "STOREFRONT"

// Snapshot store drivers
const (
	DriverMemory   = "memory"
	DriverRedis    = "redis"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
)

// Config holds all application configuration
type Config struct {
	App       AppConfig
	Log       LogConfig
	HTTP      HTTPConfig
	Snapshot  SnapshotConfig
	Redis     RedisConfig
	Database  DatabaseConfig
	ViaCEP    ViaCEPConfig
	Visitor   VisitorConfig
	Telemetry TelemetryConfig
	Metrics   MetricsConfig
}

// AppConfig holds application-specific settings
type AppConfig struct {
	Name string
	Env  string
	Port string
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, console
	Output string // stdout, stderr, or file path
}

// HTTPConfig holds HTTP server configuration
type HTTPConfig struct {
	ReadTimeout       time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
	ShutdownTimeout   time.Duration
	MaxHeaderBytes    int
	MaxBodySize       int64
	RateLimitEnabled  bool
	RateLimitRequests int
	RateLimitWindow   time.Duration
	CORSAllowOrigins  []string
	CORSAllowMethods  []string
	CORSAllowHeaders  []string
	TrustedProxies    []string
}

// SnapshotConfig selects where visitor state (cart, wishlist, page selections) is kept
type SnapshotConfig struct {
	Driver           string // memory, redis, sqlite, postgres, mysql
	KeyPrefix        string
	TTL              time.Duration // expiry of every stored snapshot; unset defaults to 30 days
	FallbackToMemory bool          // use the in-memory store when the configured one is unreachable
	CleanupInterval  time.Duration
}

// RedisConfig holds Redis connection settings
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// Addr returns the host:port of the Redis server
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// DatabaseConfig holds SQL connection settings for the sqlite, postgres and mysql snapshot drivers
type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	Path            string // sqlite file; ":memory:" for an in-process database
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	LogLevel        string
	SlowThreshold   time.Duration
}

// ViaCEPConfig holds the address lookup client settings
type ViaCEPConfig struct {
	BaseURL   string
	Timeout   time.Duration
	RateLimit float64 // outbound requests per second; 0 disables limiting
	Burst     int
}

// VisitorConfig holds the visitor cookie and token settings
type VisitorConfig struct {
	Secret     string
	Issuer     string
	CookieName string
	TokenTTL   time.Duration
	Secure     bool
	SameSite   string // strict, lax, none
}

// TelemetryConfig holds OpenTelemetry configuration
type TelemetryConfig struct {
	Enabled           bool
	CollectorEndpoint string
	SamplingRatio     float64
	ServiceName       string
	Insecure          bool
	DBTraceEnabled    bool
}

// MetricsConfig holds the Prometheus endpoint configuration
type MetricsConfig struct {
	Enabled bool
	Path    string
}

// Load loads configuration from config.toml and environment variables.
// Priority (highest to lowest):
// 1. Environment variables with STOREFRONT_ prefix (e.g., STOREFRONT_SNAPSHOT_DRIVER)
// 2. config.toml
// 3. Built-in defaults
func Load() (*Config, error) {
	return LoadFile("")
}

// LoadFile is Load with an explicit config file. An empty path searches
// the working directory and /app for config.toml.
func LoadFile(path string) (*Config, error) {
	v := viper.New()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("toml")
		v.AddConfigPath(".")
		v.AddConfigPath("/app")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{
		App: AppConfig{
			Name: v.GetString("app.name"),
			Env:  v.GetString("app.env"),
			Port: v.GetString("app.port"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			Output: v.GetString("log.output"),
		},
		HTTP: HTTPConfig{
			ReadTimeout:       v.GetDuration("http.read_timeout"),
			WriteTimeout:      v.GetDuration("http.write_timeout"),
			IdleTimeout:       v.GetDuration("http.idle_timeout"),
			ShutdownTimeout:   v.GetDuration("http.shutdown_timeout"),
			MaxHeaderBytes:    v.GetInt("http.max_header_bytes"),
			MaxBodySize:       v.GetInt64("http.max_body_size"),
			RateLimitEnabled:  v.GetBool("http.rate_limit_enabled"),
			RateLimitRequests: v.GetInt("http.rate_limit_requests"),
			RateLimitWindow:   v.GetDuration("http.rate_limit_window"),
			CORSAllowOrigins:  v.GetStringSlice("http.cors_allow_origins"),
			CORSAllowMethods:  v.GetStringSlice("http.cors_allow_methods"),
			CORSAllowHeaders:  v.GetStringSlice("http.cors_allow_headers"),
			TrustedProxies:    v.GetStringSlice("http.trusted_proxies"),
		},
		Snapshot: SnapshotConfig{
			Driver:           v.GetString("snapshot.driver"),
			KeyPrefix:        v.GetString("snapshot.key_prefix"),
			TTL:              v.GetDuration("snapshot.ttl"),
			FallbackToMemory: v.GetBool("snapshot.fallback_to_memory"),
			CleanupInterval:  v.GetDuration("snapshot.cleanup_interval"),
		},
		Redis: RedisConfig{
			Host:     v.GetString("redis.host"),
			Port:     v.GetInt("redis.port"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
		},
		Database: DatabaseConfig{
			Host:            v.GetString("database.host"),
			Port:            v.GetInt("database.port"),
			User:            v.GetString("database.user"),
			Password:        v.GetString("database.password"),
			DBName:          v.GetString("database.dbname"),
			SSLMode:         v.GetString("database.sslmode"),
			Path:            v.GetString("database.path"),
			MaxOpenConns:    v.GetInt("database.max_open_conns"),
			MaxIdleConns:    v.GetInt("database.max_idle_conns"),
			ConnMaxLifetime: v.GetDuration("database.conn_max_lifetime"),
			LogLevel:        v.GetString("database.log_level"),
			SlowThreshold:   v.GetDuration("database.slow_threshold"),
		},
		ViaCEP: ViaCEPConfig{
			BaseURL:   v.GetString("viacep.base_url"),
			Timeout:   v.GetDuration("viacep.timeout"),
			RateLimit: v.GetFloat64("viacep.rate_limit"),
			Burst:     v.GetInt("viacep.burst"),
		},
		Visitor: VisitorConfig{
			Secret:     v.GetString("visitor.secret"),
			Issuer:     v.GetString("visitor.issuer"),
			CookieName: v.GetString("visitor.cookie_name"),
			TokenTTL:   v.GetDuration("visitor.token_ttl"),
			Secure:     v.GetBool("visitor.secure"),
			SameSite:   v.GetString("visitor.same_site"),
		},
		Telemetry: TelemetryConfig{
			Enabled:           v.GetBool("telemetry.enabled"),
			CollectorEndpoint: v.GetString("telemetry.collector_endpoint"),
			SamplingRatio:     v.GetFloat64("telemetry.sampling_ratio"),
			ServiceName:       v.GetString("telemetry.service_name"),
			Insecure:          v.GetBool("telemetry.insecure"),
			DBTraceEnabled:    v.GetBool("telemetry.db_trace_enabled"),
		},
		Metrics: MetricsConfig{
			Enabled: v.GetBool("metrics.enabled"),
			Path:    v.GetString("metrics.path"),
		},
	}
	// Booleans that default to true cannot be told apart from "unset" once read.
	if !v.IsSet("snapshot.fallback_to_memory") {
		cfg.Snapshot.FallbackToMemory = true
	}
	if !v.IsSet("metrics.enabled") {
		cfg.Metrics.Enabled = true
	}

	applyDefaults(cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyDefaults sets default values for any empty config fields
func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "montink-store"
	}
	if cfg.App.Env == "" {
		cfg.App.Env = "development"
	}
	if cfg.App.Port == "" {
		cfg.App.Port = "8080"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "console"
	}
	if cfg.Log.Output == "" {
		cfg.Log.Output = "stdout"
	}

	if cfg.HTTP.ReadTimeout == 0 {
		cfg.HTTP.ReadTimeout = 15 * time.Second
	}
	if cfg.HTTP.WriteTimeout == 0 {
		cfg.HTTP.WriteTimeout = 30 * time.Second
	}
	if cfg.HTTP.IdleTimeout == 0 {
		cfg.HTTP.IdleTimeout = 60 * time.Second
	}
	if cfg.HTTP.ShutdownTimeout == 0 {
		cfg.HTTP.ShutdownTimeout = 30 * time.Second
	}
	if cfg.HTTP.MaxHeaderBytes == 0 {
		cfg.HTTP.MaxHeaderBytes = 1 << 20
	}
	if cfg.HTTP.MaxBodySize == 0 {
		cfg.HTTP.MaxBodySize = 64 << 10
	}
	if cfg.HTTP.RateLimitRequests == 0 {
		cfg.HTTP.RateLimitRequests = 120
	}
	if cfg.HTTP.RateLimitWindow == 0 {
		cfg.HTTP.RateLimitWindow = time.Minute
	}
	// An empty origin list allows no cross-origin requests.
	if len(cfg.HTTP.CORSAllowMethods) == 0 {
		cfg.HTTP.CORSAllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	}
	if len(cfg.HTTP.CORSAllowHeaders) == 0 {
		cfg.HTTP.CORSAllowHeaders = []string{"Content-Type", "X-Request-ID"}
	}

	if cfg.Snapshot.Driver == "" {
		cfg.Snapshot.Driver = DriverMemory
	}
	if cfg.Snapshot.KeyPrefix == "" {
		cfg.Snapshot.KeyPrefix = "storefront:"
	}
	if cfg.Snapshot.TTL == 0 {
		cfg.Snapshot.TTL = 30 * 24 * time.Hour
	}
	if cfg.Snapshot.CleanupInterval == 0 {
		cfg.Snapshot.CleanupInterval = 10 * time.Minute
	}

	if cfg.Redis.Host == "" {
		cfg.Redis.Host = "localhost"
	}
	if cfg.Redis.Port == 0 {
		cfg.Redis.Port = 6379
	}

	if cfg.Database.Host == "" {
		cfg.Database.Host = "localhost"
	}
	if cfg.Database.Port == 0 {
		switch cfg.Snapshot.Driver {
		case DriverMySQL:
			cfg.Database.Port = 3306
		default:
			cfg.Database.Port = 5432
		}
	}
	if cfg.Database.DBName == "" {
		cfg.Database.DBName = "storefront"
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Database.Path == "" {
		cfg.Database.Path = "storefront.db"
	}
	if cfg.Database.MaxOpenConns == 0 {
		cfg.Database.MaxOpenConns = 10
	}
	if cfg.Database.MaxIdleConns == 0 {
		cfg.Database.MaxIdleConns = 2
	}
	if cfg.Database.ConnMaxLifetime == 0 {
		cfg.Database.ConnMaxLifetime = time.Hour
	}
	if cfg.Database.LogLevel == "" {
		cfg.Database.LogLevel = "warn"
	}
	if cfg.Database.SlowThreshold == 0 {
		cfg.Database.SlowThreshold = 100 * time.Millisecond
	}

	if cfg.ViaCEP.BaseURL == "" {
		cfg.ViaCEP.BaseURL = "https://viacep.com.br/ws"
	}
	if cfg.ViaCEP.Timeout == 0 {
		cfg.ViaCEP.Timeout = 10 * time.Second
	}
	if cfg.ViaCEP.RateLimit == 0 {
		cfg.ViaCEP.RateLimit = 20
	}
	if cfg.ViaCEP.Burst == 0 {
		cfg.ViaCEP.Burst = 10
	}

	// too short to pass the production check
	if cfg.Visitor.Secret == "" && cfg.App.Env != "production" {
		cfg.Visitor.Secret = "montink-dev-secret"
	}
	if cfg.Visitor.Issuer == "" {
		cfg.Visitor.Issuer = "montink-store"
	}
	if cfg.Visitor.CookieName == "" {
		cfg.Visitor.CookieName = "storefront_visitor"
	}
	if cfg.Visitor.TokenTTL == 0 {
		cfg.Visitor.TokenTTL = 30 * 24 * time.Hour
	}
	if cfg.Visitor.SameSite == "" {
		cfg.Visitor.SameSite = "lax"
	}

	if cfg.Telemetry.CollectorEndpoint == "" {
		cfg.Telemetry.CollectorEndpoint = "localhost:4317"
	}
	if cfg.Telemetry.SamplingRatio == 0 {
		cfg.Telemetry.SamplingRatio = 1.0
	}
	if cfg.Telemetry.ServiceName == "" {
		cfg.Telemetry.ServiceName = cfg.App.Name
	}
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = "/metrics"
	}
}

var validDrivers = []string{DriverMemory, DriverRedis, DriverSQLite, DriverPostgres, DriverMySQL}

// validate performs validation on the configuration
func (c *Config) validate() error {
	if !slices.Contains(validDrivers, c.Snapshot.Driver) {
		return fmt.Errorf("snapshot.driver must be one of %v, got %q", validDrivers, c.Snapshot.Driver)
	}
	if c.Snapshot.TTL < 0 {
		return fmt.Errorf("snapshot.ttl cannot be negative")
	}
	if c.Database.MaxIdleConns > c.Database.MaxOpenConns {
		return fmt.Errorf("database.max_idle_conns (%d) cannot exceed database.max_open_conns (%d)",
			c.Database.MaxIdleConns, c.Database.MaxOpenConns)
	}
	if u, err := url.Parse(c.ViaCEP.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("viacep.base_url must be an absolute URL, got %q", c.ViaCEP.BaseURL)
	}
	if c.ViaCEP.RateLimit < 0 {
		return fmt.Errorf("viacep.rate_limit cannot be negative")
	}
	switch c.Visitor.SameSite {
	case "strict", "lax", "none":
	default:
		return fmt.Errorf("visitor.same_site must be strict, lax or none, got %q", c.Visitor.SameSite)
	}
	if c.Telemetry.SamplingRatio < 0.0 || c.Telemetry.SamplingRatio > 1.0 {
		return fmt.Errorf("telemetry.sampling_ratio must be between 0.0 and 1.0, got %f", c.Telemetry.SamplingRatio)
	}

	if c.App.Env == "production" {
		if len(c.Visitor.Secret) < 32 {
			return fmt.Errorf("visitor.secret must be at least 32 characters in production")
		}
		if !c.Visitor.Secure {
			return fmt.Errorf("visitor.secure must be true in production")
		}
		if c.Snapshot.Driver == DriverMemory {
			return fmt.Errorf("snapshot.driver cannot be %q in production", DriverMemory)
		}
		for _, origin := range c.HTTP.CORSAllowOrigins {
			if origin == "*" {
				return fmt.Errorf("cors_allow_origins cannot be '*' in production (use specific origins)")
			}
		}
	}
	if c.Visitor.SameSite == "none" && !c.Visitor.Secure {
		return fmt.Errorf("visitor.same_site=none requires visitor.secure=true")
	}

	return nil
}

// DSN returns the connection string for the configured SQL driver
func (d *DatabaseConfig) DSN(driver string) string {
	switch driver {
	case DriverSQLite:
		return d.Path
	case DriverMySQL:
		return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
			d.User, d.Password, d.Host, d.Port, d.DBName)
	default:
		u := url.URL{
			Scheme: "postgres",
			User:   url.UserPassword(d.User, d.Password),
			Host:   fmt.Sprintf("%s:%d", d.Host, d.Port),
			Path:   d.DBName,
		}
		q := u.Query()
		q.Set("sslmode", d.SSLMode)
		u.RawQuery = q.Encode()
		return u.String()
	}
}
