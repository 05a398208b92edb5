package persistence

import (
	"fmt"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/gustavohenri316/Montink-Store/internal/infrastructure/config"
)

// Database holds the database connection and provides methods for database operations
type Database struct {
	DB     *gorm.DB
	Driver string
}

type openOptions struct {
	gorm    *gorm.Config
	plugins []gorm.Plugin
}

// Option configures how the database is opened
type Option func(*openOptions)

// WithGormLogger replaces GORM's default (silent) logger
func WithGormLogger(l logger.Interface) Option {
	return func(o *openOptions) {
		o.gorm.Logger = l
	}
}

// WithPlugin registers a GORM plugin, such as query tracing, after connecting
func WithPlugin(p gorm.Plugin) Option {
	return func(o *openOptions) {
		o.plugins = append(o.plugins, p)
	}
}

// Dialector returns the GORM dialector for a SQL snapshot driver
func Dialector(driver string, cfg *config.DatabaseConfig) (gorm.Dialector, error) {
	dsn := cfg.DSN(driver)
	switch driver {
	case config.DriverSQLite:
		return sqlite.Open(dsn), nil
	case config.DriverPostgres:
		return postgres.Open(dsn), nil
	case config.DriverMySQL:
		return mysql.Open(dsn), nil
	default:
		return nil, fmt.Errorf("unsupported SQL driver %q", driver)
	}
}

// NewDatabase opens a connection for the given driver, applies pool settings and pings it
func NewDatabase(cfg *config.DatabaseConfig, driver string, opts ...Option) (*Database, error) {
	dialector, err := Dialector(driver, cfg)
	if err != nil {
		return nil, err
	}

	db, err := Open(dialector, opts...)
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	maxOpen := cfg.MaxOpenConns
	// every connection to :memory: is a separate database
	if driver == config.DriverSQLite && cfg.Path == ":memory:" {
		maxOpen = 1
	}
	sqlDB.SetMaxOpenConns(maxOpen)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db.Driver = driver
	return db, nil
}

// Open opens a database from an explicit dialector
func Open(dialector gorm.Dialector, opts ...Option) (*Database, error) {
	o := &openOptions{
		gorm: &gorm.Config{
			Logger:                 logger.Default.LogMode(logger.Silent),
			SkipDefaultTransaction: true,
		},
	}
	for _, opt := range opts {
		opt(o)
	}

	db, err := gorm.Open(dialector, o.gorm)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	for _, p := range o.plugins {
		if err := db.Use(p); err != nil {
			return nil, fmt.Errorf("failed to register plugin %s: %w", p.Name(), err)
		}
	}
	return &Database{DB: db, Driver: dialector.Name()}, nil
}

// Close closes the database connection
func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	return sqlDB.Close()
}

// Ping checks if the database connection is alive
func (d *Database) Ping() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	return sqlDB.Ping()
}

// Stats returns database connection pool statistics
func (d *Database) Stats() (ConnectionStats, error) {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return ConnectionStats{}, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	stats := sqlDB.Stats()
	return ConnectionStats{
		MaxOpenConnections: stats.MaxOpenConnections,
		OpenConnections:    stats.OpenConnections,
		InUse:              stats.InUse,
		Idle:               stats.Idle,
		WaitCount:          stats.WaitCount,
		WaitDuration:       stats.WaitDuration,
	}, nil
}

// ConnectionStats holds database connection pool statistics
type ConnectionStats struct {
	MaxOpenConnections int
	OpenConnections    int
	InUse              int
	Idle               int
	WaitCount          int64
	WaitDuration       time.Duration
}
