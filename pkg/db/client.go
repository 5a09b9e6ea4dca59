package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/angelmondragon/inventory-backend/pkg/config"
	"github.com/angelmondragon/inventory-backend/pkg/logger"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const (
	BackendPostgres = "postgres"
	BackendMemory   = "memory"
)

var errDSNRequired = errors.New("database DSN is required")

// Client wraps the shared GORM connection.
type Client struct {
	conn    *gorm.DB
	backend string
}

// Pinger exposes the health check surface.
type Pinger interface {
	Ping(ctx context.Context) error
}

// New boots a Postgres-backed GORM client using the provided configuration.
func New(ctx context.Context, cfg config.DBConfig, logg *logger.Logger) (*Client, error) {
	if cfg.DSN == "" {
		return nil, errDSNRequired
	}

	dialector := postgres.New(postgres.Config{
		DSN:                  cfg.DSN,
		PreferSimpleProtocol: true,
	})

	conn, err := gorm.Open(dialector, gormConfig())
	if err != nil {
		return nil, fmt.Errorf("opening db connection: %w", err)
	}

	sqlDB, err := conn.DB()
	if err != nil {
		return nil, fmt.Errorf("getting sql db handle: %w", err)
	}

	applyPoolSettings(sqlDB, cfg)

	if logg != nil {
		logg.Info(ctx, "database connection established")
	}

	return &Client{conn: conn, backend: BackendPostgres}, nil
}

// Connect returns a Postgres client, or the seeded-ready memory store when
// forceMemory is set or Postgres is missing/unreachable and fallback is allowed.
func Connect(ctx context.Context, cfg config.DBConfig, forceMemory bool, logg *logger.Logger) (*Client, error) {
	if forceMemory {
		return NewMemory(ctx, logg)
	}
	if !cfg.Configured() {
		if !cfg.MemoryFallback {
			return nil, errDSNRequired
		}
		if logg != nil {
			logg.Warn(ctx, "no database configured, using in-memory store")
		}
		return NewMemory(ctx, logg)
	}

	client, err := New(ctx, cfg, logg)
	if err == nil {
		pingCtx := ctx
		if cfg.ConnectTimeout > 0 {
			var cancel context.CancelFunc
			pingCtx, cancel = context.WithTimeout(ctx, cfg.ConnectTimeout)
			defer cancel()
		}
		if err = client.Ping(pingCtx); err != nil {
			_ = client.Close()
			err = fmt.Errorf("pinging database: %w", err)
		}
	}
	if err == nil {
		return client, nil
	}
	if !cfg.MemoryFallback {
		return nil, err
	}
	if logg != nil {
		logg.Warn(logg.WithField(ctx, "error", err.Error()), "database unreachable, using in-memory store")
	}
	return NewMemory(ctx, logg)
}

func gormConfig() *gorm.Config {
	return &gorm.Config{
		Logger: gormlogger.New(
			log.New(io.Discard, "", log.LstdFlags),
			gormlogger.Config{LogLevel: gormlogger.Silent},
		),
		SkipDefaultTransaction: true,
	}
}

func applyPoolSettings(sqlDB *sql.DB, cfg config.DBConfig) {
	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}
	if cfg.ConnMaxIdleTime > 0 {
		sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)
	}
}

// DB returns the underlying GORM connection.
func (c *Client) DB() *gorm.DB {
	return c.conn
}

// Backend reports which store the client talks to.
func (c *Client) Backend() string {
	return c.backend
}

// IsMemory reports whether the client is the volatile in-memory store.
func (c *Client) IsMemory() bool {
	return c.backend == BackendMemory
}

// SQLDB exposes the pooled handle for tools such as goose.
func (c *Client) SQLDB() (*sql.DB, error) {
	return c.conn.DB()
}

// Ping verifies the datasource is reachable.
func (c *Client) Ping(ctx context.Context) error {
	sqlDB, err := c.conn.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close shuts down the pooled connections.
func (c *Client) Close() error {
	sqlDB, err := c.conn.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// WithTx executes fn inside a transaction, rolling back on error/panic.
func (c *Client) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	tx := c.conn.WithContext(ctx).Begin()
	if tx.Error != nil {
		return tx.Error
	}

	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}

	return tx.Commit().Error
}
