package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Password      PasswordConfig
	AuthRateLimit AuthRateLimitConfig
	HTTP          HTTPConfig
	Orders        OrdersConfig
	Stock         StockConfig
	FeatureFlags  FeatureFlagsConfig
	Seed          SeedConfig
	GCP           GCPConfig
	PubSub        PubSubConfig
	Outbox        OutboxConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"INVENTORY_APP_ENV" default:"dev"`
	Port         string `envconfig:"INVENTORY_APP_PORT" default:"5000"`
	LogLevel     string `envconfig:"INVENTORY_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"INVENTORY_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"INVENTORY_DB_DSN"`
	Driver string `envconfig:"INVENTORY_DB_DRIVER" default:"postgres"`

	Host     string `envconfig:"INVENTORY_DB_HOST"`
	Port     int    `envconfig:"INVENTORY_DB_PORT" default:"5432"`
	User     string `envconfig:"INVENTORY_DB_USER"`
	Password string `envconfig:"INVENTORY_DB_PASSWORD"`
	Name     string `envconfig:"INVENTORY_DB_NAME"`
	SSLMode  string `envconfig:"INVENTORY_DB_SSLMODE" default:"disable"`

	// MemoryFallback swaps in the seeded in-memory store when Postgres is
	// not configured or cannot be reached at startup.
	MemoryFallback bool `envconfig:"INVENTORY_DB_MEMORY_FALLBACK" default:"true"`

	MaxOpenConns    int           `envconfig:"INVENTORY_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"INVENTORY_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"INVENTORY_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"INVENTORY_DB_CONN_MAX_IDLE_TIME" default:"10m"`
	ConnectTimeout  time.Duration `envconfig:"INVENTORY_DB_CONNECT_TIMEOUT" default:"5s"`
}

// Configured reports whether a Postgres DSN is available.
func (db DBConfig) Configured() bool {
	return strings.TrimSpace(db.DSN) != ""
}

type RedisConfig struct {
	URL          string        `envconfig:"INVENTORY_REDIS_URL"`
	Address      string        `envconfig:"INVENTORY_REDIS_ADDR"`
	Password     string        `envconfig:"INVENTORY_REDIS_PASSWORD"`
	DB           int           `envconfig:"INVENTORY_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"INVENTORY_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"INVENTORY_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"INVENTORY_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"INVENTORY_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"INVENTORY_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// Enabled reports whether any Redis endpoint was supplied.
func (r RedisConfig) Enabled() bool {
	return strings.TrimSpace(r.URL) != "" || strings.TrimSpace(r.Address) != ""
}

type JWTConfig struct {
	Secret            string `envconfig:"INVENTORY_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"INVENTORY_JWT_ISSUER" default:"inventory-backend"`
	ExpirationMinutes int    `envconfig:"INVENTORY_JWT_EXPIRATION_MINUTES" default:"60"`
}

// Expiration returns the access token lifetime.
func (j JWTConfig) Expiration() time.Duration {
	if j.ExpirationMinutes <= 0 {
		return time.Hour
	}
	return time.Duration(j.ExpirationMinutes) * time.Minute
}

type PasswordConfig struct {
	MinLength        int `envconfig:"INVENTORY_PASSWORD_MIN_LENGTH" default:"6"`
	ArgonMemoryKB    int `envconfig:"INVENTORY_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"INVENTORY_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"INVENTORY_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"INVENTORY_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"INVENTORY_ARGON_KEY_LEN" default:"32"`
}

type AuthRateLimitConfig struct {
	LoginWindow        time.Duration `envconfig:"INVENTORY_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit    int           `envconfig:"INVENTORY_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit       int           `envconfig:"INVENTORY_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
	RegisterWindow     time.Duration `envconfig:"INVENTORY_AUTH_RATE_LIMIT_REGISTER_WINDOW" default:"5m"`
	RegisterEmailLimit int           `envconfig:"INVENTORY_AUTH_RATE_LIMIT_REGISTER_EMAIL_LIMIT" default:"3"`
	RegisterIPLimit    int           `envconfig:"INVENTORY_AUTH_RATE_LIMIT_REGISTER_IP_LIMIT" default:"20"`
}

type HTTPConfig struct {
	AllowedOrigins     []string      `envconfig:"INVENTORY_CORS_ALLOWED_ORIGINS" default:"*"`
	PublicTransactions bool          `envconfig:"INVENTORY_TRANSACTIONS_PUBLIC" default:"true"`
	IdempotencyTTL     time.Duration `envconfig:"INVENTORY_IDEMPOTENCY_TTL" default:"24h"`
	ShutdownTimeout    time.Duration `envconfig:"INVENTORY_SHUTDOWN_TIMEOUT" default:"15s"`
}

type OrdersConfig struct {
	EnforceTransitions bool `envconfig:"INVENTORY_ORDERS_ENFORCE_TRANSITIONS" default:"false"`
}

type StockConfig struct {
	AllowNegative     bool `envconfig:"INVENTORY_STOCK_ALLOW_NEGATIVE" default:"false"`
	LowStockThreshold int  `envconfig:"INVENTORY_LOW_STOCK_THRESHOLD" default:"3"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"INVENTORY_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"INVENTORY_AUTO_MIGRATE" default:"false"`
}

type SeedConfig struct {
	UserPassword string `envconfig:"INVENTORY_SEED_USER_PASSWORD" default:"password123"`
}

type GCPConfig struct {
	ProjectID string `envconfig:"INVENTORY_GCP_PROJECT_ID"`
}

type PubSubConfig struct {
	EventsTopic string `envconfig:"INVENTORY_PUBSUB_EVENTS_TOPIC" default:"inventory-events"`
}

type OutboxConfig struct {
	BatchSize      int `envconfig:"INVENTORY_OUTBOX_PUBLISH_BATCH_SIZE" default:"50"`
	PollIntervalMS int `envconfig:"INVENTORY_OUTBOX_PUBLISH_POLL_MS" default:"500"`
	MaxAttempts    int `envconfig:"INVENTORY_OUTBOX_MAX_ATTEMPTS" default:"10"`
}

// ensureDSN assembles a Postgres URL from the discrete connection settings.
// An empty result is valid and selects the in-memory store.
func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" || db.Host == "" {
		return nil
	}
	if db.User == "" || db.Name == "" {
		return fmt.Errorf("%s requires %s and %s", EnvDBHost, EnvDBUser, EnvDBName)
	}

	userInfo := url.User(db.User)
	if db.Password != "" {
		userInfo = url.UserPassword(db.User, db.Password)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.Host, db.Port),
		Path:   db.Name,
	}

	if db.SSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.SSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
