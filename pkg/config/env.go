package config

const (
	EnvPrefix = "INVENTORY"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvAppEnv   = "INVENTORY_APP_ENV"
	EnvPort     = "INVENTORY_APP_PORT"
	EnvLogLevel = "INVENTORY_LOG_LEVEL"

	EnvDBDSN            = "INVENTORY_DB_DSN"
	EnvDBHost           = "INVENTORY_DB_HOST"
	EnvDBPort           = "INVENTORY_DB_PORT"
	EnvDBUser           = "INVENTORY_DB_USER"
	EnvDBPassword       = "INVENTORY_DB_PASSWORD"
	EnvDBName           = "INVENTORY_DB_NAME"
	EnvDBMemoryFallback = "INVENTORY_DB_MEMORY_FALLBACK"

	EnvRedisURL = "INVENTORY_REDIS_URL"

	EnvJWTSecret  = "INVENTORY_JWT_SECRET"
	EnvJWTIssuer  = "INVENTORY_JWT_ISSUER"
	EnvJWTExpMins = "INVENTORY_JWT_EXPIRATION_MINUTES"

	EnvPasswordMinLength = "INVENTORY_PASSWORD_MIN_LENGTH"

	EnvTransactionsPublic       = "INVENTORY_TRANSACTIONS_PUBLIC"
	EnvOrdersEnforceTransitions = "INVENTORY_ORDERS_ENFORCE_TRANSITIONS"
	EnvStockAllowNegative       = "INVENTORY_STOCK_ALLOW_NEGATIVE"
	EnvLowStockThreshold        = "INVENTORY_LOW_STOCK_THRESHOLD"

	EnvUseSQLite   = "INVENTORY_USE_SQLITE"
	EnvAutoMigrate = "INVENTORY_AUTO_MIGRATE"

	EnvGCPProjectID      = "INVENTORY_GCP_PROJECT_ID"
	EnvPubSubEventsTopic = "INVENTORY_PUBSUB_EVENTS_TOPIC"
)
