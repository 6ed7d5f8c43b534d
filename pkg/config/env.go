package config

const EnvPrefix = "VELORA"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	StorageMemory   = "memory"
	StorageRedis    = "redis"
	StoragePostgres = "postgres"
	StorageSQLite   = "sqlite"
)

const defaultSQLiteDSN = "file:velora.db?cache=shared"

const (
	EnvAppEnv         = "VELORA_APP_ENV"
	EnvPort           = "VELORA_APP_PORT"
	EnvLogLevel       = "VELORA_LOG_LEVEL"
	EnvStorageBackend = "VELORA_STORAGE_BACKEND"
	EnvDBDSN          = "VELORA_DB_DSN"
	EnvDBHost         = "VELORA_DB_HOST"
	EnvDBUser         = "VELORA_DB_USER"
	EnvDBName         = "VELORA_DB_NAME"
	EnvDBPassword     = "VELORA_DB_PASSWORD"
	EnvRedisURL       = "VELORA_REDIS_URL"
	EnvRedisAddr      = "VELORA_REDIS_ADDR"
	EnvPreloaderDelay = "VELORA_PRELOADER_DELAY"
	EnvCurrencyLabel  = "VELORA_CURRENCY_LABEL"
)

var discreteDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
