package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App          AppConfig
	Storage      StorageConfig
	DB           DBConfig
	Redis        RedisConfig
	Session      SessionConfig
	Storefront   StorefrontConfig
	Layout       LayoutConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Storage.normalize(); err != nil {
		return nil, err
	}
	if cfg.Storage.UsesSQL() {
		if err := cfg.DB.ensureDSN(cfg.Storage.Backend); err != nil {
			return nil, err
		}
	}
	if cfg.Storage.Backend == StorageRedis && cfg.Redis.URL == "" && cfg.Redis.Address == "" {
		return nil, fmt.Errorf("either %s or %s is required for the redis backend", EnvRedisURL, EnvRedisAddr)
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"VELORA_APP_ENV" required:"true"`
	Port         string `envconfig:"VELORA_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"VELORA_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"VELORA_LOG_WARN_STACK" default:"false"`

	CORSOrigins []string `envconfig:"VELORA_CORS_ORIGINS" default:"http://localhost:3000"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type StorageConfig struct {
	Backend string        `envconfig:"VELORA_STORAGE_BACKEND" default:"memory"`
	SlotTTL time.Duration `envconfig:"VELORA_STORAGE_SLOT_TTL" default:"0s"`
}

// UsesSQL reports whether slots live in a gorm-backed table.
func (s StorageConfig) UsesSQL() bool {
	return s.Backend == StoragePostgres || s.Backend == StorageSQLite
}

func (s *StorageConfig) normalize() error {
	s.Backend = strings.ToLower(strings.TrimSpace(s.Backend))
	switch s.Backend {
	case StorageMemory, StorageRedis, StoragePostgres, StorageSQLite:
		return nil
	}
	return fmt.Errorf("unsupported %s %q", EnvStorageBackend, s.Backend)
}

type DBConfig struct {
	DSN string `envconfig:"VELORA_DB_DSN"`

	Host     string `envconfig:"VELORA_DB_HOST"`
	Port     int    `envconfig:"VELORA_DB_PORT" default:"5432"`
	User     string `envconfig:"VELORA_DB_USER"`
	Password string `envconfig:"VELORA_DB_PASSWORD"`
	Name     string `envconfig:"VELORA_DB_NAME"`
	SSLMode  string `envconfig:"VELORA_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"VELORA_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"VELORA_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"VELORA_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"VELORA_DB_CONN_MAX_IDLE_TIME" default:"10m"`

	// Driver is derived from the storage backend.
	Driver string `ignored:"true"`
}

type RedisConfig struct {
	URL          string        `envconfig:"VELORA_REDIS_URL"`
	Address      string        `envconfig:"VELORA_REDIS_ADDR"`
	Password     string        `envconfig:"VELORA_REDIS_PASSWORD"`
	DB           int           `envconfig:"VELORA_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"VELORA_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"VELORA_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"VELORA_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"VELORA_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"VELORA_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type SessionConfig struct {
	CookieName string        `envconfig:"VELORA_SESSION_COOKIE" default:"velora_session"`
	TTL        time.Duration `envconfig:"VELORA_SESSION_TTL" default:"720h"`
	Secure     bool          `envconfig:"VELORA_SESSION_SECURE" default:"false"`
}

type StorefrontConfig struct {
	CurrencyLabel string `envconfig:"VELORA_CURRENCY_LABEL" default:"EGP"`
	ShopURL       string `envconfig:"VELORA_SHOP_URL" default:"shop.html"`
}

type LayoutConfig struct {
	PreloaderDelay  time.Duration `envconfig:"VELORA_PRELOADER_DELAY" default:"1500ms"`
	ScrollThreshold int           `envconfig:"VELORA_SCROLL_THRESHOLD" default:"50"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"VELORA_AUTO_MIGRATE" default:"false"`
	Metrics     bool `envconfig:"VELORA_FEATURE_METRICS" default:"true"`
}

func (db *DBConfig) ensureDSN(backend string) error {
	db.Driver = backend
	if db.DSN != "" {
		return nil
	}
	if backend == StorageSQLite {
		db.DSN = defaultSQLiteDSN
		return nil
	}

	missing := []string{}
	values := map[string]string{
		EnvDBHost: db.Host,
		EnvDBUser: db.User,
		EnvDBName: db.Name,
	}
	for _, env := range discreteDBEnvVars {
		if values[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
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
