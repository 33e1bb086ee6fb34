package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Config is the storefront BFF configuration.
type Config struct {
	Port          string        `env:"PORT,              default=8080"`
	Env           string        `env:"ENV,               default=development"`
	LogLevel      string        `env:"LOG_LEVEL,         default=info"`
	VisitorSecret string        `env:"VISITOR_SECRET,    default=dev-visitor-secret"`
	VisitorIdle   time.Duration `env:"VISITOR_IDLE_TTL,  default=2h"`
	FetchQueue    int           `env:"FETCH_QUEUE_SIZE,  default=256"`
	FetchTimeout  time.Duration `env:"FETCH_TIMEOUT,     default=30s"`
	FallbackPath  string        `env:"FALLBACK_CATALOG"`

	Catalog CatalogConfig
	Redis   RedisConfig
}

// CatalogConfig points at the remote catalog service. A zero Timeout leaves
// requests unbounded.
type CatalogConfig struct {
	URL     string        `env:"CATALOG_URL,     default=http://localhost:8000"`
	Timeout time.Duration `env:"CATALOG_TIMEOUT, default=0s"`
}

// RedisConfig backs the checkout guard. An empty Addr disables it.
type RedisConfig struct {
	Addr     string        `env:"REDIS_ADDR,         default=localhost:6379"`
	Password string        `env:"REDIS_PASSWORD"`
	DB       int           `env:"REDIS_DB,           default=0"`
	PoolSize int           `env:"REDIS_POOL_SIZE,    default=0"`
	GuardTTL time.Duration `env:"CHECKOUT_GUARD_TTL, default=30s"`
}

// Production reports whether the service runs in production mode.
func (c *Config) Production() bool { return c.Env == "production" }

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
