package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"

	"github.com/gymguider/fitness-api/internal/core/domain"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Auth   AuthConfig
	Mongo  MongoConfig
	Redis  RedisConfig
	Events EventsConfig
}

type AuthConfig struct {
	JWTSecret        string        `env:"JWT_SECRET, required"`
	TokenTTL         time.Duration `env:"TOKEN_TTL,          default=15m"`
	BcryptCost       int           `env:"BCRYPT_COST,        default=10"`
	LoginMaxAttempts int           `env:"LOGIN_MAX_ATTEMPTS, default=5"`
	LoginWindow      time.Duration `env:"LOGIN_WINDOW,       default=15m"`
}

type MongoConfig struct {
	URI          string        `env:"MONGO_URI,     default=mongodb://localhost:27017"`
	Database     string        `env:"MONGO_DB,      default=gymguider"`
	StoreTimeout time.Duration `env:"STORE_TIMEOUT, default=5s"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

type EventsConfig struct {
	Workers int    `env:"EVENT_WORKERS,  default=4"`
	Channel string `env:"EVENTS_CHANNEL, default=gymguider.events"`
}

// IsDevelopment reports whether pretty console logging should be used.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	return LoadFrom(ctx, envconfig.OsLookuper())
}

// LoadFrom reads configuration from l. Errors wrap domain.ErrConfiguration.
func LoadFrom(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrConfiguration, err)
	}
	if cfg.Events.Workers <= 0 {
		return nil, fmt.Errorf("%w: EVENT_WORKERS must be positive", domain.ErrConfiguration)
	}
	if cfg.Mongo.StoreTimeout <= 0 {
		return nil, fmt.Errorf("%w: STORE_TIMEOUT must be positive", domain.ErrConfiguration)
	}
	return &cfg, nil
}
