// Package config manages environment variables.
//
// It reads variables from the `.env` file,
// loads them into structured Go types (struct), and
// validates that required values are present so they
// can be reused across the application runtime.
//
// Responsibilities:
//   - Load environment variables (optionally from a `.env` file).
//   - Map env vars into a structured Go config (structs).
//   - Validate required values so the app fails fast on bad/missing config.
//   - Provide sane defaults for the connection pool and observability blocks.
package config

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	// Side-effect import: if a `.env` file exists it is loaded into the
	// process env before any variable is read.
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is stripped from every environment variable read by LoadConfig.
//
// Nesting uses a double underscore:
//
//	AGILE_DATABASE__HOST -> database.host -> Config.Database.Host
const EnvPrefix = "AGILE_"

// Config is the root configuration object for the application.
//
// The `koanf:"..."` tags specify where koanf maps values from.
// The `validate:"required"` tags are enforced by go-playground/validator.
//
// Observability is a pointer because it is optional. If not provided,
// defaults are injected at load time.
type Config struct {
	Primary       Primary              `koanf:"primary" validate:"required"`
	Server        ServerConfig         `koanf:"server" validate:"required"`
	Database      DatabaseConfig       `koanf:"database" validate:"required"`
	Redis         RedisConfig          `koanf:"redis" validate:"required"`
	Integration   IntegrationConfig    `koanf:"integration"`
	Observability *ObservabilityConfig `koanf:"observability"`
}

// Primary holds top-level information about the runtime environment.
type Primary struct {
	Env string `koanf:"env" validate:"required"`
}

// ServerConfig groups settings for the HTTP server runtime.
// Timeouts are expressed in seconds.
type ServerConfig struct {
	Port               string   `koanf:"port" validate:"required"`
	ReadTimeout        int      `koanf:"read_timeout" validate:"required"`
	WriteTimeout       int      `koanf:"write_timeout" validate:"required"`
	IdleTimeout        int      `koanf:"idle_timeout" validate:"required"`
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins"`

	// RateLimit is the sustained requests/second allowed per client IP;
	// zero disables limiting. RateBurst defaults to the rounded-up rate.
	RateLimit float64 `koanf:"rate_limit" validate:"min=0"`
	RateBurst int     `koanf:"rate_burst" validate:"min=0"`
}

// DatabaseConfig contains PostgreSQL connection parameters and pool tuning.
//
// The pool is described the way the rest of the team thinks about it:
//   - PoolSize connections are kept warm,
//   - MaxOverflow extra connections may be opened under load,
//   - PoolTimeout bounds how long a caller queues for a free connection,
//   - PoolRecycle retires connections older than the interval.
type DatabaseConfig struct {
	Host            string        `koanf:"host" validate:"required"`
	Port            int           `koanf:"port" validate:"required"`
	User            string        `koanf:"user" validate:"required"`
	Password        string        `koanf:"password" validate:"required"`
	Name            string        `koanf:"name" validate:"required"`
	SSLMode         string        `koanf:"ssl_mode" validate:"required"`
	PoolSize        int           `koanf:"pool_size" validate:"min=1"`
	MaxOverflow     int           `koanf:"max_overflow" validate:"min=0"`
	PoolTimeout     time.Duration `koanf:"pool_timeout" validate:"min=1s"`
	PoolRecycle     time.Duration `koanf:"pool_recycle" validate:"min=1s"`
	ConnMaxIdleTime time.Duration `koanf:"conn_max_idle_time"`
}

// DSN builds the postgres URL for the configured database.
//
// The password is URL-escaped and host:port is joined with net.JoinHostPort
// so IPv6 hosts get their brackets.
func (d DatabaseConfig) DSN() string {
	hostPort := net.JoinHostPort(d.Host, strconv.Itoa(d.Port))

	return fmt.Sprintf("postgres://%s:%s@%s/%s?sslmode=%s",
		d.User,
		url.QueryEscape(d.Password),
		hostPort,
		d.Name,
		d.SSLMode,
	)
}

// MaxConns is the hard ceiling of simultaneously open connections.
func (d DatabaseConfig) MaxConns() int32 {
	return int32(d.PoolSize + d.MaxOverflow)
}

// RedisConfig contains Redis connection details.
// Address is typically "host:port".
type RedisConfig struct {
	Address string `koanf:"address" validate:"required"`
}

// IntegrationConfig holds credentials for third-party services.
//
// An empty ResendAPIKey disables notification e-mails; notifications are
// still written to the database.
type IntegrationConfig struct {
	ResendAPIKey string `koanf:"resend_api_key"`
	EmailFrom    string `koanf:"email_from"`
}

// Pool defaults mirror the values the application has always run with.
const (
	DefaultPoolSize        = 5
	DefaultMaxOverflow     = 10
	DefaultPoolTimeout     = 30 * time.Second
	DefaultPoolRecycle     = 1800 * time.Second
	DefaultConnMaxIdleTime = 5 * time.Minute
	DefaultEmailFrom       = "Agile <notifications@agile.dev>"
)

// envKey maps AGILE_DATABASE__POOL_SIZE to database.pool_size.
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(key, "__", ".")
}

// LoadConfig loads configuration from environment variables, unmarshals it into
// Config, applies defaults, validates it and returns the result.
func LoadConfig() (*Config, error) {
	k := koanf.New(".")

	// Pool defaults go in first so any env var can override them.
	mainConfig := &Config{
		Database: DatabaseConfig{
			PoolSize:        DefaultPoolSize,
			MaxOverflow:     DefaultMaxOverflow,
			PoolTimeout:     DefaultPoolTimeout,
			PoolRecycle:     DefaultPoolRecycle,
			ConnMaxIdleTime: DefaultConnMaxIdleTime,
		},
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("could not load env variables: %w", err)
	}

	if err := k.Unmarshal("", mainConfig); err != nil {
		return nil, fmt.Errorf("could not unmarshal main config: %w", err)
	}

	if mainConfig.Integration.EmailFrom == "" {
		mainConfig.Integration.EmailFrom = DefaultEmailFrom
	}

	validate := validator.New()
	if err := validate.Struct(mainConfig); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	// If observability config wasn't provided, inject a default.
	if mainConfig.Observability == nil {
		mainConfig.Observability = DefaultObservabilityConfig()
	}

	// Service name is fixed; the environment always follows primary.env so
	// logs and traces are labelled consistently.
	mainConfig.Observability.ServiceName = ServiceName
	mainConfig.Observability.Environment = mainConfig.Primary.Env

	if err := mainConfig.Observability.Validate(); err != nil {
		return nil, fmt.Errorf("invalid observability config: %w", err)
	}

	return mainConfig, nil
}
