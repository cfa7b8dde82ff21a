package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	BackendHTTP     = "http"
	BackendPostgres = "postgres"
	BackendMemory   = "memory"

	SessionRedis  = "redis"
	SessionMemory = "memory"
)

// Config holds all application configuration
type Config struct {
	Env     string `envconfig:"APP_ENV" default:"development"`
	Port    int    `envconfig:"APP_PORT" default:"8080"`
	Record  RecordConfig
	DB      DBConfig
	Redis   RedisConfig
	Session SessionConfig
	CORS    CORSConfig
	JWT     JWTConfig
}

// record store configuration
type RecordConfig struct {
	Backend string        `envconfig:"RECORD_BACKEND" default:"memory"`
	APIURL  string        `envconfig:"RECORD_API_URL"`
	APIKey  string        `envconfig:"RECORD_API_KEY"`
	Timeout time.Duration `envconfig:"RECORD_API_TIMEOUT" default:"10s"`
}

// database configuration, used by the postgres record backend
type DBConfig struct {
	DSN      string `envconfig:"DATABASE_URL"`
	MaxConns int32  `envconfig:"DB_MAX_CONNS" default:"20"`
}

type RedisConfig struct {
	Addr     string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	Password string `envconfig:"REDIS_PASSWORD"`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
}

type SessionConfig struct {
	Store        string `envconfig:"SESSION_STORE" default:"memory"`
	CookieSecure bool   `envconfig:"COOKIE_SECURE" default:"false"`
}

// CORS configuration
type CORSConfig struct {
	TrustedOrigins []string `envconfig:"CORS_TRUSTED_ORIGINS" default:"http://localhost:3000,http://localhost:5173"`
}

// JWT configuration
type JWTConfig struct {
	Secret         string        `envconfig:"JWT_SECRET" required:"true"`
	AccessTokenTTL time.Duration `envconfig:"JWT_ACCESS_TOKEN_TTL" default:"24h"`
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// LoadStore reads only what is needed to reach the record store, for
// tools that neither serve HTTP nor sign tokens.
func LoadStore() (*Config, error) {
	cfg := Config{Env: "development"}
	if err := envconfig.Process("", &cfg.Record); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}
	if err := envconfig.Process("", &cfg.DB); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}
	if env := os.Getenv("APP_ENV"); env != "" {
		cfg.Env = env
	}
	if err := cfg.validateStore(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	validEnvs := map[string]bool{
		"development": true,
		"staging":     true,
		"production":  true,
		"test":        true,
	}
	if !validEnvs[c.Env] {
		return fmt.Errorf("invalid environment: %s (must be one of: development, staging, production, test)", c.Env)
	}
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d (must be between 1 and 65535)", c.Port)
	}

	if err := c.validateStore(); err != nil {
		return err
	}

	switch c.Session.Store {
	case SessionRedis:
		if c.Redis.Addr == "" {
			return fmt.Errorf("REDIS_ADDR is required when SESSION_STORE=redis")
		}
	case SessionMemory:
	default:
		return fmt.Errorf("invalid SESSION_STORE: %s (must be one of: redis, memory)", c.Session.Store)
	}

	if len(c.JWT.Secret) < 32 {
		return fmt.Errorf("JWT_SECRET must be at least 32 characters")
	}
	if c.JWT.AccessTokenTTL <= 0 {
		return fmt.Errorf("JWT_ACCESS_TOKEN_TTL must be positive")
	}
	if len(c.GetCORSOrigins()) == 0 {
		return fmt.Errorf("at least one trusted origin must be specified")
	}

	return nil
}

func (c *Config) validateStore() error {
	switch c.Record.Backend {
	case BackendHTTP:
		if c.Record.APIURL == "" {
			return fmt.Errorf("RECORD_API_URL is required when RECORD_BACKEND=http")
		}
		if c.Record.Timeout <= 0 {
			return fmt.Errorf("RECORD_API_TIMEOUT must be positive")
		}
	case BackendPostgres:
		if c.DB.DSN == "" {
			return fmt.Errorf("DATABASE_URL is required when RECORD_BACKEND=postgres")
		}
		if c.DB.MaxConns < 1 {
			return fmt.Errorf("DB_MAX_CONNS must be at least 1")
		}
	case BackendMemory:
	default:
		return fmt.Errorf("invalid RECORD_BACKEND: %s (must be one of: http, postgres, memory)", c.Record.Backend)
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func (c *Config) GetServerAddr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// GetCORSOrigins returns the list of trusted CORS origins
func (c *Config) GetCORSOrigins() []string {
	origins := make([]string, 0, len(c.CORS.TrustedOrigins))
	for _, origin := range c.CORS.TrustedOrigins {
		trimmed := strings.TrimSpace(origin)
		if trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}

func (c *Config) String() string {
	return fmt.Sprintf("Config{Env=%s, Port=%d, Record.Backend=%s, Record.Timeout=%s, DB.MaxConns=%d, "+
		"Session.Store=%s, CORS.Origins=%d, JWT.AccessTokenTTL=%s}",
		c.Env, c.Port, c.Record.Backend, c.Record.Timeout, c.DB.MaxConns,
		c.Session.Store, len(c.CORS.TrustedOrigins), c.JWT.AccessTokenTTL)
}
