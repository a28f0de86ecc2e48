package config

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

const (
	UsersStoreMemory   = "memory"
	UsersStorePostgres = "postgres"
)

type Config struct {
	Env     string `env:"APP_ENV" envDefault:"development"`
	Port    int    `env:"PORT" envDefault:"3001"`
	WebPort int    `env:"WEB_PORT" envDefault:"3000"`

	// frontend -> backend
	APIURL             string `env:"API_URL" envDefault:"/api"`
	BackendOriginValue string `env:"BACKEND_ORIGIN"`
	DockerEnv          string `env:"DOCKER_ENV"`

	CORSAllowedOrigins string `env:"CORS_ALLOWED_ORIGINS"`

	UsersStore          string        `env:"USERS_STORE" envDefault:"memory"`
	UsersStrictNotFound bool          `env:"USERS_STRICT_NOT_FOUND" envDefault:"false"`
	UsersCacheTTL       time.Duration `env:"USERS_CACHE_TTL" envDefault:"30s"`

	DatabaseURL string `env:"DATABASE_URL"`
	DBHost      string `env:"DB_HOST" envDefault:"127.0.0.1"`
	DBPort      string `env:"DB_PORT" envDefault:"5432"`
	DBUser      string `env:"DB_USER" envDefault:"monoapp"`
	DBPassword  string `env:"DB_PASSWORD" envDefault:"monoapp"`
	DBName      string `env:"DB_NAME" envDefault:"monoapp"`
	DBSSLMode   string `env:"DB_SSLMODE" envDefault:"disable"`
	DBMaxConns  int32  `env:"DB_MAX_CONNS" envDefault:"5"`

	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`

	RateLimitRequests int           `env:"RATE_LIMIT_REQUESTS" envDefault:"120"`
	RateLimitWindow   time.Duration `env:"RATE_LIMIT_WINDOW" envDefault:"1m"`

	OTELEndpoint string `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`

	MaxBodyBytes    int64         `env:"MAX_BODY_BYTES" envDefault:"1048576"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// Load reads an optional .env file, then the process environment.
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	switch cfg.UsersStore {
	case UsersStoreMemory, UsersStorePostgres:
	default:
		return Config{}, fmt.Errorf("invalid USERS_STORE %q: want %q or %q", cfg.UsersStore, UsersStoreMemory, UsersStorePostgres)
	}

	if cfg.RateLimitRequests < 0 {
		return Config{}, fmt.Errorf("invalid RATE_LIMIT_REQUESTS %d", cfg.RateLimitRequests)
	}

	return cfg, nil
}

func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

func (c Config) IsProduction() bool {
	return c.Env == "production"
}

// CORSOrigins returns the configured allowlist, or the local frontend origins in development.
func (c Config) CORSOrigins() []string {
	if c.CORSAllowedOrigins != "" {
		parts := strings.Split(c.CORSAllowedOrigins, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
		return out
	}

	if c.IsDevelopment() {
		return []string{
			fmt.Sprintf("http://localhost:%d", c.WebPort),
			fmt.Sprintf("http://127.0.0.1:%d", c.WebPort),
		}
	}

	return nil
}

// BackendOrigin is where the frontend sends /api traffic.
func (c Config) BackendOrigin() string {
	if c.BackendOriginValue != "" {
		return strings.TrimRight(c.BackendOriginValue, "/")
	}

	if c.IsDevelopment() && c.DockerEnv != "" {
		return fmt.Sprintf("http://backend-dev:%d", c.Port)
	}

	return fmt.Sprintf("http://localhost:%d", c.Port)
}

func (c Config) DBURL() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}

	return "postgres://" + c.DBUser + ":" + c.DBPassword + "@" + c.DBHost + ":" + c.DBPort + "/" + c.DBName + "?sslmode=" + c.DBSSLMode
}

func WithTimeout(duration time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), duration)
}
