package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// DefaultSecretKey is the development fallback for SECRET_KEY.
const DefaultSecretKey = "dev-secret-key"

type Config struct {
	MongoURI            string        `env:"MONGO_URI"             env-default:"mongodb://127.0.0.1:27017/"`
	MongoDB             string        `env:"MONGO_DB"              env-default:"mood_journal_db"`
	MongoConnectTimeout time.Duration `env:"MONGO_CONNECT_TIMEOUT" env-default:"5s"`

	// CORSOrigins is a comma-separated list; "*" allows every origin.
	CORSOrigins string `env:"CORS_ORIGINS" env-default:"*"`
	SecretKey   string `env:"SECRET_KEY"   env-default:"dev-secret-key"`
	Environment string `env:"ENV"          env-default:"development"` // development or production

	Port            string        `env:"PORT"             env-default:"5000"`
	RequestTimeout  time.Duration `env:"REQUEST_TIMEOUT"  env-default:"5s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" env-default:"10s"`
	LogLevel        string        `env:"LOG_LEVEL"        env-default:"info"`

	// TrustProxy keys rate limits on X-Forwarded-For instead of the socket address.
	TrustProxy bool `env:"TRUST_PROXY" env-default:"false"`

	// RedisURI enables the Redis-backed rate limiter when set.
	RedisURI             string        `env:"REDIS_URI"`
	RateLimitRPS         float64       `env:"RATE_LIMIT_RPS"          env-default:"5"`
	RateLimitBurst       int           `env:"RATE_LIMIT_BURST"        env-default:"20"`
	RateLimitWindow      time.Duration `env:"RATE_LIMIT_WINDOW"       env-default:"60s"`
	RateLimitMaxRequests int           `env:"RATE_LIMIT_MAX_REQUESTS" env-default:"120"`
}

// Load reads configuration from the environment, applying defaults.
// MONGODB_URI and FLASK_ENV are accepted as fallbacks for MONGO_URI and ENV.
func Load() (*Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config: read env: %w", err)
	}

	if os.Getenv("MONGO_URI") == "" {
		if v := os.Getenv("MONGODB_URI"); v != "" {
			cfg.MongoURI = v
		}
	}
	if os.Getenv("ENV") == "" {
		if v := os.Getenv("FLASK_ENV"); v != "" {
			cfg.Environment = v
		}
	}
	cfg.Environment = strings.ToLower(strings.TrimSpace(cfg.Environment))

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}
	return &cfg, nil
}

// Validate checks values cleanenv cannot check on its own.
func (c *Config) Validate() error {
	var errs []error

	if strings.TrimSpace(c.MongoURI) == "" {
		errs = append(errs, errors.New("MONGO_URI must not be empty"))
	}
	if strings.TrimSpace(c.MongoDB) == "" {
		errs = append(errs, errors.New("MONGO_DB must not be empty"))
	}
	if p, err := strconv.Atoi(c.Port); err != nil || p <= 0 || p > 65535 {
		errs = append(errs, fmt.Errorf("PORT %q is not a valid port", c.Port))
	}
	if c.MongoConnectTimeout <= 0 {
		errs = append(errs, errors.New("MONGO_CONNECT_TIMEOUT must be positive"))
	}
	if c.RequestTimeout <= 0 || c.ShutdownTimeout <= 0 {
		errs = append(errs, errors.New("REQUEST_TIMEOUT and SHUTDOWN_TIMEOUT must be positive"))
	}
	if c.RateLimitRPS <= 0 || c.RateLimitBurst <= 0 {
		errs = append(errs, errors.New("RATE_LIMIT_RPS and RATE_LIMIT_BURST must be positive"))
	}
	if c.RateLimitWindow <= 0 || c.RateLimitMaxRequests <= 0 {
		errs = append(errs, errors.New("RATE_LIMIT_WINDOW and RATE_LIMIT_MAX_REQUESTS must be positive"))
	}

	return errors.Join(errs...)
}

// AllowedOrigins returns the parsed CORS_ORIGINS list, never empty.
func (c *Config) AllowedOrigins() []string {
	origins := parseOrigins(c.CORSOrigins)
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

func parseOrigins(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

// IsProduction returns true when ENV is set to "production".
func (c *Config) IsProduction() bool {
	return strings.ToLower(strings.TrimSpace(c.Environment)) == "production"
}

// UsesDefaultSecret reports whether SECRET_KEY was left at its development value.
func (c *Config) UsesDefaultSecret() bool {
	return c.SecretKey == DefaultSecretKey
}
