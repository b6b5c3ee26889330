package config

import (
	"context"

	"github.com/sethvargo/go-envconfig"
)

// Backend API roots per environment. API_BASE_URL, when set, wins over the
// preset regardless of ENV.
const (
	devBackendURL  = "http://localhost:5000/api"
	prodBackendURL = "https://api.byway.app/api"
)

type Config struct {
	Port       string `env:"PORT,         default=3000"`
	Env        string `env:"ENV,          default=development"`
	LogLevel   string `env:"LOG_LEVEL,    default=info"`
	APIBaseURL string `env:"API_BASE_URL"`

	Redis RedisConfig
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// BackendBaseURL resolves the backend API root: an explicit API_BASE_URL
// override first, then the ENV preset.
func (c *Config) BackendBaseURL() string {
	if c.APIBaseURL != "" {
		return c.APIBaseURL
	}
	if c.Env == "production" {
		return prodBackendURL
	}
	return devBackendURL
}
