package config

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

const (
	EnvLocal      = "local"
	EnvProduction = "production"
)

// Base URLs per environment. Every backend route lives under /api.
var baseURLs = map[string]string{
	EnvLocal:      "http://localhost:5000/api",
	EnvProduction: "https://api.troikatech.in/api",
}

type Config struct {
	Env             string        `env:"APP_ENV" envDefault:"production"`
	APIBaseURL      string        `env:"API_BASE_URL"`
	APITimeout      time.Duration `env:"API_TIMEOUT" envDefault:"30s"`
	WithCredentials bool          `env:"API_WITH_CREDENTIALS" envDefault:"true"`

	StateDatabaseURL string `env:"STATE_DATABASE_URL"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"console"`

	ZohoCallbackAddr string `env:"ZOHO_CALLBACK_ADDR" envDefault:"127.0.0.1:5175"`
	ZohoCallbackPath string `env:"ZOHO_CALLBACK_PATH" envDefault:"/zoho/callback"`

	CreditWatchSchedule  string `env:"CREDIT_WATCH_SCHEDULE" envDefault:"@every 15m"`
	CreditWatchThreshold int    `env:"CREDIT_WATCH_THRESHOLD" envDefault:"100"`
}

func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ .env file not found, using system environment variables")
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	// Default values
	if cfg.APIBaseURL == "" {
		cfg.APIBaseURL = baseURLs[cfg.Env]
	}
	if cfg.StateDatabaseURL == "" {
		cfg.StateDatabaseURL = defaultStateDatabaseURL()
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks settings that would otherwise fail at first use.
func (c *Config) Validate() error {
	if _, ok := baseURLs[c.Env]; !ok {
		return fmt.Errorf("unknown APP_ENV %q (use %s or %s)", c.Env, EnvLocal, EnvProduction)
	}

	u, err := url.Parse(c.APIBaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid API_BASE_URL %q", c.APIBaseURL)
	}

	if !strings.HasPrefix(c.StateDatabaseURL, "sqlite://") &&
		!strings.HasPrefix(c.StateDatabaseURL, "postgres://") &&
		!strings.HasPrefix(c.StateDatabaseURL, "postgresql://") {
		return fmt.Errorf("unsupported STATE_DATABASE_URL scheme: %s", c.StateDatabaseURL)
	}

	if c.APITimeout <= 0 {
		return fmt.Errorf("API_TIMEOUT must be positive")
	}
	if c.CreditWatchThreshold < 0 {
		return fmt.Errorf("CREDIT_WATCH_THRESHOLD must not be negative")
	}
	return nil
}

// BaseURLFor returns the default API base URL for an environment name.
func BaseURLFor(env string) (string, bool) {
	u, ok := baseURLs[env]
	return u, ok
}

func defaultStateDatabaseURL() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return "sqlite://" + filepath.Join(home, ".troika-admin", "state.db")
}
