package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/Vovarama1992/chat-widget/internal/storage"
	"github.com/Vovarama1992/chat-widget/internal/widget"
)

type Config struct {
	// Backend discovery
	API     string `env:"WIDGET_API"`
	PageURL string `env:"WIDGET_PAGE_URL"`

	// Storage
	Storage      string `env:"WIDGET_STORAGE" envDefault:"file"`
	StoragePath  string `env:"WIDGET_STORAGE_PATH" envDefault:"~/.chat-widget/storage.json"`
	StorageScope string `env:"WIDGET_STORAGE_SCOPE" envDefault:"default"`
	DatabaseURL  string `env:"WIDGET_DATABASE_URL"`
	RedisURL     string `env:"WIDGET_REDIS_URL"`

	// Conversation
	MockDelay     time.Duration `env:"WIDGET_MOCK_DELAY" envDefault:"800ms"`
	FallbackDelay time.Duration `env:"WIDGET_FALLBACK_DELAY" envDefault:"700ms"`
	HTTPTimeout   time.Duration `env:"WIDGET_HTTP_TIMEOUT" envDefault:"0s"`
	Greeting      string        `env:"WIDGET_GREETING" envDefault:"Hello! Welcome, ready to chat?"`

	// Host
	Port           string   `env:"PORT" envDefault:"8080"`
	AllowedOrigins []string `env:"WIDGET_ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`

	LogLevel string `env:"WIDGET_LOG_LEVEL" envDefault:"info"`
}

// Load reads .env (if any) and then the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return Parse()
}

func Parse() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if cfg.MockDelay < 0 || cfg.FallbackDelay < 0 {
		return nil, fmt.Errorf("parse config: delays must not be negative")
	}
	return cfg, nil
}

func (c *Config) StorageOptions() storage.Options {
	return storage.Options{
		Kind:        c.Storage,
		Path:        c.StoragePath,
		Scope:       c.StorageScope,
		DatabaseURL: c.DatabaseURL,
		RedisURL:    c.RedisURL,
	}
}

func (c *Config) LocatorInputs() widget.LocatorInputs {
	return widget.LocatorInputs{Attribute: c.API, PageURL: c.PageURL}
}
