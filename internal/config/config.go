package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Provider exposes the process-wide configuration. It is read once at start
// and never changes afterwards.
type Provider interface {
	GetInvoiceAPIURL() string
	GetInvoiceAPITimeout() time.Duration
	GetServerAddr() string
	GetPollInterval() time.Duration
	GetRevalidateInterval() time.Duration
	GetViewIdleTimeout() time.Duration
	GetSelectWait() time.Duration
	GetCatalogSnapshotPath() string
}

// Config holds all configuration for the application.
type Config struct {
	InvoiceAPIURL       string        `validate:"required,url"`
	InvoiceAPITimeout   time.Duration `validate:"gte=0"`
	ServerAddr          string        `validate:"required"`
	PollInterval        time.Duration `validate:"gt=0"`
	RevalidateInterval  time.Duration `validate:"gt=0"`
	ViewIdleTimeout     time.Duration `validate:"gtfield=PollInterval"`
	SelectWait          time.Duration `validate:"gte=0"`
	CatalogSnapshotPath string
}

// Defaults used when the corresponding variable is unset.
const (
	DefaultServerAddr         = ":3000"
	DefaultPollInterval       = 5 * time.Second
	DefaultRevalidateInterval = 60 * time.Second
	DefaultViewIdleTimeout    = 3 * time.Minute
	DefaultSelectWait         = 2 * time.Second
)

var _ Provider = (*Config)(nil)

// New loads configuration from the environment, after merging a .env file
// from the working directory when one exists.
func New() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load .env: %w", err)
		}
		slog.Debug("No .env file found, relying on environment variables")
	}
	return FromEnv()
}

// FromEnv builds and validates the configuration from environment variables
// only.
func FromEnv() (*Config, error) {
	cfg := &Config{
		InvoiceAPIURL:       os.Getenv("INVOICE_API_URL"),
		ServerAddr:          getEnv("SERVER_ADDR", DefaultServerAddr),
		CatalogSnapshotPath: os.Getenv("CATALOG_SNAPSHOT_PATH"),
	}

	durations := []struct {
		key  string
		def  time.Duration
		dest *time.Duration
	}{
		{"INVOICE_API_TIMEOUT", 0, &cfg.InvoiceAPITimeout},
		{"POLL_INTERVAL", DefaultPollInterval, &cfg.PollInterval},
		{"REVALIDATE_INTERVAL", DefaultRevalidateInterval, &cfg.RevalidateInterval},
		{"VIEW_IDLE_TIMEOUT", DefaultViewIdleTimeout, &cfg.ViewIdleTimeout},
		{"SELECT_WAIT", DefaultSelectWait, &cfg.SelectWait},
	}
	for _, d := range durations {
		v, err := getDuration(d.key, d.def)
		if err != nil {
			return nil, err
		}
		*d.dest = v
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func getEnv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

func getDuration(key string, def time.Duration) (time.Duration, error) {
	raw, ok := os.LookupEnv(key)
	if !ok || raw == "" {
		return def, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}

// GetInvoiceAPIURL is the base URL of the invoice API.
func (c *Config) GetInvoiceAPIURL() string { return c.InvoiceAPIURL }

// GetInvoiceAPITimeout is the per-request timeout of the API client, zero for none.
func (c *Config) GetInvoiceAPITimeout() time.Duration { return c.InvoiceAPITimeout }

// GetServerAddr is the listen address of the HTTP server.
func (c *Config) GetServerAddr() string { return c.ServerAddr }

// GetPollInterval is how often a mounted view refetches its invoices.
func (c *Config) GetPollInterval() time.Duration { return c.PollInterval }

// GetRevalidateInterval is how long the card list is considered fresh.
func (c *Config) GetRevalidateInterval() time.Duration { return c.RevalidateInterval }

// GetViewIdleTimeout is how long a view survives without a lease renewal.
func (c *Config) GetViewIdleTimeout() time.Duration { return c.ViewIdleTimeout }

// GetSelectWait bounds how long a selection request waits for fresh invoices.
func (c *Config) GetSelectWait() time.Duration { return c.SelectWait }

// GetCatalogSnapshotPath is where the card list snapshot is kept, empty for none.
func (c *Config) GetCatalogSnapshotPath() string { return c.CatalogSnapshotPath }
