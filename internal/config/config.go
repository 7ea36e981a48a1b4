// Package config loads the run configuration: the generation service
// endpoint and credential, sender profiles, and per-client invoicing
// policy. A Config is built once at the top of a run and passed into
// the components that need it; there is no package-level state.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// EnvAPIKey is the environment variable carrying the generation
// service's bearer credential. It is read from the environment (or a
// .env file loaded at startup), never from the config file.
const EnvAPIKey = "INVOICE_GENERATOR_API_KEY"

var (
	ErrUnknownClient        = errors.New("client is not configured")
	ErrUnknownSenderProfile = errors.New("sender profile is not configured")
)

// MalformedPolicy decides what a run does with a raw record that fails
// parsing.
type MalformedPolicy string

const (
	// MalformedStrict aborts the run on the first malformed record.
	MalformedStrict MalformedPolicy = "strict"
	// MalformedSkip drops malformed records with a warning.
	MalformedSkip MalformedPolicy = "skip"
)

// ClientProfile is the billed party's identity and per-client policy.
type ClientProfile struct {
	Name           string  `yaml:"-"`
	InvoiceTo      string  `yaml:"invoice_to"`
	SaveFolder     string  `yaml:"save_folder"`
	DueDateDays    int     `yaml:"due_date_days"`
	HourlyRate     float64 `yaml:"hourly_rate"`
	Sheet          string  `yaml:"sheet"`
	ItemHeader     string  `yaml:"item_header"`
	QuantityHeader string  `yaml:"quantity_header"`
}

// SenderProfile is the billing party's identity and boilerplate terms.
type SenderProfile struct {
	Name    string `yaml:"-"`
	From    string `yaml:"invoice_from"`
	LogoURL string `yaml:"invoice_logo_url"`
	Terms   string `yaml:"terms"`
}

type Config struct {
	Timezone         string                   `yaml:"timezone"`
	GeneratorURL     string                   `yaml:"generator_url"`
	GeneratorTimeout string                   `yaml:"generator_timeout"`
	OnMalformed      MalformedPolicy          `yaml:"on_malformed"`
	DefaultClient    string                   `yaml:"default_client"`
	DefaultSender    string                   `yaml:"default_sender"`
	StorePath        string                   `yaml:"store_path"`
	SenderProfiles   map[string]SenderProfile `yaml:"sender_profiles"`
	Clients          map[string]ClientProfile `yaml:"clients"`

	// APIKey comes from EnvAPIKey, not the file.
	APIKey string `yaml:"-"`

	loc     *time.Location
	timeout time.Duration
}

// Default returns the configuration defaults applied before the file
// is read over them.
func Default() *Config {
	return &Config{
		Timezone:         "Local",
		GeneratorURL:     "https://invoice-generator.com",
		GeneratorTimeout: "30s",
		OnMalformed:      MalformedStrict,
		StorePath:        "hours.db",
	}
}

// Load reads the YAML configuration at path and resolves the timezone,
// request timeout, and bearer credential.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.resolve(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) resolve() error {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return fmt.Errorf("timezone %q: %w", c.Timezone, err)
	}
	c.loc = loc

	timeout, err := time.ParseDuration(c.GeneratorTimeout)
	if err != nil {
		return fmt.Errorf("generator_timeout %q: %w", c.GeneratorTimeout, err)
	}
	c.timeout = timeout

	switch c.OnMalformed {
	case MalformedStrict, MalformedSkip:
	default:
		return fmt.Errorf("on_malformed must be %q or %q, got %q",
			MalformedStrict, MalformedSkip, c.OnMalformed)
	}

	for name, client := range c.Clients {
		if client.DueDateDays < 0 {
			return fmt.Errorf("client %q: due_date_days must not be negative", name)
		}
	}

	c.APIKey = os.Getenv(EnvAPIKey)
	return nil
}

// Client resolves a client profile by name. An empty name falls back to
// default_client, or to the only configured client when there is
// exactly one.
func (c *Config) Client(name string) (ClientProfile, error) {
	if name == "" {
		name = c.DefaultClient
		if name == "" && len(c.Clients) == 1 {
			for only := range c.Clients {
				name = only
			}
		}
	}
	client, ok := c.Clients[name]
	if !ok {
		return ClientProfile{}, fmt.Errorf("%w: %q", ErrUnknownClient, name)
	}
	client.Name = name
	return client, nil
}

// Sender resolves a sender profile by name, falling back to
// default_sender for an empty name.
func (c *Config) Sender(name string) (SenderProfile, error) {
	if name == "" {
		name = c.DefaultSender
		if name == "" && len(c.SenderProfiles) == 1 {
			for only := range c.SenderProfiles {
				name = only
			}
		}
	}
	sender, ok := c.SenderProfiles[name]
	if !ok {
		return SenderProfile{}, fmt.Errorf("%w: %q", ErrUnknownSenderProfile, name)
	}
	sender.Name = name
	return sender, nil
}

// Location is the timezone all run timestamps use.
func (c *Config) Location() *time.Location { return c.loc }

// Now is the current time in the run's timezone.
func (c *Config) Now() time.Time { return time.Now().In(c.loc) }

// RequestTimeout bounds the generation request.
func (c *Config) RequestTimeout() time.Duration { return c.timeout }
