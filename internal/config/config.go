// Package config handles loading and validating the application configuration
// from YAML files with environment variable substitution.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the top-level application configuration.
type Config struct {
	Server        ServerConfig        `yaml:"server"`
	Yelp          YelpConfig          `yaml:"yelp"`
	Watch         WatchConfig         `yaml:"watch"`
	Notifications NotificationsConfig `yaml:"notifications"`
	Logging       LoggingConfig       `yaml:"logging"`
}

// ServerConfig defines the Echo HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"`
	Port            int           `yaml:"port"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// Addr returns the host:port listen address.
func (s *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// YelpConfig defines Fusion API settings. Credentials are typically
// supplied via environment substitution, e.g. client_id: ${YELP_CLIENT_ID}.
type YelpConfig struct {
	ClientID     string        `yaml:"client_id"`
	ClientSecret string        `yaml:"client_secret"`
	TokenURL     string        `yaml:"token_url"`
	BaseURL      string        `yaml:"base_url"`
	Timeout      time.Duration `yaml:"timeout"`
}

// WatchConfig defines the saved-search poller settings.
type WatchConfig struct {
	Interval         time.Duration `yaml:"interval"`
	NotifyOnFirstRun bool          `yaml:"notify_on_first_run"`
	Watches          []WatchSpec   `yaml:"watches"`
}

// WatchSpec names one saved search to re-run on every poll.
type WatchSpec struct {
	Name       string   `yaml:"name"`
	Term       string   `yaml:"term"`
	Location   string   `yaml:"location"`
	Latitude   float64  `yaml:"latitude"`
	Longitude  float64  `yaml:"longitude"`
	Radius     int      `yaml:"radius"`
	Categories []string `yaml:"categories"`
	Limit      int      `yaml:"limit"`
	SortBy     string   `yaml:"sort_by"`
}

// NotificationsConfig defines notification targets.
type NotificationsConfig struct {
	Discord DiscordConfig `yaml:"discord"`
}

// DiscordConfig defines Discord webhook settings.
type DiscordConfig struct {
	Enabled    bool   `yaml:"enabled"`
	WebhookURL string `yaml:"webhook_url"`
}

// LoggingConfig defines logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text, json
}

// Load reads and parses a YAML config file, performing environment variable
// substitution and validation.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // config path from trusted CLI flag
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	// Expand environment variables in the YAML content.
	expanded := os.ExpandEnv(string(data))

	cfg := &Config{}
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("parsing config YAML: %w", err)
	}

	applyDefaults(cfg)

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

func applyDefaults(cfg *Config) {
	applyServerDefaults(&cfg.Server)
	applyYelpDefaults(&cfg.Yelp)
	applyWatchDefaults(&cfg.Watch)
	applyLoggingDefaults(&cfg.Logging)
}

func applyServerDefaults(s *ServerConfig) {
	if s.Host == "" {
		s.Host = "0.0.0.0"
	}
	if s.Port == 0 {
		s.Port = 8080
	}
	if s.ReadTimeout == 0 {
		s.ReadTimeout = 30 * time.Second
	}
	if s.WriteTimeout == 0 {
		s.WriteTimeout = 30 * time.Second
	}
	if s.ShutdownTimeout == 0 {
		s.ShutdownTimeout = 10 * time.Second
	}
}

func applyYelpDefaults(y *YelpConfig) {
	if y.TokenURL == "" {
		y.TokenURL = "https://api.yelp.com/oauth2/token"
	}
	if y.BaseURL == "" {
		y.BaseURL = "https://api.yelp.com"
	}
	if y.Timeout == 0 {
		y.Timeout = 30 * time.Second
	}
}

func applyWatchDefaults(w *WatchConfig) {
	if w.Interval == 0 {
		w.Interval = 15 * time.Minute
	}
	for i := range w.Watches {
		if w.Watches[i].Limit == 0 {
			w.Watches[i].Limit = 50
		}
	}
}

func applyLoggingDefaults(l *LoggingConfig) {
	if l.Level == "" {
		l.Level = "info"
	}
	if l.Format == "" {
		l.Format = "text"
	}
}

func validate(cfg *Config) error {
	var errs []error

	if cfg.Yelp.ClientID == "" {
		errs = append(errs, fmt.Errorf("yelp.client_id is required"))
	}
	if cfg.Yelp.ClientSecret == "" {
		errs = append(errs, fmt.Errorf("yelp.client_secret is required"))
	}

	if cfg.Watch.Interval < 0 {
		errs = append(errs, fmt.Errorf("watch.interval must be positive"))
	}

	seen := make(map[string]bool, len(cfg.Watch.Watches))
	for i := range cfg.Watch.Watches {
		w := &cfg.Watch.Watches[i]
		if w.Name == "" {
			errs = append(errs, fmt.Errorf("watch.watches[%d].name is required", i))
			continue
		}
		if seen[w.Name] {
			errs = append(errs, fmt.Errorf("watch name %q is duplicated", w.Name))
		}
		seen[w.Name] = true
	}

	if cfg.Notifications.Discord.Enabled &&
		cfg.Notifications.Discord.WebhookURL == "" {
		errs = append(
			errs,
			fmt.Errorf("notifications.discord.webhook_url is required when discord is enabled"),
		)
	}

	return errors.Join(errs...)
}
