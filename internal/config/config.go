// Package config loads invoicedesk settings from the environment, an optional
// YAML file and built-in defaults.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"invoicedesk/internal/logger"
)

// Config is the complete invoicedesk configuration.
type Config struct {
	API     APIConfig     `mapstructure:"api"`
	Display DisplayConfig `mapstructure:"display"`
	Server  ServerConfig  `mapstructure:"server"`
	Sheets  SheetsConfig  `mapstructure:"sheets"`
	Log     LogConfig     `mapstructure:"log"`
}

// APIConfig describes the remote invoice endpoint and its static credentials.
type APIConfig struct {
	BaseURL  string        `mapstructure:"base_url"`
	UserID   string        `mapstructure:"user_id"`
	ClientID string        `mapstructure:"client_id"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

// DisplayConfig controls derived display values.
type DisplayConfig struct {
	// Timezone is an IANA name or "Local". Due dates are rendered in it.
	Timezone string `mapstructure:"timezone"`
}

// ServerConfig configures the HTTP surface.
type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

// SheetsConfig configures the Google Sheets export.
type SheetsConfig struct {
	URL       string `mapstructure:"url"`
	Worksheet string `mapstructure:"worksheet"`
}

// LogConfig mirrors logger.LogConfig for file/env loading.
type LogConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	TimeFormat string `mapstructure:"time_format"`
	Output     string `mapstructure:"output"`
}

// envBindings maps config keys to the environment variables that override them.
var envBindings = map[string]string{
	"api.base_url":     "INVOICE_API_BASE_URL",
	"api.user_id":      "INVOICE_API_USER_ID",
	"api.client_id":    "INVOICE_API_CLIENT_ID",
	"api.timeout":      "INVOICE_API_TIMEOUT",
	"display.timezone": "DISPLAY_TIMEZONE",
	"server.addr":      "SERVER_ADDR",
	"sheets.url":       "GOOGLE_SHEET_URL",
	"sheets.worksheet": "GOOGLE_SHEET_WORKSHEET",
	"log.level":        "LOG_LEVEL",
	"log.format":       "LOG_FORMAT",
	"log.time_format":  "LOG_TIME_FORMAT",
	"log.output":       "LOG_OUTPUT",
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		API: APIConfig{
			Timeout: 30 * time.Second,
		},
		Display: DisplayConfig{Timezone: "Local"},
		Server:  ServerConfig{Addr: ":8080"},
		Sheets:  SheetsConfig{Worksheet: "Invoices"},
		Log: LogConfig{
			Level:      "info",
			Format:     "console",
			TimeFormat: time.RFC3339,
			Output:     "stderr",
		},
	}
}

func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("api.base_url", d.API.BaseURL)
	v.SetDefault("api.user_id", d.API.UserID)
	v.SetDefault("api.client_id", d.API.ClientID)
	v.SetDefault("api.timeout", d.API.Timeout)
	v.SetDefault("display.timezone", d.Display.Timezone)
	v.SetDefault("server.addr", d.Server.Addr)
	v.SetDefault("sheets.url", d.Sheets.URL)
	v.SetDefault("sheets.worksheet", d.Sheets.Worksheet)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
	v.SetDefault("log.time_format", d.Log.TimeFormat)
	v.SetDefault("log.output", d.Log.Output)
}

// Load reads invoicedesk.yaml from the working directory or
// ~/.config/invoicedesk when present, then applies environment overrides.
func Load() (*Config, error) {
	return LoadFile("")
}

// LoadFile is Load with an explicit config file path. An empty path searches
// the default locations; a missing default file is not an error.
func LoadFile(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("binding %s: %w", env, err)
		}
	}

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("invoicedesk")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "invoicedesk"))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// Validate checks settings every command depends on.
func (c *Config) Validate() error {
	if c.API.Timeout <= 0 {
		return fmt.Errorf("INVOICE_API_TIMEOUT must be positive, got %s", c.API.Timeout)
	}
	if _, err := c.Location(); err != nil {
		return fmt.Errorf("DISPLAY_TIMEZONE: %w", err)
	}
	if _, err := zerolog.ParseLevel(strings.ToLower(c.Log.Level)); err != nil {
		return fmt.Errorf("LOG_LEVEL: %w", err)
	}
	return nil
}

// ValidateAPI checks the settings needed to reach the invoice endpoint.
func (c *Config) ValidateAPI() error {
	if c.API.BaseURL == "" {
		return fmt.Errorf("INVOICE_API_BASE_URL is required")
	}
	u, err := url.Parse(c.API.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("INVOICE_API_BASE_URL must be an absolute URL, got %q", c.API.BaseURL)
	}
	if c.API.UserID == "" {
		return fmt.Errorf("INVOICE_API_USER_ID is required")
	}
	if c.API.ClientID == "" {
		return fmt.Errorf("INVOICE_API_CLIENT_ID is required")
	}
	return nil
}

// ValidateSheets checks the settings needed for the Google Sheets export.
func (c *Config) ValidateSheets() error {
	if c.Sheets.URL == "" {
		return fmt.Errorf("GOOGLE_SHEET_URL is required")
	}
	if c.Sheets.Worksheet == "" {
		return fmt.Errorf("GOOGLE_SHEET_WORKSHEET must not be empty")
	}
	return nil
}

// Location resolves the display timezone.
func (c *Config) Location() (*time.Location, error) {
	if c.Display.Timezone == "" || strings.EqualFold(c.Display.Timezone, "local") {
		return time.Local, nil
	}
	return time.LoadLocation(c.Display.Timezone)
}

// GetLoggerConfig returns a logger configuration from the main config
func (c *Config) GetLoggerConfig() logger.LogConfig {
	return logger.LogConfig{
		Level:      c.Log.Level,
		Format:     c.Log.Format,
		TimeFormat: c.Log.TimeFormat,
		Output:     c.Log.Output,
	}
}
