package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, env := range envBindings {
		t.Setenv(env, "")
		os.Unsetenv(env)
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	t.Chdir(t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.API.Timeout != 30*time.Second {
		t.Errorf("API.Timeout = %v, want 30s", cfg.API.Timeout)
	}
	if cfg.Server.Addr != ":8080" {
		t.Errorf("Server.Addr = %q, want :8080", cfg.Server.Addr)
	}
	if cfg.Sheets.Worksheet != "Invoices" {
		t.Errorf("Sheets.Worksheet = %q, want Invoices", cfg.Sheets.Worksheet)
	}
	if cfg.Log.Output != "stderr" {
		t.Errorf("Log.Output = %q, want stderr", cfg.Log.Output)
	}
	if err := cfg.ValidateAPI(); err == nil {
		t.Error("ValidateAPI() should fail without a base URL")
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Chdir(t.TempDir())
	t.Setenv("INVOICE_API_BASE_URL", "https://api.example.com/v1")
	t.Setenv("INVOICE_API_USER_ID", "user-1")
	t.Setenv("INVOICE_API_CLIENT_ID", "client-1")
	t.Setenv("INVOICE_API_TIMEOUT", "5s")
	t.Setenv("DISPLAY_TIMEZONE", "UTC")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.API.BaseURL != "https://api.example.com/v1" {
		t.Errorf("API.BaseURL = %q", cfg.API.BaseURL)
	}
	if cfg.API.Timeout != 5*time.Second {
		t.Errorf("API.Timeout = %v, want 5s", cfg.API.Timeout)
	}
	if err := cfg.ValidateAPI(); err != nil {
		t.Errorf("ValidateAPI() error = %v", err)
	}
	loc, err := cfg.Location()
	if err != nil || loc != time.UTC {
		t.Errorf("Location() = %v, %v; want UTC", loc, err)
	}
}

func TestLoadFile_YAML(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "invoicedesk.yaml")
	content := `api:
  base_url: https://yaml.example.com
  user_id: u
  client_id: c
server:
  addr: 127.0.0.1:9000
sheets:
  worksheet: Export
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if cfg.API.BaseURL != "https://yaml.example.com" {
		t.Errorf("API.BaseURL = %q", cfg.API.BaseURL)
	}
	if cfg.Server.Addr != "127.0.0.1:9000" {
		t.Errorf("Server.Addr = %q", cfg.Server.Addr)
	}
	if cfg.Sheets.Worksheet != "Export" {
		t.Errorf("Sheets.Worksheet = %q", cfg.Sheets.Worksheet)
	}
	// Untouched keys keep their defaults.
	if cfg.API.Timeout != 30*time.Second {
		t.Errorf("API.Timeout = %v, want default", cfg.API.Timeout)
	}
}

func TestLoadFile_Missing(t *testing.T) {
	clearEnv(t)
	if _, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for explicit missing file")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "defaults are valid", mutate: func(*Config) {}},
		{name: "zero timeout", mutate: func(c *Config) { c.API.Timeout = 0 }, wantErr: "INVOICE_API_TIMEOUT"},
		{name: "bad timezone", mutate: func(c *Config) { c.Display.Timezone = "Mars/Olympus" }, wantErr: "DISPLAY_TIMEZONE"},
		{name: "bad level", mutate: func(c *Config) { c.Log.Level = "shout" }, wantErr: "LOG_LEVEL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() error = %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("Validate() error = %v, want mention of %s", err, tt.wantErr)
			}
		})
	}
}

func TestValidateAPI(t *testing.T) {
	tests := []struct {
		name    string
		api     APIConfig
		wantErr bool
	}{
		{name: "complete", api: APIConfig{BaseURL: "http://localhost:3000", UserID: "u", ClientID: "c"}},
		{name: "relative url", api: APIConfig{BaseURL: "/invoice", UserID: "u", ClientID: "c"}, wantErr: true},
		{name: "missing user", api: APIConfig{BaseURL: "http://x", ClientID: "c"}, wantErr: true},
		{name: "missing client", api: APIConfig{BaseURL: "http://x", UserID: "u"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.API = tt.api
			cfg.API.Timeout = time.Second
			if err := cfg.ValidateAPI(); (err != nil) != tt.wantErr {
				t.Errorf("ValidateAPI() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateSheets(t *testing.T) {
	cfg := Default()
	if err := cfg.ValidateSheets(); err == nil {
		t.Error("expected error without sheet URL")
	}
	cfg.Sheets.URL = "https://docs.google.com/spreadsheets/d/abc/edit"
	if err := cfg.ValidateSheets(); err != nil {
		t.Errorf("ValidateSheets() error = %v", err)
	}
}
