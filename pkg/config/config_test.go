package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.App.Name != "activities-api" {
		t.Errorf("App.Name = %q, want activities-api", cfg.App.Name)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Server.StaticDir != "static" {
		t.Errorf("Server.StaticDir = %q, want static", cfg.Server.StaticDir)
	}
	if cfg.Server.ReadTimeout != 30*time.Second {
		t.Errorf("Server.ReadTimeout = %v, want 30s", cfg.Server.ReadTimeout)
	}
	if cfg.Catalog.Path != "" {
		t.Errorf("Catalog.Path = %q, want empty", cfg.Catalog.Path)
	}
	if cfg.Audit.Enabled {
		t.Error("Audit.Enabled = true, want false by default")
	}
	if cfg.OTel.Enabled {
		t.Error("OTel.Enabled = true, want false by default")
	}
	if !cfg.IsDevelopment() {
		t.Errorf("environment = %q, want development by default", cfg.App.Environment)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("APP_ENVIRONMENT", "production")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("CATALOG_PATH", "catalog.yaml")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if !cfg.IsProduction() {
		t.Errorf("environment = %q, want production", cfg.App.Environment)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q, want debug", cfg.Log.Level)
	}
	if cfg.Catalog.Path != "catalog.yaml" {
		t.Errorf("Catalog.Path = %q, want catalog.yaml", cfg.Catalog.Path)
	}
}

func TestLoadWithPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	content := "SERVER_PORT=3000\nAPP_NAME=roster-test\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write env fixture: %v", err)
	}

	cfg, err := LoadWithPath(path)
	if err != nil {
		t.Fatalf("LoadWithPath() error = %v", err)
	}
	if cfg.Server.Port != 3000 {
		t.Errorf("Server.Port = %d, want 3000", cfg.Server.Port)
	}
	if cfg.App.Name != "roster-test" {
		t.Errorf("App.Name = %q, want roster-test", cfg.App.Name)
	}
}

func TestLoadWithPathMissingFile(t *testing.T) {
	if _, err := LoadWithPath(filepath.Join(t.TempDir(), "absent.env")); err == nil {
		t.Error("LoadWithPath() on missing file, want error")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid defaults", func(c *Config) {}, false},
		{"invalid port", func(c *Config) { c.Server.Port = 0 }, true},
		{"port too large", func(c *Config) { c.Server.Port = 70000 }, true},
		{"missing app name", func(c *Config) { c.App.Name = "" }, true},
		{"missing static dir", func(c *Config) { c.Server.StaticDir = "" }, true},
		{"audit enabled without url", func(c *Config) { c.Audit.Enabled = true }, true},
		{"audit enabled with url", func(c *Config) {
			c.Audit.Enabled = true
			c.Audit.DatabaseURL = "postgres://localhost/audit"
		}, false},
		{"otel enabled without addr", func(c *Config) {
			c.OTel.Enabled = true
			c.OTel.CollectorAddr = ""
		}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load()
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			tt.mutate(cfg)

			err = cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestAddr(t *testing.T) {
	s := ServerConfig{Host: "127.0.0.1", Port: 8080}
	if got := s.Addr(); got != "127.0.0.1:8080" {
		t.Errorf("Addr() = %q, want 127.0.0.1:8080", got)
	}
}
