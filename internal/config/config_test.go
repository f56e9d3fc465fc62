package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv(ConfigFileEnv, "")
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Port != 8080 || cfg.DBPath != "./data/swiff.db" || cfg.TokenDuration != 24*time.Hour {
		t.Errorf("defaults = %+v", cfg)
	}
	if cfg.DefaultCurrency != "USD" || cfg.LogLevel != "info" || !cfg.MetricsEnabled {
		t.Errorf("defaults = %+v", cfg)
	}
}

func TestLoadFileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "swiff.yaml")
	content := "port: 9000\njwt_secret: from-file\ndefault_currency: eur\ntoken_duration: 1h\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	t.Setenv("PORT", "9100")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("METRICS_ENABLED", "false")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Port != 9100 {
		t.Errorf("Port = %d, env should win over file", cfg.Port)
	}
	if cfg.JWTSecret != "from-file" || cfg.TokenDuration != time.Hour {
		t.Errorf("file values not applied: %+v", cfg)
	}
	if cfg.DefaultCurrency != "EUR" || cfg.LogLevel != "debug" || cfg.MetricsEnabled {
		t.Errorf("normalized values = %+v", cfg)
	}
	if cfg.ConfigPath != path {
		t.Errorf("ConfigPath = %q, want %q", cfg.ConfigPath, path)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate failed: %v", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing config file")
	}
}

func TestValidateCollectsErrors(t *testing.T) {
	cfg := &Config{Port: 0, LogLevel: "loud", DefaultCurrency: "XYZ"}
	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation errors")
	}
	for _, want := range []string{"PORT", "DB_PATH", "JWT_SECRET", "TOKEN_DURATION", "LOG_LEVEL", "DEFAULT_CURRENCY"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q does not mention %s", err, want)
		}
	}
}
