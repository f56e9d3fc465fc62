// Package config loads server settings from the environment, an optional
// .env file and an optional config file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/swiffapp/swiff/internal/money"
)

// ConfigFileEnv names the environment variable that points at a config file.
const ConfigFileEnv = "SWIFF_CONFIG"

// Config holds the server settings.
type Config struct {
	Port            int           `mapstructure:"port"`
	DBPath          string        `mapstructure:"db_path"`
	JWTSecret       string        `mapstructure:"jwt_secret"`
	TokenDuration   time.Duration `mapstructure:"token_duration"`
	LogLevel        string        `mapstructure:"log_level"`
	DefaultCurrency string        `mapstructure:"default_currency"`
	MetricsEnabled  bool          `mapstructure:"metrics_enabled"`

	// ConfigPath is the config file that was read, if any.
	ConfigPath string `mapstructure:"-"`
}

var defaults = map[string]any{
	"port":             8080,
	"db_path":          "./data/swiff.db",
	"jwt_secret":       "",
	"token_duration":   "24h",
	"log_level":        "info",
	"default_currency": money.DefaultCurrency,
	"metrics_enabled":  true,
}

// Load reads configuration. Precedence, highest first: environment
// variables (PORT, DB_PATH, ...), .env in the working directory, the config
// file, then defaults. configFile may be empty, in which case SWIFF_CONFIG is
// consulted.
func Load(configFile string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile == "" {
		configFile = os.Getenv(ConfigFileEnv)
	}
	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	cfg.ConfigPath = v.ConfigFileUsed()
	cfg.DefaultCurrency = money.NormalizeCurrency(cfg.DefaultCurrency)
	cfg.LogLevel = strings.ToLower(cfg.LogLevel)

	return cfg, nil
}

// Validate reports every problem with the configuration at once.
func (c *Config) Validate() error {
	var errs []error
	if c.Port < 1 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("PORT must be between 1 and 65535, got %d", c.Port))
	}
	if c.DBPath == "" {
		errs = append(errs, errors.New("DB_PATH is required"))
	}
	if c.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET is required"))
	}
	if c.TokenDuration <= 0 {
		errs = append(errs, fmt.Errorf("TOKEN_DURATION must be positive, got %s", c.TokenDuration))
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("LOG_LEVEL must be debug, info, warn or error, got %q", c.LogLevel))
	}
	if !money.IsSupported(c.DefaultCurrency) {
		errs = append(errs, fmt.Errorf("DEFAULT_CURRENCY %q is not supported", c.DefaultCurrency))
	}
	return errors.Join(errs...)
}

// Addr is the listen address for Port.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}
