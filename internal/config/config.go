// Package config resolves chatlens settings from flags, env, .env and YAML.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override (CHATLENS_PORT, ...).
const EnvPrefix = "CHATLENS"

// Config holds the resolved settings.
type Config struct {
	Port           string        `mapstructure:"port"`
	Output         string        `mapstructure:"output"`
	Top            int           `mapstructure:"top"`
	MaxUploadBytes int64         `mapstructure:"max_upload_bytes"`
	Debounce       time.Duration `mapstructure:"debounce"`
	LogLevel       string        `mapstructure:"log_level"`
	LogJSON        bool          `mapstructure:"log_json"`
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("port", "8080")
	v.SetDefault("output", "text")
	v.SetDefault("top", 10)
	v.SetDefault("max_upload_bytes", 32<<20)
	v.SetDefault("debounce", 250*time.Millisecond)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_json", false)
}

// Init points v at cfgFile, or at .chatlens.yaml in $HOME and the working
// directory, loads a .env file if one exists, and enables env overrides.
// A missing config file is not an error.
func Init(v *viper.Viper, cfgFile string) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to load .env: %w", err)
	}

	SetDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		v.AddConfigPath(".")
		v.SetConfigName(".chatlens")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}
	return nil
}

// Load decodes the settings held by v and validates them.
func Load(v *viper.Viper) (Config, error) {
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("failed to decode config: %w", err)
	}

	c.Output = strings.ToLower(strings.TrimSpace(c.Output))
	switch c.Output {
	case "text", "json":
	default:
		return Config{}, fmt.Errorf("unknown output format %q (want text or json)", c.Output)
	}
	if c.Top <= 0 {
		return Config{}, fmt.Errorf("top must be positive, got %d", c.Top)
	}
	if c.MaxUploadBytes <= 0 {
		return Config{}, fmt.Errorf("max_upload_bytes must be positive, got %d", c.MaxUploadBytes)
	}
	if c.Debounce < 0 {
		return Config{}, fmt.Errorf("debounce must not be negative, got %s", c.Debounce)
	}
	return c, nil
}
