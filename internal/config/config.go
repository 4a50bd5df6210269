package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/newthinker/finquant/internal/core"
	"github.com/newthinker/finquant/internal/fx"
	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Calendars CalendarsConfig `mapstructure:"calendars"`
	Pairs     []fx.Underlying `mapstructure:"pairs"`
	Storage   StorageConfig   `mapstructure:"storage"`
	Publish   PublishConfig   `mapstructure:"publish"`
	Metrics   MetricsConfig   `mapstructure:"metrics"`
}

type ServerConfig struct {
	Host   string `mapstructure:"host"`
	Port   int    `mapstructure:"port"`
	APIKey string `mapstructure:"api_key"`
}

// CalendarsConfig selects the default calendar and declares composite
// calendars as lists of registered calendar names.
type CalendarsConfig struct {
	Default    string              `mapstructure:"default"`
	Composites map[string][]string `mapstructure:"composites"`
}

type StorageConfig struct {
	Type string   `mapstructure:"type"` // "localfs" or "s3"
	Path string   `mapstructure:"path"` // For localfs
	S3   S3Config `mapstructure:"s3"`   // For S3
}

type S3Config struct {
	Bucket    string `mapstructure:"bucket"`
	Endpoint  string `mapstructure:"endpoint"`
	Region    string `mapstructure:"region"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	Prefix    string `mapstructure:"prefix"`
}

// PublishConfig holds calendar snapshot settings.
type PublishConfig struct {
	Calendars []string `mapstructure:"calendars"`
	FromYear  int      `mapstructure:"from_year"`
	ToYear    int      `mapstructure:"to_year"`
	Format    string   `mapstructure:"format"` // "csv" or "json"
}

// MetricsConfig holds metrics configuration.
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// Load reads configuration from file on top of Defaults.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	// Support environment variable overrides
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	// Expand environment variables in string values
	for _, key := range v.AllKeys() {
		val := v.GetString(key)
		if strings.HasPrefix(val, "${") && strings.HasSuffix(val, "}") {
			envKey := strings.TrimSuffix(strings.TrimPrefix(val, "${"), "}")
			v.Set(key, os.Getenv(envKey))
		}
	}

	cfg := Defaults()
	hook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.TextUnmarshallerHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	))
	if err := v.Unmarshal(cfg, hook); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return cfg, nil
}

// Defaults returns a config with sensible defaults
func Defaults() *Config {
	return &Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		Calendars: CalendarsConfig{
			Default: "weekends",
		},
		Storage: StorageConfig{
			Type: "localfs",
			Path: "./snapshots",
		},
		Publish: PublishConfig{
			Calendars: []string{"taiwan"},
			FromYear:  2002,
			ToYear:    2023,
			Format:    "csv",
		},
		Metrics: MetricsConfig{
			Enabled: true,
			Path:    "/metrics",
		},
	}
}

// WatchedPairs returns the configured pairs, or every supported pair when
// none are configured.
func (c *Config) WatchedPairs() []fx.Underlying {
	if len(c.Pairs) == 0 {
		return fx.Underlyings()
	}
	return c.Pairs
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	// Server validation
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("port must be between 1 and 65535, got %d", c.Server.Port))
	}

	if c.Calendars.Default == "" {
		return core.WrapError(core.ErrConfigMissing,
			fmt.Errorf("calendars.default is required"))
	}
	for name, parts := range c.Calendars.Composites {
		if len(parts) < 2 {
			return core.WrapError(core.ErrConfigInvalid,
				fmt.Errorf("composite calendar %q needs at least two calendars", name))
		}
	}

	switch c.Storage.Type {
	case "localfs":
		if c.Storage.Path == "" {
			return core.WrapError(core.ErrConfigMissing,
				fmt.Errorf("storage.path required when type is localfs"))
		}
	case "s3":
		if c.Storage.S3.Bucket == "" {
			return core.WrapError(core.ErrConfigMissing,
				fmt.Errorf("storage.s3.bucket required when type is s3"))
		}
	default:
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("unknown storage type %q", c.Storage.Type))
	}

	if c.Publish.FromYear > c.Publish.ToYear {
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("publish.from_year %d is after to_year %d", c.Publish.FromYear, c.Publish.ToYear))
	}
	if c.Publish.Format != "csv" && c.Publish.Format != "json" {
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("publish.format must be csv or json, got %q", c.Publish.Format))
	}

	return nil
}
