// Package config provides configuration management.
package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"subscription-audit/internal/errors"
	"subscription-audit/internal/logging"
)

// EnvPrefix is the prefix for environment overrides, e.g. SUBAUDIT_CURRENCY_GBP_TO_USD
const EnvPrefix = "SUBAUDIT"

// Config is the main application configuration
type Config struct {
	// Version is the configuration version
	Version string `yaml:"version" mapstructure:"version"`

	// Currency contains conversion settings
	Currency CurrencyConfig `yaml:"currency" mapstructure:"currency"`

	// Catalog contains catalog settings
	Catalog CatalogConfig `yaml:"catalog" mapstructure:"catalog"`

	// Output contains output configuration
	Output OutputConfig `yaml:"output" mapstructure:"output"`

	// Server contains HTTP server settings
	Server ServerConfig `yaml:"server" mapstructure:"server"`

	// Storage contains report sink settings
	Storage StorageConfig `yaml:"storage" mapstructure:"storage"`

	// Notify contains the post-audit webhook
	Notify NotifyConfig `yaml:"notify" mapstructure:"notify"`

	// Logging contains logging configuration
	Logging logging.Config `yaml:"logging" mapstructure:"logging"`
}

// CurrencyConfig contains conversion settings
type CurrencyConfig struct {
	// GBPToUSD is the fixed rate used to normalise GBP prices
	GBPToUSD float64 `yaml:"gbp_to_usd" mapstructure:"gbp_to_usd"`
}

// CatalogConfig contains catalog settings
type CatalogConfig struct {
	// Path is an optional external catalog (.hcl, .yaml); empty uses the built-in one
	Path string `yaml:"path" mapstructure:"path"`
}

// OutputConfig contains output-related settings
type OutputConfig struct {
	// DefaultFormat is the default report format
	DefaultFormat string `yaml:"default_format" mapstructure:"default_format"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Addr         string        `yaml:"addr" mapstructure:"addr"`
	ReadTimeout  time.Duration `yaml:"read_timeout" mapstructure:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout" mapstructure:"write_timeout"`
}

// StorageConfig contains report sink settings
type StorageConfig struct {
	S3    S3Config    `yaml:"s3" mapstructure:"s3"`
	Azure AzureConfig `yaml:"azure" mapstructure:"azure"`
}

// S3Config contains S3 (or S3-compatible) settings
type S3Config struct {
	// Region is the bucket region
	Region string `yaml:"region" mapstructure:"region"`

	// Endpoint overrides the S3 endpoint, for R2 or MinIO
	Endpoint string `yaml:"endpoint,omitempty" mapstructure:"endpoint"`

	// AccessKeyID and SecretAccessKey select static credentials; empty uses the default chain
	AccessKeyID     string `yaml:"access_key_id,omitempty" mapstructure:"access_key_id"`
	SecretAccessKey string `yaml:"secret_access_key,omitempty" mapstructure:"secret_access_key"`

	// UsePathStyle forces path-style addressing
	UsePathStyle bool `yaml:"use_path_style" mapstructure:"use_path_style"`
}

// AzureConfig contains Azure Blob Storage settings
type AzureConfig struct {
	// ServiceURL is the blob service URL; http URLs are treated as Azurite
	ServiceURL string `yaml:"service_url" mapstructure:"service_url"`
}

// NotifyConfig contains webhook notification settings
type NotifyConfig struct {
	// Provider shapes the payload: slack, teams or custom
	Provider string `yaml:"provider" mapstructure:"provider"`

	// Endpoint is the webhook URL; empty disables notification
	Endpoint string `yaml:"endpoint,omitempty" mapstructure:"endpoint"`

	// Secret signs custom payloads with HMAC-SHA256
	Secret string `yaml:"secret,omitempty" mapstructure:"secret"`

	Timeout    time.Duration `yaml:"timeout" mapstructure:"timeout"`
	RetryCount int           `yaml:"retry_count" mapstructure:"retry_count"`
	RetryDelay time.Duration `yaml:"retry_delay" mapstructure:"retry_delay"`
}

// Default returns a default configuration
func Default() *Config {
	return &Config{
		Version: "1.0",
		Currency: CurrencyConfig{
			GBPToUSD: 1.2,
		},
		Output: OutputConfig{
			DefaultFormat: "markdown",
		},
		Server: ServerConfig{
			Addr:         ":8080",
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
		},
		Storage: StorageConfig{
			S3: S3Config{
				Region: "us-east-1",
			},
		},
		Notify: NotifyConfig{
			Provider:   "custom",
			Timeout:    30 * time.Second,
			RetryCount: 3,
			RetryDelay: time.Second,
		},
		Logging: logging.DefaultConfig(),
	}
}

// Load loads configuration from a file (JSON or YAML) and the environment.
// With an empty path, subaudit.{yaml,json} is searched for in
// $HOME/.config/subaudit and the working directory; a missing file is not an error.
func Load(path string) (*Config, error) {
	v := viper.New()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "subaudit"))
		}
		v.AddConfigPath(".")
		v.SetConfigName("subaudit")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v, Default())

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, errors.Config("failed to read config", err)
		}
	}

	cfg := Default()
	decodeHook := mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.TextUnmarshallerHookFunc(),
	)
	if err := v.Unmarshal(cfg, viper.DecodeHook(decodeHook)); err != nil {
		return nil, errors.Config("failed to decode config", err)
	}

	cfg.Storage.S3.AccessKeyID = os.ExpandEnv(cfg.Storage.S3.AccessKeyID)
	cfg.Storage.S3.SecretAccessKey = os.ExpandEnv(cfg.Storage.S3.SecretAccessKey)
	cfg.Notify.Secret = os.ExpandEnv(cfg.Notify.Secret)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// setDefaults registers every key so AutomaticEnv can override it during Unmarshal.
func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("version", d.Version)
	v.SetDefault("currency.gbp_to_usd", d.Currency.GBPToUSD)
	v.SetDefault("catalog.path", d.Catalog.Path)
	v.SetDefault("output.default_format", d.Output.DefaultFormat)
	v.SetDefault("server.addr", d.Server.Addr)
	v.SetDefault("server.read_timeout", d.Server.ReadTimeout)
	v.SetDefault("server.write_timeout", d.Server.WriteTimeout)
	v.SetDefault("storage.s3.region", d.Storage.S3.Region)
	v.SetDefault("storage.s3.endpoint", d.Storage.S3.Endpoint)
	v.SetDefault("storage.s3.access_key_id", d.Storage.S3.AccessKeyID)
	v.SetDefault("storage.s3.secret_access_key", d.Storage.S3.SecretAccessKey)
	v.SetDefault("storage.s3.use_path_style", d.Storage.S3.UsePathStyle)
	v.SetDefault("storage.azure.service_url", d.Storage.Azure.ServiceURL)
	v.SetDefault("notify.provider", d.Notify.Provider)
	v.SetDefault("notify.endpoint", d.Notify.Endpoint)
	v.SetDefault("notify.secret", d.Notify.Secret)
	v.SetDefault("notify.timeout", d.Notify.Timeout)
	v.SetDefault("notify.retry_count", d.Notify.RetryCount)
	v.SetDefault("notify.retry_delay", d.Notify.RetryDelay)
	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.format", d.Logging.Format)
	v.SetDefault("logging.output", d.Logging.Output)
	v.SetDefault("logging.development", d.Logging.Development)
}

// Validate checks values that would otherwise fail late
func (c *Config) Validate() error {
	if c.Currency.GBPToUSD <= 0 {
		return errors.Newf(errors.TypeConfig, "currency.gbp_to_usd must be positive, got %v", c.Currency.GBPToUSD)
	}
	if c.Output.DefaultFormat == "" {
		return errors.New(errors.TypeConfig, "output.default_format must not be empty")
	}
	if err := c.Logging.Validate(); err != nil {
		return errors.Config("invalid logging settings", err)
	}
	switch c.Notify.Provider {
	case "slack", "teams", "custom":
	default:
		return errors.Newf(errors.TypeConfig, "notify.provider must be slack, teams or custom, got %q", c.Notify.Provider)
	}
	if c.Notify.RetryCount < 0 {
		return errors.New(errors.TypeConfig, "notify.retry_count must not be negative")
	}
	return nil
}

// Save saves configuration to a YAML file
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Global configuration instance
var globalConfig = Default()

// Get returns the global configuration
func Get() *Config {
	return globalConfig
}

// Set sets the global configuration
func Set(config *Config) {
	globalConfig = config
}
