package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Store      StoreConfig      `yaml:"store" mapstructure:"store"`
	Anthropic  AnthropicConfig  `yaml:"anthropic" mapstructure:"anthropic"`
	Brandfetch BrandfetchConfig `yaml:"brandfetch" mapstructure:"brandfetch"`
	Branddev   BranddevConfig   `yaml:"branddev" mapstructure:"branddev"`
	Links      LinksConfig      `yaml:"links" mapstructure:"links"`
	Brand      BrandConfig      `yaml:"brand" mapstructure:"brand"`
	Log        LogConfig        `yaml:"log" mapstructure:"log"`
}

// StoreConfig configures the database backend.
type StoreConfig struct {
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
}

// AnthropicConfig holds Anthropic API settings.
type AnthropicConfig struct {
	Key   string `yaml:"key" mapstructure:"key"`
	Model string `yaml:"model" mapstructure:"model"`
}

// BrandfetchConfig holds Brandfetch API settings.
type BrandfetchConfig struct {
	Key     string `yaml:"key" mapstructure:"key"`
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`
}

// BranddevConfig holds Brand.dev API settings.
type BranddevConfig struct {
	Key     string `yaml:"key" mapstructure:"key"`
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`
}

// LinksConfig configures the link-injection runs.
type LinksConfig struct {
	Limit     int     `yaml:"limit" mapstructure:"limit"`
	MaxLinks  int     `yaml:"max_links" mapstructure:"max_links"`
	DelaySecs float64 `yaml:"delay_secs" mapstructure:"delay_secs"`
}

// BrandConfig configures the brand-enrichment runs.
type BrandConfig struct {
	Limit     int     `yaml:"limit" mapstructure:"limit"`
	DelaySecs float64 `yaml:"delay_secs" mapstructure:"delay_secs"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("ENRICH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("anthropic.model", "claude-sonnet-4-20250514")
	v.SetDefault("brandfetch.base_url", "https://api.brandfetch.io/v2")
	v.SetDefault("branddev.base_url", "https://api.brand.dev/v1")
	v.SetDefault("links.limit", 100)
	v.SetDefault("links.max_links", 3)
	v.SetDefault("links.delay_secs", 0.5)
	v.SetDefault("brand.limit", 10)
	v.SetDefault("brand.delay_secs", 1.0)

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// ValidateStore checks that database access is configured.
func (c *Config) ValidateStore() error {
	if c.Store.DatabaseURL == "" {
		return eris.New("config: store.database_url is required (ENRICH_STORE_DATABASE_URL)")
	}
	return nil
}

// ValidateAnthropic checks that the AI injector can be constructed.
func (c *Config) ValidateAnthropic() error {
	if c.Anthropic.Key == "" {
		return eris.New("config: anthropic.key is required (ENRICH_ANTHROPIC_KEY)")
	}
	return nil
}

// ValidateProvider checks credentials for the named brand provider.
func (c *Config) ValidateProvider(provider string) error {
	switch provider {
	case "brandfetch":
		if c.Brandfetch.Key == "" {
			return eris.New("config: brandfetch.key is required (ENRICH_BRANDFETCH_KEY)")
		}
	case "branddev":
		if c.Branddev.Key == "" {
			return eris.New("config: branddev.key is required (ENRICH_BRANDDEV_KEY)")
		}
	default:
		return eris.Errorf("config: unknown brand provider %q", provider)
	}
	return nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
