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
	Client ClientConfig `yaml:"client" mapstructure:"client"`
	Cache  CacheConfig  `yaml:"cache" mapstructure:"cache"`
	Server ServerConfig `yaml:"server" mapstructure:"server"`
	Log    LogConfig    `yaml:"log" mapstructure:"log"`
}

// ClientConfig holds the Dotlas API key and call behavior.
type ClientConfig struct {
	APIKey       string  `yaml:"api_key" mapstructure:"api_key"`
	BaseURL      string  `yaml:"base_url" mapstructure:"base_url"`
	TimeoutSecs  int     `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	Retries      int     `yaml:"retries" mapstructure:"retries"`
	RateLimitRPS float64 `yaml:"rate_limit_rps" mapstructure:"rate_limit_rps"`
}

// CacheConfig configures the local response cache.
type CacheConfig struct {
	Enabled  bool   `yaml:"enabled" mapstructure:"enabled"`
	Path     string `yaml:"path" mapstructure:"path"`
	TTLHours int    `yaml:"ttl_hours" mapstructure:"ttl_hours"`
}

// ServerConfig configures the local notebook proxy.
type ServerConfig struct {
	Port int `yaml:"port" mapstructure:"port"`
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
	v.SetEnvPrefix("DOTLAS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("client.api_key", "")
	v.SetDefault("client.base_url", "https://api.dotlas.com")
	v.SetDefault("client.timeout_secs", 10)
	v.SetDefault("client.retries", 0)
	v.SetDefault("client.rate_limit_rps", 0)
	v.SetDefault("cache.enabled", false)
	v.SetDefault("cache.path", "dotlas-cache.db")
	v.SetDefault("cache.ttl_hours", 24)
	v.SetDefault("server.port", 8080)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

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
