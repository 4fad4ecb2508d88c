package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/tinytelemetry/logsearch/internal/model"
)

// cliConfig holds every setting the CLI and dashboard read.
type cliConfig struct {
	ServerURL          string        `mapstructure:"server-url"`
	View               string        `mapstructure:"view"`
	RefreshInterval    time.Duration `mapstructure:"refresh-interval"`
	RequestTimeout     time.Duration `mapstructure:"request-timeout"`
	DensityBuckets     int           `mapstructure:"density-buckets"` // placeholder length until the first refresh
	LogFile            string        `mapstructure:"log-file"`
	LogLevel           string        `mapstructure:"log-level"`
	ReverseScrollWheel bool          `mapstructure:"reverse-scroll-wheel"`
}

func defaultConfigPath(home string) string {
	return filepath.Join(home, ".config", "logsearch", "config.yml")
}

func loadCLIConfig(configPath string) (cliConfig, error) {
	var cfg cliConfig

	home, err := os.UserHomeDir()
	if err != nil {
		return cfg, fmt.Errorf("finding home directory: %w", err)
	}

	v := viper.New()
	v.SetEnvPrefix("LOGSEARCH")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	v.SetDefault("server-url", model.DefaultServerURL)
	v.SetDefault("view", "")
	v.SetDefault("refresh-interval", time.Duration(0))
	v.SetDefault("request-timeout", model.DefaultRequestTimeout)
	v.SetDefault("density-buckets", model.DefaultDensityBuckets)
	v.SetDefault("log-file", "")
	v.SetDefault("log-level", "info")
	v.SetDefault("reverse-scroll-wheel", false)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigFile(defaultConfigPath(home))
	}

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFound) && !os.IsNotExist(err) {
			return cfg, err
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, err
	}

	if cfg.DensityBuckets <= 0 {
		return cfg, fmt.Errorf("density-buckets must be positive, got %d", cfg.DensityBuckets)
	}
	if cfg.RefreshInterval < 0 {
		return cfg, fmt.Errorf("refresh-interval must not be negative, got %s", cfg.RefreshInterval)
	}

	return cfg, nil
}
