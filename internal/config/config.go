package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// FileName is the config file looked up in the config directory.
const FileName = "tacgrid.cfg.json"

// StoreConfig holds snapshot store settings.
type StoreConfig struct {
	Path string `json:"path" mapstructure:"path"`
}

// SearchConfig holds defaults applied to path and reachability queries.
type SearchConfig struct {
	// Timeout bounds a single query from outside; 0 disables it.
	Timeout         time.Duration `json:"timeout" mapstructure:"timeout"`
	IgnoreDifficult bool          `json:"ignoreDifficult" mapstructure:"ignoreDifficult"`
}

// Config is the full CLI configuration.
type Config struct {
	LogLevel string       `json:"logLevel" mapstructure:"logLevel"`
	Store    StoreConfig  `json:"store" mapstructure:"store"`
	Search   SearchConfig `json:"search" mapstructure:"search"`
}

// SetDefaults registers default values and the TACGRID_ environment overrides.
func SetDefaults() {
	viper.SetDefault("logLevel", "info")
	viper.SetDefault("store.path", "tacgrid.db")
	viper.SetDefault("search.timeout", "0s")
	viper.SetDefault("search.ignoreDifficult", false)

	viper.SetEnvPrefix("TACGRID")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
}

// Load sets defaults and reads FileName from configDir. A missing file is not
// an error; defaults and environment still apply.
func Load(configDir string) error {
	SetDefaults()

	viper.SetConfigName(FileName)
	viper.SetConfigType("json")
	viper.AddConfigPath(configDir)

	err := viper.ReadInConfig()
	var notFound viper.ConfigFileNotFoundError
	if err != nil && !errors.As(err, &notFound) {
		return fmt.Errorf("error reading config file: %w", err)
	}

	return nil
}

// Get decodes the current viper state into a Config.
func Get() (Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("error decoding config: %w", err)
	}

	return cfg, nil
}
