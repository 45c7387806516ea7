package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v2"
)

const (
	defaultConfigFilename = "lsthub.yml"
)

// Config defines the server's top level configuration
type Config struct {
	Common   CommonConfig   `mapstructure:"common" yaml:"common"`
	Hub      HubConfig      `mapstructure:"hub" yaml:"hub"`
	Ledger   LedgerConfig   `mapstructure:"ledger" yaml:"ledger"`
	Operator OperatorConfig `mapstructure:"operator" yaml:"operator"`
	Metrics  MetricsConfig  `mapstructure:"metrics" yaml:"metrics"`
}

func (cfg *Config) Validate() error {
	if err := cfg.Common.Validate(); err != nil {
		return fmt.Errorf("invalid config in common: %w", err)
	}

	if err := cfg.Hub.Validate(); err != nil {
		return fmt.Errorf("invalid config in hub: %w", err)
	}

	if err := cfg.Ledger.Validate(); err != nil {
		return fmt.Errorf("invalid config in ledger: %w", err)
	}

	if cfg.Hub.BaseDenom != cfg.Ledger.BondDenom {
		return fmt.Errorf("invalid config in hub: base-denom %s differs from the ledger bond-denom %s",
			cfg.Hub.BaseDenom, cfg.Ledger.BondDenom)
	}

	if err := cfg.Operator.Validate(); err != nil {
		return fmt.Errorf("invalid config in operator: %w", err)
	}

	if err := cfg.Metrics.Validate(); err != nil {
		return fmt.Errorf("invalid config in metrics: %w", err)
	}

	return nil
}

func DefaultConfigFile() string {
	return defaultConfigFilename
}

// DefaultConfig returns server's default configuration.
func DefaultConfig() *Config {
	return &Config{
		Common:   DefaultCommonConfig(),
		Hub:      DefaultHubConfig(),
		Ledger:   DefaultLedgerConfig(),
		Operator: DefaultOperatorConfig(),
		Metrics:  DefaultMetricsConfig(),
	}
}

// New returns a fully parsed Config object from a given file directory
func New(configFile string) (Config, error) {
	if _, err := os.Stat(configFile); err == nil { // the given file exists, parse it
		v := viper.New()
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, err
		}
		cfg := *DefaultConfig()
		if err := v.Unmarshal(&cfg); err != nil {
			return Config{}, err
		}
		if err := cfg.Validate(); err != nil {
			return Config{}, err
		}
		return cfg, nil
	} else if errors.Is(err, os.ErrNotExist) { // the given config file does not exist, return error
		return Config{}, fmt.Errorf("no config file found at %s", configFile)
	} else { // other errors
		return Config{}, err
	}
}

// WriteSample writes the default configuration to path.
func WriteSample(path string) error {
	cfg := DefaultConfig()
	d, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, d, 0644)
}
