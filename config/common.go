package config

import (
	"errors"
	"fmt"
	"time"
)

const (
	defaultLogFormat         = "auto"
	defaultLogLevel          = "info"
	defaultRetrySleepTime    = 5 * time.Second
	defaultMaxRetrySleepTime = 5 * time.Minute
)

// CommonConfig defines the server's basic configuration
type CommonConfig struct {
	// Format of the log output: json, auto, console or logfmt
	LogFormat string `mapstructure:"log-format" yaml:"log-format"`
	// Minimum level that is logged: debug, info, warn, error or fatal
	LogLevel string `mapstructure:"log-level" yaml:"log-level"`

	// Backoff interval for the first retry.
	RetrySleepTime time.Duration `mapstructure:"retry-sleep-time" yaml:"retry-sleep-time"`

	// Maximum backoff interval between retries. Exponential backoff leads to interval increase.
	// This value is the cap of the interval, when exceeded the retries stop.
	MaxRetrySleepTime time.Duration `mapstructure:"max-retry-sleep-time" yaml:"max-retry-sleep-time"`
}

func (cfg *CommonConfig) Validate() error {
	switch cfg.LogFormat {
	case "json", "auto", "console", "logfmt":
	default:
		return fmt.Errorf("log-format %q is not one of json, auto, console, logfmt", cfg.LogFormat)
	}
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error", "fatal":
	default:
		return fmt.Errorf("log-level %q is not one of debug, info, warn, error, fatal", cfg.LogLevel)
	}
	if cfg.RetrySleepTime < 0 {
		return errors.New("retry-sleep-time can't be negative")
	}
	if cfg.MaxRetrySleepTime < 0 {
		return errors.New("max-retry-sleep-time can't be negative")
	}
	if cfg.MaxRetrySleepTime < cfg.RetrySleepTime {
		return errors.New("max-retry-sleep-time can't be smaller than retry-sleep-time")
	}
	return nil
}

func DefaultCommonConfig() CommonConfig {
	return CommonConfig{
		LogFormat:         defaultLogFormat,
		LogLevel:          defaultLogLevel,
		RetrySleepTime:    defaultRetrySleepTime,
		MaxRetrySleepTime: defaultMaxRetrySleepTime,
	}
}
