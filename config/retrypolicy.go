package config

import (
	"errors"
	"time"
)

const (
	defaultRetryAttempts   = 5
	defaultInitialInterval = "1s"
	defaultMaxInterval     = "1m"
)

// RetryPolicyConfig defines the retry policy of a single task run
type RetryPolicyConfig struct {
	// Number of attempts before the run is given up.
	Attempts uint `mapstructure:"attempts" yaml:"attempts"`

	// Backoff interval for the first retry.
	InitialInterval string `mapstructure:"initial-interval" yaml:"initial-interval"`

	// Maximum backoff interval between retries. Exponential backoff leads to interval increase.
	// This value is the cap of the interval, when exceeded the retries stop.
	MaxInterval string `mapstructure:"max-interval" yaml:"max-interval"`
}

func (cfg *RetryPolicyConfig) Validate() error {
	if cfg.Attempts == 0 {
		return errors.New("attempts must be positive")
	}
	initial, err := time.ParseDuration(cfg.InitialInterval)
	if err != nil {
		return err
	}
	maxInterval, err := time.ParseDuration(cfg.MaxInterval)
	if err != nil {
		return err
	}
	if maxInterval < initial {
		return errors.New("max-interval can't be smaller than initial-interval")
	}
	return nil
}

// Intervals returns the parsed intervals. Call Validate first.
func (cfg *RetryPolicyConfig) Intervals() (time.Duration, time.Duration) {
	initial, _ := time.ParseDuration(cfg.InitialInterval)
	maxInterval, _ := time.ParseDuration(cfg.MaxInterval)
	return initial, maxInterval
}

func DefaultRetryPolicyConfig() RetryPolicyConfig {
	return RetryPolicyConfig{
		Attempts:        defaultRetryAttempts,
		InitialInterval: defaultInitialInterval,
		MaxInterval:     defaultMaxInterval,
	}
}
