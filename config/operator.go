package config

import (
	"errors"
	"fmt"
	"time"
)

// OperatorConfig schedules the operator's periodic tasks
type OperatorConfig struct {
	// Identity the operator sends its messages as
	Sender string `mapstructure:"sender" yaml:"sender"`
	// How often to check whether the pending batch is due
	SubmitBatchInterval time.Duration `mapstructure:"submit-batch-interval" yaml:"submit-batch-interval"`
	// How often to check for matured unreconciled batches
	ReconcileInterval time.Duration `mapstructure:"reconcile-interval" yaml:"reconcile-interval"`
	// How often to harvest rewards; zero disables harvesting
	HarvestInterval time.Duration     `mapstructure:"harvest-interval" yaml:"harvest-interval"`
	RetryPolicy     RetryPolicyConfig `mapstructure:"retry-policy" yaml:"retry-policy"`
}

func (cfg *OperatorConfig) Validate() error {
	if cfg.Sender == "" {
		return errors.New("sender can't be empty")
	}
	if cfg.SubmitBatchInterval <= 0 {
		return errors.New("submit-batch-interval must be positive")
	}
	if cfg.ReconcileInterval <= 0 {
		return errors.New("reconcile-interval must be positive")
	}
	if cfg.HarvestInterval < 0 {
		return errors.New("harvest-interval can't be negative")
	}
	if err := cfg.RetryPolicy.Validate(); err != nil {
		return fmt.Errorf("invalid retry-policy: %w", err)
	}
	return nil
}

func DefaultOperatorConfig() OperatorConfig {
	return OperatorConfig{
		Sender:              "operator",
		SubmitBatchInterval: 1 * time.Minute,
		ReconcileInterval:   5 * time.Minute,
		HarvestInterval:     1 * time.Hour,
		RetryPolicy:         DefaultRetryPolicyConfig(),
	}
}
