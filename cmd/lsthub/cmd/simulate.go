package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/babylonchain/lsthub/config"
	"github.com/babylonchain/lsthub/host"
	"github.com/babylonchain/lsthub/metrics"
)

const (
	configFlag   = "config"
	scenarioFlag = "scenario"
)

// loadConfig reads cfgFile, falling back to the defaults when the flag was
// left unset and no file exists at the default path.
func loadConfig(cmd *cobra.Command, cfgFile string) (*config.Config, error) {
	if _, err := os.Stat(cfgFile); err != nil && !cmd.Flags().Changed(configFlag) {
		return config.DefaultConfig(), nil
	}
	cfg, err := config.New(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}

func setupLogger(cfg *config.Config) error {
	rootLogger, err := cfg.CreateLogger()
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	logger = rootLogger
	return nil
}

// GetSimulateCmd runs a scenario file against a freshly instantiated hub
// and prints one JSON line per step.
func GetSimulateCmd() *cobra.Command {
	var (
		cfgFile      string
		scenarioFile string
	)

	cmd := &cobra.Command{
		Use:     "simulate",
		Short:   "Run a scenario against an in-memory hub and ledger",
		Example: "lsthub simulate --scenario scenario.yml",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd, cfgFile)
			if err != nil {
				return err
			}
			if err := setupLogger(cfg); err != nil {
				return err
			}
			defer logger.Sync() //nolint:errcheck

			scenario, err := host.LoadScenario(scenarioFile)
			if err != nil {
				return err
			}

			executor, err := host.NewFromConfig(cfg, logger, metrics.NewHubMetrics())
			if err != nil {
				return fmt.Errorf("failed to set up the hub: %w", err)
			}

			logger.Info("running scenario", zap.String("file", scenarioFile), zap.Int("steps", len(scenario.Steps)))
			return host.Run(executor, scenario, cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVar(&cfgFile, configFlag, config.DefaultConfigFile(), "config file")
	cmd.Flags().StringVar(&scenarioFile, scenarioFlag, "", "scenario file")
	_ = cmd.MarkFlagRequired(scenarioFlag)
	return cmd
}
