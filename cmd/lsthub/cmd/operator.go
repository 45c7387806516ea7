package cmd

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/babylonchain/lsthub/config"
	"github.com/babylonchain/lsthub/host"
	"github.com/babylonchain/lsthub/metrics"
	"github.com/babylonchain/lsthub/operator"
)

// GetOperatorCmd returns the CLI command running the operator against an
// in-memory hub whose clock follows wall time.
func GetOperatorCmd() *cobra.Command {
	var (
		cfgFile      string
		scenarioFile string
		timeScale    uint64
		duration     time.Duration
	)

	cmd := &cobra.Command{
		Use:   "operator",
		Short: "Periodically submit batches, reconcile and harvest on a simulated hub",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd, cfgFile)
			if err != nil {
				return err
			}
			if err := setupLogger(cfg); err != nil {
				return err
			}
			defer logger.Sync() //nolint:errcheck

			operatorMetrics := metrics.NewOperatorMetrics()
			executor, err := host.NewFromConfig(cfg, logger, operatorMetrics.HubMetrics)
			if err != nil {
				return fmt.Errorf("failed to set up the hub: %w", err)
			}

			if scenarioFile != "" {
				scenario, err := host.LoadScenario(scenarioFile)
				if err != nil {
					return err
				}
				if err := host.Run(executor, scenario, io.Discard); err != nil {
					return fmt.Errorf("failed to seed the hub: %w", err)
				}
			}

			hubOperator, err := operator.New(&cfg.Operator, logger, executor, operatorMetrics)
			if err != nil {
				return fmt.Errorf("failed to create operator: %w", err)
			}

			stopClock := make(chan struct{})
			go func() {
				ticker := time.NewTicker(time.Second)
				defer ticker.Stop()
				for {
					select {
					case <-ticker.C:
						executor.Advance(timeScale)
					case <-stopClock:
						return
					}
				}
			}()

			hubOperator.Start()

			if cfg.Metrics.Enabled {
				server := metrics.Start(cfg.Metrics.Address(), operatorMetrics.Registry, logger)
				addInterruptHandler(func() {
					ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
					defer cancel()
					if err := server.Shutdown(ctx); err != nil {
						logger.Error("failed to stop metrics server", zap.Error(err))
					}
				})
			}
			addInterruptHandler(func() {
				logger.Info("Stopping operator...")
				hubOperator.Stop()
				close(stopClock)
				logger.Info("Operator shutdown", zap.Uint64("time", executor.Now()))
			})

			if duration > 0 {
				time.AfterFunc(duration, func() {
					shutdownRequestChannel <- struct{}{}
				})
			}

			<-interruptHandlersDone
			logger.Info("Shutdown complete")
			return nil
		},
	}
	cmd.Flags().StringVar(&cfgFile, configFlag, config.DefaultConfigFile(), "config file")
	cmd.Flags().StringVar(&scenarioFile, scenarioFlag, "", "scenario run before the operator starts")
	cmd.Flags().Uint64Var(&timeScale, "time-scale", 1, "simulated seconds per wall-clock second")
	cmd.Flags().DurationVar(&duration, "duration", 0, "stop after this long; zero runs until interrupted")
	return cmd
}
