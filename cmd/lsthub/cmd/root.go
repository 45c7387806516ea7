package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// logger is replaced by the running command once its config is loaded.
var logger = zap.NewNop()

func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "lsthub",
		Short:        "Liquid staking hub simulator and operator",
		SilenceUsage: true,
	}
	rootCmd.AddCommand(
		GetSimulateCmd(),
		GetOperatorCmd(),
		GetSampleConfigCmd(),
	)

	return rootCmd
}
