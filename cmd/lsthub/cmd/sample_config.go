package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/babylonchain/lsthub/config"
)

func GetSampleConfigCmd() *cobra.Command {
	var cfgFile string

	cmd := &cobra.Command{
		Use:   "sample-config",
		Short: "Write the default configuration to a file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := config.WriteSample(cfgFile); err != nil {
				return fmt.Errorf("failed to write sample config: %w", err)
			}
			cmd.Printf("Sample config written to %s\n", cfgFile)
			return nil
		},
	}
	cmd.Flags().StringVar(&cfgFile, "config", config.DefaultConfigFile(), "path of the config file to write")
	return cmd
}
