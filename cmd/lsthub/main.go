package main

import (
	"fmt"
	"os"

	"github.com/babylonchain/lsthub/cmd/lsthub/cmd"
)

func main() {
	rootCmd := cmd.NewRootCmd()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}
