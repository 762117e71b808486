// Package cmd holds the CLI commands.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "debt-planner",
	Short: "Debt payoff planning service",
	Long: `debt-planner simulates month-by-month payoff of revolving credit accounts
under the avalanche (highest APR first) and snowball (smallest balance
first) strategies, and serves the engine over a JSON API.`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "config.toml", "path to the config file")
}
