package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"wallet-console/config"
	"wallet-console/pkg/logger"
)

var rootCmd = &cobra.Command{
	Use:   "wallet-console",
	Short: "A terminal front end for a multi-chain wallet",
	Long: `wallet-console shows the startup status of your wallet node and walks you
through sending funds: it validates the receiver, quotes the network fee for
the active wallet and asks for confirmation.

Examples:
  wallet-console wallet add main --chain evm --address 0x1234...
  wallet-console status --watch
  wallet-console send 0.5 to 0xabcd...
  wallet-console address validate 0xabcd...
  wallet-console tokens --chain sol`,
	Version: "0.1.0",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		verbose, _ := cmd.Flags().GetBool("verbose")
		env := "development"
		if cfg, err := config.Load(); err == nil {
			env = cfg.Environment
		}
		return logger.Init(env, verbose)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Sync()
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Add global flags
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "Output in JSON format")
}

func printError(err error) {
	fmt.Printf("\nError: %v\n\n", err)
}

func printSuccess(message string) {
	fmt.Printf("\n%s\n\n", message)
}
