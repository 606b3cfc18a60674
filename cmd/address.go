package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"wallet-console/pkg/address"
	"wallet-console/pkg/send"
	"wallet-console/pkg/types"
)

var validateChain string

var addressCmd = &cobra.Command{
	Use:   "address",
	Short: "Work with receiver addresses",
}

var addressValidateCmd = &cobra.Command{
	Use:   "validate <address>",
	Short: "Check whether an address is a valid receiver",
	Long: `Validate an address against the chain of the active wallet, or against
the chain given with --chain.

Examples:
  wallet-console address validate 0x52908400098527886E0F7030069857D2E4169EE7
  wallet-console address validate 9xQeWvG816bUx9EPjHmaT23yvVM2ZWbrrpZb9PusVFin --chain sol`,
	Args: cobra.ExactArgs(1),
	Run:  runAddressValidate,
}

func init() {
	rootCmd.AddCommand(addressCmd)
	addressCmd.AddCommand(addressValidateCmd)

	addressValidateCmd.Flags().StringVar(&validateChain, "chain", "", "Chain to validate against (evm, sol); defaults to the active wallet's chain")
}

func runAddressValidate(cmd *cobra.Command, args []string) {
	jsonOutput, _ := cmd.Flags().GetBool("json")
	candidate := args[0]

	var validator send.AddressValidator
	if validateChain != "" {
		chain, err := types.ParseChain(validateChain)
		if err != nil {
			printError(err)
			os.Exit(1)
		}
		validator = address.ForChain(chain)
	} else {
		a := mustLoadApp()
		defer a.Close()
		validator = address.NewRouter(a.wallets)
	}

	result := validator.Validate(candidate)

	if jsonOutput {
		output := map[string]interface{}{
			"address": candidate,
			"valid":   result.Valid,
		}
		if !result.Valid {
			output["reason"] = result.Reason
		}
		jsonData, _ := json.MarshalIndent(output, "", "  ")
		fmt.Println(string(jsonData))
	} else if result.Valid {
		color.Green("\n✓ %s is a valid address\n", candidate)
	} else {
		color.Red("\n✗ %s: %s\n", candidate, result.Reason)
	}

	if !result.Valid {
		os.Exit(1)
	}
}
