package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"wallet-console/pkg/client"
	"wallet-console/pkg/fee"
	"wallet-console/pkg/types"
)

var (
	walletChain   string
	walletNetwork string
	walletAddress string
	walletSymbol  string
	walletRoute   string
)

var walletCmd = &cobra.Command{
	Use:   "wallet",
	Short: "Manage the wallets the console sends from",
	Long: `Add, list, select and remove wallets. The active wallet is the one the
send command quotes fees for.

Wallets are stored in the file configured as wallets_file.`,
}

var walletAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a wallet",
	Long: `Add a wallet by its public address. The first wallet added becomes active.

Examples:
  wallet-console wallet add main --chain evm --address 0x52908400098527886E0F7030069857D2E4169EE7
  wallet-console wallet add test --chain evm --network sepolia --address 0x...
  wallet-console wallet add phantom --chain sol --address 9xQeWvG816bUx9EPjHmaT23yvVM2ZWbrrpZb9PusVFin
  wallet-console wallet add routed --chain sol --address 9xQe... --route intents`,
	Args: cobra.ExactArgs(1),
	Run:  runWalletAdd,
}

var walletListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List wallets",
	Run:     runWalletList,
}

var walletUseCmd = &cobra.Command{
	Use:   "use <name|id>",
	Short: "Make a wallet the active wallet",
	Args:  cobra.ExactArgs(1),
	Run:   runWalletUse,
}

var walletRemoveCmd = &cobra.Command{
	Use:     "remove <name|id>",
	Aliases: []string{"rm"},
	Short:   "Remove a wallet",
	Args:    cobra.ExactArgs(1),
	Run:     runWalletRemove,
}

func init() {
	rootCmd.AddCommand(walletCmd)
	walletCmd.AddCommand(walletAddCmd)
	walletCmd.AddCommand(walletListCmd)
	walletCmd.AddCommand(walletUseCmd)
	walletCmd.AddCommand(walletRemoveCmd)

	walletAddCmd.Flags().StringVar(&walletChain, "chain", "", "Chain of the wallet (evm, sol) (REQUIRED)")
	walletAddCmd.Flags().StringVar(&walletNetwork, "network", "mainnet", "EVM network name from the config")
	walletAddCmd.Flags().StringVar(&walletAddress, "address", "", "Public address of the wallet (REQUIRED)")
	walletAddCmd.Flags().StringVar(&walletSymbol, "symbol", "", "Native token symbol (defaults from the chain)")
	walletAddCmd.Flags().StringVar(&walletRoute, "route", "", "Fee route: empty for the chain's node, 'intents' for 1Click")
	_ = walletAddCmd.MarkFlagRequired("chain")
	_ = walletAddCmd.MarkFlagRequired("address")
}

func runWalletAdd(cmd *cobra.Command, args []string) {
	chain, err := types.ParseChain(walletChain)
	if err != nil {
		printError(err)
		os.Exit(1)
	}

	a := mustLoadApp()
	defer a.Close()

	network := walletNetwork
	symbol := walletSymbol
	switch chain {
	case types.ChainEVM:
		netCfg, ok := a.cfg.EVM[network]
		if !ok {
			printError(fmt.Errorf("evm network %q is not configured (have: %s)", network, strings.Join(a.cfg.EVMNetworkNames(), ", ")))
			os.Exit(1)
		}
		if symbol == "" {
			symbol = netCfg.Symbol
		}
	case types.ChainSolana:
		network = "mainnet"
		if symbol == "" {
			symbol = "SOL"
		}
	}

	if walletRoute == "intents" {
		if err := checkIntentsRoute(a, &types.Wallet{Chain: chain, Network: network, Symbol: symbol}); err != nil {
			printError(err)
			os.Exit(1)
		}
	}

	w, err := a.wallets.Create(args[0], chain, network, types.Address(walletAddress), symbol, walletRoute)
	if err != nil {
		printError(err)
		os.Exit(1)
	}

	color.Green("\n✓ Wallet '%s' added", w.Name)
	fmt.Printf("  ID:      %s\n", w.ID)
	fmt.Printf("  Chain:   %s (%s)\n", w.Chain, w.Network)
	fmt.Printf("  Address: %s\n", color.CyanString(w.Address.String()))

	if id, ok := a.wallets.ActiveWalletID(); ok && id == w.ID {
		fmt.Printf("  Active:  %s\n\n", color.GreenString("yes"))
	} else {
		fmt.Printf("\nMake it active with: wallet-console wallet use %s\n\n", w.Name)
	}
}

// checkIntentsRoute refuses wallets whose asset 1Click does not list. An
// unreachable API only warns; the fee quote will report it later.
func checkIntentsRoute(a *app, w *types.Wallet) error {
	apiClient := a.intentsClient()
	if apiClient == nil {
		return fmt.Errorf("the intents route needs intents.jwt_token (set WALLET_CONSOLE_INTENTS_JWT_TOKEN)")
	}

	_, err := apiClient.FindTokenOnChain(context.Background(), w.Symbol, fee.IntentsChain(w))
	switch {
	case err == nil:
		return nil
	case errors.Is(err, client.ErrTokenNotFound):
		return fmt.Errorf("cannot route fees through intents: %w (see 'wallet-console tokens --chain %s')", err, fee.IntentsChain(w))
	default:
		color.Yellow("Could not check the intents route: %v\n", err)
		return nil
	}
}

func runWalletList(cmd *cobra.Command, args []string) {
	jsonOutput, _ := cmd.Flags().GetBool("json")

	a := mustLoadApp()
	defer a.Close()

	wallets := a.wallets.List()
	activeID, _ := a.wallets.ActiveWalletID()

	if jsonOutput {
		type walletOut struct {
			*types.Wallet
			Active bool `json:"active"`
		}
		out := make([]walletOut, 0, len(wallets))
		for _, w := range wallets {
			out = append(out, walletOut{Wallet: w, Active: w.ID == activeID})
		}
		jsonData, _ := json.MarshalIndent(out, "", "  ")
		fmt.Println(string(jsonData))
		return
	}

	if len(wallets) == 0 {
		fmt.Println("\nNo wallets found. Add one with 'wallet-console wallet add'.")
		return
	}

	fmt.Println()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "  \tNAME\tCHAIN\tNETWORK\tSYMBOL\tROUTE\tADDRESS")
	for _, wl := range wallets {
		marker := " "
		if wl.ID == activeID {
			marker = color.GreenString("*")
		}
		route := wl.Route
		if route == "" {
			route = "node"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			marker, wl.Name, wl.Chain, wl.Network, wl.Symbol, route, truncateString(wl.Address.String(), 20))
	}
	w.Flush()
	fmt.Println()
}

func runWalletUse(cmd *cobra.Command, args []string) {
	a := mustLoadApp()
	defer a.Close()

	w, err := a.wallets.Use(args[0])
	if err != nil {
		printError(err)
		os.Exit(1)
	}

	printSuccess(color.GreenString("✓ Active wallet is now '%s'", w.Name))
}

func runWalletRemove(cmd *cobra.Command, args []string) {
	a := mustLoadApp()
	defer a.Close()

	if err := a.wallets.Remove(args[0]); err != nil {
		printError(err)
		os.Exit(1)
	}

	printSuccess(color.GreenString("✓ Wallet '%s' removed", args[0]))
}

func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
