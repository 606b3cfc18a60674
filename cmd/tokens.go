package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/briandowns/spinner"
	oneclick "github.com/defuse-protocol/one-click-sdk-go"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"wallet-console/pkg/fee"
	"wallet-console/pkg/parser"
	"wallet-console/pkg/types"
)

var (
	filterChain  string
	filterSymbol string
)

var tokensCmd = &cobra.Command{
	Use:     "tokens",
	Aliases: []string{"list-tokens"},
	Short:   "Check which wallets the intents fee route can quote",
	Long: `Fetch the assets supported by the 1Click API and report, for every wallet
added with --route intents, whether its native token is listed on its chain.
Wallets whose asset is missing cannot get a fee quote.

--chain and --symbol additionally list the matching assets.

Examples:
  wallet-console tokens
  wallet-console tokens --chain sol
  wallet-console tokens --symbol USDC --json`,
	Args: cobra.NoArgs,
	Run:  runTokens,
}

func init() {
	rootCmd.AddCommand(tokensCmd)

	tokensCmd.Flags().StringVar(&filterChain, "chain", "", "List assets on this 1Click blockchain (eth, sol, base, ...)")
	tokensCmd.Flags().StringVar(&filterSymbol, "symbol", "", "List assets whose symbol contains this text")
}

type routeSupport struct {
	Wallet    string `json:"wallet"`
	Chain     string `json:"chain"`
	Symbol    string `json:"symbol"`
	Supported bool   `json:"supported"`
	AssetID   string `json:"asset_id,omitempty"`
}

type assetOut struct {
	Symbol   string `json:"symbol"`
	Chain    string `json:"chain"`
	Decimals int32  `json:"decimals"`
	AssetID  string `json:"asset_id"`
}

func runTokens(cmd *cobra.Command, args []string) {
	jsonOutput, _ := cmd.Flags().GetBool("json")

	a := mustLoadApp()
	defer a.Close()

	apiClient := a.intentsClient()
	if apiClient == nil {
		printError(fmt.Errorf("intents.jwt_token is not configured (set WALLET_CONSOLE_INTENTS_JWT_TOKEN)"))
		os.Exit(1)
	}

	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	if !jsonOutput {
		s.Suffix = " Fetching supported tokens..."
		s.Start()
	}

	tokens, err := apiClient.GetSupportedTokens(context.Background())
	if !jsonOutput {
		s.Stop()
	}
	if err != nil {
		printError(err)
		os.Exit(1)
	}

	routes := checkRoutes(tokens, a.wallets.List())
	var assets []assetOut
	if filterChain != "" || filterSymbol != "" {
		assets = filterAssets(tokens, filterChain, filterSymbol)
	}

	if jsonOutput {
		output := map[string]interface{}{
			"routes": routes,
			"total":  len(tokens),
		}
		if assets != nil {
			output["assets"] = assets
		}
		jsonData, _ := json.MarshalIndent(output, "", "  ")
		fmt.Println(string(jsonData))
		return
	}

	displayRoutes(routes, len(tokens))
	if filterChain != "" || filterSymbol != "" {
		displayAssets(assets)
	}
}

// checkRoutes reports, per intents-routed wallet, whether 1Click lists its asset
func checkRoutes(tokens []oneclick.TokenResponse, wallets []*types.Wallet) []routeSupport {
	routes := []routeSupport{}
	for _, w := range wallets {
		if w.Route != "intents" {
			continue
		}
		r := routeSupport{Wallet: w.Name, Chain: fee.IntentsChain(w), Symbol: w.Symbol}
		if asset, ok := fee.IntentsAsset(tokens, w); ok {
			r.Supported = true
			r.AssetID = asset.GetAssetId()
		}
		routes = append(routes, r)
	}
	return routes
}

func filterAssets(tokens []oneclick.TokenResponse, chain, symbol string) []assetOut {
	symbol = parser.NormalizeSymbol(symbol)
	assets := []assetOut{}
	for _, t := range tokens {
		if chain != "" && !strings.EqualFold(t.GetBlockchain(), chain) {
			continue
		}
		if symbol != "" && !strings.Contains(strings.ToUpper(t.GetSymbol()), symbol) {
			continue
		}
		assets = append(assets, assetOut{
			Symbol:   t.GetSymbol(),
			Chain:    t.GetBlockchain(),
			Decimals: int32(t.GetDecimals()),
			AssetID:  t.GetAssetId(),
		})
	}
	return assets
}

func displayRoutes(routes []routeSupport, total int) {
	fmt.Printf("\n1Click lists %d assets.\n\n", total)

	if len(routes) == 0 {
		fmt.Println("No wallet uses the intents route. Add one with 'wallet add ... --route intents'.")
		return
	}

	for _, r := range routes {
		if r.Supported {
			fmt.Printf("  %s %-12s %s on %s  %s\n", color.GreenString("✓"), r.Wallet, r.Symbol, r.Chain, color.HiBlackString(r.AssetID))
		} else {
			fmt.Printf("  %s %-12s %s on %s  %s\n", color.RedString("✗"), r.Wallet, r.Symbol, r.Chain, color.YellowString("not listed, fees cannot be quoted"))
		}
	}
	fmt.Println()
}

func displayAssets(assets []assetOut) {
	if len(assets) == 0 {
		fmt.Println("No assets match the filter.")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SYMBOL\tCHAIN\tDECIMALS\tASSET")
	for _, asset := range assets {
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", asset.Symbol, asset.Chain, asset.Decimals, truncateString(asset.AssetID, 48))
	}
	w.Flush()
	fmt.Println()
}
