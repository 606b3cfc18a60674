package cmd

import (
	"testing"

	oneclick "github.com/defuse-protocol/one-click-sdk-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wallet-console/pkg/types"
)

func listedToken(symbol, chain, assetID string) oneclick.TokenResponse {
	t := oneclick.TokenResponse{}
	t.SetSymbol(symbol)
	t.SetBlockchain(chain)
	t.SetAssetId(assetID)
	t.SetDecimals(18)
	return t
}

func TestCheckRoutes(t *testing.T) {
	tokens := []oneclick.TokenResponse{
		listedToken("ETH", "eth", "nep141:eth.omft.near"),
		listedToken("SOL", "sol", "nep141:sol.omft.near"),
		listedToken("USDC", "sol", "nep141:sol-usdc.omft.near"),
	}
	wallets := []*types.Wallet{
		{Name: "main", Chain: types.ChainEVM, Network: "mainnet", Symbol: "ETH"},
		{Name: "routed-eth", Chain: types.ChainEVM, Network: "mainnet", Symbol: "ETH", Route: "intents"},
		{Name: "routed-sol", Chain: types.ChainSolana, Network: "mainnet", Symbol: "SOL", Route: "intents"},
		{Name: "testnet", Chain: types.ChainEVM, Network: "sepolia", Symbol: "ETH", Route: "intents"},
	}

	routes := checkRoutes(tokens, wallets)
	require.Len(t, routes, 3)

	assert.Equal(t, routeSupport{Wallet: "routed-eth", Chain: "eth", Symbol: "ETH", Supported: true, AssetID: "nep141:eth.omft.near"}, routes[0])
	assert.Equal(t, routeSupport{Wallet: "routed-sol", Chain: "sol", Symbol: "SOL", Supported: true, AssetID: "nep141:sol.omft.near"}, routes[1])
	assert.Equal(t, routeSupport{Wallet: "testnet", Chain: "sepolia", Symbol: "ETH"}, routes[2])
}

func TestCheckRoutesWithoutIntentsWallets(t *testing.T) {
	routes := checkRoutes(nil, []*types.Wallet{{Name: "main", Chain: types.ChainEVM, Symbol: "ETH"}})
	assert.NotNil(t, routes)
	assert.Empty(t, routes)
}

func TestFilterAssets(t *testing.T) {
	tokens := []oneclick.TokenResponse{
		listedToken("ETH", "eth", "a"),
		listedToken("USDC", "eth", "b"),
		listedToken("USDC", "sol", "c"),
	}

	tests := []struct {
		name   string
		chain  string
		symbol string
		want   []string
	}{
		{name: "by chain", chain: "ETH", want: []string{"a", "b"}},
		{name: "by symbol", symbol: "usd", want: []string{"b", "c"}},
		{name: "wrapped alias", symbol: "weth", want: []string{"a"}},
		{name: "both", chain: "sol", symbol: "usdc", want: []string{"c"}},
		{name: "none", chain: "btc", want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := []string{}
			for _, a := range filterAssets(tokens, tt.chain, tt.symbol) {
				got = append(got, a.AssetID)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}
