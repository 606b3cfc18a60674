package fee

import (
	"context"
	"fmt"

	oneclick "github.com/defuse-protocol/one-click-sdk-go"
	"github.com/shopspring/decimal"

	"wallet-console/pkg/client"
	"wallet-console/pkg/types"
)

// IntentsQuoter is the subset of client.OneClickClient used for fee quotes
type IntentsQuoter interface {
	FindTokenOnChain(ctx context.Context, symbol, chain string) (*oneclick.TokenResponse, error)
	GetTransferQuote(ctx context.Context, token *oneclick.TokenResponse, amount types.Amount, recipient, refundTo types.Address) (*client.TransferQuote, error)
}

// IntentsEstimator quotes the fee of routing a transfer through 1Click
type IntentsEstimator struct {
	quoter IntentsQuoter
}

// NewIntentsEstimator creates an estimator backed by the 1Click API
func NewIntentsEstimator(quoter IntentsQuoter) *IntentsEstimator {
	return &IntentsEstimator{quoter: quoter}
}

func (i *IntentsEstimator) Estimate(ctx context.Context, w *types.Wallet, receiver types.Address, amount types.Amount) (types.FeeQuote, error) {
	chain := IntentsChain(w)
	token, err := i.quoter.FindTokenOnChain(ctx, w.Symbol, chain)
	if err != nil {
		return types.FeeQuote{}, fmt.Errorf("intents route: %w", err)
	}

	quote, err := i.quoter.GetTransferQuote(ctx, token, amount, receiver, w.Address)
	if err != nil {
		return types.FeeQuote{}, err
	}

	fee := quote.Fee()
	if fee.IsNegative() {
		fee = decimal.Zero
	}

	return types.FeeQuote{
		Fee:    types.NewAmount(fee),
		Symbol: w.Symbol,
		Source: "intents",
		Detail: fmt.Sprintf("via %s, ~%.0f seconds", chain, quote.TimeEstimate),
	}, nil
}

// IntentsChain returns the 1Click blockchain name for a wallet
func IntentsChain(w *types.Wallet) string {
	if w.Network != "" && w.Network != "mainnet" {
		return w.Network
	}
	switch w.Chain {
	case types.ChainSolana:
		return "sol"
	default:
		return "eth"
	}
}

// IntentsAsset finds the 1Click asset a wallet's intents route would quote
func IntentsAsset(tokens []oneclick.TokenResponse, w *types.Wallet) (*oneclick.TokenResponse, bool) {
	return client.MatchToken(tokens, w.Symbol, IntentsChain(w))
}
