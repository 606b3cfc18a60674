// Package fee estimates network fees for the send form, one estimator per
// chain plus the 1Click intents route.
package fee

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"wallet-console/pkg/logger"
	"wallet-console/pkg/send"
	"wallet-console/pkg/types"
)

// Estimator quotes the fee of sending amount from w to receiver
type Estimator interface {
	Estimate(ctx context.Context, w *types.Wallet, receiver types.Address, amount types.Amount) (types.FeeQuote, error)
}

// WalletLookup resolves wallets by ID
type WalletLookup interface {
	Get(id types.WalletID) (*types.Wallet, error)
}

// EVMFactory builds an estimator for a configured EVM network
type EVMFactory func(network string) (Estimator, error)

// Router implements send.FeeEstimator by dispatching on the wallet's chain
type Router struct {
	wallets WalletLookup
	evm     EVMFactory
	solana  Estimator
	intents Estimator

	mu       sync.Mutex
	networks map[string]Estimator
}

// NewRouter creates a router. Any estimator may be nil when the matching
// chain is not configured.
func NewRouter(wallets WalletLookup, evm EVMFactory, solana, intents Estimator) *Router {
	return &Router{
		wallets:  wallets,
		evm:      evm,
		solana:   solana,
		intents:  intents,
		networks: make(map[string]Estimator),
	}
}

// EstimateFee implements send.FeeEstimator
func (r *Router) EstimateFee(ctx context.Context, walletID types.WalletID, receiver types.Address, amount types.Amount) (types.FeeQuote, error) {
	if !amount.IsPositive() {
		return types.FeeQuote{}, fmt.Errorf("amount must be greater than 0: %w", send.ErrInvalidAmount)
	}

	w, err := r.wallets.Get(walletID)
	if err != nil {
		return types.FeeQuote{}, fmt.Errorf("failed to load wallet: %w", err)
	}

	est, err := r.estimatorFor(w)
	if err != nil {
		return types.FeeQuote{}, err
	}

	quote, err := est.Estimate(ctx, w, receiver, amount)
	if err != nil {
		logger.Debug("fee estimate failed", zap.String("wallet", w.Name), zap.Error(err))
		return types.FeeQuote{}, err
	}

	quote.Request = types.SendRequest{WalletID: walletID, Receiver: receiver, Amount: amount}
	return quote, nil
}

func (r *Router) estimatorFor(w *types.Wallet) (Estimator, error) {
	if w.Route == "intents" {
		if r.intents == nil {
			return nil, fmt.Errorf("intents route is not configured (set intents.jwt_token)")
		}
		return r.intents, nil
	}

	switch w.Chain {
	case types.ChainEVM:
		return r.evmNetwork(w.Network)
	case types.ChainSolana:
		if r.solana == nil {
			return nil, fmt.Errorf("solana RPC is not configured")
		}
		return r.solana, nil
	default:
		return nil, fmt.Errorf("fee estimation not supported for chain: %s", w.Chain)
	}
}

func (r *Router) evmNetwork(network string) (Estimator, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if est, ok := r.networks[network]; ok {
		return est, nil
	}
	if r.evm == nil {
		return nil, fmt.Errorf("no EVM networks configured")
	}

	est, err := r.evm(network)
	if err != nil {
		return nil, err
	}
	r.networks[network] = est
	return est, nil
}
