package fee

import (
	"context"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/shopspring/decimal"

	"wallet-console/pkg/send"
	"wallet-console/pkg/types"
)

// Solana fees are typically 5000 lamports per signature
const defaultLamportsPerSignature = uint64(5000)

// SolanaBackend is the subset of rpc.Client used for fee quotes
type SolanaBackend interface {
	GetRecentBlockhash(ctx context.Context, commitment rpc.CommitmentType) (*rpc.GetRecentBlockhashResult, error)
	GetBalance(ctx context.Context, account solana.PublicKey, commitment rpc.CommitmentType) (*rpc.GetBalanceResult, error)
}

// SolanaEstimator quotes native SOL transfers
type SolanaEstimator struct {
	backend    SolanaBackend
	commitment rpc.CommitmentType
}

// NewSolanaEstimator creates an estimator using the given commitment level
func NewSolanaEstimator(backend SolanaBackend, commitment string) *SolanaEstimator {
	return &SolanaEstimator{backend: backend, commitment: ParseCommitment(commitment)}
}

// ParseCommitment maps a config value to an rpc commitment, confirmed by default
func ParseCommitment(commitment string) rpc.CommitmentType {
	switch commitment {
	case "finalized":
		return rpc.CommitmentFinalized
	case "processed":
		return rpc.CommitmentProcessed
	default:
		return rpc.CommitmentConfirmed
	}
}

func (s *SolanaEstimator) Estimate(ctx context.Context, w *types.Wallet, receiver types.Address, amount types.Amount) (types.FeeQuote, error) {
	if _, err := solana.PublicKeyFromBase58(receiver.String()); err != nil {
		return types.FeeQuote{}, fmt.Errorf("%s: %v: %w", receiver, err, send.ErrInvalidReceiver)
	}
	from, err := solana.PublicKeyFromBase58(w.Address.String())
	if err != nil {
		return types.FeeQuote{}, fmt.Errorf("invalid wallet address: %w", err)
	}

	lamports := amount.Shift(9).Truncate(0)
	if !lamports.IsPositive() {
		return types.FeeQuote{}, fmt.Errorf("amount below 1 lamport: %w", send.ErrInvalidAmount)
	}

	recent, err := s.backend.GetRecentBlockhash(ctx, s.commitment)
	if err != nil {
		return types.FeeQuote{}, fmt.Errorf("failed to get recent blockhash: %v: %w", err, send.ErrNetworkUnavailable)
	}
	perSignature := defaultLamportsPerSignature
	if recent != nil && recent.Value != nil && recent.Value.FeeCalculator.LamportsPerSignature > 0 {
		perSignature = recent.Value.FeeCalculator.LamportsPerSignature
	}
	feeLamports := decimal.NewFromInt(int64(perSignature))

	balance, err := s.backend.GetBalance(ctx, from, s.commitment)
	if err != nil {
		return types.FeeQuote{}, fmt.Errorf("failed to get balance: %v: %w", err, send.ErrNetworkUnavailable)
	}

	have := decimal.NewFromInt(int64(balance.Value))
	need := lamports.Add(feeLamports)
	if have.LessThan(need) {
		return types.FeeQuote{}, fmt.Errorf("have %s SOL, need %s SOL (including fees): %w",
			have.Shift(-9), need.Shift(-9), send.ErrInsufficientFunds)
	}

	return types.FeeQuote{
		Fee:    types.NewAmount(feeLamports.Shift(-9)),
		Symbol: "SOL",
		Source: "solana",
		Detail: fmt.Sprintf("1 signature @ %d lamports", perSignature),
	}, nil
}
