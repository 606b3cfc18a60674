// Package address validates destination addresses per chain.
package address

import (
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gagliardetto/solana-go"

	"wallet-console/pkg/send"
	"wallet-console/pkg/types"
)

// EVMValidator accepts 0x-prefixed hex addresses. Mixed-case input must carry
// a valid EIP-55 checksum.
type EVMValidator struct{}

func (EVMValidator) Validate(candidate string) send.ValidationResult {
	candidate = strings.TrimSpace(candidate)
	if candidate == "" {
		return send.Invalid("address is required")
	}
	if !common.IsHexAddress(candidate) {
		return send.Invalid("not a valid hex address")
	}

	hex := strings.TrimPrefix(strings.TrimPrefix(candidate, "0x"), "0X")
	if hex != strings.ToLower(hex) && hex != strings.ToUpper(hex) {
		if common.HexToAddress(candidate).Hex() != "0x"+hex {
			return send.Invalid("address checksum mismatch")
		}
	}
	if common.HexToAddress(candidate) == (common.Address{}) {
		return send.Invalid("zero address")
	}

	return send.Valid()
}

// SolanaValidator accepts base58 encoded ed25519 public keys
type SolanaValidator struct{}

func (SolanaValidator) Validate(candidate string) send.ValidationResult {
	candidate = strings.TrimSpace(candidate)
	if candidate == "" {
		return send.Invalid("address is required")
	}
	if _, err := solana.PublicKeyFromBase58(candidate); err != nil {
		return send.Invalid("not a valid base58 public key")
	}
	return send.Valid()
}

// ForChain returns the validator for a chain, nil if unsupported
func ForChain(chain types.Chain) send.AddressValidator {
	switch chain {
	case types.ChainEVM:
		return EVMValidator{}
	case types.ChainSolana:
		return SolanaValidator{}
	default:
		return nil
	}
}

// WalletSource resolves the active wallet
type WalletSource interface {
	Active() (*types.Wallet, error)
}

// Router validates against the chain of the active wallet
type Router struct {
	wallets WalletSource
}

// NewRouter creates a router over the wallet source
func NewRouter(wallets WalletSource) *Router {
	return &Router{wallets: wallets}
}

func (r *Router) Validate(candidate string) send.ValidationResult {
	if strings.TrimSpace(candidate) == "" {
		return send.Invalid("address is required")
	}

	w, err := r.wallets.Active()
	if err != nil {
		return send.Invalid("no active wallet to validate against")
	}

	v := ForChain(w.Chain)
	if v == nil {
		return send.Invalid("unsupported chain: " + string(w.Chain))
	}
	return v.Validate(candidate)
}
