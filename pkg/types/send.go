package types

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Chain identifies the address and fee model of a wallet
type Chain string

const (
	ChainEVM    Chain = "evm"
	ChainSolana Chain = "solana"
)

// ParseChain maps user input and common aliases to a Chain
func ParseChain(s string) (Chain, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "evm", "eth", "ethereum", "bsc", "polygon", "arbitrum", "base":
		return ChainEVM, nil
	case "sol", "solana":
		return ChainSolana, nil
	default:
		return "", fmt.Errorf("unsupported chain: %s", s)
	}
}

// WalletID identifies a wallet in the local store
type WalletID string

// Address is a destination address as typed by the user
type Address string

func (a Address) String() string {
	return string(a)
}

// Amount is a token amount in display units (ETH, SOL, ...)
type Amount struct {
	decimal.Decimal
}

// NewAmount wraps a decimal value
func NewAmount(d decimal.Decimal) Amount {
	return Amount{Decimal: d}
}

// AmountFromString parses a display-unit amount
func AmountFromString(s string) (Amount, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return Amount{}, err
	}
	return Amount{Decimal: d}, nil
}

// Wallet represents a wallet the console can send from
type Wallet struct {
	ID      WalletID `json:"id"`
	Name    string   `json:"name"`
	Chain   Chain    `json:"chain"`
	Network string   `json:"network"`         // Network key in the config (e.g. "mainnet", "sepolia")
	Address Address  `json:"address"`         // Sender address used for balance checks
	Symbol  string   `json:"symbol"`          // Native token symbol
	Route   string   `json:"route,omitempty"` // "intents" routes fee quotes through the 1Click API
}

// SendRequest is a single fee lookup issued by the send form
type SendRequest struct {
	WalletID WalletID
	Receiver Address
	Amount   Amount
}

// FeeQuote is an estimated network fee for a SendRequest
type FeeQuote struct {
	Request SendRequest
	Fee     Amount
	Symbol  string
	Source  string // Estimator that produced the quote
	Detail  string // Human readable breakdown, e.g. "21000 gas @ 12.5 gwei"
}

// Total returns the amount plus fee
func (q FeeQuote) Total() Amount {
	return NewAmount(q.Request.Amount.Add(q.Fee.Decimal))
}
