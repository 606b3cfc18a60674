package parser

import (
	"fmt"
	"regexp"
	"strings"

	"wallet-console/pkg/send"
	"wallet-console/pkg/types"
)

var sendPattern = regexp.MustCompile(`(?i)^(\S+)\s+(?:([A-Za-z0-9]+)\s+)?TO\s+(\S+)$`)

// SendCommand is a parsed send instruction
type SendCommand struct {
	Amount   types.Amount
	Symbol   string
	Receiver types.Address
}

// ParseSendCommand parses a natural language send command
// Examples:
//   - "send 1.5 to 0x52908400098527886E0F7030069857D2E4169EE7"
//   - "0.25 SOL to 9xQeWvG816bUx9EPjHmaT23yvVM2ZWbrrpZb9PusVFin"
func ParseSendCommand(command string) (*SendCommand, error) {
	command = strings.TrimSpace(command)
	if len(command) >= 5 && strings.EqualFold(command[:5], "send ") {
		command = strings.TrimSpace(command[5:])
	}

	matches := sendPattern.FindStringSubmatch(command)
	if matches == nil {
		return nil, fmt.Errorf("invalid send command format. Expected: 'send <amount> [token] to <address>' (e.g., 'send 0.5 ETH to 0x...')")
	}

	amount, err := ParseAmount(matches[1])
	if err != nil {
		return nil, err
	}

	return &SendCommand{
		Amount:   amount,
		Symbol:   NormalizeSymbol(matches[2]),
		Receiver: types.Address(matches[3]),
	}, nil
}

// ParseAmount parses a positive display-unit amount
func ParseAmount(s string) (types.Amount, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return types.Amount{}, fmt.Errorf("amount is required: %w", send.ErrInvalidAmount)
	}

	amount, err := types.AmountFromString(s)
	if err != nil {
		return types.Amount{}, fmt.Errorf("'%s' is not a number: %w", s, send.ErrInvalidAmount)
	}
	if !amount.IsPositive() {
		return types.Amount{}, fmt.Errorf("amount must be greater than 0: %w", send.ErrInvalidAmount)
	}

	return amount, nil
}

// NormalizeSymbol normalizes token symbols to standard format
func NormalizeSymbol(symbol string) string {
	symbol = strings.TrimSpace(strings.ToUpper(symbol))

	aliases := map[string]string{
		"WETH": "ETH",
		"WSOL": "SOL",
	}

	if normalized, exists := aliases[symbol]; exists {
		return normalized
	}

	return symbol
}
