package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wallet-console/pkg/send"
)

func TestParseSendCommand(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		amount   string
		symbol   string
		receiver string
	}{
		{
			name:     "with send prefix",
			input:    "send 1.5 to 0x52908400098527886E0F7030069857D2E4169EE7",
			amount:   "1.5",
			receiver: "0x52908400098527886E0F7030069857D2E4169EE7",
		},
		{
			name:     "with symbol",
			input:    "0.25 sol to 9xQeWvG816bUx9EPjHmaT23yvVM2ZWbrrpZb9PusVFin",
			amount:   "0.25",
			symbol:   "SOL",
			receiver: "9xQeWvG816bUx9EPjHmaT23yvVM2ZWbrrpZb9PusVFin",
		},
		{
			name:     "alias and mixed case keyword",
			input:    "SEND 2 weth To 0x52908400098527886E0F7030069857D2E4169EE7",
			amount:   "2",
			symbol:   "ETH",
			receiver: "0x52908400098527886E0F7030069857D2E4169EE7",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, err := ParseSendCommand(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.amount, cmd.Amount.String())
			assert.Equal(t, tt.symbol, cmd.Symbol)
			assert.Equal(t, tt.receiver, cmd.Receiver.String())
		})
	}
}

func TestParseSendCommandRejects(t *testing.T) {
	_, err := ParseSendCommand("send to 0xabc")
	assert.Error(t, err)

	_, err = ParseSendCommand("send 1.5 0xabc")
	assert.Error(t, err)

	_, err = ParseSendCommand("send -1 to 0xabc")
	assert.ErrorIs(t, err, send.ErrInvalidAmount)
}

func TestParseAmount(t *testing.T) {
	for _, bad := range []string{"", "abc", "0", "-3", "1.2.3"} {
		_, err := ParseAmount(bad)
		assert.ErrorIs(t, err, send.ErrInvalidAmount, "input %q", bad)
	}

	a, err := ParseAmount(" 0.000001 ")
	require.NoError(t, err)
	assert.Equal(t, "0.000001", a.String())
}
