package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadYAML(t *testing.T, body string) (*Config, error) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0600))

	v := viper.New()
	v.SetConfigFile(path)
	setDefaults(v)
	require.NoError(t, v.ReadInConfig())
	return decode(v)
}

func TestDefaults(t *testing.T) {
	v := viper.New()
	setDefaults(v)
	cfg, err := decode(v)
	require.NoError(t, err)

	assert.Equal(t, 5*time.Second, cfg.PollInterval)
	assert.Equal(t, "mainnet", cfg.StatusNode)
	assert.Equal(t, "ETH", cfg.EVM["mainnet"].Symbol)
	assert.Equal(t, int64(1), cfg.EVM["mainnet"].ChainID)
	assert.Equal(t, "confirmed", cfg.Solana.Commitment)
	assert.Empty(t, cfg.Intents.JWTToken)
}

func TestLoadFile(t *testing.T) {
	cfg, err := loadYAML(t, `
poll_interval: 2s
status_node: sepolia
evm:
  sepolia:
    rpc_url: http://localhost:8545
    chain_id: 11155111
    symbol: ETH
    gas_limit: 30000
intents:
  jwt_token: secret
`)
	require.NoError(t, err)

	assert.Equal(t, 2*time.Second, cfg.PollInterval)
	assert.Equal(t, []string{"mainnet", "sepolia"}, cfg.EVMNetworkNames())
	require.NotNil(t, cfg.EVM["sepolia"].GasLimit)
	assert.Equal(t, uint64(30000), *cfg.EVM["sepolia"].GasLimit)
	assert.Nil(t, cfg.EVM["sepolia"].GasPrice)
	assert.Equal(t, "secret", cfg.Intents.JWTToken)
}

func TestValidate(t *testing.T) {
	_, err := loadYAML(t, "status_node: goerli\n")
	assert.Error(t, err)

	_, err = loadYAML(t, "evm:\n  local:\n    chain_id: 1337\n")
	assert.Error(t, err)

	cfg, err := loadYAML(t, "status_node: solana\n")
	require.NoError(t, err)
	assert.Equal(t, "solana", cfg.StatusNode)
}
