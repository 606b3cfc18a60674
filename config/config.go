package config

import (
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/spf13/viper"
)

// Config holds the application configuration
type Config struct {
	WalletsFile  string                `mapstructure:"wallets_file"`
	Environment  string                `mapstructure:"environment"`
	PollInterval time.Duration         `mapstructure:"poll_interval"`
	StatusNode   string                `mapstructure:"status_node"` // "solana" or an EVM network name
	EVM          map[string]EVMNetwork `mapstructure:"evm"`
	Solana       SolanaConfig          `mapstructure:"solana"`
	Intents      IntentsConfig         `mapstructure:"intents"`
}

// EVMNetwork configures one EVM-compatible network
type EVMNetwork struct {
	RPCUrl   string  `mapstructure:"rpc_url"`
	ChainID  int64   `mapstructure:"chain_id"`
	Symbol   string  `mapstructure:"symbol"`
	GasPrice *int64  `mapstructure:"gas_price"` // Fixed gas price in wei (optional)
	GasLimit *uint64 `mapstructure:"gas_limit"` // Fixed gas limit (optional)
}

// SolanaConfig configures the Solana RPC endpoint
type SolanaConfig struct {
	RPCUrl     string `mapstructure:"rpc_url"`
	Commitment string `mapstructure:"commitment"`
}

// IntentsConfig configures the 1Click intents API used for routed fee quotes
type IntentsConfig struct {
	JWTToken string `mapstructure:"jwt_token"`
	BaseURL  string `mapstructure:"base_url"`
}

var globalConfig *Config

// Load reads configuration from environment variables and config file
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName(".wallet-console")
	v.SetConfigType("yaml")
	v.AddConfigPath("$HOME")
	v.AddConfigPath(".")

	setDefaults(v)

	// Read from environment variables
	v.SetEnvPrefix("WALLET_CONSOLE")
	v.AutomaticEnv()
	_ = v.BindEnv("intents.jwt_token", "WALLET_CONSOLE_INTENTS_JWT_TOKEN")
	_ = v.BindEnv("solana.rpc_url", "WALLET_CONSOLE_SOLANA_RPC_URL")

	// Config file is optional
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	return decode(v)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("environment", "development")
	v.SetDefault("poll_interval", "5s")
	v.SetDefault("status_node", "mainnet")
	v.SetDefault("evm.mainnet.rpc_url", "https://ethereum-rpc.publicnode.com")
	v.SetDefault("evm.mainnet.chain_id", 1)
	v.SetDefault("evm.mainnet.symbol", "ETH")
	v.SetDefault("solana.rpc_url", "https://api.mainnet-beta.solana.com")
	v.SetDefault("solana.commitment", "confirmed")
	v.SetDefault("intents.base_url", "https://1click.chaindefuser.com")
}

func decode(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	globalConfig = cfg
	return cfg, nil
}

// Validate checks cross-field constraints
func (c *Config) Validate() error {
	for name, n := range c.EVM {
		if n.RPCUrl == "" {
			return fmt.Errorf("evm network %s: rpc_url is required", name)
		}
	}
	if c.StatusNode != "solana" {
		if _, ok := c.EVM[c.StatusNode]; !ok {
			return fmt.Errorf("status_node %q is neither \"solana\" nor a configured evm network", c.StatusNode)
		}
	}
	if c.PollInterval <= 0 {
		return fmt.Errorf("poll_interval must be positive")
	}
	return nil
}

// EVMNetworkNames returns the configured network names, sorted
func (c *Config) EVMNetworkNames() []string {
	names := make([]string, 0, len(c.EVM))
	for name := range c.EVM {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Get returns the global configuration
func Get() *Config {
	if globalConfig == nil {
		cfg, err := Load()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
			os.Exit(1)
		}
		return cfg
	}
	return globalConfig
}

// Set updates the global configuration
func Set(cfg *Config) {
	globalConfig = cfg
}
