package cmd

import (
	"fmt"
	"os"
	"sync"

	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/gagliardetto/solana-go/rpc"
	"go.uber.org/zap"

	"wallet-console/config"
	"wallet-console/pkg/address"
	"wallet-console/pkg/client"
	"wallet-console/pkg/dialog"
	"wallet-console/pkg/fee"
	"wallet-console/pkg/logger"
	"wallet-console/pkg/monitor"
	"wallet-console/pkg/send"
	"wallet-console/pkg/wallet"
)

// app bundles the services a command needs
type app struct {
	cfg     *config.Config
	wallets *wallet.Manager
	dialogs *dialog.Registry

	mu   sync.Mutex
	eths []*ethclient.Client
}

func loadApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	wallets, err := wallet.Open(cfg.WalletsFile)
	if err != nil {
		return nil, err
	}

	return &app{
		cfg:     cfg,
		wallets: wallets,
		dialogs: dialog.NewRegistry(),
	}, nil
}

// mustLoadApp loads the app or exits like the other commands do
func mustLoadApp() *app {
	a, err := loadApp()
	if err != nil {
		printError(err)
		os.Exit(1)
	}
	return a
}

func (a *app) Close() {
	a.mu.Lock()
	defer a.mu.Unlock()
	for _, c := range a.eths {
		c.Close()
	}
	a.eths = nil
}

func (a *app) dialEVM(network string) (*ethclient.Client, config.EVMNetwork, error) {
	netCfg, ok := a.cfg.EVM[network]
	if !ok {
		return nil, config.EVMNetwork{}, fmt.Errorf("evm network %q is not configured (have: %v)", network, a.cfg.EVMNetworkNames())
	}

	c, err := ethclient.Dial(netCfg.RPCUrl)
	if err != nil {
		return nil, netCfg, fmt.Errorf("failed to connect to %s: %w", network, send.ErrNetworkUnavailable)
	}

	a.mu.Lock()
	a.eths = append(a.eths, c)
	a.mu.Unlock()

	logger.Debug("connected to evm node", zap.String("network", network), zap.String("rpc", netCfg.RPCUrl))
	return c, netCfg, nil
}

func (a *app) solanaClient() *rpc.Client {
	return rpc.New(a.cfg.Solana.RPCUrl)
}

func (a *app) intentsClient() *client.OneClickClient {
	if a.cfg.Intents.JWTToken == "" {
		return nil
	}
	return client.NewOneClickClient(a.cfg.Intents.JWTToken, a.cfg.Intents.BaseURL)
}

// feeRouter wires one estimator per configured chain
func (a *app) feeRouter() *fee.Router {
	evm := func(network string) (fee.Estimator, error) {
		c, netCfg, err := a.dialEVM(network)
		if err != nil {
			return nil, err
		}
		return fee.NewEVMEstimator(c, netCfg.Symbol, netCfg.GasPrice, netCfg.GasLimit), nil
	}

	var solana fee.Estimator
	if a.cfg.Solana.RPCUrl != "" {
		solana = fee.NewSolanaEstimator(a.solanaClient(), a.cfg.Solana.Commitment)
	}

	var intents fee.Estimator
	if c := a.intentsClient(); c != nil {
		intents = fee.NewIntentsEstimator(c)
	}

	return fee.NewRouter(a.wallets, evm, solana, intents)
}

// coordinator builds the send coordinator for the active wallet
func (a *app) coordinator() *send.Coordinator {
	return send.NewCoordinator(address.NewRouter(a.wallets), a.feeRouter(), a.dialogs, a.wallets)
}

// monitor builds the lifecycle monitor for the configured status node
func (a *app) monitor() (*monitor.Monitor, error) {
	var probe monitor.NodeProbe
	if a.cfg.StatusNode == "solana" {
		probe = monitor.NewSolanaProbe(a.solanaClient(), fee.ParseCommitment(a.cfg.Solana.Commitment))
	} else {
		c, _, err := a.dialEVM(a.cfg.StatusNode)
		if err != nil {
			return nil, err
		}
		probe = monitor.NewEVMProbe(c)
	}
	return monitor.New(probe, a.wallets), nil
}
