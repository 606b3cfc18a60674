package fee

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"

	"wallet-console/pkg/send"
	"wallet-console/pkg/types"
)

const defaultTransferGas = uint64(21000) // Standard ETH transfer

// EVMBackend is the subset of ethclient.Client used for fee quotes
type EVMBackend interface {
	SuggestGasPrice(ctx context.Context) (*big.Int, error)
	EstimateGas(ctx context.Context, msg ethereum.CallMsg) (uint64, error)
	BalanceAt(ctx context.Context, account common.Address, blockNumber *big.Int) (*big.Int, error)
}

// EVMEstimator quotes native transfers on an EVM network
type EVMEstimator struct {
	backend  EVMBackend
	symbol   string
	gasPrice *big.Int // Fixed gas price in wei, nil to ask the node
	gasLimit uint64   // Fixed gas limit, 0 to estimate
}

// NewEVMEstimator creates an estimator. gasPrice and gasLimit override the
// node's suggestions when non-nil.
func NewEVMEstimator(backend EVMBackend, symbol string, gasPrice *int64, gasLimit *uint64) *EVMEstimator {
	e := &EVMEstimator{backend: backend, symbol: symbol}
	if gasPrice != nil {
		e.gasPrice = big.NewInt(*gasPrice)
	}
	if gasLimit != nil {
		e.gasLimit = *gasLimit
	}
	return e
}

func (e *EVMEstimator) Estimate(ctx context.Context, w *types.Wallet, receiver types.Address, amount types.Amount) (types.FeeQuote, error) {
	if !common.IsHexAddress(receiver.String()) {
		return types.FeeQuote{}, fmt.Errorf("%s: %w", receiver, send.ErrInvalidReceiver)
	}
	from := common.HexToAddress(w.Address.String())
	to := common.HexToAddress(receiver.String())

	amountWei := toWei(amount)
	if amountWei.Sign() <= 0 {
		return types.FeeQuote{}, fmt.Errorf("amount below 1 wei: %w", send.ErrInvalidAmount)
	}

	gasPrice, err := e.getGasPrice(ctx)
	if err != nil {
		return types.FeeQuote{}, err
	}

	gasLimit := e.gasLimit
	if gasLimit == 0 {
		gasLimit = defaultTransferGas
		msg := ethereum.CallMsg{From: from, To: &to, Value: amountWei}
		if estimated, err := e.backend.EstimateGas(ctx, msg); err == nil && estimated > 0 {
			gasLimit = estimated
		}
	}

	feeWei := new(big.Int).Mul(gasPrice, new(big.Int).SetUint64(gasLimit))

	balance, err := e.backend.BalanceAt(ctx, from, nil)
	if err != nil {
		return types.FeeQuote{}, fmt.Errorf("failed to get balance: %v: %w", err, send.ErrNetworkUnavailable)
	}

	required := new(big.Int).Add(amountWei, feeWei)
	if balance.Cmp(required) < 0 {
		return types.FeeQuote{}, fmt.Errorf("have %s %s, need %s %s: %w",
			fromWei(balance), e.symbol, fromWei(required), e.symbol, send.ErrInsufficientFunds)
	}

	gwei := decimal.NewFromBigInt(gasPrice, -9)
	return types.FeeQuote{
		Fee:    types.NewAmount(fromWei(feeWei)),
		Symbol: e.symbol,
		Source: "evm",
		Detail: fmt.Sprintf("%d gas @ %s gwei", gasLimit, gwei.StringFixed(2)),
	}, nil
}

func (e *EVMEstimator) getGasPrice(ctx context.Context) (*big.Int, error) {
	if e.gasPrice != nil {
		return e.gasPrice, nil
	}

	gasPrice, err := e.backend.SuggestGasPrice(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get gas price: %v: %w", err, send.ErrNetworkUnavailable)
	}
	return gasPrice, nil
}

// toWei converts an ether amount to wei, dropping sub-wei digits
func toWei(amount types.Amount) *big.Int {
	return amount.Shift(18).Truncate(0).BigInt()
}

func fromWei(wei *big.Int) decimal.Decimal {
	return decimal.NewFromBigInt(wei, -18)
}
