package send

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wallet-console/pkg/types"
)

type fakeWallets struct {
	id types.WalletID
}

func (f fakeWallets) ActiveWalletID() (types.WalletID, bool) {
	return f.id, f.id != ""
}

type fakeValidator struct{}

func (fakeValidator) Validate(candidate string) ValidationResult {
	if candidate == "" {
		return Invalid("address is required")
	}
	if !strings.HasPrefix(candidate, "0x") || len(candidate) != 42 {
		return Invalid("not a hex address")
	}
	return Valid()
}

// gatedEstimator blocks each call until the test releases its amount.
type gatedEstimator struct {
	mu    sync.Mutex
	calls []types.SendRequest
	gates map[string]chan error
}

func newGatedEstimator() *gatedEstimator {
	return &gatedEstimator{gates: make(map[string]chan error)}
}

func (g *gatedEstimator) gate(amount string) chan error {
	g.mu.Lock()
	defer g.mu.Unlock()
	ch, ok := g.gates[amount]
	if !ok {
		ch = make(chan error, 1)
		g.gates[amount] = ch
	}
	return ch
}

func (g *gatedEstimator) release(amount string, err error) {
	g.gate(amount) <- err
}

func (g *gatedEstimator) callCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.calls)
}

func (g *gatedEstimator) EstimateFee(ctx context.Context, walletID types.WalletID, receiver types.Address, amount types.Amount) (types.FeeQuote, error) {
	g.mu.Lock()
	req := types.SendRequest{WalletID: walletID, Receiver: receiver, Amount: amount}
	g.calls = append(g.calls, req)
	g.mu.Unlock()

	select {
	case err := <-g.gate(amount.String()):
		if err != nil {
			return types.FeeQuote{}, err
		}
	case <-ctx.Done():
		return types.FeeQuote{}, ctx.Err()
	}

	// Fee scales with the amount so results are distinguishable.
	return types.FeeQuote{
		Request: req,
		Fee:     types.NewAmount(amount.Mul(decimal.RequireFromString("0.01"))),
		Symbol:  "ETH",
		Source:  "gated",
	}, nil
}

type fakeDialogs struct {
	mu     sync.Mutex
	opened []string
}

func (f *fakeDialogs) IsOpen(name string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, n := range f.opened {
		if n == name {
			return true
		}
	}
	return false
}

func (f *fakeDialogs) Open(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.opened = append(f.opened, name)
}

const receiver = types.Address("0x52908400098527886E0F7030069857D2E4169EE7")

func amount(s string) types.Amount {
	return types.NewAmount(decimal.RequireFromString(s))
}

func testContext(t *testing.T) context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)
	return ctx
}

func TestValidateAddress(t *testing.T) {
	c := NewCoordinator(fakeValidator{}, newGatedEstimator(), &fakeDialogs{}, fakeWallets{id: "w1"})

	res := c.ValidateAddress("")
	assert.False(t, res.Valid)
	assert.NotEmpty(t, res.Reason)

	assert.Equal(t, Valid(), c.ValidateAddress(string(receiver)))
	assert.Equal(t, "invalid: not a hex address", c.ValidateAddress("0x12").String())
}

func TestQuoteFeeWithoutActiveWallet(t *testing.T) {
	est := newGatedEstimator()
	c := NewCoordinator(fakeValidator{}, est, &fakeDialogs{}, fakeWallets{})

	p, err := c.QuoteFee(testContext(t), receiver, amount("1"))

	require.ErrorIs(t, err, ErrNoActiveWallet)
	assert.Nil(t, p)
	assert.True(t, IsFatal(err))
	assert.Equal(t, 0, est.callCount())

	_, ok := c.Latest()
	assert.False(t, ok)
}

func TestQuoteFeeBindsActiveWallet(t *testing.T) {
	ctx := testContext(t)
	est := newGatedEstimator()
	c := NewCoordinator(fakeValidator{}, est, &fakeDialogs{}, fakeWallets{id: "w-active"})

	p, err := c.QuoteFee(ctx, receiver, amount("2"))
	require.NoError(t, err)
	assert.Equal(t, types.WalletID("w-active"), p.Request.WalletID)

	est.release("2", nil)
	res, accepted, err := c.Await(ctx, p)
	require.NoError(t, err)
	require.True(t, accepted)
	require.NoError(t, res.Err)

	assert.Equal(t, "0.02", res.Quote.Fee.String())
	assert.Equal(t, types.WalletID("w-active"), res.Quote.Request.WalletID)
	assert.Equal(t, "2.02", res.Quote.Total().String())
}

func TestStaleQuoteIsDiscarded(t *testing.T) {
	ctx := testContext(t)
	est := newGatedEstimator()
	c := NewCoordinator(fakeValidator{}, est, &fakeDialogs{}, fakeWallets{id: "w1"})

	r1, err := c.QuoteFee(ctx, receiver, amount("1"))
	require.NoError(t, err)
	r2, err := c.QuoteFee(ctx, receiver, amount("5"))
	require.NoError(t, err)
	assert.Greater(t, r2.Seq, r1.Seq)

	// R2 resolves first.
	est.release("5", nil)
	res2, accepted, err := c.Await(ctx, r2)
	require.NoError(t, err)
	assert.True(t, accepted)

	// R1 resolves late and must not replace R2.
	est.release("1", nil)
	res1, accepted, err := c.Await(ctx, r1)
	require.NoError(t, err)
	assert.False(t, accepted)
	assert.Equal(t, r1.Seq, res1.Seq)

	latest, ok := c.Latest()
	require.True(t, ok)
	assert.Equal(t, res2.Seq, latest.Seq)
	assert.Equal(t, "5", latest.Request.Amount.String())
	assert.Equal(t, "0.05", latest.Quote.Fee.String())
}

func TestStaleQuoteResolvingFirstIsNotShown(t *testing.T) {
	ctx := testContext(t)
	est := newGatedEstimator()
	c := NewCoordinator(fakeValidator{}, est, &fakeDialogs{}, fakeWallets{id: "w1"})

	r1, err := c.QuoteFee(ctx, receiver, amount("1"))
	require.NoError(t, err)
	r2, err := c.QuoteFee(ctx, receiver, amount("3"))
	require.NoError(t, err)

	est.release("1", nil)
	_, accepted, err := c.Await(ctx, r1)
	require.NoError(t, err)
	assert.False(t, accepted, "R1 was superseded before it resolved")

	_, ok := c.Latest()
	assert.False(t, ok)

	est.release("3", nil)
	_, accepted, err = c.Await(ctx, r2)
	require.NoError(t, err)
	assert.True(t, accepted)
	assert.True(t, c.IsLatest(r2.Seq))
}

func TestQuoteFeeErrors(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		recoverable bool
		retryable   bool
	}{
		{name: "insufficient funds", err: fmt.Errorf("balance 0.1 ETH: %w", ErrInsufficientFunds), recoverable: true},
		{name: "invalid amount", err: ErrInvalidAmount, recoverable: true},
		{name: "invalid receiver", err: fmt.Errorf("0x12: %w", ErrInvalidReceiver), recoverable: true},
		{name: "network unavailable", err: fmt.Errorf("dial: %w", ErrNetworkUnavailable), retryable: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := testContext(t)
			est := newGatedEstimator()
			c := NewCoordinator(fakeValidator{}, est, &fakeDialogs{}, fakeWallets{id: "w1"})

			p, err := c.QuoteFee(ctx, receiver, amount("1"))
			require.NoError(t, err)

			est.release("1", tt.err)
			res, accepted, err := c.Await(ctx, p)
			require.NoError(t, err)
			assert.True(t, accepted)
			assert.ErrorIs(t, res.Err, tt.err)
			assert.Equal(t, tt.recoverable, IsRecoverable(res.Err))
			assert.Equal(t, tt.retryable, IsRetryable(res.Err))
			assert.False(t, IsFatal(res.Err))
		})
	}
}

func TestRetryAfterNetworkFailure(t *testing.T) {
	ctx := testContext(t)
	est := newGatedEstimator()
	c := NewCoordinator(fakeValidator{}, est, &fakeDialogs{}, fakeWallets{id: "w1"})

	p, err := c.QuoteFee(ctx, receiver, amount("1"))
	require.NoError(t, err)
	est.release("1", ErrNetworkUnavailable)
	res, _, err := c.Await(ctx, p)
	require.NoError(t, err)
	require.True(t, IsRetryable(res.Err))
	assert.Equal(t, 1, est.callCount(), "no automatic retry")

	p, err = c.QuoteFee(ctx, receiver, amount("1"))
	require.NoError(t, err)
	est.release("1", nil)
	res, accepted, err := c.Await(ctx, p)
	require.NoError(t, err)
	assert.True(t, accepted)
	assert.NoError(t, res.Err)
	assert.Equal(t, 2, est.callCount())
}

func TestAwaitHonoursContext(t *testing.T) {
	est := newGatedEstimator()
	c := NewCoordinator(fakeValidator{}, est, &fakeDialogs{}, fakeWallets{id: "w1"})

	ctx, cancel := context.WithCancel(context.Background())
	p, err := c.QuoteFee(context.Background(), receiver, amount("1"))
	require.NoError(t, err)

	cancel()
	_, accepted, err := c.Await(ctx, p)
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, accepted)

	est.release("1", nil)
}

func TestOpenConfirmationDialog(t *testing.T) {
	dialogs := &fakeDialogs{}
	c := NewCoordinator(fakeValidator{}, newGatedEstimator(), dialogs, fakeWallets{id: "w1"})

	assert.False(t, c.IsDialogOpen(ConfirmationDialog))
	c.OpenConfirmationDialog()
	assert.True(t, c.IsDialogOpen(ConfirmationDialog))
}
