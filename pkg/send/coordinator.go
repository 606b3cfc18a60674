// Package send coordinates the send form: address validation, fee quotes for
// the active wallet and the confirmation dialog.
package send

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"wallet-console/pkg/logger"
	"wallet-console/pkg/types"
)

// ConfirmationDialog is the dialog opened before a transaction is sent
const ConfirmationDialog = "wallet-send-confirmation"

// AddressValidator checks a destination address
type AddressValidator interface {
	Validate(candidate string) ValidationResult
}

// FeeEstimator computes the network fee of a prospective transaction
type FeeEstimator interface {
	EstimateFee(ctx context.Context, walletID types.WalletID, receiver types.Address, amount types.Amount) (types.FeeQuote, error)
}

// DialogController opens named dialogs
type DialogController interface {
	IsOpen(name string) bool
	Open(name string)
}

// ActiveWallet reports the wallet the form sends from
type ActiveWallet interface {
	ActiveWalletID() (types.WalletID, bool)
}

// Result is the outcome of one fee lookup
type Result struct {
	Seq     uint64
	Request types.SendRequest
	Quote   types.FeeQuote
	Err     error
}

// Pending is an in-flight fee lookup
type Pending struct {
	Seq     uint64
	Request types.SendRequest
	done    chan Result
}

// Done delivers the result exactly once
func (p *Pending) Done() <-chan Result {
	return p.done
}

// Coordinator mediates between the send form and its collaborators
type Coordinator struct {
	validator AddressValidator
	estimator FeeEstimator
	dialogs   DialogController
	wallets   ActiveWallet

	mu     sync.Mutex
	seq    uint64
	latest *Result
}

// NewCoordinator creates a coordinator bound to the given collaborators
func NewCoordinator(validator AddressValidator, estimator FeeEstimator, dialogs DialogController, wallets ActiveWallet) *Coordinator {
	return &Coordinator{
		validator: validator,
		estimator: estimator,
		dialogs:   dialogs,
		wallets:   wallets,
	}
}

// ValidateAddress delegates to the address validator
func (c *Coordinator) ValidateAddress(candidate string) ValidationResult {
	return c.validator.Validate(candidate)
}

// QuoteFee starts a fee lookup for the active wallet. It fails with
// ErrNoActiveWallet before any work starts when no wallet is active.
//
// Each call supersedes the previous ones: only the result of the most recent
// call is accepted by Accept.
func (c *Coordinator) QuoteFee(ctx context.Context, receiver types.Address, amount types.Amount) (*Pending, error) {
	walletID, ok := c.wallets.ActiveWalletID()
	if !ok {
		return nil, ErrNoActiveWallet
	}

	c.mu.Lock()
	c.seq++
	seq := c.seq
	c.mu.Unlock()

	req := types.SendRequest{
		WalletID: walletID,
		Receiver: receiver,
		Amount:   amount,
	}
	p := &Pending{
		Seq:     seq,
		Request: req,
		done:    make(chan Result, 1),
	}

	logger.Debug("fee quote requested",
		zap.Uint64("seq", seq),
		zap.String("wallet", string(walletID)),
		zap.String("receiver", receiver.String()),
		zap.String("amount", amount.String()))

	go func() {
		quote, err := c.estimator.EstimateFee(ctx, walletID, receiver, amount)
		p.done <- Result{Seq: seq, Request: req, Quote: quote, Err: err}
	}()

	return p, nil
}

// Accept records r as the latest result if it belongs to the most recent
// request. Superseded results are dropped and false is returned.
func (c *Coordinator) Accept(r Result) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if r.Seq != c.seq {
		logger.Debug("discarding stale fee quote", zap.Uint64("seq", r.Seq), zap.Uint64("latest", c.seq))
		return false
	}
	c.latest = &r
	return true
}

// Await waits for p and accepts its result. accepted is false when a newer
// request superseded p while it was in flight.
func (c *Coordinator) Await(ctx context.Context, p *Pending) (result Result, accepted bool, err error) {
	select {
	case <-ctx.Done():
		return Result{}, false, ctx.Err()
	case r := <-p.Done():
		return r, c.Accept(r), nil
	}
}

// Latest returns the most recently accepted result
func (c *Coordinator) Latest() (Result, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.latest == nil {
		return Result{}, false
	}
	return *c.latest, true
}

// IsLatest reports whether seq is the most recent request
func (c *Coordinator) IsLatest(seq uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return seq == c.seq
}

// IsDialogOpen reports whether the named dialog is open
func (c *Coordinator) IsDialogOpen(name string) bool {
	return c.dialogs.IsOpen(name)
}

// OpenConfirmationDialog asks the dialog controller to open the send
// confirmation. What happens next is up to the controller.
func (c *Coordinator) OpenConfirmationDialog() {
	c.dialogs.Open(ConfirmationDialog)
}
