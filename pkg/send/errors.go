package send

import "errors"

// ErrNoActiveWallet is returned by QuoteFee when no wallet is active. Sending
// without an active wallet is a logic error, so the send flow stops here.
var ErrNoActiveWallet = errors.New("no active wallet")

// ErrInsufficientFunds is returned when the wallet cannot cover amount and fee.
var ErrInsufficientFunds = errors.New("insufficient funds")

// ErrInvalidAmount is returned for zero, negative or malformed amounts.
var ErrInvalidAmount = errors.New("invalid amount")

// ErrInvalidReceiver is returned when an estimator cannot parse the receiver.
var ErrInvalidReceiver = errors.New("invalid receiver address")

// ErrNetworkUnavailable is returned when the fee could not be fetched. The
// caller may quote again; the coordinator never retries on its own.
var ErrNetworkUnavailable = errors.New("network unavailable")

// IsFatal reports whether err ends the send flow
func IsFatal(err error) bool {
	return errors.Is(err, ErrNoActiveWallet)
}

// IsRecoverable reports whether err is a user error shown next to the form
func IsRecoverable(err error) bool {
	return errors.Is(err, ErrInsufficientFunds) || errors.Is(err, ErrInvalidAmount) || errors.Is(err, ErrInvalidReceiver)
}

// IsRetryable reports whether quoting again may succeed
func IsRetryable(err error) bool {
	return errors.Is(err, ErrNetworkUnavailable)
}
