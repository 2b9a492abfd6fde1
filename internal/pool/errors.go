package pool

import "errors"

// Sentinel errors returned by pool operations. All of them are recoverable
// by the caller; no operation mutates the pool on failure.
var (
	// ErrInvalidAmount marks a zero-valued input where a positive value is
	// required (construction reserves, trade amounts).
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrInsufficientPoolFunds marks a trade that would remove more of a
	// reserve than the pool currently holds.
	ErrInsufficientPoolFunds = errors.New("insufficient pool funds")

	// ErrOverflow marks an arithmetic step whose result does not fit the
	// reserve width, including a quotient too large for uint64.
	ErrOverflow = errors.New("overflow")

	// ErrSlippageExceeded marks a trade outcome that violates the caller's
	// bound (max spend on a buy, min payout on a sell).
	ErrSlippageExceeded = errors.New("slippage too high")
)
