package domain

import "errors"

var (
	// Wallet errors
	ErrWalletNotFound = errors.New("wallet not found")
	ErrInvalidBalance = errors.New("initial balance must be non-negative")
	ErrInvalidLabel   = errors.New("invalid wallet label")

	// Entry errors
	ErrMalformedEntry    = errors.New("malformed entry amount")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrDuplicateEntry    = errors.New("duplicate idempotency key")
	ErrEntryNotFound     = errors.New("entry not found")

	// Transient storage errors, retryable with backoff
	ErrLockTimeout      = errors.New("timed out waiting for wallet lock")
	ErrStoreUnavailable = errors.New("store unavailable")
)
