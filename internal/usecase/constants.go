package usecase

import "time"

const (
	// DefaultTransactionTimeout bounds a single apply attempt, lock wait included
	DefaultTransactionTimeout = 10 * time.Second

	// DefaultListLimit and MaxListLimit bound read-side pagination
	DefaultListLimit = 20
	MaxListLimit     = 100

	// IdempotencyKeyTTL is how long replayed responses are cached
	IdempotencyKeyTTL = 24 * time.Hour
)
