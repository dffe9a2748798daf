package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Entry represents a single immutable ledger entry against a wallet.
// A positive amount is a credit, a negative amount is a debit.
type Entry struct {
	CreatedAt       time.Time
	ID              string
	WalletID        string
	IdempotencyKey  string
	Amount          decimal.Decimal
	PreviousBalance decimal.Decimal
	CurrentBalance  decimal.Decimal
}
