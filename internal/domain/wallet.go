package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Wallet represents an account holding a non-negative balance.
type Wallet struct {
	ID             string
	Label          string
	InitialBalance decimal.Decimal
	Balance        decimal.Decimal
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// ValidateApply checks if amount can be applied without driving the balance negative.
func (w *Wallet) ValidateApply(amount decimal.Decimal) error {
	newBalance := w.Balance.Add(amount)
	if newBalance.IsNegative() {
		return ErrInsufficientFunds
	}
	return nil
}

// Apply returns the new balance after applying amount.
func (w *Wallet) Apply(amount decimal.Decimal) decimal.Decimal {
	return w.Balance.Add(amount)
}
