package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Amount precision limits. Balances and entry amounts are stored as
// NUMERIC(26,8): 18 integer digits, 8 fractional digits.
const (
	MaxIntegerDigits    = 18
	MaxFractionalDigits = 8

	MaxLabelLength = 255
	MinLabelLength = 1
)

// maxAmountMagnitude is 10^18, exclusive upper bound for |amount|.
var maxAmountMagnitude = decimal.New(1, MaxIntegerDigits)

// ValidateAmount checks that an entry amount is representable within the
// store's configured precision. Zero and negative amounts are permitted.
// It never consults the wallet balance.
func ValidateAmount(amount decimal.Decimal) error {
	if amount.Abs().GreaterThanOrEqual(maxAmountMagnitude) {
		return fmt.Errorf("%w: magnitude exceeds %d integer digits", ErrMalformedEntry, MaxIntegerDigits)
	}

	if !amount.Truncate(MaxFractionalDigits).Equal(amount) {
		return fmt.Errorf("%w: more than %d fractional digits", ErrMalformedEntry, MaxFractionalDigits)
	}

	return nil
}

// ValidateLabel validates a wallet label.
func ValidateLabel(label string) error {
	label = strings.TrimSpace(label)

	if len(label) < MinLabelLength {
		return fmt.Errorf("%w: label cannot be empty", ErrInvalidLabel)
	}

	if len(label) > MaxLabelLength {
		return fmt.Errorf("%w: label exceeds %d characters", ErrInvalidLabel, MaxLabelLength)
	}

	return nil
}

// ValidateInitialBalance validates a wallet's starting balance.
func ValidateInitialBalance(balance decimal.Decimal) error {
	if balance.IsNegative() {
		return ErrInvalidBalance
	}

	return ValidateAmount(balance)
}
