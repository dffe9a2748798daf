package dto

import (
	"github.com/shopspring/decimal"

	"github.com/iho/gowallet/internal/usecase"
)

// CreateWalletRequest represents a request to create a wallet.
type CreateWalletRequest struct {
	Label          string          `json:"label"`
	InitialBalance decimal.Decimal `json:"initial_balance"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateWalletRequest) ToUseCaseInput() usecase.CreateWalletInput {
	return usecase.CreateWalletInput{
		Label:          r.Label,
		InitialBalance: r.InitialBalance,
	}
}

// UpdateWalletLabelRequest represents a request to rename a wallet.
type UpdateWalletLabelRequest struct {
	Label string `json:"label"`
}

// ApplyEntryRequest represents a request to apply a signed amount to a wallet.
// A positive amount credits the wallet, a negative amount debits it.
type ApplyEntryRequest struct {
	Amount         decimal.Decimal `json:"amount"`
	IdempotencyKey string          `json:"idempotency_key,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *ApplyEntryRequest) ToUseCaseInput(walletID string) usecase.ApplyEntryInput {
	return usecase.ApplyEntryInput{
		WalletID:       walletID,
		Amount:         r.Amount,
		IdempotencyKey: r.IdempotencyKey,
	}
}
