package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/gowallet/internal/domain"
)

// WalletResponse represents a wallet in API responses.
type WalletResponse struct {
	ID             string          `json:"id"`
	Label          string          `json:"label"`
	InitialBalance decimal.Decimal `json:"initial_balance"`
	Balance        decimal.Decimal `json:"balance"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// WalletFromDomain converts a domain wallet to a response.
func WalletFromDomain(w *domain.Wallet) *WalletResponse {
	return &WalletResponse{
		ID:             w.ID,
		Label:          w.Label,
		InitialBalance: w.InitialBalance,
		Balance:        w.Balance,
		CreatedAt:      w.CreatedAt,
		UpdatedAt:      w.UpdatedAt,
	}
}

// WalletsFromDomain converts domain wallets to responses.
func WalletsFromDomain(wallets []*domain.Wallet) []*WalletResponse {
	result := make([]*WalletResponse, len(wallets))
	for i, w := range wallets {
		result[i] = WalletFromDomain(w)
	}
	return result
}

// ListWalletsResponse wraps a page of wallets.
type ListWalletsResponse struct {
	Wallets []*WalletResponse `json:"wallets"`
	Total   int64             `json:"total"`
}

// EntryResponse represents a ledger entry in API responses.
type EntryResponse struct {
	ID              string          `json:"id"`
	WalletID        string          `json:"wallet_id"`
	IdempotencyKey  string          `json:"idempotency_key"`
	Amount          decimal.Decimal `json:"amount"`
	PreviousBalance decimal.Decimal `json:"previous_balance"`
	CurrentBalance  decimal.Decimal `json:"current_balance"`
	CreatedAt       time.Time       `json:"created_at"`
}

// EntryFromDomain converts a domain entry to a response.
func EntryFromDomain(e *domain.Entry) *EntryResponse {
	return &EntryResponse{
		ID:              e.ID,
		WalletID:        e.WalletID,
		IdempotencyKey:  e.IdempotencyKey,
		Amount:          e.Amount,
		PreviousBalance: e.PreviousBalance,
		CurrentBalance:  e.CurrentBalance,
		CreatedAt:       e.CreatedAt,
	}
}

// EntriesFromDomain converts domain entries to responses.
func EntriesFromDomain(entries []*domain.Entry) []*EntryResponse {
	result := make([]*EntryResponse, len(entries))
	for i, e := range entries {
		result[i] = EntryFromDomain(e)
	}
	return result
}

// ListEntriesResponse wraps a page of entries.
type ListEntriesResponse struct {
	Entries []*EntryResponse `json:"entries"`
	Total   int64            `json:"total"`
}

// ConsistencyViolationResponse reports one wallet whose balance diverged from
// its entries.
type ConsistencyViolationResponse struct {
	WalletID string          `json:"wallet_id"`
	Balance  decimal.Decimal `json:"balance"`
	Expected decimal.Decimal `json:"expected"`
}

// ConsistencyReportResponse reports the outcome of a ledger consistency check.
type ConsistencyReportResponse struct {
	Consistent bool                           `json:"consistent"`
	Violations []ConsistencyViolationResponse `json:"violations,omitempty"`
}

// ConsistencyReportFromDomain converts violations to a report.
func ConsistencyReportFromDomain(violations []domain.ConsistencyViolation) ConsistencyReportResponse {
	report := ConsistencyReportResponse{Consistent: len(violations) == 0}
	for _, v := range violations {
		report.Violations = append(report.Violations, ConsistencyViolationResponse{
			WalletID: v.WalletID,
			Balance:  v.Balance,
			Expected: v.Expected,
		})
	}
	return report
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
