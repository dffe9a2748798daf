package domain

import "github.com/shopspring/decimal"

// SortOrder is the direction of a List ordering.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// Wallet sort keys accepted by WalletFilter.OrderBy.
const (
	WalletOrderByID        = "id"
	WalletOrderByLabel     = "label"
	WalletOrderByBalance   = "balance"
	WalletOrderByCreatedAt = "created_at"
)

// Entry sort keys accepted by EntryFilter.OrderBy.
const (
	EntryOrderByCreatedAt = "created_at"
	EntryOrderByAmount    = "amount"
)

// WalletFilter defines read-side filtering and ordering for wallets.
// Zero-valued fields are ignored. Default ordering is created_at descending.
type WalletFilter struct {
	ID            string
	LabelContains string // case-insensitive substring match
	BalanceGT     *decimal.Decimal
	BalanceLT     *decimal.Decimal
	BalanceEQ     *decimal.Decimal
	OrderBy       string
	Order         SortOrder
	Limit         int
	Offset        int
}

// HasPredicates reports whether the filter narrows the result set beyond
// ordering and paging.
func (f WalletFilter) HasPredicates() bool {
	return f.ID != "" || f.LabelContains != "" ||
		f.BalanceGT != nil || f.BalanceLT != nil || f.BalanceEQ != nil
}

// EntryFilter defines read-side filtering and ordering for entries.
type EntryFilter struct {
	WalletID       string
	IdempotencyKey string
	OrderBy        string
	Order          SortOrder
	Limit          int
	Offset         int
}

// ConsistencyViolation reports a wallet whose balance does not equal its
// initial balance plus the sum of its entries.
type ConsistencyViolation struct {
	WalletID string
	Balance  decimal.Decimal
	Expected decimal.Decimal
}
