package usecase

import (
	"context"

	"github.com/iho/gowallet/internal/domain"
)

// EntryUseCase handles entry read-side queries.
type EntryUseCase struct {
	entryRepo EntryRepository
}

// NewEntryUseCase creates a new EntryUseCase.
func NewEntryUseCase(entryRepo EntryRepository) *EntryUseCase {
	return &EntryUseCase{
		entryRepo: entryRepo,
	}
}

// GetEntry retrieves an entry by ID.
func (uc *EntryUseCase) GetEntry(ctx context.Context, id string) (*domain.Entry, error) {
	return uc.entryRepo.GetByID(ctx, id)
}

// ListEntries lists entries matching the filter.
func (uc *EntryUseCase) ListEntries(ctx context.Context, filter domain.EntryFilter) ([]*domain.Entry, error) {
	if filter.Limit <= 0 {
		filter.Limit = DefaultListLimit
	}

	if filter.Limit > MaxListLimit {
		filter.Limit = MaxListLimit
	}

	return uc.entryRepo.List(ctx, filter)
}

// ListEntriesByWallet lists entries for a wallet, newest first.
func (uc *EntryUseCase) ListEntriesByWallet(ctx context.Context, walletID string, limit, offset int) ([]*domain.Entry, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}

	if limit > MaxListLimit {
		limit = MaxListLimit
	}

	return uc.entryRepo.ListByWallet(ctx, walletID, limit, offset)
}

// CountEntriesByWallet returns the total number of entries recorded for a
// wallet, independent of paging.
func (uc *EntryUseCase) CountEntriesByWallet(ctx context.Context, walletID string) (int64, error) {
	return uc.entryRepo.CountByWallet(ctx, walletID)
}
