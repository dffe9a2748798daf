package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/gowallet/internal/domain"
	"github.com/iho/gowallet/internal/infrastructure/metrics"
)

// WalletUseCase handles wallet lifecycle and read-side queries. None of these
// paths touch the per-wallet row lock; balance mutation belongs to the
// LedgerUseCase alone.
type WalletUseCase struct {
	walletRepo WalletRepository
	idGen      IDGenerator
	metrics    *metrics.Metrics
}

// NewWalletUseCase creates a new WalletUseCase. metrics may be nil.
func NewWalletUseCase(walletRepo WalletRepository, idGen IDGenerator, metrics *metrics.Metrics) *WalletUseCase {
	return &WalletUseCase{
		walletRepo: walletRepo,
		idGen:      idGen,
		metrics:    metrics,
	}
}

// CreateWalletInput represents input for creating a wallet.
type CreateWalletInput struct {
	Label          string
	InitialBalance decimal.Decimal
}

// CreateWallet creates a new wallet with an optional starting balance.
func (uc *WalletUseCase) CreateWallet(ctx context.Context, input CreateWalletInput) (*domain.Wallet, error) {
	if err := domain.ValidateLabel(input.Label); err != nil {
		return nil, err
	}

	if err := domain.ValidateInitialBalance(input.InitialBalance); err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	wallet := &domain.Wallet{
		ID:             uc.idGen.Generate(),
		Label:          strings.TrimSpace(input.Label),
		InitialBalance: input.InitialBalance,
		Balance:        input.InitialBalance,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := uc.walletRepo.Create(ctx, wallet); err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.WalletsCreated.Inc()
	}

	return wallet, nil
}

// GetWallet retrieves a wallet by ID.
func (uc *WalletUseCase) GetWallet(ctx context.Context, id string) (*domain.Wallet, error) {
	return uc.walletRepo.GetByID(ctx, id)
}

// ListWallets lists wallets matching the filter.
func (uc *WalletUseCase) ListWallets(ctx context.Context, filter domain.WalletFilter) ([]*domain.Wallet, error) {
	if filter.Limit <= 0 {
		filter.Limit = DefaultListLimit
	}

	if filter.Limit > MaxListLimit {
		filter.Limit = MaxListLimit
	}

	return uc.walletRepo.List(ctx, filter)
}

// CountWallets returns the total number of wallets.
func (uc *WalletUseCase) CountWallets(ctx context.Context) (int64, error) {
	return uc.walletRepo.Count(ctx)
}

// UpdateLabel renames a wallet. Labels carry no uniqueness constraint.
func (uc *WalletUseCase) UpdateLabel(ctx context.Context, id, label string) (*domain.Wallet, error) {
	if err := domain.ValidateLabel(label); err != nil {
		return nil, err
	}

	if err := uc.walletRepo.UpdateLabel(ctx, id, strings.TrimSpace(label), time.Now().UTC()); err != nil {
		return nil, err
	}

	return uc.walletRepo.GetByID(ctx, id)
}

// DeleteWallet hard-deletes a wallet, cascading entry deletion.
func (uc *WalletUseCase) DeleteWallet(ctx context.Context, id string) error {
	if err := uc.walletRepo.Delete(ctx, id); err != nil {
		return err
	}

	if uc.metrics != nil {
		uc.metrics.WalletsDeleted.Inc()
	}

	return nil
}
