package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/gowallet/internal/domain"
	"github.com/iho/gowallet/internal/infrastructure/metrics"
)

// LedgerUseCase is the ledger-application engine. It applies a signed-amount
// entry to a wallet as a single atomic unit: lock wallet row, check funds,
// write entry, update balance. Calls for the same wallet are serialized by the
// row lock; calls for different wallets run in parallel.
type LedgerUseCase struct {
	txManager  TransactionManager
	walletRepo WalletRepository
	entryRepo  EntryRepository
	idGen      IDGenerator
	retrier    Retrier
	metrics    *metrics.Metrics
}

// NewLedgerUseCase creates a new LedgerUseCase. retrier and metrics may be nil.
func NewLedgerUseCase(
	txManager TransactionManager,
	walletRepo WalletRepository,
	entryRepo EntryRepository,
	idGen IDGenerator,
	retrier Retrier,
	metrics *metrics.Metrics,
) *LedgerUseCase {
	return &LedgerUseCase{
		txManager:  txManager,
		walletRepo: walletRepo,
		entryRepo:  entryRepo,
		idGen:      idGen,
		retrier:    retrier,
		metrics:    metrics,
	}
}

// ApplyEntryInput represents input for applying an entry.
type ApplyEntryInput struct {
	WalletID       string
	Amount         decimal.Decimal
	IdempotencyKey string
}

// ApplyEntry atomically applies a signed amount to a wallet. On rejection no
// entry is written and the balance is unchanged. If IdempotencyKey is empty a
// key is generated; submitting an already-used key fails with
// domain.ErrDuplicateEntry without reapplying the amount.
func (uc *LedgerUseCase) ApplyEntry(ctx context.Context, input ApplyEntryInput) (*domain.Entry, error) {
	start := time.Now()

	if err := domain.ValidateAmount(input.Amount); err != nil {
		uc.countRejection(err)
		return nil, err
	}

	key := input.IdempotencyKey
	if key == "" {
		key = uc.idGen.Generate()
	}

	var entry *domain.Entry

	apply := func() error {
		e, err := uc.applyOnce(ctx, input.WalletID, input.Amount, key)
		if err != nil {
			return err
		}

		entry = e

		return nil
	}

	var err error
	if uc.retrier != nil {
		err = uc.retrier.Retry(ctx, apply)
	} else {
		err = apply()
	}

	if err != nil {
		uc.countRejection(err)
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.EntriesApplied.Inc()
		uc.metrics.EntryApplyDuration.Observe(time.Since(start).Seconds())

		amount, _ := input.Amount.Abs().Float64()
		uc.metrics.EntryAmount.Observe(amount)
	}

	return entry, nil
}

// applyOnce runs one lock-check-write-commit attempt. Idempotency key
// uniqueness is enforced by the entries unique constraint at insert time, not
// by a prior existence check, so two concurrent submissions of the same key
// cannot both pass.
func (uc *LedgerUseCase) applyOnce(ctx context.Context, walletID string, amount decimal.Decimal, key string) (*domain.Entry, error) {
	txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(txCtx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(txCtx)

	wallet, err := uc.walletRepo.GetByIDForUpdate(txCtx, tx, walletID)
	if err != nil {
		return nil, err
	}

	if err := wallet.ValidateApply(amount); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	newBalance := wallet.Apply(amount)

	entry := &domain.Entry{
		ID:              uc.idGen.Generate(),
		WalletID:        wallet.ID,
		IdempotencyKey:  key,
		Amount:          amount,
		PreviousBalance: wallet.Balance,
		CurrentBalance:  newBalance,
		CreatedAt:       now,
	}

	if err := uc.entryRepo.Create(txCtx, tx, entry); err != nil {
		return nil, err
	}

	if err := uc.walletRepo.UpdateBalance(txCtx, tx, wallet.ID, newBalance, now); err != nil {
		return nil, err
	}

	if err := tx.Commit(txCtx); err != nil {
		return nil, err
	}

	return entry, nil
}

// GetEntryByIdempotencyKey fetches the entry already recorded under key, so a
// duplicate submission can be answered with the original outcome.
func (uc *LedgerUseCase) GetEntryByIdempotencyKey(ctx context.Context, key string) (*domain.Entry, error) {
	return uc.entryRepo.GetByIdempotencyKey(ctx, key)
}

// VerifyConsistency reports wallets whose balance does not equal their initial
// balance plus the sum of their entries.
func (uc *LedgerUseCase) VerifyConsistency(ctx context.Context) ([]domain.ConsistencyViolation, error) {
	return uc.walletRepo.VerifyConsistency(ctx)
}

func (uc *LedgerUseCase) countRejection(err error) {
	if uc.metrics == nil {
		return
	}

	switch {
	case errors.Is(err, domain.ErrInsufficientFunds):
		uc.metrics.EntriesRejected.WithLabelValues("insufficient_funds").Inc()
	case errors.Is(err, domain.ErrDuplicateEntry):
		uc.metrics.EntriesRejected.WithLabelValues("duplicate").Inc()
	case errors.Is(err, domain.ErrMalformedEntry):
		uc.metrics.EntriesRejected.WithLabelValues("malformed").Inc()
	case errors.Is(err, domain.ErrWalletNotFound):
		uc.metrics.EntriesRejected.WithLabelValues("not_found").Inc()
	default:
		uc.metrics.EntriesRejected.WithLabelValues("storage").Inc()
	}
}
