package integration

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/gowallet/internal/adapter/repository/postgres"
	"github.com/iho/gowallet/internal/domain"
	"github.com/iho/gowallet/internal/usecase"
	"github.com/iho/gowallet/tests/testutil"
)

func TestConcurrentEntries(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()

	testDB := testutil.NewTestDB(t)
	defer testDB.Cleanup()

	pool := testDB.Pool
	walletRepo := postgres.NewWalletRepository(pool)
	entryRepo := postgres.NewEntryRepository(pool)
	txManager := postgres.NewTxManager(pool, 5*time.Second)
	idGen := postgres.NewULIDGenerator()
	retrier := postgres.NewRetrier()

	ledgerUC := usecase.NewLedgerUseCase(txManager, walletRepo, entryRepo, idGen, retrier, nil)

	t.Run("concurrent mixed entries sum correctly", func(t *testing.T) {
		testDB.TruncateAll(ctx)

		// 1000 starting balance covers the worst-case ordering where every
		// debit lands before any credit, so all 200 entries must succeed.
		wallet := testDB.CreateTestWallet(ctx, "mixed", decimal.NewFromInt(1000))

		numCredits := 100
		numDebits := 100
		creditAmount := decimal.NewFromInt(10)
		debitAmount := decimal.NewFromInt(-5)

		var (
			wg           sync.WaitGroup
			successCount atomic.Int32
			errorCount   atomic.Int32
		)

		wg.Add(numCredits + numDebits)

		for n := 0; n < numCredits; n++ {
			go func() {
				defer wg.Done()

				_, err := ledgerUC.ApplyEntry(ctx, usecase.ApplyEntryInput{
					WalletID: wallet.ID,
					Amount:   creditAmount,
				})
				if err != nil {
					errorCount.Add(1)
				} else {
					successCount.Add(1)
				}
			}()
		}

		for n := 0; n < numDebits; n++ {
			go func() {
				defer wg.Done()

				_, err := ledgerUC.ApplyEntry(ctx, usecase.ApplyEntryInput{
					WalletID: wallet.ID,
					Amount:   debitAmount,
				})
				if err != nil {
					errorCount.Add(1)
				} else {
					successCount.Add(1)
				}
			}()
		}

		wg.Wait()

		if successCount.Load() != int32(numCredits+numDebits) {
			t.Errorf("expected %d successful entries, got %d (errors: %d)", numCredits+numDebits, successCount.Load(), errorCount.Load())
		}

		// 1000 + 100*10 - 100*5 = 1500
		got, err := walletRepo.GetByID(ctx, wallet.ID)
		if err != nil {
			t.Fatalf("failed to fetch wallet: %v", err)
		}
		if !got.Balance.Equal(decimal.NewFromInt(1500)) {
			t.Errorf("expected balance 1500, got %s", got.Balance)
		}
	})

	t.Run("concurrent debits reject overdraft", func(t *testing.T) {
		testDB.TruncateAll(ctx)

		wallet := testDB.CreateTestWallet(ctx, "overdraft", decimal.NewFromInt(100))

		numDebits := 20
		debitAmount := decimal.NewFromInt(-10) // 20 * 10 = 200 > 100

		var (
			wg             sync.WaitGroup
			successCount   atomic.Int32
			rejectionCount atomic.Int32
		)

		wg.Add(numDebits)

		for n := 0; n < numDebits; n++ {
			go func() {
				defer wg.Done()

				_, err := ledgerUC.ApplyEntry(ctx, usecase.ApplyEntryInput{
					WalletID: wallet.ID,
					Amount:   debitAmount,
				})

				switch {
				case err == nil:
					successCount.Add(1)
				case errors.Is(err, domain.ErrInsufficientFunds):
					rejectionCount.Add(1)
				default:
					t.Errorf("unexpected error: %v", err)
				}
			}()
		}

		wg.Wait()

		// Only 10 should succeed (100 / 10 = 10)
		if successCount.Load() != 10 {
			t.Errorf("expected 10 successful debits, got %d", successCount.Load())
		}
		if rejectionCount.Load() != 10 {
			t.Errorf("expected 10 rejections, got %d", rejectionCount.Load())
		}

		got, err := walletRepo.GetByID(ctx, wallet.ID)
		if err != nil {
			t.Fatalf("failed to fetch wallet: %v", err)
		}
		if !got.Balance.Equal(decimal.Zero) {
			t.Errorf("expected balance 0, got %s", got.Balance)
		}

		// Rejected debits must leave no trace in the ledger.
		entries, err := entryRepo.ListByWallet(ctx, wallet.ID, 100, 0)
		if err != nil {
			t.Fatalf("failed to list entries: %v", err)
		}
		if len(entries) != 10 {
			t.Errorf("expected 10 entries, got %d", len(entries))
		}
	})

	t.Run("same idempotency key applies exactly once", func(t *testing.T) {
		testDB.TruncateAll(ctx)

		wallet := testDB.CreateTestWallet(ctx, "idem", decimal.Zero)

		numAttempts := 10

		var (
			wg             sync.WaitGroup
			successCount   atomic.Int32
			duplicateCount atomic.Int32
		)

		wg.Add(numAttempts)

		for n := 0; n < numAttempts; n++ {
			go func() {
				defer wg.Done()

				_, err := ledgerUC.ApplyEntry(ctx, usecase.ApplyEntryInput{
					WalletID:       wallet.ID,
					Amount:         decimal.NewFromInt(50),
					IdempotencyKey: "deposit-2024-001",
				})

				switch {
				case err == nil:
					successCount.Add(1)
				case errors.Is(err, domain.ErrDuplicateEntry):
					duplicateCount.Add(1)
				default:
					t.Errorf("unexpected error: %v", err)
				}
			}()
		}

		wg.Wait()

		if successCount.Load() != 1 {
			t.Errorf("expected exactly 1 successful application, got %d", successCount.Load())
		}
		if duplicateCount.Load() != int32(numAttempts-1) {
			t.Errorf("expected %d duplicate rejections, got %d", numAttempts-1, duplicateCount.Load())
		}

		got, err := walletRepo.GetByID(ctx, wallet.ID)
		if err != nil {
			t.Fatalf("failed to fetch wallet: %v", err)
		}
		if !got.Balance.Equal(decimal.NewFromInt(50)) {
			t.Errorf("expected balance 50, got %s", got.Balance)
		}
	})

	t.Run("entries across distinct wallets do not interfere", func(t *testing.T) {
		testDB.TruncateAll(ctx)

		numWallets := 10
		entriesPerWallet := 20

		wallets := make([]*domain.Wallet, numWallets)
		for i := 0; i < numWallets; i++ {
			wallets[i] = testDB.CreateTestWallet(ctx, "parallel", decimal.Zero)
		}

		var wg sync.WaitGroup
		wg.Add(numWallets * entriesPerWallet)

		for _, w := range wallets {
			w := w
			for n := 0; n < entriesPerWallet; n++ {
				go func() {
					defer wg.Done()

					_, err := ledgerUC.ApplyEntry(ctx, usecase.ApplyEntryInput{
						WalletID: w.ID,
						Amount:   decimal.NewFromInt(1),
					})
					if err != nil {
						t.Errorf("unexpected error: %v", err)
					}
				}()
			}
		}

		wg.Wait()

		for _, w := range wallets {
			got, err := walletRepo.GetByID(ctx, w.ID)
			if err != nil {
				t.Fatalf("failed to fetch wallet: %v", err)
			}
			if !got.Balance.Equal(decimal.NewFromInt(int64(entriesPerWallet))) {
				t.Errorf("wallet %s: expected balance %d, got %s", w.ID, entriesPerWallet, got.Balance)
			}
		}
	})
}
