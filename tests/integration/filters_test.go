package integration

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/iho/gowallet/internal/adapter/repository/postgres"
	"github.com/iho/gowallet/internal/domain"
	"github.com/iho/gowallet/internal/usecase"
	"github.com/iho/gowallet/tests/testutil"
)

func TestListFilters(t *testing.T) {
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

	ledgerUC := usecase.NewLedgerUseCase(txManager, walletRepo, entryRepo, idGen, nil, nil)

	testDB.TruncateAll(ctx)

	savings := testDB.CreateTestWallet(ctx, "Savings", decimal.NewFromInt(50))
	checking := testDB.CreateTestWallet(ctx, "checking", decimal.NewFromInt(150))
	eurSavings := testDB.CreateTestWallet(ctx, "savings-eur", decimal.NewFromInt(300))

	t.Run("label filter matches case-insensitive substring", func(t *testing.T) {
		wallets, err := walletRepo.List(ctx, domain.WalletFilter{LabelContains: "sav", Limit: 10})
		require.NoError(t, err)
		require.Len(t, wallets, 2)

		ids := map[string]bool{}
		for _, w := range wallets {
			ids[w.ID] = true
		}
		require.True(t, ids[savings.ID])
		require.True(t, ids[eurSavings.ID])
	})

	t.Run("balance range filters", func(t *testing.T) {
		gt := decimal.NewFromInt(100)
		wallets, err := walletRepo.List(ctx, domain.WalletFilter{BalanceGT: &gt, Limit: 10})
		require.NoError(t, err)
		require.Len(t, wallets, 2)

		lt := decimal.NewFromInt(100)
		wallets, err = walletRepo.List(ctx, domain.WalletFilter{BalanceLT: &lt, Limit: 10})
		require.NoError(t, err)
		require.Len(t, wallets, 1)
		require.Equal(t, savings.ID, wallets[0].ID)

		eq := decimal.NewFromInt(150)
		wallets, err = walletRepo.List(ctx, domain.WalletFilter{BalanceEQ: &eq, Limit: 10})
		require.NoError(t, err)
		require.Len(t, wallets, 1)
		require.Equal(t, checking.ID, wallets[0].ID)
	})

	t.Run("ordering by balance", func(t *testing.T) {
		wallets, err := walletRepo.List(ctx, domain.WalletFilter{
			OrderBy: domain.WalletOrderByBalance,
			Order:   domain.SortAsc,
			Limit:   10,
		})
		require.NoError(t, err)
		require.Len(t, wallets, 3)
		require.Equal(t, savings.ID, wallets[0].ID)
		require.Equal(t, eurSavings.ID, wallets[2].ID)

		wallets, err = walletRepo.List(ctx, domain.WalletFilter{
			OrderBy: domain.WalletOrderByBalance,
			Order:   domain.SortDesc,
			Limit:   10,
		})
		require.NoError(t, err)
		require.Equal(t, eurSavings.ID, wallets[0].ID)
	})

	t.Run("limit and offset page through results", func(t *testing.T) {
		page1, err := walletRepo.List(ctx, domain.WalletFilter{
			OrderBy: domain.WalletOrderByBalance,
			Order:   domain.SortAsc,
			Limit:   2,
		})
		require.NoError(t, err)
		require.Len(t, page1, 2)

		page2, err := walletRepo.List(ctx, domain.WalletFilter{
			OrderBy: domain.WalletOrderByBalance,
			Order:   domain.SortAsc,
			Limit:   2,
			Offset:  2,
		})
		require.NoError(t, err)
		require.Len(t, page2, 1)
		require.Equal(t, eurSavings.ID, page2[0].ID)
	})

	t.Run("entry filters by wallet and idempotency key", func(t *testing.T) {
		_, err := ledgerUC.ApplyEntry(ctx, usecase.ApplyEntryInput{
			WalletID:       checking.ID,
			Amount:         decimal.NewFromInt(20),
			IdempotencyKey: "filter-key-1",
		})
		require.NoError(t, err)

		_, err = ledgerUC.ApplyEntry(ctx, usecase.ApplyEntryInput{
			WalletID: checking.ID,
			Amount:   decimal.NewFromInt(-10),
		})
		require.NoError(t, err)

		entries, err := entryRepo.List(ctx, domain.EntryFilter{WalletID: checking.ID, Limit: 10})
		require.NoError(t, err)
		require.Len(t, entries, 2)

		entries, err = entryRepo.List(ctx, domain.EntryFilter{IdempotencyKey: "filter-key-1", Limit: 10})
		require.NoError(t, err)
		require.Len(t, entries, 1)
		require.True(t, entries[0].Amount.Equal(decimal.NewFromInt(20)))
	})

	t.Run("entry ordering by amount", func(t *testing.T) {
		entries, err := entryRepo.List(ctx, domain.EntryFilter{
			WalletID: checking.ID,
			OrderBy:  domain.EntryOrderByAmount,
			Order:    domain.SortAsc,
			Limit:    10,
		})
		require.NoError(t, err)
		require.Len(t, entries, 2)
		require.True(t, entries[0].Amount.Equal(decimal.NewFromInt(-10)))
		require.True(t, entries[1].Amount.Equal(decimal.NewFromInt(20)))
	})
}
