package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	adaptershttp "github.com/iho/gowallet/internal/adapter/http"
	"github.com/iho/gowallet/internal/adapter/http/dto"
	"github.com/iho/gowallet/internal/adapter/http/handler"
	"github.com/iho/gowallet/internal/adapter/http/middleware"
	"github.com/iho/gowallet/internal/adapter/repository/postgres"
	redisrepo "github.com/iho/gowallet/internal/adapter/repository/redis"
	infraredis "github.com/iho/gowallet/internal/infrastructure/redis"
	"github.com/iho/gowallet/internal/usecase"
	"github.com/iho/gowallet/tests/testutil"
)

func TestAPI(t *testing.T) {
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

	walletUC := usecase.NewWalletUseCase(walletRepo, idGen, nil)
	ledgerUC := usecase.NewLedgerUseCase(txManager, walletRepo, entryRepo, idGen, retrier, nil)
	entryUC := usecase.NewEntryUseCase(entryRepo)

	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "redis://localhost:6379"
	}

	redisClient, err := infraredis.NewClient(ctx, redisURL)
	if err != nil {
		t.Fatalf("failed to connect to redis: %v", err)
	}
	defer redisClient.Close()

	idempotencyStore := redisrepo.NewIdempotencyStore(redisClient)

	router := adaptershttp.NewRouter(adaptershttp.RouterConfig{
		WalletHandler:    handler.NewWalletHandler(walletUC),
		EntryHandler:     handler.NewEntryHandler(entryUC),
		LedgerHandler:    handler.NewLedgerHandler(ledgerUC),
		HealthHandler:    handler.NewHealthHandler(pool, redisClient),
		IdempotencyStore: idempotencyStore,
		IdempotencyTTL:   time.Minute,
		Logger:           zerolog.Nop(),
	})

	createWallet := func(t *testing.T, label string, balance string) dto.WalletResponse {
		t.Helper()

		amount, err := decimal.NewFromString(balance)
		require.NoError(t, err)

		body, _ := json.Marshal(dto.CreateWalletRequest{Label: label, InitialBalance: amount})
		req := httptest.NewRequest(http.MethodPost, "/api/v1/wallets/", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

		var wallet dto.WalletResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &wallet))
		return wallet
	}

	applyEntry := func(t *testing.T, walletID, amount, key string) *httptest.ResponseRecorder {
		t.Helper()

		a, err := decimal.NewFromString(amount)
		require.NoError(t, err)

		body, _ := json.Marshal(dto.ApplyEntryRequest{Amount: a, IdempotencyKey: key})
		req := httptest.NewRequest(http.MethodPost, "/api/v1/wallets/"+walletID+"/entries", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		if key != "" {
			req.Header.Set(middleware.IdempotencyKeyHeader, key)
		}
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec
	}

	t.Run("debit exact balance leaves zero", func(t *testing.T) {
		testDB.TruncateAll(ctx)

		wallet := createWallet(t, "exact", "100")

		rec := applyEntry(t, wallet.ID, "-100", "")
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

		var entry dto.EntryResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &entry))
		require.True(t, entry.CurrentBalance.Equal(decimal.Zero))

		// One more cent must be rejected.
		rec = applyEntry(t, wallet.ID, "-0.01", "")
		require.Equal(t, http.StatusUnprocessableEntity, rec.Code, rec.Body.String())
	})

	t.Run("repeated idempotency key replays the original response", func(t *testing.T) {
		testDB.TruncateAll(ctx)
		require.NoError(t, redisClient.FlushDB(ctx).Err())

		wallet := createWallet(t, "replay", "0")

		first := applyEntry(t, wallet.ID, "50", "api-key-1")
		require.Equal(t, http.StatusCreated, first.Code, first.Body.String())

		second := applyEntry(t, wallet.ID, "50", "api-key-1")
		require.Equal(t, http.StatusCreated, second.Code, second.Body.String())
		require.Equal(t, "true", second.Header().Get("X-Idempotency-Replay"))
		require.Equal(t, first.Body.String(), second.Body.String())

		// The amount was applied once.
		got, err := walletRepo.GetByID(ctx, wallet.ID)
		require.NoError(t, err)
		require.True(t, got.Balance.Equal(decimal.NewFromInt(50)))
	})

	t.Run("reused key without cached response returns conflict", func(t *testing.T) {
		testDB.TruncateAll(ctx)
		require.NoError(t, redisClient.FlushDB(ctx).Err())

		wallet := createWallet(t, "conflict", "0")

		first := applyEntry(t, wallet.ID, "10", "api-key-2")
		require.Equal(t, http.StatusCreated, first.Code, first.Body.String())

		// Drop the cached response so the request reaches the engine, which
		// rejects the duplicate key at the entries unique constraint.
		require.NoError(t, redisClient.FlushDB(ctx).Err())

		second := applyEntry(t, wallet.ID, "10", "api-key-2")
		require.Equal(t, http.StatusConflict, second.Code, second.Body.String())

		// The conflict body carries the entry recorded for the key.
		var recorded dto.EntryResponse
		require.NoError(t, json.Unmarshal(second.Body.Bytes(), &recorded))
		require.Equal(t, "api-key-2", recorded.IdempotencyKey)
		require.True(t, recorded.Amount.Equal(decimal.NewFromInt(10)))

		got, err := walletRepo.GetByID(ctx, wallet.ID)
		require.NoError(t, err)
		require.True(t, got.Balance.Equal(decimal.NewFromInt(10)))
	})

	t.Run("malformed amount returns bad request", func(t *testing.T) {
		testDB.TruncateAll(ctx)

		wallet := createWallet(t, "malformed", "0")

		req := httptest.NewRequest(http.MethodPost, "/api/v1/wallets/"+wallet.ID+"/entries", bytes.NewReader([]byte(`{"amount": "abc"}`)))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
	})

	t.Run("entry against missing wallet returns not found", func(t *testing.T) {
		testDB.TruncateAll(ctx)

		rec := applyEntry(t, "01HZZZZZZZZZZZZZZZZZZZZZZZ", "10", "")
		require.Equal(t, http.StatusNotFound, rec.Code, rec.Body.String())
	})

	t.Run("consistency endpoint reports clean ledger", func(t *testing.T) {
		testDB.TruncateAll(ctx)

		wallet := createWallet(t, "clean", "30")
		rec := applyEntry(t, wallet.ID, "-30", "")
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

		req := httptest.NewRequest(http.MethodGet, "/api/v1/ledger/consistency", nil)
		check := httptest.NewRecorder()
		router.ServeHTTP(check, req)

		require.Equal(t, http.StatusOK, check.Code, check.Body.String())

		var report dto.ConsistencyReportResponse
		require.NoError(t, json.Unmarshal(check.Body.Bytes(), &report))
		require.True(t, report.Consistent)
		require.Empty(t, report.Violations)
	})
}
