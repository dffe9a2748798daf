package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/gowallet/internal/domain"
	"github.com/iho/gowallet/internal/usecase"
	"github.com/iho/gowallet/internal/usecase/mocks"
)

func newLedgerUseCase(walletRepo *mocks.MockWalletRepository, entryRepo *mocks.MockEntryRepository) *usecase.LedgerUseCase {
	return usecase.NewLedgerUseCase(
		mocks.NewMockTransactionManager(),
		walletRepo,
		entryRepo,
		mocks.NewMockIDGenerator(),
		mocks.NewMockRetrier(),
		nil,
	)
}

func TestLedgerUseCase_ApplyEntry(t *testing.T) {
	tests := []struct {
		name        string
		input       usecase.ApplyEntryInput
		setupMocks  func(*mocks.MockWalletRepository, *mocks.MockEntryRepository)
		expectError error
		wantBalance string
	}{
		{
			name: "credit succeeds",
			input: usecase.ApplyEntryInput{
				WalletID: "w-1",
				Amount:   decimal.NewFromInt(50),
			},
			setupMocks: func(walletRepo *mocks.MockWalletRepository, entryRepo *mocks.MockEntryRepository) {
				walletRepo.Create(context.Background(), &domain.Wallet{ID: "w-1", Balance: decimal.NewFromInt(100)})
			},
			wantBalance: "150",
		},
		{
			name: "debit within balance succeeds",
			input: usecase.ApplyEntryInput{
				WalletID: "w-1",
				Amount:   decimal.NewFromInt(-100),
			},
			setupMocks: func(walletRepo *mocks.MockWalletRepository, entryRepo *mocks.MockEntryRepository) {
				walletRepo.Create(context.Background(), &domain.Wallet{ID: "w-1", Balance: decimal.NewFromInt(100)})
			},
			wantBalance: "0",
		},
		{
			name: "zero amount is recorded as a no-op",
			input: usecase.ApplyEntryInput{
				WalletID: "w-1",
				Amount:   decimal.Zero,
			},
			setupMocks: func(walletRepo *mocks.MockWalletRepository, entryRepo *mocks.MockEntryRepository) {
				walletRepo.Create(context.Background(), &domain.Wallet{ID: "w-1", Balance: decimal.Zero})
			},
			wantBalance: "0",
		},
		{
			name: "insufficient funds rejected",
			input: usecase.ApplyEntryInput{
				WalletID: "w-1",
				Amount:   decimal.NewFromInt(-150),
			},
			setupMocks: func(walletRepo *mocks.MockWalletRepository, entryRepo *mocks.MockEntryRepository) {
				walletRepo.Create(context.Background(), &domain.Wallet{ID: "w-1", Balance: decimal.NewFromInt(100)})
			},
			expectError: domain.ErrInsufficientFunds,
		},
		{
			name: "wallet not found",
			input: usecase.ApplyEntryInput{
				WalletID: "missing",
				Amount:   decimal.NewFromInt(10),
			},
			setupMocks:  func(walletRepo *mocks.MockWalletRepository, entryRepo *mocks.MockEntryRepository) {},
			expectError: domain.ErrWalletNotFound,
		},
		{
			name: "malformed amount rejected before storage",
			input: usecase.ApplyEntryInput{
				WalletID: "w-1",
				Amount:   decimal.RequireFromString("0.000000001"),
			},
			setupMocks: func(walletRepo *mocks.MockWalletRepository, entryRepo *mocks.MockEntryRepository) {
				walletRepo.GetByIDForUpdateFunc = func(ctx context.Context, tx usecase.Transaction, id string) (*domain.Wallet, error) {
					t.Fatal("lock must not be attempted for malformed amounts")
					return nil, nil
				}
			},
			expectError: domain.ErrMalformedEntry,
		},
		{
			name: "duplicate idempotency key",
			input: usecase.ApplyEntryInput{
				WalletID:       "w-1",
				Amount:         decimal.NewFromInt(10),
				IdempotencyKey: "retry-key",
			},
			setupMocks: func(walletRepo *mocks.MockWalletRepository, entryRepo *mocks.MockEntryRepository) {
				walletRepo.Create(context.Background(), &domain.Wallet{ID: "w-1", Balance: decimal.NewFromInt(100)})
				entryRepo.Create(context.Background(), nil, &domain.Entry{ID: "e-0", WalletID: "w-1", IdempotencyKey: "retry-key"})
			},
			expectError: domain.ErrDuplicateEntry,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			walletRepo := mocks.NewMockWalletRepository()
			entryRepo := mocks.NewMockEntryRepository()
			tt.setupMocks(walletRepo, entryRepo)

			uc := newLedgerUseCase(walletRepo, entryRepo)
			entry, err := uc.ApplyEntry(context.Background(), tt.input)

			if tt.expectError != nil {
				if !errors.Is(err, tt.expectError) {
					t.Fatalf("expected error %v, got %v", tt.expectError, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if !entry.Amount.Equal(tt.input.Amount) {
				t.Errorf("expected amount %s, got %s", tt.input.Amount, entry.Amount)
			}

			if entry.IdempotencyKey == "" {
				t.Error("expected idempotency key to be generated")
			}

			if !entry.CurrentBalance.Equal(decimal.RequireFromString(tt.wantBalance)) {
				t.Errorf("expected current balance %s, got %s", tt.wantBalance, entry.CurrentBalance)
			}

			wallet, err := walletRepo.GetByID(context.Background(), tt.input.WalletID)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if !wallet.Balance.Equal(decimal.RequireFromString(tt.wantBalance)) {
				t.Errorf("expected wallet balance %s, got %s", tt.wantBalance, wallet.Balance)
			}
		})
	}
}

func TestLedgerUseCase_ApplyEntry_NoPartialEffectOnRejection(t *testing.T) {
	walletRepo := mocks.NewMockWalletRepository()
	entryRepo := mocks.NewMockEntryRepository()

	walletRepo.Create(context.Background(), &domain.Wallet{ID: "w-1", Balance: decimal.NewFromInt(100)})

	entryCreated := false
	entryRepo.CreateFunc = func(ctx context.Context, tx usecase.Transaction, entry *domain.Entry) error {
		entryCreated = true
		return nil
	}

	balanceUpdated := false
	walletRepo.UpdateBalanceFunc = func(ctx context.Context, tx usecase.Transaction, id string, balance decimal.Decimal, updatedAt time.Time) error {
		balanceUpdated = true
		return nil
	}

	uc := newLedgerUseCase(walletRepo, entryRepo)

	_, err := uc.ApplyEntry(context.Background(), usecase.ApplyEntryInput{
		WalletID: "w-1",
		Amount:   decimal.NewFromInt(-150),
	})
	if !errors.Is(err, domain.ErrInsufficientFunds) {
		t.Fatalf("expected ErrInsufficientFunds, got %v", err)
	}

	if entryCreated {
		t.Error("entry must not be written when funds are insufficient")
	}

	if balanceUpdated {
		t.Error("balance must not be updated when funds are insufficient")
	}
}

func TestLedgerUseCase_ApplyEntry_GeneratedKeyIsUnique(t *testing.T) {
	walletRepo := mocks.NewMockWalletRepository()
	entryRepo := mocks.NewMockEntryRepository()

	walletRepo.Create(context.Background(), &domain.Wallet{ID: "w-1", Balance: decimal.Zero})

	uc := newLedgerUseCase(walletRepo, entryRepo)

	first, err := uc.ApplyEntry(context.Background(), usecase.ApplyEntryInput{WalletID: "w-1", Amount: decimal.NewFromInt(1)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	second, err := uc.ApplyEntry(context.Background(), usecase.ApplyEntryInput{WalletID: "w-1", Amount: decimal.NewFromInt(1)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if first.IdempotencyKey == second.IdempotencyKey {
		t.Errorf("generated keys must differ, both were %q", first.IdempotencyKey)
	}
}

func TestLedgerUseCase_GetEntryByIdempotencyKey(t *testing.T) {
	walletRepo := mocks.NewMockWalletRepository()
	entryRepo := mocks.NewMockEntryRepository()

	walletRepo.Create(context.Background(), &domain.Wallet{ID: "w-1", Balance: decimal.NewFromInt(100)})

	uc := newLedgerUseCase(walletRepo, entryRepo)

	applied, err := uc.ApplyEntry(context.Background(), usecase.ApplyEntryInput{
		WalletID:       "w-1",
		Amount:         decimal.NewFromInt(25),
		IdempotencyKey: "k-1",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := uc.GetEntryByIdempotencyKey(context.Background(), "k-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != applied.ID {
		t.Errorf("expected entry %s, got %s", applied.ID, got.ID)
	}

	if _, err := uc.GetEntryByIdempotencyKey(context.Background(), "unknown"); !errors.Is(err, domain.ErrEntryNotFound) {
		t.Errorf("expected ErrEntryNotFound for unknown key, got %v", err)
	}
}
