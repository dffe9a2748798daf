package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/iho/gowallet/internal/domain"
	"github.com/iho/gowallet/internal/infrastructure/postgres/generated"
	"github.com/iho/gowallet/internal/usecase"
)

// WalletRepository implements usecase.WalletRepository backed by PostgreSQL.
type WalletRepository struct {
	pool    *pgxpool.Pool
	queries *generated.Queries
}

// NewWalletRepository creates a new WalletRepository.
func NewWalletRepository(pool *pgxpool.Pool) *WalletRepository {
	return &WalletRepository{
		pool:    pool,
		queries: generated.New(pool),
	}
}

// Create inserts a new wallet.
func (r *WalletRepository) Create(ctx context.Context, wallet *domain.Wallet) error {
	initial, err := decimalToNumeric(wallet.InitialBalance)
	if err != nil {
		return err
	}
	balance, err := decimalToNumeric(wallet.Balance)
	if err != nil {
		return err
	}

	_, err = r.queries.CreateWallet(ctx, generated.CreateWalletParams{
		ID:             wallet.ID,
		Label:          wallet.Label,
		InitialBalance: initial,
		Balance:        balance,
		CreatedAt:      timeToTimestamptz(wallet.CreatedAt),
		UpdatedAt:      timeToTimestamptz(wallet.UpdatedAt),
	})
	if err != nil {
		return translateError(err)
	}
	return nil
}

// GetByID fetches a wallet by ID.
func (r *WalletRepository) GetByID(ctx context.Context, id string) (*domain.Wallet, error) {
	row, err := r.queries.GetWalletByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrWalletNotFound
		}
		return nil, translateError(err)
	}
	return rowToWallet(row)
}

// GetByIDForUpdate fetches a wallet by ID inside tx, taking a row lock that
// serializes concurrent entry application for the wallet.
func (r *WalletRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Wallet, error) {
	pgxTx, err := pgxTxFrom(tx)
	if err != nil {
		return nil, err
	}

	row, err := r.queries.WithTx(pgxTx).GetWalletByIDForUpdate(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrWalletNotFound
		}
		return nil, translateError(err)
	}
	return rowToWallet(row)
}

// UpdateBalance writes the wallet's new balance inside tx.
func (r *WalletRepository) UpdateBalance(ctx context.Context, tx usecase.Transaction, id string, balance decimal.Decimal, updatedAt time.Time) error {
	pgxTx, err := pgxTxFrom(tx)
	if err != nil {
		return err
	}

	numeric, err := decimalToNumeric(balance)
	if err != nil {
		return err
	}

	err = r.queries.WithTx(pgxTx).UpdateWalletBalance(ctx, generated.UpdateWalletBalanceParams{
		ID:        id,
		Balance:   numeric,
		UpdatedAt: timeToTimestamptz(updatedAt),
	})
	return translateError(err)
}

// UpdateLabel renames a wallet.
func (r *WalletRepository) UpdateLabel(ctx context.Context, id, label string, updatedAt time.Time) error {
	affected, err := r.queries.UpdateWalletLabel(ctx, generated.UpdateWalletLabelParams{
		ID:        id,
		Label:     label,
		UpdatedAt: timeToTimestamptz(updatedAt),
	})
	if err != nil {
		return translateError(err)
	}
	if affected == 0 {
		return domain.ErrWalletNotFound
	}
	return nil
}

// Delete removes a wallet and, via FK cascade, its entries.
func (r *WalletRepository) Delete(ctx context.Context, id string) error {
	affected, err := r.queries.DeleteWallet(ctx, id)
	if err != nil {
		return translateError(err)
	}
	if affected == 0 {
		return domain.ErrWalletNotFound
	}
	return nil
}

// List fetches wallets matching the filter.
func (r *WalletRepository) List(ctx context.Context, filter domain.WalletFilter) ([]*domain.Wallet, error) {
	var (
		conds []string
		args  []any
	)
	add := func(expr string, val any) {
		args = append(args, val)
		conds = append(conds, fmt.Sprintf(expr, len(args)))
	}

	if filter.ID != "" {
		add("id = $%d", filter.ID)
	}
	if filter.LabelContains != "" {
		add("label ILIKE $%d", "%"+filter.LabelContains+"%")
	}
	if filter.BalanceGT != nil {
		n, err := decimalToNumeric(*filter.BalanceGT)
		if err != nil {
			return nil, err
		}
		add("balance > $%d", n)
	}
	if filter.BalanceLT != nil {
		n, err := decimalToNumeric(*filter.BalanceLT)
		if err != nil {
			return nil, err
		}
		add("balance < $%d", n)
	}
	if filter.BalanceEQ != nil {
		n, err := decimalToNumeric(*filter.BalanceEQ)
		if err != nil {
			return nil, err
		}
		add("balance = $%d", n)
	}

	query := "SELECT id, label, initial_balance, balance, created_at, updated_at FROM wallets"
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY " + walletOrderClause(filter.OrderBy, filter.Order)

	args = append(args, filter.Limit, filter.Offset)
	query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, translateError(err)
	}
	defer rows.Close()

	var wallets []*domain.Wallet
	for rows.Next() {
		var row generated.Wallet
		if err := rows.Scan(
			&row.ID,
			&row.Label,
			&row.InitialBalance,
			&row.Balance,
			&row.CreatedAt,
			&row.UpdatedAt,
		); err != nil {
			return nil, translateError(err)
		}
		wallet, err := rowToWallet(row)
		if err != nil {
			return nil, err
		}
		wallets = append(wallets, wallet)
	}
	if err := rows.Err(); err != nil {
		return nil, translateError(err)
	}
	return wallets, nil
}

// Count returns the total number of wallets.
func (r *WalletRepository) Count(ctx context.Context) (int64, error) {
	total, err := r.queries.CountWallets(ctx)
	if err != nil {
		return 0, translateError(err)
	}
	return total, nil
}

// walletOrderClause maps a sort key onto a whitelisted column. Unknown keys
// fall back to the default newest-first ordering.
func walletOrderClause(orderBy string, order domain.SortOrder) string {
	column := "created_at"
	switch orderBy {
	case domain.WalletOrderByID:
		column = "id"
	case domain.WalletOrderByLabel:
		column = "label"
	case domain.WalletOrderByBalance:
		column = "balance"
	case domain.WalletOrderByCreatedAt:
		column = "created_at"
	}

	direction := "DESC"
	if order == domain.SortAsc {
		direction = "ASC"
	}
	return column + " " + direction
}

// VerifyConsistency reports wallets whose balance diverges from their initial
// balance plus the sum of their entries.
func (r *WalletRepository) VerifyConsistency(ctx context.Context) ([]domain.ConsistencyViolation, error) {
	rows, err := r.queries.VerifyWalletConsistency(ctx)
	if err != nil {
		return nil, translateError(err)
	}

	violations := make([]domain.ConsistencyViolation, 0, len(rows))
	for _, row := range rows {
		balance, err := numericToDecimal(row.Balance)
		if err != nil {
			return nil, err
		}
		expected, err := numericToDecimal(row.Expected)
		if err != nil {
			return nil, err
		}
		violations = append(violations, domain.ConsistencyViolation{
			WalletID: row.ID,
			Balance:  balance,
			Expected: expected,
		})
	}
	return violations, nil
}

func rowToWallet(row generated.Wallet) (*domain.Wallet, error) {
	initial, err := numericToDecimal(row.InitialBalance)
	if err != nil {
		return nil, err
	}
	balance, err := numericToDecimal(row.Balance)
	if err != nil {
		return nil, err
	}
	return &domain.Wallet{
		ID:             row.ID,
		Label:          row.Label,
		InitialBalance: initial,
		Balance:        balance,
		CreatedAt:      row.CreatedAt.Time,
		UpdatedAt:      row.UpdatedAt.Time,
	}, nil
}
