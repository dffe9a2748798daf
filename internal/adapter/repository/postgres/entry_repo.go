package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/gowallet/internal/domain"
	"github.com/iho/gowallet/internal/infrastructure/postgres/generated"
	"github.com/iho/gowallet/internal/usecase"
)

// EntryRepository implements usecase.EntryRepository backed by PostgreSQL.
type EntryRepository struct {
	pool    *pgxpool.Pool
	queries *generated.Queries
}

// NewEntryRepository creates a new EntryRepository.
func NewEntryRepository(pool *pgxpool.Pool) *EntryRepository {
	return &EntryRepository{
		pool:    pool,
		queries: generated.New(pool),
	}
}

// Create inserts an entry inside tx. A unique-constraint violation on the
// idempotency key surfaces as domain.ErrDuplicateEntry, which aborts the
// transaction and leaves the wallet untouched.
func (r *EntryRepository) Create(ctx context.Context, tx usecase.Transaction, entry *domain.Entry) error {
	pgxTx, err := pgxTxFrom(tx)
	if err != nil {
		return err
	}

	amount, err := decimalToNumeric(entry.Amount)
	if err != nil {
		return err
	}
	previous, err := decimalToNumeric(entry.PreviousBalance)
	if err != nil {
		return err
	}
	current, err := decimalToNumeric(entry.CurrentBalance)
	if err != nil {
		return err
	}

	_, err = r.queries.WithTx(pgxTx).CreateEntry(ctx, generated.CreateEntryParams{
		ID:              entry.ID,
		WalletID:        entry.WalletID,
		IdempotencyKey:  entry.IdempotencyKey,
		Amount:          amount,
		PreviousBalance: previous,
		CurrentBalance:  current,
		CreatedAt:       timeToTimestamptz(entry.CreatedAt),
	})
	return translateError(err)
}

// GetByID fetches an entry by ID.
func (r *EntryRepository) GetByID(ctx context.Context, id string) (*domain.Entry, error) {
	row, err := r.queries.GetEntryByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrEntryNotFound
		}
		return nil, translateError(err)
	}
	return rowToEntry(row)
}

// GetByIdempotencyKey fetches the entry recorded under key.
func (r *EntryRepository) GetByIdempotencyKey(ctx context.Context, key string) (*domain.Entry, error) {
	row, err := r.queries.GetEntryByIdempotencyKey(ctx, key)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrEntryNotFound
		}
		return nil, translateError(err)
	}
	return rowToEntry(row)
}

// ListByWallet fetches a wallet's entries, newest first.
func (r *EntryRepository) ListByWallet(ctx context.Context, walletID string, limit, offset int) ([]*domain.Entry, error) {
	rows, err := r.queries.GetEntriesByWallet(ctx, generated.GetEntriesByWalletParams{
		WalletID: walletID,
		Limit:    int32(limit),
		Offset:   int32(offset),
	})
	if err != nil {
		return nil, translateError(err)
	}

	entries := make([]*domain.Entry, 0, len(rows))
	for _, row := range rows {
		entry, err := rowToEntry(row)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// CountByWallet returns the total number of entries recorded for a wallet.
func (r *EntryRepository) CountByWallet(ctx context.Context, walletID string) (int64, error) {
	total, err := r.queries.CountEntriesByWallet(ctx, walletID)
	if err != nil {
		return 0, translateError(err)
	}
	return total, nil
}

// List fetches entries matching the filter.
func (r *EntryRepository) List(ctx context.Context, filter domain.EntryFilter) ([]*domain.Entry, error) {
	var (
		conds []string
		args  []any
	)
	add := func(expr string, val any) {
		args = append(args, val)
		conds = append(conds, fmt.Sprintf(expr, len(args)))
	}

	if filter.WalletID != "" {
		add("wallet_id = $%d", filter.WalletID)
	}
	if filter.IdempotencyKey != "" {
		add("idempotency_key = $%d", filter.IdempotencyKey)
	}

	query := "SELECT id, wallet_id, idempotency_key, amount, previous_balance, current_balance, created_at FROM entries"
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY " + entryOrderClause(filter.OrderBy, filter.Order)

	args = append(args, filter.Limit, filter.Offset)
	query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, translateError(err)
	}
	defer rows.Close()

	var entries []*domain.Entry
	for rows.Next() {
		var row generated.Entry
		if err := rows.Scan(
			&row.ID,
			&row.WalletID,
			&row.IdempotencyKey,
			&row.Amount,
			&row.PreviousBalance,
			&row.CurrentBalance,
			&row.CreatedAt,
		); err != nil {
			return nil, translateError(err)
		}
		entry, err := rowToEntry(row)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, translateError(err)
	}
	return entries, nil
}

func entryOrderClause(orderBy string, order domain.SortOrder) string {
	column := "created_at"
	switch orderBy {
	case domain.EntryOrderByAmount:
		column = "amount"
	case domain.EntryOrderByCreatedAt:
		column = "created_at"
	}

	direction := "DESC"
	if order == domain.SortAsc {
		direction = "ASC"
	}
	return column + " " + direction
}

func rowToEntry(row generated.Entry) (*domain.Entry, error) {
	amount, err := numericToDecimal(row.Amount)
	if err != nil {
		return nil, err
	}
	previous, err := numericToDecimal(row.PreviousBalance)
	if err != nil {
		return nil, err
	}
	current, err := numericToDecimal(row.CurrentBalance)
	if err != nil {
		return nil, err
	}
	return &domain.Entry{
		ID:              row.ID,
		WalletID:        row.WalletID,
		IdempotencyKey:  row.IdempotencyKey,
		Amount:          amount,
		PreviousBalance: previous,
		CurrentBalance:  current,
		CreatedAt:       row.CreatedAt.Time,
	}, nil
}
