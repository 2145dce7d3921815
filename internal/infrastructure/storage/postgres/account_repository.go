package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/exp/slog"

	"scanpass/internal/domain/scan"
)

func NewAccountRepository(pool *pgxpool.Pool, log *slog.Logger) *AccountRepository {
	return &AccountRepository{
		pool: pool,
		log:  log.With("component", "account_repository"),
	}
}

// AccountRepository хранит учетные записи, созданные сканированием
type AccountRepository struct {
	pool *pgxpool.Pool
	log  *slog.Logger
}

// Save сохраняет учетную запись. Повтор с тем же account_id игнорируется.
func (r *AccountRepository) Save(ctx context.Context, res scan.Result, requestID string) error {
	createdAt, err := time.Parse(scan.TimestampLayout, res.Timestamp)
	if err != nil {
		return fmt.Errorf("parse timestamp %q: %w", res.Timestamp, err)
	}

	tag, err := r.pool.Exec(ctx,
		`INSERT INTO accounts (account_id, name, email, created_at, request_id)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (account_id) DO NOTHING`,
		res.AccountID, res.Name, res.Email, createdAt.UTC(), requestID)
	if err != nil {
		return fmt.Errorf("insert account: %w", err)
	}
	if tag.RowsAffected() == 0 {
		r.log.Warn("account already recorded", "account_id", res.AccountID, "request_id", requestID)
	}
	return nil
}

// Count возвращает число сохраненных учетных записей
func (r *AccountRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM accounts`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count accounts: %w", err)
	}
	return n, nil
}
