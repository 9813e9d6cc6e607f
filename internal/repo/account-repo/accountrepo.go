package accountrepo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/akshatgg/E--Library-sub002/internal/domain"
	"github.com/akshatgg/E--Library-sub002/internal/pg"
)

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{db: db}
}

func (r *Repository) GetByUserID(ctx context.Context, userID int) (*domain.Account, error) {
	query := `
        SELECT id, user_id, balance, created_at, updated_at
        FROM accounts
        WHERE user_id = $1
    `
	return r.scanAccount(r.db.QueryRow(ctx, query, userID))
}

// GetForUpdate locks the account row for the duration of the surrounding
// transaction. It is the serialization point for all balance changes of
// one user; accounts of other users stay unlocked.
func (r *Repository) GetForUpdate(ctx context.Context, userID int) (*domain.Account, error) {
	query := `
        SELECT id, user_id, balance, created_at, updated_at
        FROM accounts
        WHERE user_id = $1
        FOR UPDATE
    `
	return r.scanAccount(r.db.QueryRow(ctx, query, userID))
}

// Create provisions the account with a zero balance. Concurrent first
// touches are safe: the loser's insert hits the conflict clause and
// returns nil so the caller can lock the winner's row instead.
func (r *Repository) Create(ctx context.Context, userID int) (*domain.Account, error) {
	query := `
        INSERT INTO accounts (user_id, balance)
        VALUES ($1, 0)
        ON CONFLICT (user_id) DO NOTHING
        RETURNING id, user_id, balance, created_at, updated_at
    `
	account, err := r.scanAccount(r.db.QueryRow(ctx, query, userID))
	if err != nil {
		zap.L().Error("failed to create account", zap.Error(err))
		return nil, err
	}
	return account, nil
}

func (r *Repository) UpdateBalance(ctx context.Context, userID int, balance int64) (*domain.Account, error) {
	query := `
        UPDATE accounts
        SET balance = $1, updated_at = now()
        WHERE user_id = $2
        RETURNING id, user_id, balance, created_at, updated_at
    `
	account, err := r.scanAccount(r.db.QueryRow(ctx, query, balance, userID))
	if err != nil {
		zap.L().Error("failed to update account balance", zap.Error(err))
		return nil, err
	}
	return account, nil
}

func (r *Repository) scanAccount(row pgx.Row) (*domain.Account, error) {
	var account domain.Account
	err := row.Scan(&account.ID, &account.UserID, &account.Balance, &account.CreatedAt, &account.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &account, nil
}
