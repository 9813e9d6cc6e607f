package txnrepo

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/akshatgg/E--Library-sub002/internal/domain"
	"github.com/akshatgg/E--Library-sub002/internal/pg"
)

const txnColumns = `id, user_id, txn_id, order_id, kind, delta, amount, status, description, error_code, error_description, created_at, finalized_at`

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, txn *domain.Transaction) (*domain.Transaction, error) {
	query := `
        INSERT INTO transactions (user_id, txn_id, order_id, kind, delta, amount, status, description, finalized_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
        RETURNING ` + txnColumns
	row := r.db.QueryRow(ctx, query,
		txn.UserID, txn.TxnID, txn.OrderID, txn.Kind, txn.Delta, txn.Amount, txn.Status, txn.Description, txn.FinalizedAt)
	created, err := scanTxn(row)
	if err != nil {
		zap.L().Error("failed to create transaction", zap.Error(err))
		return nil, err
	}
	return created, nil
}

func (r *Repository) GetByOrderID(ctx context.Context, orderID string) (*domain.Transaction, error) {
	query := `
        SELECT ` + txnColumns + `
        FROM transactions
        WHERE order_id = $1
    `
	txn, err := scanTxn(r.db.QueryRow(ctx, query, orderID))
	if err != nil {
		zap.L().Error("failed to get transaction by order id", zap.Error(err))
		return nil, err
	}
	return txn, nil
}

// GetByOrderIDForUpdate locks the transaction row so that concurrent
// finalizations of the same order serialize on it.
func (r *Repository) GetByOrderIDForUpdate(ctx context.Context, orderID string) (*domain.Transaction, error) {
	query := `
        SELECT ` + txnColumns + `
        FROM transactions
        WHERE order_id = $1
        FOR UPDATE
    `
	txn, err := scanTxn(r.db.QueryRow(ctx, query, orderID))
	if err != nil {
		zap.L().Error("failed to lock transaction by order id", zap.Error(err))
		return nil, err
	}
	return txn, nil
}

func (r *Repository) Finalize(ctx context.Context, txn *domain.Transaction) (*domain.Transaction, error) {
	query := `
        UPDATE transactions
        SET txn_id = $1, status = $2, error_code = $3, error_description = $4, finalized_at = $5
        WHERE id = $6
        RETURNING ` + txnColumns
	row := r.db.QueryRow(ctx, query,
		txn.TxnID, txn.Status, txn.ErrorCode, txn.ErrorDescription, txn.FinalizedAt, txn.ID)
	updated, err := scanTxn(row)
	if err != nil {
		zap.L().Error("failed to finalize transaction", zap.Error(err))
		return nil, err
	}
	return updated, nil
}

func (r *Repository) ListByUserID(ctx context.Context, userID int, limit, offset int) ([]domain.Transaction, error) {
	query := `
        SELECT ` + txnColumns + `
        FROM transactions
        WHERE user_id = $1
        ORDER BY created_at DESC
        LIMIT $2 OFFSET $3
    `
	rows, err := r.db.Query(ctx, query, userID, limit, offset)
	if err != nil {
		zap.L().Error("failed to list transactions", zap.Error(err))
		return nil, err
	}
	defer rows.Close()
	return collectTxns(rows)
}

// FindPendingBefore returns pending purchase transactions created before
// cutoff, oldest first. Used by the reconciliation sweep.
func (r *Repository) FindPendingBefore(ctx context.Context, cutoff time.Time, limit uint32) ([]domain.Transaction, error) {
	query := `
        SELECT ` + txnColumns + `
        FROM transactions
        WHERE status = $1 AND kind = $2 AND created_at < $3
        ORDER BY created_at ASC
        LIMIT $4
    `
	rows, err := r.db.Query(ctx, query, domain.StatusPending, domain.KindPurchase, cutoff, int(limit))
	if err != nil {
		zap.L().Error("failed to find pending transactions", zap.Error(err))
		return nil, err
	}
	defer rows.Close()
	return collectTxns(rows)
}

func scanTxn(row pgx.Row) (*domain.Transaction, error) {
	var txn domain.Transaction
	err := row.Scan(&txn.ID, &txn.UserID, &txn.TxnID, &txn.OrderID, &txn.Kind, &txn.Delta, &txn.Amount,
		&txn.Status, &txn.Description, &txn.ErrorCode, &txn.ErrorDescription, &txn.CreatedAt, &txn.FinalizedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &txn, nil
}

func collectTxns(rows pgx.Rows) ([]domain.Transaction, error) {
	var txns []domain.Transaction
	for rows.Next() {
		var txn domain.Transaction
		err := rows.Scan(&txn.ID, &txn.UserID, &txn.TxnID, &txn.OrderID, &txn.Kind, &txn.Delta, &txn.Amount,
			&txn.Status, &txn.Description, &txn.ErrorCode, &txn.ErrorDescription, &txn.CreatedAt, &txn.FinalizedAt)
		if err != nil {
			zap.L().Error("failed to scan transaction row", zap.Error(err))
			return nil, err
		}
		txns = append(txns, txn)
	}
	return txns, nil
}
