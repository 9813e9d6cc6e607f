package txnrepo

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"

	"github.com/akshatgg/E--Library-sub002/internal/domain"
)

var txnTestColumns = []string{
	"id", "user_id", "txn_id", "order_id", "kind", "delta", "amount",
	"status", "description", "error_code", "error_description", "created_at", "finalized_at",
}

func NewMock(t *testing.T) (*Repository, pgxmock.PgxPoolIface) {
	mockDB, err := pgxmock.NewPool()
	assert.NoError(t, err)
	repo := New(mockDB)
	defer mockDB.Close()

	return repo, mockDB
}

func pendingRow(now time.Time) *pgxmock.Rows {
	return pgxmock.NewRows(txnTestColumns).AddRow(
		1, 1, "", "order_1", domain.KindPurchase, int64(100), int64(899),
		domain.StatusPending, "Purchase of 100 credits", (*string)(nil), (*string)(nil), now, (*time.Time)(nil),
	)
}

func TestRepository_Create(t *testing.T) {
	repo, mock := NewMock(t)
	now := time.Now()

	txn := &domain.Transaction{
		UserID:      1,
		OrderID:     "order_1",
		Kind:        domain.KindPurchase,
		Delta:       100,
		Amount:      899,
		Status:      domain.StatusPending,
		Description: "Purchase of 100 credits",
	}

	tests := []struct {
		name      string
		mockSetup func()
		expectErr bool
	}{
		{
			name: "Successfully creates transaction",
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(`
        INSERT INTO transactions (user_id, txn_id, order_id, kind, delta, amount, status, description, finalized_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
        RETURNING `+txnColumns)).
					WithArgs(txn.UserID, txn.TxnID, txn.OrderID, txn.Kind, txn.Delta, txn.Amount, txn.Status, txn.Description, txn.FinalizedAt).
					WillReturnRows(pendingRow(now))
			},
			expectErr: false,
		},
		{
			name: "Database error",
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(`
        INSERT INTO transactions (user_id, txn_id, order_id, kind, delta, amount, status, description, finalized_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
        RETURNING `+txnColumns)).
					WithArgs(txn.UserID, txn.TxnID, txn.OrderID, txn.Kind, txn.Delta, txn.Amount, txn.Status, txn.Description, txn.FinalizedAt).
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			result, err := repo.Create(context.Background(), txn)

			if tt.expectErr {
				assert.Error(t, err)
				assert.Nil(t, result)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, 1, result.ID)
				assert.Equal(t, "order_1", result.OrderID)
				assert.Equal(t, domain.StatusPending, result.Status)
			}
		})
	}
}

func TestRepository_GetByOrderID(t *testing.T) {
	repo, mock := NewMock(t)
	now := time.Now()

	tests := []struct {
		name      string
		orderID   string
		mockSetup func()
		expectErr bool
		found     bool
	}{
		{
			name:    "Existing order",
			orderID: "order_1",
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT ` + txnColumns + `
        FROM transactions
        WHERE order_id = $1`)).
					WithArgs("order_1").
					WillReturnRows(pendingRow(now))
			},
			found: true,
		},
		{
			name:    "Unknown order returns nil",
			orderID: "order_missing",
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT ` + txnColumns + `
        FROM transactions
        WHERE order_id = $1`)).
					WithArgs("order_missing").
					WillReturnError(pgx.ErrNoRows)
			},
			found: false,
		},
		{
			name:    "Database error",
			orderID: "order_1",
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT ` + txnColumns + `
        FROM transactions
        WHERE order_id = $1`)).
					WithArgs("order_1").
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			result, err := repo.GetByOrderID(context.Background(), tt.orderID)

			if tt.expectErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			if tt.found {
				assert.NotNil(t, result)
				assert.Equal(t, tt.orderID, result.OrderID)
			} else {
				assert.Nil(t, result)
			}
		})
	}
}

func TestRepository_GetByOrderIDForUpdate(t *testing.T) {
	repo, mock := NewMock(t)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT ` + txnColumns + `
        FROM transactions
        WHERE order_id = $1
        FOR UPDATE`)).
		WithArgs("order_1").
		WillReturnRows(pendingRow(now))

	result, err := repo.GetByOrderIDForUpdate(context.Background(), "order_1")
	assert.NoError(t, err)
	assert.NotNil(t, result)
	assert.Equal(t, "order_1", result.OrderID)
}

func TestRepository_Finalize(t *testing.T) {
	repo, mock := NewMock(t)
	now := time.Now()

	txn := &domain.Transaction{
		ID:          1,
		UserID:      1,
		TxnID:       "pay_1",
		OrderID:     "order_1",
		Kind:        domain.KindPurchase,
		Delta:       100,
		Amount:      899,
		Status:      domain.StatusSuccess,
		Description: "Purchase of 100 credits",
		FinalizedAt: &now,
	}

	tests := []struct {
		name      string
		mockSetup func()
		expectErr bool
	}{
		{
			name: "Successfully finalizes transaction",
			mockSetup: func() {
				rows := pgxmock.NewRows(txnTestColumns).AddRow(
					1, 1, "pay_1", "order_1", domain.KindPurchase, int64(100), int64(899),
					domain.StatusSuccess, "Purchase of 100 credits", (*string)(nil), (*string)(nil), now, &now,
				)
				mock.ExpectQuery(regexp.QuoteMeta(`
        UPDATE transactions
        SET txn_id = $1, status = $2, error_code = $3, error_description = $4, finalized_at = $5
        WHERE id = $6
        RETURNING `+txnColumns)).
					WithArgs(txn.TxnID, txn.Status, txn.ErrorCode, txn.ErrorDescription, txn.FinalizedAt, txn.ID).
					WillReturnRows(rows)
			},
		},
		{
			name: "Database error",
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(`
        UPDATE transactions
        SET txn_id = $1, status = $2, error_code = $3, error_description = $4, finalized_at = $5
        WHERE id = $6
        RETURNING `+txnColumns)).
					WithArgs(txn.TxnID, txn.Status, txn.ErrorCode, txn.ErrorDescription, txn.FinalizedAt, txn.ID).
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			result, err := repo.Finalize(context.Background(), txn)

			if tt.expectErr {
				assert.Error(t, err)
				assert.Nil(t, result)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, domain.StatusSuccess, result.Status)
				assert.Equal(t, "pay_1", result.TxnID)
			}
		})
	}
}

func TestRepository_ListByUserID(t *testing.T) {
	repo, mock := NewMock(t)
	now := time.Now()

	tests := []struct {
		name      string
		mockSetup func()
		expectErr bool
		count     int
	}{
		{
			name: "Returns transactions newest first",
			mockSetup: func() {
				rows := pgxmock.NewRows(txnTestColumns).
					AddRow(2, 1, "txn_2", "order_2", domain.KindSpend, int64(-10), int64(0),
						domain.StatusSuccess, "Document download", (*string)(nil), (*string)(nil), now, &now).
					AddRow(1, 1, "pay_1", "order_1", domain.KindPurchase, int64(100), int64(899),
						domain.StatusSuccess, "Purchase of 100 credits", (*string)(nil), (*string)(nil), now.Add(-time.Hour), &now)
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT ` + txnColumns + `
        FROM transactions
        WHERE user_id = $1
        ORDER BY created_at DESC
        LIMIT $2 OFFSET $3`)).
					WithArgs(1, 20, 0).
					WillReturnRows(rows)
			},
			count: 2,
		},
		{
			name: "Empty history",
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT ` + txnColumns + `
        FROM transactions
        WHERE user_id = $1
        ORDER BY created_at DESC
        LIMIT $2 OFFSET $3`)).
					WithArgs(1, 20, 0).
					WillReturnRows(pgxmock.NewRows(txnTestColumns))
			},
			count: 0,
		},
		{
			name: "Database error",
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT ` + txnColumns + `
        FROM transactions
        WHERE user_id = $1
        ORDER BY created_at DESC
        LIMIT $2 OFFSET $3`)).
					WithArgs(1, 20, 0).
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			result, err := repo.ListByUserID(context.Background(), 1, 20, 0)

			if tt.expectErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Len(t, result, tt.count)
		})
	}
}

func TestRepository_FindPendingBefore(t *testing.T) {
	repo, mock := NewMock(t)
	now := time.Now()
	cutoff := now.Add(-5 * time.Minute)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT ` + txnColumns + `
        FROM transactions
        WHERE status = $1 AND kind = $2 AND created_at < $3
        ORDER BY created_at ASC
        LIMIT $4`)).
		WithArgs(domain.StatusPending, domain.KindPurchase, cutoff, 1000).
		WillReturnRows(pendingRow(now.Add(-time.Hour)))

	result, err := repo.FindPendingBefore(context.Background(), cutoff, 1000)
	assert.NoError(t, err)
	assert.Len(t, result, 1)
	assert.Equal(t, domain.StatusPending, result[0].Status)
}
