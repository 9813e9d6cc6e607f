package accountrepo

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

var accountColumns = []string{"id", "user_id", "balance", "created_at", "updated_at"}

func NewMock(t *testing.T) (*Repository, pgxmock.PgxPoolIface) {
	mockDB, err := pgxmock.NewPool()
	assert.NoError(t, err)
	repo := New(mockDB)
	defer mockDB.Close()

	return repo, mockDB
}

func TestRepository_GetByUserID(t *testing.T) {
	repo, mock := NewMock(t)
	now := time.Now()

	tests := []struct {
		name      string
		userID    int
		mockSetup func()
		expectErr bool
		result    *domain.Account
	}{
		{
			name:   "Existing account returns balance",
			userID: 1,
			mockSetup: func() {
				rows := pgxmock.NewRows(accountColumns).AddRow(1, 1, int64(100), now, now)
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, user_id, balance, created_at, updated_at
        FROM accounts
        WHERE user_id = $1`)).
					WithArgs(1).
					WillReturnRows(rows)
			},
			expectErr: false,
			result: &domain.Account{
				ID:        1,
				UserID:    1,
				Balance:   100,
				CreatedAt: now,
				UpdatedAt: now,
			},
		},
		{
			name:   "Unknown user returns nil",
			userID: 99,
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, user_id, balance, created_at, updated_at
        FROM accounts
        WHERE user_id = $1`)).
					WithArgs(99).
					WillReturnError(pgx.ErrNoRows)
			},
			expectErr: false,
			result:    nil,
		},
		{
			name:   "Database error",
			userID: 1,
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, user_id, balance, created_at, updated_at
        FROM accounts
        WHERE user_id = $1`)).
					WithArgs(1).
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
			result:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			result, err := repo.GetByUserID(context.Background(), tt.userID)

			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.result, result)
		})
	}
}

func TestRepository_GetForUpdate(t *testing.T) {
	repo, mock := NewMock(t)
	now := time.Now()

	tests := []struct {
		name      string
		userID    int
		mockSetup func()
		expectErr bool
		result    *domain.Account
	}{
		{
			name:   "Locks and returns account",
			userID: 1,
			mockSetup: func() {
				rows := pgxmock.NewRows(accountColumns).AddRow(1, 1, int64(50), now, now)
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, user_id, balance, created_at, updated_at
        FROM accounts
        WHERE user_id = $1
        FOR UPDATE`)).
					WithArgs(1).
					WillReturnRows(rows)
			},
			expectErr: false,
			result: &domain.Account{
				ID:        1,
				UserID:    1,
				Balance:   50,
				CreatedAt: now,
				UpdatedAt: now,
			},
		},
		{
			name:   "Missing account returns nil",
			userID: 7,
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, user_id, balance, created_at, updated_at
        FROM accounts
        WHERE user_id = $1
        FOR UPDATE`)).
					WithArgs(7).
					WillReturnError(pgx.ErrNoRows)
			},
			expectErr: false,
			result:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			result, err := repo.GetForUpdate(context.Background(), tt.userID)

			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.result, result)
		})
	}
}

func TestRepository_Create(t *testing.T) {
	repo, mock := NewMock(t)
	now := time.Now()

	tests := []struct {
		name      string
		userID    int
		mockSetup func()
		expectErr bool
		result    *domain.Account
	}{
		{
			name:   "Successfully creates account",
			userID: 1,
			mockSetup: func() {
				rows := pgxmock.NewRows(accountColumns).AddRow(1, 1, int64(0), now, now)
				mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO accounts (user_id, balance)
        VALUES ($1, 0)
        ON CONFLICT (user_id) DO NOTHING
        RETURNING id, user_id, balance, created_at, updated_at`)).
					WithArgs(1).
					WillReturnRows(rows)
			},
			expectErr: false,
			result: &domain.Account{
				ID:        1,
				UserID:    1,
				Balance:   0,
				CreatedAt: now,
				UpdatedAt: now,
			},
		},
		{
			name:   "Lost insert race returns nil",
			userID: 2,
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO accounts (user_id, balance)
        VALUES ($1, 0)
        ON CONFLICT (user_id) DO NOTHING
        RETURNING id, user_id, balance, created_at, updated_at`)).
					WithArgs(2).
					WillReturnError(pgx.ErrNoRows)
			},
			expectErr: false,
			result:    nil,
		},
		{
			name:   "Database error",
			userID: 1,
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO accounts (user_id, balance)
        VALUES ($1, 0)
        ON CONFLICT (user_id) DO NOTHING
        RETURNING id, user_id, balance, created_at, updated_at`)).
					WithArgs(1).
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
			result:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			result, err := repo.Create(context.Background(), tt.userID)

			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.result, result)
		})
	}
}

func TestRepository_UpdateBalance(t *testing.T) {
	repo, mock := NewMock(t)
	now := time.Now()

	tests := []struct {
		name      string
		userID    int
		balance   int64
		mockSetup func()
		expectErr bool
		result    *domain.Account
	}{
		{
			name:    "Successfully updates balance",
			userID:  1,
			balance: 200,
			mockSetup: func() {
				rows := pgxmock.NewRows(accountColumns).AddRow(1, 1, int64(200), now, now)
				mock.ExpectQuery(regexp.QuoteMeta(`UPDATE accounts
        SET balance = $1, updated_at = now()
        WHERE user_id = $2
        RETURNING id, user_id, balance, created_at, updated_at`)).
					WithArgs(int64(200), 1).
					WillReturnRows(rows)
			},
			expectErr: false,
			result: &domain.Account{
				ID:        1,
				UserID:    1,
				Balance:   200,
				CreatedAt: now,
				UpdatedAt: now,
			},
		},
		{
			name:    "Database error",
			userID:  1,
			balance: 200,
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(`UPDATE accounts
        SET balance = $1, updated_at = now()
        WHERE user_id = $2
        RETURNING id, user_id, balance, created_at, updated_at`)).
					WithArgs(int64(200), 1).
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
			result:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			result, err := repo.UpdateBalance(context.Background(), tt.userID, tt.balance)

			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.result, result)
		})
	}
}
