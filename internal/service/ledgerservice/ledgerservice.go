package ledgerservice

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/akshatgg/E--Library-sub002/internal/domain"
	"github.com/akshatgg/E--Library-sub002/internal/pg"
)

const pageSize = 20

type AccountRepo interface {
	GetByUserID(ctx context.Context, userID int) (*domain.Account, error)
	GetForUpdate(ctx context.Context, userID int) (*domain.Account, error)
	Create(ctx context.Context, userID int) (*domain.Account, error)
	UpdateBalance(ctx context.Context, userID int, balance int64) (*domain.Account, error)
}

type TxnRepo interface {
	Create(ctx context.Context, txn *domain.Transaction) (*domain.Transaction, error)
	GetByOrderID(ctx context.Context, orderID string) (*domain.Transaction, error)
	GetByOrderIDForUpdate(ctx context.Context, orderID string) (*domain.Transaction, error)
	Finalize(ctx context.Context, txn *domain.Transaction) (*domain.Transaction, error)
	ListByUserID(ctx context.Context, userID int, limit, offset int) ([]domain.Transaction, error)
	FindPendingBefore(ctx context.Context, cutoff time.Time, limit uint32) ([]domain.Transaction, error)
}

var (
	ErrOrderNotFound = errors.New("no transaction for order")
)

// InsufficientCreditsError reports a debit that would take the balance
// below zero.
type InsufficientCreditsError struct {
	Have int64
	Need int64
}

func (e *InsufficientCreditsError) Error() string {
	return fmt.Sprintf("insufficient credits: have %d, need %d", e.Have, e.Need)
}

// Service is the single source of truth for balances. Every balance
// change goes through Append or Finalize inside one database
// transaction with the matching transaction record, so the invariant
// balance == sum(delta of success transactions) holds by construction.
type Service struct {
	accountRepo AccountRepo
	txnRepo     TxnRepo
	txManager   pg.TXManager
}

func New(accountRepo AccountRepo, txnRepo TxnRepo, txManager pg.TXManager) *Service {
	return &Service{
		accountRepo: accountRepo,
		txnRepo:     txnRepo,
		txManager:   txManager,
	}
}

// GetBalance returns the current balance. A user the ledger has never
// seen reads as zero; the account row is provisioned on first Append.
func (s *Service) GetBalance(ctx context.Context, userID int) (int64, error) {
	account, err := s.accountRepo.GetByUserID(ctx, userID)
	if err != nil {
		zap.L().Error("failed to get account", zap.Error(err))
		return 0, err
	}
	if account == nil {
		return 0, nil
	}
	return account.Balance, nil
}

// Append records a new transaction and, when it is already successful,
// applies its delta to the balance in the same database transaction.
// A delta that would drive the balance negative is rejected with
// InsufficientCreditsError and nothing is written.
func (s *Service) Append(ctx context.Context, userID int, txn *domain.Transaction) (*domain.Account, error) {
	var account *domain.Account
	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		var err error
		account, err = s.lockOrCreate(ctx, userID)
		if err != nil {
			return err
		}

		if txn.Status == domain.StatusSuccess {
			newBalance := account.Balance + txn.Delta
			if newBalance < 0 {
				return &InsufficientCreditsError{Have: account.Balance, Need: -txn.Delta}
			}
			account, err = s.accountRepo.UpdateBalance(ctx, userID, newBalance)
			if err != nil {
				return err
			}
		}

		created, err := s.txnRepo.Create(ctx, txn)
		if err != nil {
			return err
		}
		*txn = *created
		return nil
	})
	if err != nil {
		return nil, err
	}
	return account, nil
}

// FinalizeSuccess moves the pending transaction for orderID to success,
// stamps the gateway payment reference and credits the balance, all in
// one database transaction. A transaction already in a terminal state
// is returned unchanged, so repeated calls never credit twice. If the
// balance write fails the status stays pending and a retry is possible.
func (s *Service) FinalizeSuccess(ctx context.Context, orderID, paymentID string) (*domain.Transaction, error) {
	var result *domain.Transaction
	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		txn, err := s.txnRepo.GetByOrderIDForUpdate(ctx, orderID)
		if err != nil {
			return err
		}
		if txn == nil {
			return ErrOrderNotFound
		}
		if txn.Terminal() {
			result = txn
			return nil
		}

		account, err := s.lockOrCreate(ctx, txn.UserID)
		if err != nil {
			return err
		}
		if _, err := s.accountRepo.UpdateBalance(ctx, txn.UserID, account.Balance+txn.Delta); err != nil {
			return err
		}

		now := time.Now()
		txn.TxnID = paymentID
		txn.Status = domain.StatusSuccess
		txn.FinalizedAt = &now
		result, err = s.txnRepo.Finalize(ctx, txn)
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// FinalizeFailure moves the pending transaction for orderID to failed
// with the given error detail. The balance is untouched. Idempotent
// against repeated failure callbacks.
func (s *Service) FinalizeFailure(ctx context.Context, orderID, errCode, errDescription string) (*domain.Transaction, error) {
	var result *domain.Transaction
	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		txn, err := s.txnRepo.GetByOrderIDForUpdate(ctx, orderID)
		if err != nil {
			return err
		}
		if txn == nil {
			return ErrOrderNotFound
		}
		if txn.Terminal() {
			result = txn
			return nil
		}

		now := time.Now()
		txn.Status = domain.StatusFailed
		txn.ErrorCode = &errCode
		txn.ErrorDescription = &errDescription
		txn.FinalizedAt = &now
		result, err = s.txnRepo.Finalize(ctx, txn)
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *Service) ListTransactions(ctx context.Context, userID, page int) ([]domain.Transaction, error) {
	if page < 1 {
		page = 1
	}
	txns, err := s.txnRepo.ListByUserID(ctx, userID, pageSize, (page-1)*pageSize)
	if err != nil {
		zap.L().Error("failed to list transactions", zap.Error(err))
		return nil, err
	}
	return txns, nil
}

// lockOrCreate takes the row lock on the user's account, provisioning
// it with balance 0 on first touch. Two concurrent first touches both
// pass the empty FOR UPDATE select; the insert's conflict clause makes
// the loser come back with nil, after which the winner's committed row
// is locked like any other.
func (s *Service) lockOrCreate(ctx context.Context, userID int) (*domain.Account, error) {
	account, err := s.accountRepo.GetForUpdate(ctx, userID)
	if err != nil || account != nil {
		return account, err
	}

	account, err = s.accountRepo.Create(ctx, userID)
	if err != nil {
		return nil, err
	}
	if account != nil {
		return account, nil
	}

	account, err = s.accountRepo.GetForUpdate(ctx, userID)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, fmt.Errorf("account provisioning raced for user %d", userID)
	}
	return account, nil
}
