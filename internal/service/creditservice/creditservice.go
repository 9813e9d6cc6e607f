package creditservice

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/akshatgg/E--Library-sub002/internal/domain"
)

type Ledger interface {
	GetBalance(ctx context.Context, userID int) (int64, error)
	Append(ctx context.Context, userID int, txn *domain.Transaction) (*domain.Account, error)
	ListTransactions(ctx context.Context, userID, page int) ([]domain.Transaction, error)
}

var (
	ErrInvalidAmount = errors.New("amount must be positive")
)

// Service debits credits for features (search, document view, download,
// form generation). A spend has no external dependency, so it is
// created and finalized in a single step.
type Service struct {
	ledger Ledger
}

func New(ledger Ledger) *Service {
	return &Service{ledger: ledger}
}

func (s *Service) GetBalance(ctx context.Context, userID int) (int64, error) {
	return s.ledger.GetBalance(ctx, userID)
}

// Spend atomically debits amount credits if the balance covers it.
// Non-positive amounts are rejected before the ledger is touched.
// The ledger rejects a debit past zero with InsufficientCreditsError
// and records nothing.
func (s *Service) Spend(ctx context.Context, userID int, amount int64, description string) (*domain.Transaction, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}

	now := time.Now()
	txn := &domain.Transaction{
		UserID:      userID,
		TxnID:       uuid.NewString(),
		OrderID:     uuid.NewString(),
		Kind:        domain.KindSpend,
		Delta:       -amount,
		Amount:      0,
		Status:      domain.StatusSuccess,
		Description: description,
		FinalizedAt: &now,
	}

	if _, err := s.ledger.Append(ctx, userID, txn); err != nil {
		zap.L().Error("failed to spend credits", zap.Int("userID", userID), zap.Int64("amount", amount), zap.Error(err))
		return nil, err
	}
	return txn, nil
}

func (s *Service) GetTransactions(ctx context.Context, userID, page int) ([]domain.Transaction, error) {
	return s.ledger.ListTransactions(ctx, userID, page)
}
