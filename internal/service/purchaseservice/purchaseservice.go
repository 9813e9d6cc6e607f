package purchaseservice

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/akshatgg/E--Library-sub002/internal/domain"
	"github.com/akshatgg/E--Library-sub002/internal/gateway"
	"github.com/akshatgg/E--Library-sub002/internal/service/ledgerservice"
)

type Ledger interface {
	Append(ctx context.Context, userID int, txn *domain.Transaction) (*domain.Account, error)
	FinalizeSuccess(ctx context.Context, orderID, paymentID string) (*domain.Transaction, error)
	FinalizeFailure(ctx context.Context, orderID, errCode, errDescription string) (*domain.Transaction, error)
}

type Gateway interface {
	CreateOrder(ctx context.Context, amount int64, receipt string) (*gateway.Order, error)
	OrderPayments(ctx context.Context, orderID string) ([]gateway.Payment, error)
	VerifySignature(orderID, paymentID, signature string) bool
	KeyID() string
	Currency() string
}

var (
	ErrInvalidAmount      = errors.New("credits and amount must be positive")
	ErrPriceMismatch      = errors.New("amount does not match package price")
	ErrUnknownOrder       = errors.New("unknown order")
	ErrSignatureInvalid   = errors.New("payment signature invalid")
	ErrGatewayUnavailable = errors.New("payment gateway unavailable")
)

// CheckoutOrder carries everything the client needs to open the
// gateway's hosted checkout. The balance is untouched until the
// payment is verified.
type CheckoutOrder struct {
	OrderID  string
	Credits  int
	Amount   int64
	Currency string
	KeyID    string
}

type Service struct {
	ledger   Ledger
	gw       Gateway
	packages map[int]int64
}

func New(ledger Ledger, gw Gateway, packages map[int]int64) *Service {
	return &Service{
		ledger:   ledger,
		gw:       gw,
		packages: packages,
	}
}

// CreateOrder registers a gateway order for a credit package and
// records the pending purchase transaction keyed by the gateway order
// reference. The client-declared amount is only accepted when it
// matches the configured package price; the server stays the price
// authority. If the gateway call fails nothing is recorded.
func (s *Service) CreateOrder(ctx context.Context, userID, credits int, amount int64) (*CheckoutOrder, error) {
	if credits <= 0 || amount <= 0 {
		return nil, ErrInvalidAmount
	}
	price, ok := s.packages[credits]
	if !ok || price != amount {
		return nil, ErrPriceMismatch
	}

	order, err := s.gw.CreateOrder(ctx, price, uuid.NewString())
	if err != nil {
		zap.L().Error("gateway order creation failed", zap.Int("userID", userID), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrGatewayUnavailable, err)
	}

	txn := &domain.Transaction{
		UserID:      userID,
		TxnID:       uuid.NewString(),
		OrderID:     order.ID,
		Kind:        domain.KindPurchase,
		Delta:       int64(credits),
		Amount:      price,
		Status:      domain.StatusPending,
		Description: fmt.Sprintf("Purchase of %d credits", credits),
	}
	if _, err := s.ledger.Append(ctx, userID, txn); err != nil {
		zap.L().Error("failed to record pending purchase", zap.String("orderID", order.ID), zap.Error(err))
		return nil, err
	}

	return &CheckoutOrder{
		OrderID:  order.ID,
		Credits:  credits,
		Amount:   price,
		Currency: s.gw.Currency(),
		KeyID:    s.gw.KeyID(),
	}, nil
}

// Verify validates the callback signature and finalizes the matching
// pending transaction, crediting the balance exactly once. Repeated
// calls for an already finalized order return the existing record.
func (s *Service) Verify(ctx context.Context, orderID, paymentID, signature string) (*domain.Transaction, error) {
	if !s.gw.VerifySignature(orderID, paymentID, signature) {
		zap.L().Warn("payment signature mismatch",
			zap.String("orderID", orderID), zap.String("paymentID", paymentID))
		return nil, ErrSignatureInvalid
	}

	txn, err := s.ledger.FinalizeSuccess(ctx, orderID, paymentID)
	if err != nil {
		if errors.Is(err, ledgerservice.ErrOrderNotFound) {
			zap.L().Warn("verify callback for unknown order", zap.String("orderID", orderID))
			return nil, ErrUnknownOrder
		}
		zap.L().Error("failed to finalize verified payment", zap.String("orderID", orderID), zap.Error(err))
		return nil, err
	}
	return txn, nil
}

// ReportFailure records an explicit failure or cancellation callback.
// The transaction moves to failed with the given error and the balance
// stays unchanged. Idempotent against callback retries.
func (s *Service) ReportFailure(ctx context.Context, orderID, errCode, errDescription string) (*domain.Transaction, error) {
	txn, err := s.ledger.FinalizeFailure(ctx, orderID, errCode, errDescription)
	if err != nil {
		if errors.Is(err, ledgerservice.ErrOrderNotFound) {
			zap.L().Warn("failure callback for unknown order", zap.String("orderID", orderID))
			return nil, ErrUnknownOrder
		}
		zap.L().Error("failed to record payment failure", zap.String("orderID", orderID), zap.Error(err))
		return nil, err
	}
	return txn, nil
}
