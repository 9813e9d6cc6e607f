package purchaseservice

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/akshatgg/E--Library-sub002/internal/domain"
	"github.com/akshatgg/E--Library-sub002/internal/gateway"
	"github.com/akshatgg/E--Library-sub002/internal/service/ledgerservice"
)

var testPackages = map[int]int64{
	100: 899,
	250: 1999,
	500: 3499,
}

func setupMocks(t *testing.T) (*MockLedger, *MockGateway, *Service) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	ledger := NewMockLedger(ctrl)
	gw := NewMockGateway(ctrl)
	service := New(ledger, gw, testPackages)

	return ledger, gw, service
}

func TestService_CreateOrder(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name        string
		credits     int
		amount      int64
		mockSetup   func(ledger *MockLedger, gw *MockGateway)
		expectedErr error
	}{
		{
			name:    "Successfully creates checkout order",
			credits: 100,
			amount:  899,
			mockSetup: func(ledger *MockLedger, gw *MockGateway) {
				gw.EXPECT().CreateOrder(ctx, int64(899), gomock.Any()).
					Return(&gateway.Order{ID: "order_1", Amount: 899, Currency: "INR", Status: "created"}, nil)
				ledger.EXPECT().Append(ctx, 1, gomock.Any()).DoAndReturn(
					func(_ context.Context, userID int, txn *domain.Transaction) (*domain.Account, error) {
						assert.Equal(t, "order_1", txn.OrderID)
						assert.Equal(t, domain.KindPurchase, txn.Kind)
						assert.Equal(t, int64(100), txn.Delta)
						assert.Equal(t, int64(899), txn.Amount)
						assert.Equal(t, domain.StatusPending, txn.Status)
						assert.Equal(t, "Purchase of 100 credits", txn.Description)
						return &domain.Account{UserID: userID}, nil
					},
				)
				gw.EXPECT().Currency().Return("INR")
				gw.EXPECT().KeyID().Return("rzp_test_key")
			},
		},
		{
			name:        "Zero credits",
			credits:     0,
			amount:      899,
			mockSetup:   func(ledger *MockLedger, gw *MockGateway) {},
			expectedErr: ErrInvalidAmount,
		},
		{
			name:        "Negative amount",
			credits:     100,
			amount:      -1,
			mockSetup:   func(ledger *MockLedger, gw *MockGateway) {},
			expectedErr: ErrInvalidAmount,
		},
		{
			name:        "Unknown package",
			credits:     333,
			amount:      899,
			mockSetup:   func(ledger *MockLedger, gw *MockGateway) {},
			expectedErr: ErrPriceMismatch,
		},
		{
			name:        "Tampered price",
			credits:     100,
			amount:      1,
			mockSetup:   func(ledger *MockLedger, gw *MockGateway) {},
			expectedErr: ErrPriceMismatch,
		},
		{
			name:    "Gateway down records nothing",
			credits: 100,
			amount:  899,
			mockSetup: func(ledger *MockLedger, gw *MockGateway) {
				gw.EXPECT().CreateOrder(ctx, int64(899), gomock.Any()).
					Return(nil, errors.New("connection refused"))
			},
			expectedErr: ErrGatewayUnavailable,
		},
		{
			name:    "Ledger append failure",
			credits: 100,
			amount:  899,
			mockSetup: func(ledger *MockLedger, gw *MockGateway) {
				gw.EXPECT().CreateOrder(ctx, int64(899), gomock.Any()).
					Return(&gateway.Order{ID: "order_1"}, nil)
				ledger.EXPECT().Append(ctx, 1, gomock.Any()).Return(nil, errors.New("database error"))
			},
			expectedErr: errors.New("database error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ledger, gw, service := setupMocks(t)
			tt.mockSetup(ledger, gw)

			order, err := service.CreateOrder(ctx, 1, tt.credits, tt.amount)

			if tt.expectedErr != nil {
				assert.Error(t, err)
				assert.Nil(t, order)
				if errors.Is(tt.expectedErr, ErrInvalidAmount) ||
					errors.Is(tt.expectedErr, ErrPriceMismatch) ||
					errors.Is(tt.expectedErr, ErrGatewayUnavailable) {
					assert.ErrorIs(t, err, tt.expectedErr)
				}
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, "order_1", order.OrderID)
			assert.Equal(t, 100, order.Credits)
			assert.Equal(t, int64(899), order.Amount)
			assert.Equal(t, "INR", order.Currency)
			assert.Equal(t, "rzp_test_key", order.KeyID)
		})
	}
}

func TestService_Verify(t *testing.T) {
	ctx := context.Background()
	now := time.Now()

	success := &domain.Transaction{
		ID:          1,
		UserID:      1,
		TxnID:       "pay_1",
		OrderID:     "order_1",
		Kind:        domain.KindPurchase,
		Delta:       100,
		Amount:      899,
		Status:      domain.StatusSuccess,
		FinalizedAt: &now,
	}

	tests := []struct {
		name        string
		mockSetup   func(ledger *MockLedger, gw *MockGateway)
		expectedErr error
	}{
		{
			name: "Valid signature credits the account",
			mockSetup: func(ledger *MockLedger, gw *MockGateway) {
				gw.EXPECT().VerifySignature("order_1", "pay_1", "sig").Return(true)
				ledger.EXPECT().FinalizeSuccess(ctx, "order_1", "pay_1").Return(success, nil)
			},
		},
		{
			name: "Repeated verification returns the finalized record",
			mockSetup: func(ledger *MockLedger, gw *MockGateway) {
				gw.EXPECT().VerifySignature("order_1", "pay_1", "sig").Return(true)
				ledger.EXPECT().FinalizeSuccess(ctx, "order_1", "pay_1").Return(success, nil)
			},
		},
		{
			name: "Invalid signature never reaches the ledger",
			mockSetup: func(ledger *MockLedger, gw *MockGateway) {
				gw.EXPECT().VerifySignature("order_1", "pay_1", "sig").Return(false)
			},
			expectedErr: ErrSignatureInvalid,
		},
		{
			name: "Unknown order",
			mockSetup: func(ledger *MockLedger, gw *MockGateway) {
				gw.EXPECT().VerifySignature("order_1", "pay_1", "sig").Return(true)
				ledger.EXPECT().FinalizeSuccess(ctx, "order_1", "pay_1").
					Return(nil, ledgerservice.ErrOrderNotFound)
			},
			expectedErr: ErrUnknownOrder,
		},
		{
			name: "Ledger error passes through",
			mockSetup: func(ledger *MockLedger, gw *MockGateway) {
				gw.EXPECT().VerifySignature("order_1", "pay_1", "sig").Return(true)
				ledger.EXPECT().FinalizeSuccess(ctx, "order_1", "pay_1").
					Return(nil, errors.New("database error"))
			},
			expectedErr: errors.New("database error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ledger, gw, service := setupMocks(t)
			tt.mockSetup(ledger, gw)

			txn, err := service.Verify(ctx, "order_1", "pay_1", "sig")

			if tt.expectedErr != nil {
				assert.Error(t, err)
				assert.Nil(t, txn)
				if errors.Is(tt.expectedErr, ErrSignatureInvalid) || errors.Is(tt.expectedErr, ErrUnknownOrder) {
					assert.ErrorIs(t, err, tt.expectedErr)
				}
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, domain.StatusSuccess, txn.Status)
			assert.Equal(t, "pay_1", txn.TxnID)
		})
	}
}

func TestService_ReportFailure(t *testing.T) {
	ctx := context.Background()
	now := time.Now()
	code := "USER_CANCELLED"
	description := "Payment cancelled by user"

	failed := &domain.Transaction{
		ID:               1,
		UserID:           1,
		OrderID:          "order_1",
		Kind:             domain.KindPurchase,
		Delta:            100,
		Status:           domain.StatusFailed,
		ErrorCode:        &code,
		ErrorDescription: &description,
		FinalizedAt:      &now,
	}

	tests := []struct {
		name        string
		mockSetup   func(ledger *MockLedger)
		expectedErr error
	}{
		{
			name: "Marks the order failed",
			mockSetup: func(ledger *MockLedger) {
				ledger.EXPECT().FinalizeFailure(ctx, "order_1", code, description).Return(failed, nil)
			},
		},
		{
			name: "Unknown order",
			mockSetup: func(ledger *MockLedger) {
				ledger.EXPECT().FinalizeFailure(ctx, "order_1", code, description).
					Return(nil, ledgerservice.ErrOrderNotFound)
			},
			expectedErr: ErrUnknownOrder,
		},
		{
			name: "Ledger error passes through",
			mockSetup: func(ledger *MockLedger) {
				ledger.EXPECT().FinalizeFailure(ctx, "order_1", code, description).
					Return(nil, errors.New("database error"))
			},
			expectedErr: errors.New("database error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ledger, _, service := setupMocks(t)
			tt.mockSetup(ledger)

			txn, err := service.ReportFailure(ctx, "order_1", code, description)

			if tt.expectedErr != nil {
				assert.Error(t, err)
				assert.Nil(t, txn)
				if errors.Is(tt.expectedErr, ErrUnknownOrder) {
					assert.ErrorIs(t, err, ErrUnknownOrder)
				}
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, domain.StatusFailed, txn.Status)
			assert.Equal(t, code, *txn.ErrorCode)
		})
	}
}
