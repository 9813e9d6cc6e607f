package reconciler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/akshatgg/E--Library-sub002/internal/domain"
	"github.com/akshatgg/E--Library-sub002/internal/gateway"
	"github.com/akshatgg/E--Library-sub002/internal/service/ledgerservice"
	"github.com/akshatgg/E--Library-sub002/internal/service/purchaseservice"
)

const (
	maxRetries    = 3
	retryInterval = time.Second * 1

	// A payment the gateway reports as captured.
	paymentCaptured = "captured"

	expiredCode        = "ORDER_EXPIRED"
	expiredDescription = "no payment received before order expiry"
)

var processingOrders sync.Map

// Service periodically sweeps pending purchase transactions whose
// callback never arrived and asks the gateway what actually happened.
// A captured payment is credited through the same idempotent finalize
// path the verify endpoint uses; orders past the pending TTL with no
// payment are expired to failed.
type Service struct {
	txnRepo       ledgerservice.TxnRepo
	ledger        purchaseservice.Ledger
	gw            purchaseservice.Gateway
	limit         uint32
	workerPool    WorkerPoolI
	sweepInterval time.Duration
	gracePeriod   time.Duration
	pendingTTL    time.Duration
}

func New(txnRepo ledgerservice.TxnRepo, ledger purchaseservice.Ledger, gw purchaseservice.Gateway) *Service {
	return &Service{
		txnRepo:       txnRepo,
		ledger:        ledger,
		gw:            gw,
		limit:         1000,
		workerPool:    NewWorkerPool(10),
		sweepInterval: time.Minute,
		gracePeriod:   time.Minute * 5,
		pendingTTL:    time.Hour * 24,
	}
}

func (s *Service) Start(ctx context.Context) {
	zap.L().Info("Reconciler service started")
	go s.run(ctx)
}

func (s *Service) run(ctx context.Context) {
	ticker := time.NewTicker(s.sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			zap.L().Info("Context canceled, stopping reconciler")
			return
		case <-ticker.C:
			s.processPending(ctx)
		}
	}
}

func (s *Service) processPending(ctx context.Context) {
	cutoff := time.Now().Add(-s.gracePeriod)
	txns, err := s.txnRepo.FindPendingBefore(ctx, cutoff, atomic.LoadUint32(&s.limit))
	if err != nil {
		zap.L().Error("Failed to fetch pending transactions", zap.Error(err))
		return
	}

	var g errgroup.Group
	for _, txn := range txns {
		txn := txn

		if _, loaded := processingOrders.LoadOrStore(txn.OrderID, struct{}{}); loaded {
			continue
		}

		g.Go(func() error {
			err := s.workerPool.AddTask(ctx, func() error {
				defer processingOrders.Delete(txn.OrderID)
				return s.reconcile(ctx, txn)
			})
			if err != nil {
				processingOrders.Delete(txn.OrderID)
				return err
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		zap.L().Error("Error reconciling pending transactions", zap.Error(err))
	}
}

func (s *Service) reconcile(ctx context.Context, txn domain.Transaction) error {
	payments, err := s.fetchPayments(ctx, txn.OrderID)
	if err != nil {
		return err
	}

	for _, payment := range payments {
		if payment.Status != paymentCaptured {
			continue
		}
		if _, err := s.ledger.FinalizeSuccess(ctx, txn.OrderID, payment.ID); err != nil {
			return fmt.Errorf("failed to credit reconciled order %s: %w", txn.OrderID, err)
		}
		zap.L().Info("Reconciled captured payment",
			zap.String("orderID", txn.OrderID), zap.String("paymentID", payment.ID))
		return nil
	}

	if time.Since(txn.CreatedAt) > s.pendingTTL {
		if _, err := s.ledger.FinalizeFailure(ctx, txn.OrderID, expiredCode, expiredDescription); err != nil {
			return fmt.Errorf("failed to expire order %s: %w", txn.OrderID, err)
		}
		zap.L().Info("Expired orphaned pending order", zap.String("orderID", txn.OrderID))
		return nil
	}

	return nil
}

func (s *Service) fetchPayments(ctx context.Context, orderID string) ([]gateway.Payment, error) {
	var lastErr error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		payments, err := s.gw.OrderPayments(ctx, orderID)
		if err == nil {
			return payments, nil
		}
		lastErr = err
		if attempt < maxRetries {
			time.Sleep(retryInterval * time.Duration(attempt))
		}
	}
	if lastErr == nil {
		lastErr = errors.New("gateway unreachable")
	}
	return nil, fmt.Errorf("failed to fetch payments for order %s after %d retries: %w", orderID, maxRetries, lastErr)
}
