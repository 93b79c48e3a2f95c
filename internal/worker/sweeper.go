package worker

import (
	"context"
	"database/sql"
	"time"

	"go.uber.org/zap"

	"stitchpress/internal/domain"
	"stitchpress/internal/repo"
)

const sweepBatchSize = 100

// PaymentSweeper moves payments stranded in "processing" to "failed". A
// crash between creating the record and deciding the outcome leaves such
// rows behind; failing them keeps the single-transition lifecycle intact
// and the customer free to initiate a fresh payment.
type PaymentSweeper struct {
	db          *sql.DB
	paymentRepo repo.PaymentRepo
	maxAge      time.Duration
	interval    time.Duration
	log         *zap.Logger
}

func NewPaymentSweeper(
	db *sql.DB,
	paymentRepo repo.PaymentRepo,
	maxAge time.Duration,
	interval time.Duration,
	log *zap.Logger,
) *PaymentSweeper {
	return &PaymentSweeper{
		db:          db,
		paymentRepo: paymentRepo,
		maxAge:      maxAge,
		interval:    interval,
		log:         log,
	}
}

func (w *PaymentSweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.log.Info("payment sweeper started", zap.Duration("interval", w.interval))

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := w.Sweep(ctx); err != nil {
				w.log.Error("sweep failed", zap.Error(err))
			}
		}
	}
}

// Sweep runs one pass over stuck payments.
func (w *PaymentSweeper) Sweep(ctx context.Context) error {
	stuck, err := w.paymentRepo.FindProcessingBefore(ctx, time.Now().Add(-w.maxAge), sweepBatchSize)
	if err != nil {
		return err
	}
	if len(stuck) == 0 {
		return nil
	}

	w.log.Info("found stuck payments", zap.Int("count", len(stuck)))

	for _, payment := range stuck {
		if err := w.failPayment(ctx, payment); err != nil {
			w.log.Error("failed to sweep payment",
				zap.String("transaction_id", payment.TransactionID),
				zap.Error(err),
			)
			continue // leave it for the next pass
		}
		w.log.Info("stuck payment marked failed",
			zap.String("transaction_id", payment.TransactionID),
		)
	}
	return nil
}

func (w *PaymentSweeper) failPayment(ctx context.Context, payment domain.Payment) error {
	tx, err := w.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := w.paymentRepo.UpdatePaymentStatus(ctx, tx, payment.ID, domain.PaymentFailed, nil); err != nil {
		return err
	}
	return tx.Commit()
}
