package repo

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"stitchpress/internal/domain"
)

type PaymentRepo interface {
	// tx controls the surrounding transaction; creation and the terminal
	// status update may need to commit together with an order update.
	CreatePayment(ctx context.Context, tx *sql.Tx, payment *domain.Payment) error
	UpdatePaymentStatus(ctx context.Context, tx *sql.Tx, id uuid.UUID, status domain.PaymentStatus, receiptID *string) error

	// Lookups are customer-scoped: a payment another customer owns behaves
	// exactly like one that does not exist.
	FindByTransactionID(ctx context.Context, customerID uuid.UUID, transactionID string) (*domain.Payment, error)
	FindCompletedByReceiptID(ctx context.Context, customerID uuid.UUID, receiptID string) (*domain.Payment, error)
	ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]domain.Payment, error)
	CountAll(ctx context.Context) (int, error)

	FindProcessingBefore(ctx context.Context, before time.Time, limit int) ([]domain.Payment, error)
}

type paymentRepo struct {
	db *sql.DB
}

func NewPaymentRepo(db *sql.DB) PaymentRepo {
	return &paymentRepo{db: db}
}

const paymentColumns = `id, order_id, customer_id, method, status, amount, transaction_id, receipt_id, card_number, card_expiry, created_at, updated_at`

func scanPayment(row interface{ Scan(...any) error }) (*domain.Payment, error) {
	var (
		p          domain.Payment
		cardNumber sql.NullString
		cardExpiry sql.NullString
	)
	err := row.Scan(
		&p.ID,
		&p.OrderID,
		&p.CustomerID,
		&p.Method,
		&p.Status,
		&p.Amount,
		&p.TransactionID,
		&p.ReceiptID,
		&cardNumber,
		&cardExpiry,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if cardNumber.Valid {
		p.CardDetails = &domain.CardDetails{MaskedNumber: cardNumber.String, Expiry: cardExpiry.String}
	}
	return &p, nil
}

func (r *paymentRepo) CreatePayment(ctx context.Context, tx *sql.Tx, payment *domain.Payment) error {
	var cardNumber, cardExpiry *string
	if payment.CardDetails != nil {
		cardNumber = &payment.CardDetails.MaskedNumber
		cardExpiry = &payment.CardDetails.Expiry
	}
	query := `INSERT INTO payments (` + paymentColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := tx.ExecContext(ctx, query,
		payment.ID, payment.OrderID, payment.CustomerID, payment.Method, payment.Status,
		payment.Amount, payment.TransactionID, payment.ReceiptID, cardNumber, cardExpiry,
		payment.CreatedAt, payment.UpdatedAt,
	)
	return err
}

func (r *paymentRepo) UpdatePaymentStatus(ctx context.Context, tx *sql.Tx, id uuid.UUID, status domain.PaymentStatus, receiptID *string) error {
	query := `
		UPDATE payments
		SET status = $2,
		    receipt_id = COALESCE($3, receipt_id),
		    updated_at = now()
		WHERE id = $1
	`
	_, err := tx.ExecContext(ctx, query, id, status, receiptID)
	return err
}

func (r *paymentRepo) FindByTransactionID(ctx context.Context, customerID uuid.UUID, transactionID string) (*domain.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE transaction_id = $1 AND customer_id = $2`
	p, err := scanPayment(r.db.QueryRowContext(ctx, query, transactionID, customerID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *paymentRepo) FindCompletedByReceiptID(ctx context.Context, customerID uuid.UUID, receiptID string) (*domain.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE receipt_id = $1 AND customer_id = $2 AND status = $3`
	p, err := scanPayment(r.db.QueryRowContext(ctx, query, receiptID, customerID, domain.PaymentCompleted))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *paymentRepo) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]domain.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE customer_id = $1 ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query, customerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []domain.Payment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		payments = append(payments, *p)
	}
	return payments, rows.Err()
}

func (r *paymentRepo) CountAll(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, "SELECT count(*) FROM payments").Scan(&n)
	return n, err
}

func (r *paymentRepo) FindProcessingBefore(ctx context.Context, before time.Time, limit int) ([]domain.Payment, error) {
	query := `
		SELECT ` + paymentColumns + ` FROM payments
		WHERE status = $1
		AND created_at < $2
		LIMIT $3
	`
	rows, err := r.db.QueryContext(ctx, query, domain.PaymentProcessing, before, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []domain.Payment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		payments = append(payments, *p)
	}
	return payments, rows.Err()
}
