package service

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"stitchpress/internal/domain"
	"stitchpress/internal/infrastructure/gateway"
	"stitchpress/internal/repo"
)

// InitiatePaymentRequest is the caller-supplied payment input. Card fields
// are required only for card-based methods and are never stored unmasked.
type InitiatePaymentRequest struct {
	OrderID     uuid.UUID
	Method      domain.PaymentMethod
	CardNumber  string
	ExpiryMonth string
	ExpiryYear  string
	CVV         string
}

// VerifyPaymentResult reports the current status of a payment attempt.
// ReceiptID is present only when the payment completed.
type VerifyPaymentResult struct {
	Status        domain.PaymentStatus `json:"status"`
	Message       string               `json:"message"`
	TransactionID string               `json:"transaction_id"`
	ReceiptID     *string              `json:"receipt_id"`
}

type PaymentService interface {
	Initiate(ctx context.Context, customerID uuid.UUID, req InitiatePaymentRequest) (*domain.PaymentResult, error)
	Verify(ctx context.Context, customerID uuid.UUID, transactionID string) (*VerifyPaymentResult, error)
	Receipt(ctx context.Context, customerID uuid.UUID, receiptID string) (*domain.Payment, error)
	List(ctx context.Context, customerID uuid.UUID) ([]domain.Payment, error)
}

type paymentService struct {
	db          *sql.DB
	orderRepo   repo.OrderRepo
	paymentRepo repo.PaymentRepo
	decider     gateway.Decider
	log         *zap.Logger
}

func NewPaymentService(
	db *sql.DB,
	orderRepo repo.OrderRepo,
	paymentRepo repo.PaymentRepo,
	decider gateway.Decider,
	log *zap.Logger,
) PaymentService {
	return &paymentService{
		db:          db,
		orderRepo:   orderRepo,
		paymentRepo: paymentRepo,
		decider:     decider,
		log:         log,
	}
}

func (s *paymentService) Initiate(ctx context.Context, customerID uuid.UUID, req InitiatePaymentRequest) (*domain.PaymentResult, error) {
	order, err := s.orderRepo.FindById(ctx, req.OrderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, fmt.Errorf("order %s: %w", req.OrderID, domain.ErrNotFound)
	}
	if order.CustomerID != customerID {
		return nil, fmt.Errorf("order %s: %w", req.OrderID, domain.ErrPermission)
	}

	// Reject incomplete card details before any payment row exists.
	var card *domain.CardDetails
	if req.Method.RequiresCard() {
		if err := validateCardFields(req); err != nil {
			return nil, err
		}
		card = &domain.CardDetails{
			MaskedNumber: maskCardNumber(req.CardNumber),
			Expiry:       req.ExpiryMonth + "/" + req.ExpiryYear,
		}
	}

	now := time.Now()
	payment := &domain.Payment{
		ID:            uuid.New(),
		OrderID:       order.ID,
		CustomerID:    customerID,
		Method:        req.Method,
		Status:        domain.PaymentProcessing,
		Amount:        order.TotalPrice,
		TransactionID: newToken("TXN-", 12),
		CardDetails:   card,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.createProcessing(ctx, payment); err != nil {
		return nil, err
	}

	// Simulation boundary: a real gateway call replaces this draw.
	if s.decider.Approve(ctx, payment.Amount) {
		receiptID := newToken("RCPT-", 10)
		if err := s.complete(ctx, payment, order, receiptID); err != nil {
			return nil, err
		}
		s.log.Info("payment completed",
			zap.String("transaction_id", payment.TransactionID),
			zap.String("receipt_id", receiptID),
			zap.String("order_id", order.ID.String()),
		)
		return &domain.PaymentResult{
			Status:        "success",
			Message:       "Payment processed successfully",
			TransactionID: payment.TransactionID,
			ReceiptID:     receiptID,
		}, nil
	}

	if err := s.fail(ctx, payment); err != nil {
		return nil, err
	}
	s.log.Info("payment declined",
		zap.String("transaction_id", payment.TransactionID),
		zap.String("order_id", order.ID.String()),
	)
	return &domain.PaymentResult{
		Status:        "failed",
		Message:       "Payment failed. Please try again.",
		TransactionID: payment.TransactionID,
		ErrorCode:     domain.ErrorCodeCardDeclined,
	}, nil
}

func (s *paymentService) createProcessing(ctx context.Context, payment *domain.Payment) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := s.paymentRepo.CreatePayment(ctx, tx, payment); err != nil {
		return err
	}
	return tx.Commit()
}

// complete moves the payment to its terminal success state and the order to
// processing in one transaction, so neither can land without the other.
func (s *paymentService) complete(ctx context.Context, payment *domain.Payment, order *domain.Order, receiptID string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := s.paymentRepo.UpdatePaymentStatus(ctx, tx, payment.ID, domain.PaymentCompleted, &receiptID); err != nil {
		return err
	}
	order.Status = domain.OrderProcessing
	if err := s.orderRepo.UpdateOrderStatus(ctx, tx, order); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *paymentService) fail(ctx context.Context, payment *domain.Payment) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := s.paymentRepo.UpdatePaymentStatus(ctx, tx, payment.ID, domain.PaymentFailed, nil); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *paymentService) Verify(ctx context.Context, customerID uuid.UUID, transactionID string) (*VerifyPaymentResult, error) {
	payment, err := s.paymentRepo.FindByTransactionID(ctx, customerID, transactionID)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		// A foreign payment answers the same as a missing one.
		return nil, fmt.Errorf("transaction %s: %w", transactionID, domain.ErrNotFound)
	}

	res := &VerifyPaymentResult{
		Status:        payment.Status,
		Message:       fmt.Sprintf("Payment status: %s", payment.Status),
		TransactionID: payment.TransactionID,
	}
	if payment.Status == domain.PaymentCompleted {
		res.ReceiptID = payment.ReceiptID
	}
	return res, nil
}

func (s *paymentService) Receipt(ctx context.Context, customerID uuid.UUID, receiptID string) (*domain.Payment, error) {
	payment, err := s.paymentRepo.FindCompletedByReceiptID(ctx, customerID, receiptID)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		// Non-completed and foreign payments are indistinguishable from
		// missing ones here; a permission error would leak existence.
		return nil, fmt.Errorf("receipt %s: %w", receiptID, domain.ErrNotFound)
	}
	return payment, nil
}

func (s *paymentService) List(ctx context.Context, customerID uuid.UUID) ([]domain.Payment, error) {
	return s.paymentRepo.ListByCustomer(ctx, customerID)
}

func validateCardFields(req InitiatePaymentRequest) error {
	switch {
	case req.CardNumber == "":
		return domain.Validationf("card_number is required for %s payments", req.Method)
	case len(req.CardNumber) < 4:
		return domain.Validationf("card_number is too short")
	case req.ExpiryMonth == "":
		return domain.Validationf("expiry_month is required for %s payments", req.Method)
	case req.ExpiryYear == "":
		return domain.Validationf("expiry_year is required for %s payments", req.Method)
	case req.CVV == "":
		return domain.Validationf("cvv is required for %s payments", req.Method)
	}
	return nil
}

func maskCardNumber(number string) string {
	return "XXXX-XXXX-XXXX-" + number[len(number)-4:]
}

// newToken builds identifiers like TXN-3F2A... from uuid hex, uppercased.
// Collisions are treated as negligible; no uniqueness check is made.
func newToken(prefix string, n int) string {
	hex := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", ""))
	return prefix + hex[:n]
}
