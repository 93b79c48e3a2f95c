package domain

import (
	"time"

	"github.com/google/uuid"
)

type PaymentStatus string

const (
	PaymentProcessing PaymentStatus = "processing"
	PaymentCompleted  PaymentStatus = "completed"
	PaymentFailed     PaymentStatus = "failed"
)

type PaymentMethod string

const (
	MethodCash       PaymentMethod = "cash"
	MethodCreditCard PaymentMethod = "credit_card"
)

// RequiresCard reports whether the method needs full card details at initiation.
func (m PaymentMethod) RequiresCard() bool {
	return m == MethodCreditCard
}

// CardDetails holds the display-safe form of a card. The full number is
// masked before it ever reaches a Payment; only the last four digits survive.
type CardDetails struct {
	MaskedNumber string `json:"card_number"`
	Expiry       string `json:"expiry"`
}

type Payment struct {
	ID            uuid.UUID
	OrderID       uuid.UUID
	CustomerID    uuid.UUID
	Method        PaymentMethod
	Status        PaymentStatus
	Amount        float64
	TransactionID string
	ReceiptID     *string
	CardDetails   *CardDetails
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// ErrorCodeCardDeclined is the stable code returned for a simulated decline.
const ErrorCodeCardDeclined = "CARD_DECLINED"

// PaymentResult is what initiation hands back to the caller. ReceiptID is
// set only on success, ErrorCode only on failure.
type PaymentResult struct {
	Status        string `json:"status"`
	Message       string `json:"message"`
	TransactionID string `json:"transaction_id"`
	ReceiptID     string `json:"receipt_id,omitempty"`
	ErrorCode     string `json:"error_code,omitempty"`
}
