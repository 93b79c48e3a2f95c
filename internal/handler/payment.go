package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"stitchpress/internal/domain"
	"stitchpress/internal/service"
)

type initiatePaymentRequest struct {
	OrderID     uuid.UUID `json:"order_id" binding:"required"`
	Method      string    `json:"payment_method" binding:"required"`
	CardNumber  string    `json:"card_number"`
	ExpiryMonth string    `json:"expiry_month"`
	ExpiryYear  string    `json:"expiry_year"`
	CVV         string    `json:"cvv"`
}

func (h *Handler) initiatePayment(c *gin.Context) {
	var req initiatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.payments.Initiate(c.Request.Context(), customerID(c), service.InitiatePaymentRequest{
		OrderID:     req.OrderID,
		Method:      domain.PaymentMethod(req.Method),
		CardNumber:  req.CardNumber,
		ExpiryMonth: req.ExpiryMonth,
		ExpiryYear:  req.ExpiryYear,
		CVV:         req.CVV,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	if result.Status == "failed" {
		c.JSON(http.StatusBadRequest, result)
		return
	}
	c.JSON(http.StatusOK, result)
}

type verifyPaymentRequest struct {
	TransactionID string `json:"transaction_id" binding:"required"`
}

func (h *Handler) verifyPayment(c *gin.Context) {
	var req verifyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.payments.Verify(c.Request.Context(), customerID(c), req.TransactionID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

type receiptResponse struct {
	ReceiptID     string               `json:"receipt_id"`
	TransactionID string               `json:"transaction_id"`
	Method        domain.PaymentMethod `json:"payment_method"`
	Amount        float64              `json:"amount"`
	Status        domain.PaymentStatus `json:"status"`
	CardDetails   *domain.CardDetails  `json:"card_details,omitempty"`
}

func (h *Handler) paymentReceipt(c *gin.Context) {
	payment, err := h.payments.Receipt(c.Request.Context(), customerID(c), c.Param("receipt_id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, receiptResponse{
		ReceiptID:     *payment.ReceiptID,
		TransactionID: payment.TransactionID,
		Method:        payment.Method,
		Amount:        payment.Amount,
		Status:        payment.Status,
		CardDetails:   payment.CardDetails,
	})
}

type paymentResponse struct {
	TransactionID string               `json:"transaction_id"`
	OrderID       uuid.UUID            `json:"order_id"`
	Method        domain.PaymentMethod `json:"payment_method"`
	Status        domain.PaymentStatus `json:"status"`
	Amount        float64              `json:"amount"`
	ReceiptID     *string              `json:"receipt_id,omitempty"`
}

func (h *Handler) listPayments(c *gin.Context) {
	payments, err := h.payments.List(c.Request.Context(), customerID(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	out := make([]paymentResponse, 0, len(payments))
	for _, p := range payments {
		out = append(out, paymentResponse{
			TransactionID: p.TransactionID,
			OrderID:       p.OrderID,
			Method:        p.Method,
			Status:        p.Status,
			Amount:        p.Amount,
			ReceiptID:     p.ReceiptID,
		})
	}
	c.JSON(http.StatusOK, out)
}
