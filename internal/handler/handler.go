package handler

import (
	"errors"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"stitchpress/internal/database"
	"stitchpress/internal/domain"
	"stitchpress/internal/service"
)

type Handler struct {
	designs  service.DesignService
	mockups  service.MockupService
	payments service.PaymentService
	images   service.ImageGenService
	health   database.Service
	log      *zap.Logger
}

func New(
	designs service.DesignService,
	mockups service.MockupService,
	payments service.PaymentService,
	images service.ImageGenService,
	health database.Service,
	log *zap.Logger,
) *Handler {
	return &Handler{
		designs:  designs,
		mockups:  mockups,
		payments: payments,
		images:   images,
		health:   health,
		log:      log,
	}
}

// Router wires all routes. Authentication proper lives in front of this
// service; the requester arrives as an X-Customer-ID header.
func (h *Handler) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(cors.Default())

	r.GET("/health", h.healthCheck)
	r.POST("/images/generate", h.generateImage)

	authed := r.Group("/", h.requireCustomer)
	{
		authed.POST("/designs", h.createDesign)
		authed.GET("/designs", h.listDesigns)
		authed.GET("/designs/:id", h.getDesign)
		authed.DELETE("/designs/:id", h.deleteDesign)

		authed.GET("/mockups", h.listMockups)
		authed.POST("/mockups/preview", h.previewMockup)

		authed.GET("/payments", h.listPayments)
		authed.POST("/payments/initiate", h.initiatePayment)
		authed.POST("/payments/verify", h.verifyPayment)
		authed.GET("/payments/receipt/:receipt_id", h.paymentReceipt)
	}

	return r
}

const customerKey = "customerID"

func (h *Handler) requireCustomer(c *gin.Context) {
	id, err := uuid.Parse(c.GetHeader("X-Customer-ID"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid X-Customer-ID header"})
		return
	}
	c.Set(customerKey, id)
	c.Next()
}

func customerID(c *gin.Context) uuid.UUID {
	return c.MustGet(customerKey).(uuid.UUID)
}

// respondError maps the domain error taxonomy onto HTTP statuses.
func (h *Handler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrPermission):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		h.log.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, h.health.Health())
}
