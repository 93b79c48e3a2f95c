package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"stitchpress/internal/domain"
)

type previewRequest struct {
	DesignID uuid.UUID `json:"design_id" binding:"required"`
	Color    string    `json:"color" binding:"required"`
	Size     string    `json:"size" binding:"required"`
}

type mockupResponse struct {
	ID        uuid.UUID `json:"id"`
	DesignID  uuid.UUID `json:"design_id"`
	Color     string    `json:"color"`
	Size      string    `json:"size"`
	ImagePath string    `json:"mockup_image"`
}

func toMockupResponse(m *domain.Mockup) mockupResponse {
	return mockupResponse{
		ID:        m.ID,
		DesignID:  m.DesignID,
		Color:     m.Color,
		Size:      m.Size,
		ImagePath: m.ImagePath,
	}
}

func (h *Handler) previewMockup(c *gin.Context) {
	var req previewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	mockup, err := h.mockups.Preview(c.Request.Context(), customerID(c), req.DesignID, req.Color, req.Size)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toMockupResponse(mockup))
}

func (h *Handler) listMockups(c *gin.Context) {
	mockups, err := h.mockups.List(c.Request.Context(), customerID(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	out := make([]mockupResponse, 0, len(mockups))
	for i := range mockups {
		out = append(out, toMockupResponse(&mockups[i]))
	}
	c.JSON(http.StatusOK, out)
}
