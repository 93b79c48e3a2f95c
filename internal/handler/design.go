package handler

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"stitchpress/internal/domain"
	"stitchpress/internal/service"
)

type designResponse struct {
	ID          uuid.UUID       `json:"id"`
	Description string          `json:"description"`
	FilePath    string          `json:"file_path,omitempty"`
	FileType    domain.FileType `json:"file_type,omitempty"`
	CreatedAt   string          `json:"created_at"`
}

func toDesignResponse(d *domain.Design) designResponse {
	return designResponse{
		ID:          d.ID,
		Description: d.Description,
		FilePath:    d.FilePath,
		FileType:    d.FileType,
		CreatedAt:   d.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

func (h *Handler) createDesign(c *gin.Context) {
	req := service.CreateDesignRequest{
		Description: c.PostForm("description"),
		FileType:    domain.FileType(c.PostForm("file_type")),
	}

	if file, err := c.FormFile("file"); err == nil {
		f, err := file.Open()
		if err != nil {
			h.respondError(c, err)
			return
		}
		defer f.Close()
		data, err := io.ReadAll(f)
		if err != nil {
			h.respondError(c, err)
			return
		}
		req.File = data
	}

	design, err := h.designs.Create(c.Request.Context(), customerID(c), req)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toDesignResponse(design))
}

func (h *Handler) listDesigns(c *gin.Context) {
	designs, err := h.designs.List(c.Request.Context(), customerID(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	out := make([]designResponse, 0, len(designs))
	for i := range designs {
		out = append(out, toDesignResponse(&designs[i]))
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) getDesign(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid design id"})
		return
	}
	design, err := h.designs.Get(c.Request.Context(), customerID(c), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toDesignResponse(design))
}

func (h *Handler) deleteDesign(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid design id"})
		return
	}
	if err := h.designs.Delete(c.Request.Context(), customerID(c), id); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
