package handler

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"stitchpress/internal/service"
)

func (h *Handler) generateImage(c *gin.Context) {
	req := service.GenerateImageRequest{
		Prompt:       c.PostForm("prompt"),
		AspectRatio:  c.PostForm("aspect_ratio"),
		OutputFormat: c.PostForm("output_format"),
	}

	if file, err := c.FormFile("audio"); err == nil {
		f, err := file.Open()
		if err != nil {
			h.respondError(c, err)
			return
		}
		defer f.Close()
		audio, err := io.ReadAll(f)
		if err != nil {
			h.respondError(c, err)
			return
		}
		req.Audio = audio
		req.AudioFilename = file.Filename
	}

	path, err := h.images.Generate(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":    "Image generated successfully",
		"image_path": path,
	})
}
