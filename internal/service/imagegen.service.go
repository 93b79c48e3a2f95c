package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"stitchpress/internal/domain"
	"stitchpress/internal/infrastructure/blob"
	"stitchpress/internal/infrastructure/imagegen"
)

type GenerateImageRequest struct {
	Prompt        string
	Audio         []byte
	AudioFilename string
	AspectRatio   string
	OutputFormat  string
}

// ImageGenService proxies prompt-to-image generation. An attached audio clip
// is transcribed first and the transcript used as the prompt.
type ImageGenService interface {
	Generate(ctx context.Context, req GenerateImageRequest) (string, error)
}

type imageGenService struct {
	stability *imagegen.StabilityClient
	whisper   *imagegen.WhisperClient
	blobs     *blob.Store
	log       *zap.Logger
}

func NewImageGenService(
	stability *imagegen.StabilityClient,
	whisper *imagegen.WhisperClient,
	blobs *blob.Store,
	log *zap.Logger,
) ImageGenService {
	return &imageGenService{stability: stability, whisper: whisper, blobs: blobs, log: log}
}

func (s *imageGenService) Generate(ctx context.Context, req GenerateImageRequest) (string, error) {
	prompt := req.Prompt
	if len(req.Audio) > 0 {
		text, err := s.whisper.Transcribe(ctx, req.AudioFilename, req.Audio)
		if err != nil {
			return "", err
		}
		prompt = text
	}
	if prompt == "" {
		return "", domain.Validationf("prompt or audio file is required")
	}

	format := req.OutputFormat
	if format == "" {
		format = "jpeg"
	}

	img, err := s.stability.GenerateImage(ctx, prompt, req.AspectRatio, format)
	if err != nil {
		return "", err
	}

	path, err := s.blobs.Save(fmt.Sprintf("generated/%s.%s", uuid.New(), format), img)
	if err != nil {
		return "", err
	}
	s.log.Info("image generated",
		zap.String("path", path),
		zap.Int("bytes", len(img)),
		zap.Bool("from_audio", len(req.Audio) > 0),
	)
	return path, nil
}
