package service

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io/fs"
	"slices"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"stitchpress/internal/compositor"
	"stitchpress/internal/domain"
	"stitchpress/internal/infrastructure/assets"
	"stitchpress/internal/infrastructure/blob"
	"stitchpress/internal/repo"
)

type MockupService interface {
	// Preview returns the mockup for (design, color, size), rendering and
	// persisting it on first request. Subsequent and concurrent requests
	// for the same triple converge on the stored row.
	Preview(ctx context.Context, customerID, designID uuid.UUID, color, size string) (*domain.Mockup, error)
	List(ctx context.Context, customerID uuid.UUID) ([]domain.Mockup, error)
}

type mockupService struct {
	designRepo repo.DesignRepo
	mockupRepo repo.MockupRepo
	templates  *assets.TemplateStore
	blobs      *blob.Store
	log        *zap.Logger
}

func NewMockupService(
	designRepo repo.DesignRepo,
	mockupRepo repo.MockupRepo,
	templates *assets.TemplateStore,
	blobs *blob.Store,
	log *zap.Logger,
) MockupService {
	return &mockupService{
		designRepo: designRepo,
		mockupRepo: mockupRepo,
		templates:  templates,
		blobs:      blobs,
		log:        log,
	}
}

func (s *mockupService) Preview(ctx context.Context, customerID, designID uuid.UUID, color, size string) (*domain.Mockup, error) {
	if !slices.Contains(domain.GarmentColors, color) {
		return nil, domain.Validationf("unknown garment color %q", color)
	}
	if !slices.Contains(domain.GarmentSizes, size) {
		return nil, domain.Validationf("unknown garment size %q", size)
	}

	design, err := s.designRepo.FindById(ctx, designID)
	if err != nil {
		return nil, err
	}
	if design == nil {
		return nil, fmt.Errorf("design %s: %w", designID, domain.ErrNotFound)
	}
	if design.CustomerID != customerID {
		return nil, fmt.Errorf("design %s: %w", designID, domain.ErrPermission)
	}

	// Lookup before render: the compositor only runs on a cache miss.
	if existing, err := s.mockupRepo.FindByKey(ctx, designID, color, size); err != nil {
		return nil, err
	} else if existing != nil {
		return existing, nil
	}

	asset, err := s.loadAsset(design)
	if err != nil {
		return nil, err
	}

	result, err := compositor.Render(s.templates.Base(color), compositor.Design{
		Image:       asset,
		Description: design.Description,
	}, size)
	if err != nil {
		return nil, err
	}
	if result.Source == compositor.SourceCaption {
		s.log.Info("mockup rendered from caption fallback",
			zap.String("design_id", designID.String()),
			zap.String("color", color),
			zap.String("size", size),
		)
	}

	imagePath, err := s.blobs.Save(
		fmt.Sprintf("mockups/mockup_%s_%s_%s.png", designID, color, size),
		result.PNG,
	)
	if err != nil {
		return nil, err
	}

	mockup := &domain.Mockup{
		ID:        uuid.New(),
		DesignID:  designID,
		Color:     color,
		Size:      size,
		ImagePath: imagePath,
		CreatedAt: time.Now(),
	}
	inserted, err := s.mockupRepo.InsertIfAbsent(ctx, mockup)
	if err != nil {
		return nil, err
	}
	if !inserted {
		// Lost the race; hand back the winner's row.
		return s.mockupRepo.FindByKey(ctx, designID, color, size)
	}
	return mockup, nil
}

// loadAsset returns the decoded design image, or nil when the design has no
// usable one. Only genuine storage failures surface as errors; a missing or
// undecodable file means "render the caption" rather than "fail the request".
func (s *mockupService) loadAsset(design *domain.Design) (image.Image, error) {
	if !design.HasAsset() {
		return nil, nil
	}
	data, err := s.blobs.Read(design.FilePath)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err // disk trouble, not a bad upload
	}
	img, err := compositor.DecodeAsset(data)
	if errors.Is(err, compositor.ErrAssetUnusable) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return img, nil
}

func (s *mockupService) List(ctx context.Context, customerID uuid.UUID) ([]domain.Mockup, error) {
	return s.mockupRepo.ListByCustomer(ctx, customerID)
}
