package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"stitchpress/internal/domain"
	"stitchpress/internal/infrastructure/blob"
	"stitchpress/internal/repo"
)

type CreateDesignRequest struct {
	Description string
	FileType    domain.FileType
	File        []byte
}

type DesignService interface {
	Create(ctx context.Context, customerID uuid.UUID, req CreateDesignRequest) (*domain.Design, error)
	Get(ctx context.Context, customerID, designID uuid.UUID) (*domain.Design, error)
	List(ctx context.Context, customerID uuid.UUID) ([]domain.Design, error)
	Delete(ctx context.Context, customerID, designID uuid.UUID) error
}

type designService struct {
	designRepo repo.DesignRepo
	blobs      *blob.Store
	log        *zap.Logger
}

func NewDesignService(designRepo repo.DesignRepo, blobs *blob.Store, log *zap.Logger) DesignService {
	return &designService{designRepo: designRepo, blobs: blobs, log: log}
}

func (s *designService) Create(ctx context.Context, customerID uuid.UUID, req CreateDesignRequest) (*domain.Design, error) {
	if req.Description == "" {
		return nil, domain.Validationf("description is required")
	}
	if len(req.File) > 0 && req.FileType == "" {
		return nil, domain.Validationf("file_type is required when uploading a file")
	}

	design := &domain.Design{
		ID:          uuid.New(),
		CustomerID:  customerID,
		Description: req.Description,
		FileType:    req.FileType,
		CreatedAt:   time.Now(),
	}

	if len(req.File) > 0 {
		path, err := s.blobs.Save(
			fmt.Sprintf("design_uploads/%s.%s", design.ID, req.FileType),
			req.File,
		)
		if err != nil {
			return nil, err
		}
		design.FilePath = path
	}

	if err := s.designRepo.Create(ctx, design); err != nil {
		return nil, err
	}
	s.log.Info("design created",
		zap.String("design_id", design.ID.String()),
		zap.Bool("has_file", design.HasAsset()),
	)
	return design, nil
}

func (s *designService) Get(ctx context.Context, customerID, designID uuid.UUID) (*domain.Design, error) {
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
	return design, nil
}

func (s *designService) List(ctx context.Context, customerID uuid.UUID) ([]domain.Design, error) {
	return s.designRepo.ListByCustomer(ctx, customerID)
}

func (s *designService) Delete(ctx context.Context, customerID, designID uuid.UUID) error {
	if _, err := s.Get(ctx, customerID, designID); err != nil {
		return err
	}
	return s.designRepo.Delete(ctx, designID)
}
