// Package services holds the business rules between HTTP handlers and the
// repositories: input validation, duplicate checks, and cascade semantics.
package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/restgate/registry-engine/pkg/apperrors"
	"github.com/restgate/registry-engine/pkg/models"
	"github.com/restgate/registry-engine/pkg/repositories"
)

// UriDefService provides operations for URI definitions.
type UriDefService interface {
	Create(ctx context.Context, def *models.UriDef) error
	Get(ctx context.Context, objID string) (*models.UriDef, error)
	GetByAPIID(ctx context.Context, apiID string) (*models.UriDef, error)
	List(ctx context.Context) ([]*models.UriDef, error)
	Update(ctx context.Context, def *models.UriDef) error
	// DeleteByAPIID removes the definition together with all of its paths
	// and returns how many paths went with it.
	DeleteByAPIID(ctx context.Context, apiID string) (int64, error)
}

type uriDefService struct {
	repo   repositories.UriDefRepository
	logger *zap.Logger
}

func NewUriDefService(repo repositories.UriDefRepository, logger *zap.Logger) UriDefService {
	return &uriDefService{
		repo:   repo,
		logger: logger.Named("uri-def-service"),
	}
}

var _ UriDefService = (*uriDefService)(nil)

func validateUriDef(def *models.UriDef) error {
	if def.APIID == "" {
		return fmt.Errorf("%w: api_id is required", apperrors.ErrValidation)
	}
	if def.SiteID == "" {
		return fmt.Errorf("%w: site_id is required", apperrors.ErrValidation)
	}
	if def.ServiceName == "" {
		return fmt.Errorf("%w: service_name is required", apperrors.ErrValidation)
	}
	if def.Method != "" && !def.Method.Valid() {
		return fmt.Errorf("%w: invalid method %q", apperrors.ErrValidation, def.Method)
	}
	if def.UseStatus != "" && !def.UseStatus.Valid() {
		return fmt.Errorf("%w: invalid use_status %q", apperrors.ErrValidation, def.UseStatus)
	}
	return nil
}

func (s *uriDefService) Create(ctx context.Context, def *models.UriDef) error {
	if err := validateUriDef(def); err != nil {
		return err
	}

	if err := s.repo.Create(ctx, def); err != nil {
		s.logger.Error("Failed to create uri definition",
			zap.String("api_id", def.APIID),
			zap.Error(err))
		return err
	}

	s.logger.Info("Created uri definition",
		zap.String("api_id", def.APIID),
		zap.String("obj_id", def.ObjID))
	return nil
}

func (s *uriDefService) Get(ctx context.Context, objID string) (*models.UriDef, error) {
	if objID == "" {
		return nil, fmt.Errorf("%w: obj_id is required", apperrors.ErrValidation)
	}
	return s.repo.Get(ctx, objID)
}

func (s *uriDefService) GetByAPIID(ctx context.Context, apiID string) (*models.UriDef, error) {
	if apiID == "" {
		return nil, fmt.Errorf("%w: api_id is required", apperrors.ErrValidation)
	}
	return s.repo.GetByAPIID(ctx, apiID)
}

func (s *uriDefService) List(ctx context.Context) ([]*models.UriDef, error) {
	return s.repo.List(ctx)
}

func (s *uriDefService) Update(ctx context.Context, def *models.UriDef) error {
	if def.ObjID == "" {
		return fmt.Errorf("%w: obj_id is required", apperrors.ErrValidation)
	}
	if err := validateUriDef(def); err != nil {
		return err
	}

	// The business key is immutable; the stored api_id wins.
	current, err := s.repo.Get(ctx, def.ObjID)
	if err != nil {
		return err
	}
	if def.APIID != current.APIID {
		return fmt.Errorf("%w: api_id cannot be changed", apperrors.ErrValidation)
	}

	if err := s.repo.Update(ctx, def); err != nil {
		s.logger.Error("Failed to update uri definition",
			zap.String("obj_id", def.ObjID),
			zap.Error(err))
		return err
	}
	return nil
}

func (s *uriDefService) DeleteByAPIID(ctx context.Context, apiID string) (int64, error) {
	if apiID == "" {
		return 0, fmt.Errorf("%w: api_id is required", apperrors.ErrValidation)
	}

	removed, err := s.repo.DeleteByAPIID(ctx, apiID)
	if err != nil {
		s.logger.Error("Failed to delete uri definition",
			zap.String("api_id", apiID),
			zap.Error(err))
		return 0, err
	}

	s.logger.Info("Deleted uri definition",
		zap.String("api_id", apiID),
		zap.Int64("removed_paths", removed))
	return removed, nil
}
