package services

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/restgate/registry-engine/pkg/apperrors"
	"github.com/restgate/registry-engine/pkg/models"
	"github.com/restgate/registry-engine/pkg/repositories"
)

// UriPathService provides operations for the ordered path segments of a
// URI definition.
type UriPathService interface {
	Create(ctx context.Context, path *models.UriPath) error
	Get(ctx context.Context, objID string) (*models.UriPath, error)
	ListByAPIID(ctx context.Context, apiID string) ([]*models.UriPath, error)
	ListByUseStatus(ctx context.Context, status models.UseStatus) ([]*models.UriPath, error)
	Update(ctx context.Context, path *models.UriPath) error
	Delete(ctx context.Context, objID string) error
	// ComposeURI joins a definition's base URI with its usable path
	// segments in order.
	ComposeURI(ctx context.Context, apiID string) (string, error)
}

type uriPathService struct {
	repo    repositories.UriPathRepository
	defRepo repositories.UriDefRepository
	logger  *zap.Logger
}

func NewUriPathService(repo repositories.UriPathRepository, defRepo repositories.UriDefRepository, logger *zap.Logger) UriPathService {
	return &uriPathService{
		repo:    repo,
		defRepo: defRepo,
		logger:  logger.Named("uri-path-service"),
	}
}

var _ UriPathService = (*uriPathService)(nil)

func validateUriPath(path *models.UriPath) error {
	if path.APIID == "" {
		return fmt.Errorf("%w: api_id is required", apperrors.ErrValidation)
	}
	if path.PathOrder < 1 {
		return fmt.Errorf("%w: path_order must be positive", apperrors.ErrValidation)
	}
	if path.PathValue == "" {
		return fmt.Errorf("%w: path_value is required", apperrors.ErrValidation)
	}
	if path.IsParamUse && path.ParamName == "" {
		return fmt.Errorf("%w: param_name is required for parameter segments", apperrors.ErrValidation)
	}
	if path.UseStatus != "" && !path.UseStatus.Valid() {
		return fmt.Errorf("%w: invalid use_status %q", apperrors.ErrValidation, path.UseStatus)
	}
	return nil
}

func (s *uriPathService) Create(ctx context.Context, path *models.UriPath) error {
	if err := validateUriPath(path); err != nil {
		return err
	}

	// Surface a conflict on (api_id, path_order) before hitting the unique
	// constraint, so the caller gets the same answer on every backend.
	if _, err := s.repo.GetByAPIIDAndOrder(ctx, path.APIID, path.PathOrder); err == nil {
		return fmt.Errorf("path order %d already taken for %s: %w",
			path.PathOrder, path.APIID, apperrors.ErrConflict)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return err
	}

	if err := s.repo.Create(ctx, path); err != nil {
		s.logger.Error("Failed to create uri path",
			zap.String("api_id", path.APIID),
			zap.Int("path_order", path.PathOrder),
			zap.Error(err))
		return err
	}

	s.logger.Info("Created uri path",
		zap.String("api_id", path.APIID),
		zap.Int("path_order", path.PathOrder))
	return nil
}

func (s *uriPathService) Get(ctx context.Context, objID string) (*models.UriPath, error) {
	if objID == "" {
		return nil, fmt.Errorf("%w: obj_id is required", apperrors.ErrValidation)
	}
	return s.repo.Get(ctx, objID)
}

func (s *uriPathService) ListByAPIID(ctx context.Context, apiID string) ([]*models.UriPath, error) {
	if apiID == "" {
		return nil, fmt.Errorf("%w: api_id is required", apperrors.ErrValidation)
	}

	// Listing paths of an unknown definition is not-found, not empty.
	if _, err := s.defRepo.GetByAPIID(ctx, apiID); err != nil {
		return nil, err
	}
	return s.repo.ListByAPIID(ctx, apiID)
}

func (s *uriPathService) ListByUseStatus(ctx context.Context, status models.UseStatus) ([]*models.UriPath, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: invalid use_status %q", apperrors.ErrValidation, status)
	}
	return s.repo.ListByUseStatus(ctx, status)
}

func (s *uriPathService) Update(ctx context.Context, path *models.UriPath) error {
	if path.ObjID == "" {
		return fmt.Errorf("%w: obj_id is required", apperrors.ErrValidation)
	}
	if err := validateUriPath(path); err != nil {
		return err
	}

	current, err := s.repo.Get(ctx, path.ObjID)
	if err != nil {
		return err
	}
	if path.APIID != current.APIID {
		return fmt.Errorf("%w: api_id cannot be changed", apperrors.ErrValidation)
	}
	if path.PathOrder != current.PathOrder {
		if _, err := s.repo.GetByAPIIDAndOrder(ctx, path.APIID, path.PathOrder); err == nil {
			return fmt.Errorf("path order %d already taken for %s: %w",
				path.PathOrder, path.APIID, apperrors.ErrConflict)
		} else if !errors.Is(err, apperrors.ErrNotFound) {
			return err
		}
	}

	if err := s.repo.Update(ctx, path); err != nil {
		s.logger.Error("Failed to update uri path",
			zap.String("obj_id", path.ObjID),
			zap.Error(err))
		return err
	}
	return nil
}

func (s *uriPathService) Delete(ctx context.Context, objID string) error {
	if objID == "" {
		return fmt.Errorf("%w: obj_id is required", apperrors.ErrValidation)
	}

	if err := s.repo.Delete(ctx, objID); err != nil {
		s.logger.Error("Failed to delete uri path",
			zap.String("obj_id", objID),
			zap.Error(err))
		return err
	}
	return nil
}

func (s *uriPathService) ComposeURI(ctx context.Context, apiID string) (string, error) {
	if apiID == "" {
		return "", fmt.Errorf("%w: api_id is required", apperrors.ErrValidation)
	}

	def, err := s.defRepo.GetByAPIID(ctx, apiID)
	if err != nil {
		return "", err
	}

	paths, err := s.repo.ListByAPIID(ctx, apiID)
	if err != nil {
		return "", err
	}

	uri := def.BaseURI
	for _, p := range paths {
		if p.UseStatus != models.StatusUsable {
			continue
		}
		uri += "/" + p.PathValue
	}
	return uri, nil
}
