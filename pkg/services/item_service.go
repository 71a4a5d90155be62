package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/restgate/registry-engine/pkg/apperrors"
	"github.com/restgate/registry-engine/pkg/models"
	"github.com/restgate/registry-engine/pkg/repositories"
)

// ItemService provides CRUD operations for inventory items.
type ItemService interface {
	Create(ctx context.Context, item *models.Item) error
	Get(ctx context.Context, objID string) (*models.Item, error)
	List(ctx context.Context) ([]*models.Item, error)
	Update(ctx context.Context, item *models.Item) error
	Delete(ctx context.Context, objID string) error
}

type itemService struct {
	repo   repositories.ItemRepository
	logger *zap.Logger
}

func NewItemService(repo repositories.ItemRepository, logger *zap.Logger) ItemService {
	return &itemService{
		repo:   repo,
		logger: logger.Named("item-service"),
	}
}

var _ ItemService = (*itemService)(nil)

func validateItem(item *models.Item) error {
	if item.Name == "" {
		return fmt.Errorf("%w: name is required", apperrors.ErrValidation)
	}
	if item.Quantity < 0 {
		return fmt.Errorf("%w: quantity cannot be negative", apperrors.ErrValidation)
	}
	if item.PriceCents < 0 {
		return fmt.Errorf("%w: price_cents cannot be negative", apperrors.ErrValidation)
	}
	return nil
}

func (s *itemService) Create(ctx context.Context, item *models.Item) error {
	if err := validateItem(item); err != nil {
		return err
	}

	if err := s.repo.Create(ctx, item); err != nil {
		s.logger.Error("Failed to create item", zap.Error(err))
		return err
	}
	return nil
}

func (s *itemService) Get(ctx context.Context, objID string) (*models.Item, error) {
	if objID == "" {
		return nil, fmt.Errorf("%w: obj_id is required", apperrors.ErrValidation)
	}
	return s.repo.Get(ctx, objID)
}

func (s *itemService) List(ctx context.Context) ([]*models.Item, error) {
	return s.repo.List(ctx)
}

func (s *itemService) Update(ctx context.Context, item *models.Item) error {
	if item.ObjID == "" {
		return fmt.Errorf("%w: obj_id is required", apperrors.ErrValidation)
	}
	if err := validateItem(item); err != nil {
		return err
	}

	if err := s.repo.Update(ctx, item); err != nil {
		s.logger.Error("Failed to update item",
			zap.String("obj_id", item.ObjID),
			zap.Error(err))
		return err
	}
	return nil
}

func (s *itemService) Delete(ctx context.Context, objID string) error {
	if objID == "" {
		return fmt.Errorf("%w: obj_id is required", apperrors.ErrValidation)
	}

	if err := s.repo.Delete(ctx, objID); err != nil {
		s.logger.Error("Failed to delete item",
			zap.String("obj_id", objID),
			zap.Error(err))
		return err
	}
	return nil
}
