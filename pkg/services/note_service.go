package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/restgate/registry-engine/pkg/apperrors"
	"github.com/restgate/registry-engine/pkg/models"
	"github.com/restgate/registry-engine/pkg/repositories"
)

// NoteService provides CRUD operations for notes.
type NoteService interface {
	Create(ctx context.Context, note *models.Note) error
	Get(ctx context.Context, objID string) (*models.Note, error)
	List(ctx context.Context) ([]*models.Note, error)
	Update(ctx context.Context, note *models.Note) error
	Delete(ctx context.Context, objID string) error
}

type noteService struct {
	repo   repositories.NoteRepository
	logger *zap.Logger
}

func NewNoteService(repo repositories.NoteRepository, logger *zap.Logger) NoteService {
	return &noteService{
		repo:   repo,
		logger: logger.Named("note-service"),
	}
}

var _ NoteService = (*noteService)(nil)

func (s *noteService) Create(ctx context.Context, note *models.Note) error {
	if note.Title == "" {
		return fmt.Errorf("%w: title is required", apperrors.ErrValidation)
	}

	if err := s.repo.Create(ctx, note); err != nil {
		s.logger.Error("Failed to create note", zap.Error(err))
		return err
	}
	return nil
}

func (s *noteService) Get(ctx context.Context, objID string) (*models.Note, error) {
	if objID == "" {
		return nil, fmt.Errorf("%w: obj_id is required", apperrors.ErrValidation)
	}
	return s.repo.Get(ctx, objID)
}

func (s *noteService) List(ctx context.Context) ([]*models.Note, error) {
	return s.repo.List(ctx)
}

func (s *noteService) Update(ctx context.Context, note *models.Note) error {
	if note.ObjID == "" {
		return fmt.Errorf("%w: obj_id is required", apperrors.ErrValidation)
	}
	if note.Title == "" {
		return fmt.Errorf("%w: title is required", apperrors.ErrValidation)
	}

	if err := s.repo.Update(ctx, note); err != nil {
		s.logger.Error("Failed to update note",
			zap.String("obj_id", note.ObjID),
			zap.Error(err))
		return err
	}
	return nil
}

func (s *noteService) Delete(ctx context.Context, objID string) error {
	if objID == "" {
		return fmt.Errorf("%w: obj_id is required", apperrors.ErrValidation)
	}

	if err := s.repo.Delete(ctx, objID); err != nil {
		s.logger.Error("Failed to delete note",
			zap.String("obj_id", objID),
			zap.Error(err))
		return err
	}
	return nil
}
