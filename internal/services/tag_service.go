package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/vardforalla-backend/internal/access"
	"github.com/ahmetcoskunkizilkaya/vardforalla-backend/internal/models"
	"github.com/google/uuid"
)

// TagService manages the tag catalog and routine tag links. Catalog
// changes are restricted to administrators at the route layer.
type TagService struct {
	tags     TagStore
	routines *RoutineService
	logger   *slog.Logger
}

func NewTagService(tags TagStore, routines *RoutineService, logger *slog.Logger) *TagService {
	if logger == nil {
		logger = slog.Default()
	}
	return &TagService{tags: tags, routines: routines, logger: logger}
}

func (s *TagService) List(ctx context.Context) ([]models.Tag, error) {
	tags, err := s.tags.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}
	return tags, nil
}

func (s *TagService) Get(ctx context.Context, id uuid.UUID) (*models.Tag, error) {
	tag, err := s.tags.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "tag not found", "load tag")
	}
	return tag, nil
}

func (s *TagService) Create(ctx context.Context, name string) (*models.Tag, error) {
	tag := &models.Tag{ID: uuid.New(), Name: name}
	if err := s.tags.Create(ctx, tag); err != nil {
		return nil, fmt.Errorf("failed to create tag: %w", err)
	}
	s.logger.Info("tag created", "tag_id", tag.ID, "name", name)
	return tag, nil
}

func (s *TagService) Update(ctx context.Context, id uuid.UUID, name string) (*models.Tag, error) {
	tag, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	tag.Name = name
	if err := s.tags.Update(ctx, tag); err != nil {
		return nil, notFoundOr(err, "tag not found", "update tag")
	}
	s.logger.Info("tag updated", "tag_id", id)
	return tag, nil
}

func (s *TagService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.tags.Delete(ctx, id); err != nil {
		return notFoundOr(err, "tag not found", "delete tag")
	}
	s.logger.Info("tag deleted", "tag_id", id)
	return nil
}

// Attach links an existing tag to a routine the caller may change.
func (s *TagService) Attach(ctx context.Context, caller access.Caller, routineID, tagID uuid.UUID) error {
	if _, err := s.routines.AuthorizeMutation(ctx, caller, routineID); err != nil {
		return err
	}
	if _, err := s.Get(ctx, tagID); err != nil {
		return err
	}

	if err := s.tags.Attach(ctx, routineID, tagID); err != nil {
		return fmt.Errorf("failed to attach tag: %w", err)
	}
	s.logger.Info("tag attached", "tag_id", tagID, "routine_id", routineID, "user_id", caller.UserID)
	return nil
}

func (s *TagService) Detach(ctx context.Context, caller access.Caller, routineID, tagID uuid.UUID) error {
	if _, err := s.routines.AuthorizeMutation(ctx, caller, routineID); err != nil {
		return err
	}

	if err := s.tags.Detach(ctx, routineID, tagID); err != nil {
		return notFoundOr(err, "tag is not attached to the routine", "detach tag")
	}
	s.logger.Info("tag detached", "tag_id", tagID, "routine_id", routineID, "user_id", caller.UserID)
	return nil
}
