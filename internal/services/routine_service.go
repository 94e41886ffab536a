package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ahmetcoskunkizilkaya/vardforalla-backend/internal/access"
	"github.com/ahmetcoskunkizilkaya/vardforalla-backend/internal/models"
	"github.com/google/uuid"
)

type RoutineService struct {
	routines RoutineStore
	logger   *slog.Logger
}

func NewRoutineService(routines RoutineStore, logger *slog.Logger) *RoutineService {
	if logger == nil {
		logger = slog.Default()
	}
	return &RoutineService{routines: routines, logger: logger}
}

type ListFilter struct {
	IncludeTemplates bool
	Search           string
	Category         string
}

type StepInput struct {
	Order        int
	SimpleText   string
	OriginalText *string
	IconKey      *string
	ImageURL     *string
}

type CreateRoutineInput struct {
	Title               string
	Category            string
	SimpleDescription   *string
	OriginalDescription *string
	IsTemplate          bool
	Steps               []StepInput
}

type UpdateRoutineInput struct {
	Title               string
	Category            string
	SimpleDescription   *string
	OriginalDescription *string
	// IsTemplate is honoured for administrators only.
	IsTemplate *bool
}

// List returns the active routines visible to the caller, optionally
// narrowed by a case-insensitive search on title and description and by
// category.
func (s *RoutineService) List(ctx context.Context, caller access.Caller, filter ListFilter) ([]models.Routine, error) {
	all, err := s.routines.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list routines: %w", err)
	}

	visible := access.ListVisible(all, caller, filter.IncludeTemplates)
	result := make([]models.Routine, 0, len(visible))
	for _, r := range visible {
		if matchesFilter(&r, filter) {
			result = append(result, r)
		}
	}

	s.logger.Info("routines listed", "user_id", caller.UserID, "count", len(result))
	return result, nil
}

func matchesFilter(r *models.Routine, filter ListFilter) bool {
	if filter.Category != "" && !strings.EqualFold(r.Category, filter.Category) {
		return false
	}
	if filter.Search == "" {
		return true
	}
	needle := strings.ToLower(filter.Search)
	if strings.Contains(strings.ToLower(r.Title), needle) {
		return true
	}
	return r.SimpleDescription != nil && strings.Contains(strings.ToLower(*r.SimpleDescription), needle)
}

// Get returns NotFound both for missing routines and for routines the
// caller may not see.
func (s *RoutineService) Get(ctx context.Context, caller access.Caller, id uuid.UUID) (*models.Routine, error) {
	routine, err := s.routines.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "routine not found", "load routine")
	}
	if !access.Visible(routine, caller) {
		s.logger.Warn("routine hidden from caller", "routine_id", id, "user_id", caller.UserID)
		return nil, newError(KindNotFound, "routine not found")
	}
	return routine, nil
}

// Create records the caller as owner. Administrators create system-owned
// routines and are the only callers allowed to mark a routine as template.
func (s *RoutineService) Create(ctx context.Context, caller access.Caller, in CreateRoutineInput) (*models.Routine, error) {
	routine := &models.Routine{
		ID:                  uuid.New(),
		Title:               in.Title,
		Category:            in.Category,
		SimpleDescription:   in.SimpleDescription,
		OriginalDescription: in.OriginalDescription,
		IsActive:            true,
		IsTemplate:          caller.Unrestricted() && in.IsTemplate,
	}
	if !caller.Unrestricted() {
		owner := caller.UserID
		routine.OwnerID = &owner
	}

	routine.Steps = make([]models.RoutineStep, 0, len(in.Steps))
	for _, step := range in.Steps {
		routine.Steps = append(routine.Steps, newStep(routine.ID, step))
	}

	if err := s.routines.Create(ctx, routine); err != nil {
		return nil, fmt.Errorf("failed to create routine: %w", err)
	}

	s.logger.Info("routine created", "routine_id", routine.ID, "user_id", caller.UserID, "template", routine.IsTemplate)
	return routine, nil
}

func newStep(routineID uuid.UUID, in StepInput) models.RoutineStep {
	return models.RoutineStep{
		ID:           uuid.New(),
		RoutineID:    routineID,
		Order:        in.Order,
		SimpleText:   in.SimpleText,
		OriginalText: in.OriginalText,
		IconKey:      in.IconKey,
		ImageURL:     in.ImageURL,
	}
}

func (s *RoutineService) Update(ctx context.Context, caller access.Caller, id uuid.UUID, in UpdateRoutineInput) (*models.Routine, error) {
	routine, err := s.AuthorizeMutation(ctx, caller, id)
	if err != nil {
		return nil, err
	}

	routine.Title = in.Title
	routine.Category = in.Category
	routine.SimpleDescription = in.SimpleDescription
	routine.OriginalDescription = in.OriginalDescription
	if in.IsTemplate != nil && caller.Unrestricted() {
		routine.IsTemplate = *in.IsTemplate
	}

	if err := s.routines.Update(ctx, routine); err != nil {
		return nil, notFoundOr(err, "routine not found", "update routine")
	}

	s.logger.Info("routine updated", "routine_id", id, "user_id", caller.UserID)
	return routine, nil
}

// Delete soft-deletes the routine. It reports false with the reason when the
// caller may not delete it; the row is never removed.
func (s *RoutineService) Delete(ctx context.Context, caller access.Caller, id uuid.UUID) (bool, error) {
	if _, err := s.AuthorizeMutation(ctx, caller, id); err != nil {
		return false, err
	}

	if err := s.routines.SetActive(ctx, id, false); err != nil {
		return false, notFoundOr(err, "routine not found", "deactivate routine")
	}

	s.logger.Info("routine deactivated", "routine_id", id, "user_id", caller.UserID)
	return true, nil
}

// AuthorizeMutation loads a routine for change. Missing and inactive
// routines are NotFound; routines the caller does not own are Forbidden.
func (s *RoutineService) AuthorizeMutation(ctx context.Context, caller access.Caller, id uuid.UUID) (*models.Routine, error) {
	routine, err := s.routines.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "routine not found", "load routine")
	}
	if !routine.IsActive {
		return nil, newError(KindNotFound, "routine not found")
	}
	if !access.CanMutate(routine, caller) {
		s.logger.Warn("routine mutation forbidden", "routine_id", id, "user_id", caller.UserID)
		return nil, newError(KindForbidden, "you do not have permission to change this routine")
	}
	return routine, nil
}
