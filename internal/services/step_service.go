package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/vardforalla-backend/internal/access"
	"github.com/ahmetcoskunkizilkaya/vardforalla-backend/internal/models"
	"github.com/google/uuid"
)

// StepService manages the ordered steps of a routine. Reads follow routine
// visibility; writes require the right to change the parent routine.
type StepService struct {
	routines *RoutineService
	steps    StepStore
	logger   *slog.Logger
}

func NewStepService(routines *RoutineService, steps StepStore, logger *slog.Logger) *StepService {
	if logger == nil {
		logger = slog.Default()
	}
	return &StepService{routines: routines, steps: steps, logger: logger}
}

func (s *StepService) List(ctx context.Context, caller access.Caller, routineID uuid.UUID) ([]models.RoutineStep, error) {
	if _, err := s.routines.Get(ctx, caller, routineID); err != nil {
		return nil, err
	}

	steps, err := s.steps.ListByRoutine(ctx, routineID)
	if err != nil {
		return nil, fmt.Errorf("failed to list steps: %w", err)
	}
	return steps, nil
}

func (s *StepService) Create(ctx context.Context, caller access.Caller, routineID uuid.UUID, in StepInput) (*models.RoutineStep, error) {
	if _, err := s.routines.AuthorizeMutation(ctx, caller, routineID); err != nil {
		return nil, err
	}

	step := newStep(routineID, in)
	if err := s.steps.Create(ctx, &step); err != nil {
		return nil, fmt.Errorf("failed to create step: %w", err)
	}

	s.logger.Info("step created", "step_id", step.ID, "routine_id", routineID, "user_id", caller.UserID)
	return &step, nil
}

func (s *StepService) Update(ctx context.Context, caller access.Caller, routineID, stepID uuid.UUID, in StepInput) (*models.RoutineStep, error) {
	step, err := s.stepForMutation(ctx, caller, routineID, stepID)
	if err != nil {
		return nil, err
	}

	step.Order = in.Order
	step.SimpleText = in.SimpleText
	step.OriginalText = in.OriginalText
	step.IconKey = in.IconKey
	step.ImageURL = in.ImageURL

	if err := s.steps.Update(ctx, step); err != nil {
		return nil, notFoundOr(err, "step not found", "update step")
	}

	s.logger.Info("step updated", "step_id", stepID, "routine_id", routineID, "user_id", caller.UserID)
	return step, nil
}

func (s *StepService) Delete(ctx context.Context, caller access.Caller, routineID, stepID uuid.UUID) error {
	if _, err := s.stepForMutation(ctx, caller, routineID, stepID); err != nil {
		return err
	}

	if err := s.steps.Delete(ctx, stepID); err != nil {
		return notFoundOr(err, "step not found", "delete step")
	}

	s.logger.Info("step deleted", "step_id", stepID, "routine_id", routineID, "user_id", caller.UserID)
	return nil
}

// stepForMutation authorizes the parent routine and checks that the step
// belongs to it.
func (s *StepService) stepForMutation(ctx context.Context, caller access.Caller, routineID, stepID uuid.UUID) (*models.RoutineStep, error) {
	if _, err := s.routines.AuthorizeMutation(ctx, caller, routineID); err != nil {
		return nil, err
	}

	step, err := s.steps.FindByID(ctx, stepID)
	if err != nil {
		return nil, notFoundOr(err, "step not found", "load step")
	}
	if step.RoutineID != routineID {
		return nil, newError(KindNotFound, "step not found")
	}
	return step, nil
}
