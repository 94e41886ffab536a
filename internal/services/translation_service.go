package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/vardforalla-backend/internal/access"
	"github.com/ahmetcoskunkizilkaya/vardforalla-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/vardforalla-backend/internal/repository"
	"github.com/google/uuid"
)

type TranslationService struct {
	routines     *RoutineService
	steps        StepStore
	translations TranslationStore
	languages    LanguageStore
	logger       *slog.Logger
}

func NewTranslationService(
	routines *RoutineService,
	steps StepStore,
	translations TranslationStore,
	languages LanguageStore,
	logger *slog.Logger,
) *TranslationService {
	if logger == nil {
		logger = slog.Default()
	}
	return &TranslationService{
		routines:     routines,
		steps:        steps,
		translations: translations,
		languages:    languages,
		logger:       logger,
	}
}

func (s *TranslationService) List(ctx context.Context, caller access.Caller, stepID uuid.UUID) ([]models.StepTranslation, error) {
	step, err := s.steps.FindByID(ctx, stepID)
	if err != nil {
		return nil, notFoundOr(err, "step not found", "load step")
	}
	if _, err := s.routines.Get(ctx, caller, step.RoutineID); err != nil {
		return nil, newError(KindNotFound, "step not found")
	}

	translations, err := s.translations.ListByStep(ctx, stepID)
	if err != nil {
		return nil, fmt.Errorf("failed to list translations: %w", err)
	}
	return translations, nil
}

// Create adds a translation in the language identified by code. An unknown
// code is invalid input, not a missing resource.
func (s *TranslationService) Create(ctx context.Context, caller access.Caller, stepID uuid.UUID, languageCode, text string) (*models.StepTranslation, error) {
	if _, err := s.authorizeStep(ctx, caller, stepID); err != nil {
		return nil, err
	}

	language, err := s.languages.FindByCode(ctx, languageCode)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, newError(KindInvalid, fmt.Sprintf("language with code '%s' does not exist", languageCode))
		}
		return nil, fmt.Errorf("failed to load language: %w", err)
	}

	translation := &models.StepTranslation{
		ID:            uuid.New(),
		RoutineStepID: stepID,
		LanguageID:    language.ID,
		Text:          text,
	}
	if err := s.translations.Create(ctx, translation); err != nil {
		return nil, fmt.Errorf("failed to create translation: %w", err)
	}
	translation.Language = language

	s.logger.Info("translation created", "translation_id", translation.ID, "step_id", stepID, "language", languageCode)
	return translation, nil
}

func (s *TranslationService) Update(ctx context.Context, caller access.Caller, id uuid.UUID, text string) (*models.StepTranslation, error) {
	translation, err := s.translationForMutation(ctx, caller, id)
	if err != nil {
		return nil, err
	}

	translation.Text = text
	if err := s.translations.Update(ctx, translation); err != nil {
		return nil, notFoundOr(err, "translation not found", "update translation")
	}

	s.logger.Info("translation updated", "translation_id", id, "user_id", caller.UserID)
	return translation, nil
}

func (s *TranslationService) Delete(ctx context.Context, caller access.Caller, id uuid.UUID) error {
	if _, err := s.translationForMutation(ctx, caller, id); err != nil {
		return err
	}

	if err := s.translations.Delete(ctx, id); err != nil {
		return notFoundOr(err, "translation not found", "delete translation")
	}

	s.logger.Info("translation deleted", "translation_id", id, "user_id", caller.UserID)
	return nil
}

func (s *TranslationService) authorizeStep(ctx context.Context, caller access.Caller, stepID uuid.UUID) (*models.RoutineStep, error) {
	step, err := s.steps.FindByID(ctx, stepID)
	if err != nil {
		return nil, notFoundOr(err, "step not found", "load step")
	}
	if _, err := s.routines.AuthorizeMutation(ctx, caller, step.RoutineID); err != nil {
		return nil, err
	}
	return step, nil
}

func (s *TranslationService) translationForMutation(ctx context.Context, caller access.Caller, id uuid.UUID) (*models.StepTranslation, error) {
	translation, err := s.translations.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "translation not found", "load translation")
	}
	if _, err := s.authorizeStep(ctx, caller, translation.RoutineStepID); err != nil {
		return nil, err
	}
	return translation, nil
}
