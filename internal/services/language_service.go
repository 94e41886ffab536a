package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/vardforalla-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/vardforalla-backend/internal/repository"
	"github.com/google/uuid"
)

type LanguageService struct {
	languages LanguageStore
	logger    *slog.Logger
}

func NewLanguageService(languages LanguageStore, logger *slog.Logger) *LanguageService {
	if logger == nil {
		logger = slog.Default()
	}
	return &LanguageService{languages: languages, logger: logger}
}

func (s *LanguageService) List(ctx context.Context) ([]models.Language, error) {
	languages, err := s.languages.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list languages: %w", err)
	}
	return languages, nil
}

func (s *LanguageService) GetByCode(ctx context.Context, code string) (*models.Language, error) {
	language, err := s.languages.FindByCode(ctx, code)
	if err != nil {
		return nil, notFoundOr(err, "language not found", "load language")
	}
	return language, nil
}

// Create relies on the store's unique index on code.
func (s *LanguageService) Create(ctx context.Context, code, name string) (*models.Language, error) {
	language := &models.Language{ID: uuid.New(), Code: code, Name: name}
	if err := s.languages.Create(ctx, language); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, newError(KindConflict, fmt.Sprintf("language with code '%s' already exists", code))
		}
		return nil, fmt.Errorf("failed to create language: %w", err)
	}
	s.logger.Info("language created", "language_id", language.ID, "code", code)
	return language, nil
}
