package fakes

import (
	"context"
	"sort"
	"sync"

	"github.com/ahmetcoskunkizilkaya/vardforalla-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/vardforalla-backend/internal/repository"
	"github.com/google/uuid"
)

type TranslationStore struct {
	mu           sync.Mutex
	translations map[uuid.UUID]models.StepTranslation
}

func NewTranslationStore() *TranslationStore {
	return &TranslationStore{translations: make(map[uuid.UUID]models.StepTranslation)}
}

func (s *TranslationStore) Put(t models.StepTranslation) *models.StepTranslation {
	s.mu.Lock()
	defer s.mu.Unlock()

	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	s.translations[t.ID] = t
	return &t
}

func (s *TranslationStore) Get(id uuid.UUID) (models.StepTranslation, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.translations[id]
	return t, ok
}

func (s *TranslationStore) ListByStep(_ context.Context, stepID uuid.UUID) ([]models.StepTranslation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.StepTranslation, 0)
	for _, t := range s.translations {
		if t.RoutineStepID == stepID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (s *TranslationStore) FindByID(_ context.Context, id uuid.UUID) (*models.StepTranslation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.translations[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &t, nil
}

func (s *TranslationStore) Create(_ context.Context, t *models.StepTranslation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	s.translations[t.ID] = *t
	return nil
}

func (s *TranslationStore) Update(_ context.Context, t *models.StepTranslation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.translations[t.ID]; !ok {
		return repository.ErrNotFound
	}
	s.translations[t.ID] = *t
	return nil
}

func (s *TranslationStore) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.translations[id]; !ok {
		return repository.ErrNotFound
	}
	delete(s.translations, id)
	return nil
}

type LanguageStore struct {
	mu        sync.Mutex
	languages map[string]models.Language
}

func NewLanguageStore(languages ...models.Language) *LanguageStore {
	s := &LanguageStore{languages: make(map[string]models.Language)}
	for _, l := range languages {
		if l.ID == uuid.Nil {
			l.ID = uuid.New()
		}
		s.languages[l.Code] = l
	}
	return s
}

func (s *LanguageStore) List(_ context.Context) ([]models.Language, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Language, 0, len(s.languages))
	for _, l := range s.languages {
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}

func (s *LanguageStore) FindByCode(_ context.Context, code string) (*models.Language, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, ok := s.languages[code]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &l, nil
}

func (s *LanguageStore) Create(_ context.Context, l *models.Language) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.languages[l.Code]; ok {
		return repository.ErrDuplicate
	}
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	s.languages[l.Code] = *l
	return nil
}

type TagStore struct {
	mu    sync.Mutex
	tags  map[uuid.UUID]models.Tag
	links map[uuid.UUID]map[uuid.UUID]struct{}
}

func NewTagStore() *TagStore {
	return &TagStore{
		tags:  make(map[uuid.UUID]models.Tag),
		links: make(map[uuid.UUID]map[uuid.UUID]struct{}),
	}
}

func (s *TagStore) Put(tag models.Tag) *models.Tag {
	s.mu.Lock()
	defer s.mu.Unlock()

	if tag.ID == uuid.Nil {
		tag.ID = uuid.New()
	}
	s.tags[tag.ID] = tag
	return &tag
}

// Linked reports whether the tag is attached to the routine.
func (s *TagStore) Linked(routineID, tagID uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.links[routineID][tagID]
	return ok
}

func (s *TagStore) List(_ context.Context) ([]models.Tag, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Tag, 0, len(s.tags))
	for _, t := range s.tags {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *TagStore) FindByID(_ context.Context, id uuid.UUID) (*models.Tag, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tags[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &t, nil
}

func (s *TagStore) Create(_ context.Context, tag *models.Tag) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if tag.ID == uuid.Nil {
		tag.ID = uuid.New()
	}
	s.tags[tag.ID] = *tag
	return nil
}

func (s *TagStore) Update(_ context.Context, tag *models.Tag) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tags[tag.ID]; !ok {
		return repository.ErrNotFound
	}
	s.tags[tag.ID] = *tag
	return nil
}

func (s *TagStore) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tags[id]; !ok {
		return repository.ErrNotFound
	}
	delete(s.tags, id)
	for _, tags := range s.links {
		delete(tags, id)
	}
	return nil
}

func (s *TagStore) Attach(_ context.Context, routineID, tagID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.links[routineID] == nil {
		s.links[routineID] = make(map[uuid.UUID]struct{})
	}
	s.links[routineID][tagID] = struct{}{}
	return nil
}

func (s *TagStore) Detach(_ context.Context, routineID, tagID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.links[routineID][tagID]; !ok {
		return repository.ErrNotFound
	}
	delete(s.links[routineID], tagID)
	return nil
}
