package fakes

import (
	"context"
	"sort"
	"sync"

	"github.com/ahmetcoskunkizilkaya/vardforalla-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/vardforalla-backend/internal/repository"
	"github.com/google/uuid"
)

type RoutineStore struct {
	mu       sync.Mutex
	routines map[uuid.UUID]models.Routine
	order    []uuid.UUID

	Updates    int
	SetActives int
	Err        error
}

func NewRoutineStore() *RoutineStore {
	return &RoutineStore{routines: make(map[uuid.UUID]models.Routine)}
}

func (s *RoutineStore) Put(r models.Routine) *models.Routine {
	s.mu.Lock()
	defer s.mu.Unlock()

	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	if _, ok := s.routines[r.ID]; !ok {
		s.order = append(s.order, r.ID)
	}
	s.routines[r.ID] = cloneRoutine(r)
	return &r
}

func (s *RoutineStore) Get(id uuid.UUID) (models.Routine, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.routines[id]
	return cloneRoutine(r), ok
}

func (s *RoutineStore) FindByID(_ context.Context, id uuid.UUID) (*models.Routine, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Err != nil {
		return nil, s.Err
	}
	r, ok := s.routines[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	found := cloneRoutine(r)
	return &found, nil
}

func (s *RoutineStore) List(_ context.Context) ([]models.Routine, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Err != nil {
		return nil, s.Err
	}
	out := make([]models.Routine, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, cloneRoutine(s.routines[id]))
	}
	return out, nil
}

func (s *RoutineStore) Create(_ context.Context, r *models.Routine) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Err != nil {
		return s.Err
	}
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	s.order = append(s.order, r.ID)
	s.routines[r.ID] = cloneRoutine(*r)
	return nil
}

func (s *RoutineStore) Update(_ context.Context, r *models.Routine) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Err != nil {
		return s.Err
	}
	stored, ok := s.routines[r.ID]
	if !ok {
		return repository.ErrNotFound
	}
	stored.Title = r.Title
	stored.Category = r.Category
	stored.SimpleDescription = r.SimpleDescription
	stored.OriginalDescription = r.OriginalDescription
	stored.IsTemplate = r.IsTemplate
	s.routines[r.ID] = stored
	s.Updates++
	return nil
}

func (s *RoutineStore) SetActive(_ context.Context, id uuid.UUID, active bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Err != nil {
		return s.Err
	}
	stored, ok := s.routines[id]
	if !ok {
		return repository.ErrNotFound
	}
	stored.IsActive = active
	s.routines[id] = stored
	s.SetActives++
	return nil
}

func cloneRoutine(r models.Routine) models.Routine {
	r.Steps = append([]models.RoutineStep(nil), r.Steps...)
	r.Tags = append([]models.Tag(nil), r.Tags...)
	return r
}

type StepStore struct {
	mu    sync.Mutex
	steps map[uuid.UUID]models.RoutineStep
}

func NewStepStore() *StepStore {
	return &StepStore{steps: make(map[uuid.UUID]models.RoutineStep)}
}

func (s *StepStore) Put(step models.RoutineStep) *models.RoutineStep {
	s.mu.Lock()
	defer s.mu.Unlock()

	if step.ID == uuid.Nil {
		step.ID = uuid.New()
	}
	s.steps[step.ID] = step
	return &step
}

func (s *StepStore) Get(id uuid.UUID) (models.RoutineStep, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	step, ok := s.steps[id]
	return step, ok
}

func (s *StepStore) ListByRoutine(_ context.Context, routineID uuid.UUID) ([]models.RoutineStep, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.RoutineStep, 0)
	for _, step := range s.steps {
		if step.RoutineID == routineID {
			out = append(out, step)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out, nil
}

func (s *StepStore) FindByID(_ context.Context, id uuid.UUID) (*models.RoutineStep, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	step, ok := s.steps[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &step, nil
}

func (s *StepStore) Create(_ context.Context, step *models.RoutineStep) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if step.ID == uuid.Nil {
		step.ID = uuid.New()
	}
	s.steps[step.ID] = *step
	return nil
}

func (s *StepStore) Update(_ context.Context, step *models.RoutineStep) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.steps[step.ID]; !ok {
		return repository.ErrNotFound
	}
	s.steps[step.ID] = *step
	return nil
}

func (s *StepStore) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.steps[id]; !ok {
		return repository.ErrNotFound
	}
	delete(s.steps, id)
	return nil
}
