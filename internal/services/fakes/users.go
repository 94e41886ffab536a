// Package fakes provides in-memory stores and collaborators for service and
// handler tests.
package fakes

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/ahmetcoskunkizilkaya/vardforalla-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/vardforalla-backend/internal/repository"
	"github.com/google/uuid"
)

// UserStore keeps users by id and hands out copies, so a caller's edits
// only land through CreateWithRole or Update.
type UserStore struct {
	mu        sync.Mutex
	users     map[uuid.UUID]models.User
	roleLinks map[uuid.UUID]map[uuid.UUID]time.Time
	roles     *RoleStore

	Creates int
	Updates int
	// Err, when set, is returned by every call.
	Err error
	// RoleLinkErr fails CreateWithRole after the user insert; nothing is kept.
	RoleLinkErr error
}

func NewUserStore(roles *RoleStore) *UserStore {
	return &UserStore{
		users:     make(map[uuid.UUID]models.User),
		roleLinks: make(map[uuid.UUID]map[uuid.UUID]time.Time),
		roles:     roles,
	}
}

// Put stores a user without counting a write.
func (s *UserStore) Put(user models.User, roleNames ...string) *models.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	s.users[user.ID] = user
	for _, name := range roleNames {
		role := s.roles.Ensure(name)
		s.link(user.ID, role.ID, time.Now())
	}
	return &user
}

// Get returns the stored copy, bypassing counters.
func (s *UserStore) Get(id uuid.UUID) (models.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	return u, ok
}

func (s *UserStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.users)
}

func (s *UserStore) Writes() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Creates + s.Updates
}

func (s *UserStore) FindByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	return s.find(func(u *models.User) bool { return u.ID == id })
}

func (s *UserStore) FindByEmail(_ context.Context, email string) (*models.User, error) {
	return s.find(func(u *models.User) bool { return u.Email == email })
}

func (s *UserStore) FindByVerificationToken(_ context.Context, token string) (*models.User, error) {
	return s.find(func(u *models.User) bool {
		return u.EmailVerificationToken != nil && *u.EmailVerificationToken == token
	})
}

func (s *UserStore) FindByResetToken(_ context.Context, token string) (*models.User, error) {
	return s.find(func(u *models.User) bool {
		return u.PasswordResetToken != nil && *u.PasswordResetToken == token
	})
}

func (s *UserStore) find(match func(*models.User) bool) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Err != nil {
		return nil, s.Err
	}
	for _, u := range s.users {
		if match(&u) {
			found := u
			return &found, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *UserStore) CreateWithRole(_ context.Context, user *models.User, roleID uuid.UUID, assignedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Err != nil {
		return s.Err
	}
	for _, u := range s.users {
		if u.Email == user.Email {
			return repository.ErrDuplicate
		}
	}
	if s.RoleLinkErr != nil {
		return s.RoleLinkErr
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	s.users[user.ID] = *user
	s.link(user.ID, roleID, assignedAt)
	s.Creates++
	return nil
}

func (s *UserStore) Update(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Err != nil {
		return s.Err
	}
	if _, ok := s.users[user.ID]; !ok {
		return repository.ErrNotFound
	}
	s.users[user.ID] = *user
	s.Updates++
	return nil
}

func (s *UserStore) Roles(_ context.Context, userID uuid.UUID) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Err != nil {
		return nil, s.Err
	}
	names := make([]string, 0)
	for roleID := range s.roleLinks[userID] {
		if role, ok := s.roles.byID(roleID); ok {
			names = append(names, role.Name)
		}
	}
	sort.Strings(names)
	return names, nil
}

func (s *UserStore) link(userID, roleID uuid.UUID, at time.Time) {
	if s.roleLinks[userID] == nil {
		s.roleLinks[userID] = make(map[uuid.UUID]time.Time)
	}
	s.roleLinks[userID][roleID] = at
}

type RoleStore struct {
	mu    sync.Mutex
	roles map[string]models.Role
}

func NewRoleStore(names ...string) *RoleStore {
	s := &RoleStore{roles: make(map[string]models.Role)}
	for _, name := range names {
		s.Ensure(name)
	}
	return s
}

func (s *RoleStore) Ensure(name string) models.Role {
	s.mu.Lock()
	defer s.mu.Unlock()

	if role, ok := s.roles[name]; ok {
		return role
	}
	role := models.Role{ID: uuid.New(), Name: name}
	s.roles[name] = role
	return role
}

func (s *RoleStore) FindByName(_ context.Context, name string) (*models.Role, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	role, ok := s.roles[name]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &role, nil
}

func (s *RoleStore) byID(id uuid.UUID) (models.Role, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, role := range s.roles {
		if role.ID == id {
			return role, true
		}
	}
	return models.Role{}, false
}

func (s *UserStore) Count(_ context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Err != nil {
		return 0, s.Err
	}
	return int64(len(s.users)), nil
}

func (s *RoleStore) EnsureRole(_ context.Context, name, description string) (*models.Role, error) {
	role := s.Ensure(name)
	if role.Description == "" && description != "" {
		s.mu.Lock()
		role.Description = description
		s.roles[name] = role
		s.mu.Unlock()
	}
	return &role, nil
}
