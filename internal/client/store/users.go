package store

import (
	"context"
	"slices"
	"sync"

	"github.com/dmitrijs2005/taskkeeper/internal/client/models"
	"github.com/dmitrijs2005/taskkeeper/internal/logging"
)

type UserAPI interface {
	ListUsers(ctx context.Context) ([]models.User, error)
	CreateUser(ctx context.Context, in models.UserInput) (*models.User, error)
	UpdateUser(ctx context.Context, id string, in models.UserInput) error
	DeleteUser(ctx context.Context, id string) error
}

// UserStore is the user directory. Unlike TaskStore it is not optimistic:
// local state changes only after the server confirms.
type UserStore struct {
	api    UserAPI
	logger logging.Logger

	mu      sync.Mutex
	users   []models.User
	loading bool
	loaded  bool
	err     string
}

func NewUserStore(api UserAPI, l logging.Logger) *UserStore {
	return &UserStore{api: api, logger: l.With("module", "user_store")}
}

type UserState struct {
	Users   []models.User
	Loading bool
	Error   string
}

func (s *UserStore) State() UserState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return UserState{Users: slices.Clone(s.users), Loading: s.loading, Error: s.err}
}

func (s *UserStore) Refresh(ctx context.Context) error {
	s.mu.Lock()
	if !s.loaded {
		s.loading = true
	}
	s.mu.Unlock()

	list, err := s.api.ListUsers(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.err = err.Error()
		s.logger.Warn(ctx, "refresh failed", "error", err)
		return err
	}
	s.users = list
	s.loaded = true
	s.err = ""
	return nil
}

// Create signs a user up and appends the confirmed summary.
func (s *UserStore) Create(ctx context.Context, in models.UserInput) (*models.User, error) {
	u, err := s.api.CreateUser(ctx, in)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.users = append(s.users, *u)
	out := *u
	return &out, nil
}

// Update saves the profile and mirrors name and email locally. The server
// returns no body for this call.
func (s *UserStore) Update(ctx context.Context, id string, in models.UserInput) error {
	if err := s.api.UpdateUser(ctx, id, in); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.users = slices.Clone(s.users)
	for i := range s.users {
		if s.users[i].ID == id {
			s.users[i].Name = in.Name
			s.users[i].Email = in.Email
		}
	}
	return nil
}

// Delete removes the user. The server deletes the user's tasks with it.
func (s *UserStore) Delete(ctx context.Context, id string) error {
	if err := s.api.DeleteUser(ctx, id); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.users = slices.DeleteFunc(slices.Clone(s.users), func(u models.User) bool { return u.ID == id })
	return nil
}
