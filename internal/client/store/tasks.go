// Package store holds the client-side working copy of tasks and users.
//
// TaskStore applies every write to its local copy first and then persists
// it. A failed write restores the snapshot taken before the change and
// returns the error. The mutex is never held across a network call, so
// overlapping operations race and the last response applied wins.
package store

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/taskkeeper/internal/client/client"
	"github.com/dmitrijs2005/taskkeeper/internal/client/models"
	"github.com/dmitrijs2005/taskkeeper/internal/logging"
	"github.com/google/uuid"
)

// TempIDPrefix marks ids of tasks the server has not confirmed yet.
const TempIDPrefix = "tmp-"

// TaskAPI is the part of client.Client the task store persists through.
type TaskAPI interface {
	ListTasks(ctx context.Context, ownerID string) ([]models.Task, error)
	CreateTask(ctx context.Context, in models.TaskInput) (*models.Task, error)
	UpdateTask(ctx context.Context, id string, in models.TaskInput) (client.Reply, error)
	DeleteTask(ctx context.Context, id string) error
	ReorderTasks(ctx context.Context, pairs []models.TaskOrder) error
	ToggleTask(ctx context.Context, id string, completed bool) (*models.Task, error)
}

// State is a copy of the store contents at one moment.
type State struct {
	Tasks   []models.Task
	Syncing bool
	Loading bool
	Error   string
}

// TaskPatch lists the fields an edit changes. Nil fields are kept.
type TaskPatch struct {
	Title       *string
	Description *string
	IsCompleted *bool
	Order       *int
}

func (p TaskPatch) apply(t *models.Task) {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.IsCompleted != nil {
		t.IsCompleted = *p.IsCompleted
	}
	if p.Order != nil {
		t.Order = *p.Order
	}
}

type TaskStore struct {
	api    TaskAPI
	logger logging.Logger
	now    func() time.Time
	newID  func() string

	mu       sync.Mutex
	tasks    []models.Task
	inflight int
	loading  bool
	loaded   bool
	err      string
	owner    string
	query    string
}

func NewTaskStore(api TaskAPI, l logging.Logger) *TaskStore {
	return &TaskStore{
		api:    api,
		logger: l.With("module", "task_store"),
		now:    func() time.Time { return time.Now().UTC() },
		newID:  uuid.NewString,
	}
}

// IsTemp reports whether id belongs to a task still waiting for the server.
func IsTemp(id string) bool { return strings.HasPrefix(id, TempIDPrefix) }

func (s *TaskStore) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return State{
		Tasks:   slices.Clone(s.tasks),
		Syncing: s.inflight > 0,
		Loading: s.loading,
		Error:   s.err,
	}
}

// SetOwner changes the owner filter used by Refresh. Empty means all owners.
func (s *TaskStore) SetOwner(ownerID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.owner = ownerID
}

// SetQuery changes the search text that selects the visible tasks.
func (s *TaskStore) SetQuery(q string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.query = q
}

// Visible returns the tasks matching the current query, case-insensitively
// on title or description, sorted by order.
func (s *TaskStore) Visible() []models.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.visibleLocked()
}

func (s *TaskStore) visibleLocked() []models.Task {
	q := strings.ToLower(strings.TrimSpace(s.query))
	out := make([]models.Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		if q == "" ||
			strings.Contains(strings.ToLower(t.Title), q) ||
			strings.Contains(strings.ToLower(t.Description), q) {
			out = append(out, t)
		}
	}
	slices.SortStableFunc(out, func(a, b models.Task) int { return cmp.Compare(a.Order, b.Order) })
	return out
}

// Refresh replaces the local copy with the server list for the current
// owner filter. On failure the local copy is kept and the error recorded.
func (s *TaskStore) Refresh(ctx context.Context) error {
	s.mu.Lock()
	if !s.loaded {
		s.loading = true
	}
	owner := s.owner
	s.mu.Unlock()

	list, err := s.api.ListTasks(ctx, owner)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.err = err.Error()
		s.logger.Warn(ctx, "refresh failed", "error", err)
		return err
	}
	s.tasks = list
	s.loaded = true
	s.err = ""
	return nil
}

// Create shows a provisional task at the front of the list right away and
// swaps it for the server copy once the create succeeds.
func (s *TaskStore) Create(ctx context.Context, title, ownerID, description string) (*models.Task, error) {
	s.mu.Lock()
	now := s.now()
	temp := models.Task{
		ID:          TempIDPrefix + s.newID(),
		Title:       strings.TrimSpace(title),
		Description: strings.TrimSpace(description),
		OwnerID:     ownerID,
		Order:       s.nextOrderLocked(),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	s.mutateLocked(func(list []models.Task) []models.Task {
		return append([]models.Task{temp}, list...)
	})
	s.inflight++
	s.mu.Unlock()

	created, err := s.api.CreateTask(ctx, temp.Input())

	s.mu.Lock()
	defer s.mu.Unlock()
	s.inflight--
	if err != nil {
		s.mutateLocked(func(list []models.Task) []models.Task { return removeID(list, temp.ID) })
		s.fail(ctx, "create", temp.ID, err)
		return nil, err
	}

	s.mutateLocked(func(list []models.Task) []models.Task {
		i := indexOf(list, temp.ID)
		switch {
		case indexOf(list, created.ID) >= 0:
			// a refresh already brought the confirmed record in
			return removeID(list, temp.ID)
		case i >= 0:
			list[i] = *created
			return list
		default:
			return append([]models.Task{*created}, list...)
		}
	})

	out := *created
	return &out, nil
}

func (s *TaskStore) nextOrderLocked() int {
	maxOrder := -1
	for _, t := range s.visibleLocked() {
		maxOrder = max(maxOrder, t.Order)
	}
	return maxOrder + 1
}

// Update merges patch into the local task and persists the whole record.
// A server copy in the reply replaces the local one; a bare confirmation
// keeps the merged record.
func (s *TaskStore) Update(ctx context.Context, id string, patch TaskPatch) error {
	s.mu.Lock()
	i := indexOf(s.tasks, id)
	if i < 0 {
		s.mu.Unlock()
		return fmt.Errorf("task %s: %w", id, client.ErrNotFound)
	}
	snap := s.mutateLocked(func(list []models.Task) []models.Task {
		patch.apply(&list[i])
		return list
	})
	in := s.tasks[i].Input()
	s.inflight++
	s.mu.Unlock()

	reply, err := s.api.UpdateTask(ctx, id, in)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.inflight--
	if err != nil {
		s.rollback(ctx, snap, "update", id, err)
		return err
	}
	if !reply.NoContent() {
		s.replaceLocked(*reply.Task)
	}
	return nil
}

// Remove drops the task locally and deletes it on the server.
func (s *TaskStore) Remove(ctx context.Context, id string) error {
	s.mu.Lock()
	snap := s.mutateLocked(func(list []models.Task) []models.Task { return removeID(list, id) })
	s.inflight++
	s.mu.Unlock()

	err := s.api.DeleteTask(ctx, id)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.inflight--
	if err != nil {
		s.rollback(ctx, snap, "remove", id, err)
		return err
	}
	return nil
}

// ToggleTask is Toggle for callers holding the task itself.
func (s *TaskStore) ToggleTask(ctx context.Context, t models.Task) error {
	return s.Toggle(ctx, t.ID)
}

// Toggle flips the completion flag of id. An id missing from the local copy
// or unknown to the server means the copy is stale, so the store refreshes
// instead of failing.
func (s *TaskStore) Toggle(ctx context.Context, id string) error {
	s.mu.Lock()
	i := indexOf(s.tasks, id)
	if i < 0 {
		s.mu.Unlock()
		s.logger.Warn(ctx, "toggle: task not found, refreshing", "id", id)
		_ = s.Refresh(ctx)
		return nil
	}
	want := !s.tasks[i].IsCompleted
	snap := s.mutateLocked(func(list []models.Task) []models.Task {
		list[i].IsCompleted = want
		return list
	})
	s.inflight++
	s.mu.Unlock()

	task, err := s.api.ToggleTask(ctx, id, want)

	s.mu.Lock()
	s.inflight--
	if err != nil {
		s.rollback(ctx, snap, "toggle", id, err)
		s.mu.Unlock()
		if errors.Is(err, client.ErrNotFound) {
			s.logger.Warn(ctx, "toggle: task gone on server, refreshing", "id", id)
			_ = s.Refresh(ctx)
			return nil
		}
		return err
	}
	defer s.mu.Unlock()
	// A later toggle of the same task may already be pending; its value stays.
	if j := indexOf(s.tasks, id); j >= 0 && task != nil && s.tasks[j].IsCompleted == want {
		s.replaceLocked(*task)
	}
	return nil
}

// Reorder persists seq, the visible list after a drag, with dense order
// values 0..n-1. The new order shows locally at once and all pairs go to
// the server in one call.
func (s *TaskStore) Reorder(ctx context.Context, seq []models.Task) error {
	pairs := DenseOrder(seq)
	if len(pairs) == 0 {
		return nil
	}

	pos := make(map[string]int, len(pairs))
	for _, p := range pairs {
		pos[p.ID] = p.Order
	}

	s.mu.Lock()
	snap := s.mutateLocked(func(list []models.Task) []models.Task {
		for i := range list {
			if o, ok := pos[list[i].ID]; ok {
				list[i].Order = o
			}
		}
		return list
	})
	s.inflight++
	s.mu.Unlock()

	err := s.api.ReorderTasks(ctx, pairs)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.inflight--
	if err != nil {
		s.rollback(ctx, snap, "reorder", "", err)
		return err
	}
	return nil
}

// mutateLocked swaps the task list for an edited copy and returns the
// previous list, which is never written to again.
func (s *TaskStore) mutateLocked(edit func([]models.Task) []models.Task) []models.Task {
	snap := s.tasks
	s.tasks = edit(slices.Clone(s.tasks))
	return snap
}

func (s *TaskStore) replaceLocked(t models.Task) {
	s.mutateLocked(func(list []models.Task) []models.Task {
		if i := indexOf(list, t.ID); i >= 0 {
			list[i] = t
		}
		return list
	})
}

func (s *TaskStore) rollback(ctx context.Context, snap []models.Task, op, id string, err error) {
	s.tasks = snap
	s.fail(ctx, op, id, err)
}

func (s *TaskStore) fail(ctx context.Context, op, id string, err error) {
	s.err = err.Error()
	s.logger.Warn(ctx, "rolled back", "op", op, "id", id, "error", err)
}

func removeID(list []models.Task, id string) []models.Task {
	return slices.DeleteFunc(list, func(t models.Task) bool { return t.ID == id })
}
