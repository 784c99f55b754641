package cli

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/dmitrijs2005/taskkeeper/internal/client/client"
	"github.com/dmitrijs2005/taskkeeper/internal/client/models"
)

// memAPI is an in-memory stand-in for the taskkeeper server.
type memAPI struct {
	mu       sync.Mutex
	tasks    []models.Task
	users    []models.User
	reorders [][]models.TaskOrder
	nextID   int
	pingErr  error
}

var _ client.Client = (*memAPI)(nil)

func (m *memAPI) id(prefix string) string {
	m.nextID++
	return fmt.Sprintf("%s%d", prefix, m.nextID)
}

func (m *memAPI) Ping(context.Context) error { return m.pingErr }

func (m *memAPI) ListTasks(_ context.Context, owner string) ([]models.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Task{}
	for _, t := range m.tasks {
		if owner == "" || t.OwnerID == owner {
			out = append(out, t)
		}
	}
	slices.SortStableFunc(out, func(a, b models.Task) int { return a.Order - b.Order })
	return out, nil
}

func (m *memAPI) findTask(id string) int {
	return slices.IndexFunc(m.tasks, func(t models.Task) bool { return t.ID == id })
}

func (m *memAPI) CreateTask(_ context.Context, in models.TaskInput) (*models.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !slices.ContainsFunc(m.users, func(u models.User) bool { return u.ID == in.OwnerID }) {
		return nil, &client.APIError{Status: 400, Message: "Invalid ownerId - user with id " + in.OwnerID + " does not exist.", Err: client.ErrValidation}
	}
	t := models.Task{ID: m.id("t"), Title: in.Title, Description: in.Description, IsCompleted: in.IsCompleted, OwnerID: in.OwnerID, Order: in.Order}
	m.tasks = append(m.tasks, t)
	return &t, nil
}

func (m *memAPI) UpdateTask(_ context.Context, id string, in models.TaskInput) (client.Reply, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.findTask(id)
	if i < 0 {
		return client.Reply{}, &client.APIError{Status: 404, Err: client.ErrNotFound}
	}
	t := &m.tasks[i]
	t.Title, t.Description, t.IsCompleted, t.Order = in.Title, in.Description, in.IsCompleted, in.Order
	out := *t
	return client.Reply{Task: &out}, nil
}

func (m *memAPI) DeleteTask(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.findTask(id)
	if i < 0 {
		return &client.APIError{Status: 404, Err: client.ErrNotFound}
	}
	m.tasks = slices.Delete(m.tasks, i, i+1)
	return nil
}

func (m *memAPI) ReorderTasks(_ context.Context, pairs []models.TaskOrder) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reorders = append(m.reorders, pairs)
	for _, p := range pairs {
		if i := m.findTask(p.ID); i >= 0 {
			m.tasks[i].Order = p.Order
		}
	}
	return nil
}

func (m *memAPI) ToggleTask(_ context.Context, id string, completed bool) (*models.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.findTask(id)
	if i < 0 {
		return nil, &client.APIError{Status: 404, Err: client.ErrNotFound}
	}
	m.tasks[i].IsCompleted = completed
	out := m.tasks[i]
	return &out, nil
}

func (m *memAPI) ListUsers(context.Context) ([]models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := slices.Clone(m.users)
	for i := range out {
		for _, t := range m.tasks {
			if t.OwnerID == out[i].ID {
				out[i].TaskCount++
			}
		}
	}
	return out, nil
}

func (m *memAPI) CreateUser(_ context.Context, in models.UserInput) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u := models.User{ID: m.id("u"), Name: in.Name, Email: in.Email}
	m.users = append(m.users, u)
	return &u, nil
}

func (m *memAPI) UpdateUser(_ context.Context, id string, in models.UserInput) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.users {
		if m.users[i].ID == id {
			m.users[i].Name, m.users[i].Email = in.Name, in.Email
			return nil
		}
	}
	return &client.APIError{Status: 404, Err: client.ErrNotFound}
}

func (m *memAPI) DeleteUser(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users = slices.DeleteFunc(m.users, func(u models.User) bool { return u.ID == id })
	m.tasks = slices.DeleteFunc(m.tasks, func(t models.Task) bool { return t.OwnerID == id })
	return nil
}
