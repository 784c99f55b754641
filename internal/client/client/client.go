package client

import (
	"context"

	"github.com/dmitrijs2005/taskkeeper/internal/client/models"
)

// Client is the taskkeeper API as seen from the client side.
type Client interface {
	Ping(ctx context.Context) error

	ListTasks(ctx context.Context, ownerID string) ([]models.Task, error)
	CreateTask(ctx context.Context, in models.TaskInput) (*models.Task, error)
	UpdateTask(ctx context.Context, id string, in models.TaskInput) (Reply, error)
	DeleteTask(ctx context.Context, id string) error
	ReorderTasks(ctx context.Context, pairs []models.TaskOrder) error
	ToggleTask(ctx context.Context, id string, completed bool) (*models.Task, error)

	ListUsers(ctx context.Context) ([]models.User, error)
	CreateUser(ctx context.Context, in models.UserInput) (*models.User, error)
	UpdateUser(ctx context.Context, id string, in models.UserInput) error
	DeleteUser(ctx context.Context, id string) error
}

// Reply is the result of an update: either the stored entity or a bare
// confirmation without a body.
type Reply struct {
	Task *models.Task
}

// NoContent reports whether the server confirmed the write without
// returning the entity.
func (r Reply) NoContent() bool { return r.Task == nil }
