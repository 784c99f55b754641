// Package tasks persists Task records.
package tasks

import (
	"context"
	"time"

	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
)

// Repository is the task store. Missing rows are reported as
// common.ErrorNotFound.
type Repository interface {
	Create(ctx context.Context, task *models.Task) (*models.Task, error)
	GetByID(ctx context.Context, id string) (*models.Task, error)
	// List returns tasks by ascending order then creation time. An empty
	// ownerID lists the tasks of every owner.
	List(ctx context.Context, ownerID string) ([]models.Task, error)
	// Update rewrites the mutable fields. The owner is never changed.
	Update(ctx context.Context, task *models.Task) error
	Delete(ctx context.Context, id string) error
	// UpdateOrder reports whether a task with the id existed.
	UpdateOrder(ctx context.Context, id string, order int, updatedAt time.Time) (bool, error)
	SetCompleted(ctx context.Context, id string, completed bool, updatedAt time.Time) error
}
