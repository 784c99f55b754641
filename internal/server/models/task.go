// Package models defines server-side data models persisted in the database.
package models

import "time"

// Task is a unit of work owned by exactly one User. Order positions the task
// among the tasks of the same owner, lowest first.
type Task struct {
	ID          string
	Title       string
	Description string
	IsCompleted bool
	Order       int
	OwnerID     string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TaskOrder is one (id, order) pair of a batched reorder request.
type TaskOrder struct {
	ID    string
	Order int
}
