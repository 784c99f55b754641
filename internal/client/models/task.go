// Package models defines the wire shapes the taskctl client exchanges with
// the taskkeeper API.
package models

import "time"

// Task mirrors the server representation of a task.
type Task struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	IsCompleted bool      `json:"isCompleted"`
	Order       int       `json:"order"`
	OwnerID     string    `json:"ownerId"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Input returns the create/update body carrying every field of t.
func (t Task) Input() TaskInput {
	return TaskInput{
		Title:       t.Title,
		Description: t.Description,
		IsCompleted: t.IsCompleted,
		OwnerID:     t.OwnerID,
		Order:       t.Order,
	}
}

// TaskInput is the body of create and update calls. Updates replace the
// whole record.
type TaskInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	IsCompleted bool   `json:"isCompleted"`
	OwnerID     string `json:"ownerId"`
	Order       int    `json:"order"`
}

// TaskOrder is one entry of a batched reorder call.
type TaskOrder struct {
	ID    string `json:"id"`
	Order int    `json:"order"`
}
