package httpapi

import (
	"time"

	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
)

type taskResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	IsCompleted bool      `json:"isCompleted"`
	Order       int       `json:"order"`
	OwnerID     string    `json:"ownerId"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func toTaskResponse(t *models.Task) taskResponse {
	return taskResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		IsCompleted: t.IsCompleted,
		Order:       t.Order,
		OwnerID:     t.OwnerID,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

type userResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	TaskCount int    `json:"taskCount"`
}

func toUserResponse(u *models.UserSummary) userResponse {
	return userResponse{ID: u.ID, Name: u.Name, Email: u.Email, TaskCount: u.TaskCount}
}

type reorderItem struct {
	ID    string `json:"id"`
	Order int    `json:"order"`
}

type messageResponse struct {
	Message string `json:"message"`
}
