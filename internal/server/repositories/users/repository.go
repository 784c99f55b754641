// Package users persists User records.
package users

import (
	"context"

	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
)

// Repository is the user store. Lookups of missing rows return
// common.ErrorNotFound and email collisions return common.ErrorAlreadyExists.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetSummary(ctx context.Context, id string) (*models.UserSummary, error)
	List(ctx context.Context) ([]models.UserSummary, error)
	Update(ctx context.Context, user *models.User) error
	// Delete removes the user together with every task it owns.
	Delete(ctx context.Context, id string) error
	Exists(ctx context.Context, id string) (bool, error)
}
