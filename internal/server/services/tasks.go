// Package services contains the server-side business rules: input
// validation, owner checks and timestamps, layered over the repositories.
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"github.com/dmitrijs2005/taskkeeper/internal/logging"
	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
	"github.com/dmitrijs2005/taskkeeper/internal/server/repositories/repomanager"
)

// TaskInput is the body of create and update requests. Updates replace every
// field except the owner.
type TaskInput struct {
	Title       string `json:"title" validate:"notblank,max=200"`
	Description string `json:"description" validate:"max=1000"`
	IsCompleted bool   `json:"isCompleted"`
	OwnerID     string `json:"ownerId" validate:"notblank"`
	Order       int    `json:"order"`
}

type TaskService struct {
	repomanager repomanager.RepositoryManager
	logger      logging.Logger
	now         func() time.Time
}

func NewTaskService(m repomanager.RepositoryManager, l logging.Logger) *TaskService {
	return &TaskService{
		repomanager: m,
		logger:      l.With("module", "task_service"),
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// List returns the tasks of ownerID, or of every owner when it is empty.
func (s *TaskService) List(ctx context.Context, ownerID string) ([]models.Task, error) {
	if ownerID != "" && !validID(ownerID) {
		return []models.Task{}, nil
	}

	tasks, err := s.repomanager.Tasks().List(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("error listing tasks: %w", err)
	}
	return tasks, nil
}

func (s *TaskService) Get(ctx context.Context, id string) (*models.Task, error) {
	if !validID(id) {
		return nil, common.ErrorNotFound
	}
	return s.repomanager.Tasks().GetByID(ctx, id)
}

func (s *TaskService) Create(ctx context.Context, in TaskInput) (*models.Task, error) {
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	if err := s.checkOwner(ctx, s.repomanager, in.OwnerID); err != nil {
		return nil, err
	}

	now := s.now()
	task := &models.Task{
		ID:          newID(),
		Title:       in.Title,
		Description: in.Description,
		IsCompleted: in.IsCompleted,
		Order:       in.Order,
		OwnerID:     in.OwnerID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := s.repomanager.Tasks().Create(ctx, task)
	if err != nil {
		return nil, fmt.Errorf("error creating task: %w", err)
	}

	s.logger.Debug(ctx, "task created", "id", created.ID, "owner", created.OwnerID)
	return created, nil
}

// Update replaces title, description, completion and order. The owner named
// in the input must exist but the task keeps its original owner.
func (s *TaskService) Update(ctx context.Context, id string, in TaskInput) (*models.Task, error) {
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	if !validID(id) {
		return nil, common.ErrorNotFound
	}

	var updated *models.Task
	err := s.repomanager.WithTx(ctx, func(ctx context.Context, m repomanager.RepositoryManager) error {
		task, err := m.Tasks().GetByID(ctx, id)
		if err != nil {
			return err
		}
		if err := s.checkOwner(ctx, m, in.OwnerID); err != nil {
			return err
		}

		task.Title = in.Title
		task.Description = in.Description
		task.IsCompleted = in.IsCompleted
		task.Order = in.Order
		task.UpdatedAt = s.now()

		if err := m.Tasks().Update(ctx, task); err != nil {
			return err
		}
		updated = task
		return nil
	})
	if err != nil {
		return nil, wrap("error updating task", err)
	}
	return updated, nil
}

func (s *TaskService) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return common.ErrorNotFound
	}
	if err := s.repomanager.Tasks().Delete(ctx, id); err != nil {
		return wrap("error deleting task", err)
	}
	return nil
}

// Reorder applies every (id, order) pair in one transaction. Pairs naming
// unknown tasks are skipped.
func (s *TaskService) Reorder(ctx context.Context, pairs []models.TaskOrder) error {
	now := s.now()

	err := s.repomanager.WithTx(ctx, func(ctx context.Context, m repomanager.RepositoryManager) error {
		repo := m.Tasks()
		for _, p := range pairs {
			if !validID(p.ID) {
				s.logger.Debug(ctx, "reorder: skipping unknown task", "id", p.ID)
				continue
			}
			found, err := repo.UpdateOrder(ctx, p.ID, p.Order, now)
			if err != nil {
				return err
			}
			if !found {
				s.logger.Debug(ctx, "reorder: skipping unknown task", "id", p.ID)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("error reordering tasks: %w", err)
	}
	return nil
}

// Toggle stores the completion flag and returns the updated task.
func (s *TaskService) Toggle(ctx context.Context, id string, completed bool) (*models.Task, error) {
	if !validID(id) {
		return nil, common.ErrorNotFound
	}

	var task *models.Task
	err := s.repomanager.WithTx(ctx, func(ctx context.Context, m repomanager.RepositoryManager) error {
		if err := m.Tasks().SetCompleted(ctx, id, completed, s.now()); err != nil {
			return err
		}
		var err error
		task, err = m.Tasks().GetByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, wrap("error toggling task", err)
	}
	return task, nil
}

func (s *TaskService) checkOwner(ctx context.Context, m repomanager.RepositoryManager, ownerID string) error {
	if validID(ownerID) {
		ok, err := m.Users().Exists(ctx, ownerID)
		if err != nil {
			return fmt.Errorf("error checking owner: %w", err)
		}
		if ok {
			return nil
		}
	}
	return common.Validationf("Invalid ownerId - user with id %s does not exist.", ownerID)
}

// wrap adds context to unexpected failures and passes the domain sentinels
// through untouched.
func wrap(msg string, err error) error {
	if errors.Is(err, common.ErrorNotFound) || errors.Is(err, common.ErrorValidation) {
		return err
	}
	return fmt.Errorf("%s: %w", msg, err)
}
