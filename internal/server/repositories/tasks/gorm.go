package tasks

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
	"gorm.io/gorm"
)

// TaskRow is the gorm mapping of the tasks table.
type TaskRow struct {
	ID          string `gorm:"primaryKey;size:36"`
	Title       string `gorm:"size:200;not null"`
	Description string `gorm:"size:1000;not null;default:''"`
	IsCompleted bool   `gorm:"not null;default:false"`
	SortOrder   int    `gorm:"not null;default:0;index:tasks_owner_sort_idx,priority:2"`
	OwnerID     string `gorm:"size:36;not null;index:tasks_owner_sort_idx,priority:1"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (TaskRow) TableName() string { return "tasks" }

func fromModel(t *models.Task) *TaskRow {
	return &TaskRow{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		IsCompleted: t.IsCompleted,
		SortOrder:   t.Order,
		OwnerID:     t.OwnerID,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func (r *TaskRow) toModel() models.Task {
	return models.Task{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		IsCompleted: r.IsCompleted,
		Order:       r.SortOrder,
		OwnerID:     r.OwnerID,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

type GormRepository struct {
	db *gorm.DB
}

func NewGormRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

func (r *GormRepository) Create(ctx context.Context, task *models.Task) (*models.Task, error) {
	if err := r.db.WithContext(ctx).Create(fromModel(task)).Error; err != nil {
		return nil, mapGormError(err)
	}
	return task, nil
}

func (r *GormRepository) GetByID(ctx context.Context, id string) (*models.Task, error) {
	var row TaskRow
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&row).Error; err != nil {
		return nil, mapGormError(err)
	}
	t := row.toModel()
	return &t, nil
}

func (r *GormRepository) List(ctx context.Context, ownerID string) ([]models.Task, error) {
	q := r.db.WithContext(ctx).Order("sort_order, created_at")
	if ownerID != "" {
		q = q.Where("owner_id = ?", ownerID)
	}

	var rows []TaskRow
	if err := q.Find(&rows).Error; err != nil {
		return nil, mapGormError(err)
	}

	result := make([]models.Task, 0, len(rows))
	for i := range rows {
		result = append(result, rows[i].toModel())
	}
	return result, nil
}

func (r *GormRepository) Update(ctx context.Context, task *models.Task) error {
	return r.updates(ctx, task.ID, map[string]any{
		"title":        task.Title,
		"description":  task.Description,
		"is_completed": task.IsCompleted,
		"sort_order":   task.Order,
		"updated_at":   task.UpdatedAt,
	})
}

func (r *GormRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&TaskRow{})
	if res.Error != nil {
		return mapGormError(res.Error)
	}
	if res.RowsAffected == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func (r *GormRepository) UpdateOrder(ctx context.Context, id string, order int, updatedAt time.Time) (bool, error) {
	err := r.updates(ctx, id, map[string]any{"sort_order": order, "updated_at": updatedAt})
	if errors.Is(err, common.ErrorNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *GormRepository) SetCompleted(ctx context.Context, id string, completed bool, updatedAt time.Time) error {
	return r.updates(ctx, id, map[string]any{"is_completed": completed, "updated_at": updatedAt})
}

// updates writes the given columns verbatim. UpdateColumns keeps gorm from
// replacing updated_at with its own clock.
func (r *GormRepository) updates(ctx context.Context, id string, cols map[string]any) error {
	res := r.db.WithContext(ctx).Model(&TaskRow{}).Where("id = ?", id).UpdateColumns(cols)
	if res.Error != nil {
		return mapGormError(res.Error)
	}
	if res.RowsAffected == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func mapGormError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return common.ErrorNotFound
	}
	return fmt.Errorf("db error: %w", err)
}
