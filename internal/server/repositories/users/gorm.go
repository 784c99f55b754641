package users

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
	"gorm.io/gorm"
)

// UserRow is the gorm mapping of the users table.
type UserRow struct {
	ID           string `gorm:"primaryKey;size:36"`
	Name         string `gorm:"size:100;not null"`
	Email        string `gorm:"size:256;not null;uniqueIndex"`
	PasswordHash []byte `gorm:"not null"`
	CreatedAt    time.Time
}

func (UserRow) TableName() string { return "users" }

func fromModel(u *models.User) *UserRow {
	return &UserRow{ID: u.ID, Name: u.Name, Email: u.Email, PasswordHash: u.PasswordHash, CreatedAt: u.CreatedAt}
}

func (r *UserRow) toModel() *models.User {
	return &models.User{ID: r.ID, Name: r.Name, Email: r.Email, PasswordHash: r.PasswordHash, CreatedAt: r.CreatedAt}
}

// GormRepository stores users through gorm. The database must be opened with
// TranslateError so that unique violations surface as gorm.ErrDuplicatedKey.
type GormRepository struct {
	db *gorm.DB
}

func NewGormRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

func (r *GormRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	if err := r.db.WithContext(ctx).Create(fromModel(user)).Error; err != nil {
		return nil, mapGormError(err)
	}
	return user, nil
}

func (r *GormRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *GormRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.first(ctx, "email = ?", email)
}

func (r *GormRepository) first(ctx context.Context, cond string, arg any) (*models.User, error) {
	var row UserRow
	if err := r.db.WithContext(ctx).Where(cond, arg).First(&row).Error; err != nil {
		return nil, mapGormError(err)
	}
	return row.toModel(), nil
}

type summaryRow struct {
	ID        string
	Name      string
	Email     string
	TaskCount int
}

func (r *GormRepository) summaries(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("users AS u").
		Select("u.id, u.name, u.email, COUNT(t.id) AS task_count").
		Joins("LEFT JOIN tasks t ON t.owner_id = u.id").
		Group("u.id, u.name, u.email, u.created_at")
}

func (r *GormRepository) GetSummary(ctx context.Context, id string) (*models.UserSummary, error) {
	var rows []summaryRow
	if err := r.summaries(ctx).Where("u.id = ?", id).Scan(&rows).Error; err != nil {
		return nil, mapGormError(err)
	}
	if len(rows) == 0 {
		return nil, common.ErrorNotFound
	}
	s := models.UserSummary(rows[0])
	return &s, nil
}

func (r *GormRepository) List(ctx context.Context) ([]models.UserSummary, error) {
	var rows []summaryRow
	if err := r.summaries(ctx).Order("u.created_at, u.id").Scan(&rows).Error; err != nil {
		return nil, mapGormError(err)
	}

	result := make([]models.UserSummary, 0, len(rows))
	for _, row := range rows {
		result = append(result, models.UserSummary(row))
	}
	return result, nil
}

func (r *GormRepository) Update(ctx context.Context, user *models.User) error {
	res := r.db.WithContext(ctx).Model(&UserRow{}).Where("id = ?", user.ID).Updates(map[string]any{
		"name":          user.Name,
		"email":         user.Email,
		"password_hash": user.PasswordHash,
	})
	if res.Error != nil {
		return mapGormError(res.Error)
	}
	if res.RowsAffected == 0 {
		return common.ErrorNotFound
	}
	return nil
}

// Delete removes owned tasks explicitly since SQLite foreign keys are off by
// default. Callers wanting atomicity run it inside a transaction.
func (r *GormRepository) Delete(ctx context.Context, id string) error {
	db := r.db.WithContext(ctx)

	if err := db.Exec("DELETE FROM tasks WHERE owner_id = ?", id).Error; err != nil {
		return mapGormError(err)
	}

	res := db.Where("id = ?", id).Delete(&UserRow{})
	if res.Error != nil {
		return mapGormError(res.Error)
	}
	if res.RowsAffected == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func (r *GormRepository) Exists(ctx context.Context, id string) (bool, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&UserRow{}).Where("id = ?", id).Count(&n).Error; err != nil {
		return false, mapGormError(err)
	}
	return n > 0, nil
}

func mapGormError(err error) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return common.ErrorNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return common.ErrorAlreadyExists
	default:
		return fmt.Errorf("db error: %w", err)
	}
}
