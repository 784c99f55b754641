package tasks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"github.com/dmitrijs2005/taskkeeper/internal/dbx"
	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
)

const selectColumns = `id, title, description, is_completed, sort_order, owner_id, created_at, updated_at`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTask(s scanner) (*models.Task, error) {
	t := &models.Task{}
	err := s.Scan(&t.ID, &t.Title, &t.Description, &t.IsCompleted, &t.Order, &t.OwnerID, &t.CreatedAt, &t.UpdatedAt)
	return t, err
}

func (r *PostgresRepository) Create(ctx context.Context, task *models.Task) (*models.Task, error) {
	query :=
		`INSERT INTO tasks (id, title, description, is_completed, sort_order, owner_id, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 `

	_, err := r.db.ExecContext(ctx, query,
		task.ID, task.Title, task.Description, task.IsCompleted, task.Order, task.OwnerID, task.CreatedAt, task.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return task, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Task, error) {
	query := `SELECT ` + selectColumns + ` FROM tasks WHERE id = $1`

	t, err := scanTask(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return t, nil
}

func (r *PostgresRepository) List(ctx context.Context, ownerID string) ([]models.Task, error) {
	var (
		rows *sql.Rows
		err  error
	)

	if ownerID == "" {
		rows, err = r.db.QueryContext(ctx,
			`SELECT `+selectColumns+` FROM tasks ORDER BY sort_order, created_at`)
	} else {
		rows, err = r.db.QueryContext(ctx,
			`SELECT `+selectColumns+` FROM tasks WHERE owner_id = $1 ORDER BY sort_order, created_at`, ownerID)
	}
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]models.Task, 0)
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) Update(ctx context.Context, task *models.Task) error {
	query :=
		`UPDATE tasks
		 SET title = $2, description = $3, is_completed = $4, sort_order = $5, updated_at = $6
		 WHERE id = $1
		 `

	res, err := r.db.ExecContext(ctx, query,
		task.ID, task.Title, task.Description, task.IsCompleted, task.Order, task.UpdatedAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return requireOne(res)
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return requireOne(res)
}

func (r *PostgresRepository) UpdateOrder(ctx context.Context, id string, order int, updatedAt time.Time) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE tasks SET sort_order = $2, updated_at = $3 WHERE id = $1`, id, order, updatedAt)
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}

	n, err := dbx.Affected(res)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *PostgresRepository) SetCompleted(ctx context.Context, id string, completed bool, updatedAt time.Time) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE tasks SET is_completed = $2, updated_at = $3 WHERE id = $1`, id, completed, updatedAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return requireOne(res)
}

func requireOne(res sql.Result) error {
	n, err := dbx.Affected(res)
	if err != nil {
		return err
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}
