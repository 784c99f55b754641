package tasks

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newGormRepo(t *testing.T) *GormRepository {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true, Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(&TaskRow{}))
	return NewGormRepository(db)
}

func seed(t *testing.T, repo *GormRepository, id, owner string, order int) {
	t.Helper()
	_, err := repo.Create(context.Background(), &models.Task{
		ID: id, Title: "task " + id, OwnerID: owner, Order: order, CreatedAt: ts, UpdatedAt: ts,
	})
	require.NoError(t, err)
}

func TestGorm_CreateAndGet(t *testing.T) {
	repo := newGormRepo(t)
	ctx := context.Background()

	task := sampleTask()
	_, err := repo.Create(ctx, task)
	require.NoError(t, err)

	got, err := repo.GetByID(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, task.Title, got.Title)
	assert.Equal(t, task.Description, got.Description)
	assert.Equal(t, 2, got.Order)
	assert.Equal(t, "u1", got.OwnerID)
	assert.True(t, ts.Equal(got.CreatedAt))

	_, err = repo.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestGorm_ListOrdersAndFilters(t *testing.T) {
	repo := newGormRepo(t)
	ctx := context.Background()

	seed(t, repo, "c", "u1", 2)
	seed(t, repo, "a", "u1", 0)
	seed(t, repo, "x", "u2", 0)
	seed(t, repo, "b", "u1", 1)

	got, err := repo.List(ctx, "u1")
	require.NoError(t, err)
	ids := make([]string, 0, len(got))
	for _, task := range got {
		ids = append(ids, task.ID)
	}
	assert.Equal(t, []string{"a", "b", "c"}, ids)

	all, err := repo.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 4)

	none, err := repo.List(ctx, "u3")
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestGorm_UpdateKeepsOwnerAndCreatedAt(t *testing.T) {
	repo := newGormRepo(t)
	ctx := context.Background()
	seed(t, repo, "a", "u1", 0)

	later := ts.Add(time.Hour)
	err := repo.Update(ctx, &models.Task{ID: "a", Title: "renamed", OwnerID: "u2", Order: 5, IsCompleted: true, UpdatedAt: later})
	require.NoError(t, err)

	got, err := repo.GetByID(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "renamed", got.Title)
	assert.Equal(t, "u1", got.OwnerID)
	assert.Equal(t, 5, got.Order)
	assert.True(t, got.IsCompleted)
	assert.True(t, ts.Equal(got.CreatedAt))
	assert.True(t, later.Equal(got.UpdatedAt))

	assert.ErrorIs(t, repo.Update(ctx, &models.Task{ID: "nope", Title: "x"}), common.ErrorNotFound)
}

func TestGorm_UpdateOrderAndSetCompleted(t *testing.T) {
	repo := newGormRepo(t)
	ctx := context.Background()
	seed(t, repo, "a", "u1", 0)

	ok, err := repo.UpdateOrder(ctx, "a", 3, ts)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.UpdateOrder(ctx, "ghost", 1, ts)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, repo.SetCompleted(ctx, "a", true, ts))
	assert.ErrorIs(t, repo.SetCompleted(ctx, "ghost", true, ts), common.ErrorNotFound)

	got, err := repo.GetByID(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, 3, got.Order)
	assert.True(t, got.IsCompleted)
}

func TestGorm_Delete(t *testing.T) {
	repo := newGormRepo(t)
	ctx := context.Background()
	seed(t, repo, "a", "u1", 0)

	require.NoError(t, repo.Delete(ctx, "a"))
	assert.ErrorIs(t, repo.Delete(ctx, "a"), common.ErrorNotFound)
}
