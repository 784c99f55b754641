package repomanager

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGormManager(t *testing.T) RepositoryManager {
	t.Helper()
	m, err := New(context.Background(), "sqlite", fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name()))
	require.NoError(t, err)
	t.Cleanup(func() { _ = m.Close() })
	require.NoError(t, m.RunMigrations(context.Background()))
	return m
}

func TestGorm_WithTx_CommitAndRollback(t *testing.T) {
	m := newGormManager(t)
	ctx := context.Background()
	now := time.Now().UTC()

	err := m.WithTx(ctx, func(ctx context.Context, tx RepositoryManager) error {
		_, err := tx.Users().Create(ctx, &models.User{ID: "u1", Name: "A", Email: "a@example.com", PasswordHash: []byte("h"), CreatedAt: now})
		return err
	})
	require.NoError(t, err)

	err = m.WithTx(ctx, func(ctx context.Context, tx RepositoryManager) error {
		if _, err := tx.Tasks().Create(ctx, &models.Task{ID: "t1", Title: "A", OwnerID: "u1", CreatedAt: now, UpdatedAt: now}); err != nil {
			return err
		}
		return errors.New("abort")
	})
	assert.EqualError(t, err, "abort")

	_, err = m.Users().GetByID(ctx, "u1")
	require.NoError(t, err)
	_, err = m.Tasks().GetByID(ctx, "t1")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestGorm_WithTx_Nested(t *testing.T) {
	m := newGormManager(t)

	err := m.WithTx(context.Background(), func(ctx context.Context, outer RepositoryManager) error {
		return outer.WithTx(ctx, func(ctx context.Context, inner RepositoryManager) error {
			assert.Same(t, outer, inner)
			return nil
		})
	})
	require.NoError(t, err)
}

func TestGorm_MigrationsAreRepeatable(t *testing.T) {
	m := newGormManager(t)
	require.NoError(t, m.RunMigrations(context.Background()))
}
