package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/dmitrijs2005/taskkeeper/internal/logging"
	"github.com/dmitrijs2005/taskkeeper/internal/server/repositories/repomanager"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

var fixedNow = time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

func newManager(t *testing.T) repomanager.RepositoryManager {
	t.Helper()
	dsn := fmt.Sprintf("file:svc_%d?mode=memory&cache=shared", time.Now().UnixNano())
	m, err := repomanager.New(context.Background(), "sqlite", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = m.Close() })
	require.NoError(t, m.RunMigrations(context.Background()))
	return m
}

func newServices(t *testing.T) (*TaskService, *UserService) {
	t.Helper()
	m := newManager(t)

	ts := NewTaskService(m, logging.Nop())
	ts.now = func() time.Time { return fixedNow }

	us := NewUserService(m, logging.Nop())
	us.now = func() time.Time { return fixedNow }
	us.hashCost = bcrypt.MinCost

	return ts, us
}

func mustUser(t *testing.T, us *UserService, email string) string {
	t.Helper()
	u, err := us.Create(context.Background(), UserInput{Name: "User " + email, Email: email, Password: "password1"})
	require.NoError(t, err)
	return u.ID
}
