// Package repomanager binds the user and task repositories to one storage
// backend and runs units of work against it in a transaction.
package repomanager

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/taskkeeper/internal/server/repositories/tasks"
	"github.com/dmitrijs2005/taskkeeper/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(ctx context.Context) error
	Users() users.Repository
	Tasks() tasks.Repository
	// WithTx runs fn with a manager whose repositories share one transaction.
	// A manager that is already transactional passes itself to fn.
	WithTx(ctx context.Context, fn func(ctx context.Context, m RepositoryManager) error) error
	Close() error
}

// New opens the backend named by driver ("postgres" or "sqlite").
func New(ctx context.Context, driver, dsn string) (RepositoryManager, error) {
	switch driver {
	case "postgres":
		db, err := OpenPostgres(ctx, dsn)
		if err != nil {
			return nil, err
		}
		return NewPostgresRepositoryManager(db), nil
	case "sqlite":
		db, err := OpenSQLite(dsn)
		if err != nil {
			return nil, err
		}
		return NewGormRepositoryManager(db), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", driver)
	}
}
