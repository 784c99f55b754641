package repomanager

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/taskkeeper/internal/server/repositories/tasks"
	"github.com/dmitrijs2005/taskkeeper/internal/server/repositories/users"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// GormRepositoryManager vends gorm-backed repositories. It backs the sqlite
// storage driver used for local runs and tests.
type GormRepositoryManager struct {
	db   *gorm.DB
	inTx bool
}

func NewGormRepositoryManager(db *gorm.DB) *GormRepositoryManager {
	return &GormRepositoryManager{db: db}
}

// OpenSQLite opens a SQLite database through gorm. The pool is limited to one
// connection so in-memory databases are shared by every query.
func OpenSQLite(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	return db, nil
}

func (m *GormRepositoryManager) Users() users.Repository {
	return users.NewGormRepository(m.db)
}

func (m *GormRepositoryManager) Tasks() tasks.Repository {
	return tasks.NewGormRepository(m.db)
}

func (m *GormRepositoryManager) WithTx(ctx context.Context, fn func(ctx context.Context, m RepositoryManager) error) error {
	if m.inTx {
		return fn(ctx, m)
	}
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ctx, &GormRepositoryManager{db: tx, inTx: true})
	})
}

// RunMigrations creates or updates the schema from the gorm row types.
func (m *GormRepositoryManager) RunMigrations(ctx context.Context) error {
	return m.db.WithContext(ctx).AutoMigrate(&users.UserRow{}, &tasks.TaskRow{})
}

func (m *GormRepositoryManager) Close() error {
	sqlDB, err := m.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
