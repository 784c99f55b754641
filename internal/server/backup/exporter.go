// Package backup exports JSON snapshots of users and tasks to object storage,
// once on demand or on a cron schedule.
package backup

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dmitrijs2005/taskkeeper/internal/logging"
	"github.com/dmitrijs2005/taskkeeper/internal/server/repositories/repomanager"
)

// Snapshot is the document written for every export. Users carry no
// password data.
type Snapshot struct {
	TakenAt time.Time    `json:"takenAt"`
	Users   []userRecord `json:"users"`
	Tasks   []taskRecord `json:"tasks"`
}

type userRecord struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	TaskCount int    `json:"taskCount"`
}

type taskRecord struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	IsCompleted bool      `json:"isCompleted"`
	Order       int       `json:"order"`
	OwnerID     string    `json:"ownerId"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type Exporter struct {
	repomanager repomanager.RepositoryManager
	uploader    Uploader
	bucket      string
	logger      logging.Logger
	now         func() time.Time
}

func NewExporter(m repomanager.RepositoryManager, u Uploader, bucket string, l logging.Logger) *Exporter {
	return &Exporter{
		repomanager: m,
		uploader:    u,
		bucket:      bucket,
		logger:      l.With("module", "backup"),
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// Snapshot reads users and tasks in one transaction so task counts and the
// task list agree.
func (e *Exporter) Snapshot(ctx context.Context) (*Snapshot, error) {
	snap := &Snapshot{TakenAt: e.now()}

	err := e.repomanager.WithTx(ctx, func(ctx context.Context, m repomanager.RepositoryManager) error {
		users, err := m.Users().List(ctx)
		if err != nil {
			return err
		}
		tasks, err := m.Tasks().List(ctx, "")
		if err != nil {
			return err
		}

		snap.Users = make([]userRecord, 0, len(users))
		for _, u := range users {
			snap.Users = append(snap.Users, userRecord(u))
		}
		snap.Tasks = make([]taskRecord, 0, len(tasks))
		for _, t := range tasks {
			snap.Tasks = append(snap.Tasks, taskRecord(t))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error reading snapshot: %w", err)
	}
	return snap, nil
}

// Export uploads a fresh snapshot and returns its object key.
func (e *Exporter) Export(ctx context.Context) (string, error) {
	snap, err := e.Snapshot(ctx)
	if err != nil {
		return "", err
	}

	body, err := json.Marshal(snap)
	if err != nil {
		return "", fmt.Errorf("error encoding snapshot: %w", err)
	}

	key := ObjectKey(snap.TakenAt)
	_, err = e.uploader.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(e.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return "", fmt.Errorf("error uploading snapshot: %w", err)
	}

	e.logger.Info(ctx, "snapshot exported", "bucket", e.bucket, "key", key, "users", len(snap.Users), "tasks", len(snap.Tasks))
	return key, nil
}

// ObjectKey names the snapshot taken at t.
func ObjectKey(t time.Time) string {
	t = t.UTC()
	return fmt.Sprintf("snapshots/%d/%02d/%02d/%s.json", t.Year(), t.Month(), t.Day(), t.Format("20060102T150405Z"))
}
