package store

import (
	"context"

	"github.com/dmitrijs2005/taskkeeper/internal/client/models"
)

// ArrayMove returns a copy of list with the element at from moved to to,
// shifting the elements in between. Out of range indexes return an
// unchanged copy.
func ArrayMove[T any](list []T, from, to int) []T {
	out := make([]T, len(list))
	copy(out, list)
	if from < 0 || from >= len(list) || to < 0 || to >= len(list) || from == to {
		return out
	}

	item := out[from]
	if from < to {
		copy(out[from:to], out[from+1:to+1])
	} else {
		copy(out[to+1:from+1], out[to:from])
	}
	out[to] = item
	return out
}

// DenseOrder assigns order 0..n-1 following the position of each task in
// seq. Previous order values are discarded.
func DenseOrder(seq []models.Task) []models.TaskOrder {
	pairs := make([]models.TaskOrder, len(seq))
	for i, t := range seq {
		pairs[i] = models.TaskOrder{ID: t.ID, Order: i}
	}
	return pairs
}

// Move handles a pointer drop of activeID onto overID within the visible
// list. Dropping onto itself or outside the list does nothing.
func (s *TaskStore) Move(ctx context.Context, activeID, overID string) error {
	if activeID == "" || overID == "" || activeID == overID {
		return nil
	}

	visible := s.Visible()
	from, to := indexOf(visible, activeID), indexOf(visible, overID)
	if from < 0 || to < 0 {
		return nil
	}

	return s.Reorder(ctx, ArrayMove(visible, from, to))
}

// MoveUp is the keyboard equivalent of dragging id one slot up.
func (s *TaskStore) MoveUp(ctx context.Context, id string) error {
	return s.step(ctx, id, -1)
}

// MoveDown is the keyboard equivalent of dragging id one slot down.
func (s *TaskStore) MoveDown(ctx context.Context, id string) error {
	return s.step(ctx, id, 1)
}

func (s *TaskStore) step(ctx context.Context, id string, delta int) error {
	visible := s.Visible()
	i := indexOf(visible, id)
	j := i + delta
	if i < 0 || j < 0 || j >= len(visible) {
		return nil
	}
	return s.Move(ctx, id, visible[j].ID)
}

func indexOf(list []models.Task, id string) int {
	for i := range list {
		if list[i].ID == id {
			return i
		}
	}
	return -1
}
