package hierarchy

import (
	"context"
	"fmt"

	"tasktree/internal/core/domain"
)

// EnsureNoCycle rejects making newParentID the parent of taskID when
// newParentID is taskID itself or one of its descendants.
func EnsureNoCycle(ctx context.Context, store Store, taskID, newParentID uint64) error {
	visited := make(map[uint64]struct{})

	for next := &newParentID; next != nil; {
		id := *next
		if id == taskID {
			return domain.ErrTaskHierarchyCycle
		}
		if _, seen := visited[id]; seen {
			return fmt.Errorf("%w: stored ancestry of task %d loops", domain.ErrTaskHierarchyCycle, newParentID)
		}
		visited[id] = struct{}{}

		task, err := store.FindByID(ctx, id)
		if err != nil {
			return fmt.Errorf("load ancestor %d: %w", id, err)
		}
		next = task.ParentTaskID
	}

	return nil
}
