package hierarchy

import (
	"context"
	"errors"
	"fmt"

	"tasktree/internal/core/domain"
)

// Propagation reports how many rows a status change touched besides the target.
type Propagation struct {
	Descendants int
	Ancestors   int
}

// SetStatus applies an explicit status change to task and restores the
// completion invariant around it: every descendant is forced to status, then
// each ancestor up to the root is derived from its direct children.
func SetStatus(ctx context.Context, store Store, task domain.Task, status domain.TaskStatus) (Propagation, error) {
	var result Propagation
	if !status.Valid() {
		return result, domain.ErrInvalidTaskStatus
	}

	if err := store.UpdateStatus(ctx, task.ID, status); err != nil {
		return result, fmt.Errorf("update status of task %d: %w", task.ID, err)
	}

	descendants, err := cascadeDown(ctx, store, task.ID, status)
	result.Descendants = descendants
	if err != nil {
		return result, err
	}

	ancestors, err := RecomputeAncestors(ctx, store, task.ParentTaskID)
	result.Ancestors = ancestors
	if err != nil {
		return result, err
	}

	return result, nil
}

// cascadeDown overwrites the status of every descendant of rootID, breadth first.
func cascadeDown(ctx context.Context, store Store, rootID uint64, status domain.TaskStatus) (int, error) {
	visited := map[uint64]struct{}{rootID: {}}
	queue := []uint64{rootID}
	updated := 0

	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]

		children, err := store.FindChildren(ctx, id)
		if err != nil {
			return updated, fmt.Errorf("list children of task %d: %w", id, err)
		}

		for _, child := range children {
			if _, seen := visited[child.ID]; seen {
				return updated, fmt.Errorf("%w: task %d reached twice below task %d", domain.ErrTaskHierarchyCycle, child.ID, rootID)
			}
			visited[child.ID] = struct{}{}

			if err := store.UpdateStatus(ctx, child.ID, status); err != nil {
				return updated, fmt.Errorf("update status of task %d: %w", child.ID, err)
			}
			updated++
			queue = append(queue, child.ID)
		}
	}

	return updated, nil
}

// RecomputeAncestors walks from parentID up to the root and rewrites each
// ancestor's status from its direct children. The walk always reaches the
// root; it does not stop when a derived status is unchanged.
//
// A task without children keeps its stored status: leaf status is only ever
// set explicitly.
func RecomputeAncestors(ctx context.Context, store Store, parentID *uint64) (int, error) {
	visited := make(map[uint64]struct{})
	updated := 0

	for next := parentID; next != nil; {
		id := *next
		if _, seen := visited[id]; seen {
			return updated, fmt.Errorf("%w: task %d is its own ancestor", domain.ErrTaskHierarchyCycle, id)
		}
		visited[id] = struct{}{}

		parent, err := store.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, domain.ErrTaskNotFound) {
				return updated, nil
			}
			return updated, fmt.Errorf("load ancestor %d: %w", id, err)
		}

		children, err := store.FindChildren(ctx, id)
		if err != nil {
			return updated, fmt.Errorf("list children of task %d: %w", id, err)
		}

		if len(children) > 0 {
			if err := store.UpdateStatus(ctx, id, DeriveStatus(children)); err != nil {
				return updated, fmt.Errorf("update status of task %d: %w", id, err)
			}
			updated++
		}

		next = parent.ParentTaskID
	}

	return updated, nil
}

// DeriveStatus is COMPLETED when every child is COMPLETED. It is only
// meaningful for a non-empty slice.
func DeriveStatus(children []domain.Task) domain.TaskStatus {
	for _, child := range children {
		if child.Status != domain.TaskStatusCompleted {
			return domain.TaskStatusPending
		}
	}
	return domain.TaskStatusCompleted
}
