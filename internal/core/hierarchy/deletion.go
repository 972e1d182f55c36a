package hierarchy

import (
	"context"
	"fmt"

	"tasktree/internal/core/domain"
)

// DeleteSubtree removes rootID and all of its descendants, children before
// parents, and returns the number of deleted tasks.
func DeleteSubtree(ctx context.Context, store Store, rootID uint64) (int, error) {
	order, err := CollectSubtree(ctx, store, rootID)
	if err != nil {
		return 0, err
	}

	deleted := 0
	for i := len(order) - 1; i >= 0; i-- {
		if err := store.DeleteByID(ctx, order[i]); err != nil {
			return deleted, fmt.Errorf("delete task %d: %w", order[i], err)
		}
		deleted++
	}

	return deleted, nil
}

// CollectSubtree returns rootID followed by the ids of every descendant in
// depth-first pre-order, so each id appears before the ids of its children.
func CollectSubtree(ctx context.Context, store Store, rootID uint64) ([]uint64, error) {
	visited := map[uint64]struct{}{rootID: {}}
	stack := []uint64{rootID}
	var order []uint64

	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		order = append(order, id)

		children, err := store.FindChildren(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("list children of task %d: %w", id, err)
		}

		// Push in reverse so the lowest id is visited first.
		for i := len(children) - 1; i >= 0; i-- {
			childID := children[i].ID
			if _, seen := visited[childID]; seen {
				return nil, fmt.Errorf("%w: task %d reached twice below task %d", domain.ErrTaskHierarchyCycle, childID, rootID)
			}
			visited[childID] = struct{}{}
			stack = append(stack, childID)
		}
	}

	return order, nil
}
