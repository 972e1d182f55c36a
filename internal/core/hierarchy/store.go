// Package hierarchy holds the tree rules for tasks: status propagation in both
// directions, subtree deletion and parent cycle checks.
//
// Every traversal is an explicit worklist over a Store, so stack depth does not
// grow with tree depth. Callers are expected to run these functions inside a
// transaction when the Store supports it.
package hierarchy

import (
	"context"

	"tasktree/internal/core/domain"
)

// Store is the subset of the task repository the algorithms need.
type Store interface {
	FindByID(ctx context.Context, id uint64) (domain.Task, error)
	FindChildren(ctx context.Context, parentID uint64) ([]domain.Task, error)
	UpdateStatus(ctx context.Context, id uint64, status domain.TaskStatus) error
	DeleteByID(ctx context.Context, id uint64) error
}
