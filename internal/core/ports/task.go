package ports

import (
	"context"
	"time"

	"tasktree/internal/core/domain"
)

type TaskRepository interface {
	FindByID(ctx context.Context, id uint64) (domain.Task, error)
	FindOwnedByID(ctx context.Context, id, ownerID uint64) (domain.Task, error)
	FindChildren(ctx context.Context, parentID uint64) ([]domain.Task, error)
	FindRoots(ctx context.Context, ownerID uint64) ([]domain.Task, error)
	FindCompletedBetween(ctx context.Context, ownerID uint64, from, to time.Time) ([]domain.Task, error)
	Create(ctx context.Context, task domain.NewTask) (domain.Task, error)
	UpdateFields(ctx context.Context, id uint64, fields domain.TaskFields) error
	UpdateParent(ctx context.Context, id uint64, parentID *uint64) error
	UpdateStatus(ctx context.Context, id uint64, status domain.TaskStatus) error
	DeleteByID(ctx context.Context, id uint64) error

	// WithinTx runs fn against a repository bound to a single transaction.
	// The transaction is rolled back when fn returns an error.
	WithinTx(ctx context.Context, fn func(repo TaskRepository) error) error
}

type TaskService interface {
	CreateTask(ctx context.Context, ownerID uint64, input domain.CreateTaskInput) (domain.Task, error)
	GetTask(ctx context.Context, ownerID, taskID uint64) (domain.Task, error)
	ListRootTasks(ctx context.Context, ownerID uint64) ([]domain.Task, error)
	UpdateTask(ctx context.Context, ownerID, taskID uint64, input domain.UpdateTaskInput) (domain.Task, error)
	ChangeTaskStatus(ctx context.Context, ownerID, taskID uint64, status string) error
	DeleteTask(ctx context.Context, ownerID, taskID uint64) error
	CompletionSummary(ctx context.Context, ownerID uint64, day string) (domain.CompletionSummary, error)
}
