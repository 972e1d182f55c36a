package service

import (
	"context"
	"regexp"
	"time"

	"go.uber.org/zap"

	"tasktree/internal/core/domain"
	"tasktree/internal/core/hierarchy"
	"tasktree/internal/core/ports"
)

const dayLayout = "2006-01-02"

var dayPattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

type TaskService struct {
	taskRepository ports.TaskRepository
	location       *time.Location
}

func NewTaskService(taskRepository ports.TaskRepository) *TaskService {
	return &TaskService{taskRepository: taskRepository, location: time.Local}
}

func (s *TaskService) CreateTask(ctx context.Context, ownerID uint64, input domain.CreateTaskInput) (domain.Task, error) {
	if err := requireOwner(ownerID); err != nil {
		return domain.Task{}, err
	}
	name, err := domain.NormalizeTaskName(input.Name)
	if err != nil {
		return domain.Task{}, err
	}

	var created domain.Task
	err = s.taskRepository.WithinTx(ctx, func(repo ports.TaskRepository) error {
		if input.ParentTaskID != nil {
			if _, err := ownedTask(ctx, repo, ownerID, *input.ParentTaskID); err != nil {
				return err
			}
		}

		task, err := repo.Create(ctx, domain.NewTask{
			Name:         name,
			Description:  input.Description,
			ParentTaskID: input.ParentTaskID,
			Status:       domain.TaskStatusPending,
			CreatedBy:    ownerID,
		})
		if err != nil {
			return err
		}
		created = task

		// A new pending subtask reopens a completed parent chain.
		_, err = hierarchy.RecomputeAncestors(ctx, repo, input.ParentTaskID)
		return err
	})
	if err != nil {
		return domain.Task{}, err
	}

	return created, nil
}

func (s *TaskService) GetTask(ctx context.Context, ownerID, taskID uint64) (domain.Task, error) {
	task, err := ownedTask(ctx, s.taskRepository, ownerID, taskID)
	if err != nil {
		return domain.Task{}, err
	}

	subtasks, err := s.taskRepository.FindChildren(ctx, task.ID)
	if err != nil {
		return domain.Task{}, err
	}
	task.Subtasks = subtasks

	return task, nil
}

func (s *TaskService) ListRootTasks(ctx context.Context, ownerID uint64) ([]domain.Task, error) {
	if err := requireOwner(ownerID); err != nil {
		return nil, err
	}
	return s.taskRepository.FindRoots(ctx, ownerID)
}

func (s *TaskService) UpdateTask(ctx context.Context, ownerID, taskID uint64, input domain.UpdateTaskInput) (domain.Task, error) {
	if input.IsEmpty() {
		return domain.Task{}, domain.ErrInvalidTaskPayload
	}

	var name string
	if input.Name != nil {
		normalized, err := domain.NormalizeTaskName(*input.Name)
		if err != nil {
			return domain.Task{}, err
		}
		name = normalized
	}

	var updated domain.Task
	err := s.taskRepository.WithinTx(ctx, func(repo ports.TaskRepository) error {
		task, err := ownedTask(ctx, repo, ownerID, taskID)
		if err != nil {
			return err
		}

		if input.Name != nil || input.DescriptionSet {
			fields := domain.TaskFields{Name: task.Name, Description: task.Description}
			if input.Name != nil {
				fields.Name = name
			}
			if input.DescriptionSet {
				fields.Description = input.Description
			}
			if err := repo.UpdateFields(ctx, task.ID, fields); err != nil {
				return err
			}
		}

		if input.ParentTaskIDSet && !sameParent(task.ParentTaskID, input.ParentTaskID) {
			if err := moveTask(ctx, repo, ownerID, task, input.ParentTaskID); err != nil {
				return err
			}
		}

		updated, err = repo.FindByID(ctx, task.ID)
		return err
	})
	if err != nil {
		return domain.Task{}, err
	}

	return updated, nil
}

func (s *TaskService) ChangeTaskStatus(ctx context.Context, ownerID, taskID uint64, status string) error {
	target, err := domain.ParseTaskStatus(status)
	if err != nil {
		return err
	}

	return s.taskRepository.WithinTx(ctx, func(repo ports.TaskRepository) error {
		task, err := ownedTask(ctx, repo, ownerID, taskID)
		if err != nil {
			return err
		}

		result, err := hierarchy.SetStatus(ctx, repo, task, target)
		if err != nil {
			return err
		}

		zap.L().Debug("task status propagated",
			zap.Uint64("task_id", task.ID),
			zap.String("status", string(target)),
			zap.Int("descendants", result.Descendants),
			zap.Int("ancestors", result.Ancestors),
		)
		return nil
	})
}

func (s *TaskService) DeleteTask(ctx context.Context, ownerID, taskID uint64) error {
	return s.taskRepository.WithinTx(ctx, func(repo ports.TaskRepository) error {
		task, err := ownedTask(ctx, repo, ownerID, taskID)
		if err != nil {
			return err
		}

		deleted, err := hierarchy.DeleteSubtree(ctx, repo, task.ID)
		if err != nil {
			return err
		}
		zap.L().Debug("task subtree deleted", zap.Uint64("task_id", task.ID), zap.Int("deleted", deleted))

		_, err = hierarchy.RecomputeAncestors(ctx, repo, task.ParentTaskID)
		return err
	})
}

func (s *TaskService) CompletionSummary(ctx context.Context, ownerID uint64, day string) (domain.CompletionSummary, error) {
	from, to, err := dayBounds(day, s.location)
	if err != nil {
		return domain.CompletionSummary{}, err
	}
	if err := requireOwner(ownerID); err != nil {
		return domain.CompletionSummary{}, err
	}

	tasks, err := s.taskRepository.FindCompletedBetween(ctx, ownerID, from, to)
	if err != nil {
		return domain.CompletionSummary{}, err
	}

	return domain.CompletionSummary{Date: day, CompletedTasks: tasks}, nil
}

// ownedTask is the ownership guard every task operation goes through. A task
// owned by someone else is reported exactly like a missing one.
func ownedTask(ctx context.Context, repo ports.TaskRepository, ownerID, taskID uint64) (domain.Task, error) {
	if err := requireOwner(ownerID); err != nil {
		return domain.Task{}, err
	}
	return repo.FindOwnedByID(ctx, taskID, ownerID)
}

func requireOwner(ownerID uint64) error {
	if ownerID == 0 {
		return domain.ErrUnauthorized
	}
	return nil
}

func moveTask(ctx context.Context, repo ports.TaskRepository, ownerID uint64, task domain.Task, parentID *uint64) error {
	if parentID != nil {
		if _, err := ownedTask(ctx, repo, ownerID, *parentID); err != nil {
			return err
		}
		if err := hierarchy.EnsureNoCycle(ctx, repo, task.ID, *parentID); err != nil {
			return err
		}
	}

	if err := repo.UpdateParent(ctx, task.ID, parentID); err != nil {
		return err
	}

	if _, err := hierarchy.RecomputeAncestors(ctx, repo, task.ParentTaskID); err != nil {
		return err
	}
	_, err := hierarchy.RecomputeAncestors(ctx, repo, parentID)
	return err
}

func sameParent(current, next *uint64) bool {
	if current == nil || next == nil {
		return current == next
	}
	return *current == *next
}

// dayBounds returns the first and last millisecond of day in loc.
func dayBounds(day string, loc *time.Location) (time.Time, time.Time, error) {
	if !dayPattern.MatchString(day) {
		return time.Time{}, time.Time{}, domain.ErrInvalidDate
	}
	start, err := time.ParseInLocation(dayLayout, day, loc)
	if err != nil {
		return time.Time{}, time.Time{}, domain.ErrInvalidDate
	}
	end := start.AddDate(0, 0, 1).Add(-time.Millisecond)
	return start, end, nil
}

var _ ports.TaskService = (*TaskService)(nil)
