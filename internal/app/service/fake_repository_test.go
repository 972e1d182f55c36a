package service_test

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"tasktree/internal/core/domain"
	"tasktree/internal/core/ports"
)

var errDatabaseDown = errors.New("database is down")

type fakeTaskRepository struct {
	mu sync.Mutex

	nextID uint64
	tasks  map[uint64]domain.Task
	now    func() time.Time

	calls          int
	failStatusOnID uint64
}

func newFakeTaskRepository() *fakeTaskRepository {
	return &fakeTaskRepository{
		nextID: 1,
		tasks:  make(map[uint64]domain.Task),
		now:    time.Now,
	}
}

func cloneTask(t domain.Task) domain.Task {
	out := t
	if t.ParentTaskID != nil {
		parentID := *t.ParentTaskID
		out.ParentTaskID = &parentID
	}
	if t.Description != nil {
		description := *t.Description
		out.Description = &description
	}
	out.Subtasks = nil
	return out
}

func (r *fakeTaskRepository) FindByID(_ context.Context, id uint64) (domain.Task, error) {
	r.calls++
	task, ok := r.tasks[id]
	if !ok {
		return domain.Task{}, domain.ErrTaskNotFound
	}
	return cloneTask(task), nil
}

func (r *fakeTaskRepository) FindOwnedByID(_ context.Context, id, ownerID uint64) (domain.Task, error) {
	r.calls++
	task, ok := r.tasks[id]
	if !ok || task.CreatedBy != ownerID {
		return domain.Task{}, domain.ErrTaskNotFound
	}
	return cloneTask(task), nil
}

func (r *fakeTaskRepository) FindChildren(_ context.Context, parentID uint64) ([]domain.Task, error) {
	r.calls++
	return r.children(parentID), nil
}

func (r *fakeTaskRepository) children(parentID uint64) []domain.Task {
	out := make([]domain.Task, 0)
	for _, task := range r.tasks {
		if task.ParentTaskID != nil && *task.ParentTaskID == parentID {
			out = append(out, cloneTask(task))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (r *fakeTaskRepository) FindRoots(_ context.Context, ownerID uint64) ([]domain.Task, error) {
	r.calls++
	out := make([]domain.Task, 0)
	for _, task := range r.tasks {
		if task.ParentTaskID == nil && task.CreatedBy == ownerID {
			root := cloneTask(task)
			root.Subtasks = r.children(task.ID)
			out = append(out, root)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeTaskRepository) FindCompletedBetween(_ context.Context, ownerID uint64, from, to time.Time) ([]domain.Task, error) {
	r.calls++
	out := make([]domain.Task, 0)
	for _, task := range r.tasks {
		if task.CreatedBy != ownerID || task.Status != domain.TaskStatusCompleted {
			continue
		}
		if task.UpdatedAt.Before(from) || task.UpdatedAt.After(to) {
			continue
		}
		out = append(out, cloneTask(task))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeTaskRepository) Create(_ context.Context, task domain.NewTask) (domain.Task, error) {
	r.calls++
	if task.Name == "" {
		return domain.Task{}, domain.ErrInvalidTaskPayload
	}
	now := r.now()
	created := domain.Task{
		ID:           r.nextID,
		Name:         task.Name,
		Description:  task.Description,
		ParentTaskID: task.ParentTaskID,
		Status:       task.Status,
		CreatedBy:    task.CreatedBy,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	r.nextID++
	r.tasks[created.ID] = cloneTask(created)
	return cloneTask(created), nil
}

func (r *fakeTaskRepository) UpdateFields(_ context.Context, id uint64, fields domain.TaskFields) error {
	r.calls++
	task, ok := r.tasks[id]
	if !ok {
		return domain.ErrTaskNotFound
	}
	task.Name = fields.Name
	task.Description = fields.Description
	task.UpdatedAt = r.now()
	r.tasks[id] = cloneTask(task)
	return nil
}

func (r *fakeTaskRepository) UpdateParent(_ context.Context, id uint64, parentID *uint64) error {
	r.calls++
	task, ok := r.tasks[id]
	if !ok {
		return domain.ErrTaskNotFound
	}
	task.ParentTaskID = parentID
	task.UpdatedAt = r.now()
	r.tasks[id] = cloneTask(task)
	return nil
}

func (r *fakeTaskRepository) UpdateStatus(_ context.Context, id uint64, status domain.TaskStatus) error {
	r.calls++
	if r.failStatusOnID != 0 && r.failStatusOnID == id {
		return errDatabaseDown
	}
	task, ok := r.tasks[id]
	if !ok {
		return domain.ErrTaskNotFound
	}
	if task.Status != status {
		task.Status = status
		task.UpdatedAt = r.now()
	}
	r.tasks[id] = task
	return nil
}

func (r *fakeTaskRepository) DeleteByID(_ context.Context, id uint64) error {
	r.calls++
	if _, ok := r.tasks[id]; !ok {
		return domain.ErrTaskNotFound
	}
	delete(r.tasks, id)
	return nil
}

// WithinTx restores the previous rows when fn fails, like a rolled back transaction.
func (r *fakeTaskRepository) WithinTx(_ context.Context, fn func(repo ports.TaskRepository) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	saved := make(map[uint64]domain.Task, len(r.tasks))
	for id, task := range r.tasks {
		saved[id] = cloneTask(task)
	}
	savedNextID := r.nextID

	if err := fn(r); err != nil {
		r.tasks = saved
		r.nextID = savedNextID
		return err
	}
	return nil
}

func (r *fakeTaskRepository) seed(ownerID uint64, parentID *uint64, status domain.TaskStatus) domain.Task {
	task, err := r.Create(context.Background(), domain.NewTask{
		Name:         "seeded",
		ParentTaskID: parentID,
		Status:       status,
		CreatedBy:    ownerID,
	})
	if err != nil {
		panic(err)
	}
	return task
}

func (r *fakeTaskRepository) status(id uint64) domain.TaskStatus {
	return r.tasks[id].Status
}

var _ ports.TaskRepository = (*fakeTaskRepository)(nil)
