package hierarchy_test

import (
	"context"
	"errors"
	"sort"

	"tasktree/internal/core/domain"
)

var errStoreDown = errors.New("store is down")

type memStore struct {
	tasks map[uint64]domain.Task

	failUpdateID uint64
	failDeleteID uint64
	deleted      []uint64
}

func newMemStore() *memStore {
	return &memStore{tasks: make(map[uint64]domain.Task)}
}

func ptr(id uint64) *uint64 {
	return &id
}

func (s *memStore) add(id uint64, parentID *uint64, status domain.TaskStatus) {
	s.tasks[id] = domain.Task{ID: id, Name: "task", ParentTaskID: parentID, Status: status}
}

func (s *memStore) status(id uint64) domain.TaskStatus {
	return s.tasks[id].Status
}

func (s *memStore) FindByID(_ context.Context, id uint64) (domain.Task, error) {
	task, ok := s.tasks[id]
	if !ok {
		return domain.Task{}, domain.ErrTaskNotFound
	}
	return task, nil
}

func (s *memStore) FindChildren(_ context.Context, parentID uint64) ([]domain.Task, error) {
	var children []domain.Task
	for _, task := range s.tasks {
		if task.ParentTaskID != nil && *task.ParentTaskID == parentID {
			children = append(children, task)
		}
	}
	sort.Slice(children, func(i, j int) bool { return children[i].ID < children[j].ID })
	return children, nil
}

func (s *memStore) UpdateStatus(_ context.Context, id uint64, status domain.TaskStatus) error {
	if s.failUpdateID != 0 && s.failUpdateID == id {
		return errStoreDown
	}
	task, ok := s.tasks[id]
	if !ok {
		return domain.ErrTaskNotFound
	}
	task.Status = status
	s.tasks[id] = task
	return nil
}

func (s *memStore) DeleteByID(_ context.Context, id uint64) error {
	if s.failDeleteID != 0 && s.failDeleteID == id {
		return errStoreDown
	}
	if _, ok := s.tasks[id]; !ok {
		return domain.ErrTaskNotFound
	}
	delete(s.tasks, id)
	s.deleted = append(s.deleted, id)
	return nil
}
