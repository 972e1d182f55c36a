package tests

import (
	"context"

	"github.com/stretchr/testify/mock"

	"tasktree/internal/core/domain"
	"tasktree/internal/core/ports"
)

type taskServiceMock struct {
	mock.Mock
}

var _ ports.TaskService = (*taskServiceMock)(nil)

func (m *taskServiceMock) CreateTask(ctx context.Context, ownerID uint64, input domain.CreateTaskInput) (domain.Task, error) {
	args := m.Called(ctx, ownerID, input)
	return args.Get(0).(domain.Task), args.Error(1)
}

func (m *taskServiceMock) GetTask(ctx context.Context, ownerID, taskID uint64) (domain.Task, error) {
	args := m.Called(ctx, ownerID, taskID)
	return args.Get(0).(domain.Task), args.Error(1)
}

func (m *taskServiceMock) ListRootTasks(ctx context.Context, ownerID uint64) ([]domain.Task, error) {
	args := m.Called(ctx, ownerID)

	var tasks []domain.Task
	if value := args.Get(0); value != nil {
		tasks = value.([]domain.Task)
	}
	return tasks, args.Error(1)
}

func (m *taskServiceMock) UpdateTask(ctx context.Context, ownerID, taskID uint64, input domain.UpdateTaskInput) (domain.Task, error) {
	args := m.Called(ctx, ownerID, taskID, input)
	return args.Get(0).(domain.Task), args.Error(1)
}

func (m *taskServiceMock) ChangeTaskStatus(ctx context.Context, ownerID, taskID uint64, status string) error {
	return m.Called(ctx, ownerID, taskID, status).Error(0)
}

func (m *taskServiceMock) DeleteTask(ctx context.Context, ownerID, taskID uint64) error {
	return m.Called(ctx, ownerID, taskID).Error(0)
}

func (m *taskServiceMock) CompletionSummary(ctx context.Context, ownerID uint64, day string) (domain.CompletionSummary, error) {
	args := m.Called(ctx, ownerID, day)
	return args.Get(0).(domain.CompletionSummary), args.Error(1)
}

type userServiceMock struct {
	mock.Mock
}

var _ ports.UserService = (*userServiceMock)(nil)

func (m *userServiceMock) Register(ctx context.Context, credentials domain.Credentials) (domain.User, error) {
	args := m.Called(ctx, credentials)
	return args.Get(0).(domain.User), args.Error(1)
}

func (m *userServiceMock) Login(ctx context.Context, credentials domain.Credentials) (string, error) {
	args := m.Called(ctx, credentials)
	return args.String(0), args.Error(1)
}

func (m *userServiceMock) Profile(ctx context.Context, userID uint64) (domain.User, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(domain.User), args.Error(1)
}

// staticVerifier accepts the tokens it knows.
type staticVerifier map[string]uint64

func (v staticVerifier) Verify(token string) (uint64, error) {
	if id, ok := v[token]; ok {
		return id, nil
	}
	return 0, domain.ErrUnauthorized
}
