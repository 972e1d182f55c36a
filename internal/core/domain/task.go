package domain

import (
	"strings"
	"time"
	"unicode/utf8"
)

type TaskStatus string

const (
	TaskStatusPending   TaskStatus = "PENDING"
	TaskStatusCompleted TaskStatus = "COMPLETED"
)

// TaskNameMaxLength mirrors the VARCHAR(100) name column.
const TaskNameMaxLength = 100

func (s TaskStatus) Valid() bool {
	return s == TaskStatusPending || s == TaskStatusCompleted
}

// ParseTaskStatus accepts only the exact enum literals.
func ParseTaskStatus(value string) (TaskStatus, error) {
	status := TaskStatus(value)
	if !status.Valid() {
		return "", ErrInvalidTaskStatus
	}
	return status, nil
}

type Task struct {
	ID           uint64
	Name         string
	Description  *string
	ParentTaskID *uint64
	Status       TaskStatus
	CreatedBy    uint64
	CreatedAt    time.Time
	UpdatedAt    time.Time
	Subtasks     []Task
}

func (t Task) IsRoot() bool {
	return t.ParentTaskID == nil
}

type CreateTaskInput struct {
	Name         string
	Description  *string
	ParentTaskID *uint64
}

// NewTask is the row handed to the repository on creation.
type NewTask struct {
	Name         string
	Description  *string
	ParentTaskID *uint64
	Status       TaskStatus
	CreatedBy    uint64
}

type UpdateTaskInput struct {
	Name            *string
	Description     *string
	DescriptionSet  bool
	ParentTaskID    *uint64
	ParentTaskIDSet bool
}

func (in UpdateTaskInput) IsEmpty() bool {
	return in.Name == nil && !in.DescriptionSet && !in.ParentTaskIDSet
}

// TaskFields holds the editable columns after an update has been merged.
type TaskFields struct {
	Name        string
	Description *string
}

type CompletionSummary struct {
	Date           string
	CompletedTasks []Task
}

func (s CompletionSummary) TotalCompletedTasks() int {
	return len(s.CompletedTasks)
}

// NormalizeTaskName trims the name and checks it against the column limits.
func NormalizeTaskName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" || utf8.RuneCountInString(name) > TaskNameMaxLength {
		return "", ErrInvalidTaskPayload
	}
	return name, nil
}
