package mapper

import (
	"time"

	"tasktree/internal/adapter/http/dto"
	"tasktree/internal/core/domain"
)

func ToTaskItems(tasks []domain.Task) []dto.TaskItem {
	items := make([]dto.TaskItem, 0, len(tasks))
	for _, task := range tasks {
		items = append(items, ToTaskItem(task))
	}
	return items
}

func ToTaskItem(task domain.Task) dto.TaskItem {
	item := dto.TaskItem{
		ID:        task.ID,
		Name:      task.Name,
		Status:    string(task.Status),
		CreatedBy: task.CreatedBy,
		CreatedAt: task.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt: task.UpdatedAt.UTC().Format(time.RFC3339),
	}

	if task.Description != nil {
		value := *task.Description
		item.Description = &value
	}

	if task.ParentTaskID != nil {
		value := *task.ParentTaskID
		item.ParentTaskID = &value
	}

	return item
}

func ToTaskDetail(task domain.Task) dto.TaskDetail {
	return dto.TaskDetail{
		TaskItem: ToTaskItem(task),
		SubTasks: ToTaskItems(task.Subtasks),
	}
}

func ToTaskDetails(tasks []domain.Task) []dto.TaskDetail {
	details := make([]dto.TaskDetail, 0, len(tasks))
	for _, task := range tasks {
		details = append(details, ToTaskDetail(task))
	}
	return details
}

func ToCompletionSummary(summary domain.CompletionSummary) dto.CompletionSummary {
	return dto.CompletionSummary{
		Date:                summary.Date,
		TotalCompletedTasks: summary.TotalCompletedTasks(),
		CompletedTasks:      ToTaskItems(summary.CompletedTasks),
	}
}
