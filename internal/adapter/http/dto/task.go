package dto

type TaskItem struct {
	ID           uint64  `json:"id"`
	Name         string  `json:"name"`
	Description  *string `json:"description"`
	ParentTaskID *uint64 `json:"parent_task_id"`
	Status       string  `json:"status"`
	CreatedBy    uint64  `json:"created_by"`
	CreatedAt    string  `json:"created_at"`
	UpdatedAt    string  `json:"updated_at"`
}

// TaskDetail is a task with its direct subtasks. sub_tasks is always present.
type TaskDetail struct {
	TaskItem
	SubTasks []TaskItem `json:"sub_tasks"`
}

type CreateTaskRequest struct {
	Name         string  `json:"name" binding:"required,max=100"`
	Description  *string `json:"description" binding:"omitempty,max=65535"`
	ParentTaskID *uint64 `json:"parent_task_id" binding:"omitempty,gt=0"`
}

type UpdateTaskRequest struct {
	Name         *string `json:"name" binding:"omitempty,max=100"`
	Description  *string `json:"description" binding:"omitempty,max=65535"`
	ParentTaskID *uint64 `json:"parent_task_id" binding:"omitempty,gt=0"`
}

type UpdateTaskStatusRequest struct {
	Status string `json:"status"`
}

type CompletionSummary struct {
	Date                string     `json:"date"`
	TotalCompletedTasks int        `json:"totalCompletedTasks"`
	CompletedTasks      []TaskItem `json:"completedTasks"`
}
