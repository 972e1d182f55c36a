package validation

import (
	"bytes"
	"encoding/json"

	"tasktree/internal/adapter/http/dto"
	"tasktree/internal/core/domain"
)

// BuildCreateTaskInput turns a bound create request into service input.
// Explicit nulls are accepted for the optional fields.
func BuildCreateTaskInput(req dto.CreateTaskRequest, raw map[string]json.RawMessage) (domain.CreateTaskInput, error) {
	if hasJSONField(raw, "name") && isJSONNull(raw["name"]) {
		return domain.CreateTaskInput{}, domain.ErrInvalidTaskPayload
	}

	return domain.CreateTaskInput{
		Name:         req.Name,
		Description:  req.Description,
		ParentTaskID: req.ParentTaskID,
	}, nil
}

// BuildUpdateTaskInput keeps track of which fields the client sent, so a
// null description clears it and a null parent_task_id makes the task a root.
func BuildUpdateTaskInput(req dto.UpdateTaskRequest, raw map[string]json.RawMessage) (domain.UpdateTaskInput, error) {
	if !hasTaskUpdateFields(raw) {
		return domain.UpdateTaskInput{}, domain.ErrInvalidTaskPayload
	}

	if hasJSONField(raw, "name") && req.Name == nil {
		return domain.UpdateTaskInput{}, domain.ErrInvalidTaskPayload
	}

	descriptionSet := hasJSONField(raw, "description")
	if descriptionSet && !isJSONNull(raw["description"]) && req.Description == nil {
		return domain.UpdateTaskInput{}, domain.ErrInvalidTaskPayload
	}

	parentTaskIDSet := hasJSONField(raw, "parent_task_id")
	if parentTaskIDSet && !isJSONNull(raw["parent_task_id"]) && req.ParentTaskID == nil {
		return domain.UpdateTaskInput{}, domain.ErrInvalidTaskPayload
	}

	return domain.UpdateTaskInput{
		Name:            req.Name,
		Description:     req.Description,
		DescriptionSet:  descriptionSet,
		ParentTaskID:    req.ParentTaskID,
		ParentTaskIDSet: parentTaskIDSet,
	}, nil
}

func hasTaskUpdateFields(raw map[string]json.RawMessage) bool {
	return hasJSONField(raw, "name") ||
		hasJSONField(raw, "description") ||
		hasJSONField(raw, "parent_task_id")
}

func hasJSONField(raw map[string]json.RawMessage, field string) bool {
	_, ok := raw[field]
	return ok
}

func isJSONNull(value json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(value), []byte("null"))
}
