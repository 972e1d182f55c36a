package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"tasktree/internal/adapter/http/dto"
	"tasktree/internal/adapter/http/mapper"
	"tasktree/internal/adapter/http/middleware"
	"tasktree/internal/adapter/http/validation"
	"tasktree/internal/core/ports"
	"tasktree/pkg/apierrors"
)

type TaskHandler struct {
	taskService ports.TaskService
}

func NewTaskHandler(taskService ports.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

func (h *TaskHandler) ListRootTasks(c *gin.Context) {
	userID := middleware.GetUserID(c)

	tasks, err := h.taskService.ListRootTasks(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err, apierrors.MsgFailListTask, zap.Uint64("user_id", userID))
		return
	}

	c.JSON(http.StatusOK, mapper.ToTaskDetails(tasks))
}

func (h *TaskHandler) GetTask(c *gin.Context) {
	taskID, ok := parseTaskID(c)
	if !ok {
		return
	}
	userID := middleware.GetUserID(c)

	task, err := h.taskService.GetTask(c.Request.Context(), userID, taskID)
	if err != nil {
		writeError(c, err, apierrors.MsgFailGetTask, zap.Uint64("task_id", taskID), zap.Uint64("user_id", userID))
		return
	}

	c.JSON(http.StatusOK, mapper.ToTaskDetail(task))
}

func (h *TaskHandler) CreateTask(c *gin.Context) {
	var req dto.CreateTaskRequest
	raw, err := bindJSONWithFields(c, &req)
	if err != nil {
		writeBadRequest(c, apierrors.MsgInvalidTaskPayload)
		return
	}

	input, err := validation.BuildCreateTaskInput(req, raw)
	if err != nil {
		writeBadRequest(c, apierrors.MsgInvalidTaskPayload)
		return
	}

	userID := middleware.GetUserID(c)
	task, err := h.taskService.CreateTask(c.Request.Context(), userID, input)
	if err != nil {
		writeError(c, err, apierrors.MsgFailCreateTask, zap.Uint64("user_id", userID))
		return
	}

	c.JSON(http.StatusCreated, mapper.ToTaskItem(task))
}

func (h *TaskHandler) UpdateTask(c *gin.Context) {
	taskID, ok := parseTaskID(c)
	if !ok {
		return
	}

	var req dto.UpdateTaskRequest
	raw, err := bindJSONWithFields(c, &req)
	if err != nil {
		writeBadRequest(c, apierrors.MsgInvalidTaskPayload)
		return
	}

	input, err := validation.BuildUpdateTaskInput(req, raw)
	if err != nil {
		writeBadRequest(c, apierrors.MsgInvalidTaskPayload)
		return
	}

	userID := middleware.GetUserID(c)
	task, err := h.taskService.UpdateTask(c.Request.Context(), userID, taskID, input)
	if err != nil {
		writeError(c, err, apierrors.MsgFailUpdateTask, zap.Uint64("task_id", taskID), zap.Uint64("user_id", userID))
		return
	}

	c.JSON(http.StatusOK, mapper.ToTaskItem(task))
}

func (h *TaskHandler) UpdateTaskStatus(c *gin.Context) {
	taskID, ok := parseTaskID(c)
	if !ok {
		return
	}

	var req dto.UpdateTaskStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBadRequest(c, apierrors.MsgInvalidTaskStatus)
		return
	}

	userID := middleware.GetUserID(c)
	if err := h.taskService.ChangeTaskStatus(c.Request.Context(), userID, taskID, req.Status); err != nil {
		writeError(c, err, apierrors.MsgFailUpdateTaskStatus, zap.Uint64("task_id", taskID), zap.Uint64("user_id", userID))
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *TaskHandler) DeleteTask(c *gin.Context) {
	taskID, ok := parseTaskID(c)
	if !ok {
		return
	}

	userID := middleware.GetUserID(c)
	if err := h.taskService.DeleteTask(c.Request.Context(), userID, taskID); err != nil {
		writeError(c, err, apierrors.MsgFailDeleteTask, zap.Uint64("task_id", taskID), zap.Uint64("user_id", userID))
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *TaskHandler) CompletionSummary(c *gin.Context) {
	userID := middleware.GetUserID(c)
	day := c.Param("day")

	summary, err := h.taskService.CompletionSummary(c.Request.Context(), userID, day)
	if err != nil {
		writeError(c, err, apierrors.MsgFailCompletionSummary, zap.String("day", day), zap.Uint64("user_id", userID))
		return
	}

	c.JSON(http.StatusOK, mapper.ToCompletionSummary(summary))
}

func parseTaskID(c *gin.Context) (uint64, bool) {
	taskID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || taskID == 0 {
		writeBadRequest(c, apierrors.MsgInvalidTaskID)
		return 0, false
	}
	return taskID, true
}
