package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"go.uber.org/zap"

	"tasktree/internal/adapter/http/middleware"
	"tasktree/internal/core/domain"
	"tasktree/pkg/apierrors"
)

// writeError maps a service error to its HTTP status and translated message.
// Unexpected errors become a 500 carrying failKey and are logged.
func writeError(c *gin.Context, err error, failKey string, fields ...zap.Field) {
	status, msgKey := classifyError(err)
	if status == http.StatusInternalServerError {
		msgKey = failKey
		zap.L().Error(failKey, append(fields, zap.String("request_id", middleware.GetRequestID(c)), zap.Error(err))...)
	}

	_ = c.Error(err)
	c.JSON(status, apierrors.CreateError(status, msgKey, middleware.GetLang(c)))
}

func classifyError(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrInvalidTaskStatus):
		return http.StatusBadRequest, apierrors.MsgInvalidTaskStatus
	case errors.Is(err, domain.ErrInvalidDate):
		return http.StatusBadRequest, apierrors.MsgInvalidDate
	case errors.Is(err, domain.ErrInvalidUserPayload):
		return http.StatusBadRequest, apierrors.MsgInvalidUserPayload
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest, apierrors.MsgInvalidTaskPayload
	case errors.Is(err, domain.ErrTaskNotFound):
		return http.StatusNotFound, apierrors.MsgTaskNotFound
	case errors.Is(err, domain.ErrTaskHierarchyCycle):
		return http.StatusConflict, apierrors.MsgTaskHierarchyCycle
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, apierrors.MsgUserNotFound
	case errors.Is(err, domain.ErrUserAlreadyExists):
		return http.StatusBadRequest, apierrors.MsgUserAlreadyExists
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusBadRequest, apierrors.MsgInvalidCredentials
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized, apierrors.MsgUnauthorized
	default:
		return http.StatusInternalServerError, ""
	}
}

func writeBadRequest(c *gin.Context, msgKey string) {
	c.JSON(
		http.StatusBadRequest,
		apierrors.CreateError(http.StatusBadRequest, msgKey, middleware.GetLang(c)),
	)
}

// bindJSONWithFields binds the body into req and also returns the raw
// top-level fields, so callers can tell an absent field from an explicit null.
func bindJSONWithFields(c *gin.Context, req any) (map[string]json.RawMessage, error) {
	if err := c.ShouldBindBodyWith(req, binding.JSON); err != nil {
		return nil, err
	}

	var raw map[string]json.RawMessage
	if err := c.ShouldBindBodyWith(&raw, binding.JSON); err != nil {
		return nil, err
	}
	return raw, nil
}
