package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"tasktree/internal/adapter/http/dto"
	"tasktree/internal/adapter/http/mapper"
	"tasktree/internal/adapter/http/middleware"
	"tasktree/internal/core/domain"
	"tasktree/internal/core/ports"
	"tasktree/pkg/apierrors"
)

type UserHandler struct {
	userService ports.UserService
}

func NewUserHandler(userService ports.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

func (h *UserHandler) Register(c *gin.Context) {
	var req dto.CredentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBadRequest(c, apierrors.MsgInvalidUserPayload)
		return
	}

	user, err := h.userService.Register(c.Request.Context(), domain.Credentials{Username: req.Username, Password: req.Password})
	if err != nil {
		writeError(c, err, apierrors.MsgFailRegisterUser, zap.String("username", req.Username))
		return
	}

	c.JSON(http.StatusCreated, mapper.ToUserItem(user))
}

func (h *UserHandler) Login(c *gin.Context) {
	var req dto.CredentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBadRequest(c, apierrors.MsgInvalidUserPayload)
		return
	}

	token, err := h.userService.Login(c.Request.Context(), domain.Credentials{Username: req.Username, Password: req.Password})
	if err != nil {
		writeError(c, err, apierrors.MsgFailLoginUser, zap.String("username", req.Username))
		return
	}

	c.JSON(http.StatusOK, dto.LoginResponse{AccessToken: token})
}

func (h *UserHandler) Profile(c *gin.Context) {
	userID := middleware.GetUserID(c)

	user, err := h.userService.Profile(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err, apierrors.MsgFailGetProfile, zap.Uint64("user_id", userID))
		return
	}

	c.JSON(http.StatusOK, mapper.ToUserItem(user))
}
