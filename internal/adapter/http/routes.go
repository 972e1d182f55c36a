package http

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"tasktree/internal/adapter/http/handlers"
	"tasktree/internal/adapter/http/middleware"
	"tasktree/internal/core/ports"
)

type Handlers struct {
	Health *handlers.HealthHandler
	Task   *handlers.TaskHandler
	User   *handlers.UserHandler
}

// RegisterRoutes mounts the API under /api and the Prometheus endpoint at
// /metrics. metrics may be nil.
func RegisterRoutes(r *gin.Engine, h Handlers, verifier ports.TokenVerifier, metrics *middleware.Metrics) {
	if metrics != nil {
		r.Use(metrics.Middleware())
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(metrics.Registry(), promhttp.HandlerOpts{})))
	}

	api := r.Group("/api")
	api.Use(middleware.LanguageMiddleware())
	{
		api.GET("/health", h.Health.CheckHealth)
		api.GET("/health/report", h.Health.CheckHealthReport)

		api.POST("/users/register", h.User.Register)
		api.POST("/users/login", h.User.Login)
	}

	authed := api.Group("")
	authed.Use(middleware.RequireAuth(verifier))
	{
		authed.GET("/users/profile", h.User.Profile)

		authed.POST("/tasks", h.Task.CreateTask)
		authed.GET("/tasks", h.Task.ListRootTasks)
		authed.GET("/tasks/:id", h.Task.GetTask)
		authed.PATCH("/tasks/:id", h.Task.UpdateTask)
		authed.PATCH("/tasks/:id/status", h.Task.UpdateTaskStatus)
		authed.DELETE("/tasks/:id", h.Task.DeleteTask)

		authed.GET("/summary/completed/:day", h.Task.CompletionSummary)
	}
}
