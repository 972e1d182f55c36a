package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"tasktree/internal/adapter/auth"
	dbadapter "tasktree/internal/adapter/db"
	httpadapter "tasktree/internal/adapter/http"
	"tasktree/internal/adapter/http/handlers"
	httpmiddleware "tasktree/internal/adapter/http/middleware"
	appservice "tasktree/internal/app/service"
	"tasktree/internal/config"
	"tasktree/pkg/translator"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API (default command)",
		Args:  cobra.NoArgs,
		RunE:  runServe,
	}
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer syncLogger(logger)

	if err := translator.InitTranslator(translator.Config{
		TranslationFolder:  cfg.TranslationFolder,
		SupportedLanguages: []string{translator.LanguageFr, translator.LanguageEn},
	}); err != nil {
		return err
	}

	db, err := dbadapter.ConnectDB(cfg)
	if err != nil {
		logger.Error("failed to connect to database", zap.String("driver", cfg.DbDriver), zap.Error(err))
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Warn("failed to close database connection", zap.Error(err))
		}
	}()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.DbAutoMigrate {
		if err := dbadapter.Migrate(ctx, db); err != nil {
			logger.Error("failed to apply migrations", zap.Error(err))
			return err
		}
	}

	tokens := auth.NewTokenManager(cfg.JwtSecret, cfg.JwtTTL, cfg.AppName)
	taskService := appservice.NewTaskService(dbadapter.NewTaskRepository(db))
	userService := appservice.NewUserService(dbadapter.NewUserRepository(db), auth.NewBcryptHasher(), tokens)

	r := gin.New()
	if err := r.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		return err
	}
	r.Use(gin.Recovery(), httpmiddleware.RequestID(), httpmiddleware.GinZapMiddleware(logger))
	httpadapter.RegisterRoutes(r, httpadapter.Handlers{
		Health: handlers.NewHealthHandler(db, cfg.AppName, cfg.AppVersion),
		Task:   handlers.NewTaskHandler(taskService),
		User:   handlers.NewUserHandler(userService),
	}, tokens, httpmiddleware.NewMetrics())

	server := &http.Server{
		Addr:    ":" + cfg.AppPort,
		Handler: r,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("starting server", zap.String("addr", server.Addr), zap.String("driver", cfg.DbDriver))
		serveErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("could not start server", zap.Error(err))
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down server", zap.Duration("timeout", cfg.ShutdownTimeout))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
		return err
	}
	return nil
}
