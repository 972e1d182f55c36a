package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	dbadapter "tasktree/internal/adapter/db"
	"tasktree/internal/config"
)

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply the embedded database migrations and exit",
		Long: `Apply the schema for the configured DB_DRIVER (mysql, pgx or sqlite3).

Every statement is idempotent, so running it on an up-to-date database is a no-op.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}

			logger, err := newLogger(cfg.LogLevel)
			if err != nil {
				return err
			}
			defer syncLogger(logger)

			db, err := dbadapter.ConnectDB(cfg)
			if err != nil {
				return err
			}
			defer db.Close()

			if err := dbadapter.Migrate(cmd.Context(), db); err != nil {
				return err
			}

			logger.Info("migrations applied", zap.String("driver", cfg.DbDriver))
			return nil
		},
	}
}
