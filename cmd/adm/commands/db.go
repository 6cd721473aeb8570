// Package commands provides CLI commands for the admin tool
package commands

import (
	"context"
	"database/sql"

	"aitutor/internal/database"
	"aitutor/internal/observability"
	contextutils "aitutor/internal/utils"

	"github.com/spf13/cobra"
)

// DatabaseCommands returns the database management commands
func DatabaseCommands(logger *observability.Logger, dbManager *database.Manager, db *sql.DB, databaseURL string) *cobra.Command {
	dbCmd := &cobra.Command{
		Use:   "db",
		Short: "Database management commands",
		Long: `Database management commands for the AI tutor backend.

Available commands:
  ping      - Check database connectivity
  stats     - Show database statistics
  migrate   - Run pending schema migrations`,
	}

	dbCmd.AddCommand(pingCmd(logger, db))
	dbCmd.AddCommand(statsCmd(logger, db))
	dbCmd.AddCommand(migrateCmd(logger, dbManager, db, databaseURL))

	return dbCmd
}

func pingCmd(logger *observability.Logger, db *sql.DB) *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Check database connectivity",
		RunE: func(_ *cobra.Command, _ []string) error {
			ctx := context.Background()
			if err := db.PingContext(ctx); err != nil {
				logger.Error(ctx, "Database ping failed", err, nil)
				return contextutils.WrapErrorf(contextutils.ErrDatabaseConnection, "ping failed: %v", err)
			}
			logger.Info(ctx, "Database reachable", map[string]interface{}{"database": getDatabaseInfo(db)})
			return nil
		},
	}
}

func statsCmd(logger *observability.Logger, db *sql.DB) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show database statistics",
		Long:  `Show row counts for the chat and quiz history tables.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			ctx := context.Background()

			var chatCount, quizCount int
			if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM chats").Scan(&chatCount); err != nil {
				logger.Error(ctx, "Failed to count chats", err, nil)
				return contextutils.WrapErrorf(contextutils.ErrDatabaseQuery, "failed to count chats: %v", err)
			}
			if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM quizzes").Scan(&quizCount); err != nil {
				logger.Error(ctx, "Failed to count quizzes", err, nil)
				return contextutils.WrapErrorf(contextutils.ErrDatabaseQuery, "failed to count quizzes: %v", err)
			}

			logger.Info(ctx, "Database statistics", map[string]interface{}{
				"chats":    chatCount,
				"quizzes":  quizCount,
				"database": getDatabaseInfo(db),
			})
			return nil
		},
	}
}

func migrateCmd(logger *observability.Logger, dbManager *database.Manager, db *sql.DB, databaseURL string) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Run pending schema migrations",
		RunE: func(_ *cobra.Command, _ []string) error {
			ctx := context.Background()
			if err := dbManager.RunMigrations(db, databaseURL); err != nil {
				logger.Error(ctx, "Migrations failed", err, nil)
				return contextutils.WrapErrorf(contextutils.ErrInternalError, "migrations failed: %v", err)
			}
			logger.Info(ctx, "Migrations applied successfully", nil)
			return nil
		},
	}
}
