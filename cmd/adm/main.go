// Package main provides the entry point for the AI tutor admin CLI tool.
package main

import (
	"context"
	"fmt"
	"os"

	"aitutor/cmd/adm/commands"
	"aitutor/internal/config"
	"aitutor/internal/database"
	"aitutor/internal/observability"
	"aitutor/internal/services"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	ctx := context.Background()

	_ = godotenv.Load()

	cfg, err := config.NewConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Quiet logging and no OTLP export for the CLI
	cfg.Server.LogLevel = "error"
	cfg.OpenTelemetry.EnableTracing = false
	cfg.OpenTelemetry.EnableMetrics = false
	cfg.OpenTelemetry.EnableLogging = false

	_, _, logger, err := observability.SetupObservability(&cfg.OpenTelemetry, "ai-tutor-admin")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize observability: %v\n", err)
		os.Exit(1)
	}

	if cfg.Database.URL == "" {
		fmt.Fprintln(os.Stderr, "DATABASE_URL is not configured; the admin tool requires a database")
		os.Exit(1)
	}

	dbManager := database.NewManager(logger)
	db, err := dbManager.InitDBWithoutMigrations(cfg.Database)
	if err != nil {
		logger.Error(ctx, "Failed to connect to database", err, map[string]interface{}{"db_url": cfg.Database.URL})
		os.Exit(1)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Warn(ctx, "Warning: failed to close database connection", map[string]interface{}{"error": err.Error()})
		}
	}()

	historyService := services.NewHistoryService(db, logger)

	rootCmd := &cobra.Command{
		Use:   "adm",
		Short: "AI Tutor Administration Tool",
		Long: `AI Tutor Administration Tool

A CLI tool for administering the AI tutor backend.
Provides commands for inspecting chat and quiz history and database operations.`,

		Run: func(cmd *cobra.Command, _ []string) {
			if err := cmd.Help(); err != nil {
				fmt.Printf("Error showing help: %v\n", err)
			}
		},
	}

	rootCmd.AddCommand(commands.DatabaseCommands(logger, dbManager, db, cfg.Database.URL))
	rootCmd.AddCommand(commands.HistoryCommands(historyService, logger))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
