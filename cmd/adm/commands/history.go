package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"aitutor/internal/observability"
	"aitutor/internal/services"
	contextutils "aitutor/internal/utils"

	"github.com/spf13/cobra"
)

// HistoryCommands returns the chat and quiz history inspection commands
func HistoryCommands(historyService services.HistoryServiceInterface, logger *observability.Logger) *cobra.Command {
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Chat and quiz history commands",
		Long: `Inspect stored chat and quiz history.

Available commands:
  chats     - List recent chats for a user
  quizzes   - List recent quizzes for a user`,
	}

	historyCmd.AddCommand(chatsCmd(historyService, logger))
	historyCmd.AddCommand(quizzesCmd(historyService, logger))

	return historyCmd
}

func chatsCmd(historyService services.HistoryServiceInterface, logger *observability.Logger) *cobra.Command {
	var userID string
	var limit int

	cmd := &cobra.Command{
		Use:   "chats",
		Short: "List recent chats for a user",
		RunE: func(_ *cobra.Command, _ []string) error {
			ctx := context.Background()

			chats, err := historyService.GetUserChats(ctx, userID, limit)
			if err != nil {
				logger.Error(ctx, "Failed to load chats", err, map[string]interface{}{"user_id": userID})
				return contextutils.WrapErrorf(contextutils.ErrDatabaseQuery, "failed to load chats: %v", err)
			}

			return printJSON(chats)
		},
	}

	cmd.Flags().StringVar(&userID, "user", "anonymous", "User ID to list chats for")
	cmd.Flags().IntVar(&limit, "limit", 50, "Maximum number of chats to list")

	return cmd
}

func quizzesCmd(historyService services.HistoryServiceInterface, logger *observability.Logger) *cobra.Command {
	var userID string
	var limit int

	cmd := &cobra.Command{
		Use:   "quizzes",
		Short: "List recent quizzes for a user",
		RunE: func(_ *cobra.Command, _ []string) error {
			ctx := context.Background()

			quizzes, err := historyService.GetUserQuizzes(ctx, userID, limit)
			if err != nil {
				logger.Error(ctx, "Failed to load quizzes", err, map[string]interface{}{"user_id": userID})
				return contextutils.WrapErrorf(contextutils.ErrDatabaseQuery, "failed to load quizzes: %v", err)
			}

			return printJSON(quizzes)
		},
	}

	cmd.Flags().StringVar(&userID, "user", "anonymous", "User ID to list quizzes for")
	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of quizzes to list")

	return cmd
}

func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	return nil
}
