package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nemogoc/pickup/internal/models"
	"github.com/nemogoc/pickup/internal/services"
)

func newSummaryCmd() *cobra.Command {
	var gameID string

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Show attendance for a game",
		RunE: func(cmd *cobra.Command, args []string) error {
			summary, err := application.Reports.RosterSummary(cmd.Context(), gameID)
			if err != nil {
				return err
			}
			out.Print(summary)
			return nil
		},
	}

	cmd.Flags().StringVar(&gameID, "game", "", "Game id (default: current game)")

	return cmd
}

func newLogsCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Show recent answer changes for the current game",
		RunE: func(cmd *cobra.Command, args []string) error {
			if limit < 0 {
				return fmt.Errorf("--limit must not be negative")
			}
			entries, err := application.Reports.RecentLogs(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if entries == nil {
				entries = []models.LogEntry{}
			}
			out.Print(entries)
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", services.DefaultLogLimit, "Maximum number of entries")

	return cmd
}

func newBroadcastCmd() *cobra.Command {
	var subject, body, bodyFile string

	cmd := &cobra.Command{
		Use:   "broadcast",
		Short: "Email every player",
		RunE: func(cmd *cobra.Command, args []string) error {
			if bodyFile != "" {
				data, err := os.ReadFile(bodyFile)
				if err != nil {
					return err
				}
				body = string(data)
			}
			report, err := application.Mail.Broadcast(cmd.Context(), subject, body)
			if err != nil {
				return err
			}
			out.Print(report)
			return nil
		},
	}

	cmd.Flags().StringVar(&subject, "subject", "", "Subject line (required)")
	cmd.Flags().StringVar(&body, "body", "", "Message body, HTML allowed")
	cmd.Flags().StringVar(&bodyFile, "body-file", "", "Read the body from a file")
	_ = cmd.MarkFlagRequired("subject")
	cmd.MarkFlagsMutuallyExclusive("body", "body-file")
	cmd.MarkFlagsOneRequired("body", "body-file")

	return cmd
}

func newRemindCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remind",
		Short: "Send tomorrow's attendance summary now",
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := application.Mail.SendTomorrowSummary(cmd.Context())
			if err != nil {
				return err
			}
			out.Print(result)
			return nil
		},
	}
}
