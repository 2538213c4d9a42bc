package cli

import (
	"github.com/spf13/cobra"

	"github.com/nemogoc/pickup/internal/services"
)

func newRSVPCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rsvp",
		Short: "Record an answer on someone's behalf",
	}

	cmd.AddCommand(newRSVPPlayerCmd())
	cmd.AddCommand(newRSVPGuestCmd())

	return cmd
}

func newRSVPPlayerCmd() *cobra.Command {
	var email, status, gameID string

	cmd := &cobra.Command{
		Use:   "player",
		Short: "Record a roster player's answer",
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := application.Ledger.RespondByEmail(cmd.Context(), gameID, email, status, cliOrigin)
			if err != nil {
				return err
			}
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Player email (required)")
	cmd.Flags().StringVar(&status, "status", "", "yes, no or maybe (required)")
	cmd.Flags().StringVar(&gameID, "game", "", "Game id (default: current game)")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("status")

	return cmd
}

func newRSVPGuestCmd() *cobra.Command {
	var in services.GuestResponseInput

	cmd := &cobra.Command{
		Use:   "guest",
		Short: "Record a guest's answer",
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := application.Ledger.RecordGuestResponse(cmd.Context(), in, cliOrigin)
			if err != nil {
				return err
			}
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&in.Name, "name", "", "Guest name (required)")
	cmd.Flags().StringVar(&in.Status, "status", "", "yes, no or maybe (required)")
	cmd.Flags().StringVar(&in.InvitedBy, "invited-by", "", "Who brought the guest")
	cmd.Flags().StringVar(&in.GameID, "game", "", "Game id (default: current game)")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("status")

	return cmd
}
