package cli

import (
	"github.com/spf13/cobra"

	"github.com/nemogoc/pickup/internal/services"
)

func newGameCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "game",
		Short: "Game scheduling commands",
	}

	cmd.AddCommand(newGameCreateCmd())
	cmd.AddCommand(newGameEditCmd())
	cmd.AddCommand(newGameCurrentCmd())
	cmd.AddCommand(newGameResendCmd())

	return cmd
}

func scheduleFlags(cmd *cobra.Command, in *services.GameInput) {
	cmd.Flags().StringVar(&in.Date, "date", "", "Date, YYYY-MM-DD (required)")
	cmd.Flags().StringVar(&in.Time, "time", "", "Start time, HH:MM 24h (required)")
	cmd.Flags().StringVar(&in.Location, "location", "", "Where the game is played (required)")
	_ = cmd.MarkFlagRequired("date")
	_ = cmd.MarkFlagRequired("time")
	_ = cmd.MarkFlagRequired("location")
}

func newGameCreateCmd() *cobra.Command {
	var in services.GameInput

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Schedule a new game and invite every player",
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := application.Games.CreateGame(cmd.Context(), in)
			if err != nil {
				return err
			}
			out.Print(result)
			return nil
		},
	}
	scheduleFlags(cmd, &in)

	return cmd
}

func newGameEditCmd() *cobra.Command {
	var in services.GameInput

	cmd := &cobra.Command{
		Use:   "edit",
		Short: "Change the current game's date, time or location",
		RunE: func(cmd *cobra.Command, args []string) error {
			game, err := application.Games.EditCurrentGame(cmd.Context(), in)
			if err != nil {
				return err
			}
			out.Print(game)
			return nil
		},
	}
	scheduleFlags(cmd, &in)

	return cmd
}

func newGameCurrentCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "current",
		Short: "Show the current game",
		RunE: func(cmd *cobra.Command, args []string) error {
			game, err := application.Games.CurrentGame(cmd.Context())
			if err != nil {
				return err
			}
			out.Print(game)
			return nil
		},
	}
}

func newGameResendCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "resend",
		Short: "Send the current game's invitation again",
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := application.Games.ResendInvites(cmd.Context())
			if err != nil {
				return err
			}
			out.Print(result)
			return nil
		},
	}
}
