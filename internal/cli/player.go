package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/nemogoc/pickup/internal/models"
)

func newPlayerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "player",
		Short: "Roster management commands",
	}

	cmd.AddCommand(newPlayerAddCmd())
	cmd.AddCommand(newPlayerImportCmd())
	cmd.AddCommand(newPlayerRemoveCmd())
	cmd.AddCommand(newPlayerIDCmd())
	cmd.AddCommand(newPlayerListCmd())

	return cmd
}

func newPlayerAddCmd() *cobra.Command {
	var name, email string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a player to the roster",
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := application.Roster.RegisterPlayers(cmd.Context(), []models.PlayerInput{{Name: name, Email: email}})
			if err != nil {
				return err
			}
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Player name (required)")
	cmd.Flags().StringVar(&email, "email", "", "Player email (required)")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("email")

	return cmd
}

func newPlayerImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Add players from a JSON array of {name, email}; use - for stdin",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var r io.Reader = cmd.InOrStdin()
			if args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				r = f
			}

			var inputs []models.PlayerInput
			if err := json.NewDecoder(r).Decode(&inputs); err != nil {
				return fmt.Errorf("failed to read players from %s: %w", args[0], err)
			}

			result, err := application.Roster.RegisterPlayers(cmd.Context(), inputs)
			if err != nil {
				return err
			}
			out.Print(result)
			return nil
		},
	}
}

func newPlayerRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <email>",
		Short: "Remove a player and their current answers",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			player, err := application.Roster.RemovePlayer(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			out.Print(player)
			return nil
		},
	}
}

func newPlayerIDCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "id <email>",
		Short: "Print a player's id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := application.Roster.PlayerID(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if opts.Output == "json" {
				out.Print(map[string]string{"playerId": id})
				return nil
			}
			out.PrintMessage(id)
			return nil
		},
	}
}

func newPlayerListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the roster",
		RunE: func(cmd *cobra.Command, args []string) error {
			players, err := application.Roster.ListPlayers(cmd.Context())
			if err != nil {
				return err
			}
			if players == nil {
				players = []models.Player{}
			}
			out.Print(players)
			return nil
		},
	}
}
