// Package cli implements pickupctl, the organiser's command line. It opens the
// same SQLite file as the server and calls the same services.
package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/nemogoc/pickup/internal/app"
	"github.com/nemogoc/pickup/internal/config"
)

// cliOrigin is recorded as the origin of responses entered from the CLI.
const cliOrigin = "cli"

// Options are the global flags.
type Options struct {
	DBFile  string
	Output  string
	Verbose bool
}

var (
	opts        *Options
	application *app.App
	out         *Output
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	opts = &Options{Output: "text"}
	application = nil
	out = nil

	rootCmd := &cobra.Command{
		Use:   "pickupctl",
		Short: "Manage the pickup basketball roster, games and RSVPs",
		Long: `pickupctl works directly on the pickup database.

It covers roster management, scheduling and resending games, recording
answers on someone's behalf, attendance reports and organiser emails.
Settings not given as flags are read from the same environment as the server.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if opts.Output != "text" && opts.Output != "json" {
				return fmt.Errorf("--output must be text or json, got %q", opts.Output)
			}
			out = NewOutput(opts.Output, cmd.OutOrStdout(), cmd.ErrOrStderr())

			c, err := config.Load()
			if err != nil {
				return err
			}
			if opts.DBFile != "" {
				c.DBFile = opts.DBFile
			}
			level := c.SlogLevel()
			if opts.Verbose {
				level = slog.LevelDebug
			}
			logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

			application, err = app.New(c, logger)
			return err
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if application == nil {
				return nil
			}
			return application.Close()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&opts.DBFile, "db", "", "SQLite database file (env: DB_FILE)")
	rootCmd.PersistentFlags().StringVarP(&opts.Output, "output", "o", opts.Output, "Output format: text, json")
	rootCmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "Verbose logging")

	rootCmd.AddCommand(newPlayerCmd())
	rootCmd.AddCommand(newGameCmd())
	rootCmd.AddCommand(newRSVPCmd())
	rootCmd.AddCommand(newSummaryCmd())
	rootCmd.AddCommand(newLogsCmd())
	rootCmd.AddCommand(newBroadcastCmd())
	rootCmd.AddCommand(newRemindCmd())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	cmd := NewRootCmd()
	if err := cmd.Execute(); err != nil {
		if out == nil {
			out = NewOutput("text", os.Stdout, os.Stderr)
		}
		out.PrintError(err)
		if application != nil {
			_ = application.Close()
		}
		os.Exit(1)
	}
}
