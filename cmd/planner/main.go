package main

import (
	"context"
	"fmt"
	"os"

	"github.com/aussiebroadwan/tripplan/internal/planner/app"
	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "planner",
		Short: "Travel planner API",
		Long: `Travel planner API: OTP verified accounts, AI generated itineraries
and saved plan history.

Configuration is read from the environment and an optional .env file.`,
		SilenceUsage: true,
		// Running the bare binary serves, as the container entrypoint expects.
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve()
		},
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Run the HTTP API",
			RunE: func(cmd *cobra.Command, args []string) error {
				return serve()
			},
		},
		&cobra.Command{
			Use:   "migrate",
			Short: "Apply database migrations and exit",
			RunE: func(cmd *cobra.Command, args []string) error {
				cfg := app.LoadConfig()
				db, err := app.OpenStore(context.Background(), cfg, app.NewLogger(cfg))
				if err != nil {
					return err
				}
				return db.Close()
			},
		},
		&cobra.Command{
			Use:   "version",
			Short: "Print version information",
			Run: func(cmd *cobra.Command, args []string) {
				fmt.Printf("planner version %s\n", app.BuildVersion)
			},
		},
	)

	return cmd
}

func serve() error {
	application, err := app.New(app.LoadConfig())
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}
	return application.Run()
}
