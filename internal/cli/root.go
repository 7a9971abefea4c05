// Package cli wires the command line interface of the book tracker.
package cli

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/mrlokans/booktracker/internal/config"
	"github.com/mrlokans/booktracker/internal/entrypoint"
)

// NewRootCommand builds the command tree. Running the binary without a
// subcommand starts the server.
func NewRootCommand(version, commit string) *cobra.Command {
	root := &cobra.Command{
		Use:           "booktracker",
		Short:         "Personal book tracker backend",
		Version:       fmt.Sprintf("%s (%s)", version, commit),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			entrypoint.Run(config.NewConfig(), version)
			return nil
		},
	}

	root.AddCommand(newServeCommand(version), newCreateDBCommand())
	return root
}

func newServeCommand(version string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			entrypoint.Run(config.NewConfig(), version)
			return nil
		},
	}
}

func newCreateDBCommand() *cobra.Command {
	var dbPath string

	cmd := &cobra.Command{
		Use:   "create-db",
		Short: "Create the database schema and the default user",
		Long: "Create the database schema and the default user (id=1) if they do not exist yet.\n" +
			"Safe to run repeatedly; existing data is left untouched.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.NewConfig()
			if dbPath != "" {
				cfg.Database.Path = dbPath
			}
			return CreateDatabase(cmd, cfg)
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "", "Path to the database file (default: $DATABASE_PATH or "+config.DefaultDatabasePath+")")
	return cmd
}

// CreateDatabase runs the bootstrap and reports whether the default user was created.
func CreateDatabase(cmd *cobra.Command, cfg *config.Config) error {
	db, err := entrypoint.OpenDatabase(cfg)
	if err != nil {
		return fmt.Errorf("failed to create database: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Database tables created at %s\n", cfg.Database.Path)
	if db.DefaultUserCreated {
		fmt.Fprintln(out, "Default user created (id=1).")
	} else {
		fmt.Fprintln(out, "Default user already exists.")
	}
	return nil
}
