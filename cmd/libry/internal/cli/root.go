// Package cli implements the libry operator commands.
package cli

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/MrJamesThe3rd/libry/internal/app"
	"github.com/MrJamesThe3rd/libry/internal/config"
)

// env is filled by the root command before any subcommand runs.
type env struct {
	cfg    *config.Config
	logger *slog.Logger
}

func NewRootCommand() *cobra.Command {
	e := &env{}

	root := &cobra.Command{
		Use:           "libry",
		Short:         "Operate the library: schema, catalog imports, lending and API tokens",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := app.LoadConfig()
			if err != nil {
				return err
			}

			e.cfg = cfg
			e.logger = logger

			return nil
		},
	}

	root.AddCommand(
		newMigrateCommand(e),
		newImportCommand(e),
		newIssueCommand(e),
		newReturnCommand(e),
		newTokenCommand(e),
	)

	return root
}

// open builds the application for commands that need the database.
func (e *env) open(cmd *cobra.Command) (*app.App, error) {
	return app.New(cmd.Context(), e.cfg, e.logger)
}
