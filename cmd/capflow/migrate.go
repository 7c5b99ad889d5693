package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pkeller/capflow/internal/cli"
	"github.com/pkeller/capflow/internal/storage"
)

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		Long: `Bring the database schema up to the current version. Migrations also
run automatically whenever the budget is loaded; this command exists
to run them explicitly and report the resulting version.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage()
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if err := store.Migrate(ctx); err != nil {
				return fmt.Errorf("migration failed: %w", err)
			}

			version, err := store.SchemaVersion(ctx)
			if err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf(
				"Database schema is at version %d (expected %d)", version, storage.ExpectedSchemaVersion)))
			return nil
		},
	}
}
