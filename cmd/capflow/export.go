package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pkeller/capflow/internal/cli"
	"github.com/pkeller/capflow/internal/export"
)

func exportCmd() *cobra.Command {
	var outDir string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export caps and transactions as JSON files",
		Long: `Write budget caps and the transaction log as JSON files into the
output directory, for backups or spreadsheet import.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			manager, store, err := initManager(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if err := export.WriteDir(outDir, manager.Caps(), manager.Transactions()); err != nil {
				return fmt.Errorf("failed to export: %w", err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf(
				"Exported %s and %s to %s", export.CapsFileName, export.TransactionsFileName, outDir)))
			return nil
		},
	}

	cmd.Flags().StringVar(&outDir, "out", ".", "directory to write export files into")
	return cmd
}
