package main

import (
	"github.com/spf13/cobra"

	"github.com/pkeller/capflow/internal/tui"
)

func dashboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Interactive budget dashboard",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			manager, store, err := initManager(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			rows := tui.BuildRows(manager.Caps(), manager.Transactions())
			return tui.Run(rows)
		},
	}
}
