package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pkeller/capflow/internal/cli"
)

func typesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "types",
		Short: "Manage expense types",
	}

	cmd.AddCommand(listTypesCmd())
	cmd.AddCommand(addTypeCmd())
	cmd.AddCommand(renameTypeCmd())
	cmd.AddCommand(deleteTypeCmd())

	return cmd
}

func listTypesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List expense types in display order",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			manager, store, err := initManager(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			for _, t := range manager.ExpenseTypes() {
				fmt.Println(t)
			}
			return nil
		},
	}
}

func addTypeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <name>",
		Short: "Add an expense type",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			name := args[0]

			manager, store, err := initManager(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if err := manager.AddExpenseType(ctx, name); err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Added expense type %s", name)))
			return nil
		},
	}
}

func renameTypeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rename <old> <new>",
		Short: "Rename an expense type, cascading to categories and transactions",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			oldName, newName := args[0], args[1]

			manager, store, err := initManager(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if err := manager.UpdateExpenseType(ctx, oldName, newName); err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Renamed expense type %s to %s", oldName, newName)))
			return nil
		},
	}
}

func deleteTypeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete an unused expense type",
		Long: `Delete an expense type. Fails while any category still uses it;
re-type or delete those categories first. Transactions keep whatever
type label they were logged with.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			name := args[0]

			manager, store, err := initManager(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if err := manager.DeleteExpenseType(ctx, name); err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Deleted expense type %s", name)))
			return nil
		},
	}
}
