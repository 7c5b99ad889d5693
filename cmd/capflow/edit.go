package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/pkeller/capflow/internal/cli"
)

func editCmd() *cobra.Command {
	var (
		category string
		amount   float64
		note     string
	)

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a logged transaction",
		Long: `Edit a transaction by its id. Only the given flags change; the date
is immutable once logged. Moving a transaction to another category also
updates its expense type to that category's type.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil || id <= 0 {
				return fmt.Errorf("invalid transaction id %q", args[0])
			}

			manager, store, err := initManager(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			var found bool
			for _, existing := range manager.Transactions() {
				if existing.ID == id {
					updated := existing
					if cmd.Flags().Changed("category") {
						caps := manager.Caps()
						info, ok := caps[category]
						if !ok {
							return fmt.Errorf("unknown category %q", category)
						}
						updated.Category = category
						updated.Type = info.Type
					}
					if cmd.Flags().Changed("amount") {
						if amount <= 0 {
							return fmt.Errorf("amount must be positive, got %v", amount)
						}
						updated.Amount = amount
					}
					if cmd.Flags().Changed("note") {
						updated.Note = note
					}

					if err := manager.UpdateTransaction(ctx, updated); err != nil {
						return err
					}
					found = true
					break
				}
			}

			if !found {
				return fmt.Errorf("no transaction with id %d", id)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Updated transaction #%d", id)))
			return nil
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "move the transaction to another category")
	cmd.Flags().Float64Var(&amount, "amount", 0, "new amount")
	cmd.Flags().StringVar(&note, "note", "", "new note")
	return cmd
}
