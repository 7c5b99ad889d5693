package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pkeller/capflow/internal/cli"
	"github.com/pkeller/capflow/internal/model"
)

func logCmd() *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "log <category> <amount> [note...]",
		Short: "Log an expense against a category",
		Long: `Log an expense against a category. The transaction is dated today
unless --date is given, and inherits the category's expense type.

Examples:
  capflow log Food 12.50
  capflow log Food 34.20 dinner with friends
  capflow log Rent 500 --date 2024-03-01`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			amount, err := parseAmount(args[1])
			if err != nil {
				return err
			}
			if date != "" && !model.ValidDate(date) {
				return fmt.Errorf("invalid date %q: expected YYYY-MM-DD", date)
			}

			manager, store, err := initManager(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			category := args[0]
			if _, ok := manager.Caps()[category]; !ok {
				return fmt.Errorf("unknown category %q: define it first with 'capflow categories set'", category)
			}

			tx, err := manager.AddTransaction(ctx, model.Transaction{
				Category: category,
				Amount:   amount,
				Note:     strings.Join(args[2:], " "),
				Date:     date,
			})
			if err != nil {
				return err
			}

			remaining := manager.Remaining()[category]
			fmt.Println(cli.FormatSuccess(fmt.Sprintf(
				"Logged %s against %s (#%d), %s remaining",
				cli.FormatAmount(tx.Amount), category, tx.ID, cli.FormatRemaining(remaining))))
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "transaction date (YYYY-MM-DD, default: today)")
	return cmd
}
