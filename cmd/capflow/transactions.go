package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/pkeller/capflow/internal/cli"
)

func transactionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "transactions",
		Short: "List or clear logged transactions",
	}

	cmd.AddCommand(listTransactionsCmd())
	cmd.AddCommand(clearTransactionsCmd())

	return cmd
}

func listTransactionsCmd() *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List transactions",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			manager, store, err := initManager(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			transactions := manager.Transactions()
			if category != "" {
				filtered := transactions[:0]
				for _, tx := range transactions {
					if tx.Category == category {
						filtered = append(filtered, tx)
					}
				}
				transactions = filtered
			}

			if len(transactions) == 0 {
				fmt.Println(cli.SubtleStyle.Render("No transactions yet."))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
				cli.TableHeaderStyle.Render("ID"),
				cli.TableHeaderStyle.Render("Date"),
				cli.TableHeaderStyle.Render("Category"),
				cli.TableHeaderStyle.Render("Type"),
				cli.TableHeaderStyle.Render("Amount"),
				cli.TableHeaderStyle.Render("Note"))

			for _, tx := range transactions {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
					tx.ID, tx.Date, tx.Category, tx.Type,
					cli.FormatAmount(tx.Amount), tx.Note)
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "only show transactions for this category")
	return cmd
}

func clearTransactionsCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete every transaction",
		Long: `Delete every transaction. There is no per-transaction delete; this
clears the whole collection. Caps and expense types are untouched.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			manager, store, err := initManager(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			count := len(manager.Transactions())
			if count == 0 {
				fmt.Println(cli.SubtleStyle.Render("Nothing to clear."))
				return nil
			}

			if !force {
				fmt.Printf("Delete all %d transactions? [y/N] ", count)
				reader := bufio.NewReader(os.Stdin)
				answer, _ := reader.ReadString('\n')
				if !strings.HasPrefix(strings.ToLower(strings.TrimSpace(answer)), "y") {
					fmt.Println("Aborted.")
					return nil
				}
			}

			if err := manager.ClearTransactions(ctx); err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Cleared %d transactions", count)))
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "skip the confirmation prompt")
	return cmd
}
