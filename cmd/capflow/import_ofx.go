package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/pkeller/capflow/internal/cli"
	"github.com/pkeller/capflow/internal/ofx"
)

func importOFXCmd() *cobra.Command {
	var (
		category string
		dryRun   bool
	)

	cmd := &cobra.Command{
		Use:   "import-ofx <files...>",
		Short: "Import debit transactions from OFX/QFX bank exports",
		Long: `Parse one or more OFX/QFX files and log every debit as an expense in
the given category. Credits (deposits, refunds) are skipped. Use
--dry-run to see what would be imported without writing anything.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			manager, store, err := initManager(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			info, ok := manager.Caps()[category]
			if !ok {
				return fmt.Errorf("unknown category %q: create it first with 'capflow categories set'", category)
			}

			parser := ofx.NewParser(category, info.Type)

			bar := progressbar.NewOptions(len(args),
				progressbar.OptionSetWriter(os.Stderr),
				progressbar.OptionShowCount(),
				progressbar.OptionSetWidth(40),
				progressbar.OptionSetDescription("Importing files..."),
				progressbar.OptionOnCompletion(func() {
					fmt.Fprintln(os.Stderr)
				}),
			)

			imported := 0
			for _, path := range args {
				f, err := os.Open(path)
				if err != nil {
					return fmt.Errorf("failed to open %s: %w", path, err)
				}

				txns, err := parser.ParseFile(ctx, f)
				_ = f.Close()
				if err != nil {
					return fmt.Errorf("failed to parse %s: %w", path, err)
				}

				slog.Debug("parsed OFX file", "path", path, "transactions", len(txns))

				for _, tx := range txns {
					if dryRun {
						fmt.Printf("%s  %s  %s  %s\n",
							tx.Date, tx.Category, cli.FormatAmount(tx.Amount), tx.Note)
						imported++
						continue
					}
					if _, err := manager.AddTransaction(ctx, tx); err != nil {
						return fmt.Errorf("failed to log transaction from %s: %w", path, err)
					}
					imported++
				}

				_ = bar.Add(1)
			}

			if dryRun {
				fmt.Println(cli.FormatWarning(fmt.Sprintf(
					"Dry run: %d transactions would be imported into %s", imported, category)))
				return nil
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf(
				"Imported %d transactions into %s", imported, category)))
			return nil
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "category to log imported debits against")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "parse and print without saving")
	_ = cmd.MarkFlagRequired("category")

	return cmd
}
