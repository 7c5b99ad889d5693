package main

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/pkeller/capflow/internal/budget"
	"github.com/pkeller/capflow/internal/cli"
)

func remainingCmd() *cobra.Command {
	var showOrphans bool

	cmd := &cobra.Command{
		Use:   "remaining",
		Short: "Show remaining budget per category",
		Long: `Display each category's cap, spend, and remaining budget. Negative
remaining means the category is overspent. Spend logged against deleted
categories is excluded unless --all is given.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			manager, store, err := initManager(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			caps := manager.Caps()
			if len(caps) == 0 {
				fmt.Println(cli.SubtleStyle.Render("No categories defined. Use 'capflow categories set' to create one."))
				return nil
			}

			transactions := manager.Transactions()
			remaining := manager.Remaining()
			spent := budget.Spent(transactions)

			names := caps.Categories()
			sort.Strings(names)

			fmt.Println(cli.FormatTitle("Remaining Budgets"))

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				cli.TableHeaderStyle.Render("Category"),
				cli.TableHeaderStyle.Render("Type"),
				cli.TableHeaderStyle.Render("Cap"),
				cli.TableHeaderStyle.Render("Spent"),
				cli.TableHeaderStyle.Render("Remaining"))

			for _, name := range names {
				info := caps[name]
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
					name,
					info.Type,
					cli.FormatAmount(info.Cap),
					cli.FormatAmount(spent[name]),
					cli.FormatRemaining(remaining[name]))
			}
			if err := w.Flush(); err != nil {
				return err
			}

			if showOrphans {
				printOrphans(caps.Categories(), spent)
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&showOrphans, "all", false, "also list spend against deleted categories")
	return cmd
}

// printOrphans lists spend whose category no longer has a cap.
func printOrphans(capped []string, spent map[string]float64) {
	isCapped := make(map[string]bool, len(capped))
	for _, name := range capped {
		isCapped[name] = true
	}

	var orphans []string
	for name := range spent {
		if !isCapped[name] {
			orphans = append(orphans, name)
		}
	}
	if len(orphans) == 0 {
		return
	}
	sort.Strings(orphans)

	fmt.Println()
	fmt.Println(cli.FormatWarning("Spend against deleted categories:"))
	var lines []string
	for _, name := range orphans {
		lines = append(lines, fmt.Sprintf("  %s: %s", name, cli.FormatAmount(spent[name])))
	}
	fmt.Println(strings.Join(lines, "\n"))
}
