package main

import (
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/pkeller/capflow/internal/cli"
	"github.com/pkeller/capflow/internal/model"
)

func categoriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "Manage spending categories and their caps",
	}

	cmd.AddCommand(listCategoriesCmd())
	cmd.AddCommand(setCategoryCmd())
	cmd.AddCommand(renameCategoryCmd())
	cmd.AddCommand(deleteCategoryCmd())

	return cmd
}

func listCategoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all categories",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			manager, store, err := initManager(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			caps := manager.Caps()
			if len(caps) == 0 {
				fmt.Println(cli.SubtleStyle.Render("No categories found. Use 'capflow categories set' to create one."))
				return nil
			}

			names := caps.Categories()
			sort.Strings(names)

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "%s\t%s\t%s\n",
				cli.TableHeaderStyle.Render("Category"),
				cli.TableHeaderStyle.Render("Cap"),
				cli.TableHeaderStyle.Render("Type"))

			for _, name := range names {
				info := caps[name]
				fmt.Fprintf(w, "%s\t%s\t%s\n", name, cli.FormatAmount(info.Cap), info.Type)
			}
			return w.Flush()
		},
	}
}

func setCategoryCmd() *cobra.Command {
	var expenseType string

	cmd := &cobra.Command{
		Use:   "set <name> <cap>",
		Short: "Create a category or change its cap",
		Long: `Create a category with the given monthly cap, or change the cap of an
existing one. New categories default to the Fixed expense type unless
--type is given.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			name := args[0]

			cap, err := parseAmount(args[1])
			if err != nil {
				return err
			}

			manager, store, err := initManager(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			caps := manager.Caps()
			info, exists := caps[name]
			if !exists {
				info = model.CapInfo{Type: model.DefaultExpenseType}
			}
			info.Cap = cap
			if cmd.Flags().Changed("type") {
				info.Type = expenseType
			}

			if !hasExpenseType(manager.ExpenseTypes(), info.Type) {
				return fmt.Errorf("unknown expense type %q: add it first with 'capflow types add'", info.Type)
			}

			caps[name] = info
			if err := manager.UpdateCaps(ctx, caps); err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf(
				"Set %s: cap %s, type %s", name, cli.FormatAmount(info.Cap), info.Type)))
			return nil
		},
	}

	cmd.Flags().StringVar(&expenseType, "type", "", "expense type for the category")
	return cmd
}

func renameCategoryCmd() *cobra.Command {
	var (
		newCap      float64
		expenseType string
	)

	cmd := &cobra.Command{
		Use:   "rename <old> <new>",
		Short: "Rename a category, cascading to its transactions",
		Long: `Rename a category. Every transaction logged against the old name is
rewritten to the new name, and its expense type is synced to the
category's current type. Cap and type stay the same unless --cap or
--type are given.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			oldName, newName := args[0], args[1]

			manager, store, err := initManager(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			info, ok := manager.Caps()[oldName]
			if !ok {
				return fmt.Errorf("unknown category %q", oldName)
			}

			cap := info.Cap
			if cmd.Flags().Changed("cap") {
				if newCap <= 0 {
					return fmt.Errorf("cap must be positive, got %v", newCap)
				}
				cap = newCap
			}
			typ := info.Type
			if cmd.Flags().Changed("type") {
				typ = expenseType
			}
			if !hasExpenseType(manager.ExpenseTypes(), typ) {
				return fmt.Errorf("unknown expense type %q", typ)
			}

			if err := manager.UpdateCategory(ctx, oldName, newName, cap, typ); err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Renamed %s to %s", oldName, newName)))
			return nil
		},
	}

	cmd.Flags().Float64Var(&newCap, "cap", 0, "new monthly cap")
	cmd.Flags().StringVar(&expenseType, "type", "", "new expense type")
	return cmd
}

func deleteCategoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a category",
		Long: `Delete a category's cap. Transactions already logged against it are
kept; they stop counting toward any budget until relabelled.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			name := args[0]

			manager, store, err := initManager(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if _, ok := manager.Caps()[name]; !ok {
				return fmt.Errorf("unknown category %q", name)
			}

			if err := manager.DeleteCategory(ctx, name); err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Deleted category %s", name)))
			return nil
		},
	}
}

func hasExpenseType(types []string, name string) bool {
	for _, t := range types {
		if t == name {
			return true
		}
	}
	return false
}
