// Package tui implements the read-only budget dashboard: a table of
// categories with their caps, spend, and remaining budget.
package tui

import (
	"sort"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pkeller/capflow/internal/budget"
	"github.com/pkeller/capflow/internal/cli"
	"github.com/pkeller/capflow/internal/model"
)

// Row is one dashboard line: a category with its derived figures.
type Row struct {
	Category  string
	Type      string
	Cap       float64
	Spent     float64
	Remaining float64
}

// BuildRows derives the dashboard rows from the current caps and
// transactions, sorted by category name. Orphaned spend is not shown;
// the dashboard mirrors the remaining-budget view.
func BuildRows(caps model.Caps, transactions []model.Transaction) []Row {
	remaining := budget.Remaining(caps, transactions)

	rows := make([]Row, 0, len(caps))
	for name, info := range caps {
		rows = append(rows, Row{
			Category:  name,
			Type:      info.Type,
			Cap:       info.Cap,
			Spent:     info.Cap - remaining[name],
			Remaining: remaining[name],
		})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Category < rows[j].Category })
	return rows
}

// Model is the bubbletea model for the dashboard.
type Model struct {
	table table.Model
}

// NewModel builds the dashboard from the given rows.
func NewModel(rows []Row) Model {
	columns := []table.Column{
		{Title: "Category", Width: 24},
		{Title: "Type", Width: 20},
		{Title: "Cap", Width: 10},
		{Title: "Spent", Width: 10},
		{Title: "Remaining", Width: 12},
	}

	tableRows := make([]table.Row, 0, len(rows))
	for _, r := range rows {
		tableRows = append(tableRows, table.Row{
			r.Category,
			r.Type,
			cli.FormatAmount(r.Cap),
			cli.FormatAmount(r.Spent),
			cli.FormatRemaining(r.Remaining),
		})
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(tableRows),
		table.WithFocused(true),
		table.WithHeight(len(tableRows)+1),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(cli.SubtleColor).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(cli.PrimaryColor).
		Bold(true)
	t.SetStyles(s)

	return Model{table: t}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	return cli.FormatTitle("Remaining Budgets") + "\n" + m.table.View() + "\n" +
		cli.SubtleStyle.Render("↑/↓ navigate · q quit") + "\n"
}

// Run starts the dashboard program and blocks until the user quits.
func Run(rows []Row) error {
	_, err := tea.NewProgram(NewModel(rows)).Run()
	return err
}
