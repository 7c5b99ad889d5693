package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkeller/capflow/internal/model"
)

func TestBuildRows(t *testing.T) {
	caps := model.Caps{
		"Food": {Cap: 100, Type: "Variable"},
		"Rent": {Cap: 500, Type: "Fixed"},
	}
	txns := []model.Transaction{
		{ID: 1, Category: "Food", Amount: 30, Date: "2024-03-01", Type: "Variable"},
		{ID: 2, Category: "Food", Amount: 90, Date: "2024-03-02", Type: "Variable"},
		{ID: 3, Category: "Gone", Amount: 10, Date: "2024-03-03", Type: "Fixed"},
	}

	rows := BuildRows(caps, txns)
	require.Len(t, rows, 2, "orphaned categories are not shown")

	assert.Equal(t, "Food", rows[0].Category)
	assert.InDelta(t, 120.0, rows[0].Spent, 1e-9)
	assert.InDelta(t, -20.0, rows[0].Remaining, 1e-9)

	assert.Equal(t, "Rent", rows[1].Category)
	assert.InDelta(t, 0.0, rows[1].Spent, 1e-9)
	assert.InDelta(t, 500.0, rows[1].Remaining, 1e-9)
}

func TestModel_View(t *testing.T) {
	m := NewModel(BuildRows(
		model.Caps{"Food": {Cap: 100, Type: "Variable"}},
		[]model.Transaction{{ID: 1, Category: "Food", Amount: 30, Date: "2024-03-01", Type: "Variable"}},
	))

	view := m.View()
	assert.Contains(t, view, "Food")
	assert.Contains(t, view, "70.00")
}

func TestModel_QuitKeys(t *testing.T) {
	m := NewModel(nil)

	tests := []struct {
		name string
		msg  tea.KeyMsg
	}{
		{name: "q", msg: tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")}},
		{name: "esc", msg: tea.KeyMsg{Type: tea.KeyEsc}},
		{name: "ctrl+c", msg: tea.KeyMsg{Type: tea.KeyCtrlC}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, cmd := m.Update(tt.msg)
			require.NotNil(t, cmd)
			assert.Equal(t, tea.Quit(), cmd())
		})
	}
}
