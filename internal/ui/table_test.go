package ui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
)

func TestTable_ColumnWidths(t *testing.T) {
	table := &Table{
		Headers: []string{"ID", "Task", "Status"},
		Rows: [][]string{
			{"3f2a", "Prepare invoices", "To Do"},
			{"9b1c", "Review vendor contract terms", "In Progress"},
		},
	}

	widths := table.ColumnWidths()

	assert.Equal(t, 4, widths[0])
	assert.Equal(t, 28, widths[1])
	assert.Equal(t, 11, widths[2])
}

func TestTable_ColumnWidths_MaxWidth(t *testing.T) {
	table := &Table{
		Headers:  []string{"ID", "Description"},
		Rows:     [][]string{{"a", "Quarterly compliance audit across every regional office"}},
		MaxWidth: 20,
	}

	widths := table.ColumnWidths()

	assert.Equal(t, 2, widths[0])
	assert.Equal(t, 20, widths[1])
}

func TestTable_ColumnWidths_Unicode(t *testing.T) {
	table := &Table{
		Headers: []string{"Name"},
		Rows:    [][]string{{"Zoë Ångström"}},
	}

	assert.Equal(t, 12, table.ColumnWidths()[0])
}

func TestTable_Render(t *testing.T) {
	table := &Table{
		Headers: []string{"Member", "Load"},
		Rows: [][]string{
			{"Alice", "Light Load"},
			{"Bob", "Heavy Load"},
		},
		StatusColumns: []int{1},
	}

	output := table.Render()

	assert.Contains(t, output, "Member")
	assert.Contains(t, output, "Alice")
	assert.Contains(t, output, "Heavy Load")
	assert.Contains(t, output, "─")
}

func TestTable_Render_StatusColumnColored(t *testing.T) {
	prev := lipgloss.ColorProfile()
	lipgloss.SetColorProfile(termenv.ANSI256)
	t.Cleanup(func() { lipgloss.SetColorProfile(prev) })

	table := &Table{
		Headers:       []string{"KPI", "Status"},
		Rows:          [][]string{{"Revenue", "Red"}},
		StatusColumns: []int{1},
	}

	assert.Contains(t, table.Render(), StyleError.Render("Red   "))
}

func TestTable_Render_Empty(t *testing.T) {
	table := &Table{}
	assert.Empty(t, table.Render())
}

func TestTable_Render_Truncation(t *testing.T) {
	table := &Table{
		Headers:  []string{"Text"},
		Rows:     [][]string{{"This is way too long"}},
		MaxWidth: 10,
	}

	assert.Contains(t, table.Render(), "This is w…")
}

func TestTruncateID(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"5e0f3c2a-7d4b-4c8e-9a1f-2b3c4d5e6f70", "5e0f3c2a"},
		{"short", "short"},
		{"", ""},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.expected, TruncateID(tc.input))
	}
}

func TestPadRight(t *testing.T) {
	tests := []struct {
		input    string
		width    int
		expected string
	}{
		{"abc", 5, "abc  "},
		{"hello", 5, "hello"},
		{"longer", 3, "longer"},
		{"", 3, "   "},
		{"é", 3, "é  "},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.expected, padRight(tc.input, tc.width))
	}
}

func TestTable_Render_RowsHaveFewerColumns(t *testing.T) {
	table := &Table{
		Headers: []string{"ID", "Name", "Status"},
		Rows: [][]string{
			{"1", "Alice"},
		},
	}

	output := table.Render()

	assert.Contains(t, output, "ID")
	assert.Contains(t, output, "Alice")
	lines := strings.Split(strings.TrimSpace(output), "\n")
	assert.Equal(t, 3, len(lines))
}
