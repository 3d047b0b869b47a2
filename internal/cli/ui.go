package cli

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var (
	colorYellow = lipgloss.Color("220") // warnings
	colorGray   = lipgloss.Color("245") // headers
	colorDim    = lipgloss.Color("240") // borders
)

// newTable returns a rounded-border table rendered for w. Colours are
// dropped when w is not a terminal.
func newTable(w io.Writer, headers ...string) *table.Table {
	r := lipgloss.NewRenderer(w)
	headerStyle := r.NewStyle().Foreground(colorGray).Bold(true).Padding(0, 1)
	cellStyle := r.NewStyle().Padding(0, 1)

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(r.NewStyle().Foreground(colorDim)).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
}

// warnStyle renders warning text for w.
func warnStyle(w io.Writer) lipgloss.Style {
	return lipgloss.NewRenderer(w).NewStyle().Foreground(colorYellow)
}
