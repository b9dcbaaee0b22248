package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// Row is one line of a two-column table.
type Row struct {
	Key   string
	Value string
}

// Table renders rows as an aligned key/value table. Keys are right-aligned
// and values are cut to width cells; width <= 0 disables cutting.
func Table(rows []Row, width int, styled bool) string {
	keyWidth := 0
	for _, r := range rows {
		keyWidth = max(keyWidth, runewidth.StringWidth(r.Key))
	}
	keyStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))

	var b strings.Builder
	for _, r := range rows {
		key := strings.Repeat(" ", keyWidth-runewidth.StringWidth(r.Key)) + r.Key
		value := r.Value
		if width > 0 {
			value = truncate(value, width-keyWidth-2)
		}
		if styled {
			key = keyStyle.Render(key)
		}
		b.WriteString(key)
		b.WriteString("  ")
		b.WriteString(value)
		b.WriteString("\n")
	}
	return b.String()
}
