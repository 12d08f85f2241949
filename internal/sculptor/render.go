package sculptor

import (
	"bufio"
	"github.com/charmbracelet/lipgloss"
	"io"
	"strconv"
)

var (
	dateColor  = lipgloss.Color("#66CC80")
	valueColor = lipgloss.Color("#99CCFF")
)

// Render prints the visible days to w, each date followed by its entries as `key: "value"` lines.
//
// Colors are only used if w is a terminal supporting them.
func (m *Manager) Render(w io.Writer) error {
	renderer := lipgloss.NewRenderer(w)
	dateStyle := renderer.NewStyle().Bold(true).Foreground(dateColor)
	keyStyle := renderer.NewStyle().PaddingLeft(4)
	valueStyle := renderer.NewStyle().Foreground(valueColor)

	bw := bufio.NewWriter(w)

	visible := m.Visible()
	if len(visible) == 0 {
		_, _ = bw.WriteString("No matching records.\n")
		return bw.Flush()
	}

	for i, day := range visible {
		if i > 0 {
			_, _ = bw.WriteString("\n")
		}

		_, _ = bw.WriteString(dateStyle.Render(day.DateString) + "\n")
		for _, e := range day.Entries {
			_, _ = bw.WriteString(keyStyle.Render(e.Key+":") + " " + valueStyle.Render(strconv.Quote(e.Value)) + "\n")
		}
	}

	return bw.Flush()
}
