package display

import (
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

var (
	colorBorder = lipgloss.Color("#00AA22")
	colorText   = lipgloss.Color("#00CC33")

	stylePanel = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Foreground(colorText).
			Padding(0, 1).
			Width(30)
)

// Terminal renders a bordered panel to a writer, redrawing it in place. Each
// Render erases the previous panel and draws the new one, so the writer
// always shows only the latest content.
type Terminal struct {
	mu        sync.Mutex
	w         io.Writer
	lastLines int
}

// NewTerminal creates a terminal display writing to w.
func NewTerminal(w io.Writer) *Terminal {
	return &Terminal{w: w}
}

// Render replaces the panel with text.
func (t *Terminal) Render(text string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	panel := stylePanel.Render(text)

	if t.lastLines > 0 {
		// Move back over the previous panel and erase it
		fmt.Fprintf(t.w, "\x1b[%dA\x1b[J", t.lastLines)
	}
	fmt.Fprintln(t.w, panel)

	t.lastLines = lipgloss.Height(panel)
}
