package display

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// Screen renders into a Fyne window, standing in for the small OLED the
// original bench setup used. The label is replaced wholesale on every
// Render.
type Screen struct {
	label *widget.Label
}

// NewScreen attaches a screen to the given window and returns it.
func NewScreen(win fyne.Window) *Screen {
	label := widget.NewLabel("")
	label.Wrapping = fyne.TextWrapWord

	win.SetContent(container.NewPadded(label))

	return &Screen{label: label}
}

// Render replaces the screen content with text. Safe to call from any
// goroutine; the update is marshalled onto the UI thread.
func (s *Screen) Render(text string) {
	fyne.Do(func() {
		s.label.SetText(text)
	})
}
