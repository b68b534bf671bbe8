// Package panels implements the three editing surfaces of the enum editor:
// properties, variants, and code preview. Each panel draws itself into the
// screen region it is given and handles the keys for its own interactions.
package panels

import (
	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
)

// Panel is one pane of the multi-panel editor surface.
type Panel interface {
	// Name returns the pane's title text.
	Name() string

	// Draw renders the pane into the given region.
	Draw(screen tcell.Screen, x, y, w, h int, focused bool)

	// HandleKey processes a key event. Returns true if consumed.
	HandleKey(ev *tcell.EventKey) bool
}

// AccentColor parses a hex accent color (e.g. "#673AB7") into a tcell color.
// Unparseable input falls back to purple, the enum file type's default.
func AccentColor(hex string) tcell.Color {
	c, err := colorful.Hex(hex)
	if err != nil {
		return tcell.NewRGBColor(0x67, 0x3A, 0xB7)
	}
	r, g, b := c.RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

// drawText writes text at (x, y), clipped to maxW columns.
// Returns the number of columns written.
func drawText(screen tcell.Screen, x, y, maxW int, style tcell.Style, text string) int {
	col := 0
	for _, r := range text {
		if col >= maxW {
			break
		}
		screen.SetContent(x+col, y, r, nil, style)
		col++
	}
	return col
}

// drawFrame draws a single-line border with a title in the top edge.
func drawFrame(screen tcell.Screen, x, y, w, h int, title string, style tcell.Style) {
	if w < 2 || h < 2 {
		return
	}

	for cx := x + 1; cx < x+w-1; cx++ {
		screen.SetContent(cx, y, tcell.RuneHLine, nil, style)
		screen.SetContent(cx, y+h-1, tcell.RuneHLine, nil, style)
	}
	for cy := y + 1; cy < y+h-1; cy++ {
		screen.SetContent(x, cy, tcell.RuneVLine, nil, style)
		screen.SetContent(x+w-1, cy, tcell.RuneVLine, nil, style)
	}
	screen.SetContent(x, y, tcell.RuneULCorner, nil, style)
	screen.SetContent(x+w-1, y, tcell.RuneURCorner, nil, style)
	screen.SetContent(x, y+h-1, tcell.RuneLLCorner, nil, style)
	screen.SetContent(x+w-1, y+h-1, tcell.RuneLRCorner, nil, style)

	if title != "" && w > 4 {
		drawText(screen, x+2, y, w-4, style, " "+title+" ")
	}
}

// frameStyle returns the border style for a pane, highlighted when focused.
func frameStyle(accent tcell.Color, focused bool) tcell.Style {
	if focused {
		return tcell.StyleDefault.Foreground(accent).Bold(true)
	}
	return tcell.StyleDefault.Foreground(tcell.ColorGray)
}

// textStyle is the default content style.
var textStyle = tcell.StyleDefault

// dimStyle renders secondary information.
var dimStyle = tcell.StyleDefault.Foreground(tcell.ColorGray)

// errorStyle renders failure messages.
var errorStyle = tcell.StyleDefault.Foreground(tcell.ColorRed)
