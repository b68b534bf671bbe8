package panels

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/enumedit/internal/enumdoc"
)

// PropertiesPanel shows and edits the enum's top-level properties.
type PropertiesPanel struct {
	doc    *enumdoc.Document
	accent tcell.Color

	// editing state: "", "name", or "description"
	editing string
	input   []rune
	status  string

	// external is set when the backing file changed outside the editor.
	external bool
}

// NewPropertiesPanel creates the properties pane for doc.
func NewPropertiesPanel(doc *enumdoc.Document, accent tcell.Color) *PropertiesPanel {
	return &PropertiesPanel{doc: doc, accent: accent}
}

// Name returns the pane title.
func (p *PropertiesPanel) Name() string { return "Properties" }

// SetExternal flags or clears the external-change badge.
func (p *PropertiesPanel) SetExternal(external bool) {
	p.external = external
}

// Draw renders the pane.
func (p *PropertiesPanel) Draw(screen tcell.Screen, x, y, w, h int, focused bool) {
	drawFrame(screen, x, y, w, h, p.Name(), frameStyle(p.accent, focused))
	if w < 4 || h < 4 {
		return
	}

	inner := w - 4
	cx, cy := x+2, y+1

	def := p.doc.Definition()

	drawText(screen, cx, cy, inner, dimStyle, "Name")
	cy++
	if p.editing == "name" {
		drawText(screen, cx, cy, inner, textStyle.Underline(true), string(p.input)+" ")
	} else {
		drawText(screen, cx, cy, inner, textStyle.Bold(true), def.Name)
	}
	cy += 2

	drawText(screen, cx, cy, inner, dimStyle, "Description")
	cy++
	if p.editing == "description" {
		drawText(screen, cx, cy, inner, textStyle.Underline(true), string(p.input)+" ")
	} else if def.Description != "" {
		drawText(screen, cx, cy, inner, textStyle, def.Description)
	} else {
		drawText(screen, cx, cy, inner, dimStyle, "(none)")
	}
	cy += 2

	drawText(screen, cx, cy, inner, dimStyle, "Path")
	cy++
	drawText(screen, cx, cy, inner, textStyle, p.doc.Path())
	cy += 2

	drawText(screen, cx, cy, inner, dimStyle, "Modified")
	cy++
	drawText(screen, cx, cy, inner, textStyle, p.doc.ModifiedAt().Format("2006-01-02 15:04:05"))
	cy += 2

	drawText(screen, cx, cy, inner, textStyle, fmt.Sprintf("Variants: %d", len(def.Variants)))
	cy++

	if p.doc.IsDirty() {
		drawText(screen, cx, cy, inner, tcell.StyleDefault.Foreground(p.accent).Bold(true), "● modified")
		cy++
	}
	if p.external {
		drawText(screen, cx, cy, inner, errorStyle, "! changed on disk")
		cy++
	}

	if p.status != "" && cy < y+h-1 {
		drawText(screen, cx, y+h-2, inner, errorStyle, p.status)
	}
}

// HandleKey processes panel keys: 'e' edits the name, 'i' the description.
func (p *PropertiesPanel) HandleKey(ev *tcell.EventKey) bool {
	if p.editing != "" {
		return p.handleEditKey(ev)
	}

	switch {
	case ev.Key() == tcell.KeyRune && ev.Rune() == 'e':
		p.editing = "name"
		p.input = []rune(p.doc.Name())
		p.status = ""
		return true
	case ev.Key() == tcell.KeyRune && ev.Rune() == 'i':
		p.editing = "description"
		p.input = []rune(p.doc.Definition().Description)
		p.status = ""
		return true
	}
	return false
}

func (p *PropertiesPanel) handleEditKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape:
		p.editing = ""
		p.input = nil
		return true

	case tcell.KeyEnter:
		text := string(p.input)
		switch p.editing {
		case "name":
			if err := p.doc.SetName(text); err != nil {
				p.status = err.Error()
				return true
			}
		case "description":
			p.doc.SetDescription(text)
		}
		p.editing = ""
		p.input = nil
		p.status = ""
		return true

	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if len(p.input) > 0 {
			p.input = p.input[:len(p.input)-1]
		}
		return true

	case tcell.KeyRune:
		p.input = append(p.input, ev.Rune())
		return true
	}
	return false
}
