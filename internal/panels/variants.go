package panels

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/enumedit/internal/enumdef"
	"github.com/dshills/enumedit/internal/enumdoc"
)

// VariantsPanel lists the enum's variants and edits them.
type VariantsPanel struct {
	doc    *enumdoc.Document
	accent tcell.Color

	sel    int
	scroll int

	// editing state: "", "add", or "rename"
	editing string
	input   []rune
	status  string
}

// NewVariantsPanel creates the variants pane for doc.
func NewVariantsPanel(doc *enumdoc.Document, accent tcell.Color) *VariantsPanel {
	return &VariantsPanel{doc: doc, accent: accent}
}

// Name returns the pane title.
func (p *VariantsPanel) Name() string { return "Variants" }

// Selected returns the index of the selected variant, clamped to range.
func (p *VariantsPanel) Selected() int {
	p.clamp()
	return p.sel
}

func (p *VariantsPanel) clamp() {
	n := p.doc.VariantCount()
	if p.sel >= n {
		p.sel = n - 1
	}
	if p.sel < 0 {
		p.sel = 0
	}
}

// Draw renders the pane.
func (p *VariantsPanel) Draw(screen tcell.Screen, x, y, w, h int, focused bool) {
	drawFrame(screen, x, y, w, h, p.Name(), frameStyle(p.accent, focused))
	if w < 4 || h < 4 {
		return
	}
	p.clamp()

	inner := w - 4
	cx := x + 2
	rows := h - 2
	if p.status != "" || p.editing != "" {
		rows--
	}

	def := p.doc.Definition()

	// Keep the selection visible.
	if p.sel < p.scroll {
		p.scroll = p.sel
	}
	if p.sel >= p.scroll+rows {
		p.scroll = p.sel - rows + 1
	}

	for row := 0; row < rows; row++ {
		i := p.scroll + row
		if i >= len(def.Variants) {
			break
		}
		v := def.Variants[i]

		value := int64(i)
		if v.Value != nil {
			value = *v.Value
		}

		line := fmt.Sprintf("%-20s = %d", v.Name, value)
		if v.Doc != "" {
			line += "  " + v.Doc
		}

		style := textStyle
		if i == p.sel {
			style = tcell.StyleDefault.Foreground(p.accent).Bold(true)
			if focused {
				style = style.Reverse(true)
			}
		}
		drawText(screen, cx, y+1+row, inner, style, line)
	}

	if len(def.Variants) == 0 && p.editing == "" {
		drawText(screen, cx, y+1, inner, dimStyle, "(no variants - press 'a' to add)")
	}

	switch {
	case p.editing == "add":
		drawText(screen, cx, y+h-2, inner, textStyle.Underline(true), "add: "+string(p.input)+" ")
	case p.editing == "rename":
		drawText(screen, cx, y+h-2, inner, textStyle.Underline(true), "rename: "+string(p.input)+" ")
	case p.status != "":
		drawText(screen, cx, y+h-2, inner, errorStyle, p.status)
	}
}

// HandleKey processes list navigation and edits:
// j/k or arrows move, 'a' adds, 'd' deletes, 'r' renames, J/K reorder.
func (p *VariantsPanel) HandleKey(ev *tcell.EventKey) bool {
	if p.editing != "" {
		return p.handleEditKey(ev)
	}
	p.clamp()

	switch ev.Key() {
	case tcell.KeyUp:
		p.moveSel(-1)
		return true
	case tcell.KeyDown:
		p.moveSel(1)
		return true
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'k':
			p.moveSel(-1)
			return true
		case 'j':
			p.moveSel(1)
			return true
		case 'a':
			p.editing = "add"
			p.input = nil
			p.status = ""
			return true
		case 'd':
			if err := p.doc.RemoveVariant(p.sel); err != nil {
				p.status = err.Error()
			} else {
				p.status = ""
				p.clamp()
			}
			return true
		case 'r':
			if p.doc.VariantCount() == 0 {
				return true
			}
			def := p.doc.Definition()
			p.editing = "rename"
			p.input = []rune(def.Variants[p.sel].Name)
			p.status = ""
			return true
		case 'K':
			if p.sel > 0 {
				if err := p.doc.MoveVariant(p.sel, p.sel-1); err == nil {
					p.sel--
				}
			}
			return true
		case 'J':
			if p.sel < p.doc.VariantCount()-1 {
				if err := p.doc.MoveVariant(p.sel, p.sel+1); err == nil {
					p.sel++
				}
			}
			return true
		}
	}
	return false
}

func (p *VariantsPanel) moveSel(delta int) {
	p.sel += delta
	p.clamp()
}

func (p *VariantsPanel) handleEditKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape:
		p.editing = ""
		p.input = nil
		return true

	case tcell.KeyEnter:
		name := string(p.input)
		var err error
		switch p.editing {
		case "add":
			err = p.doc.AddVariant(enumdef.Variant{Name: name})
			if err == nil {
				p.sel = p.doc.VariantCount() - 1
			}
		case "rename":
			def := p.doc.Definition()
			if p.sel >= len(def.Variants) {
				// The variant vanished while the prompt was open (a
				// reload or delete shrank the list); nothing to rename.
				p.editing = ""
				p.input = nil
				p.status = ""
				p.clamp()
				return true
			}
			v := def.Variants[p.sel]
			v.Name = name
			err = p.doc.UpdateVariant(p.sel, v)
		}
		if err != nil {
			p.status = err.Error()
			return true
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
