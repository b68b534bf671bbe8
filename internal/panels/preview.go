package panels

import (
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/enumedit/internal/codegen"
	"github.com/dshills/enumedit/internal/enumdoc"
)

// CodePreviewPanel renders generated source code for the current definition.
type CodePreviewPanel struct {
	doc    *enumdoc.Document
	gen    *codegen.Registry
	accent tcell.Color

	targets   []string
	targetIdx int
	scroll    int
}

// NewCodePreviewPanel creates the preview pane for doc using the given
// generator registry.
func NewCodePreviewPanel(doc *enumdoc.Document, gen *codegen.Registry, accent tcell.Color) *CodePreviewPanel {
	return &CodePreviewPanel{
		doc:     doc,
		gen:     gen,
		accent:  accent,
		targets: gen.Targets(),
	}
}

// Name returns the pane title including the active target.
func (p *CodePreviewPanel) Name() string {
	return "Code Preview [" + p.Target() + "]"
}

// Target returns the active generation target.
func (p *CodePreviewPanel) Target() string {
	if len(p.targets) == 0 {
		return "none"
	}
	return p.targets[p.targetIdx]
}

// CycleTarget advances to the next generation target.
func (p *CodePreviewPanel) CycleTarget() {
	if len(p.targets) == 0 {
		return
	}
	p.targetIdx = (p.targetIdx + 1) % len(p.targets)
	p.scroll = 0
}

// Draw renders the pane.
func (p *CodePreviewPanel) Draw(screen tcell.Screen, x, y, w, h int, focused bool) {
	drawFrame(screen, x, y, w, h, p.Name(), frameStyle(p.accent, focused))
	if w < 4 || h < 4 || len(p.targets) == 0 {
		return
	}

	inner := w - 4
	rows := h - 2

	def := p.doc.Definition()
	code, err := p.gen.Generate(p.Target(), def)
	if err != nil {
		drawText(screen, x+2, y+1, inner, errorStyle, err.Error())
		return
	}

	lines := strings.Split(strings.TrimRight(code, "\n"), "\n")
	if p.scroll > len(lines)-1 {
		p.scroll = len(lines) - 1
	}
	if p.scroll < 0 {
		p.scroll = 0
	}

	for row := 0; row < rows; row++ {
		i := p.scroll + row
		if i >= len(lines) {
			break
		}
		// Tabs render poorly cell-by-cell; expand them.
		line := strings.ReplaceAll(lines[i], "\t", "    ")
		drawText(screen, x+2, y+1+row, inner, textStyle, line)
	}
}

// HandleKey processes 't' to cycle the target and arrows to scroll.
func (p *CodePreviewPanel) HandleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyUp:
		if p.scroll > 0 {
			p.scroll--
		}
		return true
	case tcell.KeyDown:
		p.scroll++
		return true
	case tcell.KeyRune:
		switch ev.Rune() {
		case 't':
			p.CycleTarget()
			return true
		case 'k':
			if p.scroll > 0 {
				p.scroll--
			}
			return true
		case 'j':
			p.scroll++
			return true
		}
	}
	return false
}
