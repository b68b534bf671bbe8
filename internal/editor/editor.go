// Package editor implements the multi-panel enum editing surface and the
// uniform instance wrapper the host receives for it.
package editor

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/enumedit/internal/codegen"
	"github.com/dshills/enumedit/internal/editorapi"
	"github.com/dshills/enumedit/internal/enumdoc"
	"github.com/dshills/enumedit/internal/logging"
	"github.com/dshills/enumedit/internal/panels"
	"github.com/dshills/enumedit/internal/watch"
)

// EnumEditor is the editing surface for one open enum document: properties,
// variants, and code preview side by side. It implements editorapi.PanelView.
//
// Draw and HandleKey are driven from the host's UI goroutine; the external
// change flag is the only state touched from the watcher goroutine.
type EnumEditor struct {
	doc  *enumdoc.Document
	path string

	props    *panels.PropertiesPanel
	variants *panels.VariantsPanel
	preview  *panels.CodePreviewPanel
	panes    []panels.Panel
	focus    int

	logger editorapi.Logger

	watcher  *watch.FileWatcher
	external atomic.Bool
}

// Option configures an EnumEditor.
type Option func(*config)

type config struct {
	logger     editorapi.Logger
	accent     string
	generators *codegen.Registry
}

// WithLogger sets the diagnostic logger.
func WithLogger(l editorapi.Logger) Option {
	return func(c *config) {
		c.logger = l
	}
}

// WithAccentColor sets the hex accent color from the file type descriptor.
func WithAccentColor(hex string) Option {
	return func(c *config) {
		c.accent = hex
	}
}

// WithGenerators sets the code generator registry for the preview pane.
func WithGenerators(r *codegen.Registry) Option {
	return func(c *config) {
		c.generators = r
	}
}

// New opens the enum document at the resolved path and builds its surface.
// Construction failures (unreadable file, malformed content) propagate;
// nothing is left behind on failure.
func New(path string, opts ...Option) (*EnumEditor, error) {
	cfg := config{
		logger: logging.NullLogger,
		accent: "#673AB7",
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.generators == nil {
		cfg.generators = codegen.NewRegistry()
	}

	doc, err := enumdoc.Open(path)
	if err != nil {
		return nil, err
	}

	accent := panels.AccentColor(cfg.accent)
	e := &EnumEditor{
		doc:      doc,
		path:     path,
		props:    panels.NewPropertiesPanel(doc, accent),
		variants: panels.NewVariantsPanel(doc, accent),
		preview:  panels.NewCodePreviewPanel(doc, cfg.generators, accent),
		logger:   cfg.logger,
	}
	e.panes = []panels.Panel{e.props, e.variants, e.preview}
	return e, nil
}

// Document returns the open document backing the editor.
func (e *EnumEditor) Document() *enumdoc.Document {
	return e.doc
}

// Path returns the resolved backing location.
func (e *EnumEditor) Path() string {
	return e.path
}

// Title returns the document's display name: the folder name for
// folder-based documents, else the file name.
func (e *EnumEditor) Title() string {
	base := filepath.Base(e.path)
	if base == "enum.json" {
		return filepath.Base(filepath.Dir(e.path))
	}
	return base
}

// Draw renders the three panes across the given region.
func (e *EnumEditor) Draw(screen tcell.Screen, x, y, w, h int) {
	e.props.SetExternal(e.external.Load())

	propsW := w * 3 / 10
	variantsW := w * 35 / 100
	previewW := w - propsW - variantsW

	e.props.Draw(screen, x, y, propsW, h, e.focus == 0)
	e.variants.Draw(screen, x+propsW, y, variantsW, h, e.focus == 1)
	e.preview.Draw(screen, x+propsW+variantsW, y, previewW, h, e.focus == 2)
}

// HandleKey routes keys: Tab cycles pane focus, everything else goes to the
// focused pane.
func (e *EnumEditor) HandleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyTab:
		e.focus = (e.focus + 1) % len(e.panes)
		return true
	case tcell.KeyBacktab:
		e.focus = (e.focus + len(e.panes) - 1) % len(e.panes)
		return true
	}
	return e.panes[e.focus].HandleKey(ev)
}

// PluginSave persists the document and clears the external-change flag.
func (e *EnumEditor) PluginSave(ctx context.Context) error {
	if err := e.doc.Save(ctx); err != nil {
		e.logger.Error("save failed for %q: %v", e.path, err)
		return err
	}
	e.external.Store(false)
	e.logger.Info("saved %q", e.path)
	return nil
}

// PluginReload re-reads the document from disk, discarding unsaved changes,
// and clears the external-change flag.
func (e *EnumEditor) PluginReload(ctx context.Context) error {
	if err := e.doc.Reload(ctx); err != nil {
		e.logger.Error("reload failed for %q: %v", e.path, err)
		return err
	}
	e.external.Store(false)
	e.logger.Info("reloaded %q", e.path)
	return nil
}

// HasExternalChanges reports whether the backing file changed on disk
// outside this editor since the last open, save, or reload.
func (e *EnumEditor) HasExternalChanges() bool {
	return e.external.Load()
}

// StartWatching begins external-change detection on the backing file.
// Safe to skip for hosts that poll; Close stops the watcher either way.
func (e *EnumEditor) StartWatching() error {
	if e.watcher != nil {
		return nil
	}

	w, err := watch.New(e.path, watch.DefaultDebounce)
	if err != nil {
		return err
	}
	e.watcher = w

	go func() {
		for range w.Events() {
			// A save from this editor also touches the file; only flag
			// modification times we did not record ourselves.
			fi, err := os.Stat(e.path)
			if err != nil || e.doc.HasExternalChanges(fi.ModTime()) {
				e.external.Store(true)
			}
		}
	}()
	return nil
}

// Close stops the file watcher, if any. The document itself needs no
// teardown; it is released with the editor.
func (e *EnumEditor) Close() {
	if e.watcher != nil {
		e.watcher.Close()
		e.watcher = nil
	}
}
