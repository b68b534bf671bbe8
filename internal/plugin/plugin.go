// Package plugin implements the enum editor plugin: file type and editor
// registration, editor instance creation, and plugin lifecycle.
package plugin

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dshills/enumedit/internal/codegen"
	"github.com/dshills/enumedit/internal/editor"
	"github.com/dshills/enumedit/internal/editorapi"
	"github.com/dshills/enumedit/internal/enumdef"
	"github.com/dshills/enumedit/internal/logging"
	"github.com/dshills/enumedit/internal/registry"
)

// Identity of the editor and file type this plugin provides.
const (
	EditorIDEnum   editorapi.EditorID   = "enum-editor"
	FileTypeIDEnum editorapi.FileTypeID = "enum"

	// markerFile holds the canonical content of a folder-based .enum
	// document.
	markerFile = "enum.json"
)

// Plugin is the enum editor plugin. It owns the instance registry for every
// editor it creates and drains it at unload. Safe for concurrent use.
type Plugin struct {
	registry   *registry.Registry
	generators *codegen.Registry
	logger     editorapi.Logger
	watchFiles bool
}

// Option configures a Plugin.
type Option func(*Plugin)

// WithLogger sets the diagnostic logger.
func WithLogger(l editorapi.Logger) Option {
	return func(p *Plugin) {
		p.logger = l
	}
}

// WithGenerators sets the code generator registry shared by all editors.
func WithGenerators(r *codegen.Registry) Option {
	return func(p *Plugin) {
		p.generators = r
	}
}

// WithFileWatching enables external-change detection on opened documents.
func WithFileWatching(enabled bool) Option {
	return func(p *Plugin) {
		p.watchFiles = enabled
	}
}

// New creates the plugin. The registry lives for the plugin's loaded
// lifetime and is emptied, not replaced, at unload.
func New(opts ...Option) *Plugin {
	p := &Plugin{
		registry:   registry.New(),
		generators: codegen.NewRegistry(),
		logger:     logging.NullLogger,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Metadata describes the plugin to the host.
func (p *Plugin) Metadata() editorapi.PluginMetadata {
	return editorapi.PluginMetadata{
		ID:          "com.dshills.enum-editor",
		Name:        "Enum Editor",
		Version:     "0.1.0",
		Author:      "dshills",
		Description: "Professional multi-panel editor for creating enum definitions",
	}
}

// FileTypes returns the file types this plugin registers.
func (p *Plugin) FileTypes() []editorapi.FileTypeDefinition {
	return []editorapi.FileTypeDefinition{
		{
			ID:          FileTypeIDEnum,
			Extension:   "enum",
			DisplayName: "Enum Definition",
			Icon:        "list",
			Color:       "#673AB7",
			Structure: editorapi.FileStructure{
				Kind:       editorapi.StructureFolderBased,
				MarkerFile: markerFile,
			},
			DefaultContent: enumdef.DefaultContent(),
			Categories:     []string{"Types"},
		},
	}
}

// Editors returns the editor kinds this plugin provides.
func (p *Plugin) Editors() []editorapi.EditorMetadata {
	return []editorapi.EditorMetadata{
		{
			ID:                 EditorIDEnum,
			DisplayName:        "Enum Editor",
			SupportedFileTypes: []editorapi.FileTypeID{FileTypeIDEnum},
		},
	}
}

// CreateEditor opens an editor of the requested kind for path.
//
// The request moves through kind and file-type checks, path resolution,
// construction, and registration; a failure at any step before registration
// leaves no state behind. On success the host receives a shared panel handle and an
// exclusively owned instance handle, and the registry retains its own
// record of both for bookkeeping until unload.
func (p *Plugin) CreateEditor(ctx context.Context, editorID editorapi.EditorID, path string) (editorapi.PanelView, editorapi.EditorInstance, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	if editorID != EditorIDEnum {
		return nil, nil, fmt.Errorf("editor %q: %w", editorID, editorapi.ErrEditorNotFound)
	}

	ft := p.FileTypes()[0]
	if !matchesFileType(ft, path) {
		return nil, nil, fmt.Errorf("path %q: %w", path, editorapi.ErrUnsupportedFileType)
	}
	resolved := resolveDocumentPath(ft, path)

	ed, err := editor.New(resolved,
		editor.WithLogger(p.logger),
		editor.WithAccentColor(ft.Color),
		editor.WithGenerators(p.generators),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("create editor for %q: %w", path, err)
	}

	if p.watchFiles {
		if err := ed.StartWatching(); err != nil {
			// Watching is an enhancement; the editor works without it.
			p.logger.Warn("file watching unavailable for %q: %v", resolved, err)
		}
	}

	wrapper := editor.NewInstanceWrapper(ed)

	// Registration is the last step: the id is claimed and the record
	// inserted under one brief lock, never held across construction.
	id := p.registry.AllocateID()
	p.registry.Register(id, registry.Record{Panel: ed, Instance: wrapper})

	p.logger.Info("created enum editor instance %d for %q", id, resolved)
	return ed, wrapper, nil
}

// OpenCount returns the number of live editor instances.
func (p *Plugin) OpenCount() int {
	return p.registry.Count()
}

// Registry exposes the instance registry for host bookkeeping.
func (p *Plugin) Registry() *registry.Registry {
	return p.registry
}

// OnLoad performs load-time diagnostics. It establishes no state beyond
// what New already built.
func (p *Plugin) OnLoad() {
	p.logger.Info("enum editor plugin loaded")
}

// OnUnload tears down every live instance and empties the registry,
// returning the number of instances removed. Unload is best-effort and
// unconditional: teardown problems are logged, never surfaced, and calling
// OnUnload again is safe and reports zero.
func (p *Plugin) OnUnload() int {
	for _, id := range p.registry.IDs() {
		rec, ok := p.registry.Get(id)
		if !ok {
			continue
		}
		if w, ok := rec.Instance.AsAny().(*editor.InstanceWrapper); ok {
			w.Editor().Close()
		}
	}

	count := p.registry.Clear()
	p.logger.Info("enum editor plugin unloaded (cleaned up %d editors)", count)
	return count
}

// matchesFileType reports whether path names a document of the given file
// type: a folder or file carrying its extension, or the marker file itself.
func matchesFileType(ft editorapi.FileTypeDefinition, path string) bool {
	base := filepath.Base(path)
	if ft.Structure.Kind == editorapi.StructureFolderBased && base == ft.Structure.MarkerFile {
		return true
	}
	return strings.TrimPrefix(filepath.Ext(base), ".") == ft.Extension
}

// resolveDocumentPath maps the requested path to the concrete readable
// location: an existing directory resolves to the marker file inside it.
func resolveDocumentPath(ft editorapi.FileTypeDefinition, path string) string {
	fi, err := os.Stat(path)
	isDir := err == nil && fi.IsDir()
	return ft.ResolvePath(path, isDir)
}
