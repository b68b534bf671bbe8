package editor

import (
	"context"
)

// InstanceWrapper adapts an EnumEditor to the uniform editorapi contract so
// the host never depends on the concrete editor type.
type InstanceWrapper struct {
	// path is the resolved backing location. Immutable after construction.
	path string

	editor *EnumEditor
}

// NewInstanceWrapper wraps an editor for the host.
func NewInstanceWrapper(e *EnumEditor) *InstanceWrapper {
	return &InstanceWrapper{
		path:   e.Path(),
		editor: e,
	}
}

// FilePath returns the resolved on-disk location backing the editor.
func (w *InstanceWrapper) FilePath() string {
	return w.path
}

// Save forwards to the editor's save behavior. Persistence failures
// propagate; the instance remains registered and usable.
func (w *InstanceWrapper) Save(ctx context.Context) error {
	return w.editor.PluginSave(ctx)
}

// Reload forwards to the editor's reload behavior, discarding unsaved state.
func (w *InstanceWrapper) Reload(ctx context.Context) error {
	return w.editor.PluginReload(ctx)
}

// IsDirty reports whether the underlying document has unsaved changes.
func (w *InstanceWrapper) IsDirty() bool {
	return w.editor.Document().IsDirty()
}

// AsAny exposes the wrapper for downcasting. Hosts use a comma-ok type
// assertion to *InstanceWrapper and reach the editor through Editor.
func (w *InstanceWrapper) AsAny() any {
	return w
}

// Editor returns the concrete editor behind the wrapper.
func (w *InstanceWrapper) Editor() *EnumEditor {
	return w.editor
}
