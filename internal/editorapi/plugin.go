package editorapi

import "context"

// PluginID uniquely identifies a plugin (e.g. "com.dshills.enum-editor").
type PluginID string

// EditorID identifies an editor kind a plugin provides (e.g. "enum-editor").
type EditorID string

// FileTypeID identifies a file type a plugin registers (e.g. "enum").
type FileTypeID string

// PluginMetadata describes a plugin to the host.
type PluginMetadata struct {
	ID          PluginID
	Name        string
	Version     string
	Author      string
	Description string
}

// EditorMetadata describes one editor kind a plugin provides and the file
// types it can open.
type EditorMetadata struct {
	ID                 EditorID
	DisplayName        string
	SupportedFileTypes []FileTypeID
}

// Logger is the diagnostic sink the host hands to a plugin. Implementations
// must be safe for concurrent use.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// EditorPlugin is the host-facing surface of an editor plugin.
//
// CreateEditor returns a shared panel handle for display and an exclusively
// owned instance handle for save/reload/unload. The plugin retains its own
// reference to the panel for bookkeeping until OnUnload drains it.
type EditorPlugin interface {
	Metadata() PluginMetadata
	FileTypes() []FileTypeDefinition
	Editors() []EditorMetadata

	CreateEditor(ctx context.Context, editorID EditorID, path string) (PanelView, EditorInstance, error)

	OnLoad()
	OnUnload() int
}
