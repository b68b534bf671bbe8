package editorapi

import "errors"

// Editor plugin errors.
var (
	// ErrEditorNotFound is returned when a requested editor kind is not
	// provided by the plugin. Wrapped errors carry the requested EditorID.
	ErrEditorNotFound = errors.New("editor not found")

	// ErrUnsupportedFileType is returned when a document's file type does
	// not match any editor the plugin provides.
	ErrUnsupportedFileType = errors.New("unsupported file type")
)
