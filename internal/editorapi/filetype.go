package editorapi

import (
	"encoding/json"
	"path/filepath"
)

// StructureKind describes how a file type is laid out on disk.
type StructureKind int

const (
	// StructureSingleFile - the document is one regular file.
	StructureSingleFile StructureKind = iota

	// StructureFolderBased - the document is a folder containing a marker
	// file that holds its canonical content.
	StructureFolderBased
)

// String returns a string representation of the structure kind.
func (k StructureKind) String() string {
	switch k {
	case StructureSingleFile:
		return "single-file"
	case StructureFolderBased:
		return "folder-based"
	default:
		return "unknown"
	}
}

// FileStructure declares the on-disk shape of a file type.
type FileStructure struct {
	Kind StructureKind

	// MarkerFile is the file inside a folder-based document that holds its
	// canonical content (e.g. "enum.json"). Empty for single-file types.
	MarkerFile string
}

// FileTypeDefinition is the static descriptor of a file type a plugin
// registers with the host. The instance core consumes only Structure (path
// resolution) and ID (editor-to-document matching); the rest is presentation
// metadata for the host's file drawer.
type FileTypeDefinition struct {
	ID          FileTypeID
	Extension   string
	DisplayName string
	Icon        string
	Color       string // hex accent color, e.g. "#673AB7"
	Structure   FileStructure

	// DefaultContent is written to new documents of this type.
	DefaultContent json.RawMessage

	Categories []string
}

// ResolvePath maps a requested document path to the concrete readable
// location. For folder-based types an existing directory resolves to the
// marker file inside it; in every other case the path is returned unchanged.
// The rule is deterministic and pure; callers supply isDir from a stat.
func (ft FileTypeDefinition) ResolvePath(path string, isDir bool) string {
	if ft.Structure.Kind == StructureFolderBased && isDir && ft.Structure.MarkerFile != "" {
		return filepath.Join(path, ft.Structure.MarkerFile)
	}
	return path
}
