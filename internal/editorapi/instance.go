package editorapi

import (
	"context"

	"github.com/gdamore/tcell/v2"
)

// PanelView is a renderable editing surface. The host owns screen real
// estate and forwards input; the panel draws itself into the region it is
// given.
type PanelView interface {
	// Title returns the text shown in the panel's tab or title bar.
	Title() string

	// Draw renders the panel into the given screen region.
	Draw(screen tcell.Screen, x, y, w, h int)

	// HandleKey processes a key event. Returns true if the event was
	// consumed.
	HandleKey(ev *tcell.EventKey) bool
}

// EditorInstance is the uniform host-facing handle for one open editor.
//
// Save and Reload may perform blocking I/O; scheduling them off a UI
// goroutine is the caller's responsibility. Failures surface as errors and
// leave the instance registered and usable.
type EditorInstance interface {
	// FilePath returns the resolved on-disk location backing the editor.
	// Immutable for the instance's lifetime.
	FilePath() string

	// Save persists the editor's current state to its backing location.
	Save(ctx context.Context) error

	// Reload discards unsaved in-memory state and re-reads from disk.
	Reload(ctx context.Context) error

	// IsDirty reports whether unsaved changes exist.
	IsDirty() bool

	// AsAny exposes the instance for downcasting to its concrete type.
	// Hosts must use a comma-ok type assertion; a mismatch yields false,
	// never a panic.
	AsAny() any
}
