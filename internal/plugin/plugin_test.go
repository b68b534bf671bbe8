package plugin

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/dshills/enumedit/internal/editor"
	"github.com/dshills/enumedit/internal/editorapi"
)

const testEnum = `{
	"name": "Color",
	"variants": [
		{"name": "Red"},
		{"name": "Green"},
		{"name": "Blue"}
	]
}`

// makeEnumFolder creates a folder-based enum document and returns the
// folder path, the shape a host hands to CreateEditor.
func makeEnumFolder(t *testing.T, name string) string {
	t.Helper()
	dir := filepath.Join(t.TempDir(), name)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "enum.json"), []byte(testEnum), 0o644); err != nil {
		t.Fatal(err)
	}
	return dir
}

func TestMetadata(t *testing.T) {
	p := New()

	meta := p.Metadata()
	if meta.ID != "com.dshills.enum-editor" {
		t.Errorf("Metadata().ID = %q", meta.ID)
	}

	fts := p.FileTypes()
	if len(fts) != 1 {
		t.Fatalf("FileTypes() returned %d entries, want 1", len(fts))
	}
	ft := fts[0]
	if ft.Structure.Kind != editorapi.StructureFolderBased {
		t.Error("enum file type should be folder-based")
	}
	if ft.Structure.MarkerFile != "enum.json" {
		t.Errorf("MarkerFile = %q, want enum.json", ft.Structure.MarkerFile)
	}
	if len(ft.DefaultContent) == 0 {
		t.Error("DefaultContent should not be empty")
	}

	eds := p.Editors()
	if len(eds) != 1 || eds[0].ID != EditorIDEnum {
		t.Errorf("Editors() = %+v", eds)
	}
}

func TestCreateEditorFolderPath(t *testing.T) {
	folder := makeEnumFolder(t, "Colors.enum")
	p := New()
	defer p.OnUnload()

	panel, inst, err := p.CreateEditor(context.Background(), EditorIDEnum, folder)
	if err != nil {
		t.Fatalf("CreateEditor() error = %v", err)
	}
	if panel == nil || inst == nil {
		t.Fatal("CreateEditor() returned nil handles")
	}

	want := filepath.Join(folder, "enum.json")
	if inst.FilePath() != want {
		t.Errorf("FilePath() = %q, want %q", inst.FilePath(), want)
	}
	if panel.Title() != "Colors.enum" {
		t.Errorf("Title() = %q, want %q", panel.Title(), "Colors.enum")
	}
	if p.OpenCount() != 1 {
		t.Errorf("OpenCount() = %d, want 1", p.OpenCount())
	}

	if err := inst.Save(context.Background()); err != nil {
		t.Errorf("Save() error = %v", err)
	}
}

func TestCreateEditorFilePath(t *testing.T) {
	folder := makeEnumFolder(t, "Colors.enum")
	marker := filepath.Join(folder, "enum.json")
	p := New()
	defer p.OnUnload()

	// A direct marker-file path passes through resolution unchanged.
	_, inst, err := p.CreateEditor(context.Background(), EditorIDEnum, marker)
	if err != nil {
		t.Fatalf("CreateEditor() error = %v", err)
	}
	if inst.FilePath() != marker {
		t.Errorf("FilePath() = %q, want %q", inst.FilePath(), marker)
	}
}

func TestCreateEditorUnknownKind(t *testing.T) {
	folder := makeEnumFolder(t, "Colors.enum")
	p := New()
	defer p.OnUnload()

	_, _, err := p.CreateEditor(context.Background(), "bogus-editor", folder)
	if !errors.Is(err, editorapi.ErrEditorNotFound) {
		t.Errorf("CreateEditor() error = %v, want ErrEditorNotFound", err)
	}
	if p.OpenCount() != 0 {
		t.Errorf("failed dispatch left %d registered instances", p.OpenCount())
	}
}

func TestCreateEditorUnsupportedFileType(t *testing.T) {
	p := New()
	defer p.OnUnload()

	path := filepath.Join(t.TempDir(), "notes.txt")
	if err := os.WriteFile(path, []byte("hello"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, _, err := p.CreateEditor(context.Background(), EditorIDEnum, path)
	if !errors.Is(err, editorapi.ErrUnsupportedFileType) {
		t.Errorf("CreateEditor() error = %v, want ErrUnsupportedFileType", err)
	}
	if p.OpenCount() != 0 {
		t.Errorf("rejected dispatch left %d registered instances", p.OpenCount())
	}
}

func TestCreateEditorConstructionFailure(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "Broken.enum")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "enum.json"), []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	p := New()
	defer p.OnUnload()

	_, _, err := p.CreateEditor(context.Background(), EditorIDEnum, dir)
	if err == nil {
		t.Fatal("CreateEditor() should fail on malformed content")
	}
	if p.OpenCount() != 0 {
		t.Errorf("failed construction left %d registered instances", p.OpenCount())
	}
}

func TestCreateEditorCancelledContext(t *testing.T) {
	folder := makeEnumFolder(t, "Colors.enum")
	p := New()
	defer p.OnUnload()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, _, err := p.CreateEditor(ctx, EditorIDEnum, folder); err == nil {
		t.Error("CreateEditor() should fail with a cancelled context")
	}
	if p.OpenCount() != 0 {
		t.Errorf("cancelled dispatch left %d registered instances", p.OpenCount())
	}
}

func TestInstanceDowncast(t *testing.T) {
	folder := makeEnumFolder(t, "Colors.enum")
	p := New()
	defer p.OnUnload()

	_, inst, err := p.CreateEditor(context.Background(), EditorIDEnum, folder)
	if err != nil {
		t.Fatal(err)
	}

	w, ok := inst.AsAny().(*editor.InstanceWrapper)
	if !ok {
		t.Fatal("AsAny() should downcast to *editor.InstanceWrapper")
	}
	if w.Editor() == nil {
		t.Error("downcast wrapper has no editor")
	}
}

func TestOnUnloadIdempotent(t *testing.T) {
	p := New()
	p.OnLoad()

	for _, name := range []string{"One.enum", "Two.enum", "Three.enum"} {
		folder := makeEnumFolder(t, name)
		if _, _, err := p.CreateEditor(context.Background(), EditorIDEnum, folder); err != nil {
			t.Fatal(err)
		}
	}

	if got := p.OnUnload(); got != 3 {
		t.Errorf("first OnUnload() = %d, want 3", got)
	}
	if got := p.OnUnload(); got != 0 {
		t.Errorf("second OnUnload() = %d, want 0", got)
	}
	if p.OpenCount() != 0 {
		t.Errorf("OpenCount() after unload = %d, want 0", p.OpenCount())
	}
}

func TestInstanceIDsNotReusedAcrossUnload(t *testing.T) {
	p := New()

	folder := makeEnumFolder(t, "First.enum")
	if _, _, err := p.CreateEditor(context.Background(), EditorIDEnum, folder); err != nil {
		t.Fatal(err)
	}
	before := p.Registry().IDs()

	p.OnUnload()

	folder = makeEnumFolder(t, "Second.enum")
	if _, _, err := p.CreateEditor(context.Background(), EditorIDEnum, folder); err != nil {
		t.Fatal(err)
	}
	defer p.OnUnload()

	after := p.Registry().IDs()
	if len(before) != 1 || len(after) != 1 {
		t.Fatalf("IDs() = %v then %v", before, after)
	}
	if after[0] <= before[0] {
		t.Errorf("id %d reused after unload (previous %d)", after[0], before[0])
	}
}

func TestCreateEditorWithWatching(t *testing.T) {
	folder := makeEnumFolder(t, "Watched.enum")
	p := New(WithFileWatching(true))
	defer p.OnUnload()

	_, inst, err := p.CreateEditor(context.Background(), EditorIDEnum, folder)
	if err != nil {
		t.Fatalf("CreateEditor() error = %v", err)
	}

	// Unload tears the watcher down with the instance.
	_ = inst
	if got := p.OnUnload(); got != 1 {
		t.Errorf("OnUnload() = %d, want 1", got)
	}
}
