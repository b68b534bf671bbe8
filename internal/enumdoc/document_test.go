package enumdoc

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dshills/enumedit/internal/enumdef"
)

func writeEnumFile(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "enum.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

const testEnum = `{
	"name": "Color",
	"variants": [
		{"name": "Red"},
		{"name": "Green"},
		{"name": "Blue"}
	]
}`

func TestOpen(t *testing.T) {
	path := writeEnumFile(t, t.TempDir(), testEnum)

	doc, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}

	if doc.Path() != path {
		t.Errorf("Path() = %q, want %q", doc.Path(), path)
	}
	if doc.Name() != "Color" {
		t.Errorf("Name() = %q, want %q", doc.Name(), "Color")
	}
	if doc.VariantCount() != 3 {
		t.Errorf("VariantCount() = %d, want 3", doc.VariantCount())
	}
	if doc.IsDirty() {
		t.Error("freshly opened document should not be dirty")
	}
}

func TestOpenMissing(t *testing.T) {
	if _, err := Open(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Error("Open() should fail for a missing file")
	}
}

func TestOpenMalformed(t *testing.T) {
	path := writeEnumFile(t, t.TempDir(), `{broken`)
	if _, err := Open(path); err == nil {
		t.Error("Open() should fail for malformed content")
	}
}

func TestCreate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "New.enum", "enum.json")

	doc, err := Create(path)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if doc.Name() != "NewEnum" {
		t.Errorf("Name() = %q, want %q", doc.Name(), "NewEnum")
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("backing file not written: %v", err)
	}
}

func TestMutationsMarkDirty(t *testing.T) {
	path := writeEnumFile(t, t.TempDir(), testEnum)
	doc, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}

	if err := doc.AddVariant(enumdef.Variant{Name: "Alpha"}); err != nil {
		t.Fatalf("AddVariant() error = %v", err)
	}
	if !doc.IsDirty() {
		t.Error("document should be dirty after AddVariant")
	}
	if doc.VariantCount() != 4 {
		t.Errorf("VariantCount() = %d, want 4", doc.VariantCount())
	}
}

func TestAddVariantRejectsDuplicate(t *testing.T) {
	path := writeEnumFile(t, t.TempDir(), testEnum)
	doc, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}

	if err := doc.AddVariant(enumdef.Variant{Name: "Red"}); !errors.Is(err, enumdef.ErrDuplicateVariant) {
		t.Errorf("AddVariant(Red) error = %v, want ErrDuplicateVariant", err)
	}
	if doc.IsDirty() {
		t.Error("rejected mutation must not dirty the document")
	}
	if doc.VariantCount() != 3 {
		t.Errorf("VariantCount() = %d, want 3", doc.VariantCount())
	}
}

func TestSetNameValidates(t *testing.T) {
	path := writeEnumFile(t, t.TempDir(), testEnum)
	doc, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}

	if err := doc.SetName("not an ident"); !errors.Is(err, enumdef.ErrInvalidName) {
		t.Errorf("SetName error = %v, want ErrInvalidName", err)
	}
	if doc.Name() != "Color" {
		t.Errorf("rejected rename changed name to %q", doc.Name())
	}

	if err := doc.SetName("Palette"); err != nil {
		t.Fatalf("SetName() error = %v", err)
	}
	if doc.Name() != "Palette" {
		t.Errorf("Name() = %q, want %q", doc.Name(), "Palette")
	}
}

func TestRemoveAndMoveVariant(t *testing.T) {
	path := writeEnumFile(t, t.TempDir(), testEnum)
	doc, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}

	if err := doc.MoveVariant(0, 2); err != nil {
		t.Fatalf("MoveVariant() error = %v", err)
	}
	def := doc.Definition()
	want := []string{"Green", "Blue", "Red"}
	for i, name := range want {
		if def.Variants[i].Name != name {
			t.Errorf("Variants[%d] = %q, want %q", i, def.Variants[i].Name, name)
		}
	}

	if err := doc.RemoveVariant(1); err != nil {
		t.Fatalf("RemoveVariant() error = %v", err)
	}
	if doc.VariantCount() != 2 {
		t.Errorf("VariantCount() = %d, want 2", doc.VariantCount())
	}

	if err := doc.RemoveVariant(10); !errors.Is(err, ErrNoVariantSelected) {
		t.Errorf("RemoveVariant(10) error = %v, want ErrNoVariantSelected", err)
	}
}

func TestTimestamps(t *testing.T) {
	path := writeEnumFile(t, t.TempDir(), testEnum)
	doc, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}

	opened := doc.OpenedAt()
	if opened.IsZero() {
		t.Error("OpenedAt() should be set on open")
	}
	if !doc.ModifiedAt().Equal(opened) {
		t.Error("ModifiedAt() should equal OpenedAt() before any mutation")
	}

	time.Sleep(time.Millisecond)
	if err := doc.AddVariant(enumdef.Variant{Name: "Alpha"}); err != nil {
		t.Fatal(err)
	}

	if !doc.ModifiedAt().After(opened) {
		t.Error("ModifiedAt() should advance on mutation")
	}
	if !doc.OpenedAt().Equal(opened) {
		t.Error("OpenedAt() should not change after open")
	}
}

func TestSaveClearsDirty(t *testing.T) {
	path := writeEnumFile(t, t.TempDir(), testEnum)
	doc, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}

	if err := doc.AddVariant(enumdef.Variant{Name: "Alpha"}); err != nil {
		t.Fatal(err)
	}
	if err := doc.Save(context.Background()); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if doc.IsDirty() {
		t.Error("document should be clean after save")
	}

	// The write must be visible to a fresh open.
	reopened, err := Open(path)
	if err != nil {
		t.Fatalf("Open() after save error = %v", err)
	}
	if reopened.VariantCount() != 4 {
		t.Errorf("saved VariantCount = %d, want 4", reopened.VariantCount())
	}
}

func TestReloadDiscardsChanges(t *testing.T) {
	path := writeEnumFile(t, t.TempDir(), testEnum)
	doc, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}

	if err := doc.AddVariant(enumdef.Variant{Name: "Alpha"}); err != nil {
		t.Fatal(err)
	}
	if err := doc.Reload(context.Background()); err != nil {
		t.Fatalf("Reload() error = %v", err)
	}
	if doc.IsDirty() {
		t.Error("document should be clean after reload")
	}
	if doc.VariantCount() != 3 {
		t.Errorf("VariantCount() = %d, want 3", doc.VariantCount())
	}
}

func TestReloadMissingFile(t *testing.T) {
	dir := t.TempDir()
	path := writeEnumFile(t, dir, testEnum)
	doc, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}

	if err := os.Remove(path); err != nil {
		t.Fatal(err)
	}

	if err := doc.Reload(context.Background()); err == nil {
		t.Error("Reload() should fail when the backing file is gone")
	}
	// In-memory state must survive the failed reload.
	if doc.Name() != "Color" || doc.VariantCount() != 3 {
		t.Error("failed reload must leave in-memory state untouched")
	}
}

func TestReloadMalformed(t *testing.T) {
	dir := t.TempDir()
	path := writeEnumFile(t, dir, testEnum)
	doc, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}

	if err := os.WriteFile(path, []byte(`{broken`), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := doc.Reload(context.Background()); err == nil {
		t.Error("Reload() should fail on malformed content")
	}
}

func TestSaveCancelledContext(t *testing.T) {
	path := writeEnumFile(t, t.TempDir(), testEnum)
	doc, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := doc.Save(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Save() error = %v, want context.Canceled", err)
	}
}
