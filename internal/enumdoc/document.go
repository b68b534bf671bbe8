// Package enumdoc provides the open-document entity backing an enum editor.
//
// Document tracks the parsed definition, its clean/dirty state, and
// synchronization with the enum.json file on disk.
package enumdoc

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/dshills/enumedit/internal/enumdef"
)

// Document errors.
var (
	// ErrNoVariantSelected is returned by variant operations given an
	// out-of-range index.
	ErrNoVariantSelected = errors.New("variant index out of range")
)

// Document represents one open enum definition.
// It may differ from disk while dirty. All methods are thread-safe.
type Document struct {
	mu sync.RWMutex

	// path is the absolute or caller-relative resolved location of the
	// backing enum.json. Immutable after Open.
	path string

	def *enumdef.Definition

	// version increments on each mutation; savedVersion tracks the version
	// last written to (or read from) disk. Dirty iff they differ.
	version      int64
	savedVersion int64

	openedAt    time.Time
	modifiedAt  time.Time
	diskModTime time.Time
}

// Open reads and parses the enum definition at path.
// Read and parse failures surface as errors; no document is created.
func Open(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("open enum document: %w", err)
	}

	def, err := enumdef.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("open enum document %q: %w", path, err)
	}

	modTime := time.Time{}
	if fi, err := os.Stat(path); err == nil {
		modTime = fi.ModTime()
	}

	now := time.Now()
	return &Document{
		path:         path,
		def:          def,
		version:      1,
		savedVersion: 1,
		openedAt:     now,
		modifiedAt:   now,
		diskModTime:  modTime,
	}, nil
}

// Create writes the default definition to path and opens it.
// Parent directories are created as needed.
func Create(path string) (*Document, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create enum document: %w", err)
	}
	if err := os.WriteFile(path, enumdef.DefaultContent(), 0o644); err != nil {
		return nil, fmt.Errorf("create enum document: %w", err)
	}
	return Open(path)
}

// Path returns the resolved backing location.
func (d *Document) Path() string {
	return d.path
}

// Definition returns a deep copy of the current definition.
func (d *Document) Definition() *enumdef.Definition {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.def.Clone()
}

// Name returns the enum name.
func (d *Document) Name() string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.def.Name
}

// VariantCount returns the number of variants.
func (d *Document) VariantCount() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.def.Variants)
}

// Version returns the current document version.
func (d *Document) Version() int64 {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.version
}

// OpenedAt returns when the document was opened.
func (d *Document) OpenedAt() time.Time {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.openedAt
}

// ModifiedAt returns when the document was last mutated or reloaded.
func (d *Document) ModifiedAt() time.Time {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.modifiedAt
}

// IsDirty returns true if the document has unsaved changes.
func (d *Document) IsDirty() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.version != d.savedVersion
}

// HasExternalChanges checks if the backing file changed on disk since the
// last open, save, or reload.
func (d *Document) HasExternalChanges(currentDiskModTime time.Time) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return !currentDiskModTime.Equal(d.diskModTime)
}

// Mutations

// SetName renames the enum. The new name must be identifier-shaped.
func (d *Document) SetName(name string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	trial := d.def.Clone()
	trial.Name = name
	if err := trial.Validate(); err != nil {
		return err
	}

	d.def.Name = name
	d.bumpLocked()
	return nil
}

// SetDescription updates the enum description.
func (d *Document) SetDescription(desc string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.def.Description == desc {
		return
	}
	d.def.Description = desc
	d.bumpLocked()
}

// AddVariant appends a variant. The name must be identifier-shaped and
// unique within the definition.
func (d *Document) AddVariant(v enumdef.Variant) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	trial := d.def.Clone()
	trial.Variants = append(trial.Variants, v)
	if err := trial.Validate(); err != nil {
		return err
	}

	d.def.Variants = append(d.def.Variants, v)
	d.bumpLocked()
	return nil
}

// UpdateVariant replaces the variant at index i.
func (d *Document) UpdateVariant(i int, v enumdef.Variant) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if i < 0 || i >= len(d.def.Variants) {
		return ErrNoVariantSelected
	}

	trial := d.def.Clone()
	trial.Variants[i] = v
	if err := trial.Validate(); err != nil {
		return err
	}

	d.def.Variants[i] = v
	d.bumpLocked()
	return nil
}

// RemoveVariant deletes the variant at index i.
func (d *Document) RemoveVariant(i int) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if i < 0 || i >= len(d.def.Variants) {
		return ErrNoVariantSelected
	}

	d.def.Variants = append(d.def.Variants[:i], d.def.Variants[i+1:]...)
	d.bumpLocked()
	return nil
}

// MoveVariant moves the variant at index i to index j, shifting the rest.
func (d *Document) MoveVariant(i, j int) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	n := len(d.def.Variants)
	if i < 0 || i >= n || j < 0 || j >= n {
		return ErrNoVariantSelected
	}
	if i == j {
		return nil
	}

	v := d.def.Variants[i]
	rest := append(d.def.Variants[:i], d.def.Variants[i+1:]...)
	d.def.Variants = append(rest[:j], append([]enumdef.Variant{v}, rest[j:]...)...)
	d.bumpLocked()
	return nil
}

// bumpLocked records a mutation. Caller holds the write lock.
func (d *Document) bumpLocked() {
	d.version++
	d.modifiedAt = time.Now()
}

// Persistence

// Save writes the current definition to the backing location.
// The write goes through a temp file and rename so a failed save never
// truncates the document on disk. On success the document is marked clean.
func (d *Document) Save(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	d.mu.RLock()
	data, err := d.def.Marshal()
	version := d.version
	d.mu.RUnlock()
	if err != nil {
		return fmt.Errorf("save enum document: %w", err)
	}

	dir := filepath.Dir(d.path)
	tmp, err := os.CreateTemp(dir, ".enumedit-save-*")
	if err != nil {
		return fmt.Errorf("save enum document: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("save enum document: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("save enum document: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("save enum document: %w", err)
	}
	if err := os.Rename(tmpName, d.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("save enum document: %w", err)
	}

	modTime := time.Time{}
	if fi, err := os.Stat(d.path); err == nil {
		modTime = fi.ModTime()
	}

	d.mu.Lock()
	// Mark the saved snapshot; edits racing the write stay dirty.
	d.savedVersion = version
	d.diskModTime = modTime
	d.mu.Unlock()

	return nil
}

// Reload discards unsaved changes and re-reads the definition from disk.
// Fails with an error, leaving the in-memory state untouched, if the
// backing file is missing or malformed.
func (d *Document) Reload(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := os.ReadFile(d.path)
	if err != nil {
		return fmt.Errorf("reload enum document: %w", err)
	}

	def, err := enumdef.Parse(data)
	if err != nil {
		return fmt.Errorf("reload enum document %q: %w", d.path, err)
	}

	modTime := time.Time{}
	if fi, err := os.Stat(d.path); err == nil {
		modTime = fi.ModTime()
	}

	d.mu.Lock()
	d.def = def
	d.version++
	d.savedVersion = d.version
	d.modifiedAt = time.Now()
	d.diskModTime = modTime
	d.mu.Unlock()

	return nil
}
