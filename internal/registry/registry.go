// Package registry tracks live editor instances for the plugin.
//
// The registry is the authoritative owner of every open instance: it maps
// allocated InstanceIDs to their panel/instance records and drains them at
// plugin unload. A single mutex covers the id counter and the map so an id,
// once allocated, is claimed by exactly one registration. The lock is held
// only for O(1) map work, never across editor construction or document I/O.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/dshills/enumedit/internal/editorapi"
)

// InstanceID identifies one open editor instance. IDs are process-local,
// monotonically increasing, and never reused, even after removal.
type InstanceID uint64

// Record is the registry's bookkeeping entry for one open editor.
// Panel is a shared handle; the host holds its own copy of the same panel,
// and either side may drop theirs without tearing down the other's view.
type Record struct {
	Panel    editorapi.PanelView
	Instance editorapi.EditorInstance
}

// Registry maps InstanceIDs to live records. The zero value is not usable;
// construct with New.
type Registry struct {
	mu        sync.Mutex
	nextID    InstanceID
	instances map[InstanceID]Record
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{
		instances: make(map[InstanceID]Record),
	}
}

// AllocateID returns the current counter value and increments it.
// Concurrent callers never observe the same value.
func (r *Registry) AllocateID() InstanceID {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := r.nextID
	r.nextID++
	return id
}

// Register inserts a record under id.
//
// The id must come from AllocateID and must not already be present. A
// duplicate means the allocator's monotonic guarantee was bypassed, which
// is a programming error, so Register panics rather than returning an error.
func (r *Registry) Register(id InstanceID, rec Record) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.instances[id]; exists {
		panic(fmt.Sprintf("registry: duplicate registration for instance id %d", id))
	}
	r.instances[id] = rec
}

// Get returns the record for id, if present.
func (r *Registry) Get(id InstanceID) (Record, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.instances[id]
	return rec, ok
}

// Remove deletes the record for id. Returns true if it was present.
func (r *Registry) Remove(id InstanceID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.instances[id]; !ok {
		return false
	}
	delete(r.instances, id)
	return true
}

// IDs returns the registered ids in ascending order.
func (r *Registry) IDs() []InstanceID {
	r.mu.Lock()
	defer r.mu.Unlock()

	ids := make([]InstanceID, 0, len(r.instances))
	for id := range r.instances {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Count returns the number of registered instances.
func (r *Registry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.instances)
}

// Clear removes every record and returns the number removed.
// The counter is not reset: ids are never reused. Dropping a record releases
// the registry's panel reference; the panel itself lives until every holder
// has released theirs.
func (r *Registry) Clear() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	count := len(r.instances)
	r.instances = make(map[InstanceID]Record)
	return count
}
