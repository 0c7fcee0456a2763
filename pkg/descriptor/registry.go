package descriptor

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"sync"
	"time"
)

// Registry is the in-memory set of loaded descriptors. Reloads replace the
// whole set at once, so readers never see a half-applied reload.
type Registry struct {
	mu          sync.RWMutex
	descriptors map[string]*Descriptor
	version     string
	loadTime    time.Time
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{descriptors: make(map[string]*Descriptor)}
}

// Diff describes how a replacement changed the registry.
type Diff struct {
	Added   []string
	Changed []string
	Removed []string
}

// Empty reports whether nothing changed.
func (d Diff) Empty() bool {
	return len(d.Added) == 0 && len(d.Changed) == 0 && len(d.Removed) == 0
}

// Replace swaps in a new descriptor set and reports which ids were added,
// changed (different hash) or removed. Unchanged descriptors keep their
// previous instance.
func (r *Registry) Replace(descriptors []*Descriptor) Diff {
	next := make(map[string]*Descriptor, len(descriptors))
	for _, d := range descriptors {
		next[d.ID] = d
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	var diff Diff
	for id, d := range next {
		prev, ok := r.descriptors[id]
		switch {
		case !ok:
			diff.Added = append(diff.Added, id)
		case prev.Hash != d.Hash:
			diff.Changed = append(diff.Changed, id)
		default:
			next[id] = prev
		}
	}
	for id := range r.descriptors {
		if _, ok := next[id]; !ok {
			diff.Removed = append(diff.Removed, id)
		}
	}
	sort.Strings(diff.Added)
	sort.Strings(diff.Changed)
	sort.Strings(diff.Removed)

	r.descriptors = next
	r.loadTime = time.Now()
	r.updateVersion()
	return diff
}

// Get retrieves a descriptor by id.
func (r *Registry) Get(id string) (*Descriptor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.descriptors[id]
	return d, ok
}

// List returns all descriptors sorted by id.
func (r *Registry) List() []*Descriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Descriptor, 0, len(r.descriptors))
	for _, d := range r.descriptors {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Count returns the number of descriptors.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.descriptors)
}

// Version is a hash over every descriptor id and hash; it changes whenever a
// reload changes the set.
func (r *Registry) Version() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.version
}

// LoadTime returns when the set was last replaced.
func (r *Registry) LoadTime() time.Time {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.loadTime
}

// updateVersion must be called with r.mu held.
func (r *Registry) updateVersion() {
	ids := make([]string, 0, len(r.descriptors))
	for id := range r.descriptors {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	h := sha256.New()
	for _, id := range ids {
		h.Write([]byte(id))
		h.Write([]byte{0})
		h.Write([]byte(r.descriptors[id].Hash))
	}
	r.version = hex.EncodeToString(h.Sum(nil))[:16]
}
