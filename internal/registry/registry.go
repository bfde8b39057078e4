// Package registry holds the set of active key bindings per mode and
// resolves which binding fires when more than one pattern matches the
// same tick.
package registry

import (
	"sort"
	"sync"

	"github.com/gamepadhid/core/pkg/models"
)

// Registry is a thread-safe, mode-scoped collection of bindings, keyed by
// each pattern's canonical form so re-adding the same pattern replaces
// rather than duplicates it.
type Registry struct {
	mu       sync.RWMutex
	bindings map[string]models.Binding
}

// New returns an empty Registry.
func New() *Registry {
	return &Registry{bindings: make(map[string]models.Binding)}
}

// Add inserts or replaces the binding keyed by its pattern's canonical key.
func (r *Registry) Add(b models.Binding) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bindings[b.Pattern.CanonicalKey()] = b
}

// Remove deletes the binding for pattern, reporting whether one existed.
func (r *Registry) Remove(pattern models.InputPattern) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := pattern.CanonicalKey()
	if _, ok := r.bindings[key]; !ok {
		return false
	}
	delete(r.bindings, key)
	return true
}

// Get returns the binding for pattern, if any.
func (r *Registry) Get(pattern models.InputPattern) (models.Binding, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.bindings[pattern.CanonicalKey()]
	return b, ok
}

// All returns every binding ordered by resolution precedence: priority
// descending, then pattern specificity descending (Sequence > Chord >
// ModifiedButton > SingleButton) as the tie-break.
func (r *Registry) All() []models.Binding {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return sortedByPrecedence(r.bindings)
}

// ForButton returns every enabled binding whose pattern involves button,
// ordered by the same precedence as All.
func (r *Registry) ForButton(button models.Button) []models.Binding {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matching := make(map[string]models.Binding)
	for key, b := range r.bindings {
		if b.Enabled && b.Pattern.Contains(button) {
			matching[key] = b
		}
	}
	return sortedByPrecedence(matching)
}

// Clear removes every binding.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bindings = make(map[string]models.Binding)
}

// Len returns the number of bindings currently registered.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.bindings)
}

// IsEmpty reports whether the registry holds no bindings.
func (r *Registry) IsEmpty() bool {
	return r.Len() == 0
}

func sortedByPrecedence(m map[string]models.Binding) []models.Binding {
	out := make([]models.Binding, 0, len(m))
	for _, b := range m {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Priority != out[j].Priority {
			return out[i].Priority > out[j].Priority
		}
		return out[i].Pattern.Kind.Specificity() > out[j].Pattern.Kind.Specificity()
	})
	return out
}
