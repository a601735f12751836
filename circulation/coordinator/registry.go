package coordinator

import (
	"fmt"
)

// registry is an insertion-ordered mapping with unique keys.
// Duplicate inserts fail with duplicateErr, lookups of unknown keys with unknownErr.
type registry[K comparable, V any] struct {
	keys         []K
	entries      map[K]V
	duplicateErr error
	unknownErr   error
}

func newRegistry[K comparable, V any](duplicateErr error, unknownErr error) *registry[K, V] {
	return &registry[K, V]{
		keys:         make([]K, 0),
		entries:      make(map[K]V),
		duplicateErr: duplicateErr,
		unknownErr:   unknownErr,
	}
}

func (r *registry[K, V]) add(key K, value V) error {
	if _, ok := r.entries[key]; ok {
		return fmt.Errorf("%w: %v", r.duplicateErr, key)
	}

	r.keys = append(r.keys, key)
	r.entries[key] = value

	return nil
}

func (r *registry[K, V]) get(key K) (V, error) {
	value, ok := r.entries[key]
	if !ok {
		return value, fmt.Errorf("%w: %v", r.unknownErr, key)
	}

	return value, nil
}

func (r *registry[K, V]) has(key K) bool {
	_, ok := r.entries[key]
	return ok
}

func (r *registry[K, V]) remove(key K) error {
	if _, ok := r.entries[key]; !ok {
		return fmt.Errorf("%w: %v", r.unknownErr, key)
	}

	delete(r.entries, key)

	for i, k := range r.keys {
		if k == key {
			r.keys = append(r.keys[:i], r.keys[i+1:]...)
			break
		}
	}

	return nil
}

// values returns the values in insertion order.
func (r *registry[K, V]) values() []V {
	values := make([]V, 0, len(r.keys))
	for _, k := range r.keys {
		values = append(values, r.entries[k])
	}

	return values
}

// filter returns the values matching keep, in insertion order.
func (r *registry[K, V]) filter(keep func(V) bool) []V {
	values := make([]V, 0)
	for _, k := range r.keys {
		if v := r.entries[k]; keep(v) {
			values = append(values, v)
		}
	}

	return values
}

func (r *registry[K, V]) len() int {
	return len(r.keys)
}
