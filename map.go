// map.go - MinimalMap[T, V]: a slot-array-backed map over a Minimal's
// domain.
//
// Grounded on storage.go's Storage[V] collaborator for the underlying
// typed slot array; null/default semantics follow the DESIGN.md
// resolution of the source's inconsistent null handling.

package mph

import (
	"fmt"
	"reflect"
)

// isNilValue reports whether v holds a nil pointer, interface, slice, map,
// chan, or func. any(v) == nil only catches a truly nil interface; a nil
// *int boxed into V any still compares non-nil that way (Go's typed-nil
// gotcha), so the check has to go through reflect.
func isNilValue[V any](v V) bool {
	rv := reflect.ValueOf(v)
	if !rv.IsValid() {
		// v's static type is itself an interface and the dynamic value is
		// the untyped nil - reflect.ValueOf has nothing to report on.
		return true
	}
	switch rv.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Slice, reflect.Map, reflect.Chan, reflect.Func:
		return rv.IsNil()
	default:
		return false
	}
}

// MinimalMap is a map keyed by exactly the domain of a Minimal, backed by
// a Storage[V] slot array of the same length. T must be comparable so key
// lookups can verify Store()[Hash(k)] == k.
type MinimalMap[T comparable, V any] struct {
	m       *Minimal[T]
	storage *Storage[V]
}

func newMinimalMap[T comparable, V any](m *Minimal[T], storage *Storage[V]) *MinimalMap[T, V] {
	return &MinimalMap[T, V]{m: m, storage: storage}
}

func (mm *MinimalMap[T, V]) slotFor(k T) (int, bool) {
	n := mm.m.Len()
	j := mm.m.Hash(k)
	if j < 0 || j >= n {
		return 0, false
	}
	if mm.m.Store()[j] != k {
		return 0, false
	}
	return j, true
}

// Get returns the value stored for k, and whether k is present. Over a
// default-value Storage, every domain key is always present.
func (mm *MinimalMap[T, V]) Get(k T) (V, bool) {
	j, ok := mm.slotFor(k)
	if !ok {
		var zero V
		return zero, false
	}
	return mm.storage.Get(j)
}

// Put stores v for k, returning the previous value. k must be a domain
// member. A nil v on a default-value Storage is reinterpreted as Remove,
// per the chosen null-handling rule for default-value storage.
func (mm *MinimalMap[T, V]) Put(k T, v V) (V, error) {
	j, ok := mm.slotFor(k)
	if !ok {
		var zero V
		return zero, fmt.Errorf("%w: %v is not a member of this map's domain", ErrInvalidArgument, k)
	}

	if isNilValue(v) {
		if mm.storage.HasDefault() {
			prev, _ := mm.storage.Clear(j)
			return prev, nil
		}
		var zero V
		return zero, fmt.Errorf("%w: nil value not permitted by this map's storage", ErrContainerIntegrity)
	}

	prev, _ := mm.storage.Set(j, v)
	return prev, nil
}

// Remove clears k's slot if k is a member, returning the previous value
// and whether it was present.
func (mm *MinimalMap[T, V]) Remove(k T) (V, bool) {
	j, ok := mm.slotFor(k)
	if !ok {
		var zero V
		return zero, false
	}
	return mm.storage.Clear(j)
}

// PutIfAbsent stores v for k only if k is not already present, returning
// the value now associated with k and whether it was inserted.
func (mm *MinimalMap[T, V]) PutIfAbsent(k T, v V) (V, bool, error) {
	j, ok := mm.slotFor(k)
	if !ok {
		var zero V
		return zero, false, fmt.Errorf("%w: %v is not a member of this map's domain", ErrInvalidArgument, k)
	}
	if cur, present := mm.storage.Get(j); present {
		return cur, false, nil
	}
	mm.storage.Set(j, v)
	return v, true, nil
}

// Replace stores v for k only if k is already present, returning the
// previous value and whether the replacement happened.
func (mm *MinimalMap[T, V]) Replace(k T, v V) (V, bool, error) {
	j, ok := mm.slotFor(k)
	if !ok {
		var zero V
		return zero, false, fmt.Errorf("%w: %v is not a member of this map's domain", ErrInvalidArgument, k)
	}
	prev, present := mm.storage.Get(j)
	if !present {
		var zero V
		return zero, false, nil
	}
	mm.storage.Set(j, v)
	return prev, true, nil
}

// ContainsKey reports whether k has an associated value.
func (mm *MinimalMap[T, V]) ContainsKey(k T) bool {
	_, ok := mm.Get(k)
	return ok
}

// Size returns the number of present slots.
func (mm *MinimalMap[T, V]) Size() int {
	return mm.storage.Count()
}

// Clear resets every slot (to absent, or to the default value for a
// default-value Storage).
func (mm *MinimalMap[T, V]) Clear() {
	mm.storage.ClearAll()
}

// MapEntry is a live (key, slot) pair returned by Entries; SetValue writes
// through to the backing Storage.
type MapEntry[T any, V any] struct {
	Key     T
	slot    int
	storage *Storage[V]
}

// Value returns the entry's current value.
func (e *MapEntry[T, V]) Value() V {
	v, _ := e.storage.Get(e.slot)
	return v
}

// SetValue writes v to the entry's slot and returns the previous value.
func (e *MapEntry[T, V]) SetValue(v V) V {
	prev, _ := e.storage.Set(e.slot, v)
	return prev
}

// Entries returns a live entry per present slot, in ascending hash order.
func (mm *MinimalMap[T, V]) Entries() []*MapEntry[T, V] {
	n := mm.storage.Len()
	store := mm.m.Store()
	var out []*MapEntry[T, V]
	for i := 0; i < n; i++ {
		if _, present := mm.storage.Get(i); present {
			out = append(out, &MapEntry[T, V]{Key: store[i], slot: i, storage: mm.storage})
		}
	}
	return out
}

// Keys returns every present key, in ascending hash order.
func (mm *MinimalMap[T, V]) Keys() []T {
	n := mm.storage.Len()
	store := mm.m.Store()
	var out []T
	for i := 0; i < n; i++ {
		if _, present := mm.storage.Get(i); present {
			out = append(out, store[i])
		}
	}
	return out
}

// Values returns every present value, in ascending hash order.
func (mm *MinimalMap[T, V]) Values() []V {
	n := mm.storage.Len()
	var out []V
	for i := 0; i < n; i++ {
		if v, present := mm.storage.Get(i); present {
			out = append(out, v)
		}
	}
	return out
}

// ReplaceIfEqual replaces k's value with newV only if it currently equals
// oldV. Split out from Replace because it needs V to be comparable.
func ReplaceIfEqual[T comparable, V comparable](mm *MinimalMap[T, V], k T, oldV, newV V) (bool, error) {
	j, ok := mm.slotFor(k)
	if !ok {
		return false, fmt.Errorf("%w: %v is not a member of this map's domain", ErrInvalidArgument, k)
	}
	cur, present := mm.storage.Get(j)
	if !present || cur != oldV {
		return false, nil
	}
	mm.storage.Set(j, newV)
	return true, nil
}

// ContainsValue reports whether any present slot holds v. Split out from
// the method set because it needs V to be comparable.
func ContainsValue[T comparable, V comparable](mm *MinimalMap[T, V], v V) bool {
	n := mm.storage.Len()
	for i := 0; i < n; i++ {
		if cur, present := mm.storage.Get(i); present && cur == v {
			return true
		}
	}
	return false
}
