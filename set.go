// set.go - MinimalSet[T]: a bitset-backed set over a Minimal's domain.
//
// Grounded on bits-and-blooms/bitset as the dense bit vector collaborator:
// set/clear/test, position iteration, counts.

package mph

import (
	"fmt"

	"github.com/bits-and-blooms/bitset"
)

// MinimalSet is a set over exactly the keys of a Minimal's domain, backed
// by one bit per hash slot. T must be comparable so membership can verify
// Store()[Hash(e)] == e - the invalid-element check.
type MinimalSet[T comparable] struct {
	m    *Minimal[T]
	bits *bitset.BitSet
}

func newMinimalSet[T comparable](m *Minimal[T]) *MinimalSet[T] {
	return &MinimalSet[T]{m: m, bits: bitset.New(uint(m.Len()))}
}

func (s *MinimalSet[T]) slotFor(e T) (uint, bool) {
	n := s.m.Len()
	j := s.m.Hash(e)
	if j < 0 || j >= n {
		return 0, false
	}
	if s.m.Store()[j] != e {
		return 0, false
	}
	return uint(j), true
}

// Add sets e's bit, rejecting e if it is not a member of the domain.
// Returns whether the bit was previously clear.
func (s *MinimalSet[T]) Add(e T) (bool, error) {
	j, ok := s.slotFor(e)
	if !ok {
		return false, fmt.Errorf("%w: %v is not a member of this set's domain", ErrInvalidArgument, e)
	}
	wasSet := s.bits.Test(j)
	s.bits.Set(j)
	return !wasSet, nil
}

// Contains reports whether e is both a domain member and currently set.
func (s *MinimalSet[T]) Contains(e T) bool {
	j, ok := s.slotFor(e)
	if !ok {
		return false
	}
	return s.bits.Test(j)
}

// Remove clears e's bit if e is a domain member, and reports whether it
// was previously set.
func (s *MinimalSet[T]) Remove(e T) bool {
	j, ok := s.slotFor(e)
	if !ok {
		return false
	}
	wasSet := s.bits.Test(j)
	s.bits.Clear(j)
	return wasSet
}

// Size is the number of set bits.
func (s *MinimalSet[T]) Size() int {
	return int(s.bits.Count())
}

// IsEmpty reports whether no bit is set: the no-set-bits check, not an
// inverted count comparison.
func (s *MinimalSet[T]) IsEmpty() bool {
	return s.bits.None()
}

// IsFull reports whether every domain key is a member.
func (s *MinimalSet[T]) IsFull() bool {
	return int(s.bits.Count()) == s.m.Len()
}

// Fill adds every domain key.
func (s *MinimalSet[T]) Fill() {
	n := uint(s.m.Len())
	for i := uint(0); i < n; i++ {
		s.bits.Set(i)
	}
}

// ForEach visits every member, in ascending hash order.
func (s *MinimalSet[T]) ForEach(fn func(T)) {
	store := s.m.Store()
	for i, ok := s.bits.NextSet(0); ok; i, ok = s.bits.NextSet(i + 1) {
		fn(store[i])
	}
}

// RemoveIf removes every member for which pred returns true, and reports
// how many were removed. The predicate pass is snapshotted first so
// removal is safe against the set being walked mid-iteration.
func (s *MinimalSet[T]) RemoveIf(pred func(T) bool) int {
	store := s.m.Store()
	var toRemove []uint
	for i, ok := s.bits.NextSet(0); ok; i, ok = s.bits.NextSet(i + 1) {
		if pred(store[i]) {
			toRemove = append(toRemove, i)
		}
	}
	for _, i := range toRemove {
		s.bits.Clear(i)
	}
	return len(toRemove)
}

// Mutable returns s itself: it is already mutable.
func (s *MinimalSet[T]) Mutable() *MinimalSet[T] {
	return s
}

// MutableCopy returns an independent, mutable copy of s.
func (s *MinimalSet[T]) MutableCopy() *MinimalSet[T] {
	return &MinimalSet[T]{m: s.m, bits: s.bits.Clone()}
}

// Immutable returns an independent read-only snapshot of s.
func (s *MinimalSet[T]) Immutable() *ImmutableMinimalSet[T] {
	return &ImmutableMinimalSet[T]{inner: s.MutableCopy()}
}

// ImmutableView returns a read-only façade over s that reflects later
// mutations made through s.
func (s *MinimalSet[T]) ImmutableView() *ImmutableMinimalSet[T] {
	return &ImmutableMinimalSet[T]{inner: s}
}

// ImmutableMinimalSet exposes only the read-only operations of a
// MinimalSet; mutation attempts have no method to call through.
type ImmutableMinimalSet[T comparable] struct {
	inner *MinimalSet[T]
}

func (s *ImmutableMinimalSet[T]) Contains(e T) bool { return s.inner.Contains(e) }
func (s *ImmutableMinimalSet[T]) Size() int         { return s.inner.Size() }
func (s *ImmutableMinimalSet[T]) IsEmpty() bool      { return s.inner.IsEmpty() }
func (s *ImmutableMinimalSet[T]) IsFull() bool       { return s.inner.IsFull() }
func (s *ImmutableMinimalSet[T]) ForEach(fn func(T)) { s.inner.ForEach(fn) }
