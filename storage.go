// storage.go - the Storage[V] collaborator: a typed, fixed-size slot array
// with optional default-value-on-null semantics. No generic typed-array
// library appears anywhere in the retrieved example pack, so this is a
// small, direct implementation rather than a dropped dependency - the
// capability is required by MinimalMap and nothing in the corpus supplies
// it off the shelf.

package mph

// Storage is a fixed-size array of V, indexed by minimal-hash value. A slot
// is "absent" until written, unless the Storage was built with a default
// value, in which case every slot is always "present."
type Storage[V any] struct {
	slots      []V
	present    []bool
	hasDefault bool
	defaultVal V
	count      int
}

// NewStorage allocates a Storage of size n with no default value: every
// slot starts absent.
func NewStorage[V any](n int) *Storage[V] {
	return &Storage[V]{
		slots:   make([]V, n),
		present: make([]bool, n),
	}
}

// NewStorageWithDefault allocates a Storage of size n where every slot is
// always present, starting at defaultVal: every key is always present
// with at least the default value.
func NewStorageWithDefault[V any](n int, defaultVal V) *Storage[V] {
	s := &Storage[V]{
		slots:      make([]V, n),
		present:    make([]bool, n),
		hasDefault: true,
		defaultVal: defaultVal,
		count:      n,
	}
	for i := range s.slots {
		s.slots[i] = defaultVal
		s.present[i] = true
	}
	return s
}

// Len returns the number of slots.
func (s *Storage[V]) Len() int {
	return len(s.slots)
}

// HasDefault reports whether this Storage was configured with a default
// value (every slot always present).
func (s *Storage[V]) HasDefault() bool {
	return s.hasDefault
}

// IsNull reports whether slot i is absent.
func (s *Storage[V]) IsNull(i int) bool {
	return !s.present[i]
}

// Get returns the value at slot i and whether it is present.
func (s *Storage[V]) Get(i int) (V, bool) {
	return s.slots[i], s.present[i]
}

// Set writes v to slot i, returning the previous value (zero value if the
// slot was absent) and whether the slot was previously present.
func (s *Storage[V]) Set(i int, v V) (V, bool) {
	prev, wasPresent := s.slots[i], s.present[i]
	s.slots[i] = v
	if !wasPresent {
		s.present[i] = true
		s.count++
	}
	return prev, wasPresent
}

// Clear resets slot i: to absent for a no-default Storage, or back to the
// default value for a default-value Storage: removal reassigns the default.
func (s *Storage[V]) Clear(i int) (V, bool) {
	prev, wasPresent := s.slots[i], s.present[i]
	if s.hasDefault {
		s.slots[i] = s.defaultVal
		// present stays true; a default-value Storage never has absent slots.
		return prev, wasPresent
	}
	var zero V
	s.slots[i] = zero
	if wasPresent {
		s.present[i] = false
		s.count--
	}
	return prev, wasPresent
}

// Count returns the number of present slots.
func (s *Storage[V]) Count() int {
	return s.count
}

// ClearAll resets every slot.
func (s *Storage[V]) ClearAll() {
	if s.hasDefault {
		for i := range s.slots {
			s.slots[i] = s.defaultVal
		}
		return
	}
	var zero V
	for i := range s.slots {
		s.slots[i] = zero
		s.present[i] = false
	}
	s.count = 0
}

// Mutable returns an independent deep copy of this Storage.
func (s *Storage[V]) Mutable() *Storage[V] {
	cp := &Storage[V]{
		slots:      make([]V, len(s.slots)),
		present:    make([]bool, len(s.present)),
		hasDefault: s.hasDefault,
		defaultVal: s.defaultVal,
		count:      s.count,
	}
	copy(cp.slots, s.slots)
	copy(cp.present, s.present)
	return cp
}
