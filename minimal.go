// minimal.go - Minimal[T]: a minimal perfect hash plus its lazily
// materialized permutation and store.

package mph

import (
	"fmt"
	"io"
)

// Minimal is a minimal perfect hash (range exactly [0, n)) over a domain,
// together with the permutation and store that link hash values back to
// domain keys. Both are computed on first observation and never change
// afterward.
type Minimal[T any] struct {
	hasher *minimalHasher[T]
	domain *PerfectDomain[T]
	perm   []int
	store  []T
}

// Hash returns v's minimal hash, in [0, Len()).
func (m *Minimal[T]) Hash(v T) int {
	return m.hasher.Hash(v)
}

// Domain returns the domain this minimal hash was built over.
func (m *Minimal[T]) Domain() *PerfectDomain[T] {
	return m.domain
}

// Len returns n, the domain size (and the minimal hash's range width).
func (m *Minimal[T]) Len() int {
	return m.hasher.Size()
}

// Permutation returns π, where π[i] = Hash(key_i) for the i-th key in
// domain-iteration order. Materialized on first call.
func (m *Minimal[T]) Permutation() []int {
	if m.perm == nil {
		m.materializePermOnly()
	}
	return m.perm
}

// Store returns S, where S[j] is the unique domain key k with Hash(k) = j.
// Materialized on first call, reusing the permutation if it already exists.
func (m *Minimal[T]) Store() []T {
	if m.store == nil {
		if m.perm != nil {
			m.materializeStoreFromPerm()
		} else {
			m.materializeBoth()
		}
	}
	return m.store
}

func (m *Minimal[T]) materializePermOnly() {
	n := m.Len()
	perm := make([]int, n)
	it := m.domain.Values()()
	for i := 0; i < n; i++ {
		v, ok := it.Next()
		if !ok {
			break
		}
		perm[i] = m.hasher.Hash(v)
	}
	m.perm = perm
}

func (m *Minimal[T]) materializeBoth() {
	n := m.Len()
	store := make([]T, n)
	perm := make([]int, n)
	it := m.domain.Values()()
	for i := 0; i < n; i++ {
		v, ok := it.Next()
		if !ok {
			break
		}
		j := m.hasher.Hash(v)
		store[j] = v
		perm[i] = j
	}
	m.store = store
	m.perm = perm
}

func (m *Minimal[T]) materializeStoreFromPerm() {
	n := m.Len()
	inOrder := make([]T, n)
	it := m.domain.Values()()
	for i := 0; i < n; i++ {
		v, ok := it.Next()
		if !ok {
			break
		}
		inOrder[i] = v
	}

	store := make([]T, n)
	for i, j := range m.perm {
		store[j] = inOrder[i]
	}
	m.store = store
}

// Stats reports construction diagnostics for the BMZ search that produced
// this Minimal: how many seed attempts it took, the slack factor c it was
// built with, and the size of the critical 2-core on the winning attempt.
type Stats struct {
	AttemptsUsed        int
	SlackC              float64
	CriticalVertexCount int
}

// Stats returns this Minimal's construction diagnostics.
func (m *Minimal[T]) Stats() Stats {
	return Stats{
		AttemptsUsed:        m.hasher.attempts,
		SlackC:              m.hasher.c,
		CriticalVertexCount: m.hasher.critical,
	}
}

// DumpMeta writes a one-line human-readable summary of this minimal hash's
// BMZ construction (vertex count, seeds, attempts, critical-core size) to
// w, for diagnostics. This is not a wire format.
func (m *Minimal[T]) DumpMeta(w io.Writer) {
	fmt.Fprintf(w, "Minimal: BMZ n=%d bmzN=%d seeds=(%#x,%#x) attempts=%d critical=%d\n",
		m.hasher.n, m.hasher.bmzN, m.hasher.seed1, m.hasher.seed2, m.hasher.attempts, m.hasher.critical)
}

// NewMinimalSet builds a MinimalSet over m. T must be comparable so
// membership checks can confirm Store()[Hash(e)] == e.
func NewMinimalSet[T comparable](m *Minimal[T]) *MinimalSet[T] {
	return newMinimalSet(m)
}

// NewMinimalMap builds a MinimalMap over m backed by storage. storage must
// have been allocated with length m.Len().
func NewMinimalMap[T comparable, V any](m *Minimal[T], storage *Storage[V]) *MinimalMap[T, V] {
	return newMinimalMap(m, storage)
}
