package mph

import (
	"strings"
	"testing"
)

func buildMinimal(t *testing.T, items []string) *Minimal[string] {
	t.Helper()
	assert := newAsserter(t)

	d := DomainOver(items)
	rng := NewDeterministicRng(42, 7)
	p, err := d.Using(100, rng).Perfect(StringSerializer{})
	assert(err == nil, "expected Perfect to succeed, got %v", err)

	m, err := p.Minimized()
	assert(err == nil, "expected Minimized to succeed, got %v", err)
	return m
}

func TestMinimalPermutationLaw(t *testing.T) {
	assert := newAsserter(t)

	// Permutation law: pi[i] equals Hash of the i-th key in domain order.
	items := []string{"Dog", "Cat", "Horse", "Goat", "Llama"}
	m := buildMinimal(t, items)

	perm := m.Permutation()
	store := m.Store()
	applied := make([]string, len(items))
	for i := range items {
		applied[i] = store[perm[i]]
	}
	for i, want := range items {
		assert(applied[i] == want, "expected applied[%d] == %q, got %q", i, want, applied[i])
	}
}

func TestMinimalRangeAndStoreRoundtrip(t *testing.T) {
	assert := newAsserter(t)

	m := buildMinimal(t, keyw)
	n := len(keyw)
	assert(m.Len() == n, "expected range %d, got %d", n, m.Len())

	seen := make([]bool, n)
	for _, k := range keyw {
		j := m.Hash(k)
		assert(j >= 0 && j < n, "expected hash(%q) in [0,%d), got %d", k, n, j)
		assert(!seen[j], "expected no collisions, but slot %d seen twice", j)
		seen[j] = true
	}

	store := m.Store()
	for j, k := range store {
		assert(m.Hash(k) == j, "expected hash(store[%d])==%d, got %d", j, j, m.Hash(k))
	}
}

func TestMinimalStoreThenPermutationOrder(t *testing.T) {
	assert := newAsserter(t)

	// Store() called first materializes the store and the permutation in
	// one pass; Permutation() afterward returns that same permutation.
	m := buildMinimal(t, keyw)
	_ = m.Store()
	perm := m.Permutation()
	assert(len(perm) == len(keyw), "expected permutation length %d, got %d", len(keyw), len(perm))
}

func TestMinimalStatsAndDumpMeta(t *testing.T) {
	assert := newAsserter(t)

	m := buildMinimal(t, keyw)
	stats := m.Stats()
	assert(stats.AttemptsUsed >= 1, "expected AttemptsUsed >= 1, got %d", stats.AttemptsUsed)
	assert(stats.SlackC >= 1.0, "expected SlackC >= 1.0, got %f", stats.SlackC)
	assert(stats.CriticalVertexCount >= 0 && stats.CriticalVertexCount <= m.hasher.bmzN,
		"expected CriticalVertexCount in [0,bmzN], got %d", stats.CriticalVertexCount)

	var buf strings.Builder
	m.DumpMeta(&buf)
	out := buf.String()
	assert(strings.Contains(out, "BMZ"), "expected DumpMeta output to mention BMZ, got %q", out)
	assert(strings.Contains(out, "attempts="), "expected DumpMeta output to report attempts, got %q", out)
}
