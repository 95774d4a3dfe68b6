// bmz.go - the BMZ minimal-perfect-hash construction (Botelho, Menoyo,
// Ziviani): https://cmph.sourceforge.net/papers/wea07.pdf
//
// Two existing idioms get generalized into a different algorithm here:
// a Freeze()-style seed-retry loop (draw seeds, build, abandon and retry
// on collision) becomes the per-attempt loop below; a level-by-level
// redo-list peel becomes the degree-1 peel that finds the graph's
// critical 2-core. The bipartite hash-graph itself and the greedy
// g-table assignment are BMZ's own algorithm, built directly from the
// paper's construction procedure.

package mph

import (
	"math"

	"github.com/bits-and-blooms/bitset"
)

// minimalHasher is the Hasher-shaped closure BMZ produces: a g-table plus
// the two vertex-hash seeds and the base hasher h0 it was built over, plus
// the construction diagnostics Minimal.Stats()/DumpMeta surface.
type minimalHasher[T any] struct {
	h0           Hasher[T]
	seed1, seed2 uint64
	n            int
	bmzN         int
	g            []uint32

	c        float64 // slack factor the caller requested
	attempts int     // seed pairs tried, including the one that succeeded
	critical int     // size of the critical 2-core on the winning attempt
}

// Hash returns M(v) in [0, n): g[a(v)] + g[b(v)], mod 2^32.
func (m *minimalHasher[T]) Hash(v T) int {
	if m.n == 0 {
		return 0
	}
	x := m.h0.Hash(v)
	a, b := bmzEdgeFor(x, m.seed1, m.seed2, uint32(m.bmzN))
	return int(m.g[a] + m.g[b])
}

// Size returns n, the range width of this minimal hash.
func (m *minimalHasher[T]) Size() int {
	return m.n
}

type bmzEdge struct {
	a, b int
}

// bmzVertex hashes an already-perfect-hashed key x down to a vertex in
// [0, N), seeded independently by seed.
func bmzVertex(x uint64, seed uint64, N uint32) uint32 {
	h := mix(x ^ seed)
	return uint32(h % uint64(N))
}

// bmzEdgeFor computes (a(k), b(k)) for an already-computed h0(k), applying
// the self-loop rotation rule.
func bmzEdgeFor(x uint64, seed1, seed2 uint64, N uint32) (uint32, uint32) {
	a := bmzVertex(x, seed1, N)
	b := bmzVertex(x, seed2, N)
	if a == b {
		if b == N-1 {
			b = 0
		} else {
			b++
		}
	}
	return a, b
}

func canonicalEdgeKey(a, b uint32) uint64 {
	if a > b {
		a, b = b, a
	}
	return uint64(a)<<32 | uint64(b)
}

// buildBMZ runs the randomized BMZ construction over domain, using h0 as
// the base perfect hasher, up to maxAttempts times with slack factor c.
func buildBMZ[T any](domain *PerfectDomain[T], h0 Hasher[T], maxAttempts int, c float64, rng Rng) (*minimalHasher[T], error) {
	n := domain.Size()
	if n == 0 {
		return &minimalHasher[T]{h0: h0, n: 0}, nil
	}

	h0vals := make([]uint64, 0, n)
	it := domain.Values()()
	for {
		v, ok := it.Next()
		if !ok {
			break
		}
		h0vals = append(h0vals, h0.Hash(v))
	}

	bmzN := int(math.Ceil(c * float64(n)))
	if bmzN <= n {
		bmzN = n + 1
	}

	for attempt := 0; attempt < maxAttempts; attempt++ {
		seed1 := rng.Uint64()
		seed2 := rng.Uint64()

		g, critical, ok := tryBMZAttempt(h0vals, n, bmzN, seed1, seed2)
		if ok {
			return &minimalHasher[T]{
				h0:       h0,
				seed1:    seed1,
				seed2:    seed2,
				n:        n,
				bmzN:     bmzN,
				g:        g,
				c:        c,
				attempts: attempt + 1,
				critical: critical,
			}, nil
		}
	}

	return nil, newPerfectionFailure("failed to find minimal hash after %d attempts", maxAttempts)
}

// tryBMZAttempt runs one full BMZ attempt (graph build, critical-core
// peel, greedy assignment) for a fixed pair of vertex-hash seeds. Returns
// (nil, 0, false) if this seed pair must be abandoned; otherwise also
// reports the size of the critical 2-core it peeled down to, for
// Minimal.Stats().
func tryBMZAttempt(h0vals []uint64, n, bmzN int, seed1, seed2 uint64) ([]uint32, int, bool) {
	edges := make([]bmzEdge, n)
	adj := make([][]int, bmzN)
	seen := make(map[uint64]bool, n)

	for i, x := range h0vals {
		a, b := bmzEdgeFor(x, seed1, seed2, uint32(bmzN))

		key := canonicalEdgeKey(a, b)
		if seen[key] {
			return nil, 0, false
		}
		seen[key] = true

		edges[i] = bmzEdge{a: int(a), b: int(b)}
		adj[a] = append(adj[a], i)
		adj[b] = append(adj[b], i)
	}

	critical := peelToCritical(adj, bmzN, edges)
	criticalCount := int(critical.Count())

	critAdj := make([][]int, bmzN)
	for v := 0; v < bmzN; v++ {
		if !critical.Test(uint(v)) {
			continue
		}
		for _, eIdx := range adj[v] {
			e := edges[eIdx]
			u := e.other(v)
			if critical.Test(uint(u)) {
				critAdj[v] = append(critAdj[v], eIdx)
			}
		}
	}

	g := make([]uint32, bmzN)
	assignedVertex := bitset.New(uint(bmzN))
	assignedEdge := bitset.New(uint(n))

	var x uint32
	for root := 0; root < bmzN; root++ {
		if !critical.Test(uint(root)) || assignedVertex.Test(uint(root)) {
			continue
		}
		if !assignGreedy(root, critAdj, edges, g, assignedVertex, assignedEdge, n, &x) {
			return nil, 0, false
		}

		queue := []int{root}
		for head := 0; head < len(queue); head++ {
			v := queue[head]
			for _, eIdx := range critAdj[v] {
				e := edges[eIdx]
				w := e.other(v)
				if assignedVertex.Test(uint(w)) {
					continue
				}
				if !assignGreedy(w, critAdj, edges, g, assignedVertex, assignedEdge, n, &x) {
					return nil, 0, false
				}
				queue = append(queue, w)
			}
		}
	}

	assignNonCritical(adj, edges, g, assignedVertex, assignedEdge, bmzN, n)

	return g, criticalCount, true
}

func (e bmzEdge) other(v int) int {
	if e.a == v {
		return e.b
	}
	return e.a
}

// peelToCritical iteratively strips degree-<=1 vertices (chains) and
// returns the bitset of vertices remaining - the critical 2-core.
func peelToCritical(adj [][]int, bmzN int, edges []bmzEdge) *bitset.BitSet {
	degree := make([]int, bmzN)
	for v, lst := range adj {
		degree[v] = len(lst)
	}

	removed := make([]bool, bmzN)
	queue := make([]int, 0, bmzN)
	for v := 0; v < bmzN; v++ {
		if degree[v] <= 1 {
			queue = append(queue, v)
		}
	}

	for head := 0; head < len(queue); head++ {
		v := queue[head]
		if removed[v] {
			continue
		}
		removed[v] = true
		for _, eIdx := range adj[v] {
			u := edges[eIdx].other(v)
			if removed[u] {
				continue
			}
			degree[u]--
			if degree[u] == 1 {
				queue = append(queue, u)
			}
		}
	}

	critical := bitset.New(uint(bmzN))
	for v := 0; v < bmzN; v++ {
		if !removed[v] {
			critical.Set(uint(v))
		}
	}
	return critical
}

// assignGreedy finds the smallest g-value for v (starting the search from
// *x) that keeps every edge to an already-assigned critical neighbour both
// in range and conflict-free, commits it, and advances *x. Returns false if
// no such value exists before candidate reaches n.
func assignGreedy(v int, critAdj [][]int, edges []bmzEdge, g []uint32, assignedVertex, assignedEdge *bitset.BitSet, n int, x *uint32) bool {
	for candidate := *x; candidate < uint32(n); candidate++ {
		ok := true
		for _, eIdx := range critAdj[v] {
			u := edges[eIdx].other(v)
			if !assignedVertex.Test(uint(u)) {
				continue
			}
			sum := g[u] + candidate
			if sum >= uint32(n) || assignedEdge.Test(uint(sum)) {
				ok = false
				break
			}
		}
		if !ok {
			continue
		}

		g[v] = candidate
		assignedVertex.Set(uint(v))
		for _, eIdx := range critAdj[v] {
			u := edges[eIdx].other(v)
			if assignedVertex.Test(uint(u)) {
				assignedEdge.Set(uint(g[u] + candidate))
			}
		}
		*x = candidate + 1
		return true
	}
	return false
}

// assignNonCritical covers every vertex left unassigned after the critical
// pass: BFS out from the assigned frontier (and, once that's exhausted,
// from any remaining unvisited component roots - isolated chains with no
// critical vertex of their own), handing each newly-visited vertex the
// lowest still-free edge index.
func assignNonCritical(adj [][]int, edges []bmzEdge, g []uint32, assignedVertex, assignedEdge *bitset.BitSet, bmzN, n int) {
	lowFree := 0
	nextFreeEdge := func() uint32 {
		for assignedEdge.Test(uint(lowFree)) {
			lowFree++
		}
		e := uint32(lowFree)
		assignedEdge.Set(uint(lowFree))
		lowFree++
		return e
	}

	queue := make([]int, 0, bmzN)
	for v := 0; v < bmzN; v++ {
		if assignedVertex.Test(uint(v)) {
			queue = append(queue, v)
		}
	}

	head := 0
	rootScan := 0
	for {
		for head < len(queue) {
			v := queue[head]
			head++
			for _, eIdx := range adj[v] {
				w := edges[eIdx].other(v)
				if assignedVertex.Test(uint(w)) {
					continue
				}
				nextEdge := nextFreeEdge()
				g[w] = nextEdge - g[v]
				assignedVertex.Set(uint(w))
				queue = append(queue, w)
			}
		}

		found := false
		for ; rootScan < bmzN; rootScan++ {
			if len(adj[rootScan]) > 0 && !assignedVertex.Test(uint(rootScan)) {
				root := rootScan
				rootScan++
				// A fresh component root has no assigned neighbour yet, so
				// its g-value doesn't correspond to any edge - only the
				// edges walked out of it below claim real slots.
				g[root] = 0
				assignedVertex.Set(uint(root))
				queue = append(queue, root)
				found = true
				break
			}
		}
		if !found {
			break
		}
	}
}
