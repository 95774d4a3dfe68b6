// doc.go - top level documentation
//
// Adapted from doc.go, (c) Sudhi Herle 2018, github.com/opencoff/go-mph
//
// License GPLv2
//
// This software does not come with any express or implied
// warranty; it is provided "as is". No claim is made to its
// suitability for any purpose.

// Package mph builds perfect and minimal perfect hash functions (MPHFs) over
// a finite, caller-supplied domain of keys, and hands back compact keyed
// containers that exploit the resulting injective hash to allocate exactly
// one storage slot per key.
//
// A PerfectDomain wraps the key set and can verify whether a candidate hash
// is perfect over it (IsPerfect) or whether a serializer is injective
// (IsInjective). A Perfectionist runs a randomized search over a seeded hash
// family to find a perfect hash; the result (a Perfect) can be minimized via
// BMZ (Botelho, Menoyo, Ziviani - a bipartite hash-graph construction,
// https://cmph.sourceforge.net/papers/wea07.pdf) into a Minimal, whose range
// is exactly [0, n). MinimalSet and MinimalMap are built on top of a Minimal
// and give O(1) membership and value lookup backed by a dense array sized
// for exactly n keys.
//
// Construction is single-threaded by contract: there is no concurrent
// mutation of a PerfectDomain, Perfectionist, Perfect, or Minimal, and no
// incremental update of the domain once built.
package mph
