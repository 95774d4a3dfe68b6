// uniqueness.go - UniquenessChecker: two-pass Bloom-assisted duplicate
// detection over an arbitrary (twice-traversable) iterable.
//
// Grounded on other_examples/083dbfea_apache-datasketches-go__filters-
// bloom_filter.go.go for the Kirsch-Mitzenmacher double-hashing scheme
// (computeHashes / getHashIndex), adapted from xxhash-over-bytes to
// xxhash-over-the-item's-own-hash so it works for any T with an
// Equivalence. The underlying bit array is bits-and-blooms/bitset.

package mph

import (
	"encoding/binary"
	"math"

	"github.com/bits-and-blooms/bitset"
	"github.com/cespare/xxhash/v2"
)

// Equivalence supplies the hash and equality an UniquenessChecker needs for
// type T. Hash need not be perfect or even especially strong - it only
// feeds the Bloom filter's double-hashing step; Equal is authoritative.
type Equivalence[T any] struct {
	Hash  func(v T) uint64
	Equal func(a, b T) bool
}

// UniquenessChecker reports whether an iterable yields only distinct items,
// in O(k) auxiliary memory where k is the count of candidate duplicates,
// plus a fixed-size Bloom filter.
type UniquenessChecker[T any] struct {
	eq   Equivalence[T]
	m    uint64 // bloom filter size in bits
	k    int    // number of hash rounds
	seed uint64
}

// NewUniquenessChecker builds a checker sized for n expected items averaging
// avgItemBytes bytes each, using the standard Bloom-filter sizing formula:
//
//	m = max(256, n * ln(8*B*ln^2(2)) / ln(2))
//	k = max(1, round(ln(2) * m / n))
func NewUniquenessChecker[T any](eq Equivalence[T], n int, avgItemBytes int) *UniquenessChecker[T] {
	if n <= 0 {
		n = 1
	}
	if avgItemBytes <= 0 {
		avgItemBytes = 1
	}

	ln2 := math.Ln2
	arg := 8 * float64(avgItemBytes) * ln2 * ln2
	var m uint64
	if arg > 1 {
		x := float64(n) * math.Log(arg) / ln2
		if x > 0 {
			m = uint64(math.Ceil(x))
		}
	}
	if m < 256 {
		m = 256
	}

	k := int(math.Round(ln2 * float64(m) / float64(n)))
	if k < 1 {
		k = 1
	}

	return &UniquenessChecker[T]{eq: eq, m: m, k: k, seed: rand64()}
}

// AllDistinct reports whether every item produced by factory is distinct
// under the checker's Equivalence. factory must be callable twice and
// produce the same sequence both times.
func (u *UniquenessChecker[T]) AllDistinct(factory IteratorFactory[T]) bool {
	filter := bitset.New(uint(u.m))
	candidates := make(map[uint64][]T)

	// Pass 1: insert into the Bloom filter; anything that looks already
	// present becomes a candidate duplicate.
	it := factory()
	for {
		v, ok := it.Next()
		if !ok {
			break
		}

		h0, h1 := u.bloomHashes(v)
		alreadyIn := true
		for i := 0; i < u.k; i++ {
			idx := u.index(h0, h1, i)
			if !filter.Test(idx) {
				alreadyIn = false
				filter.Set(idx)
			}
		}

		if !alreadyIn {
			continue
		}

		key := u.eq.Hash(v)
		bucket := candidates[key]
		for _, c := range bucket {
			if u.eq.Equal(c, v) {
				return false
			}
		}
		candidates[key] = append(bucket, v)
	}

	if len(candidates) == 0 {
		return true
	}

	// Pass 2: re-traverse, checking only items that are plausibly
	// duplicates against a witness set built from those candidates.
	witness := make(map[uint64][]T)
	it = factory()
	for {
		v, ok := it.Next()
		if !ok {
			break
		}

		key := u.eq.Hash(v)
		bucket, isCandidate := candidates[key]
		if !isCandidate {
			continue
		}
		isCandidateItem := false
		for _, c := range bucket {
			if u.eq.Equal(c, v) {
				isCandidateItem = true
				break
			}
		}
		if !isCandidateItem {
			continue
		}

		wbucket := witness[key]
		for _, w := range wbucket {
			if u.eq.Equal(w, v) {
				return false
			}
		}
		witness[key] = append(wbucket, v)
	}

	return true
}

// bloomHashes computes the Kirsch-Mitzenmacher base pair for v, following
// apache-datasketches' computeHashes: hash the item's own hash value, then
// re-hash using the first digest as a seed.
func (u *UniquenessChecker[T]) bloomHashes(v T) (h0, h1 uint64) {
	var buf [16]byte
	binary.LittleEndian.PutUint64(buf[0:8], u.seed)
	binary.LittleEndian.PutUint64(buf[8:16], u.eq.Hash(v))

	h := xxhash.New()
	h.Write(buf[:])
	h0 = h.Sum64()

	var buf2 [8]byte
	binary.LittleEndian.PutUint64(buf2[:], h0)
	h.Reset()
	h.Write(buf2[:])
	h.Write(buf[8:16])
	h1 = h.Sum64()
	return h0, h1
}

// index computes the i-th hash location using double hashing, matching
// apache-datasketches' getHashIndex formula.
func (u *UniquenessChecker[T]) index(h0, h1 uint64, i int) uint {
	return uint(((h0 + uint64(i)*h1) >> 1) % u.m)
}
