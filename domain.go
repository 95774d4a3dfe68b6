// domain.go - PerfectDomain[T]: the finite key collection a hash is built
// over, plus perfection/injectivity checks.
//
// Grounded on a builder-constructor idiom (NewChdBuilder/NewBBHashBuilder
// return a builder interface with Add/Freeze); the domain here is frozen
// up front instead - no incremental updates once built - so the
// constructor shape collapses to a single DomainOver* factory family
// rather than an Add-then-Freeze builder.

package mph

import (
	"math/big"

	"github.com/bits-and-blooms/bitset"
)

// PerfectDomain holds a finite, twice-traversable collection of keys and the
// checks and factories built on top of it. Once created it is immutable:
// frozen for the lifetime of any hash built over it.
type PerfectDomain[T any] struct {
	factory  IteratorFactory[T]
	typeName string
	n        int
	sized    bool
}

// DomainOver builds a PerfectDomain from a slice. The slice is not copied;
// mutating it after construction is the caller's responsibility to avoid.
func DomainOver[T any](items []T) *PerfectDomain[T] {
	return &PerfectDomain[T]{
		factory:  SliceFactory(items),
		n:        len(items),
		sized:    true,
	}
}

// DomainOverType is DomainOver with an optional element-type tag attached.
func DomainOverType[T any](items []T, typeName string) *PerfectDomain[T] {
	d := DomainOver(items)
	d.typeName = typeName
	return d
}

// DomainOverFactory builds a PerfectDomain from a lazy, multiply-callable
// iterator factory instead of a slice. Size() then requires one linear
// scan, cached thereafter.
func DomainOverFactory[T any](factory IteratorFactory[T], typeName string) *PerfectDomain[T] {
	return &PerfectDomain[T]{factory: factory, typeName: typeName}
}

// Values returns the factory backing this domain, unchanged.
func (d *PerfectDomain[T]) Values() IteratorFactory[T] {
	return d.factory
}

// Type returns the element-type tag, or "" if none was supplied.
func (d *PerfectDomain[T]) Type() string {
	return d.typeName
}

// Size returns n, the number of keys in the domain, computing it via a
// single linear scan the first time it's needed for a lazy source.
func (d *PerfectDomain[T]) Size() int {
	if !d.sized {
		it := d.factory()
		n := 0
		for {
			if _, ok := it.Next(); !ok {
				break
			}
			n++
		}
		d.n = n
		d.sized = true
	}
	return d.n
}

// IsPerfect reports whether hasher is injective over this domain.
//
// When hasher.Bits() is small (<=16) a dense bitset sized 2^bits is used:
// O(2^bits) memory, O(n) time. Otherwise each key's BigHash is fed to a
// UniquenessChecker sized for the big-hash byte width.
func (d *PerfectDomain[T]) IsPerfect(hasher Hasher[T]) bool {
	if hasher.Bits() > 0 && hasher.Bits() <= 16 {
		return d.isPerfectDense(hasher)
	}
	return d.isPerfectBig(hasher)
}

func (d *PerfectDomain[T]) isPerfectDense(hasher Hasher[T]) bool {
	seen := bitset.New(uint(hasher.Size()))
	it := d.factory()
	for {
		v, ok := it.Next()
		if !ok {
			break
		}
		h := uint(hasher.Hash(v))
		if seen.Test(h) {
			return false
		}
		seen.Set(h)
	}
	return true
}

func (d *PerfectDomain[T]) isPerfectBig(hasher Hasher[T]) bool {
	// (rangeBits+31)/32 * 4 + 11 bytes per hash.
	bigHashBytes := (hasher.Bits()+31)/32*4 + 11
	eq := Equivalence[*big.Int]{
		Hash:  func(v *big.Int) uint64 { return v.Uint64() },
		Equal: func(a, b *big.Int) bool { return a.Cmp(b) == 0 },
	}
	checker := NewUniquenessChecker[*big.Int](eq, d.Size(), bigHashBytes)

	factory := func() Iterator[*big.Int] {
		src := d.factory()
		return &bigHashIterator[T]{src: src, hasher: hasher}
	}

	return checker.AllDistinct(factory)
}

type bigHashIterator[T any] struct {
	src    Iterator[T]
	hasher Hasher[T]
}

func (it *bigHashIterator[T]) Next() (*big.Int, bool) {
	v, ok := it.src.Next()
	if !ok {
		return nil, false
	}
	return it.hasher.BigHash(v), true
}

// IsInjective reports whether ser produces a distinct byte sequence for
// every distinct key in the domain.
func (d *PerfectDomain[T]) IsInjective(ser Serializer[T]) bool {
	eq := Equivalence[string]{
		Hash: func(v string) uint64 {
			var h uint64 = 14695981039346656037
			for i := 0; i < len(v); i++ {
				h ^= uint64(v[i])
				h *= 1099511628211
			}
			return h
		},
		Equal: func(a, b string) bool { return a == b },
	}
	checker := NewUniquenessChecker[string](eq, d.Size(), 50)

	factory := func() Iterator[string] {
		src := d.factory()
		return &serializedIterator[T]{src: src, ser: ser}
	}
	return checker.AllDistinct(factory)
}

type serializedIterator[T any] struct {
	src Iterator[T]
	ser Serializer[T]
}

func (it *serializedIterator[T]) Next() (string, bool) {
	v, ok := it.src.Next()
	if !ok {
		return "", false
	}
	var sink byteSink
	if err := it.ser.Serialize(v, &sink); err != nil {
		panic("mph: serializer failed writing to in-memory sink: " + err.Error())
	}
	return string(sink.Bytes()), true
}

// Using returns a Perfectionist configured with maxSeedAttempts and rng.
func (d *PerfectDomain[T]) Using(maxSeedAttempts int, rng Rng) *Perfectionist[T] {
	return &Perfectionist[T]{
		domain:          d,
		maxSeedAttempts: maxSeedAttempts,
		rng:             rng,
	}
}

// UsingDefaults returns a Perfectionist with the library's default attempt
// budget (100) and a crypto/rand-backed Rng.
func (d *PerfectDomain[T]) UsingDefaults() *Perfectionist[T] {
	return d.Using(100, CryptoRng{})
}
