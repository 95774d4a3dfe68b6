// hasher.go - the Hasher[T] collaborator and its default, siphash-backed family
//
// Hasher maps a key to an integer in a declared range. Keys here are
// arbitrary T rather than pre-hashed uint64s, so a Hasher[T] composes a
// Serializer[T] with a seeded keyed hash. The seeded family is
// siphash-2-4, a keyed, salted hash - a murmur3-style family keyed by
// 64-bit seeds.

package mph

import (
	"math/big"

	"github.com/dchest/siphash"
	"github.com/opencoff/go-fasthash"
)

// Hasher maps values of type T to integers in a declared range. Two distinct
// values are not guaranteed to hash to distinct outputs - that's exactly
// what PerfectDomain.IsPerfect verifies for a particular domain.
type Hasher[T any] interface {
	// Hash returns v's hash, in [0, Size()), or any uint64 when Size() is 0.
	Hash(v T) uint64

	// BigHash returns a full precision hash of v, used by PerfectDomain
	// when Bits() exceeds the dense-bitset threshold.
	BigHash(v T) *big.Int

	// Bits reports the range width in bits when the range is a power of
	// two, or 0 when Size() must be consulted directly.
	Bits() int

	// Size reports the exact number of distinct values Hash can produce, or
	// 0 when the range is the full 64-bit space.
	Size() uint64

	// WithSeed returns a new Hasher keyed by seed; range is unchanged.
	WithSeed(seed uint64) Hasher[T]
}

// seededHasher is the default Hasher[T]: a Serializer[T] composed with a
// siphash-2-4 keyed hash.
type seededHasher[T any] struct {
	ser  Serializer[T]
	seed uint64
	bits int
}

// NewHasher returns the unseeded (seed 0) default Hasher[T] over a range of
// 2^bits values, composed with ser. This is the default-hash check
// (the i==0 attempt in Perfectionist's retry loop).
func NewHasher[T any](ser Serializer[T], bits int) Hasher[T] {
	return &seededHasher[T]{ser: ser, bits: bits}
}

func (h *seededHasher[T]) Bits() int   { return h.bits }
func (h *seededHasher[T]) Size() uint64 {
	if h.bits >= 64 {
		return 0 // caller must treat this as "no practical bound"
	}
	return uint64(1) << uint(h.bits)
}

func (h *seededHasher[T]) WithSeed(seed uint64) Hasher[T] {
	return &seededHasher[T]{ser: h.ser, seed: seed, bits: h.bits}
}

func (h *seededHasher[T]) buf(v T) []byte {
	var sink byteSink
	// serialization failures are not expected for well-formed serializers;
	// treat them as a bug, not a recoverable error, matching the contract
	// that Serialize only fails for I/O errors and byteSink never errors.
	if err := h.ser.Serialize(v, &sink); err != nil {
		panic("mph: serializer failed writing to in-memory sink: " + err.Error())
	}
	return sink.Bytes()
}

func (h *seededHasher[T]) Hash(v T) uint64 {
	b := h.buf(v)
	raw := siphash.Hash(h.seed, ^h.seed, b)
	sz := h.Size()
	if sz == 0 {
		return raw
	}
	if isPowerOfTwo(sz) {
		return raw & (sz - 1)
	}
	return raw % sz
}

func (h *seededHasher[T]) BigHash(v T) *big.Int {
	b := h.buf(v)
	hi := siphash.Hash(h.seed, ^h.seed, b)
	lo := siphash.Hash(h.seed+1, ^h.seed-1, b)

	var wide [16]byte
	for i := 0; i < 8; i++ {
		wide[i] = byte(hi >> (56 - 8*i))
		wide[8+i] = byte(lo >> (56 - 8*i))
	}
	return new(big.Int).SetBytes(wide[:])
}

func isPowerOfTwo(n uint64) bool {
	return n != 0 && n&(n-1) == 0
}

// fastHasher is a second Hasher[T] family built on go-fasthash instead of
// siphash: cheaper and non-cryptographic. Perfectionist.PerfectWith accepts
// either family as the base hasher - a caller who doesn't need siphash's
// keyed-PRF guarantees can search with this one instead.
type fastHasher[T any] struct {
	ser  Serializer[T]
	seed uint64
	bits int
}

// NewFastHasher returns a go-fasthash-backed Hasher[T] over a range of
// 2^bits values, composed with ser.
func NewFastHasher[T any](ser Serializer[T], bits int) Hasher[T] {
	return &fastHasher[T]{ser: ser, bits: bits}
}

func (h *fastHasher[T]) Bits() int { return h.bits }

func (h *fastHasher[T]) Size() uint64 {
	if h.bits >= 64 {
		return 0
	}
	return uint64(1) << uint(h.bits)
}

func (h *fastHasher[T]) WithSeed(seed uint64) Hasher[T] {
	return &fastHasher[T]{ser: h.ser, seed: seed, bits: h.bits}
}

func (h *fastHasher[T]) buf(v T) []byte {
	var sink byteSink
	if err := h.ser.Serialize(v, &sink); err != nil {
		panic("mph: serializer failed writing to in-memory sink: " + err.Error())
	}
	return sink.Bytes()
}

func (h *fastHasher[T]) Hash(v T) uint64 {
	raw := fasthash.Hash64(h.seed, h.buf(v))
	sz := h.Size()
	if sz == 0 {
		return raw
	}
	if isPowerOfTwo(sz) {
		return raw & (sz - 1)
	}
	return raw % sz
}

func (h *fastHasher[T]) BigHash(v T) *big.Int {
	b := h.buf(v)
	hi := fasthash.Hash64(h.seed, b)
	lo := fasthash.Hash64(h.seed+0x9e3779b97f4a7c15, b)

	var wide [16]byte
	for i := 0; i < 8; i++ {
		wide[i] = byte(hi >> (56 - 8*i))
		wide[8+i] = byte(lo >> (56 - 8*i))
	}
	return new(big.Int).SetBytes(wide[:])
}

// mix is the compression function used by go-fasthash/bbhash-style integer
// hashing; kept for BMZ's edge hash (bmz.go), which hashes already-small
// uint64 values rather than arbitrary serialized byte slices.
func mix(h uint64) uint64 {
	h ^= h >> 23
	h *= 0x2127599bf4325c37
	h ^= h >> 47
	return h
}
