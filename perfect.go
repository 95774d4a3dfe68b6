// perfect.go - Perfect[T]: a verified perfect hash over a domain, and the
// entry point into BMZ minimization.

package mph

import (
	"fmt"
	"io"
)

// Perfect pairs a Hasher known to be injective over a PerfectDomain. Values
// of this type are produced only by Perfectionist (verified or assumed).
type Perfect[T any] struct {
	hasher Hasher[T]
	domain *PerfectDomain[T]
	rng    Rng
}

// Hasher returns the underlying perfect hash.
func (p *Perfect[T]) Hasher() Hasher[T] {
	return p.hasher
}

// Domain returns the domain this hash was verified (or assumed) over.
func (p *Perfect[T]) Domain() *PerfectDomain[T] {
	return p.domain
}

// Hash returns v's hash under the underlying perfect hasher.
func (p *Perfect[T]) Hash(v T) uint64 {
	return p.hasher.Hash(v)
}

// Minimized runs BMZ with the library defaults (maxAttempts=100, c=1.15)
// to produce a Minimal over this Perfect's domain.
func (p *Perfect[T]) Minimized() (*Minimal[T], error) {
	return p.MinimizedWithBMZ(100, 1.15)
}

// MinimizedWithBMZ runs BMZ with an explicit attempt budget and slack
// factor c. Returns ErrInvalidArgument if maxAttempts < 1 or
// c < 1.0.
func (p *Perfect[T]) MinimizedWithBMZ(maxAttempts int, c float64) (*Minimal[T], error) {
	if maxAttempts < 1 {
		return nil, fmt.Errorf("%w: maxAttempts must be >= 1, got %d", ErrInvalidArgument, maxAttempts)
	}
	if c < 1.0 {
		return nil, fmt.Errorf("%w: c must be >= 1.0, got %f", ErrInvalidArgument, c)
	}

	rng := p.rng
	if rng == nil {
		rng = CryptoRng{}
	}

	mh, err := buildBMZ(p.domain, p.hasher, maxAttempts, c, rng)
	if err != nil {
		return nil, err
	}

	return &Minimal[T]{
		hasher: mh,
		domain: p.domain,
	}, nil
}

// DumpMeta writes a one-line human-readable summary of this perfect hash
// (hasher family, range width, domain size) to w, for diagnostics. This is
// not a wire format.
func (p *Perfect[T]) DumpMeta(w io.Writer) {
	var family string
	switch p.hasher.(type) {
	case *seededHasher[T]:
		family = "siphash"
	case *fastHasher[T]:
		family = "fasthash"
	default:
		family = "custom"
	}
	fmt.Fprintf(w, "Perfect: %s hasher, %d bits, %d keys\n", family, p.hasher.Bits(), p.domain.Size())
}
