// perfectionist.go - Perfectionist[T]: randomized search for a perfect hash
//
// Grounded on chd.go's Freeze(): a seed-retry loop that abandons and retries
// on failure, generalized from "search per-bucket for a non-colliding seed"
// to "search the whole domain for an injective seed."

package mph

// Perfectionist runs the randomized search for a perfect hash over a
// PerfectDomain.
type Perfectionist[T any] struct {
	domain          *PerfectDomain[T]
	maxSeedAttempts int
	rng             Rng
}

// AssumedPerfect returns a Perfect wrapping hasher without verifying it -
// the caller vouches for injectivity.
func (p *Perfectionist[T]) AssumedPerfect(hasher Hasher[T]) *Perfect[T] {
	return &Perfect[T]{hasher: hasher, domain: p.domain, rng: p.rng}
}

// MaybePerfect verifies hasher and, if it is perfect over the domain,
// returns a Perfect wrapping it.
func (p *Perfectionist[T]) MaybePerfect(hasher Hasher[T]) (*Perfect[T], bool) {
	if p.domain.IsPerfect(hasher) {
		return &Perfect[T]{hasher: hasher, domain: p.domain, rng: p.rng}, true
	}
	return nil, false
}

// Perfect runs the randomized seed search using the library's default
// 64-bit siphash-backed hash family composed with ser.
func (p *Perfectionist[T]) Perfect(ser Serializer[T]) (*Perfect[T], error) {
	return p.PerfectWith(ser, NewHasher[T](ser, 64))
}

// PerfectWith runs the randomized seed search starting from an
// attempt-0 candidate of base composed with ser, and seeded variants of
// base thereafter. Fails with ErrPerfectionFailure if maxSeedAttempts is
// exhausted, or earlier if ser is proven non-injective after two failures.
func (p *Perfectionist[T]) PerfectWith(ser Serializer[T], base Hasher[T]) (*Perfect[T], error) {
	for i := 0; i < p.maxSeedAttempts; i++ {
		var candidate Hasher[T]
		if i == 0 {
			candidate = base
		} else {
			candidate = base.WithSeed(p.rng.Uint64())
		}

		if p.domain.IsPerfect(candidate) {
			return &Perfect[T]{hasher: candidate, domain: p.domain, rng: p.rng}, nil
		}

		if i == 1 {
			if !p.domain.IsInjective(ser) {
				return nil, newPerfectionFailure("serializer not injective")
			}
		}
	}

	return nil, newPerfectionFailure("unable to find hash function after %d attempts", p.maxSeedAttempts)
}
