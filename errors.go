// errors.go - public errors exposed by mph
//
// Adapted from errors.go, (c) Sudhi Herle 2018, github.com/opencoff/go-mph
//
// License GPLv2
//
// This software does not come with any express or implied
// warranty; it is provided "as is". No claim is made to its
// suitability for any purpose.

package mph

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument is returned for an out-of-range parameter: a slack
	// factor c < 1.0 or maxAttempts < 1 passed to MinimizedWithBMZ, or a key
	// outside the domain passed to a container's Add/Put (and the map's
	// other keyed writes). Nil arguments and negative counts, such as a
	// negative maxSeedAttempts, are not checked and do not produce it.
	ErrInvalidArgument = errors.New("mph: invalid argument")

	// ErrPerfectionFailure is returned when the randomized search for a
	// perfect (or minimal perfect) hash exhausts its attempt budget, or
	// when a serializer is proven non-injective after the grace window.
	ErrPerfectionFailure = errors.New("mph: unable to construct perfect hash")

	// ErrContainerIntegrity is returned when a caller attempts to store a
	// nil value in a container that forbids nils. Immutable set views have
	// no mutating methods, so mutation through them cannot be attempted.
	ErrContainerIntegrity = errors.New("mph: container integrity violation")
)

// perfectionFailure wraps ErrPerfectionFailure with a short, human readable
// reason, per spec: "Carries a short human-readable reason."
type perfectionFailure struct {
	reason string
}

func (e *perfectionFailure) Error() string {
	return fmt.Sprintf("mph: %s", e.reason)
}

func (e *perfectionFailure) Unwrap() error {
	return ErrPerfectionFailure
}

func newPerfectionFailure(format string, args ...interface{}) error {
	return &perfectionFailure{reason: fmt.Sprintf(format, args...)}
}
