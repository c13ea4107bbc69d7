package portal

import "errors"

// Sentinel errors returned by portal operations. Callers match them with
// errors.Is; an empty result is never reported through these.
var (
	// ErrUnresolvableLocation means a postal code could not be mapped to a
	// reference coordinate, either because it is malformed or because its
	// forward sortation area is outside the supported region.
	ErrUnresolvableLocation = errors.New("unresolvable location")

	// ErrInvalidYear means a requested archive year is outside the set of
	// years the dataset supports.
	ErrInvalidYear = errors.New("invalid year")
)
