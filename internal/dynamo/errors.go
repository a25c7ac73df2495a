package dynamo

import "errors"

// Domain errors for trajectory operations.
var (
	// ErrUnknownProjectile indicates a catalog id that is not in the fixed set.
	ErrUnknownProjectile = errors.New("dynamo: unknown projectile")

	// ErrInvalidParameter indicates a launch parameter or projectile property
	// that cannot be clamped into a usable value (NaN, Inf, negative mass...).
	ErrInvalidParameter = errors.New("dynamo: invalid parameter")

	// ErrNonFinite indicates integration produced NaN or Inf.
	ErrNonFinite = errors.New("dynamo: non-finite state (NaN or Inf detected)")
)
