package decoding

import "errors"

// Common errors. Underlying estimator failures are not classified; they
// propagate wrapped, so errors.Is still reaches the model's own error.
var (
	// ErrConfig reports an unusable engine configuration.
	ErrConfig = errors.New("invalid configuration")
	// ErrShape reports input tensors whose dimensions violate the
	// engine's contract.
	ErrShape = errors.New("invalid shape")
	// ErrCapability reports an operation the base estimator does not
	// support and no fallback applies.
	ErrCapability = errors.New("unsupported estimator capability")
)
