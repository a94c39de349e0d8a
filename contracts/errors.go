package contracts

import "errors"

// Sentinel errors for the boundaries around the engine. The computation core
// itself never returns errors; these are raised by request validation and
// lookups performed on behalf of API callers.
var (
	// Lookup errors
	ErrDeveloperNotFound  = errors.New("developer not found")
	ErrModelNotFound      = errors.New("model not found")
	ErrComparisonNotFound = errors.New("comparison not found")

	// Selection errors
	ErrUnknownHardware     = errors.New("unknown hardware class")
	ErrUnsupportedCapacity = errors.New("hardware capacity not offered")
	ErrUnknownTrainingMode = errors.New("unknown training mode")

	// Input validation errors
	ErrInvalidInput  = errors.New("invalid input: nil or malformed")
	ErrEmptyWorkload = errors.New("workload must contain at least one entry")
)
