package quantize

import "errors"

// MaxDepth is the deepest split Quantize and Partition accept. 2^24 leaves is
// already far more colors than any 8-bit image can hold.
const MaxDepth = 24

var (
	// ErrEmptyInput is returned when an operation needs at least one pixel.
	ErrEmptyInput = errors.New("quantize: empty pixel collection")

	// ErrInvalidDepth is returned for a depth below 0 or above MaxDepth.
	ErrInvalidDepth = errors.New("quantize: invalid depth")

	// ErrEmptyBucket is returned when a split leaves a bucket with no pixels
	// before the target depth is reached.
	ErrEmptyBucket = errors.New("quantize: bucket emptied before target depth")
)
