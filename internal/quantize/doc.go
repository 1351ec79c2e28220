// Package quantize reduces a collection of pixels to a small palette using the
// median-cut algorithm.
//
// The package is pure computation: it performs no I/O, holds no global state and
// never retains the slices it is given. Image decoding and result rendering live
// in the imaging and render packages.
//
// # Pipeline
//
// A typical caller runs three stages:
//
//	palette, err := quantize.Quantize(pixels, 4) // 2^4 = 16 colors
//	if err != nil {
//	    return err
//	}
//	quantize.OrderByLuminance(palette)           // brightest first
//	primary, err := quantize.MostVariant(palette)
//
// # Median Cut
//
// Each bucket is sorted on the channel with the widest value range (see
// WidestChannel) and cut at index len/2, so an odd-sized bucket gives its
// extra pixel to the right half. Depth counts upward from 0; a bucket at
// maxDepth is averaged with truncating integer division. Leaves are emitted
// left to right, so the result order is stable for a given input order.
//
// Partition is the coordinate-tracking form of the same algorithm. It keeps
// every original sample (with its X and Y) next to the mean color of the leaf
// it fell into, which is what repainting an image needs.
//
// # Errors
//
// Empty input, a negative or oversized depth, and a bucket that runs out of
// pixels before reaching maxDepth are reported as errors rather than producing
// averages over zero pixels. Use errors.Is with ErrEmptyInput, ErrInvalidDepth
// and ErrEmptyBucket.
package quantize
