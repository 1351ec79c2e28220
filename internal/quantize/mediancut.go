package quantize

import (
	"cmp"
	"fmt"
	"slices"
)

// Bucket is one leaf of a median-cut partition.
type Bucket struct {
	Mean    Pixel   `json:"mean"` // Truncated average color of Members
	Members []Pixel `json:"-"`    // Original samples, coordinates included
	Size    int     `json:"size"` // len(Members)
}

// span is a pending [lo, hi) slice of the index arena at a given depth.
type span struct {
	lo, hi int
	depth  int
}

// Quantize reduces pixels to 2^maxDepth representative colors.
//
// Parameters:
//   - pixels: Samples to reduce. The slice is not modified.
//   - maxDepth: Number of times every bucket is halved. 0 returns the mean of
//     all pixels.
//
// Returns:
//   - []Pixel: Leaf means in left-to-right partition order. Coordinates are zero.
//   - error: ErrEmptyInput, ErrInvalidDepth or ErrEmptyBucket (wrapped).
//
// # Buckets Smaller Than the Depth
//
// Every leaf must hold at least one pixel, so len(pixels) must be at least
// 2^maxDepth. Inputs whose size is not a power of two are fine; the uneven
// halves simply drift in size as the recursion deepens.
func Quantize(pixels []Pixel, maxDepth int) ([]Pixel, error) {
	palette := make([]Pixel, 0, leafCapacity(len(pixels), maxDepth))
	err := cut(pixels, maxDepth, func(members []int) {
		palette = append(palette, mean(pixels, members))
	})
	if err != nil {
		return nil, err
	}
	return palette, nil
}

// Partition runs the same median cut as Quantize but keeps, for each leaf, the
// original pixels that were averaged into it. Buckets are returned in the same
// order as the colors from Quantize.
func Partition(pixels []Pixel, maxDepth int) ([]Bucket, error) {
	buckets := make([]Bucket, 0, leafCapacity(len(pixels), maxDepth))
	err := cut(pixels, maxDepth, func(members []int) {
		b := Bucket{
			Mean:    mean(pixels, members),
			Members: make([]Pixel, len(members)),
			Size:    len(members),
		}
		for i, idx := range members {
			b.Members[i] = pixels[idx]
		}
		buckets = append(buckets, b)
	})
	if err != nil {
		return nil, err
	}
	return buckets, nil
}

// cut walks the median-cut tree depth first, left before right, and calls
// leaf with the arena indices of every bucket at maxDepth.
//
// Splits reorder an index arena in place instead of copying sub-slices, so
// each pending span owns a disjoint window of the same backing array.
func cut(pixels []Pixel, maxDepth int, leaf func(members []int)) error {
	if len(pixels) == 0 {
		return ErrEmptyInput
	}
	if maxDepth < 0 || maxDepth > MaxDepth {
		return fmt.Errorf("%w: %d (must be 0-%d)", ErrInvalidDepth, maxDepth, MaxDepth)
	}

	arena := identity(len(pixels))
	stack := make([]span, 0, maxDepth+1)
	stack = append(stack, span{lo: 0, hi: len(arena), depth: 0})

	for len(stack) > 0 {
		s := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		members := arena[s.lo:s.hi]
		if len(members) == 0 {
			return fmt.Errorf("%w: depth %d of %d (need at least %d pixels, have %d)",
				ErrEmptyBucket, s.depth, maxDepth, 1<<maxDepth, len(pixels))
		}

		if s.depth == maxDepth {
			leaf(members)
			continue
		}

		ch := ranges(pixels, members).Widest()
		slices.SortFunc(members, func(a, b int) int {
			return cmp.Compare(ch.Value(pixels[a]), ch.Value(pixels[b]))
		})

		mid := s.lo + len(members)/2
		// Right is pushed first so the left half is expanded first.
		stack = append(stack,
			span{lo: mid, hi: s.hi, depth: s.depth + 1},
			span{lo: s.lo, hi: mid, depth: s.depth + 1},
		)
	}

	return nil
}

// mean averages the selected pixels with truncating integer division.
// members must be non-empty.
func mean(pixels []Pixel, members []int) Pixel {
	var r, g, b int
	for _, i := range members {
		r += pixels[i].R
		g += pixels[i].G
		b += pixels[i].B
	}
	n := len(members)
	return Pixel{R: r / n, G: g / n, B: b / n}
}

func leafCapacity(n, maxDepth int) int {
	if maxDepth < 0 || maxDepth > MaxDepth {
		return 0
	}
	return min(n, 1<<maxDepth)
}
