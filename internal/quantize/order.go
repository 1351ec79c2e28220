package quantize

import (
	"cmp"
	"fmt"
	"math"
	"slices"
)

// OrderByLuminance sorts pixels in place, brightest first, using
// Pixel.Luminance. Pixels of equal luminance may appear in any order.
//
// Luminance of integer channels is always a real number; a NaN would mean the
// ordering is no longer total, and OrderByLuminance panics rather than
// returning a silently mis-sorted palette.
func OrderByLuminance(pixels []Pixel) {
	slices.SortFunc(pixels, func(a, b Pixel) int {
		la, lb := a.Luminance(), b.Luminance()
		if math.IsNaN(la) || math.IsNaN(lb) {
			panic(fmt.Sprintf("quantize: luminance of %v or %v is not a number", a, b))
		}
		return cmp.Compare(lb, la)
	})
}

// MostVariant returns the pixel with the largest Spread. When several pixels
// share the largest spread the earliest one wins.
//
// Returns ErrEmptyInput if pixels is empty.
func MostVariant(pixels []Pixel) (Pixel, error) {
	if len(pixels) == 0 {
		return Pixel{}, ErrEmptyInput
	}

	best := 0
	bestSpread := pixels[0].Spread()
	for i, p := range pixels[1:] {
		if s := p.Spread(); s > bestSpread {
			best, bestSpread = i+1, s
		}
	}
	return pixels[best], nil
}
