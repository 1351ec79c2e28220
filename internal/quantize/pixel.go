package quantize

import (
	"fmt"
)

// Pixel is a single color sample.
//
// R, G and B are nominally 0-255 but are not validated; producers are
// responsible for the range. X and Y record where the sample came from and are
// ignored by Equal and by the JSON encoding.
type Pixel struct {
	R int `json:"r"` // Red component
	G int `json:"g"` // Green component
	B int `json:"b"` // Blue component
	X int `json:"-"` // Source column (0-based)
	Y int `json:"-"` // Source row (0-based)
}

// Equal reports whether p and o have the same color. Coordinates are ignored.
func (p Pixel) Equal(o Pixel) bool {
	return p.R == o.R && p.G == o.G && p.B == o.B
}

// Spread returns max(R,G,B) - min(R,G,B), a cheap stand-in for chroma.
func (p Pixel) Spread() int {
	return max(p.R, p.G, p.B) - min(p.R, p.G, p.B)
}

// Luminance returns the BT.709 weighted brightness of p.
func (p Pixel) Luminance() float64 {
	return 0.2126*float64(p.R) + 0.7152*float64(p.G) + 0.0722*float64(p.B)
}

// Hex returns p as "#RRGGBB". Channels outside 0-255 are clamped first.
func (p Pixel) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", clamp8(p.R), clamp8(p.G), clamp8(p.B))
}

// String implements fmt.Stringer.
func (p Pixel) String() string {
	return fmt.Sprintf("rgb(%d,%d,%d)", p.R, p.G, p.B)
}

// Lighter returns p with every channel scaled up by percent and clamped to 0-255.
// Lighter(20) multiplies each channel by 1.2.
func (p Pixel) Lighter(percent float64) Pixel {
	return p.scale(1 + percent/100)
}

// Darker returns p with every channel scaled down by percent and clamped to 0-255.
func (p Pixel) Darker(percent float64) Pixel {
	return p.scale(1 - percent/100)
}

func (p Pixel) scale(factor float64) Pixel {
	p.R = clamp8(int(float64(p.R) * factor))
	p.G = clamp8(int(float64(p.G) * factor))
	p.B = clamp8(int(float64(p.B) * factor))
	return p
}

func clamp8(v int) int {
	return min(255, max(0, v))
}
