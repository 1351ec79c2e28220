package imaging

import (
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/ironsheep/swatch/internal/quantize"
)

// RGBColor represents an RGB color with 8-bit components.
type RGBColor struct {
	R uint8 `json:"r"` // Red component (0-255)
	G uint8 `json:"g"` // Green component (0-255)
	B uint8 `json:"b"` // Blue component (0-255)
}

// HSLColor represents a color in HSL (Hue, Saturation, Lightness) color space.
type HSLColor struct {
	H int `json:"h"` // Hue: 0-360 degrees (0=red, 120=green, 240=blue)
	S int `json:"s"` // Saturation: 0-100 percent (0=gray, 100=vivid)
	L int `json:"l"` // Lightness: 0-100 percent (0=black, 50=normal, 100=white)
}

// ColorResult describes one palette color in several notations.
type ColorResult struct {
	Hex       string   `json:"hex"`       // Hex format "#RRGGBB"
	RGB       RGBColor `json:"rgb"`       // RGB components
	HSL       HSLColor `json:"hsl"`       // HSL representation
	Luminance float64  `json:"luminance"` // BT.709 luminance (0-255)
	Spread    int      `json:"spread"`    // max(R,G,B) - min(R,G,B)
}

// DescribeColor converts a palette pixel into a ColorResult. Channels outside
// 0-255 are clamped before conversion.
func DescribeColor(p quantize.Pixel) ColorResult {
	c := colorful.Color{
		R: float64(p.R) / 255.0,
		G: float64(p.G) / 255.0,
		B: float64(p.B) / 255.0,
	}.Clamped()

	r, g, b := c.RGB255()
	h, s, l := c.Hsl()

	return ColorResult{
		Hex: strings.ToUpper(c.Hex()),
		RGB: RGBColor{R: r, G: g, B: b},
		HSL: HSLColor{
			H: int(h),
			S: int(s * 100),
			L: int(l * 100),
		},
		Luminance: p.Luminance(),
		Spread:    p.Spread(),
	}
}

// DescribeColors applies DescribeColor to every pixel, keeping order.
func DescribeColors(pixels []quantize.Pixel) []ColorResult {
	out := make([]ColorResult, len(pixels))
	for i, p := range pixels {
		out[i] = DescribeColor(p)
	}
	return out
}
