package imaging

import (
	"image"
	"image/color"
	"math/bits"

	"github.com/ironsheep/swatch/internal/quantize"
)

// ExtractPixels flattens img into row-major samples.
//
// Channels are read as non-premultiplied 8-bit values and alpha is dropped.
// Each sample's X and Y are relative to img.Bounds().Min, so the first pixel
// is always (0,0).
func ExtractPixels(img image.Image) []quantize.Pixel {
	bounds := img.Bounds()
	pixels := make([]quantize.Pixel, 0, bounds.Dx()*bounds.Dy())

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			pixels = append(pixels, quantize.Pixel{
				R: int(c.R),
				G: int(c.G),
				B: int(c.B),
				X: x - bounds.Min.X,
				Y: y - bounds.Min.Y,
			})
		}
	}

	return pixels
}

// SupportedDepth returns the deepest median cut that pixelCount samples can
// fill without an empty bucket, capped at quantize.MaxDepth.
func SupportedDepth(pixelCount int) int {
	if pixelCount <= 1 {
		return 0
	}
	return min(bits.Len(uint(pixelCount))-1, quantize.MaxDepth)
}
