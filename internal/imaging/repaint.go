package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"

	"github.com/anthonynsimon/bild/imgio"

	"github.com/ironsheep/swatch/internal/quantize"
)

// Repaint draws a width x height canvas where every member of every bucket
// is painted with its bucket's mean color. Coordinates not covered by any
// bucket stay transparent.
func Repaint(width, height int, buckets []quantize.Bucket) *image.NRGBA {
	canvas := image.NewNRGBA(image.Rect(0, 0, width, height))
	bounds := canvas.Bounds()

	for _, b := range buckets {
		c := color.NRGBA{
			R: uint8(min(255, max(0, b.Mean.R))),
			G: uint8(min(255, max(0, b.Mean.G))),
			B: uint8(min(255, max(0, b.Mean.B))),
			A: 255,
		}
		for _, m := range b.Members {
			if !image.Pt(m.X, m.Y).In(bounds) {
				continue
			}
			canvas.SetNRGBA(m.X, m.Y, c)
		}
	}

	return canvas
}

// SavePNG writes img to path as a PNG file, replacing any existing file.
func SavePNG(path string, img image.Image) error {
	if err := imgio.Save(path, img, imgio.PNGEncoder()); err != nil {
		return fmt.Errorf("failed to save image: %w", err)
	}
	return nil
}

// EncodePNGBase64 encodes img as PNG and returns it base64 encoded.
func EncodePNGBase64(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := imgio.PNGEncoder()(&buf, img); err != nil {
		return "", fmt.Errorf("failed to encode image: %w", err)
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
