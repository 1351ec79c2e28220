package imaging

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// Region represents a rectangular region within an image.
//
// Coordinates follow the standard image convention:
//   - (X1, Y1) is the top-left corner (inclusive)
//   - (X2, Y2) is the bottom-right corner (exclusive)
type Region struct {
	X1 int `json:"x1"` // Left edge X coordinate (inclusive)
	Y1 int `json:"y1"` // Top edge Y coordinate (inclusive)
	X2 int `json:"x2"` // Right edge X coordinate (exclusive)
	Y2 int `json:"y2"` // Bottom edge Y coordinate (exclusive)
}

// Rect converts r to an image.Rectangle.
func (r Region) Rect() image.Rectangle {
	return image.Rect(r.X1, r.Y1, r.X2, r.Y2)
}

// CropRegion returns the part of img covered by region. A nil region returns
// img unchanged. The cropped image's bounds start at (0,0).
func CropRegion(img image.Image, region *Region) (image.Image, error) {
	if region == nil {
		return img, nil
	}

	bounds := img.Bounds()
	x1, y1, x2, y2 := region.X1, region.Y1, region.X2, region.Y2

	if x1 < bounds.Min.X || y1 < bounds.Min.Y || x2 > bounds.Max.X || y2 > bounds.Max.Y {
		return nil, fmt.Errorf("region (%d,%d)-(%d,%d) outside image bounds (%d,%d)-(%d,%d)",
			x1, y1, x2, y2, bounds.Min.X, bounds.Min.Y, bounds.Max.X, bounds.Max.Y)
	}
	if x1 >= x2 || y1 >= y2 {
		return nil, fmt.Errorf("invalid region: x1 must be < x2, y1 must be < y2")
	}

	return imaging.Crop(img, region.Rect()), nil
}

// Downscale shrinks img so neither side exceeds maxDimension, keeping the
// aspect ratio. Images already small enough, and maxDimension <= 0, return img
// unchanged.
//
// Median cut averages whole buckets, so a Lanczos-resampled copy yields nearly
// the same palette as the full image at a fraction of the sorting work.
func Downscale(img image.Image, maxDimension int) image.Image {
	if maxDimension <= 0 {
		return img
	}
	bounds := img.Bounds()
	if bounds.Dx() <= maxDimension && bounds.Dy() <= maxDimension {
		return img
	}
	return imaging.Fit(img, maxDimension, maxDimension, imaging.Lanczos)
}
