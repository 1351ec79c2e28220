package imaging

import (
	"fmt"
	"image"

	"github.com/ironsheep/swatch/internal/quantize"
)

// DefaultMaxDepth gives a 16-color palette.
const DefaultMaxDepth = 4

// PaletteOptions controls how an image is sampled before median cut.
type PaletteOptions struct {
	// MaxDepth is the number of median-cut splits; the palette has
	// 2^MaxDepth colors.
	MaxDepth int

	// Region restricts sampling to part of the image. Nil samples everything.
	Region *Region

	// MaxDimension downsizes the sampled area so neither side exceeds it.
	// 0 keeps the original resolution.
	MaxDimension int
}

// PaletteResult is a median-cut palette ready for presentation.
type PaletteResult struct {
	// Colors are the palette entries, brightest first.
	Colors []ColorResult `json:"colors"`

	// Primary is the entry with the largest channel spread.
	Primary ColorResult `json:"primary"`

	// MaxDepth echoes the depth that produced len(Colors) = 2^MaxDepth.
	MaxDepth int `json:"max_depth"`

	// SampleWidth and SampleHeight are the dimensions actually quantized,
	// after cropping and downscaling.
	SampleWidth  int `json:"sample_width"`
	SampleHeight int `json:"sample_height"`

	// Pixels holds the palette in the same order as Colors.
	Pixels []quantize.Pixel `json:"-"`

	// PrimaryPixel is the raw form of Primary.
	PrimaryPixel quantize.Pixel `json:"-"`
}

// Sample applies the region and size limits of opts to img and returns the
// image that will be quantized.
func Sample(img image.Image, opts PaletteOptions) (image.Image, error) {
	sample, err := CropRegion(img, opts.Region)
	if err != nil {
		return nil, err
	}
	return Downscale(sample, opts.MaxDimension), nil
}

// ExtractPalette runs the full palette pipeline on img: sample, median cut,
// order by luminance and pick the most variant color.
//
// Returns:
//   - *PaletteResult: 2^opts.MaxDepth colors, brightest first.
//   - error: Non-nil for an invalid region or when the sampled area cannot
//     fill every bucket (see quantize.ErrEmptyBucket).
func ExtractPalette(img image.Image, opts PaletteOptions) (*PaletteResult, error) {
	sample, err := Sample(img, opts)
	if err != nil {
		return nil, err
	}

	palette, err := quantize.Quantize(ExtractPixels(sample), opts.MaxDepth)
	if err != nil {
		return nil, fmt.Errorf("failed to quantize image: %w", err)
	}

	bounds := sample.Bounds()
	return newPaletteResult(palette, opts.MaxDepth, bounds.Dx(), bounds.Dy())
}

// newPaletteResult orders palette in place and describes it.
func newPaletteResult(palette []quantize.Pixel, maxDepth, width, height int) (*PaletteResult, error) {
	quantize.OrderByLuminance(palette)

	primary, err := quantize.MostVariant(palette)
	if err != nil {
		return nil, fmt.Errorf("failed to select primary color: %w", err)
	}

	return &PaletteResult{
		Colors:       DescribeColors(palette),
		Primary:      DescribeColor(primary),
		MaxDepth:     maxDepth,
		SampleWidth:  width,
		SampleHeight: height,
		Pixels:       palette,
		PrimaryPixel: primary,
	}, nil
}

// RepaintResult is a sampled image redrawn with its own median-cut palette.
type RepaintResult struct {
	// Image is the repainted canvas, the size of the sampled area.
	Image *image.NRGBA `json:"-"`

	// Buckets are the median-cut leaves in partition order.
	Buckets []quantize.Bucket `json:"-"`

	// Colors describes each bucket mean, in partition order.
	Colors []ColorResult `json:"colors"`

	Width  int `json:"width"`
	Height int `json:"height"`
}

// Analysis is one median-cut partition of a sampled image. Its palette and
// its repainted canvas come from the same buckets.
type Analysis struct {
	Buckets  []quantize.Bucket
	MaxDepth int
	Width    int
	Height   int
}

// Analyze samples img and partitions it once.
func Analyze(img image.Image, opts PaletteOptions) (*Analysis, error) {
	sample, err := Sample(img, opts)
	if err != nil {
		return nil, err
	}

	buckets, err := quantize.Partition(ExtractPixels(sample), opts.MaxDepth)
	if err != nil {
		return nil, fmt.Errorf("failed to partition image: %w", err)
	}

	bounds := sample.Bounds()
	return &Analysis{
		Buckets:  buckets,
		MaxDepth: opts.MaxDepth,
		Width:    bounds.Dx(),
		Height:   bounds.Dy(),
	}, nil
}

func (a *Analysis) means() []quantize.Pixel {
	means := make([]quantize.Pixel, len(a.Buckets))
	for i, b := range a.Buckets {
		means[i] = b.Mean
	}
	return means
}

// Palette returns the bucket means ordered and described like ExtractPalette.
// The buckets themselves keep partition order.
func (a *Analysis) Palette() (*PaletteResult, error) {
	return newPaletteResult(a.means(), a.MaxDepth, a.Width, a.Height)
}

// Repaint paints every sampled pixel with the mean of its bucket.
func (a *Analysis) Repaint() *RepaintResult {
	return &RepaintResult{
		Image:   Repaint(a.Width, a.Height, a.Buckets),
		Buckets: a.Buckets,
		Colors:  DescribeColors(a.means()),
		Width:   a.Width,
		Height:  a.Height,
	}
}

// RepaintImage partitions the sampled image and paints every pixel with the
// mean color of the bucket it landed in.
func RepaintImage(img image.Image, opts PaletteOptions) (*RepaintResult, error) {
	a, err := Analyze(img, opts)
	if err != nil {
		return nil, err
	}
	return a.Repaint(), nil
}
