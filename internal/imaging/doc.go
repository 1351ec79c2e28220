// Package imaging is the pixel source and canvas layer for the swatch palette
// tools.
//
// It loads and caches decoded images, narrows them to a region, optionally
// shrinks them, and flattens them into quantize.Pixel samples that keep their
// (x, y) origin. On the way back out it repaints a canvas from median-cut
// buckets and describes palette colors in several notations.
//
// # Coordinate System
//
// All pixel coordinates in this package are 0-based:
//   - X: horizontal position (0 = leftmost pixel)
//   - Y: vertical position (0 = topmost pixel)
//   - For regions, (x1,y1) is inclusive (top-left), (x2,y2) is exclusive (bottom-right)
//
// Extracted pixels are relative to the image (or cropped region) they were read
// from, so a repainted canvas always starts at (0,0).
//
// # Thread Safety
//
// The ImageCache and Invalidator types are safe for concurrent use. Every other
// function is stateless and works on the images it is handed.
//
// # Supported Formats
//
// Decoding covers PNG, JPEG and GIF from the standard library, BMP and WebP
// from golang.org/x/image and AVIF from github.com/gen2brain/avif. Output is
// always PNG.
//
// # Error Handling
//
// Functions return errors for invalid inputs such as:
//   - Regions outside image bounds or with x1 >= x2 or y1 >= y2
//   - File I/O errors during image loading or saving
//   - Quantization failures (wrapped quantize errors, check with errors.Is)
package imaging
