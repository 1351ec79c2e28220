package imaging

import (
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"os"
	"sync"

	_ "github.com/gen2brain/avif" // Register AVIF format decoder
	_ "golang.org/x/image/bmp"    // Register BMP format decoder
	_ "golang.org/x/image/webp"   // Register WebP format decoder
)

// cachedImage is a decoded image together with the format name reported by
// the decoder that read it.
type cachedImage struct {
	img    image.Image
	format string
}

// ImageCache keeps decoded images in memory, keyed by the path they were read from.
//
// Palette requests against the same file with different depths or regions only
// decode it once. ImageCache is safe for concurrent use by multiple goroutines.
//
// # Memory Management
//
// Cached images remain in memory until explicitly removed via Evict() or Clear().
//
// # Example Usage
//
//	cache := imaging.NewImageCache()
//	img, err := cache.Load("/path/to/photo.jpg")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	pixels := imaging.ExtractPixels(img)
type ImageCache struct {
	mu     sync.RWMutex
	images map[string]cachedImage

	// evictions counts Evict calls per path. A decode only enters the cache
	// if no eviction for its path happened while it was being read.
	evictions  map[string]uint64
	beforeOpen func(path string)
}

// NewImageCache creates an empty image cache.
func NewImageCache() *ImageCache {
	return &ImageCache{
		images:    make(map[string]cachedImage),
		evictions: make(map[string]uint64),
	}
}

// Load returns the decoded image at path, reading it from disk on first use.
//
// The image is cached using the exact path string provided. Different paths to
// the same file (e.g., relative vs absolute) result in separate cache entries.
//
// # Errors
//
//   - Returns error if the file does not exist or cannot be read
//   - Returns error if the file is not a PNG, JPEG, GIF, BMP, WebP or AVIF image
func (c *ImageCache) Load(path string) (image.Image, error) {
	entry, err := c.load(path)
	if err != nil {
		return nil, err
	}
	return entry.img, nil
}

func (c *ImageCache) load(path string) (cachedImage, error) {
	c.mu.RLock()
	if entry, ok := c.images[path]; ok {
		c.mu.RUnlock()
		return entry, nil
	}
	beforeOpen := c.beforeOpen
	c.mu.RUnlock()

	if beforeOpen != nil {
		beforeOpen(path)
	}

	c.mu.RLock()
	generation := c.evictions[path]
	c.mu.RUnlock()

	f, err := os.Open(path)
	if err != nil {
		return cachedImage{}, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return cachedImage{}, fmt.Errorf("failed to decode image: %w", err)
	}

	entry := cachedImage{img: img, format: format}
	c.mu.Lock()
	if c.evictions[path] == generation {
		c.images[path] = entry
	}
	c.mu.Unlock()

	return entry, nil
}

// setBeforeOpen registers fn to be called before a path missing from the
// cache is opened.
func (c *ImageCache) setBeforeOpen(fn func(path string)) {
	c.mu.Lock()
	c.beforeOpen = fn
	c.mu.Unlock()
}

// Clear removes all images from the cache.
func (c *ImageCache) Clear() {
	c.mu.Lock()
	c.images = make(map[string]cachedImage)
	c.mu.Unlock()
}

// Evict removes a single image from the cache. A decode of path that is in
// progress when Evict is called is returned to its caller but not cached.
func (c *ImageCache) Evict(path string) {
	c.mu.Lock()
	delete(c.images, path)
	c.evictions[path]++
	c.mu.Unlock()
}

// Len returns the number of cached images.
func (c *ImageCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.images)
}

// ImageInfo contains metadata about a loaded image file.
type ImageInfo struct {
	// Width is the image width in pixels.
	Width int `json:"width"`

	// Height is the image height in pixels.
	Height int `json:"height"`

	// PixelCount is Width*Height, the number of samples a full-image palette
	// is computed from.
	PixelCount int `json:"pixel_count"`

	// Format is the name of the decoder that read the file ("png", "jpeg",
	// "gif", "bmp", "webp" or "avif"), independent of the file extension.
	Format string `json:"format"`

	// MaxDepth is the deepest median cut this image supports at full size,
	// i.e. floor(log2(PixelCount)) capped at quantize.MaxDepth.
	MaxDepth int `json:"max_depth"`

	// FileSizeBytes is the size of the image file on disk in bytes.
	FileSizeBytes int64 `json:"file_size_bytes"`
}

// LoadImageInfo loads an image through cache and reports its metadata.
//
// Parameters:
//   - cache: The image cache to use for loading. Must not be nil.
//   - path: Path to the image file.
//
// Returns:
//   - *ImageInfo: Metadata about the image.
//   - error: Non-nil if the image cannot be loaded or the file cannot be stat'd.
func LoadImageInfo(cache *ImageCache, path string) (*ImageInfo, error) {
	entry, err := cache.load(path)
	if err != nil {
		return nil, err
	}

	stat, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	bounds := entry.img.Bounds()
	count := bounds.Dx() * bounds.Dy()

	return &ImageInfo{
		Width:         bounds.Dx(),
		Height:        bounds.Dy(),
		PixelCount:    count,
		Format:        entry.format,
		MaxDepth:      SupportedDepth(count),
		FileSizeBytes: stat.Size(),
	}, nil
}

// DimensionsResult contains the width and height of an image.
type DimensionsResult struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// GetDimensions returns the dimensions of an image without additional metadata.
func GetDimensions(cache *ImageCache, path string) (*DimensionsResult, error) {
	img, err := cache.Load(path)
	if err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	return &DimensionsResult{
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
	}, nil
}
