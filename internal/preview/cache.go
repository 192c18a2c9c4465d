package preview

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"
	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultCacheSize is the number of decoded images NewImageCache keeps.
const DefaultCacheSize = 16

// ImageCache keeps decoded source images keyed by path so that repeated
// previews of the same file skip the disk.
//
// The cache holds a fixed number of images and drops the least recently
// used one when a new path is loaded.
type ImageCache struct {
	images *lru.Cache[string, image.Image]
}

// NewImageCache returns an empty cache holding DefaultCacheSize images.
func NewImageCache() *ImageCache {
	return NewImageCacheSize(DefaultCacheSize)
}

// NewImageCacheSize returns an empty cache holding at most size images.
// A size below 1 is treated as 1.
func NewImageCacheSize(size int) *ImageCache {
	if size < 1 {
		size = 1
	}
	images, _ := lru.New[string, image.Image](size)
	return &ImageCache{images: images}
}

// Load returns the image at path, decoding it on first use. EXIF
// orientation is applied so previews match what the CDN delivers.
//
// Different spellings of the same file (relative and absolute) are cached
// separately.
func (c *ImageCache) Load(path string) (image.Image, error) {
	if img, ok := c.images.Get(path); ok {
		return img, nil
	}

	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}

	c.images.Add(path, img)
	return img, nil
}

// Evict drops path from the cache.
func (c *ImageCache) Evict(path string) {
	c.images.Remove(path)
}

// Clear drops every cached image.
func (c *ImageCache) Clear() {
	c.images.Purge()
}

// Len reports the number of cached images.
func (c *ImageCache) Len() int {
	return c.images.Len()
}
