package imageopt

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	_ "image/gif"
	_ "image/png"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
	"golang.org/x/sync/singleflight"
)

// AllowedWidths are the only output widths served, so the set of variants stays bounded.
var AllowedWidths = []int{64, 128, 256, 384, 640, 750, 828, 1080, 1200, 1920}

const (
	DefaultQuality = 75
	// DefaultCacheEntries bounds the number of encoded variants kept in memory.
	DefaultCacheEntries = 64
	// PublicPrefix is the URL prefix under which public files are served.
	PublicPrefix = "/public/"
)

var (
	ErrInvalidWidth   = errors.New("imageopt: width is not allowed")
	ErrInvalidQuality = errors.New("imageopt: quality must be between 1 and 100")
	ErrInvalidSource  = errors.New("imageopt: source must be a file under /public/")
)

// Options controls the output variant.
type Options struct {
	Width   int
	Quality int
}

// ParseOptions validates the w and q query values.
func ParseOptions(w, q string) (Options, error) {
	width, err := strconv.Atoi(w)
	if err != nil || !slices.Contains(AllowedWidths, width) {
		return Options{}, ErrInvalidWidth
	}

	quality := DefaultQuality
	if q != "" {
		quality, err = strconv.Atoi(q)
		if err != nil || quality < 1 || quality > 100 {
			return Options{}, ErrInvalidQuality
		}
	}

	return Options{Width: width, Quality: quality}, nil
}

// Optimizer resizes images stored below a root directory. Encoded variants
// are cached by source, options and file modification time, and concurrent
// misses for the same variant share one decode.
type Optimizer struct {
	root  string
	cache *lru.Cache[string, []byte]
	group singleflight.Group
}

func NewOptimizer(root string) *Optimizer {
	return NewOptimizerWithCache(root, DefaultCacheEntries)
}

// NewOptimizerWithCache keeps at most entries variants; values below 1 mean 1.
func NewOptimizerWithCache(root string, entries int) *Optimizer {
	if entries < 1 {
		entries = 1
	}
	cache, _ := lru.New[string, []byte](entries) // only fails for size <= 0
	return &Optimizer{root: root, cache: cache}
}

// Resolve maps a /public/... URL path to a file below the root, rejecting traversal.
func (o *Optimizer) Resolve(src string) (string, error) {
	if !strings.HasPrefix(src, PublicPrefix) {
		return "", ErrInvalidSource
	}
	rel := filepath.Clean("/" + strings.TrimPrefix(src, PublicPrefix))
	if rel == "/" {
		return "", ErrInvalidSource
	}
	return filepath.Join(o.root, filepath.FromSlash(rel)), nil
}

// Optimize returns src as a JPEG no wider than opts.Width. hit reports whether
// the bytes came from the variant cache. Callers must not modify the result.
func (o *Optimizer) Optimize(src string, opts Options) (out []byte, hit bool, err error) {
	path, err := o.Resolve(src)
	if err != nil {
		return nil, false, err
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, false, fmt.Errorf("imageopt: stat %s: %w", src, err)
	}
	if info.IsDir() {
		return nil, false, ErrInvalidSource
	}

	key := cacheKey(src, opts, info)
	if cached, ok := o.cache.Get(key); ok {
		return cached, true, nil
	}

	v, err, _ := o.group.Do(key, func() (interface{}, error) {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("imageopt: open %s: %w", src, err)
		}
		defer f.Close()

		data, err := Resize(f, opts)
		if err != nil {
			return nil, err
		}
		o.cache.Add(key, data)
		return data, nil
	})
	if err != nil {
		return nil, false, err
	}
	return v.([]byte), false, nil
}

func cacheKey(src string, opts Options, info os.FileInfo) string {
	quality := opts.Quality
	if quality == 0 {
		quality = DefaultQuality
	}
	return src + "|" + strconv.Itoa(opts.Width) + "|" + strconv.Itoa(quality) +
		"|" + strconv.FormatInt(info.ModTime().UnixNano(), 10) + "|" + strconv.FormatInt(info.Size(), 10)
}

// Resize decodes r and re-encodes it as JPEG, scaled down to opts.Width while
// keeping the aspect ratio. Images are never upscaled.
func Resize(r io.Reader, opts Options) ([]byte, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("imageopt: decode (format: %s): %w", format, err)
	}

	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	newWidth, newHeight := width, height
	if width > opts.Width {
		newWidth = opts.Width
		newHeight = int(float64(height) * float64(opts.Width) / float64(width))
		if newHeight < 1 {
			newHeight = 1
		}
	}

	resized := image.NewRGBA(image.Rect(0, 0, newWidth, newHeight))
	draw.CatmullRom.Scale(resized, resized.Bounds(), img, bounds, draw.Over, nil)

	quality := opts.Quality
	if quality == 0 {
		quality = DefaultQuality
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, resized, &jpeg.Options{Quality: quality}); err != nil {
		return nil, fmt.Errorf("imageopt: encode: %w", err)
	}
	return buf.Bytes(), nil
}
