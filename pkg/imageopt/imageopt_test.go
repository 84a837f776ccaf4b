package imageopt

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 200, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestParseOptions(t *testing.T) {
	opts, err := ParseOptions("640", "")
	require.NoError(t, err)
	assert.Equal(t, Options{Width: 640, Quality: DefaultQuality}, opts)

	_, err = ParseOptions("641", "")
	assert.ErrorIs(t, err, ErrInvalidWidth)

	_, err = ParseOptions("640", "0")
	assert.ErrorIs(t, err, ErrInvalidQuality)

	_, err = ParseOptions("abc", "50")
	assert.ErrorIs(t, err, ErrInvalidWidth)
}

func TestResizeKeepsAspectRatio(t *testing.T) {
	out, err := Resize(bytes.NewReader(pngBytes(t, 400, 200)), Options{Width: 128, Quality: 80})
	require.NoError(t, err)

	img, err := jpeg.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 128, img.Bounds().Dx())
	assert.Equal(t, 64, img.Bounds().Dy())
}

func TestResizeNeverUpscales(t *testing.T) {
	out, err := Resize(bytes.NewReader(pngBytes(t, 50, 40)), Options{Width: 640})
	require.NoError(t, err)

	img, err := jpeg.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 50, img.Bounds().Dx())
}

func TestOptimizerResolve(t *testing.T) {
	o := NewOptimizer("/srv/public")

	path, err := o.Resolve("/public/images/projects/arkema.png")
	require.NoError(t, err)
	assert.Equal(t, filepath.FromSlash("/srv/public/images/projects/arkema.png"), path)

	path, err = o.Resolve("/public/../../etc/passwd")
	require.NoError(t, err)
	assert.Equal(t, filepath.FromSlash("/srv/public/etc/passwd"), path)

	_, err = o.Resolve("/etc/passwd")
	assert.ErrorIs(t, err, ErrInvalidSource)

	_, err = o.Resolve("/public/")
	assert.ErrorIs(t, err, ErrInvalidSource)
}

func TestOptimizerOptimize(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "images"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "images", "hero.png"), pngBytes(t, 300, 300), 0o644))

	out, hit, err := NewOptimizer(root).Optimize("/public/images/hero.png", Options{Width: 256})
	require.NoError(t, err)
	assert.NotEmpty(t, out)
	assert.False(t, hit)

	_, _, err = NewOptimizer(root).Optimize("/public/images/missing.png", Options{Width: 256})
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, _, err = NewOptimizer(root).Optimize("/public/images", Options{Width: 256})
	assert.ErrorIs(t, err, ErrInvalidSource)
}

func TestOptimizerCachesVariants(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "hero.png")
	require.NoError(t, os.WriteFile(path, pngBytes(t, 300, 300), 0o644))

	o := NewOptimizerWithCache(root, 2)

	first, hit, err := o.Optimize("/public/hero.png", Options{Width: 256})
	require.NoError(t, err)
	assert.False(t, hit)

	again, hit, err := o.Optimize("/public/hero.png", Options{Width: 256, Quality: DefaultQuality})
	require.NoError(t, err)
	assert.True(t, hit, "default quality and explicit 75 are the same variant")
	assert.Equal(t, first, again)

	_, hit, err = o.Optimize("/public/hero.png", Options{Width: 128})
	require.NoError(t, err)
	assert.False(t, hit)

	// A rewritten source is a new variant
	require.NoError(t, os.WriteFile(path, pngBytes(t, 200, 200), 0o644))
	later := time.Now().Add(time.Minute)
	require.NoError(t, os.Chtimes(path, later, later))
	_, hit, err = o.Optimize("/public/hero.png", Options{Width: 256})
	require.NoError(t, err)
	assert.False(t, hit)

	// Capacity 2: the 256px variant of the old file was evicted
	assert.Equal(t, 2, o.cache.Len())
}

func TestOptimizerConcurrentMisses(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "hero.png"), pngBytes(t, 300, 300), 0o644))
	o := NewOptimizer(root)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			out, _, err := o.Optimize("/public/hero.png", Options{Width: 64})
			assert.NoError(t, err)
			assert.NotEmpty(t, out)
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, o.cache.Len())
}
