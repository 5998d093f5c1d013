package optimize

import (
	"image"
	"image/color"
	"image/jpeg"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeNoisyJPEG writes a high-quality noisy image; noise keeps the file
// large enough to cross the optimizer threshold.
func writeNoisyJPEG(t *testing.T, path string, size int) int64 {
	t.Helper()

	rng := rand.New(rand.NewSource(42))
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			img.Set(x, y, color.RGBA{
				R: uint8(rng.Intn(256)),
				G: uint8(rng.Intn(256)),
				B: uint8(rng.Intn(256)),
				A: 255,
			})
		}
	}

	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, jpeg.Encode(f, img, &jpeg.Options{Quality: 100}))
	require.NoError(t, f.Close())

	info, err := os.Stat(path)
	require.NoError(t, err)
	return info.Size()
}

func TestFileUnderThresholdUntouched(t *testing.T) {
	path := filepath.Join(t.TempDir(), "small.jpg")
	before := writeNoisyJPEG(t, path, 32)

	o := New(DefaultMaxSizeMB, DefaultQuality)
	res, err := o.File(path)
	require.NoError(t, err)

	assert.False(t, res.Optimized)
	assert.Equal(t, before, res.BeforeBytes)
	assert.Equal(t, before, res.AfterBytes)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, before, info.Size(), "file must not be rewritten")
}

func TestReencodeShrinksOversizedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "big.jpg")
	before := writeNoisyJPEG(t, path, 256)

	o := New(DefaultMaxSizeMB, 40)
	o.Binary = "" // force the in-process fallback
	o.MaxBytes = 1024

	res, err := o.File(path)
	require.NoError(t, err)

	assert.Equal(t, before, res.BeforeBytes)
	assert.LessOrEqual(t, res.AfterBytes, res.BeforeBytes)

	// the result must still decode
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	_, err = jpeg.Decode(f)
	assert.NoError(t, err)
}

func TestReencodeNeverGrowsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "photo.jpg")
	before := writeNoisyJPEG(t, path, 64)

	// Quality 100 rarely shrinks anything; the original must be kept
	// whenever the re-encode is not actually smaller.
	o := New(DefaultMaxSizeMB, 100)
	o.Binary = ""
	o.MaxBytes = 1

	res, err := o.File(path)
	require.NoError(t, err)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.LessOrEqual(t, info.Size(), before)
	assert.Equal(t, info.Size(), res.AfterBytes)
}

func TestFolderSummary(t *testing.T) {
	dir := t.TempDir()
	writeNoisyJPEG(t, filepath.Join(dir, "big.jpg"), 256)
	writeNoisyJPEG(t, filepath.Join(dir, "small.jpg"), 16)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644))

	o := New(DefaultMaxSizeMB, 40)
	o.Binary = ""
	o.MaxBytes = 10 * 1024

	summary, results, err := o.Folder(dir)
	require.NoError(t, err)

	assert.Equal(t, 2, summary.Total, "only jpegs are counted")
	assert.Len(t, results, 2)
	if summary.Optimized > 0 {
		assert.Greater(t, summary.SavedBytes, int64(0))
	}
}

func TestFolderMissingDirectoryFails(t *testing.T) {
	o := New(DefaultMaxSizeMB, DefaultQuality)
	_, _, err := o.Folder(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}

func TestFileMissingFails(t *testing.T) {
	o := New(DefaultMaxSizeMB, DefaultQuality)
	_, err := o.File(filepath.Join(t.TempDir(), "gone.jpg"))
	assert.Error(t, err)
}
