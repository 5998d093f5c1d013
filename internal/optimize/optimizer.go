// Package optimize shrinks oversized JPEGs, preferably by invoking the
// external jpegoptim binary. Hosts without jpegoptim fall back to an
// in-process re-encode.
package optimize

import (
	"fmt"
	"image"
	"image/jpeg"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/nfnt/resize"
	"github.com/studiofoto/photorenamer/internal/photos"
)

const (
	// DefaultMaxSizeMB leaves files at or under this size untouched.
	DefaultMaxSizeMB = 1.0
	// DefaultQuality is passed to jpegoptim --max and to the fallback
	// encoder.
	DefaultQuality = 85

	// maxDimension bounds the fallback re-encode; supplier shoots
	// routinely come in at 6000px and resize dominates the savings.
	maxDimension = 4000
)

// Result records what happened to one file.
type Result struct {
	Path        string
	Optimized   bool
	BeforeBytes int64
	AfterBytes  int64
}

// Reduction returns the percent size reduction for an optimized file.
func (r Result) Reduction() float64 {
	if r.BeforeBytes == 0 {
		return 0
	}
	return float64(r.BeforeBytes-r.AfterBytes) / float64(r.BeforeBytes) * 100
}

// Summary aggregates a folder pass.
type Summary struct {
	Total      int
	Optimized  int
	SavedBytes int64
}

// Optimizer shrinks JPEG files above a size threshold.
type Optimizer struct {
	MaxBytes int64
	Quality  int

	// Binary is the resolved jpegoptim path; empty means the in-process
	// fallback is used. Tests clear it to force the fallback.
	Binary string
}

func New(maxSizeMB float64, quality int) *Optimizer {
	if maxSizeMB <= 0 {
		maxSizeMB = DefaultMaxSizeMB
	}
	if quality <= 0 || quality > 100 {
		quality = DefaultQuality
	}

	bin, err := exec.LookPath("jpegoptim")
	if err != nil {
		slog.Debug("jpegoptim not found, using in-process fallback")
		bin = ""
	}

	return &Optimizer{
		MaxBytes: int64(maxSizeMB * 1024 * 1024),
		Quality:  quality,
		Binary:   bin,
	}
}

// File optimizes one JPEG in place when it exceeds the size threshold.
func (o *Optimizer) File(path string) (Result, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Result{Path: path}, fmt.Errorf("failed to stat file: %w", err)
	}

	res := Result{Path: path, BeforeBytes: info.Size(), AfterBytes: info.Size()}
	if info.Size() <= o.MaxBytes {
		return res, nil
	}

	if o.Binary != "" {
		err = o.runJpegoptim(path)
	} else {
		err = o.reencode(path)
	}
	if err != nil {
		return res, err
	}

	after, err := os.Stat(path)
	if err != nil {
		return res, fmt.Errorf("failed to stat optimized file: %w", err)
	}

	res.AfterBytes = after.Size()
	res.Optimized = after.Size() < res.BeforeBytes
	return res, nil
}

// Folder optimizes every JPEG in dir that exceeds the threshold. Per-file
// failures are logged and counted, never fatal.
func (o *Optimizer) Folder(dir string) (Summary, []Result, error) {
	files, err := photos.Scan(dir, nil)
	if err != nil {
		return Summary{}, nil, err
	}

	summary := Summary{Total: len(files)}
	results := make([]Result, 0, len(files))

	for _, f := range files {
		res, err := o.File(f.Path)
		if err != nil {
			slog.Warn("Failed to optimize image", "file", f.Name, "error", err)
			continue
		}
		results = append(results, res)

		if res.Optimized {
			summary.Optimized++
			summary.SavedBytes += res.BeforeBytes - res.AfterBytes
			slog.Info("Optimized image",
				"file", f.Name,
				"before_mb", fmt.Sprintf("%.2f", mb(res.BeforeBytes)),
				"after_mb", fmt.Sprintf("%.2f", mb(res.AfterBytes)),
				"reduction_pct", fmt.Sprintf("%.1f", res.Reduction()))
		}
	}

	return summary, results, nil
}

// runJpegoptim shells out to jpegoptim. The only protocol is the exit
// status; stderr is surfaced on failure.
func (o *Optimizer) runJpegoptim(path string) error {
	cmd := exec.Command(o.Binary, fmt.Sprintf("--max=%d", o.Quality), "--strip-all", path)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("jpegoptim failed: %w: %s", err, out)
	}
	return nil
}

// reencode rewrites the JPEG at the configured quality, downscaling
// anything wider or taller than maxDimension first. The original is kept
// when the re-encode does not actually shrink the file.
func (o *Optimizer) reencode(path string) error {
	in, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open image: %w", err)
	}
	img, _, err := image.Decode(in)
	in.Close()
	if err != nil {
		return fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := img.Bounds()
	if bounds.Dx() > maxDimension || bounds.Dy() > maxDimension {
		if bounds.Dx() >= bounds.Dy() {
			img = resize.Resize(maxDimension, 0, img, resize.Lanczos3)
		} else {
			img = resize.Resize(0, maxDimension, img, resize.Lanczos3)
		}
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".optimize-*.jpg")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if err := jpeg.Encode(tmp, img, &jpeg.Options{Quality: o.Quality}); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to encode image: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return err
	}

	before, err := os.Stat(path)
	if err != nil {
		os.Remove(tmpPath)
		return err
	}
	after, err := os.Stat(tmpPath)
	if err != nil {
		os.Remove(tmpPath)
		return err
	}

	if after.Size() >= before.Size() {
		return os.Remove(tmpPath)
	}
	return os.Rename(tmpPath, path)
}

func mb(n int64) float64 {
	return float64(n) / 1024 / 1024
}
