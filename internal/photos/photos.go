// Package photos scans the source directory and reads per-file metadata.
package photos

import (
	"fmt"
	"image"
	_ "image/jpeg"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rwcarlsen/goexif/exif"
)

// DefaultExtensions are the photo extensions considered by a scan.
var DefaultExtensions = []string{".jpg", ".jpeg"}

// File is one photo found in the source directory.
type File struct {
	Name string
	Path string
	Size int64
}

// Scan lists the photo files directly inside dir, filtered by extension
// (case-insensitive). The scan is non-recursive; season/brand folders hold
// their photos flat. A missing directory is a fatal error, reported before
// any file is touched.
func Scan(dir string, extensions []string) ([]File, error) {
	if len(extensions) == 0 {
		extensions = DefaultExtensions
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read photo directory: %w", err)
	}

	var files []File
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if !contains(extensions, ext) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		files = append(files, File{
			Name: entry.Name(),
			Path: filepath.Join(dir, entry.Name()),
			Size: info.Size(),
		})
	}

	return files, nil
}

// Meta holds the metadata shown by the inspect command.
type Meta struct {
	Taken   time.Time
	Width   int
	Height  int
	HasEXIF bool
}

// Inspect reads EXIF capture date and pixel dimensions from a photo.
// Files without EXIF data are not an error; Meta.HasEXIF is false.
func Inspect(path string) (*Meta, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open photo: %w", err)
	}
	defer f.Close()

	meta := &Meta{}

	if x, err := exif.Decode(f); err == nil {
		meta.HasEXIF = true
		if tm, err := x.DateTime(); err == nil {
			meta.Taken = tm
		}
	}

	if _, err := f.Seek(0, 0); err != nil {
		return meta, nil
	}
	if cfg, _, err := image.DecodeConfig(f); err == nil {
		meta.Width = cfg.Width
		meta.Height = cfg.Height
	}

	return meta, nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
