// Package rename moves matched photos into the destination layout.
package rename

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/studiofoto/photorenamer/internal/match"
)

// Renamer moves (or copies) matched files under a destination root,
// creating intermediate directories as needed.
type Renamer struct {
	DestRoot string
	CopyOnly bool // keep the source file in place
}

func New(destRoot string, copyOnly bool) *Renamer {
	return &Renamer{DestRoot: destRoot, CopyOnly: copyOnly}
}

// Rename places one matched file at destRoot/resolvedName.ext and returns
// the destination path. The extension is carried over from the source,
// lowercased. An existing destination is never overwritten; collisions get
// a numeric suffix.
func (r *Renamer) Rename(m match.FileMatch) (string, error) {
	ext := strings.ToLower(filepath.Ext(m.SourcePath))
	dest := filepath.Join(r.DestRoot, m.ResolvedName+ext)

	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return "", fmt.Errorf("failed to create destination directory: %w", err)
	}

	dest, err := avoidCollision(dest)
	if err != nil {
		return "", err
	}

	if r.CopyOnly {
		if err := copyFile(m.SourcePath, dest); err != nil {
			return "", err
		}
	} else if err := moveFile(m.SourcePath, dest); err != nil {
		return "", err
	}

	slog.Debug("Renamed file", "from", m.SourcePath, "to", dest, "ean", m.EAN)
	return dest, nil
}

// avoidCollision returns dest unchanged when it is free, otherwise the
// first name-<n>.ext that is.
func avoidCollision(dest string) (string, error) {
	if _, err := os.Stat(dest); os.IsNotExist(err) {
		return dest, nil
	}

	ext := filepath.Ext(dest)
	base := strings.TrimSuffix(dest, ext)
	for n := 1; n < 1000; n++ {
		candidate := fmt.Sprintf("%s-%d%s", base, n, ext)
		if _, err := os.Stat(candidate); os.IsNotExist(err) {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("too many name collisions for %s", dest)
}

// moveFile renames src to dest, falling back to copy+remove when the
// destination is on another device.
func moveFile(src, dest string) error {
	if err := os.Rename(src, dest); err == nil {
		return nil
	}

	if err := copyFile(src, dest); err != nil {
		return err
	}
	if err := os.Remove(src); err != nil {
		return fmt.Errorf("failed to remove source after copy: %w", err)
	}
	return nil
}

func copyFile(src, dest string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open source file: %w", err)
	}
	defer in.Close()

	out, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("failed to create destination file: %w", err)
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dest)
		return fmt.Errorf("failed to copy file: %w", err)
	}
	return out.Close()
}
