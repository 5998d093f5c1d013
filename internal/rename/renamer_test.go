package rename

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/studiofoto/photorenamer/internal/match"
)

func writePhoto(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("jpeg bytes"), 0644))
	return path
}

func TestRenameMovesIntoDestination(t *testing.T) {
	src := t.TempDir()
	dest := filepath.Join(t.TempDir(), "renamed", "liujo")

	path := writePhoto(t, src, "img_1234567890123.JPG")
	r := New(dest, false)

	got, err := r.Rename(match.FileMatch{
		SourcePath:   path,
		EAN:          "1234567890123",
		ResolvedName: "shoea",
	})
	require.NoError(t, err)

	// extension carried over, lowercased
	assert.Equal(t, filepath.Join(dest, "shoea.jpg"), got)
	assert.FileExists(t, got)
	assert.NoFileExists(t, path, "source should be gone after a move")
}

func TestRenameCopyKeepsOriginal(t *testing.T) {
	src := t.TempDir()
	dest := t.TempDir()

	path := writePhoto(t, src, "img_1234567890123.jpg")
	r := New(dest, true)

	got, err := r.Rename(match.FileMatch{SourcePath: path, EAN: "1234567890123", ResolvedName: "shoea"})
	require.NoError(t, err)

	assert.FileExists(t, got)
	assert.FileExists(t, path, "copy mode must keep the original")

	data, err := os.ReadFile(got)
	require.NoError(t, err)
	assert.Equal(t, []byte("jpeg bytes"), data)
}

func TestRenameCollisionGetsSuffix(t *testing.T) {
	src := t.TempDir()
	dest := t.TempDir()

	first := writePhoto(t, src, "a_1234567890123.jpg")
	second := writePhoto(t, src, "b_1234567890123.jpg")
	r := New(dest, false)

	m := match.FileMatch{EAN: "1234567890123", ResolvedName: "shoea"}

	m.SourcePath = first
	got1, err := r.Rename(m)
	require.NoError(t, err)

	m.SourcePath = second
	got2, err := r.Rename(m)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dest, "shoea.jpg"), got1)
	assert.Equal(t, filepath.Join(dest, "shoea-1.jpg"), got2)
	assert.FileExists(t, got1)
	assert.FileExists(t, got2)
}

func TestRenameMissingSourceFails(t *testing.T) {
	r := New(t.TempDir(), false)

	_, err := r.Rename(match.FileMatch{
		SourcePath:   filepath.Join(t.TempDir(), "gone.jpg"),
		ResolvedName: "shoea",
	})
	assert.Error(t, err)
}
