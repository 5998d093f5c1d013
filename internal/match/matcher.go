// Package match pairs scanned photo files with catalog entries.
//
// Two strategies are supported. EAN mode extracts a numeric code embedded
// in the filename and looks it up in the catalog. Attribute mode walks the
// catalog and claims every file whose name contains all of the row's
// descriptive values, the way supplier shoots are usually labelled.
package match

import (
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/studiofoto/photorenamer/internal/catalog"
	"github.com/studiofoto/photorenamer/internal/photos"
)

// FileMatch pairs one source file with the catalog entry it resolved to.
type FileMatch struct {
	SourcePath   string
	EAN          string
	ResolvedName string
}

// Result is the outcome of one matching pass.
type Result struct {
	Matches   []FileMatch
	Unmatched []string // file names with no catalog hit
}

// EAN codes are 8 to 14 digits (EAN-8 through GTIN-14).
var eanPattern = regexp.MustCompile(`[0-9]{8,14}`)

// ExtractEAN returns the EAN candidate embedded in a filename: the longest
// digit run of plausible length, the leftmost one on ties. Returns "" when
// the name carries no such run.
func ExtractEAN(name string) string {
	best := ""
	for _, run := range eanPattern.FindAllString(name, -1) {
		if len(run) > len(best) {
			best = run
		}
	}
	return best
}

// Matcher resolves photo files against one loaded catalog.
type Matcher struct {
	catalog *catalog.Catalog
}

func New(cat *catalog.Catalog) *Matcher {
	return &Matcher{catalog: cat}
}

// ByEAN matches each file by the numeric code embedded in its name.
// The code must equal a catalog EAN exactly. When several files carry the
// same code only the first (in scan order) is matched; the rest are
// reported as unmatched so that every renamed EAN corresponds to exactly
// one source file.
func (m *Matcher) ByEAN(files []photos.File) *Result {
	res := &Result{}
	claimed := make(map[string]bool, len(files))

	for _, f := range files {
		ean := ExtractEAN(f.Name)
		if ean == "" {
			slog.Debug("No EAN candidate in filename", "file", f.Name)
			res.Unmatched = append(res.Unmatched, f.Name)
			continue
		}

		entry, ok := m.catalog.Lookup(ean)
		if !ok || claimed[ean] {
			res.Unmatched = append(res.Unmatched, f.Name)
			continue
		}

		claimed[ean] = true
		res.Matches = append(res.Matches, FileMatch{
			SourcePath:   f.Path,
			EAN:          ean,
			ResolvedName: resolvedName(entry),
		})
	}

	return res
}

// ByAttributes matches files whose lowercased name contains every
// descriptive value of a catalog row. A row can claim several files; they
// are numbered EAN-0, EAN-1, ... in scan order. Each file is consumed at
// most once.
func (m *Matcher) ByAttributes(files []photos.File) *Result {
	res := &Result{}
	consumed := make(map[string]bool, len(files))

	for _, ean := range m.catalog.EANs() {
		entry, _ := m.catalog.Lookup(ean)

		var batch []photos.File
		for _, f := range files {
			if consumed[f.Path] {
				continue
			}
			if containsAll(strings.ToLower(f.Name), entry.Attributes) {
				batch = append(batch, f)
			}
		}

		for i, f := range batch {
			consumed[f.Path] = true
			res.Matches = append(res.Matches, FileMatch{
				SourcePath:   f.Path,
				EAN:          ean,
				ResolvedName: fmt.Sprintf("%s-%d", ean, i),
			})
		}
	}

	for _, f := range files {
		if !consumed[f.Path] {
			res.Unmatched = append(res.Unmatched, f.Name)
		}
	}

	return res
}

// resolvedName is the target base name for an entry: the display name when
// the row has one, otherwise the EAN itself.
func resolvedName(e catalog.Entry) string {
	if e.DisplayName != "" {
		return e.DisplayName
	}
	return e.EAN
}

func containsAll(name string, values map[string]string) bool {
	if len(values) == 0 {
		return false
	}
	for _, v := range values {
		if v != "" && !strings.Contains(name, v) {
			return false
		}
	}
	return true
}
