// Package report accumulates the outcome of a rename run and persists it
// under the season's reports directory.
package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/studiofoto/photorenamer/internal/catalog"
)

const timestampFormat = "2006-01-02_15-04-05"

// FileFailure is one rename that failed and was skipped, not fatal.
type FileFailure struct {
	Path   string `json:"path"`
	EAN    string `json:"ean,omitempty"`
	Reason string `json:"reason"`
}

// RunReport is the record of one full rename run.
//
// Renamed and MissingFiles partition the catalog key set: every catalog
// EAN ends up in exactly one of the two.
type RunReport struct {
	Season         string        `json:"season"`
	Brand          string        `json:"brand"`
	Mode           string        `json:"mode"`
	StartedAt      time.Time     `json:"started_at"`
	ElapsedSeconds float64       `json:"elapsed_seconds"`
	CatalogEntries int           `json:"catalog_entries"`
	SkippedRows    int           `json:"skipped_rows"`
	Renamed        []string      `json:"renamed"`
	MissingFiles   []string      `json:"missing_files"`
	UnmatchedFiles []string      `json:"unmatched_files"`
	Failures       []FileFailure `json:"failures,omitempty"`
}

func New(season, brand, mode string) *RunReport {
	return &RunReport{
		Season:    season,
		Brand:     brand,
		Mode:      mode,
		StartedAt: time.Now(),
	}
}

func (r *RunReport) AddRenamed(ean string) {
	r.Renamed = append(r.Renamed, ean)
}

func (r *RunReport) AddUnmatched(name string) {
	r.UnmatchedFiles = append(r.UnmatchedFiles, name)
}

func (r *RunReport) AddFailure(path, ean string, err error) {
	r.Failures = append(r.Failures, FileFailure{Path: path, EAN: ean, Reason: err.Error()})
}

// Finalize computes MissingFiles by set-subtracting the renamed EANs from
// the full catalog key set, then sorts every list for stable output.
// Renamed is a set: a catalog row that claimed several files in attribute
// mode still counts as one renamed EAN.
func (r *RunReport) Finalize(catalogEANs []string) {
	r.CatalogEntries = len(catalogEANs)
	r.ElapsedSeconds = time.Since(r.StartedAt).Seconds()

	renamed := make(map[string]bool, len(r.Renamed))
	for _, ean := range r.Renamed {
		renamed[ean] = true
	}
	r.Renamed = r.Renamed[:0]
	for ean := range renamed {
		r.Renamed = append(r.Renamed, ean)
	}

	r.MissingFiles = r.MissingFiles[:0]
	for _, ean := range catalogEANs {
		if !renamed[ean] {
			r.MissingFiles = append(r.MissingFiles, ean)
		}
	}

	sort.Strings(r.Renamed)
	sort.Strings(r.MissingFiles)
	sort.Strings(r.UnmatchedFiles)
}

// Save writes the report as timestamped JSON under dir and returns the
// file path.
func (r *RunReport) Save(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create reports directory: %w", err)
	}

	path := filepath.Join(dir, fmt.Sprintf("report_%s_%s.json", r.Brand, r.StartedAt.Format(timestampFormat)))
	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create report file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(r); err != nil {
		return "", fmt.Errorf("failed to encode report: %w", err)
	}

	return path, nil
}

// Load reads a saved report.
func Load(path string) (*RunReport, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open report file: %w", err)
	}
	defer file.Close()

	var r RunReport
	if err := json.NewDecoder(file).Decode(&r); err != nil {
		return nil, fmt.Errorf("failed to decode report: %w", err)
	}

	return &r, nil
}

// Latest returns the path of the most recent saved report in dir. The
// reports directory is shared per season, so runs for different brands
// interleave; ordering must use the timestamp suffix, not the whole name.
func Latest(dir string) (string, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "report_*.json"))
	if err != nil {
		return "", err
	}
	if len(paths) == 0 {
		return "", fmt.Errorf("no reports found in %s", dir)
	}
	sort.Slice(paths, func(i, j int) bool {
		return runStamp(paths[i]) < runStamp(paths[j])
	})
	return paths[len(paths)-1], nil
}

// runStamp extracts the timestamp portion of a report file name; the
// brand sits between the prefix and the stamp, so whole-name order would
// sort by brand first.
func runStamp(path string) string {
	name := strings.TrimSuffix(filepath.Base(path), ".json")
	if len(name) <= len(timestampFormat) {
		return name
	}
	return name[len(name)-len(timestampFormat):]
}

// WriteMissingCSV writes the catalog rows that never matched a file, one
// line per EAN with the row position and the brand's descriptive columns.
// Nothing is written when every EAN matched.
func (r *RunReport) WriteMissingCSV(dir string, columns []string, cat *catalog.Catalog) (string, error) {
	if len(r.MissingFiles) == 0 {
		return "", nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create reports directory: %w", err)
	}

	path := filepath.Join(dir, fmt.Sprintf("missing_%s_%s.csv", r.Brand, r.StartedAt.Format(timestampFormat)))
	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create missing-EAN report: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	header := append([]string{"sheet", "row", "ean", "date"}, columns...)
	if err := writer.Write(header); err != nil {
		return "", err
	}

	date := r.StartedAt.Format("2006-01-02 15:04:05")
	for _, ean := range r.MissingFiles {
		entry, ok := cat.Lookup(ean)
		if !ok {
			continue
		}
		row := []string{entry.Sheet, fmt.Sprintf("%d", entry.Row), ean, date}
		for _, col := range columns {
			row = append(row, entry.Attributes[col])
		}
		if err := writer.Write(row); err != nil {
			return "", err
		}
	}

	writer.Flush()
	return path, writer.Error()
}
