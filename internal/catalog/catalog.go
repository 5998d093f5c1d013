// Package catalog loads the spreadsheet catalog for one brand/season into
// an in-memory mapping keyed by EAN.
package catalog

import "fmt"

// Entry is one catalog row: an EAN code plus the descriptive attributes
// selected by the brand's column mapping.
type Entry struct {
	EAN         string
	Brand       string
	Season      string
	DisplayName string
	Attributes  map[string]string
	Sheet       string
	Row         int
}

// ParseError reports a structurally unusable spreadsheet source, such as a
// missing required column. Row-level problems are skipped and counted
// instead.
type ParseError struct {
	Path  string
	Sheet string
	Msg   string
}

func (e *ParseError) Error() string {
	if e.Sheet != "" {
		return fmt.Sprintf("%s (sheet %q): %s", e.Path, e.Sheet, e.Msg)
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Msg)
}

// Catalog is an insertion-ordered mapping EAN -> Entry.
type Catalog struct {
	entries map[string]Entry
	order   []string
	skipped int
}

func New() *Catalog {
	return &Catalog{entries: make(map[string]Entry)}
}

// Add inserts an entry. A row with an empty or non-numeric EAN, or an EAN
// already present from an earlier row or sheet, is counted as skipped so
// that every catalog EAN maps to exactly one entry.
func (c *Catalog) Add(e Entry) bool {
	if !ValidEAN(e.EAN) {
		c.skipped++
		return false
	}
	if _, dup := c.entries[e.EAN]; dup {
		c.skipped++
		return false
	}
	c.entries[e.EAN] = e
	c.order = append(c.order, e.EAN)
	return true
}

// Lookup returns the entry for an EAN code.
func (c *Catalog) Lookup(ean string) (Entry, bool) {
	e, ok := c.entries[ean]
	return e, ok
}

// EANs returns all catalog keys in insertion order.
func (c *Catalog) EANs() []string {
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}

// Len returns the number of catalog entries.
func (c *Catalog) Len() int {
	return len(c.entries)
}

// SkippedRows returns how many rows were rejected while loading.
func (c *Catalog) SkippedRows() int {
	return c.skipped
}

// ValidEAN reports whether s is a plausible EAN cell value: non-empty and
// all digits.
func ValidEAN(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
