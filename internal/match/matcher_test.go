package match

import (
	"reflect"
	"testing"

	"github.com/studiofoto/photorenamer/internal/catalog"
	"github.com/studiofoto/photorenamer/internal/photos"
)

func TestExtractEAN(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		expected string
	}{
		{"plain ean-13", "img_1234567890123.jpg", "1234567890123"},
		{"ean-8", "shoot-12345678.jpg", "12345678"},
		{"no digits", "random.jpg", ""},
		{"short run ignored", "IMG_0042.jpg", ""},
		{"longest run wins", "v2_12345678_1234567890123.jpg", "1234567890123"},
		{"leftmost on tie", "12345678_87654321.jpg", "12345678"},
		{"too long run still yields candidate", "123456789012345.jpg", "12345678901234"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractEAN(tt.filename); got != tt.expected {
				t.Errorf("ExtractEAN(%q) = %q, want %q", tt.filename, got, tt.expected)
			}
		})
	}
}

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	cat := catalog.New()
	cat.Add(catalog.Entry{EAN: "1234567890123", DisplayName: "shoea"})
	cat.Add(catalog.Entry{
		EAN:        "9999999999999",
		Attributes: map[string]string{"Modello": "bf3066", "Colore": "black"},
	})
	return cat
}

func files(names ...string) []photos.File {
	out := make([]photos.File, len(names))
	for i, n := range names {
		out[i] = photos.File{Name: n, Path: "/photos/" + n}
	}
	return out
}

func TestByEAN(t *testing.T) {
	m := New(testCatalog(t))

	res := m.ByEAN(files("img_1234567890123.jpg", "random.jpg"))

	if len(res.Matches) != 1 {
		t.Fatalf("Expected 1 match, got %d", len(res.Matches))
	}
	got := res.Matches[0]
	if got.EAN != "1234567890123" {
		t.Errorf("Expected EAN 1234567890123, got %s", got.EAN)
	}
	if got.ResolvedName != "shoea" {
		t.Errorf("Expected resolved name shoea, got %s", got.ResolvedName)
	}
	if got.SourcePath != "/photos/img_1234567890123.jpg" {
		t.Errorf("unexpected source path %s", got.SourcePath)
	}

	if !reflect.DeepEqual(res.Unmatched, []string{"random.jpg"}) {
		t.Errorf("Expected random.jpg unmatched, got %v", res.Unmatched)
	}
}

func TestByEANNoDisplayNameFallsBackToEAN(t *testing.T) {
	m := New(testCatalog(t))

	res := m.ByEAN(files("9999999999999.jpg"))

	if len(res.Matches) != 1 {
		t.Fatalf("Expected 1 match, got %d", len(res.Matches))
	}
	if res.Matches[0].ResolvedName != "9999999999999" {
		t.Errorf("Expected EAN fallback name, got %s", res.Matches[0].ResolvedName)
	}
}

func TestByEANSecondFileWithSameCodeIsUnmatched(t *testing.T) {
	m := New(testCatalog(t))

	res := m.ByEAN(files("a_1234567890123.jpg", "b_1234567890123.jpg"))

	if len(res.Matches) != 1 {
		t.Fatalf("Expected 1 match, got %d", len(res.Matches))
	}
	if res.Matches[0].SourcePath != "/photos/a_1234567890123.jpg" {
		t.Errorf("first file in scan order should win, got %s", res.Matches[0].SourcePath)
	}
	if !reflect.DeepEqual(res.Unmatched, []string{"b_1234567890123.jpg"}) {
		t.Errorf("Expected second file unmatched, got %v", res.Unmatched)
	}
}

func TestByEANIdempotent(t *testing.T) {
	m := New(testCatalog(t))
	in := files("img_1234567890123.jpg", "random.jpg", "b_1234567890123.jpg")

	first := m.ByEAN(in)
	second := m.ByEAN(in)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("matcher not idempotent:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

func TestByAttributes(t *testing.T) {
	m := New(testCatalog(t))

	res := m.ByAttributes(files(
		"BF3066_black_front.jpg",
		"BF3066_black_side.jpg",
		"BF3066_red_front.jpg",
	))

	if len(res.Matches) != 2 {
		t.Fatalf("Expected 2 matches, got %d", len(res.Matches))
	}
	if res.Matches[0].ResolvedName != "9999999999999-0" {
		t.Errorf("Expected 9999999999999-0, got %s", res.Matches[0].ResolvedName)
	}
	if res.Matches[1].ResolvedName != "9999999999999-1" {
		t.Errorf("Expected 9999999999999-1, got %s", res.Matches[1].ResolvedName)
	}

	// red variant doesn't carry all attribute values
	if !reflect.DeepEqual(res.Unmatched, []string{"BF3066_red_front.jpg"}) {
		t.Errorf("Expected red variant unmatched, got %v", res.Unmatched)
	}
}

func TestByAttributesRowWithoutAttributesClaimsNothing(t *testing.T) {
	cat := catalog.New()
	cat.Add(catalog.Entry{EAN: "1234567890123"}) // no attributes
	m := New(cat)

	res := m.ByAttributes(files("anything.jpg"))

	if len(res.Matches) != 0 {
		t.Errorf("row without attributes should not match, got %+v", res.Matches)
	}
	if len(res.Unmatched) != 1 {
		t.Errorf("Expected 1 unmatched file, got %d", len(res.Unmatched))
	}
}
