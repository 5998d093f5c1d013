package catalog

import "testing"

func TestValidEAN(t *testing.T) {
	tests := []struct {
		name     string
		ean      string
		expected bool
	}{
		{"ean-13", "1234567890123", true},
		{"ean-8", "12345678", true},
		{"empty", "", false},
		{"letters", "ABC123", false},
		{"whitespace", "123 456", false},
		{"negative", "-1234567", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidEAN(tt.ean); got != tt.expected {
				t.Errorf("ValidEAN(%q) = %v, want %v", tt.ean, got, tt.expected)
			}
		})
	}
}

func TestCatalogAdd(t *testing.T) {
	cat := New()

	if !cat.Add(Entry{EAN: "1234567890123", DisplayName: "shoea"}) {
		t.Fatal("valid entry rejected")
	}
	if cat.Add(Entry{EAN: "1234567890123", DisplayName: "duplicate"}) {
		t.Error("duplicate EAN accepted")
	}
	if cat.Add(Entry{EAN: "", DisplayName: "no ean"}) {
		t.Error("empty EAN accepted")
	}
	if cat.Add(Entry{EAN: "not-a-number"}) {
		t.Error("non-numeric EAN accepted")
	}

	if cat.Len() != 1 {
		t.Errorf("Expected 1 entry, got %d", cat.Len())
	}
	if cat.SkippedRows() != 3 {
		t.Errorf("Expected 3 skipped rows, got %d", cat.SkippedRows())
	}

	// First occurrence wins
	e, ok := cat.Lookup("1234567890123")
	if !ok {
		t.Fatal("entry not found")
	}
	if e.DisplayName != "shoea" {
		t.Errorf("Expected shoea, got %s", e.DisplayName)
	}
}

func TestCatalogEANsInsertionOrder(t *testing.T) {
	cat := New()
	cat.Add(Entry{EAN: "33333333"})
	cat.Add(Entry{EAN: "11111111"})
	cat.Add(Entry{EAN: "22222222"})

	eans := cat.EANs()
	expected := []string{"33333333", "11111111", "22222222"}
	for i, ean := range expected {
		if eans[i] != ean {
			t.Errorf("position %d: expected %s, got %s", i, ean, eans[i])
		}
	}
}
