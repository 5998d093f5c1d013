// Package brands holds the per-brand spreadsheet column layout.
//
// Every supplier ships its catalog with a different set of descriptive
// columns (model, part, color, ...). The mapping selects which columns
// describe a product for a given brand; the EAN column is shared by all.
package brands

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultEANColumn is the spreadsheet column holding the EAN code.
const DefaultEANColumn = "EAN"

// Mapping maps a brand identifier to its ordered descriptive columns.
type Mapping struct {
	columns   map[string][]string
	eanColumn string
}

// fileConfig mirrors the structure of brands.yaml.
type fileConfig struct {
	EANColumn string              `yaml:"ean_column"`
	Brands    map[string][]string `yaml:"brands"`
}

// Defaults returns the built-in brand mappings.
func Defaults() *Mapping {
	return &Mapping{
		columns: map[string][]string{
			"guess":   {"Model", "Part", "Color"},
			"liujo":   {"Modello", "Parte", "Colore"},
			"furla":   {"Modello", "Parte", "Colore", "TipoVariante"},
			"alviero": {"Linea", "Modello", "Tessuto", "Colore"},
			"brand":   {"Campo1", "Campo2"},
		},
		eanColumn: DefaultEANColumn,
	}
}

// Load reads a YAML mapping file and merges it over the defaults.
// Brands in the file override or extend the built-in set.
func Load(path string) (*Mapping, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read brand config: %w", err)
	}

	var cfg fileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse brand config: %w", err)
	}

	m := Defaults()
	if cfg.EANColumn != "" {
		m.eanColumn = cfg.EANColumn
	}
	for brand, cols := range cfg.Brands {
		if len(cols) == 0 {
			return nil, fmt.Errorf("brand %q has no columns in %s", brand, path)
		}
		m.columns[strings.ToLower(brand)] = cols
	}

	return m, nil
}

// Columns returns the descriptive columns for a brand. Unknown brands are
// an error listing the known ones, matching the pre-run validation of the
// rename command.
func (m *Mapping) Columns(brand string) ([]string, error) {
	cols, ok := m.columns[strings.ToLower(brand)]
	if !ok {
		return nil, fmt.Errorf("unknown brand %q (known brands: %s)", brand, strings.Join(m.Names(), ", "))
	}
	return cols, nil
}

// EANColumn returns the configured EAN column name.
func (m *Mapping) EANColumn() string {
	return m.eanColumn
}

// Names returns the known brand identifiers, sorted.
func (m *Mapping) Names() []string {
	names := make([]string, 0, len(m.columns))
	for name := range m.columns {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
