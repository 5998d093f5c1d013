package catalog

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/parquet-go/parquet-go"
	"github.com/xuri/excelize/v2"
)

// Loader reads one spreadsheet source into a Catalog.
type Loader struct {
	path      string
	brand     string
	season    string
	columns   []string
	eanColumn string
}

// NewLoader creates a loader for one brand's catalog. columns is the
// brand's descriptive column list; eanColumn names the key column.
func NewLoader(path, brand, season string, columns []string, eanColumn string) *Loader {
	return &Loader{
		path:      path,
		brand:     brand,
		season:    season,
		columns:   columns,
		eanColumn: eanColumn,
	}
}

// Load loads catalog entries from a CSV, XLSX or Parquet file.
func (l *Loader) Load() (*Catalog, error) {
	// Detect file format
	ext := strings.ToLower(filepath.Ext(l.path))

	switch ext {
	case ".csv":
		return l.loadCSV()
	case ".xlsx", ".xlsm":
		return l.loadXLSX()
	case ".parquet":
		return l.loadParquet()
	default:
		return nil, fmt.Errorf("unsupported file format: %s (supported: .csv, .xlsx, .parquet)", ext)
	}
}

// loadCSV loads entries from a single-table CSV file.
func (l *Loader) loadCSV() (*Catalog, error) {
	slog.Debug("Opening CSV catalog", "path", l.path)

	file, err := os.Open(l.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, &ParseError{Path: l.path, Msg: "missing header row"}
	}

	index, err := l.columnIndex(header, "")
	if err != nil {
		return nil, err
	}

	cat := New()
	rowNum := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading catalog row %d: %w", rowNum+1, err)
		}
		rowNum++

		cat.Add(l.buildEntry(index, record, "", rowNum))

		if rowNum%100 == 0 {
			slog.Debug("Reading catalog", "rows_read", rowNum)
		}
	}

	slog.Debug("Finished reading CSV catalog", "entries", cat.Len(), "skipped_rows", cat.SkippedRows())

	return cat, nil
}

// loadXLSX loads entries from every sheet of an Excel workbook. Suppliers
// split large catalogs across sheets, so all of them feed one catalog.
func (l *Loader) loadXLSX() (*Catalog, error) {
	slog.Debug("Opening XLSX catalog", "path", l.path)

	f, err := excelize.OpenFile(l.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog file: %w", err)
	}
	defer f.Close()

	cat := New()
	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
		}
		if len(rows) == 0 {
			slog.Debug("Skipping empty sheet", "sheet", sheet)
			continue
		}

		index, err := l.columnIndex(rows[0], sheet)
		if err != nil {
			return nil, err
		}

		slog.Debug("Processing sheet", "sheet", sheet, "rows", len(rows)-1)

		for i, record := range rows[1:] {
			rowNum := i + 2 // 1-based, after the header
			cat.Add(l.buildEntry(index, record, sheet, rowNum))

			if rowNum%100 == 0 {
				slog.Debug("Reading catalog", "sheet", sheet, "rows_read", rowNum)
			}
		}
	}

	slog.Debug("Finished reading XLSX catalog", "entries", cat.Len(), "skipped_rows", cat.SkippedRows())

	return cat, nil
}

// parquetRow is the normalized schema for catalog exports kept in columnar
// form: the join key plus the already-resolved display name.
type parquetRow struct {
	EAN         string `parquet:"ean"`
	DisplayName string `parquet:"display_name"`
}

// loadParquet loads entries from a normalized Parquet catalog export.
func (l *Loader) loadParquet() (*Catalog, error) {
	slog.Debug("Opening Parquet catalog", "path", l.path)

	file, err := os.Open(l.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog file: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	pf, err := parquet.OpenFile(file, info.Size())
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet: %w", err)
	}

	slog.Debug("Parquet catalog opened", "num_rows", pf.NumRows(), "num_row_groups", len(pf.RowGroups()))

	reader := parquet.NewGenericReader[parquetRow](pf)
	defer reader.Close()

	cat := New()
	rows := make([]parquetRow, 128) // Read in batches
	rowNum := 0

	for {
		n, err := reader.Read(rows)
		for _, row := range rows[:n] {
			rowNum++
			cat.Add(Entry{
				EAN:         strings.TrimSpace(row.EAN),
				Brand:       l.brand,
				Season:      l.season,
				DisplayName: sanitizeName(strings.ToLower(strings.TrimSpace(row.DisplayName))),
				Row:         rowNum,
			})
		}
		if err != nil {
			break
		}
	}

	slog.Debug("Finished reading Parquet catalog", "entries", cat.Len(), "skipped_rows", cat.SkippedRows())

	return cat, nil
}

// columnIndex resolves the positions of the EAN column and every mapped
// brand column in a header row. A missing required column is a ParseError.
func (l *Loader) columnIndex(header []string, sheet string) (map[string]int, error) {
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(name)] = i
	}

	for _, col := range append([]string{l.eanColumn}, l.columns...) {
		if _, ok := index[col]; !ok {
			return nil, &ParseError{Path: l.path, Sheet: sheet, Msg: fmt.Sprintf("required column %q not found", col)}
		}
	}

	return index, nil
}

// buildEntry turns one spreadsheet record into an Entry. Catalog.Add
// rejects it when the EAN cell is empty or non-numeric.
func (l *Loader) buildEntry(index map[string]int, record []string, sheet string, rowNum int) Entry {
	cell := func(col string) string {
		i := index[col]
		if i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	attrs := make(map[string]string, len(l.columns))
	parts := make([]string, 0, len(l.columns))
	for _, col := range l.columns {
		v := strings.ToLower(cell(col))
		if v == "" {
			continue
		}
		attrs[col] = v
		parts = append(parts, v)
	}

	return Entry{
		EAN:         cell(l.eanColumn),
		Brand:       l.brand,
		Season:      l.season,
		DisplayName: sanitizeName(strings.Join(parts, "-")),
		Attributes:  attrs,
		Sheet:       sheet,
		Row:         rowNum,
	}
}

// sanitizeName makes a display name safe to use as a file name.
func sanitizeName(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			return '-'
		}
		return r
	}, s)
}
