package renamecmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/studiofoto/photorenamer/internal/brands"
	"github.com/studiofoto/photorenamer/internal/catalog"
	"github.com/studiofoto/photorenamer/internal/match"
	"github.com/studiofoto/photorenamer/internal/optimize"
	"github.com/studiofoto/photorenamer/internal/photos"
	"github.com/studiofoto/photorenamer/internal/rename"
	"github.com/studiofoto/photorenamer/internal/report"
)

type renameOptions struct {
	Season       string
	Brand        string
	PhotoDir     string
	CatalogPath  string
	DestDir      string
	ReportsDir   string
	ConfigPath   string
	Mode         string
	CopyOnly     bool
	SkipOptimize bool
	MaxSizeMB    float64
	Quality      int
}

// NewRenameCmd creates the rename command running the full pipeline.
func NewRenameCmd() *cobra.Command {
	var opts renameOptions

	cmd := &cobra.Command{
		Use:   "rename",
		Short: "Rename a season's photos from the brand catalog",
		Long: `Rename every photo in the season/brand folder using the EAN catalog read
from the brand spreadsheet, then optimize oversized JPEGs and write a run
report.

Matching modes:
  ean         extract the numeric code embedded in each filename and look
              it up in the catalog (default)
  attributes  claim every file whose name contains all of a row's
              descriptive column values; files are numbered EAN-0, EAN-1, ...`,
		Example: `  # Rename the liujo photos for season pe25
  photorenamer rename --season pe25 --brand liujo

  # CSV catalog in a custom location, keep the originals
  photorenamer rename --season ai25 --brand guess --catalog ./guess.csv --copy

  # Supplier shoots labelled by model/part/color rather than EAN
  photorenamer rename --season pe25 --brand furla --mode attributes`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.Season == "" || opts.Brand == "" {
				return fmt.Errorf("--season and --brand are required")
			}
			return executeRename(opts)
		},
	}

	cmd.Flags().StringVar(&opts.Season, "season", "", "Season identifier, e.g. pe25 (required)")
	cmd.Flags().StringVar(&opts.Brand, "brand", "", "Brand identifier (required)")
	cmd.Flags().StringVar(&opts.PhotoDir, "photos", "", "Photo directory (default <season>/photoes/<brand>)")
	cmd.Flags().StringVar(&opts.CatalogPath, "catalog", "", "Catalog spreadsheet (default <season>/excels/<brand>.xlsx)")
	cmd.Flags().StringVar(&opts.DestDir, "dest", "", "Destination directory (default <season>/renamed/<brand>)")
	cmd.Flags().StringVar(&opts.ReportsDir, "reports", "", "Reports directory (default <season>/reports)")
	cmd.Flags().StringVar(&opts.ConfigPath, "config", "", "Brand column mapping YAML (default built-in mappings)")
	cmd.Flags().StringVar(&opts.Mode, "mode", "ean", "Matching mode: ean or attributes")
	cmd.Flags().BoolVar(&opts.CopyOnly, "copy", false, "Copy instead of move, keeping the originals")
	cmd.Flags().BoolVar(&opts.SkipOptimize, "skip-optimize", false, "Skip the JPEG optimization pass")
	cmd.Flags().Float64Var(&opts.MaxSizeMB, "max-size-mb", optimize.DefaultMaxSizeMB, "Only optimize JPEGs above this size")
	cmd.Flags().IntVar(&opts.Quality, "quality", optimize.DefaultQuality, "JPEG quality for optimization")

	_ = cmd.MarkFlagRequired("season")
	_ = cmd.MarkFlagRequired("brand")

	return cmd
}

func executeRename(opts renameOptions) error {
	if opts.Mode != "ean" && opts.Mode != "attributes" {
		return fmt.Errorf("unsupported mode: %s (supported: ean, attributes)", opts.Mode)
	}

	mapping, err := loadMapping(opts.ConfigPath)
	if err != nil {
		return err
	}

	columns, err := mapping.Columns(opts.Brand)
	if err != nil {
		return err
	}

	layout := DefaultLayout(opts.Season, opts.Brand)
	if opts.PhotoDir != "" {
		layout.PhotoDir = opts.PhotoDir
	}
	if opts.CatalogPath != "" {
		layout.CatalogPath = opts.CatalogPath
	}
	if opts.DestDir != "" {
		layout.DestDir = opts.DestDir
	}
	if opts.ReportsDir != "" {
		layout.ReportsDir = opts.ReportsDir
	}

	// Fail before touching any file: the photo directory and the
	// spreadsheet must both exist.
	if _, err := os.Stat(layout.PhotoDir); err != nil {
		return fmt.Errorf("photo directory not found: %s", layout.PhotoDir)
	}
	if _, err := os.Stat(layout.CatalogPath); err != nil {
		return fmt.Errorf("catalog file not found: %s", layout.CatalogPath)
	}

	slog.Info("Starting rename run",
		"season", opts.Season, "brand", opts.Brand,
		"mode", opts.Mode, "columns", columns)

	rep := report.New(opts.Season, opts.Brand, opts.Mode)

	// Optimize oversized images before renaming, the pass the run has
	// always started with.
	if !opts.SkipOptimize {
		optimizer := optimize.New(opts.MaxSizeMB, opts.Quality)
		summary, _, err := optimizer.Folder(layout.PhotoDir)
		if err != nil {
			return fmt.Errorf("failed to optimize photos: %w", err)
		}
		slog.Info("Optimization pass done",
			"total", summary.Total, "optimized", summary.Optimized,
			"saved_mb", fmt.Sprintf("%.2f", float64(summary.SavedBytes)/1024/1024))
	}

	files, err := photos.Scan(layout.PhotoDir, nil)
	if err != nil {
		return err
	}
	slog.Info("Photos scanned", "files", len(files))

	loader := catalog.NewLoader(layout.CatalogPath, opts.Brand, opts.Season, columns, mapping.EANColumn())
	cat, err := loader.Load()
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}
	rep.SkippedRows = cat.SkippedRows()
	slog.Info("Catalog loaded", "entries", cat.Len(), "skipped_rows", cat.SkippedRows())

	matcher := match.New(cat)
	var res *match.Result
	if opts.Mode == "attributes" {
		res = matcher.ByAttributes(files)
	} else {
		res = matcher.ByEAN(files)
	}

	renamer := rename.New(layout.DestDir, opts.CopyOnly)
	for _, m := range res.Matches {
		if _, err := renamer.Rename(m); err != nil {
			slog.Warn("Failed to rename file", "file", m.SourcePath, "ean", m.EAN, "error", err)
			rep.AddFailure(m.SourcePath, m.EAN, err)
			continue
		}
		rep.AddRenamed(m.EAN)
	}
	for _, name := range res.Unmatched {
		rep.AddUnmatched(name)
	}

	rep.Finalize(cat.EANs())

	reportPath, err := rep.Save(layout.ReportsDir)
	if err != nil {
		return fmt.Errorf("failed to save report: %w", err)
	}
	csvPath, err := rep.WriteMissingCSV(layout.ReportsDir, columns, cat)
	if err != nil {
		return fmt.Errorf("failed to write missing-EAN report: %w", err)
	}

	printRunSummary(rep)
	fmt.Printf("\nReport saved to: %s\n", reportPath)
	if csvPath != "" {
		fmt.Printf("Missing-EAN CSV: %s\n", csvPath)
	}

	return nil
}

func loadMapping(configPath string) (*brands.Mapping, error) {
	if configPath == "" {
		return brands.Defaults(), nil
	}
	return brands.Load(configPath)
}
