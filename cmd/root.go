package cmd

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/studiofoto/photorenamer/internal/renamecmd"
)

func NewRootCmd() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "photorenamer",
		Short: "Batch photo renamer driven by spreadsheet EAN catalogs",
		Long: `Photorenamer renames batches of product photos using lookup data read from
spreadsheet files (CSV, XLSX, Parquet), one brand and season at a time.

Each spreadsheet row maps an EAN code to descriptive product attributes.
Photos are matched against the catalog, moved into the destination layout,
optionally shrunk with jpegoptim, and every run produces a report of
renamed vs. unmatched files.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()

			level := slog.LevelInfo
			if verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
		},
	}

	cmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Verbose logging")

	// Add subcommands
	cmd.AddCommand(renamecmd.NewRenameCmd())
	cmd.AddCommand(renamecmd.NewOptimizeCmd())
	cmd.AddCommand(renamecmd.NewReportCmd())
	cmd.AddCommand(renamecmd.NewInspectCmd())
	cmd.AddCommand(renamecmd.NewBrandsCmd())

	return cmd
}
