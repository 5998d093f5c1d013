package renamecmd

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/studiofoto/photorenamer/internal/report"
)

// NewReportCmd creates the report command, re-rendering a saved run report.
func NewReportCmd() *cobra.Command {
	var reportsDir string
	var runFile string
	var format string

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Render a saved run report",
		Long: `Render a run report written by a previous rename run.

Without --run the most recent report in the reports directory is used.`,
		Example: `  # Latest report of a season, human readable
  photorenamer report --reports pe25/reports

  # A specific run as CSV
  photorenamer report --run pe25/reports/report_liujo_2025-03-01_10-00-00.json --format csv`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if runFile == "" && reportsDir == "" {
				return fmt.Errorf("either --reports or --run is required")
			}
			return executeReport(reportsDir, runFile, format)
		},
	}

	cmd.Flags().StringVar(&reportsDir, "reports", "", "Reports directory (latest run is used)")
	cmd.Flags().StringVar(&runFile, "run", "", "Path to a specific run report JSON")
	cmd.Flags().StringVar(&format, "format", "text", "Output format: text, json, or csv")

	return cmd
}

func executeReport(reportsDir, runFile, format string) error {
	if runFile == "" {
		latest, err := report.Latest(reportsDir)
		if err != nil {
			return err
		}
		runFile = latest
	}

	rep, err := report.Load(runFile)
	if err != nil {
		return fmt.Errorf("failed to load report: %w", err)
	}

	switch format {
	case "text":
		return printTextReport(rep)
	case "json":
		return printJSONReport(rep)
	case "csv":
		return printCSVReport(rep)
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

func printTextReport(rep *report.RunReport) error {
	fmt.Println("========================================")
	fmt.Printf("Photo Rename Report\n")
	fmt.Println("========================================")
	fmt.Printf("Season:  %s\n", rep.Season)
	fmt.Printf("Brand:   %s\n", rep.Brand)
	fmt.Printf("Mode:    %s\n", rep.Mode)
	fmt.Printf("Started: %s\n", rep.StartedAt.Format("2006-01-02 15:04:05"))
	fmt.Println()

	printRunSummary(rep)

	if len(rep.MissingFiles) > 0 {
		fmt.Println("\nCatalog EANs with no matching file:")
		for _, ean := range rep.MissingFiles {
			fmt.Printf("  %s\n", ean)
		}
	}

	if len(rep.UnmatchedFiles) > 0 {
		fmt.Println("\nFiles with no catalog match:")
		for _, name := range rep.UnmatchedFiles {
			fmt.Printf("  %s\n", name)
		}
	}

	if len(rep.Failures) > 0 {
		fmt.Println("\nRename failures:")
		for _, f := range rep.Failures {
			fmt.Printf("  %s (ean %s): %s\n", f.Path, f.EAN, f.Reason)
		}
	}

	return nil
}

func printJSONReport(rep *report.RunReport) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(rep)
}

// printCSVReport emits one line per EAN or file with its outcome.
func printCSVReport(rep *report.RunReport) error {
	writer := csv.NewWriter(os.Stdout)
	defer writer.Flush()

	if err := writer.Write([]string{"outcome", "key"}); err != nil {
		return err
	}

	for _, ean := range rep.Renamed {
		if err := writer.Write([]string{"renamed", ean}); err != nil {
			return err
		}
	}
	for _, ean := range rep.MissingFiles {
		if err := writer.Write([]string{"missing_file", ean}); err != nil {
			return err
		}
	}
	for _, name := range rep.UnmatchedFiles {
		if err := writer.Write([]string{"unmatched_file", name}); err != nil {
			return err
		}
	}

	return nil
}

func printRunSummary(rep *report.RunReport) {
	fmt.Println("========================================")
	fmt.Println("Run Summary")
	fmt.Println("========================================")
	fmt.Printf("Catalog entries:   %d\n", rep.CatalogEntries)
	fmt.Printf("Skipped rows:      %d\n", rep.SkippedRows)
	fmt.Printf("Renamed:           %d\n", len(rep.Renamed))
	fmt.Printf("Missing files:     %d\n", len(rep.MissingFiles))
	fmt.Printf("Unmatched files:   %d\n", len(rep.UnmatchedFiles))
	fmt.Printf("Failures:          %d\n", len(rep.Failures))
	fmt.Printf("Elapsed:           %.2fs\n", rep.ElapsedSeconds)
	fmt.Println("========================================")
}
