package renamecmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/studiofoto/photorenamer/internal/optimize"
)

// NewOptimizeCmd creates the optimize command, running the JPEG pass alone.
func NewOptimizeCmd() *cobra.Command {
	var maxSizeMB float64
	var quality int

	cmd := &cobra.Command{
		Use:   "optimize DIR",
		Short: "Shrink oversized JPEGs in a directory",
		Long: `Optimize every JPEG in a directory that exceeds the size threshold.

Files are shrunk in place with jpegoptim when it is installed, otherwise
with an in-process re-encode. Files at or under the threshold are left
untouched.`,
		Example: `  # Default 1 MiB threshold
  photorenamer optimize pe25/photoes/liujo

  # More aggressive
  photorenamer optimize pe25/photoes/liujo --max-size-mb 0.5 --quality 75`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return executeOptimize(args[0], maxSizeMB, quality)
		},
	}

	cmd.Flags().Float64Var(&maxSizeMB, "max-size-mb", optimize.DefaultMaxSizeMB, "Only optimize JPEGs above this size")
	cmd.Flags().IntVar(&quality, "quality", optimize.DefaultQuality, "JPEG quality")

	return cmd
}

func executeOptimize(dir string, maxSizeMB float64, quality int) error {
	optimizer := optimize.New(maxSizeMB, quality)

	summary, results, err := optimizer.Folder(dir)
	if err != nil {
		return fmt.Errorf("failed to optimize photos: %w", err)
	}

	for _, res := range results {
		if res.Optimized {
			fmt.Printf("Optimized %s: %.2fMB -> %.2fMB (%.1f%% reduction)\n",
				res.Path,
				float64(res.BeforeBytes)/1024/1024,
				float64(res.AfterBytes)/1024/1024,
				res.Reduction())
		}
	}

	fmt.Println("\nOptimization summary:")
	fmt.Printf("Total images:     %d\n", summary.Total)
	fmt.Printf("Optimized images: %d\n", summary.Optimized)
	fmt.Printf("Space saved:      %.2fMB\n", float64(summary.SavedBytes)/1024/1024)

	return nil
}
