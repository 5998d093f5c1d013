package renamecmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/studiofoto/photorenamer/internal/match"
	"github.com/studiofoto/photorenamer/internal/photos"
)

// NewInspectCmd creates the inspect command (useful for checking what the
// matcher would extract from a folder before running a rename).
func NewInspectCmd() *cobra.Command {
	var showEXIF bool

	cmd := &cobra.Command{
		Use:   "inspect DIR",
		Short: "Inspect a photo directory (EAN candidates, EXIF, sizes)",
		Long: `List the photos in a directory together with the EAN candidate the
matcher would extract from each filename, the file size, and optionally
EXIF capture date and pixel dimensions.`,
		Example: `  # What would the matcher see?
  photorenamer inspect pe25/photoes/liujo

  # Skip the EXIF read for speed
  photorenamer inspect pe25/photoes/liujo --exif=false`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return executeInspect(args[0], showEXIF)
		},
	}

	cmd.Flags().BoolVar(&showEXIF, "exif", true, "Read EXIF capture date and dimensions")

	return cmd
}

func executeInspect(dir string, showEXIF bool) error {
	files, err := photos.Scan(dir, nil)
	if err != nil {
		return err
	}

	fmt.Printf("Found %d photos in %s\n", len(files), dir)
	fmt.Println(strings.Repeat("=", 80))

	withEAN := 0
	for _, f := range files {
		ean := match.ExtractEAN(f.Name)
		if ean != "" {
			withEAN++
		} else {
			ean = "-"
		}

		fmt.Printf("%-40s  %8.2fMB  ean: %s\n", f.Name, float64(f.Size)/1024/1024, ean)

		if showEXIF {
			meta, err := photos.Inspect(f.Path)
			if err != nil {
				fmt.Printf("  (unreadable: %v)\n", err)
				continue
			}
			if meta.HasEXIF && !meta.Taken.IsZero() {
				fmt.Printf("  taken: %s", meta.Taken.Format("2006-01-02 15:04:05"))
			}
			if meta.Width > 0 {
				fmt.Printf("  %dx%d", meta.Width, meta.Height)
			}
			if meta.HasEXIF || meta.Width > 0 {
				fmt.Println()
			}
		}
	}

	fmt.Println(strings.Repeat("=", 80))
	fmt.Printf("%d/%d filenames carry an EAN candidate\n", withEAN, len(files))

	return nil
}
