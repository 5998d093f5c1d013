package renamecmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// NewBrandsCmd creates the brands command listing the known column mappings.
func NewBrandsCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "brands",
		Short: "List known brands and their spreadsheet columns",
		Example: `  # Built-in mappings
  photorenamer brands

  # Including a custom config
  photorenamer brands --config brands.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			mapping, err := loadMapping(configPath)
			if err != nil {
				return err
			}

			for _, name := range mapping.Names() {
				columns, _ := mapping.Columns(name)
				fmt.Printf("%-10s %s\n", name, strings.Join(columns, ", "))
			}
			fmt.Printf("\nEAN column: %s\n", mapping.EANColumn())

			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "Brand column mapping YAML")

	return cmd
}
