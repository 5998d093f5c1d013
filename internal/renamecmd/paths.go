package renamecmd

import "path/filepath"

// Layout is the conventional on-disk season tree:
//
//	<season>/photoes/<brand>/   incoming photos
//	<season>/excels/<brand>.xlsx  the brand catalog
//	<season>/renamed/<brand>/   destination for renamed files
//	<season>/reports/           run reports
//
// The misspelt "photoes" folder is kept for compatibility with existing
// season trees.
type Layout struct {
	PhotoDir    string
	CatalogPath string
	DestDir     string
	ReportsDir  string
}

// DefaultLayout derives the layout for a season/brand pair rooted in the
// working directory.
func DefaultLayout(season, brand string) Layout {
	return Layout{
		PhotoDir:    filepath.Join(season, "photoes", brand),
		CatalogPath: filepath.Join(season, "excels", brand+".xlsx"),
		DestDir:     filepath.Join(season, "renamed", brand),
		ReportsDir:  filepath.Join(season, "reports"),
	}
}
