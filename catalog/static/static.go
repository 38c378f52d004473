package static

import "embed"

// Assets holds the stylesheets served by the catalog
//
//go:embed *.css
var Assets embed.FS
