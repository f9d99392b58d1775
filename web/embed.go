// Package web carries the server-rendered pages and their stylesheet.
package web

import (
	"embed"
	"io/fs"
)

//go:embed templates static
var assets embed.FS

// TemplatePatterns lists the template globs in parse order: the base layout
// first so pages can fill its blocks.
var TemplatePatterns = []string{
	"templates/layouts/*.html",
	"templates/partials/*.html",
	"templates/pages/*.html",
}

// Templates returns the embedded tree the TemplatePatterns are relative to.
func Templates() fs.FS {
	return assets
}

// Static returns the asset tree mounted under /static/.
func Static() (fs.FS, error) {
	return fs.Sub(assets, "static")
}
