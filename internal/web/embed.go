// Package web holds the landing page and static assets compiled into the
// binary.
package web

import (
	"embed"
	"io/fs"
)

//go:embed views/* public/*
var assets embed.FS

// Views returns the page templates rooted at views/.
func Views() fs.FS { return sub("views") }

// Public returns the static assets rooted at public/.
func Public() fs.FS { return sub("public") }

func sub(dir string) fs.FS {
	s, err := fs.Sub(assets, dir)
	if err != nil {
		return assets
	}
	return s
}
