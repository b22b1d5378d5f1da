// Package web provides the embedded HTML templates and stylesheet.
package web

import (
	"embed"
	"html/template"
	"io/fs"
)

//go:embed templates/*.html
var templateFiles embed.FS

//go:embed static/*
var staticFiles embed.FS

// Templates parses every page and partial
func Templates() (*template.Template, error) {
	return template.ParseFS(templateFiles, "templates/*.html")
}

// StaticFileSystem returns the stylesheet directory as root
func StaticFileSystem() (fs.FS, error) {
	return fs.Sub(staticFiles, "static")
}
