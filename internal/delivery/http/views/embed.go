// Package views holds the HTML templates rendered by the page handlers.
package views

import "embed"

//go:embed layouts/*.html dashboard/*.html *.html
var FS embed.FS
