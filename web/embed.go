// Package web carries the embedded server-side templates.
package web

import "embed"

// Templates holds the page templates rendered by the handlers.
//
//go:embed templates/*.html.tmpl
var Templates embed.FS
