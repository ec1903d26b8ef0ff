// Package web embeds the browser page served at the site root.
package web

import "embed"

//go:embed static
var Static embed.FS
