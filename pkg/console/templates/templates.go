// Package templates embeds the console's HTML templates.
package templates

import "embed"

//go:embed *.html
var FS embed.FS
