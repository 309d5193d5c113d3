// Package web встраивает шаблоны и статику в бинарник.
package web

import "embed"

//go:embed templates static
var FS embed.FS
