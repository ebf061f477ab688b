// Package web holds the server-rendered page templates.
package web

import (
	"embed"
	"html/template"
	"strings"
	"time"

	"inkboard/services/blog/internal/entity"
)

//go:embed templates/*.html
var templateFS embed.FS

var funcs = template.FuncMap{
	"categoryLabel": func(c entity.Category) string { return c.Label() },
	"formatDate":    func(t time.Time) string { return t.Format("Jan 2, 2006") },
	"truncate": func(s string, n int) string {
		r := []rune(s)
		if len(r) <= n {
			return s
		}
		return strings.TrimSpace(string(r[:n])) + "…"
	},
	"add": func(a, b int) int { return a + b },
}

// Templates parses every page. Each file defines one template named after the file.
func Templates() (*template.Template, error) {
	return template.New("").Funcs(funcs).ParseFS(templateFS, "templates/*.html")
}
