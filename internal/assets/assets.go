package assets

import (
	"embed"
	"html/template"
)

//go:embed web/templates/*
var TemplateFS embed.FS

// ParseTemplates parses all embedded templates with the given function map
func ParseTemplates(funcMap template.FuncMap) (*template.Template, error) {
	return template.New("").Funcs(funcMap).ParseFS(TemplateFS, "web/templates/*.html")
}
