package html

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.tmpl
var embeddedTemplates embed.FS

// DefaultTemplate is the template rendered when no override is configured.
const DefaultTemplate = "form.tmpl"

// TemplatesFS exposes the embedded template bundle.
func TemplatesFS() fs.FS {
	sub, err := fs.Sub(embeddedTemplates, "templates")
	if err != nil {
		return embeddedTemplates
	}
	return sub
}
