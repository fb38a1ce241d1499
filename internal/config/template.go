package config

import (
	"fmt"

	"github.com/cbroglie/mustache"
)

// Variables available to replacement and git message templates.
const (
	VarFormatterName    = "formatter_name"
	VarFormatterVersion = "formatter_version"
	VarExtensionVersion = "version"
	VarTag              = "tag"
)

// TemplateData holds the values rendered into mustache templates.
type TemplateData struct {
	FormatterName    string
	FormatterVersion string
	ExtensionVersion string
	Tag              string
}

func (d TemplateData) context() map[string]any {
	return map[string]any{
		VarFormatterName:    d.FormatterName,
		VarFormatterVersion: d.FormatterVersion,
		VarExtensionVersion: d.ExtensionVersion,
		VarTag:              d.Tag,
	}
}

// RenderTemplate renders tmpl with data. Output is never HTML-escaped.
func RenderTemplate(tmpl string, data TemplateData) (string, error) {
	out, err := mustache.RenderRaw(tmpl, true, data.context())
	if err != nil {
		return "", fmt.Errorf("invalid template %q: %w", tmpl, err)
	}
	return out, nil
}

// checkTemplate reports whether tmpl parses.
func checkTemplate(tmpl string) error {
	_, err := mustache.ParseStringRaw(tmpl, true)
	return err
}
