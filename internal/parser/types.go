package parser

import "strings"

// Format represents the supported document formats.
type Format string

const (
	// FormatJSON is for JSON files (package.json, etc.).
	FormatJSON Format = "json"

	// FormatYAML is for YAML files.
	FormatYAML Format = "yaml"

	// FormatTOML is for TOML files.
	FormatTOML Format = "toml"
)

// String returns the string representation of the format.
func (f Format) String() string {
	return string(f)
}

// IsStructured reports whether fields can be addressed by dot notation.
func (f Format) IsStructured() bool {
	return f == FormatJSON || f == FormatYAML || f == FormatTOML
}

// FieldValue pairs a dot-notation field with the string to store in it.
type FieldValue struct {
	Field string
	Value string
}

// FormatForFile detects the structured format from a file extension.
// Unknown extensions default to JSON, the package manifest format.
func FormatForFile(filename string) Format {
	lower := strings.ToLower(filename)

	switch {
	case strings.HasSuffix(lower, ".yaml"), strings.HasSuffix(lower, ".yml"):
		return FormatYAML
	case strings.HasSuffix(lower, ".toml"):
		return FormatTOML
	default:
		return FormatJSON
	}
}
