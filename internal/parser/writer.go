package parser

import (
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/indaco/relbump/internal/apperrors"
	"github.com/indaco/relbump/internal/core"
	"github.com/pelletier/go-toml/v2"
	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"
)

// jsonIndent is the indentation used when normalising JSON documents.
// Width 0 keeps every array element on its own line.
var jsonIndent = &pretty.Options{Width: 0, Prefix: "", Indent: "  ", SortKeys: false}

// Writer provides field writing capabilities for structured formats.
type Writer struct {
	fs core.FileSystem
}

// NewWriter creates a new Writer with the given filesystem.
func NewWriter(fs core.FileSystem) *Writer {
	return &Writer{fs: fs}
}

// WriteFields sets every given field and writes the whole document back.
// Fields not named are preserved.
func (w *Writer) WriteFields(ctx context.Context, path string, format Format, values ...FieldValue) error {
	if path == "" {
		return fmt.Errorf("file path is required")
	}
	if !format.IsStructured() {
		return fmt.Errorf("invalid format: %s", format)
	}
	for _, v := range values {
		if v.Field == "" {
			return fmt.Errorf("field is required for %s format", strings.ToUpper(format.String()))
		}
	}

	data, err := w.fs.ReadFile(ctx, path)
	if err != nil {
		return &apperrors.IOError{Op: "read", Path: path, Err: err}
	}

	var updated []byte
	switch format {
	case FormatJSON:
		updated, err = setJSON(data, path, values)
	case FormatYAML:
		updated, err = setYAML(data, path, values)
	case FormatTOML:
		updated, err = setTOML(data, path, values)
	}
	if err != nil {
		return err
	}

	if err := w.fs.WriteFile(ctx, path, updated, core.PermDefault); err != nil {
		return &apperrors.IOError{Op: "write", Path: path, Err: err}
	}

	return nil
}

// setJSON uses sjson so only the named fields change and key order is kept,
// then re-indents with two spaces.
func setJSON(data []byte, path string, values []FieldValue) ([]byte, error) {
	if !gjson.ValidBytes(data) {
		return nil, &apperrors.ParseError{Path: path, Err: fmt.Errorf("invalid JSON")}
	}

	updated := data
	for _, v := range values {
		var err error
		updated, err = sjson.SetBytes(updated, v.Field, v.Value)
		if err != nil {
			return nil, &apperrors.ParseError{Path: path, Err: fmt.Errorf("failed to set %q: %w", v.Field, err)}
		}
	}

	return ensureTrailingNewline(pretty.PrettyOptions(updated, jsonIndent)), nil
}

// setYAML decodes into an ordered map so the document keeps its key order.
func setYAML(data []byte, path string, values []FieldValue) ([]byte, error) {
	var doc yaml.MapSlice
	if err := yaml.UnmarshalWithOptions(data, &doc, yaml.UseOrderedMap()); err != nil {
		return nil, &apperrors.ParseError{Path: path, Err: fmt.Errorf("invalid YAML: %w", err)}
	}

	for _, v := range values {
		var err error
		doc, err = setOrderedValue(doc, strings.Split(v.Field, "."), v.Value)
		if err != nil {
			return nil, &apperrors.ParseError{Path: path, Err: err}
		}
	}

	out, err := yaml.MarshalWithOptions(doc, yaml.Indent(2))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal YAML for %q: %w", path, err)
	}
	return ensureTrailingNewline(out), nil
}

func setTOML(data []byte, path string, values []FieldValue) ([]byte, error) {
	var obj map[string]any
	if err := toml.Unmarshal(data, &obj); err != nil {
		return nil, &apperrors.ParseError{Path: path, Err: fmt.Errorf("invalid TOML: %w", err)}
	}

	for _, v := range values {
		if err := setNestedValue(obj, v.Field, v.Value); err != nil {
			return nil, &apperrors.ParseError{Path: path, Err: err}
		}
	}

	out, err := toml.Marshal(obj)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal TOML for %q: %w", path, err)
	}
	return ensureTrailingNewline(out), nil
}

// setOrderedValue sets parts in doc, appending keys that do not exist yet.
func setOrderedValue(doc yaml.MapSlice, parts []string, value string) (yaml.MapSlice, error) {
	key := parts[0]
	for i, item := range doc {
		if fmt.Sprint(item.Key) != key {
			continue
		}
		if len(parts) == 1 {
			doc[i].Value = value
			return doc, nil
		}
		child, ok := item.Value.(yaml.MapSlice)
		if !ok {
			return nil, fmt.Errorf("field %q is not an object", key)
		}
		updated, err := setOrderedValue(child, parts[1:], value)
		if err != nil {
			return nil, err
		}
		doc[i].Value = updated
		return doc, nil
	}

	if len(parts) == 1 {
		return append(doc, yaml.MapItem{Key: key, Value: value}), nil
	}
	child, err := setOrderedValue(yaml.MapSlice{}, parts[1:], value)
	if err != nil {
		return nil, err
	}
	return append(doc, yaml.MapItem{Key: key, Value: child}), nil
}

// setNestedValue sets a value in a nested map using dot notation.
// Example: "tool.poetry.version" sets obj["tool"]["poetry"]["version"] = value
func setNestedValue(obj map[string]any, field string, value any) error {
	if field == "" {
		return fmt.Errorf("field path cannot be empty")
	}

	parts := strings.Split(field, ".")
	current := obj

	for i := 0; i < len(parts)-1; i++ {
		part := parts[i]

		next, exists := current[part]
		if !exists {
			newMap := make(map[string]any)
			current[part] = newMap
			current = newMap
			continue
		}

		nextMap, ok := next.(map[string]any)
		if !ok {
			return fmt.Errorf("field %q is not an object at path %q", strings.Join(parts[:i+1], "."), part)
		}

		current = nextMap
	}

	current[parts[len(parts)-1]] = value
	return nil
}

func ensureTrailingNewline(b []byte) []byte {
	if len(b) > 0 && b[len(b)-1] != '\n' {
		b = append(b, '\n')
	}
	return b
}

// ReadWriter combines Reader and Writer functionality.
type ReadWriter struct {
	*Reader
	*Writer
}

// NewReadWriter creates a new ReadWriter with the given filesystem.
func NewReadWriter(fs core.FileSystem) *ReadWriter {
	return &ReadWriter{
		Reader: NewReader(fs),
		Writer: NewWriter(fs),
	}
}
