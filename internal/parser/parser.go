package parser

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/indaco/relbump/internal/apperrors"
	"github.com/indaco/relbump/internal/core"
	"github.com/pelletier/go-toml/v2"
	"github.com/tidwall/gjson"
)

// Reader provides field reading capabilities for multiple file formats.
type Reader struct {
	fs core.FileSystem
}

// NewReader creates a new Reader with the given filesystem.
func NewReader(fs core.FileSystem) *Reader {
	return &Reader{fs: fs}
}

// ErrNoMatch is returned by Match when the pattern finds nothing.
var ErrNoMatch = errors.New("pattern did not match")

// Match returns the first match of pattern in the file at path. When the
// pattern has a capturing group the first group is returned instead of
// the whole match.
func (r *Reader) Match(ctx context.Context, path, pattern string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("file path is required")
	}
	if pattern == "" {
		return "", fmt.Errorf("pattern is required")
	}

	re, err := regexp.Compile(pattern)
	if err != nil {
		return "", fmt.Errorf("invalid regex pattern %q: %w", pattern, err)
	}

	data, err := r.fs.ReadFile(ctx, path)
	if err != nil {
		return "", &apperrors.IOError{Op: "read", Path: path, Err: err}
	}

	matches := re.FindSubmatch(data)
	switch {
	case matches == nil:
		return "", &apperrors.ParseError{Path: path, Err: fmt.Errorf("%w: %q", ErrNoMatch, pattern)}
	case len(matches) > 1:
		return string(matches[1]), nil
	default:
		return string(matches[0]), nil
	}
}

// ReadFields reads several string fields from one structured document,
// parsing the file once.
func (r *Reader) ReadFields(ctx context.Context, path string, format Format, fields ...string) (map[string]string, error) {
	if path == "" {
		return nil, fmt.Errorf("file path is required")
	}
	if !format.IsStructured() {
		return nil, fmt.Errorf("format %s does not support named fields", format)
	}

	data, err := r.fs.ReadFile(ctx, path)
	if err != nil {
		return nil, &apperrors.IOError{Op: "read", Path: path, Err: err}
	}

	return decodeFields(data, path, format, fields)
}

func decodeFields(data []byte, path string, format Format, fields []string) (map[string]string, error) {
	for _, f := range fields {
		if f == "" {
			return nil, &apperrors.ParseError{Path: path, Err: fmt.Errorf("field is required for %s format", strings.ToUpper(format.String()))}
		}
	}

	switch format {
	case FormatJSON:
		return readJSON(data, path, fields)
	case FormatYAML:
		var obj map[string]any
		if err := yaml.Unmarshal(data, &obj); err != nil {
			return nil, &apperrors.ParseError{Path: path, Err: fmt.Errorf("invalid YAML: %w", err)}
		}
		return lookupFields(obj, path, fields)
	case FormatTOML:
		var obj map[string]any
		if err := toml.Unmarshal(data, &obj); err != nil {
			return nil, &apperrors.ParseError{Path: path, Err: fmt.Errorf("invalid TOML: %w", err)}
		}
		return lookupFields(obj, path, fields)
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

// readJSON extracts string fields using gjson dot paths.
func readJSON(data []byte, path string, fields []string) (map[string]string, error) {
	if !gjson.ValidBytes(data) {
		return nil, &apperrors.ParseError{Path: path, Err: errors.New("invalid JSON")}
	}
	if !gjson.ParseBytes(data).IsObject() {
		return nil, &apperrors.ParseError{Path: path, Err: errors.New("top-level JSON value is not an object")}
	}

	out := make(map[string]string, len(fields))
	for _, field := range fields {
		res := gjson.GetBytes(data, field)
		if !res.Exists() {
			return nil, &apperrors.ParseError{Path: path, Err: fmt.Errorf("field %q not found", field)}
		}
		if res.Type != gjson.String {
			return nil, &apperrors.ParseError{Path: path, Err: fmt.Errorf("field %q is not a string", field)}
		}
		out[field] = res.String()
	}
	return out, nil
}

func lookupFields(obj map[string]any, path string, fields []string) (map[string]string, error) {
	out := make(map[string]string, len(fields))
	for _, field := range fields {
		value, err := getNestedValue(obj, field)
		if err != nil {
			return nil, &apperrors.ParseError{Path: path, Err: err}
		}
		s, ok := value.(string)
		if !ok {
			return nil, &apperrors.ParseError{Path: path, Err: fmt.Errorf("field %q is not a string", field)}
		}
		out[field] = s
	}
	return out, nil
}

// getNestedValue retrieves a value from a nested map using dot notation.
// Example: "engines.vscode" accesses obj["engines"]["vscode"]
func getNestedValue(obj map[string]any, field string) (any, error) {
	if field == "" {
		return nil, fmt.Errorf("field path cannot be empty")
	}

	parts := strings.Split(field, ".")
	current := any(obj)

	for i, part := range parts {
		currentMap, ok := current.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("field %q is not an object at path %q", strings.Join(parts[:i], "."), part)
		}

		value, exists := currentMap[part]
		if !exists {
			return nil, fmt.Errorf("field %q not found", field)
		}

		current = value
	}

	return current, nil
}
