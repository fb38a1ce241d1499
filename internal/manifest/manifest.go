// Package manifest reads and writes the extension and formatter versions
// stored in the package manifest.
package manifest

import (
	"context"
	"fmt"

	"github.com/indaco/relbump/internal/apperrors"
	"github.com/indaco/relbump/internal/core"
	"github.com/indaco/relbump/internal/parser"
	"github.com/indaco/relbump/internal/semver"
)

// Default field names used by package.json.
const (
	DefaultVersionField   = "version"
	DefaultFormatterField = "gdscript_formatter_version"
)

// VersionPair is the extension version together with the bundled formatter version.
type VersionPair struct {
	Extension string
	Formatter string
}

// Config locates the manifest and its two version fields.
type Config struct {
	Path           string
	Format         parser.Format
	VersionField   string
	FormatterField string
}

// Store is a read/write view of the manifest.
type Store struct {
	cfg Config
	rw  *parser.ReadWriter
}

// NewStore returns a Store for cfg. Empty fields fall back to the
// package.json defaults and the format is inferred from the path.
func NewStore(fs core.FileSystem, cfg Config) *Store {
	if cfg.Format == "" {
		cfg.Format = parser.FormatForFile(cfg.Path)
	}
	if cfg.VersionField == "" {
		cfg.VersionField = DefaultVersionField
	}
	if cfg.FormatterField == "" {
		cfg.FormatterField = DefaultFormatterField
	}
	return &Store{cfg: cfg, rw: parser.NewReadWriter(fs)}
}

// Path returns the manifest path.
func (s *Store) Path() string {
	return s.cfg.Path
}

// Read returns the current versions. The extension version must be
// MAJOR.MINOR.PATCH; anything else is a ParseError.
func (s *Store) Read(ctx context.Context) (VersionPair, error) {
	fields, err := s.rw.ReadFields(ctx, s.cfg.Path, s.cfg.Format, s.cfg.VersionField, s.cfg.FormatterField)
	if err != nil {
		return VersionPair{}, err
	}

	pair := VersionPair{
		Extension: fields[s.cfg.VersionField],
		Formatter: fields[s.cfg.FormatterField],
	}

	if _, err := semver.ParseVersion(pair.Extension); err != nil {
		return VersionPair{}, &apperrors.ParseError{Path: s.cfg.Path, Err: fmt.Errorf("field %q: %w", s.cfg.VersionField, err)}
	}

	return pair, nil
}

// Write stores both versions and rewrites the manifest, keeping all other fields.
func (s *Store) Write(ctx context.Context, pair VersionPair) error {
	return s.rw.WriteFields(ctx, s.cfg.Path, s.cfg.Format,
		parser.FieldValue{Field: s.cfg.VersionField, Value: pair.Extension},
		parser.FieldValue{Field: s.cfg.FormatterField, Value: pair.Formatter},
	)
}
