package release

import (
	"context"
	"errors"

	"github.com/indaco/relbump/internal/config"
	"github.com/indaco/relbump/internal/core"
	"github.com/indaco/relbump/internal/manifest"
	"github.com/indaco/relbump/internal/parser"
)

// Drift compares the formatter reference in a rewritten text file with
// what the current manifest versions would render to.
type Drift struct {
	Name     string
	Path     string
	Found    string
	Expected string
}

// InSync reports whether the file already carries the expected text.
func (d Drift) InSync() bool {
	return d.Found == d.Expected
}

// CheckDrift reads the README and script references for current. A file
// where the pattern matches nothing reports an empty Found. Read errors
// are returned.
func CheckDrift(ctx context.Context, fs core.FileSystem, cfg *config.Config, current manifest.VersionPair) ([]Drift, error) {
	reader := parser.NewReader(fs)
	data := TemplateData(Plan{Next: current}, cfg)

	targets := []struct {
		name string
		file config.TextFileConfig
	}{
		{"README", cfg.Readme},
		{"script", cfg.Script},
	}

	drifts := make([]Drift, 0, len(targets))
	for _, t := range targets {
		expected, err := t.file.Render(data)
		if err != nil {
			return nil, err
		}
		found, err := reader.Match(ctx, t.file.Path, t.file.Pattern)
		if err != nil && !errors.Is(err, parser.ErrNoMatch) {
			return nil, err
		}
		drifts = append(drifts, Drift{Name: t.name, Path: t.file.Path, Found: found, Expected: expected})
	}
	return drifts, nil
}
