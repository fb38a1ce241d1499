// Package release computes the next extension version and applies it to
// the manifest, README, download script and changelog in a fixed order.
package release

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/indaco/relbump/internal/config"
	"github.com/indaco/relbump/internal/manifest"
	"github.com/indaco/relbump/internal/semver"
)

// ErrEmptyFormatterVersion is returned when no formatter version is given.
var ErrEmptyFormatterVersion = errors.New("formatter version must not be empty")

// Now is a function variable so tests can pin the changelog date.
var Now = time.Now

// Plan is a computed release: where the versions are and where they go.
type Plan struct {
	Current manifest.VersionPair
	Next    manifest.VersionPair
	Impact  semver.Impact
	Force   bool
	Date    time.Time
}

// NewPlan bumps the current extension version by impact and records
// formatter as the next formatter version. The formatter version is an
// opaque string and only has surrounding whitespace removed.
func NewPlan(current manifest.VersionPair, formatter string, impact semver.Impact, force bool, date time.Time) (Plan, error) {
	formatter = strings.TrimSpace(formatter)
	if formatter == "" {
		return Plan{}, ErrEmptyFormatterVersion
	}

	next, err := semver.BumpString(current.Extension, impact)
	if err != nil {
		return Plan{}, fmt.Errorf("bump %s version %q: %w", impact, current.Extension, err)
	}

	return Plan{
		Current: current,
		Next:    manifest.VersionPair{Extension: next, Formatter: formatter},
		Impact:  impact,
		Force:   force,
		Date:    date,
	}, nil
}

// FormatterUpdated reports whether the formatter version changes.
func (p Plan) FormatterUpdated() bool {
	return p.Next.Formatter != p.Current.Formatter
}

// IsNoop reports whether the run should stop without touching any file.
func (p Plan) IsNoop() bool {
	return !p.FormatterUpdated() && !p.Force
}

// IsDowngrade reports whether the next formatter version sorts before the
// current one. Versions that are not semver never count as a downgrade.
func (p Plan) IsDowngrade() bool {
	c, ok := semver.CompareFormatter(p.Next.Formatter, p.Current.Formatter)
	return ok && c < 0
}

// Tag returns the git tag name for the next extension version.
func (p Plan) Tag(prefix string) string {
	return prefix + p.Next.Extension
}

// TemplateData returns the values rendered into the configured templates.
func TemplateData(p Plan, cfg *config.Config) config.TemplateData {
	return config.TemplateData{
		FormatterName:    cfg.FormatterName,
		FormatterVersion: p.Next.Formatter,
		ExtensionVersion: p.Next.Extension,
		Tag:              p.Tag(cfg.TagPrefix),
	}
}

// Commands returns the git commands the operator should run after a release.
// They are printed, never executed.
func Commands(p Plan, cfg *config.Config) ([]string, error) {
	data := TemplateData(p, cfg)

	commit, err := config.RenderTemplate(cfg.Git.CommitMessage, data)
	if err != nil {
		return nil, err
	}
	tagMsg, err := config.RenderTemplate(cfg.Git.TagMessage, data)
	if err != nil {
		return nil, err
	}

	return []string{
		"git add .",
		fmt.Sprintf("git commit -m %s", shellQuote(commit)),
		"git push",
		fmt.Sprintf("git tag %s -m %s", data.Tag, shellQuote(tagMsg)),
		fmt.Sprintf("git push origin %s", data.Tag),
	}, nil
}

// shellQuote wraps s in single quotes for POSIX shells.
func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
