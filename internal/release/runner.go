package release

import (
	"context"

	"github.com/indaco/relbump/internal/apperrors"
	"github.com/indaco/relbump/internal/changelog"
	"github.com/indaco/relbump/internal/config"
	"github.com/indaco/relbump/internal/core"
	"github.com/indaco/relbump/internal/manifest"
	"github.com/indaco/relbump/internal/operations"
	"github.com/indaco/relbump/internal/parser"
	"github.com/indaco/relbump/internal/rewrite"
)

// Runner applies a Plan to the project files described by a Config.
type Runner struct {
	fs        core.FileSystem
	cfg       *config.Config
	store     *manifest.Store
	rewriter  *rewrite.Rewriter
	changelog *changelog.Writer
}

// NewRunner wires the updaters for cfg on top of fs.
func NewRunner(fs core.FileSystem, cfg *config.Config) *Runner {
	return &Runner{
		fs:       fs,
		cfg:      cfg,
		store:    NewStore(fs, cfg),
		rewriter: rewrite.NewRewriter(fs),
		changelog: changelog.NewWriter(fs, changelog.Header{
			Lines:  cfg.Changelog.HeaderLines,
			Anchor: cfg.Changelog.Anchor,
		}),
	}
}

// NewStore returns the manifest store described by cfg.
func NewStore(fs core.FileSystem, cfg *config.Config) *manifest.Store {
	return manifest.NewStore(fs, manifest.Config{
		Path:           cfg.Manifest.Path,
		Format:         parser.Format(cfg.Manifest.Format),
		VersionField:   cfg.Manifest.VersionField,
		FormatterField: cfg.Manifest.FormatterField,
	})
}

// Store returns the manifest store used by the runner.
func (r *Runner) Store() *manifest.Store {
	return r.store
}

// Operations returns the updates for p in the order they are applied:
// manifest, README, script, changelog.
func (r *Runner) Operations(p Plan) ([]operations.Operation, error) {
	data := TemplateData(p, r.cfg)

	readme, err := r.cfg.Readme.Render(data)
	if err != nil {
		return nil, err
	}
	script, err := r.cfg.Script.Render(data)
	if err != nil {
		return nil, err
	}

	return []operations.Operation{
		operations.NewManifestOperation(r.store, p.Next),
		operations.NewRewriteOperation(r.rewriter, rewrite.Rule{
			Name:        "README",
			Path:        r.cfg.Readme.Path,
			Pattern:     r.cfg.Readme.Pattern,
			Replacement: readme,
		}, r.cfg.Strict),
		operations.NewRewriteOperation(r.rewriter, rewrite.Rule{
			Name:        "script",
			Path:        r.cfg.Script.Path,
			Pattern:     r.cfg.Script.Pattern,
			Replacement: script,
		}, r.cfg.Strict),
		operations.NewChangelogOperation(r.changelog, r.cfg.Changelog.Path, changelog.Entry{
			Version:          p.Next.Extension,
			Date:             p.Date,
			Updated:          p.FormatterUpdated(),
			FormatterName:    r.cfg.FormatterName,
			FormatterVersion: p.Next.Formatter,
		}),
	}, nil
}

// Preflight checks that every file the release touches exists and that
// the changelog header can be located. It writes nothing.
func (r *Runner) Preflight(ctx context.Context) error {
	for _, path := range []string{r.store.Path(), r.cfg.Readme.Path, r.cfg.Script.Path} {
		if _, err := r.fs.Stat(ctx, path); err != nil {
			return &apperrors.IOError{Op: "read", Path: path, Err: err}
		}
	}
	return r.changelog.Check(ctx, r.cfg.Changelog.Path)
}

// Apply runs Preflight, then every operation in order, and stops at the
// first error. Files written before the failure stay written. The returned
// outcomes cover the operations that finished.
func (r *Runner) Apply(ctx context.Context, p Plan) ([]operations.Outcome, error) {
	if err := r.Preflight(ctx); err != nil {
		return nil, err
	}
	ops, err := r.Operations(p)
	if err != nil {
		return nil, err
	}
	outcomes := make([]operations.Outcome, 0, len(ops))
	for _, op := range ops {
		out, err := op.Execute(ctx)
		if err != nil {
			return outcomes, err
		}
		outcomes = append(outcomes, out)
	}
	return outcomes, nil
}
