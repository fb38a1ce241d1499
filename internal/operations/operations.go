// Package operations provides the file updates applied during a release.
// Each operation edits one file and reports what it did.
package operations

import (
	"context"
	"fmt"

	"github.com/indaco/relbump/internal/changelog"
	"github.com/indaco/relbump/internal/manifest"
	"github.com/indaco/relbump/internal/rewrite"
)

// Operation is a single file update.
type Operation interface {
	// Name returns a short label for console output.
	Name() string

	// Execute applies the update.
	Execute(ctx context.Context) (Outcome, error)
}

// Outcome describes a finished operation.
type Outcome struct {
	Name    string
	Path    string
	Detail  string
	Warning string
}

// ManifestOperation writes both versions to the manifest.
type ManifestOperation struct {
	store *manifest.Store
	next  manifest.VersionPair
}

// NewManifestOperation creates an operation that stores next in the manifest.
func NewManifestOperation(store *manifest.Store, next manifest.VersionPair) *ManifestOperation {
	return &ManifestOperation{store: store, next: next}
}

func (op *ManifestOperation) Name() string { return "manifest" }

func (op *ManifestOperation) Execute(ctx context.Context) (Outcome, error) {
	out := Outcome{Name: op.Name(), Path: op.store.Path()}
	if err := ctx.Err(); err != nil {
		return out, err
	}

	if err := op.store.Write(ctx, op.next); err != nil {
		return out, err
	}
	out.Detail = fmt.Sprintf("(version %s, formatter %s)", op.next.Extension, op.next.Formatter)
	return out, nil
}

// RewriteOperation substitutes the formatter version in a text file.
// In strict mode a pattern that matches nothing fails the operation,
// otherwise it is reported as a warning.
type RewriteOperation struct {
	rewriter *rewrite.Rewriter
	rule     rewrite.Rule
	strict   bool
}

// NewRewriteOperation creates an operation applying rule.
func NewRewriteOperation(rewriter *rewrite.Rewriter, rule rewrite.Rule, strict bool) *RewriteOperation {
	return &RewriteOperation{rewriter: rewriter, rule: rule, strict: strict}
}

func (op *RewriteOperation) Name() string { return op.rule.Name }

func (op *RewriteOperation) Execute(ctx context.Context) (Outcome, error) {
	out := Outcome{Name: op.Name(), Path: op.rule.Path}
	if err := ctx.Err(); err != nil {
		return out, err
	}

	var (
		res rewrite.Result
		err error
	)
	if op.strict {
		res, err = op.rewriter.SubstituteStrict(ctx, op.rule)
	} else {
		res, err = op.rewriter.Substitute(ctx, op.rule)
	}
	if err != nil {
		return out, err
	}

	if !res.Changed() {
		out.Warning = fmt.Sprintf("pattern %q not found in %s, file left unchanged", op.rule.Pattern, op.rule.Path)
		return out, nil
	}
	out.Detail = fmt.Sprintf("(%d %s)", res.Matches, plural(res.Matches, "match", "matches"))
	return out, nil
}

// ChangelogOperation inserts a release section into the changelog. An
// existing section for the same version is reported as a warning.
type ChangelogOperation struct {
	writer *changelog.Writer
	path   string
	entry  changelog.Entry
}

// NewChangelogOperation creates an operation inserting entry into path.
func NewChangelogOperation(writer *changelog.Writer, path string, entry changelog.Entry) *ChangelogOperation {
	return &ChangelogOperation{writer: writer, path: path, entry: entry}
}

func (op *ChangelogOperation) Name() string { return "changelog" }

func (op *ChangelogOperation) Execute(ctx context.Context) (Outcome, error) {
	out := Outcome{Name: op.Name(), Path: op.path}
	if err := ctx.Err(); err != nil {
		return out, err
	}

	exists, err := op.writer.HasVersion(ctx, op.path, op.entry.Version)
	if err != nil {
		return out, err
	}
	if err := op.writer.Insert(ctx, op.path, op.entry); err != nil {
		return out, err
	}
	if exists {
		out.Warning = fmt.Sprintf("%s already had a section for %s", op.path, op.entry.Version)
	}
	out.Detail = fmt.Sprintf("(%s)", op.entry.Header())
	return out, nil
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
