// Package rewrite performs literal regex substitutions on free-text files
// such as README.md and the binary download script.
package rewrite

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"github.com/indaco/relbump/internal/apperrors"
	"github.com/indaco/relbump/internal/core"
)

// ErrNoMatch is returned by SubstituteStrict when the pattern matched nothing.
var ErrNoMatch = errors.New("pattern did not match")

// Rule describes one substitution.
type Rule struct {
	// Name labels the rule in console output ("README", "script").
	Name string

	// Path is the file to rewrite.
	Path string

	// Pattern is the regular expression to search for.
	Pattern string

	// Replacement is inserted verbatim; "$" has no special meaning.
	Replacement string
}

// Result reports what a substitution did.
type Result struct {
	Rule    Rule
	Matches int
}

// Changed reports whether the file was rewritten.
func (r Result) Changed() bool {
	return r.Matches > 0
}

// Rewriter applies rules through a core.FileSystem.
type Rewriter struct {
	fs core.FileSystem
}

// NewRewriter returns a Rewriter using fs.
func NewRewriter(fs core.FileSystem) *Rewriter {
	return &Rewriter{fs: fs}
}

// Substitute replaces every match of rule.Pattern in the file with
// rule.Replacement and writes the result back. When nothing matches the
// file is left untouched and Result.Matches is zero.
func (r *Rewriter) Substitute(ctx context.Context, rule Rule) (Result, error) {
	res := Result{Rule: rule}

	if rule.Path == "" {
		return res, fmt.Errorf("%s: file path is required", rule.Name)
	}
	if rule.Pattern == "" {
		return res, fmt.Errorf("%s: pattern is required", rule.Name)
	}

	re, err := regexp.Compile(rule.Pattern)
	if err != nil {
		return res, fmt.Errorf("%s: invalid regex pattern %q: %w", rule.Name, rule.Pattern, err)
	}

	data, err := r.fs.ReadFile(ctx, rule.Path)
	if err != nil {
		return res, &apperrors.IOError{Op: "read", Path: rule.Path, Err: err}
	}

	res.Matches = len(re.FindAllIndex(data, -1))
	if res.Matches == 0 {
		return res, nil
	}

	updated := re.ReplaceAllLiteral(data, []byte(rule.Replacement))
	if err := r.fs.WriteFile(ctx, rule.Path, updated, core.PermDefault); err != nil {
		return res, &apperrors.IOError{Op: "write", Path: rule.Path, Err: err}
	}

	return res, nil
}

// SubstituteStrict is Substitute, but zero matches is an error.
func (r *Rewriter) SubstituteStrict(ctx context.Context, rule Rule) (Result, error) {
	res, err := r.Substitute(ctx, rule)
	if err != nil {
		return res, err
	}
	if res.Matches == 0 {
		return res, fmt.Errorf("%s: %w: %q in %q", rule.Name, ErrNoMatch, rule.Pattern, rule.Path)
	}
	return res, nil
}
