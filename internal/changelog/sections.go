package changelog

import (
	"context"
	"strings"

	"github.com/indaco/relbump/internal/apperrors"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Section is a level-two release heading found in a changelog.
type Section struct {
	Version string
	Title   string
}

// Sections returns the release headings of content in document order.
// Headings inside code blocks are ignored.
func Sections(content []byte) []Section {
	doc := goldmark.New().Parser().Parse(text.NewReader(content))

	var sections []Section
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		h, ok := n.(*ast.Heading)
		if !ok {
			return ast.WalkContinue, nil
		}
		if h.Level == 2 {
			title := headingText(h, content)
			sections = append(sections, Section{Version: sectionVersion(title), Title: title})
		}
		return ast.WalkSkipChildren, nil
	})
	return sections
}

// Latest returns the first release section, which is the newest one.
func Latest(content []byte) (Section, bool) {
	sections := Sections(content)
	if len(sections) == 0 {
		return Section{}, false
	}
	return sections[0], true
}

// HasVersion reports whether the changelog at path already has a section
// for version.
func (w *Writer) HasVersion(ctx context.Context, path, version string) (bool, error) {
	data, err := w.fs.ReadFile(ctx, path)
	if err != nil {
		return false, &apperrors.IOError{Op: "read", Path: path, Err: err}
	}
	for _, s := range Sections(data) {
		if s.Version == version {
			return true, nil
		}
	}
	return false, nil
}

func headingText(h *ast.Heading, source []byte) string {
	var sb strings.Builder
	lines := h.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		sb.Write(seg.Value(source))
	}
	return strings.TrimSpace(sb.String())
}

// sectionVersion extracts "1.2.3" from "[1.2.3] - 2026-01-02" or
// "1.2.3 - 2026-01-02".
func sectionVersion(title string) string {
	if rest, ok := strings.CutPrefix(title, "["); ok {
		if v, _, found := strings.Cut(rest, "]"); found {
			return strings.TrimSpace(v)
		}
	}
	if fields := strings.Fields(title); len(fields) > 0 {
		return fields[0]
	}
	return ""
}
