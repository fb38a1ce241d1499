package changelog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/indaco/relbump/internal/apperrors"
	"github.com/indaco/relbump/internal/core"
)

// DefaultHeaderLines is the size of the title/preamble block kept on top.
const DefaultHeaderLines = 3

// ErrHeaderNotFound is returned when the file is shorter than the header
// or the configured anchor line is missing.
var ErrHeaderNotFound = errors.New("changelog header not found")

// Header locates the end of the preamble block.
// When Anchor is set the entry goes after the first line equal to it
// (ignoring the line ending). Otherwise the first Lines lines are the header.
type Header struct {
	Lines  int
	Anchor string
}

// Writer inserts entries into a changelog file.
type Writer struct {
	fs     core.FileSystem
	header Header
}

// NewWriter returns a Writer. A zero Header.Lines means DefaultHeaderLines.
func NewWriter(fs core.FileSystem, header Header) *Writer {
	if header.Lines <= 0 {
		header.Lines = DefaultHeaderLines
	}
	return &Writer{fs: fs, header: header}
}

// Insert splices entry into the changelog at path directly after the header.
// The file is left untouched when the header cannot be located.
func (w *Writer) Insert(ctx context.Context, path string, entry Entry) error {
	data, err := w.fs.ReadFile(ctx, path)
	if err != nil {
		return &apperrors.IOError{Op: "read", Path: path, Err: err}
	}

	updated, err := w.splice(string(data), entry)
	if err != nil {
		return &apperrors.IOError{Op: "update", Path: path, Err: err}
	}

	if err := w.fs.WriteFile(ctx, path, []byte(updated), core.PermDefault); err != nil {
		return &apperrors.IOError{Op: "write", Path: path, Err: err}
	}
	return nil
}

// Check reports whether the header of the changelog at path can be
// located, without writing anything.
func (w *Writer) Check(ctx context.Context, path string) error {
	data, err := w.fs.ReadFile(ctx, path)
	if err != nil {
		return &apperrors.IOError{Op: "read", Path: path, Err: err}
	}
	if _, err := w.headerEnd(splitLines(string(data))); err != nil {
		return &apperrors.IOError{Op: "update", Path: path, Err: err}
	}
	return nil
}

// splice returns content with the rendered entry inserted after the header.
func (w *Writer) splice(content string, entry Entry) (string, error) {
	lines := splitLines(content)

	at, err := w.headerEnd(lines)
	if err != nil {
		return "", err
	}

	eol := lineEnding(lines[:at])
	head := strings.Join(lines[:at], "")
	if !strings.HasSuffix(head, "\n") {
		head += eol
	}
	block := entry.Render()
	if eol != "\n" {
		block = strings.ReplaceAll(block, "\n", eol)
	}
	return head + block + strings.Join(lines[at:], ""), nil
}

// lineEnding returns "\r\n" when the header uses CRLF line endings and
// "\n" otherwise.
func lineEnding(header []string) string {
	for _, line := range header {
		if strings.HasSuffix(line, "\r\n") {
			return "\r\n"
		}
	}
	return "\n"
}

func (w *Writer) headerEnd(lines []string) (int, error) {
	if w.header.Anchor != "" {
		for i, line := range lines {
			if strings.TrimRight(line, "\r\n") == w.header.Anchor {
				return i + 1, nil
			}
		}
		return 0, fmt.Errorf("%w: anchor line %q not present", ErrHeaderNotFound, w.header.Anchor)
	}

	if len(lines) < w.header.Lines {
		return 0, fmt.Errorf("%w: file has %d lines, header needs %d", ErrHeaderNotFound, len(lines), w.header.Lines)
	}
	return w.header.Lines, nil
}

// splitLines splits content into lines that keep their terminators.
func splitLines(content string) []string {
	lines := strings.SplitAfter(content, "\n")
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}
	return lines
}
