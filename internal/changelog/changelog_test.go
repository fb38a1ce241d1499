package changelog

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/indaco/relbump/internal/apperrors"
	"github.com/indaco/relbump/internal/core"
)

const preamble = "# Changelog\n\nAll notable changes to this project will be documented in this file.\n"

var releaseDate = time.Date(2026, time.October, 17, 9, 30, 0, 0, time.UTC)

func TestEntry_Render(t *testing.T) {
	tests := []struct {
		name  string
		entry Entry
		want  string
	}{
		{
			name: "formatter updated",
			entry: Entry{
				Version:          "1.3.0",
				Date:             releaseDate,
				Updated:          true,
				FormatterName:    "gdscript-formatter",
				FormatterVersion: "0.9.1",
			},
			want: "\n## [1.3.0] - 2026-10-17\n\n### Updated\n\n- Update to gdscript-formatter version 0.9.1\n",
		},
		{
			name:  "forced without formatter change",
			entry: Entry{Version: "1.2.4", Date: releaseDate, FormatterName: "gdscript-formatter", FormatterVersion: "0.9.0"},
			want:  "\n## [1.2.4] - 2026-10-17\n\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, tt.entry.Render()); diff != "" {
				t.Errorf("Render() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestWriter_Insert(t *testing.T) {
	existing := "\n## [1.2.3] - 2026-01-02\n\n### Added\n\n- First release\n"
	entry := Entry{
		Version:          "1.3.0",
		Date:             releaseDate,
		Updated:          true,
		FormatterName:    "gdscript-formatter",
		FormatterVersion: "0.9.1",
	}

	want := preamble +
		"\n## [1.3.0] - 2026-10-17\n\n### Updated\n\n- Update to gdscript-formatter version 0.9.1\n" +
		existing

	fs := core.NewMockFileSystem()
	fs.SetFile("/CHANGELOG.md", []byte(preamble+existing))

	if err := NewWriter(fs, Header{}).Insert(context.Background(), "/CHANGELOG.md", entry); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, _ := fs.GetFile("/CHANGELOG.md")
	if diff := cmp.Diff(want, string(got)); diff != "" {
		t.Errorf("CHANGELOG.md mismatch (-want +got):\n%s", diff)
	}
}

func TestWriter_Insert_ExactlyHeader(t *testing.T) {
	fs := core.NewMockFileSystem()
	fs.SetFile("/CHANGELOG.md", []byte("# Changelog\n\nIntro"))

	entry := Entry{Version: "0.0.1", Date: releaseDate}
	if err := NewWriter(fs, Header{Lines: 3}).Insert(context.Background(), "/CHANGELOG.md", entry); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, _ := fs.GetFile("/CHANGELOG.md")
	want := "# Changelog\n\nIntro\n\n## [0.0.1] - 2026-10-17\n\n"
	if diff := cmp.Diff(want, string(got)); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestWriter_Insert_Anchor(t *testing.T) {
	content := "# Changelog\n\nSome longer\nintroduction text.\n\n<!-- releases -->\n\n## [1.0.0] - 2026-01-01\n"

	fs := core.NewMockFileSystem()
	fs.SetFile("/CHANGELOG.md", []byte(content))

	entry := Entry{Version: "1.0.1", Date: releaseDate}
	if err := NewWriter(fs, Header{Anchor: "<!-- releases -->"}).Insert(context.Background(), "/CHANGELOG.md", entry); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, _ := fs.GetFile("/CHANGELOG.md")
	want := "# Changelog\n\nSome longer\nintroduction text.\n\n<!-- releases -->\n" +
		"\n## [1.0.1] - 2026-10-17\n\n" +
		"\n## [1.0.0] - 2026-01-01\n"
	if diff := cmp.Diff(want, string(got)); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestWriter_Insert_CRLF(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{
			name:    "crlf header",
			content: "# Changelog\r\n\r\nText\r\n\r\n## [1.2.3] - 2026-01-02\r\n",
			want: "# Changelog\r\n\r\nText\r\n" +
				"\r\n## [1.2.4] - 2026-10-17\r\n\r\n### Updated\r\n\r\n- Update to gdscript-formatter version 0.9.1\r\n" +
				"\r\n## [1.2.3] - 2026-01-02\r\n",
		},
		{
			name:    "crlf header without final newline",
			content: "# Changelog\r\n\r\nText",
			want: "# Changelog\r\n\r\nText\r\n" +
				"\r\n## [1.2.4] - 2026-10-17\r\n\r\n### Updated\r\n\r\n- Update to gdscript-formatter version 0.9.1\r\n",
		},
	}

	entry := Entry{Version: "1.2.4", Date: releaseDate, Updated: true, FormatterName: "gdscript-formatter", FormatterVersion: "0.9.1"}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := core.NewMockFileSystem()
			fs.SetFile("/CHANGELOG.md", []byte(tt.content))

			if err := NewWriter(fs, Header{}).Insert(context.Background(), "/CHANGELOG.md", entry); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			got, _ := fs.GetFile("/CHANGELOG.md")
			if diff := cmp.Diff(tt.want, string(got)); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
			if strings.Contains(strings.ReplaceAll(string(got), "\r\n", ""), "\n") {
				t.Error("file has mixed line endings")
			}
		})
	}
}

func TestWriter_Check(t *testing.T) {
	fs := core.NewMockFileSystem()
	fs.SetFile("/ok.md", []byte(preamble))
	fs.SetFile("/short.md", []byte("# Changelog\n"))
	w := NewWriter(fs, Header{})
	ctx := context.Background()

	if err := w.Check(ctx, "/ok.md"); err != nil {
		t.Errorf("Check(ok) error: %v", err)
	}
	if err := w.Check(ctx, "/short.md"); !errors.Is(err, ErrHeaderNotFound) || !apperrors.IsIOError(err) {
		t.Errorf("Check(short) = %v, want IOError wrapping ErrHeaderNotFound", err)
	}
	if err := w.Check(ctx, "/missing.md"); !apperrors.IsIOError(err) {
		t.Errorf("Check(missing) = %v, want IOError", err)
	}
	if fs.Writes("/ok.md") != 0 {
		t.Error("Check must not write")
	}
}

func TestWriter_Insert_HeaderNotFound(t *testing.T) {
	tests := []struct {
		name    string
		content string
		header  Header
	}{
		{name: "empty file", content: "", header: Header{}},
		{name: "two lines", content: "# Changelog\n\n", header: Header{}},
		{name: "missing anchor", content: preamble, header: Header{Anchor: "<!-- releases -->"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := core.NewMockFileSystem()
			fs.SetFile("/CHANGELOG.md", []byte(tt.content))

			err := NewWriter(fs, tt.header).Insert(context.Background(), "/CHANGELOG.md", Entry{Version: "1.0.0", Date: releaseDate})
			if !errors.Is(err, ErrHeaderNotFound) {
				t.Fatalf("expected ErrHeaderNotFound, got %v", err)
			}
			if !apperrors.IsIOError(err) {
				t.Errorf("expected IOError, got %T", err)
			}
			if fs.Writes("/CHANGELOG.md") != 0 {
				t.Error("changelog must not be written when the header is missing")
			}
		})
	}
}

func TestWriter_Insert_MissingFile(t *testing.T) {
	err := NewWriter(core.NewMockFileSystem(), Header{}).Insert(context.Background(), "/CHANGELOG.md", Entry{Version: "1.0.0"})
	if !apperrors.IsIOError(err) {
		t.Errorf("expected IOError, got %v", err)
	}
}

func TestSplitLines(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"a", []string{"a"}},
		{"a\n", []string{"a\n"}},
		{"a\r\nb\n\nc", []string{"a\r\n", "b\n", "\n", "c"}},
	}
	for _, tt := range tests {
		got := splitLines(tt.in)
		if diff := cmp.Diff(tt.want, got, cmpEmptyAsNil()); diff != "" {
			t.Errorf("splitLines(%q) mismatch (-want +got):\n%s", tt.in, diff)
		}
	}
}

func cmpEmptyAsNil() cmp.Option {
	return cmp.FilterValues(func(a, b []string) bool { return len(a) == 0 && len(b) == 0 }, cmp.Ignore())
}
