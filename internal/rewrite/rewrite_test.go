package rewrite

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/indaco/relbump/internal/apperrors"
	"github.com/indaco/relbump/internal/core"
)

const (
	readmePattern = "version `[\\d\\.]+`"
	scriptPattern = `DEFAULT_VERSION="[\d\.]+"`
)

func TestSubstitute(t *testing.T) {
	tests := []struct {
		name        string
		content     string
		rule        Rule
		want        string
		wantMatches int
	}{
		{
			name:        "readme token",
			content:     "# GDScript Formatter\n\nThis extension bundles gdscript-formatter version `0.9.0`.\n\nOther text stays.\n",
			rule:        Rule{Name: "README", Pattern: readmePattern, Replacement: "version `0.9.1`"},
			want:        "# GDScript Formatter\n\nThis extension bundles gdscript-formatter version `0.9.1`.\n\nOther text stays.\n",
			wantMatches: 1,
		},
		{
			name:        "every occurrence",
			content:     "version `0.1.0` and again version `0.1.0`\n",
			rule:        Rule{Name: "README", Pattern: readmePattern, Replacement: "version `0.2.0`"},
			want:        "version `0.2.0` and again version `0.2.0`\n",
			wantMatches: 2,
		},
		{
			name:        "script default",
			content:     "#!/usr/bin/env bash\nset -e\nDEFAULT_VERSION=\"0.9.0\"\nVERSION=\"${1:-$DEFAULT_VERSION}\"\n",
			rule:        Rule{Name: "script", Pattern: scriptPattern, Replacement: `DEFAULT_VERSION="0.9.1"`},
			want:        "#!/usr/bin/env bash\nset -e\nDEFAULT_VERSION=\"0.9.1\"\nVERSION=\"${1:-$DEFAULT_VERSION}\"\n",
			wantMatches: 1,
		},
		{
			name:        "replacement is literal",
			content:     `DEFAULT_VERSION="1.0.0"`,
			rule:        Rule{Name: "script", Pattern: scriptPattern, Replacement: `DEFAULT_VERSION="$1"`},
			want:        `DEFAULT_VERSION="$1"`,
			wantMatches: 1,
		},
		{
			name:        "crlf and utf-8 preserved",
			content:     "Formatter – version `1.0.0` ✓\r\nnext line\r\n",
			rule:        Rule{Name: "README", Pattern: readmePattern, Replacement: "version `1.1.0`"},
			want:        "Formatter – version `1.1.0` ✓\r\nnext line\r\n",
			wantMatches: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := core.NewMockFileSystem()
			fs.SetFile("/file", []byte(tt.content))
			tt.rule.Path = "/file"

			res, err := NewRewriter(fs).Substitute(context.Background(), tt.rule)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if res.Matches != tt.wantMatches {
				t.Errorf("Matches = %d, want %d", res.Matches, tt.wantMatches)
			}

			got, _ := fs.GetFile("/file")
			if diff := cmp.Diff(tt.want, string(got)); diff != "" {
				t.Errorf("content mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSubstitute_NoMatchLeavesFileUntouched(t *testing.T) {
	fs := core.NewMockFileSystem()
	fs.SetFile("/README.md", []byte("no version token here\n"))

	res, err := NewRewriter(fs).Substitute(context.Background(), Rule{
		Name:        "README",
		Path:        "/README.md",
		Pattern:     readmePattern,
		Replacement: "version `1.0.0`",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Changed() {
		t.Error("expected no change")
	}
	if fs.Writes("/README.md") != 0 {
		t.Error("file should not be written when nothing matched")
	}
}

func TestSubstituteStrict_NoMatch(t *testing.T) {
	fs := core.NewMockFileSystem()
	fs.SetFile("/get-binary.sh", []byte("#!/bin/sh\n"))

	_, err := NewRewriter(fs).SubstituteStrict(context.Background(), Rule{
		Name:        "script",
		Path:        "/get-binary.sh",
		Pattern:     scriptPattern,
		Replacement: `DEFAULT_VERSION="1.0.0"`,
	})
	if !errors.Is(err, ErrNoMatch) {
		t.Fatalf("expected ErrNoMatch, got %v", err)
	}
}

func TestSubstitute_Errors(t *testing.T) {
	tests := []struct {
		name   string
		rule   Rule
		wantIO bool
	}{
		{name: "missing file", rule: Rule{Name: "README", Path: "/missing", Pattern: readmePattern}, wantIO: true},
		{name: "empty path", rule: Rule{Name: "README", Pattern: readmePattern}},
		{name: "empty pattern", rule: Rule{Name: "README", Path: "/file"}},
		{name: "bad pattern", rule: Rule{Name: "README", Path: "/file", Pattern: "[oops"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := core.NewMockFileSystem()
			fs.SetFile("/file", []byte("version `1.0.0`"))

			_, err := NewRewriter(fs).Substitute(context.Background(), tt.rule)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if tt.wantIO && !apperrors.IsIOError(err) {
				t.Errorf("expected IOError, got %v", err)
			}
		})
	}
}

func TestSubstitute_WriteError(t *testing.T) {
	fs := core.NewMockFileSystem()
	fs.SetFile("/README.md", []byte("version `1.0.0`"))
	fs.WriteErr["/README.md"] = errors.New("read-only filesystem")

	_, err := NewRewriter(fs).Substitute(context.Background(), Rule{
		Name:        "README",
		Path:        "/README.md",
		Pattern:     readmePattern,
		Replacement: "version `2.0.0`",
	})
	if !apperrors.IsIOError(err) {
		t.Errorf("expected IOError, got %v", err)
	}
}
