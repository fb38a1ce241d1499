package operations

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/indaco/relbump/internal/changelog"
	"github.com/indaco/relbump/internal/core"
	"github.com/indaco/relbump/internal/manifest"
	"github.com/indaco/relbump/internal/rewrite"
)

func TestRewriteOperation(t *testing.T) {
	rule := rewrite.Rule{Name: "README", Path: "/README.md", Pattern: "version `[\\d\\.]+`", Replacement: "version `2.0.0`"}

	tests := []struct {
		name        string
		content     string
		strict      bool
		wantDetail  string
		wantWarning bool
		wantErr     error
	}{
		{"one match", "version `1.0.0`\n", false, "(1 match)", false, nil},
		{"two matches", "version `1.0.0` and version `1.0.0`\n", false, "(2 matches)", false, nil},
		{"no match warns", "nothing\n", false, "", true, nil},
		{"no match strict", "nothing\n", true, "", false, rewrite.ErrNoMatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := core.NewMockFileSystem()
			fs.SetFile(rule.Path, []byte(tt.content))

			op := NewRewriteOperation(rewrite.NewRewriter(fs), rule, tt.strict)
			out, err := op.Execute(context.Background())

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if out.Name != "README" || out.Path != "/README.md" {
				t.Errorf("outcome identity = %q %q", out.Name, out.Path)
			}
			if out.Detail != tt.wantDetail {
				t.Errorf("Detail = %q, want %q", out.Detail, tt.wantDetail)
			}
			if (out.Warning != "") != tt.wantWarning {
				t.Errorf("Warning = %q, want warning: %v", out.Warning, tt.wantWarning)
			}
		})
	}
}

func TestManifestAndChangelogOperations(t *testing.T) {
	fs := core.NewMockFileSystem()
	fs.SetFile("/package.json", []byte(`{"version": "1.0.0", "gdscript_formatter_version": "0.1.0"}`))
	fs.SetFile("/CHANGELOG.md", []byte("# Changelog\n\nIntro.\n"))
	ctx := context.Background()

	store := manifest.NewStore(fs, manifest.Config{Path: "/package.json"})
	out, err := NewManifestOperation(store, manifest.VersionPair{Extension: "1.0.1", Formatter: "0.2.0"}).Execute(ctx)
	if err != nil {
		t.Fatalf("manifest operation: %v", err)
	}
	if out.Detail != "(version 1.0.1, formatter 0.2.0)" {
		t.Errorf("Detail = %q", out.Detail)
	}

	entry := changelog.Entry{Version: "1.0.1", Date: time.Date(2026, 10, 17, 0, 0, 0, 0, time.UTC)}
	out, err = NewChangelogOperation(changelog.NewWriter(fs, changelog.Header{}), "/CHANGELOG.md", entry).Execute(ctx)
	if err != nil {
		t.Fatalf("changelog operation: %v", err)
	}
	if out.Detail != "(## [1.0.1] - 2026-10-17)" {
		t.Errorf("Detail = %q", out.Detail)
	}
	if out.Warning != "" {
		t.Errorf("unexpected warning: %s", out.Warning)
	}

	out, err = NewChangelogOperation(changelog.NewWriter(fs, changelog.Header{}), "/CHANGELOG.md", entry).Execute(ctx)
	if err != nil {
		t.Fatalf("second changelog operation: %v", err)
	}
	if out.Warning != "/CHANGELOG.md already had a section for 1.0.1" {
		t.Errorf("Warning = %q", out.Warning)
	}
}

func TestOperations_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	fs := core.NewMockFileSystem()
	ops := []Operation{
		NewManifestOperation(manifest.NewStore(fs, manifest.Config{Path: "/package.json"}), manifest.VersionPair{}),
		NewRewriteOperation(rewrite.NewRewriter(fs), rewrite.Rule{Name: "README"}, false),
		NewChangelogOperation(changelog.NewWriter(fs, changelog.Header{}), "/CHANGELOG.md", changelog.Entry{}),
	}
	for _, op := range ops {
		if _, err := op.Execute(ctx); !errors.Is(err, context.Canceled) {
			t.Errorf("%s: expected context.Canceled, got %v", op.Name(), err)
		}
	}
}
