// Package testutils holds helpers shared by command and CLI tests.
package testutils

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/urfave/cli/v3"
)

// CaptureStdout runs fn and returns everything it wrote to os.Stdout.
func CaptureStdout(fn func()) (string, error) {
	old := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		return "", err
	}
	os.Stdout = w

	done := make(chan struct{})
	var buf bytes.Buffer
	var copyErr error
	go func() {
		_, copyErr = io.Copy(&buf, r)
		close(done)
	}()

	defer func() { os.Stdout = old }()
	fn()

	w.Close()
	<-done
	r.Close()
	return buf.String(), copyErr
}

// BuildCLIForTests returns a root command holding commands. Errors are
// returned from Run instead of exiting the test binary.
func BuildCLIForTests(commands []*cli.Command) *cli.Command {
	return &cli.Command{
		Name:           "relbump",
		Commands:       commands,
		ExitErrHandler: func(context.Context, *cli.Command, error) {},
	}
}

// RunCLITest runs app with args inside workdir and fails the test on error.
func RunCLITest(t *testing.T, app *cli.Command, args []string, workdir string) {
	t.Helper()
	if err := RunCLITestAllowError(t, app, args, workdir); err != nil {
		t.Fatalf("CLI run failed: %v", err)
	}
}

// RunCLITestAllowError runs app with args inside workdir and returns its error.
func RunCLITestAllowError(t *testing.T, app *cli.Command, args []string, workdir string) error {
	t.Helper()
	if workdir != "" {
		t.Chdir(workdir)
	}
	return app.Run(context.Background(), args)
}

// WriteTempConfig writes content to dir/.relbump.yaml and returns its path.
func WriteTempConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, ".relbump.yaml")
	WriteTempFile(t, path, content)
	return path
}

// WriteTempFile writes content to path, failing the test on error.
func WriteTempFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

// ReadTempFile returns the content of path, failing the test on error.
func ReadTempFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read %s: %v", path, err)
	}
	return string(data)
}

// Default fixture contents written by WriteProject.
const (
	ReadmeTemplate    = "# GDScript Formatter\n\nThis extension downloads gdscript-formatter version `%s`.\n"
	ScriptTemplate    = "#!/usr/bin/env sh\nset -e\nDEFAULT_VERSION=\"%s\"\nVERSION=\"${1:-$DEFAULT_VERSION}\"\n"
	ChangelogFixture  = "# Changelog\n\nAll notable changes to this project will be documented in this file.\n\n## [0.1.0] - 2026-01-01\n"
	manifestTemplate  = "{\n  \"name\": \"gdscript-formatter\",\n  \"displayName\": \"GDScript Formatter\",\n  \"version\": %q,\n  \"gdscript_formatter_version\": %q,\n  \"engines\": {\n    \"vscode\": \"^1.80.0\"\n  }\n}\n"
)

// WriteProject writes package.json, README.md, get-binary.sh and
// CHANGELOG.md for an extension at version ext bundling formatter fmtVer.
func WriteProject(t *testing.T, dir, ext, fmtVer string) {
	t.Helper()
	WriteTempFile(t, filepath.Join(dir, "package.json"), fmt.Sprintf(manifestTemplate, ext, fmtVer))
	WriteTempFile(t, filepath.Join(dir, "README.md"), fmt.Sprintf(ReadmeTemplate, fmtVer))
	WriteTempFile(t, filepath.Join(dir, "get-binary.sh"), fmt.Sprintf(ScriptTemplate, fmtVer))
	WriteTempFile(t, filepath.Join(dir, "CHANGELOG.md"), ChangelogFixture)
}
