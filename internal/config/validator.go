package config

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/indaco/relbump/internal/core"
	"github.com/indaco/relbump/internal/parser"
	"github.com/indaco/relbump/internal/tui"
)

// ValidationResult represents the result of a validation check.
type ValidationResult struct {
	// Category is the validation category (e.g., "Manifest", "README").
	Category string

	// Passed indicates if the check passed.
	Passed bool

	// Message provides details about the validation result.
	Message string

	// Warning indicates if this is a warning rather than an error.
	Warning bool
}

// Validator validates configuration settings and the files they point at.
type Validator struct {
	fs          core.FileSystem
	cfg         *Config
	validations []ValidationResult
}

// NewValidator creates a new configuration validator.
func NewValidator(fs core.FileSystem, cfg *Config) *Validator {
	return &Validator{
		fs:          fs,
		cfg:         cfg,
		validations: make([]ValidationResult, 0),
	}
}

// Validate runs all validation checks and returns the results.
// Missing target files are reported as warnings; malformed settings are errors.
func (v *Validator) Validate(ctx context.Context) []ValidationResult {
	v.validations = make([]ValidationResult, 0)

	v.validateManifest(ctx)
	v.validateTextFile(ctx, "README", v.cfg.Readme)
	v.validateTextFile(ctx, "Script", v.cfg.Script)
	v.validateChangelog(ctx)
	v.validateGit()

	if strings.TrimSpace(v.cfg.FormatterName) == "" {
		v.addValidation("General", false, "formatter_name must not be empty", false)
	}
	if v.cfg.Theme != "" && !tui.IsValidTheme(v.cfg.Theme) {
		v.addValidation("General", false, fmt.Sprintf("theme %q is not one of %s (prompts would use %s)", v.cfg.Theme, strings.Join(tui.ValidThemes, ", "), tui.ResolveTheme(v.cfg.Theme)), false)
	}

	return v.validations
}

func (v *Validator) validateManifest(ctx context.Context) {
	m := v.cfg.Manifest
	if m.Path == "" {
		v.addValidation("Manifest", false, "manifest.path must not be empty", false)
		return
	}
	if m.Format != "" {
		if f := parser.Format(m.Format); !f.IsStructured() {
			v.addValidation("Manifest", false, fmt.Sprintf("manifest.format %q is not one of json, yaml, toml", m.Format), false)
		}
	}
	if m.VersionField == "" || m.FormatterField == "" {
		v.addValidation("Manifest", false, "manifest.version_field and manifest.formatter_field are required", false)
	}
	if m.VersionField != "" && m.VersionField == m.FormatterField {
		v.addValidation("Manifest", false, "manifest.version_field and manifest.formatter_field must differ", false)
	}
	v.checkExists(ctx, "Manifest", m.Path)
}

func (v *Validator) validateTextFile(ctx context.Context, category string, t TextFileConfig) {
	if t.Path == "" {
		v.addValidation(category, false, "path must not be empty", false)
		return
	}
	if _, err := regexp.Compile(t.Pattern); err != nil {
		v.addValidation(category, false, fmt.Sprintf("invalid pattern %q: %v", t.Pattern, err), false)
	}
	if err := checkTemplate(t.Replacement); err != nil {
		v.addValidation(category, false, fmt.Sprintf("invalid replacement template %q: %v", t.Replacement, err), false)
	} else if !strings.Contains(t.Replacement, VarFormatterVersion) {
		v.addValidation(category, false, fmt.Sprintf("replacement %q does not use {{%s}}", t.Replacement, VarFormatterVersion), true)
	}
	v.checkExists(ctx, category, t.Path)
}

func (v *Validator) validateChangelog(ctx context.Context) {
	c := v.cfg.Changelog
	if c.Path == "" {
		v.addValidation("Changelog", false, "changelog.path must not be empty", false)
		return
	}
	if c.HeaderLines < 0 {
		v.addValidation("Changelog", false, "changelog.header_lines must be positive", false)
	}
	v.checkExists(ctx, "Changelog", c.Path)
}

func (v *Validator) validateGit() {
	templates := []struct{ key, tmpl string }{
		{"git.commit_message", v.cfg.Git.CommitMessage},
		{"git.tag_message", v.cfg.Git.TagMessage},
	}
	for _, t := range templates {
		if err := checkTemplate(t.tmpl); err != nil {
			v.addValidation("Git", false, fmt.Sprintf("invalid %s template %q: %v", t.key, t.tmpl, err), false)
		}
	}
}

func (v *Validator) checkExists(ctx context.Context, category, path string) {
	if _, err := v.fs.Stat(ctx, path); err != nil {
		v.addValidation(category, false, fmt.Sprintf("%s not found", path), true)
		return
	}
	v.addValidation(category, true, fmt.Sprintf("%s found", path), false)
}

// addValidation adds a validation result to the list.
func (v *Validator) addValidation(category string, passed bool, message string, warning bool) {
	v.validations = append(v.validations, ValidationResult{
		Category: category,
		Passed:   passed,
		Message:  message,
		Warning:  warning,
	})
}

// HasErrors returns true if any validation failed.
func HasErrors(results []ValidationResult) bool {
	return ErrorCount(results) > 0
}

// ErrorCount returns the number of failed validations.
func ErrorCount(results []ValidationResult) int {
	count := 0
	for _, r := range results {
		if !r.Passed && !r.Warning {
			count++
		}
	}
	return count
}

// WarningCount returns the number of warnings.
func WarningCount(results []ValidationResult) int {
	count := 0
	for _, r := range results {
		if r.Warning {
			count++
		}
	}
	return count
}

// Errors joins every failed, non-warning result into one error.
func Errors(results []ValidationResult) error {
	var errs []error
	for _, r := range results {
		if !r.Passed && !r.Warning {
			errs = append(errs, fmt.Errorf("%s: %s", r.Category, r.Message))
		}
	}
	return errors.Join(errs...)
}
