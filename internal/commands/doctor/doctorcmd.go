package doctor

import (
	"context"
	"fmt"

	"github.com/indaco/relbump/internal/changelog"
	"github.com/indaco/relbump/internal/config"
	"github.com/indaco/relbump/internal/core"
	"github.com/indaco/relbump/internal/printer"
	"github.com/indaco/relbump/internal/release"
	"github.com/indaco/relbump/internal/semver"
	"github.com/urfave/cli/v3"
)

// Run returns the "doctor" command.
func Run(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "doctor",
		Aliases:   []string{"check"},
		Usage:     "Validate the configuration and the files it points at",
		UsageText: "relbump doctor",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runDoctor(ctx, cfg)
		},
	}
}

func runDoctor(ctx context.Context, cfg *config.Config) error {
	fs := core.NewOSFileSystem()
	results := config.NewValidator(fs, cfg).Validate(ctx)
	if config.ErrorCount(results) == 0 {
		results = append(results, checkReleaseHistory(ctx, fs, cfg)...)
	}

	for _, r := range results {
		line := fmt.Sprintf("%-10s %s", r.Category, r.Message)
		switch {
		case r.Passed:
			printer.PrintStep(line, "")
		case r.Warning:
			printer.PrintWarning("! " + line)
		default:
			printer.PrintError("✗ " + line)
		}
	}

	errs, warns := config.ErrorCount(results), config.WarningCount(results)
	if errs > 0 {
		return fmt.Errorf("configuration has %d error(s)", errs)
	}
	if warns > 0 {
		printer.PrintWarning(fmt.Sprintf("Configuration is valid with %d warning(s)", warns))
		return nil
	}
	printer.PrintSuccess("Configuration is valid")
	return nil
}

// checkReleaseHistory compares the newest changelog section with the
// extension version in the manifest, then checks that the README and
// script still reference the manifest's formatter version. Unreadable files
// are skipped since the validator already reports them.
func checkReleaseHistory(ctx context.Context, fs core.FileSystem, cfg *config.Config) []config.ValidationResult {
	current, err := release.NewStore(fs, cfg).Read(ctx)
	if err != nil {
		return nil
	}

	var results []config.ValidationResult
	if data, err := fs.ReadFile(ctx, cfg.Changelog.Path); err == nil {
		results = append(results, compareChangelog(data, current.Extension))
	}

	drifts, err := release.CheckDrift(ctx, fs, cfg, current)
	if err != nil {
		return results
	}
	for _, d := range drifts {
		if d.InSync() {
			results = append(results, config.ValidationResult{
				Category: d.Name,
				Passed:   true,
				Message:  fmt.Sprintf("%s references %s %s", d.Path, cfg.FormatterName, current.Formatter),
			})
			continue
		}
		found := d.Found
		if found == "" {
			found = "nothing"
		}
		results = append(results, config.ValidationResult{
			Category: d.Name,
			Message:  fmt.Sprintf("%s has %q, expected %q", d.Path, found, d.Expected),
			Warning:  true,
		})
	}
	return results
}

func compareChangelog(data []byte, extension string) config.ValidationResult {
	latest, ok := changelog.Latest(data)
	if !ok {
		return config.ValidationResult{
			Category: "History",
			Message:  "changelog has no release sections yet",
			Warning:  true,
		}
	}
	if latest.Version == extension {
		return config.ValidationResult{
			Category: "History",
			Passed:   true,
			Message:  fmt.Sprintf("changelog and manifest agree on %s", extension),
		}
	}

	message := fmt.Sprintf("latest changelog section is %s but the manifest is at %s", latest.Version, extension)
	logged, errLog := semver.ParseVersion(latest.Version)
	manifested, errManifest := semver.ParseVersion(extension)
	if errLog == nil && errManifest == nil {
		if logged.Compare(manifested) < 0 {
			message = fmt.Sprintf("changelog is behind: latest section is %s but the manifest is at %s", latest.Version, extension)
		} else {
			message = fmt.Sprintf("changelog is ahead: latest section is %s but the manifest is at %s", latest.Version, extension)
		}
	}
	return config.ValidationResult{Category: "History", Message: message, Warning: true}
}
