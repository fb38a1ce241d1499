package update

import (
	"context"
	"fmt"
	"strings"

	"github.com/indaco/relbump/internal/apperrors"
	"github.com/indaco/relbump/internal/config"
	"github.com/indaco/relbump/internal/core"
	"github.com/indaco/relbump/internal/operations"
	"github.com/indaco/relbump/internal/printer"
	"github.com/indaco/relbump/internal/release"
	"github.com/indaco/relbump/internal/semver"
	"github.com/indaco/relbump/internal/tui"
	"github.com/urfave/cli/v3"
)

// ArgsUsage is shown in help output and argument errors.
var ArgsUsage = "<formatter_version> [" + semver.JoinImpacts("|") + "]"

// UsageText is the full command line shown in argument errors.
var UsageText = "relbump [--force] [--dry-run] [--yes] " + ArgsUsage

// Flags returns the flags of the update action. A fresh slice is returned on
// every call so the root command and the "update" subcommand never share
// flag state.
func Flags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:    "force",
			Aliases: []string{"f"},
			Usage:   "Release even when the formatter version is unchanged",
		},
		&cli.BoolFlag{
			Name:    "dry-run",
			Aliases: []string{"n"},
			Usage:   "Show the planned release without writing any file",
		},
		&cli.BoolFlag{
			Name:    "yes",
			Aliases: []string{"y"},
			Usage:   "Skip the confirmation prompt",
		},
	}
}

// Run returns the "update" command.
func Run(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "update",
		Usage:     "Bump the extension version for a new formatter version",
		ArgsUsage: ArgsUsage,
		UsageText: "relbump update " + ArgsUsage + " [--force]",
		Flags:     Flags(),
		Action:    Action(cfg),
	}
}

// Action returns the update action. It is also the root command action.
func Action(cfg *config.Config) cli.ActionFunc {
	return func(ctx context.Context, cmd *cli.Command) error {
		opts, err := parseOptions(cmd)
		if err != nil {
			return err
		}
		return runUpdate(ctx, cfg, opts)
	}
}

// options are the parsed command-line inputs of a run.
type options struct {
	formatter string
	impact    semver.Impact
	force     bool
	dryRun    bool
	yes       bool
}

// trailingFlags are boolean flags also accepted after the positional arguments.
var trailingFlags = map[string]string{
	"--force": "force", "-f": "force",
	"--dry-run": "dry-run", "-n": "dry-run",
	"--yes": "yes", "-y": "yes",
}

func parseOptions(cmd *cli.Command) (options, error) {
	opts := options{
		force:  cmd.Bool("force"),
		dryRun: cmd.Bool("dry-run"),
		yes:    cmd.Bool("yes"),
	}

	var positional []string
	for _, arg := range cmd.Args().Slice() {
		switch trailingFlags[arg] {
		case "force":
			opts.force = true
		case "dry-run":
			opts.dryRun = true
		case "yes":
			opts.yes = true
		default:
			positional = append(positional, arg)
		}
	}

	switch {
	case len(positional) == 0 || strings.TrimSpace(positional[0]) == "":
		return opts, usageError("missing formatter version", nil)
	case len(positional) > 2:
		return opts, usageError(fmt.Sprintf("unexpected arguments: %s", strings.Join(positional[2:], " ")), nil)
	}
	opts.formatter = strings.TrimSpace(positional[0])

	impact := ""
	if len(positional) == 2 {
		impact = positional[1]
	}
	parsed, err := semver.ParseImpact(impact)
	if err != nil {
		return opts, usageError("", err)
	}
	opts.impact = parsed

	return opts, nil
}

func usageError(msg string, err error) error {
	return apperrors.NewArgumentError(msg, UsageText, err)
}

func runUpdate(ctx context.Context, cfg *config.Config, opts options) error {
	fs := core.NewOSFileSystem()

	if err := config.Errors(config.NewValidator(fs, cfg).Validate(ctx)); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	runner := release.NewRunner(fs, cfg)
	current, err := runner.Store().Read(ctx)
	if err != nil {
		return err
	}

	plan, err := release.NewPlan(current, opts.formatter, opts.impact, opts.force, release.Now())
	if err != nil {
		return err
	}

	if plan.IsNoop() {
		printer.PrintInfo(fmt.Sprintf("Already at %s version %s, nothing to do (use --force to release anyway).", cfg.FormatterName, current.Formatter))
		return nil
	}

	if err := runner.Preflight(ctx); err != nil {
		return err
	}

	printPlan(plan, cfg)

	if opts.dryRun {
		printer.PrintWarning("Dry run: no files were changed.")
		return printCommands(plan, cfg)
	}

	if !opts.yes && tui.InteractiveFn() {
		ok, err := tui.ConfirmFn(
			fmt.Sprintf("Release %s?", plan.Tag(cfg.TagPrefix)),
			fmt.Sprintf("%s, %s and %s will be rewritten.", runner.Store().Path(), cfg.Readme.Path, cfg.Changelog.Path),
		)
		if err != nil {
			return fmt.Errorf("confirmation prompt failed: %w", err)
		}
		if !ok {
			printer.PrintWarning("Aborted: no files were changed.")
			return nil
		}
	}

	outcomes, err := runner.Apply(ctx, plan)
	printOutcomes(outcomes)
	if err != nil {
		return err
	}

	fmt.Println()
	return printCommands(plan, cfg)
}

func printPlan(plan release.Plan, cfg *config.Config) {
	printer.PrintKeyValue("Extension", fmt.Sprintf("%s -> %s (%s)", plan.Current.Extension, plan.Next.Extension, plan.Impact))
	formatter := fmt.Sprintf("%s -> %s", plan.Current.Formatter, plan.Next.Formatter)
	if !plan.FormatterUpdated() {
		formatter = plan.Current.Formatter + " (unchanged, forced)"
	}
	printer.PrintKeyValue(cfg.FormatterName, formatter)
	if plan.IsDowngrade() {
		printer.PrintWarning(fmt.Sprintf("Warning: %s %s is older than the bundled %s.", cfg.FormatterName, plan.Next.Formatter, plan.Current.Formatter))
	}
}

func printOutcomes(outcomes []operations.Outcome) {
	for _, o := range outcomes {
		if o.Detail != "" {
			printer.PrintStep("Updated "+o.Path, o.Detail)
		}
		if o.Warning != "" {
			printer.PrintWarning(fmt.Sprintf("! %s: %s", o.Name, o.Warning))
		}
	}
}

func printCommands(plan release.Plan, cfg *config.Config) error {
	commands, err := release.Commands(plan, cfg)
	if err != nil {
		return err
	}
	fmt.Println("Run the following commands:")
	for _, c := range commands {
		fmt.Println(c)
	}
	return nil
}
