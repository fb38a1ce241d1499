package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/indaco/relbump/internal/commands/doctor"
	"github.com/indaco/relbump/internal/commands/initialize"
	"github.com/indaco/relbump/internal/commands/show"
	"github.com/indaco/relbump/internal/commands/update"
	"github.com/indaco/relbump/internal/config"
	"github.com/indaco/relbump/internal/printer"
	"github.com/indaco/relbump/internal/tui"
	"github.com/indaco/relbump/internal/version"
	urfavecli "github.com/urfave/cli/v3"
)

// New builds and returns the root CLI command. The root action performs a
// release; cfg is filled from the config file before any command runs.
func New(cfg *config.Config) *urfavecli.Command {
	flags := []urfavecli.Flag{
		&urfavecli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "Path to the config file (default: .relbump.yaml, or $" + config.EnvConfigPath + ")",
		},
		&urfavecli.StringFlag{
			Name:    "dir",
			Aliases: []string{"C"},
			Usage:   "Run as if started in `DIR`",
		},
		&urfavecli.BoolFlag{
			Name:  "no-color",
			Usage: "Disable colored output",
		},
	}
	flags = append(flags, update.Flags()...)

	return &urfavecli.Command{
		Name:                  "relbump",
		Version:               fmt.Sprintf("v%s", version.GetVersion()),
		Usage:                 "Release helper for editor extensions bundling gdscript-formatter",
		ArgsUsage:             update.ArgsUsage,
		UsageText:             update.UsageText,
		EnableShellCompletion: true,
		Flags:                 flags,
		Before: func(ctx context.Context, cmd *urfavecli.Command) (context.Context, error) {
			printer.SetNoColor(cmd.Bool("no-color"))
			return ctx, prepare(cmd, cfg)
		},
		Action: update.Action(cfg),
		Commands: []*urfavecli.Command{
			initialize.Run(),
			show.Run(cfg),
			update.Run(cfg),
			doctor.Run(cfg),
		},
		// Exit codes are mapped in main.
		ExitErrHandler: func(context.Context, *urfavecli.Command, error) {},
	}
}

// prepare switches to --dir and loads the configuration into cfg.
// "init" skips loading so it can replace a broken config file.
func prepare(cmd *urfavecli.Command, cfg *config.Config) error {
	if dir := cmd.String("dir"); dir != "" {
		if err := os.Chdir(dir); err != nil {
			return fmt.Errorf("failed to change directory: %w", err)
		}
	}

	if cmd.Args().First() == "init" {
		return nil
	}

	loaded, err := config.LoadConfigFn(".", cmd.String("config"))
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	*cfg = *loaded
	tui.SetTheme(cfg.Theme)
	return nil
}
