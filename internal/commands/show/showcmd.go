package show

import (
	"context"
	"fmt"

	"github.com/indaco/relbump/internal/config"
	"github.com/indaco/relbump/internal/core"
	"github.com/indaco/relbump/internal/printer"
	"github.com/indaco/relbump/internal/release"
	"github.com/urfave/cli/v3"
)

// Run returns the "show" command.
func Run(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "show",
		Usage:     "Print the current extension and formatter versions",
		UsageText: "relbump show",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runShow(ctx, cfg)
		},
	}
}

func runShow(ctx context.Context, cfg *config.Config) error {
	fs := core.NewOSFileSystem()
	store := release.NewStore(fs, cfg)
	current, err := store.Read(ctx)
	if err != nil {
		return err
	}

	printer.PrintKeyValue("Manifest", store.Path())
	printer.PrintKeyValue("Extension", current.Extension)
	printer.PrintKeyValue(cfg.FormatterName, current.Formatter)

	drifts, err := release.CheckDrift(ctx, fs, cfg, current)
	if err != nil {
		printer.PrintWarning("! " + err.Error())
		return nil
	}
	for _, d := range drifts {
		if d.Found == "" {
			printer.PrintKeyValue(d.Name, "(no match)")
		} else {
			printer.PrintKeyValue(d.Name, d.Found)
		}
		if !d.InSync() {
			printer.PrintWarning(fmt.Sprintf("! %s does not match the manifest, expected %s", d.Path, d.Expected))
		}
	}
	return nil
}
