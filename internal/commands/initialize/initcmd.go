package initialize

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/indaco/relbump/internal/config"
	"github.com/indaco/relbump/internal/printer"
	"github.com/indaco/relbump/internal/tui"
	"github.com/urfave/cli/v3"
)

const configHeader = `# relbump configuration file
#
# Paths are relative to the project root.
# Replacements and git messages are mustache templates. Available
# variables: {{formatter_name}}, {{formatter_version}}, {{version}}
# (the new extension version) and {{tag}}.
# tag_prefix: "" produces unprefixed tags such as 1.3.0.
# With strict: true a pattern that matches nothing fails the release.
# changelog.anchor, when set, replaces header_lines: new sections are
# inserted after the first line equal to the anchor.
# theme picks the confirmation prompt style (%s).

`

// Run returns the "init" command.
func Run() *cli.Command {
	return &cli.Command{
		Name:      "init",
		Usage:     "Write a default .relbump.yaml",
		UsageText: "relbump init [--force]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "force",
				Aliases: []string{"f"},
				Usage:   "Overwrite an existing configuration file",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runInit(config.DefaultConfigFile, cmd.Bool("force"))
		},
	}
}

func runInit(path string, overwrite bool) error {
	saver := config.NewConfigSaver(commentedMarshaler{}, nil, nil)
	if err := saver.SaveTo(config.Default(), path, overwrite); err != nil {
		if errors.Is(err, os.ErrExist) {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
		return err
	}
	printer.PrintSuccess(fmt.Sprintf("Created %s", path))
	return nil
}

// GenerateConfigWithComments renders cfg as YAML preceded by a short
// explanation of the keys.
func GenerateConfigWithComments(cfg *config.Config) ([]byte, error) {
	body, err := yaml.MarshalWithOptions(cfg, yaml.Indent(2))
	if err != nil {
		return nil, err
	}
	header := fmt.Sprintf(configHeader, strings.Join(tui.ValidThemes, ", "))
	return append([]byte(header), body...), nil
}

type commentedMarshaler struct{}

func (commentedMarshaler) Marshal(v any) ([]byte, error) {
	cfg, ok := v.(*config.Config)
	if !ok {
		return nil, fmt.Errorf("unexpected config type %T", v)
	}
	return GenerateConfigWithComments(cfg)
}
