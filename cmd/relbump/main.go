package main

import (
	"context"
	"fmt"
	"os"

	"github.com/indaco/relbump/internal/apperrors"
	"github.com/indaco/relbump/internal/cli"
	"github.com/indaco/relbump/internal/config"
	"github.com/indaco/relbump/internal/printer"
)

func main() {
	if err := runCLI(os.Args); err != nil {
		printer.FprintError(os.Stderr, "Error: "+err.Error())
		if hint := apperrors.Hint(err); hint != "" {
			fmt.Fprintln(os.Stderr, hint)
		}
		os.Exit(apperrors.ExitCode(err))
	}
}

// runCLI builds the root command and runs it with args.
func runCLI(args []string) error {
	app := cli.New(config.Default())
	return app.Run(context.Background(), args)
}
