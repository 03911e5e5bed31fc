// evm executes bytecode on the minievm interpreter and runs evm.json test
// vectors against it.
package main

import (
	"fmt"
	"os"

	"github.com/entropyio/minievm/logger"
	"github.com/urfave/cli/v2"
)

var (
	verbosityFlag = &cli.StringFlag{
		Name:  "verbosity",
		Usage: "log level: critical, error, warning, notice, info, debug",
		Value: "warning",
	}
)

func newApp() *cli.App {
	return &cli.App{
		Name:  "evm",
		Usage: "the minievm command line interface",
		Flags: []cli.Flag{verbosityFlag},
		Before: func(ctx *cli.Context) error {
			return logger.SetLevel(ctx.String(verbosityFlag.Name))
		},
		Commands: []*cli.Command{
			runCommand,
			fixturesCommand,
		},
	}
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
