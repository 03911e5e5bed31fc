package main

import (
	"errors"
	"fmt"
	"io"
	"regexp"

	"github.com/entropyio/minievm/fixture"
	"github.com/fatih/color"
	"github.com/urfave/cli/v2"
)

var (
	runFlag = &cli.StringFlag{
		Name:  "run",
		Usage: "only run tests whose name matches this regular expression",
		Value: ".*",
	}
	bailFlag = &cli.BoolFlag{
		Name:  "bail",
		Usage: "stop at the first failing test",
	}

	fixturesCommand = &cli.Command{
		Name:      "fixtures",
		Usage:     "Run evm.json test vectors",
		ArgsUsage: "<file>",
		Action:    fixturesCmd,
		Flags:     []cli.Flag{runFlag, bailFlag},
	}
)

var (
	passColor = color.New(color.FgGreen).SprintfFunc()
	failColor = color.New(color.FgHiRed).SprintfFunc()
	hintColor = color.New(color.Faint).SprintfFunc()
)

func fixturesCmd(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return errors.New("need exactly one fixture file")
	}
	re, err := regexp.Compile(ctx.String(runFlag.Name))
	if err != nil {
		return fmt.Errorf("invalid --%s: %w", runFlag.Name, err)
	}
	tests, err := fixture.LoadFile(ctx.Args().First())
	if err != nil {
		return err
	}
	tests = fixture.Filter(tests, re)

	failed := runFixtures(ctx.App.Writer, tests, ctx.Bool(bailFlag.Name))
	if failed > 0 {
		return cli.Exit(fmt.Sprintf("%d of %d tests failed", failed, len(tests)), 1)
	}
	return nil
}

// runFixtures runs tests in order, reports each and returns the number of
// failures.
func runFixtures(w io.Writer, tests []fixture.Test, bail bool) int {
	var (
		total  = len(tests)
		failed int
	)
	for i := range tests {
		test := &tests[i]
		_, err := test.Run()
		if err == nil {
			fmt.Fprintln(w, passColor("✓  Test #%d/%d %s", i+1, total, test.Name))
			continue
		}
		failed++
		fmt.Fprintln(w, failColor("❌ Test #%d/%d %s", i+1, total, test.Name))
		fmt.Fprintln(w, err)
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Test code:")
		fmt.Fprintln(w, test.Code.Asm)
		if test.Hint != "" {
			fmt.Fprintln(w)
			fmt.Fprintln(w, hintColor("Hint: %s", test.Hint))
		}
		fmt.Fprintln(w)
		if bail {
			fmt.Fprintf(w, "Progress: %d/%d\n", i, total)
			break
		}
	}
	return failed
}
