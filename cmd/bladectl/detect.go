package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/Los-Altos/blade-code/internal/runner"
)

func runDetect(args []string) int {
	fs := flag.NewFlagSet("detect", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "detect requires a Base64 string argument")
		return 2
	}

	res := runner.Detect(context.Background(), fs.Arg(0))
	return renderResult(res)
}
