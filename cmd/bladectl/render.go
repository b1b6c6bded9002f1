package main

import (
	"flag"
	"fmt"
	"os"
	"sync"

	"github.com/Los-Altos/blade-code/internal/config"
	"github.com/Los-Altos/blade-code/internal/result"
)

var prettyFlag bool

func init() {
	flag.BoolVar(&prettyFlag, "pretty", false, "render results as a human-readable report")
	flag.BoolVar(&prettyFlag, "p", false, "render results as a human-readable report (shorthand)")
}

var (
	cfgOnce sync.Once
	cfg     config.Config
)

// appConfig loads the blade-code configuration once per invocation. A broken
// config file degrades to defaults with a warning instead of aborting.
func appConfig() config.Config {
	cfgOnce.Do(func() {
		loaded, err := config.Load()
		if err != nil {
			fmt.Fprintf(os.Stderr, "config: %v\n", err)
			loaded = config.Default()
		}
		cfg = loaded
	})
	return cfg
}

// renderResult writes res to stdout in the selected output format. Failed
// results are still rendered; the process exit code stays zero.
func renderResult(res result.Result) int {
	format := result.FormatJSON
	if prettyFlag || appConfig().Pretty {
		format = result.FormatPretty
	}
	data, err := result.Render(format, res)
	if err != nil {
		fmt.Fprintf(os.Stderr, "render result: %v\n", err)
		return 1
	}
	_, _ = os.Stdout.Write(data)
	return 0
}
