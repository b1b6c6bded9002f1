package main

import (
	"flag"
	"fmt"
	"os"
)

const productName = "blade-code"
const cliBanner = productName + " CLI (bladectl)"

func init() {
	defaultUsage := flag.Usage
	flag.Usage = func() {
		fmt.Fprintln(flag.CommandLine.Output(), cliBanner)
		fmt.Fprintln(flag.CommandLine.Output())
		if defaultUsage != nil {
			defaultUsage()
		}
	}
}

func main() {
	// Parse global flags (--pretty/-p, --version) once.
	flag.Parse()
	if maybePrintVersion() {
		return
	}

	args := flag.Args()
	if len(args) == 0 {
		// No subcommand and no legacy positional: show usage and exit non-zero.
		flag.Usage()
		os.Exit(1)
	}

	switch args[0] {
	case "decode":
		os.Exit(runDecode(args[1:]))
	case "encode":
		os.Exit(runEncode(args[1:]))
	case "detect":
		os.Exit(runDetect(args[1:]))
	case "batch":
		os.Exit(runBatch(args[1:]))
	case "version":
		os.Exit(runVersion(args[1:]))
	case "self-update":
		os.Exit(runSelfUpdate(args[1:]))
	default:
		// Legacy invocation: a bare positional argument decodes directly.
		os.Exit(runDecode(args))
	}
}
