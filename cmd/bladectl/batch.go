package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/Los-Altos/blade-code/internal/env"
	"github.com/Los-Altos/blade-code/internal/logging"
	"github.com/Los-Altos/blade-code/internal/runner"
)

func runBatch(args []string) int {
	fs := flag.NewFlagSet("batch", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	var file, outputDir string
	fs.StringVar(&file, "file", "", "path to a file of newline-separated Base64 strings")
	fs.StringVar(&file, "f", "", "path to a file of newline-separated Base64 strings (shorthand)")
	fs.StringVar(&outputDir, "output-dir", "", "persist each decoded item into this directory")
	fs.StringVar(&outputDir, "o", "", "persist each decoded item into this directory (shorthand)")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if strings.TrimSpace(file) == "" {
		fmt.Fprintln(os.Stderr, "--file is required")
		return 2
	}
	if outputDir == "" {
		outputDir = appConfig().OutputDir
	}

	opts := runner.BatchOptions{OutputDir: outputDir}
	if path, ok := env.Lookup("BLADE_AUDIT_LOG", "B64_AUDIT_LOG"); ok && strings.TrimSpace(path) != "" {
		logger, err := logging.NewAuditLogger("bladectl", logging.WithFile(strings.TrimSpace(path)), logging.WithoutStdout())
		if err != nil {
			fmt.Fprintf(os.Stderr, "open audit log: %v\n", err)
			return 1
		}
		defer func() { _ = logger.Close() }()
		opts.Audit = logger.WithComponent("batch")
	}

	res := runner.Batch(context.Background(), file, opts)
	return renderResult(res)
}
