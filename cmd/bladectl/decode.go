package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/Los-Altos/blade-code/internal/result"
	"github.com/Los-Altos/blade-code/internal/runner"
)

func runDecode(args []string) int {
	fs := flag.NewFlagSet("decode", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	var file, output string
	var binary bool
	fs.StringVar(&file, "file", "", "read the Base64 input from a file")
	fs.StringVar(&file, "f", "", "read the Base64 input from a file (shorthand)")
	fs.StringVar(&output, "output", "", "write the decoded bytes to this path")
	fs.StringVar(&output, "o", "", "write the decoded bytes to this path (shorthand)")
	fs.BoolVar(&binary, "binary", false, "report decoded text as a hex preview")
	fs.BoolVar(&binary, "b", false, "report decoded text as a hex preview (shorthand)")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	input, err := resolveInput(fs.Args(), file)
	if err != nil {
		return renderResult(result.Failure(result.OpDecode, err))
	}

	res := runner.Decode(context.Background(), input, runner.DecodeOptions{
		OutputPath:  output,
		ForceBinary: binary,
	})
	return renderResult(res)
}

// resolveInput picks the Base64 input: positional argument, then --file,
// then standard input.
func resolveInput(positional []string, file string) (string, error) {
	if len(positional) > 0 {
		return positional[0], nil
	}
	if file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("read input file: %w", err)
		}
		return string(data), nil
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return string(data), nil
}
