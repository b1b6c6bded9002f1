package main

import (
	"context"
	"flag"
	"os"

	"github.com/Los-Altos/blade-code/internal/runner"
)

func runEncode(args []string) int {
	fs := flag.NewFlagSet("encode", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	var file string
	var urlSafe bool
	fs.StringVar(&file, "file", "", "encode the contents of this file")
	fs.StringVar(&file, "f", "", "encode the contents of this file (shorthand)")
	fs.BoolVar(&urlSafe, "url-safe", false, "use the URL-safe Base64 alphabet")
	fs.BoolVar(&urlSafe, "u", false, "use the URL-safe Base64 alphabet (shorthand)")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	var text string
	if fs.NArg() > 0 {
		text = fs.Arg(0)
	}

	res := runner.Encode(context.Background(), runner.EncodeOptions{
		Text:     text,
		FilePath: file,
		URLSafe:  urlSafe,
	})
	return renderResult(res)
}
