package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestRunEncodeText(t *testing.T) {
	restore := silenceOutput(t)
	defer restore()

	if code := runEncode([]string{"Hello World"}); code != 0 {
		t.Fatalf("expected exit code 0, got %d", code)
	}
}

func TestRunEncodeURLSafe(t *testing.T) {
	restore := silenceOutput(t)
	defer restore()

	if code := runEncode([]string{"--url-safe", "Hello World"}); code != 0 {
		t.Fatalf("expected exit code 0, got %d", code)
	}
}

func TestRunEncodeFile(t *testing.T) {
	restore := silenceOutput(t)
	defer restore()

	inPath := filepath.Join(t.TempDir(), "payload.bin")
	if err := os.WriteFile(inPath, []byte("file content"), 0o644); err != nil {
		t.Fatalf("write input: %v", err)
	}
	if code := runEncode([]string{"--file", inPath}); code != 0 {
		t.Fatalf("expected exit code 0, got %d", code)
	}
}

func TestRunEncodeMissingFile(t *testing.T) {
	restore := silenceOutput(t)
	defer restore()

	missing := filepath.Join(t.TempDir(), "missing.bin")
	if code := runEncode([]string{"--file", missing}); code != 0 {
		t.Fatalf("expected failed result to exit 0, got %d", code)
	}
}
