package runner

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestEncodeText(t *testing.T) {
	res := Encode(context.Background(), EncodeOptions{Text: "Hello World"})
	if !res.Success {
		t.Fatalf("encode failed: %s", res.Error)
	}
	p := res.Encode
	if p.Encoded != "SGVsbG8gV29ybGQ=" {
		t.Errorf("encoded = %q", p.Encoded)
	}
	if p.InputSize != 11 {
		t.Errorf("input_size = %d, want 11", p.InputSize)
	}
	if p.EncodedSize != 16 {
		t.Errorf("encoded_size = %d, want 16", p.EncodedSize)
	}
	if p.URLSafe {
		t.Error("url_safe must be false by default")
	}
	if p.Source != "text" {
		t.Errorf("source = %q", p.Source)
	}
}

func TestEncodeURLSafe(t *testing.T) {
	res := Encode(context.Background(), EncodeOptions{Text: "\xfb\xff", URLSafe: true})
	if !res.Success {
		t.Fatalf("encode failed: %s", res.Error)
	}
	p := res.Encode
	if !p.URLSafe {
		t.Error("url_safe flag not reported")
	}
	if strings.ContainsAny(p.Encoded, "+/") {
		t.Errorf("URL-safe output contains standard alphabet chars: %q", p.Encoded)
	}
	if !strings.HasSuffix(p.Encoded, "=") {
		t.Errorf("URL-safe output must keep padding: %q", p.Encoded)
	}
}

func TestEncodeFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "input.txt")
	if err := os.WriteFile(path, []byte("file content"), 0o644); err != nil {
		t.Fatalf("write input: %v", err)
	}

	res := Encode(context.Background(), EncodeOptions{Text: "ignored", FilePath: path})
	if !res.Success {
		t.Fatalf("encode failed: %s", res.Error)
	}
	p := res.Encode
	if p.Source != "file:"+path {
		t.Errorf("source = %q", p.Source)
	}
	if p.InputSize != len("file content") {
		t.Errorf("input_size = %d", p.InputSize)
	}
	if p.Encoded != "ZmlsZSBjb250ZW50" {
		t.Errorf("encoded = %q", p.Encoded)
	}
}

func TestEncodeMissingFile(t *testing.T) {
	res := Encode(context.Background(), EncodeOptions{FilePath: filepath.Join(t.TempDir(), "missing.txt")})
	if res.Success {
		t.Fatal("expected failure for missing input file")
	}
	if res.Error == "" {
		t.Fatal("failed result must carry an error message")
	}
}
