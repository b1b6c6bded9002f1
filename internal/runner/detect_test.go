package runner

import (
	"context"
	"encoding/base64"
	"strings"
	"testing"

	"github.com/Los-Altos/blade-code/internal/sniff"
)

func TestDetectJSON(t *testing.T) {
	res := Detect(context.Background(), "eyJ0ZXN0IjogMX0=")
	if !res.Success {
		t.Fatalf("detect failed: %s", res.Error)
	}
	p := res.Detect
	if p.Type != sniff.CategoryJSON {
		t.Errorf("type = %s, want json", p.Type)
	}
	content, ok := p.Content.(map[string]interface{})
	if !ok || content["test"] != float64(1) {
		t.Errorf("content = %v", p.Content)
	}
}

func TestDetectShortText(t *testing.T) {
	res := Detect(context.Background(), "SGVsbG8gV29ybGQ=")
	if !res.Success {
		t.Fatalf("detect failed: %s", res.Error)
	}
	p := res.Detect
	if p.Type != sniff.CategoryText {
		t.Errorf("type = %s, want text", p.Type)
	}
	if p.Preview != "Hello World" {
		t.Errorf("preview = %q", p.Preview)
	}
	if p.Truncated {
		t.Error("short text must not be marked truncated")
	}
}

func TestDetectLongTextTruncated(t *testing.T) {
	text := strings.Repeat("commentary ", 30) // well past 200 characters
	input := base64.StdEncoding.EncodeToString([]byte(text))

	res := Detect(context.Background(), input)
	if !res.Success {
		t.Fatalf("detect failed: %s", res.Error)
	}
	p := res.Detect
	if !p.Truncated {
		t.Fatal("expected truncation marker")
	}
	if !strings.HasSuffix(p.Preview, "...") {
		t.Errorf("preview must end with ellipsis: %q", p.Preview)
	}
	if got := len([]rune(strings.TrimSuffix(p.Preview, "..."))); got != detectTextPreviewRunes {
		t.Errorf("preview length = %d runes, want %d", got, detectTextPreviewRunes)
	}
	if p.RawSize != len(text) {
		t.Errorf("raw_size = %d, want %d", p.RawSize, len(text))
	}
}

func TestDetectBinaryPreview(t *testing.T) {
	data := make([]byte, 64)
	data[0] = 0xfe
	input := base64.StdEncoding.EncodeToString(data)

	res := Detect(context.Background(), input)
	if !res.Success {
		t.Fatalf("detect failed: %s", res.Error)
	}
	p := res.Detect
	if p.Type != sniff.CategoryBinary {
		t.Errorf("type = %s, want binary", p.Type)
	}
	if got := len(p.HexPreview); got != detectPreviewBytes*2 {
		t.Errorf("hex preview length = %d, want %d", got, detectPreviewBytes*2)
	}
}

func TestDetectImage(t *testing.T) {
	payload := []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0x00, 0x01}
	input := base64.StdEncoding.EncodeToString(payload)

	res := Detect(context.Background(), input)
	if !res.Success {
		t.Fatalf("detect failed: %s", res.Error)
	}
	if res.Detect.MIMEType != "image/png" {
		t.Errorf("mime_type = %q, want image/png", res.Detect.MIMEType)
	}
}

func TestDetectInvalidInput(t *testing.T) {
	res := Detect(context.Background(), "###")
	if res.Success {
		t.Fatal("expected failure for invalid Base64")
	}
}
