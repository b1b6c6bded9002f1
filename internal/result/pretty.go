package result

import (
	"fmt"
	"strings"
)

const (
	glyphOK   = "✔"
	glyphFail = "✘"
)

func statusGlyph(success bool) string {
	if success {
		return glyphOK
	}
	return glyphFail
}

// renderPretty produces a human-readable report with a status glyph per
// result and one line per populated field.
func renderPretty(res Result) ([]byte, error) {
	var b strings.Builder
	writeResult(&b, res, "")
	return []byte(b.String()), nil
}

func writeResult(b *strings.Builder, res Result, indent string) {
	fmt.Fprintf(b, "%s%s %s\n", indent, statusGlyph(res.Success), res.Operation)
	if res.Error != "" {
		writeField(b, indent, "error", res.Error)
	}
	switch {
	case res.Encode != nil:
		p := res.Encode
		writeField(b, indent, "source", p.Source)
		writeField(b, indent, "input_size", p.InputSize)
		writeField(b, indent, "encoded_size", p.EncodedSize)
		writeField(b, indent, "url_safe", p.URLSafe)
		writeField(b, indent, "encoded", p.Encoded)
	case res.Decode != nil:
		p := res.Decode
		writeField(b, indent, "type", p.Type)
		writeField(b, indent, "mime_type", p.MIMEType)
		writeField(b, indent, "raw_size", p.RawSize)
		if p.OutputPath != "" {
			writeField(b, indent, "output_path", p.OutputPath)
		}
		if p.Content != nil {
			writeField(b, indent, "content", renderValue(p.Content))
		}
		if p.HexPreview != "" {
			writeField(b, indent, "hex_preview", p.HexPreview)
		}
	case res.Detect != nil:
		p := res.Detect
		writeField(b, indent, "type", p.Type)
		writeField(b, indent, "mime_type", p.MIMEType)
		writeField(b, indent, "raw_size", p.RawSize)
		if p.Content != nil {
			writeField(b, indent, "content", renderValue(p.Content))
		}
		if p.Preview != "" {
			writeField(b, indent, "preview", p.Preview)
		}
		if p.Truncated {
			writeField(b, indent, "truncated", true)
		}
		if p.HexPreview != "" {
			writeField(b, indent, "hex_preview", p.HexPreview)
		}
	case res.Batch != nil:
		p := res.Batch
		writeField(b, indent, "total", p.Total)
		writeField(b, indent, "succeeded", p.Succeeded)
		writeField(b, indent, "failed", p.Failed)
		for _, item := range p.Items {
			fmt.Fprintf(b, "%s  [%d]\n", indent, item.Index)
			writeResult(b, item.Result, indent+"  ")
		}
	}
}

func writeField(b *strings.Builder, indent, name string, value interface{}) {
	fmt.Fprintf(b, "%s  • %s: %v\n", indent, name, value)
}

// renderValue compacts structured JSON content to a single line; plain
// strings pass through untouched.
func renderValue(v interface{}) string {
	if s, ok := v.(string); ok {
		return s
	}
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(data)
}

func init() {
	MustRegisterFormat(FormatSpec{
		Format:      FormatPretty,
		Description: "human-readable report",
		Render:      renderPretty,
	})
}
