// Package runner implements the top-level bladectl operations. Every entry
// point converts failures into a failed Result instead of returning an
// error, so a malformed input never crashes the process.
package runner

import (
	"context"
	"encoding/hex"
	"fmt"
	"os"

	"github.com/Los-Altos/blade-code/internal/codec"
	"github.com/Los-Altos/blade-code/internal/result"
	"github.com/Los-Altos/blade-code/internal/sniff"
)

// decodePreviewBytes bounds the hex preview emitted for binary payloads.
const decodePreviewBytes = 64

// DecodeOptions controls how a decode operation reports its payload.
type DecodeOptions struct {
	// OutputPath, when set, persists the raw decoded bytes instead of
	// returning them inline.
	OutputPath string
	// ForceBinary reports text payloads as a hex preview.
	ForceBinary bool
}

// Decode normalizes and decodes a Base64 string, classifies the payload, and
// applies the output policy: persist to OutputPath, return parsed JSON plus
// raw text, return decoded text, or fall back to a hex preview.
func Decode(ctx context.Context, input string, opts DecodeOptions) result.Result {
	raw, err := decodeBase64(ctx, input)
	if err != nil {
		return result.Failure(result.OpDecode, err)
	}

	cls := sniff.Classify(raw)
	payload := &result.DecodePayload{
		Type:     cls.Category,
		MIMEType: cls.MIME,
		RawSize:  len(raw),
	}

	switch {
	case opts.OutputPath != "":
		if err := os.WriteFile(opts.OutputPath, raw, 0o644); err != nil {
			return result.Failure(result.OpDecode, fmt.Errorf("write output: %w", err))
		}
		payload.OutputPath = opts.OutputPath
	case cls.Category == sniff.CategoryJSON:
		content, err := sniff.ParseJSON(raw)
		if err != nil {
			return result.Failure(result.OpDecode, fmt.Errorf("parse json: %w", err))
		}
		payload.Content = content
		payload.RawText = string(raw)
	case cls.Category == sniff.CategoryText && !opts.ForceBinary:
		payload.Content = string(raw)
	default:
		payload.HexPreview = hexPreview(raw, decodePreviewBytes)
	}

	return result.Result{Success: true, Operation: result.OpDecode, Decode: payload}
}

func decodeBase64(ctx context.Context, input string) ([]byte, error) {
	op, ok := codec.GetOperation("base64_decode")
	if !ok {
		return nil, fmt.Errorf("base64_decode operation not registered")
	}
	return op.Execute(ctx, []byte(input))
}

func hexPreview(data []byte, max int) string {
	if len(data) > max {
		data = data[:max]
	}
	return hex.EncodeToString(data)
}
