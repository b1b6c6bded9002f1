package runner

import (
	"context"
	"fmt"
	"os"

	"github.com/Los-Altos/blade-code/internal/codec"
	"github.com/Los-Altos/blade-code/internal/result"
)

// EncodeOptions selects the encode input and alphabet. FilePath wins over
// Text when both are set.
type EncodeOptions struct {
	Text     string
	FilePath string
	URLSafe  bool
}

// Encode reads the input bytes and encodes them with the standard or
// URL-safe Base64 alphabet.
func Encode(ctx context.Context, opts EncodeOptions) result.Result {
	raw := []byte(opts.Text)
	source := "text"
	if opts.FilePath != "" {
		data, err := os.ReadFile(opts.FilePath)
		if err != nil {
			return result.Failure(result.OpEncode, fmt.Errorf("read input file: %w", err))
		}
		raw = data
		source = "file:" + opts.FilePath
	}

	name := "base64_encode"
	if opts.URLSafe {
		name = "base64url_encode"
	}
	op, ok := codec.GetOperation(name)
	if !ok {
		return result.Failure(result.OpEncode, fmt.Errorf("%s operation not registered", name))
	}
	encoded, err := op.Execute(ctx, raw)
	if err != nil {
		return result.Failure(result.OpEncode, err)
	}

	return result.Result{
		Success:   true,
		Operation: result.OpEncode,
		Encode: &result.EncodePayload{
			Source:      source,
			InputSize:   len(raw),
			EncodedSize: len(encoded),
			URLSafe:     opts.URLSafe,
			Encoded:     string(encoded),
		},
	}
}
