package runner

import (
	"context"
	"fmt"

	"github.com/Los-Altos/blade-code/internal/result"
	"github.com/Los-Altos/blade-code/internal/sniff"
)

const (
	// detectTextPreviewRunes bounds the text preview in detect reports.
	detectTextPreviewRunes = 200
	// detectPreviewBytes bounds the hex preview for non-text payloads.
	detectPreviewBytes = 32
)

// Detect decodes a Base64 string and reports its classification. JSON
// payloads include the parsed document, text payloads a truncated preview,
// and everything else a short hex preview.
func Detect(ctx context.Context, input string) result.Result {
	raw, err := decodeBase64(ctx, input)
	if err != nil {
		return result.Failure(result.OpDetect, err)
	}

	cls := sniff.Classify(raw)
	payload := &result.DetectPayload{
		Type:     cls.Category,
		MIMEType: cls.MIME,
		RawSize:  len(raw),
	}

	switch cls.Category {
	case sniff.CategoryJSON:
		content, err := sniff.ParseJSON(raw)
		if err != nil {
			return result.Failure(result.OpDetect, fmt.Errorf("parse json: %w", err))
		}
		payload.Content = content
	case sniff.CategoryText:
		runes := []rune(string(raw))
		if len(runes) > detectTextPreviewRunes {
			payload.Preview = string(runes[:detectTextPreviewRunes]) + "..."
			payload.Truncated = true
		} else {
			payload.Preview = string(runes)
		}
	default:
		payload.HexPreview = hexPreview(raw, detectPreviewBytes)
	}

	return result.Result{Success: true, Operation: result.OpDetect, Detect: payload}
}
