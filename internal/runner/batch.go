package runner

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Los-Altos/blade-code/internal/logging"
	"github.com/Los-Altos/blade-code/internal/result"
	"github.com/Los-Altos/blade-code/internal/sniff"
)

// BatchOptions controls batch persistence and auditing.
type BatchOptions struct {
	// OutputDir, when set, persists each decoded item as
	// item_<index>.<ext>; the directory is created if absent.
	OutputDir string
	// Audit receives one event per item plus a summary event.
	Audit *logging.AuditLogger
}

// Batch decodes every non-blank line of the file at path. Per-item failures
// are isolated; the batch itself only fails when the input cannot be read or
// the output directory cannot be created.
func Batch(ctx context.Context, path string, opts BatchOptions) result.Result {
	data, err := os.ReadFile(path)
	if err != nil {
		return result.Failure(result.OpBatch, fmt.Errorf("read batch input: %w", err))
	}
	if opts.OutputDir != "" {
		if err := os.MkdirAll(opts.OutputDir, 0o755); err != nil {
			return result.Failure(result.OpBatch, fmt.Errorf("create output directory: %w", err))
		}
	}

	var lines []string
	for _, line := range strings.Split(string(data), "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		lines = append(lines, trimmed)
	}

	payload := &result.BatchPayload{
		Total: len(lines),
		Items: make([]result.BatchItem, 0, len(lines)),
	}
	for i, line := range lines {
		item := runBatchItem(ctx, i, line, opts.OutputDir)
		if item.Success {
			payload.Succeeded++
		} else {
			payload.Failed++
		}
		payload.Items = append(payload.Items, result.BatchItem{Index: i, Result: item})
		auditItem(opts.Audit, i, item)
	}

	auditSummary(opts.Audit, payload)
	return result.Result{Success: true, Operation: result.OpBatch, Batch: payload}
}

// runBatchItem decodes one line. With persistence enabled the item is
// detected first so the generated filename carries a matching extension.
func runBatchItem(ctx context.Context, index int, line, outputDir string) result.Result {
	if outputDir == "" {
		return Decode(ctx, line, DecodeOptions{})
	}

	ext := ".bin"
	if detected := Detect(ctx, line); detected.Success && detected.Detect != nil {
		ext = sniff.Ext(sniff.Classification{Category: detected.Detect.Type, MIME: detected.Detect.MIMEType})
	}
	name := fmt.Sprintf("item_%d%s", index, ext)
	return Decode(ctx, line, DecodeOptions{OutputPath: filepath.Join(outputDir, name)})
}

func auditItem(logger *logging.AuditLogger, index int, item result.Result) {
	if logger == nil {
		return
	}
	event := logging.AuditEvent{
		EventType: logging.EventBatchItem,
		Status:    logging.StatusOK,
		Metadata:  map[string]any{"index": index},
	}
	if !item.Success {
		event.Status = logging.StatusError
		event.Reason = item.Error
	} else if item.Decode != nil {
		event.Metadata["type"] = item.Decode.Type
		if item.Decode.OutputPath != "" {
			event.Metadata["output_path"] = item.Decode.OutputPath
		}
	}
	_ = logger.Emit(event)
}

func auditSummary(logger *logging.AuditLogger, payload *result.BatchPayload) {
	if logger == nil {
		return
	}
	_ = logger.Emit(logging.AuditEvent{
		EventType: logging.EventBatchSummary,
		Status:    logging.StatusOK,
		Metadata: map[string]any{
			"total":     payload.Total,
			"succeeded": payload.Succeeded,
			"failed":    payload.Failed,
		},
	})
}
