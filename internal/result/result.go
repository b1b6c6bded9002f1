// Package result defines the structured outcome of bladectl operations and
// the output formats that render it.
package result

// Op identifies which top-level operation produced a Result.
type Op string

const (
	OpEncode Op = "encode"
	OpDecode Op = "decode"
	OpDetect Op = "detect"
	OpBatch  Op = "batch"
)

// Result is the single record every operation returns. At most one payload
// pointer is set; failed results carry only the error message. Results are
// immutable once constructed.
type Result struct {
	Success   bool           `json:"success"`
	Operation Op             `json:"operation"`
	Error     string         `json:"error,omitempty"`
	Encode    *EncodePayload `json:"encode,omitempty"`
	Decode    *DecodePayload `json:"decode,omitempty"`
	Detect    *DetectPayload `json:"detect,omitempty"`
	Batch     *BatchPayload  `json:"batch,omitempty"`
}

// EncodePayload reports the outcome of an encode operation.
type EncodePayload struct {
	Source      string `json:"source"`
	InputSize   int    `json:"input_size"`
	EncodedSize int    `json:"encoded_size"`
	URLSafe     bool   `json:"url_safe"`
	Encoded     string `json:"encoded"`
}

// DecodePayload reports the outcome of a decode operation. Exactly one of
// OutputPath, Content, or HexPreview is populated depending on the output
// policy.
type DecodePayload struct {
	Type       string      `json:"type"`
	MIMEType   string      `json:"mime_type"`
	RawSize    int         `json:"raw_size"`
	Content    interface{} `json:"content,omitempty"`
	RawText    string      `json:"raw_text,omitempty"`
	HexPreview string      `json:"hex_preview,omitempty"`
	OutputPath string      `json:"output_path,omitempty"`
}

// DetectPayload reports the outcome of a detect operation.
type DetectPayload struct {
	Type       string      `json:"type"`
	MIMEType   string      `json:"mime_type"`
	RawSize    int         `json:"raw_size"`
	Content    interface{} `json:"content,omitempty"`
	Preview    string      `json:"preview,omitempty"`
	Truncated  bool        `json:"truncated,omitempty"`
	HexPreview string      `json:"hex_preview,omitempty"`
}

// BatchItem pairs a per-line Result with its zero-based input index.
type BatchItem struct {
	Index  int    `json:"index"`
	Result Result `json:"result"`
}

// BatchPayload aggregates per-item outcomes of a batch run.
type BatchPayload struct {
	Total     int         `json:"total"`
	Succeeded int         `json:"succeeded"`
	Failed    int         `json:"failed"`
	Items     []BatchItem `json:"items"`
}

// Failure builds a failed Result for op carrying the error message.
func Failure(op Op, err error) Result {
	return Result{Operation: op, Error: err.Error()}
}
