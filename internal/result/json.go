package result

import (
	"fmt"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func renderJSON(res Result) ([]byte, error) {
	data, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal result: %w", err)
	}
	return append(data, '\n'), nil
}

func init() {
	MustRegisterFormat(FormatSpec{
		Format:      FormatJSON,
		Description: "structured JSON output",
		Render:      renderJSON,
	})
}
