package codec

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"already canonical", "SGVsbG8=", "SGVsbG8="},
		{"missing padding", "SGVsbG8", "SGVsbG8="},
		{"url safe alphabet", "a-b_cw", "a+b/cw=="},
		{"embedded whitespace", "SGVs\nbG8g \tV29ybGQ=", "SGVsbG8gV29ybGQ="},
		{"url safe unpadded", "eyJ0ZXN0IjogMX0", "eyJ0ZXN0IjogMX0="},
		{"empty string", "", ""},
		{"whitespace only", " \n\t ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.input)
			if got != tt.expected {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"SGVsbG8",
		"a-b_cw",
		"  SGVs bG8 ",
		"%%%not base64%%%",
		"",
	}
	for _, input := range inputs {
		once := Normalize(input)
		twice := Normalize(once)
		if once != twice {
			t.Errorf("Normalize not idempotent for %q: %q != %q", input, once, twice)
		}
	}
}
