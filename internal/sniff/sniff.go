// Package sniff classifies decoded payloads. Magic-byte signatures are
// checked first in a fixed order; unmatched buffers fall back to UTF-8 and
// JSON detection.
package sniff

import (
	"bytes"
	"unicode/utf8"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Category buckets for classified payloads.
const (
	CategoryImage       = "image"
	CategoryApplication = "application"
	CategoryJSON        = "json"
	CategoryText        = "text"
	CategoryBinary      = "binary"
)

// Classification pairs a coarse category with the detected MIME type.
type Classification struct {
	Category string `json:"category"`
	MIME     string `json:"mime_type"`
}

type signature struct {
	prefix   []byte
	category string
	mime     string
}

// signatures is evaluated in order; first match wins. A %PDF prefix therefore
// classifies as application/pdf even when the rest of the buffer is valid
// UTF-8 text.
var signatures = []signature{
	{[]byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}, CategoryImage, "image/png"},
	{[]byte{0xff, 0xd8, 0xff}, CategoryImage, "image/jpeg"},
	{[]byte("GIF87a"), CategoryImage, "image/gif"},
	{[]byte("GIF89a"), CategoryImage, "image/gif"},
	{[]byte("%PDF"), CategoryApplication, "application/pdf"},
	{[]byte{'P', 'K', 0x03, 0x04}, CategoryApplication, "application/zip"},
	{[]byte{0x1f, 0x8b}, CategoryApplication, "application/gzip"},
}

// Classify determines the content type of a decoded byte buffer. It is a pure
// function of the input bytes.
func Classify(data []byte) Classification {
	for _, sig := range signatures {
		if bytes.HasPrefix(data, sig.prefix) {
			return Classification{Category: sig.category, MIME: sig.mime}
		}
	}
	if utf8.Valid(data) {
		if isJSON(data) {
			return Classification{Category: CategoryJSON, MIME: "application/json"}
		}
		return Classification{Category: CategoryText, MIME: "text/plain"}
	}
	return Classification{Category: CategoryBinary, MIME: "application/octet-stream"}
}

// isJSON accepts any complete JSON document, primitive scalars included.
func isJSON(data []byte) bool {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return false
	}
	var v interface{}
	return json.Unmarshal(trimmed, &v) == nil
}

// ParseJSON decodes a payload previously classified as JSON.
func ParseJSON(data []byte) (interface{}, error) {
	var v interface{}
	if err := json.Unmarshal(bytes.TrimSpace(data), &v); err != nil {
		return nil, err
	}
	return v, nil
}

// Ext returns the file extension used when persisting a payload with the
// given classification.
func Ext(c Classification) string {
	switch c.Category {
	case CategoryJSON:
		return ".json"
	case CategoryText:
		return ".txt"
	}
	switch c.MIME {
	case "image/png":
		return ".png"
	case "image/jpeg":
		return ".jpg"
	case "image/gif":
		return ".gif"
	case "application/pdf":
		return ".pdf"
	}
	return ".bin"
}
