package codec

import (
	"context"
	"encoding/base64"
	"fmt"
)

// Base64EncodeOp encodes data as standard padded Base64
type Base64EncodeOp struct {
	BaseOperation
}

func (op *Base64EncodeOp) Execute(ctx context.Context, input []byte) ([]byte, error) {
	encoded := base64.StdEncoding.EncodeToString(input)
	return []byte(encoded), nil
}

// Base64URLEncodeOp encodes data as URL-safe Base64. Padding is kept, unlike
// the Normalizer which tolerates unpadded input.
type Base64URLEncodeOp struct {
	BaseOperation
}

func (op *Base64URLEncodeOp) Execute(ctx context.Context, input []byte) ([]byte, error) {
	encoded := base64.URLEncoding.EncodeToString(input)
	return []byte(encoded), nil
}

// Base64DecodeOp decodes Base64 data. Input is normalized first, so URL-safe
// and unpadded strings decode the same as canonical standard-alphabet input.
type Base64DecodeOp struct {
	BaseOperation
}

func (op *Base64DecodeOp) Execute(ctx context.Context, input []byte) ([]byte, error) {
	decoded, err := base64.StdEncoding.DecodeString(Normalize(string(input)))
	if err != nil {
		return nil, fmt.Errorf("base64 decode failed: %w", err)
	}
	return decoded, nil
}

// init registers the Base64 operations
func init() {
	base64Encode := &Base64EncodeOp{
		BaseOperation: BaseOperation{
			NameValue:        "base64_encode",
			TypeValue:        OperationTypeEncode,
			DescriptionValue: "Encode data as standard Base64",
		},
	}
	base64Decode := &Base64DecodeOp{
		BaseOperation: BaseOperation{
			NameValue:        "base64_decode",
			TypeValue:        OperationTypeDecode,
			DescriptionValue: "Decode Base64 data (standard or URL-safe, padded or not)",
		},
	}
	base64Encode.ReverseOp = base64Decode
	base64Decode.ReverseOp = base64Encode

	base64URLEncode := &Base64URLEncodeOp{
		BaseOperation: BaseOperation{
			NameValue:        "base64url_encode",
			TypeValue:        OperationTypeEncode,
			DescriptionValue: "Encode data as URL-safe Base64",
		},
	}
	base64URLEncode.ReverseOp = base64Decode

	MustRegisterOperation(base64Encode)
	MustRegisterOperation(base64Decode)
	MustRegisterOperation(base64URLEncode)
}
