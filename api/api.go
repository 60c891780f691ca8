package api

import (
	"fmt"

	"github.com/voxelsplace/dose2gmsh/dose"
	"github.com/voxelsplace/dose2gmsh/encode"
)

// Convert takes 3ddose file bytes (optionally gzip/zlib/zstd compressed) and
// returns them encoded in the named format.
func Convert(doseBytes []byte, format string) ([]byte, error) {
	f, err := encode.ParseFormat(format)
	if err != nil {
		return nil, err
	}
	block, err := dose.LoadDoseBlockFromBytes(doseBytes)
	if err != nil {
		return nil, err
	}
	return encode.Encode(f, block)
}

// ConvertTo3DDose decodes bytes produced by the cbor format back to 3ddose
// text.
func ConvertTo3DDose(cborBytes []byte) ([]byte, error) {
	block, err := encode.DecodeCBOR(cborBytes)
	if err != nil {
		return nil, err
	}
	return dose.Marshal3DDose(block)
}

// Info returns a YAML summary of 3ddose file bytes.
func Info(doseBytes []byte) ([]byte, error) {
	block, err := dose.LoadDoseBlockFromBytes(doseBytes)
	if err != nil {
		return nil, err
	}
	out, err := block.Summary().YAML()
	if err != nil {
		return nil, fmt.Errorf("failed to render summary: %w", err)
	}
	return out, nil
}
