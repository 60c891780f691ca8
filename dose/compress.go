package dose

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zlib"
	"github.com/klauspost/compress/zstd"
)

// Compression is the codec applied to a whole file.
type Compression uint8

const (
	CompNone Compression = 0
	CompGzip Compression = 1
	CompZstd Compression = 2
	CompZlib Compression = 3
)

func (c Compression) String() string {
	switch c {
	case CompNone:
		return "none"
	case CompGzip:
		return "gzip"
	case CompZstd:
		return "zstd"
	case CompZlib:
		return "zlib"
	}
	return fmt.Sprintf("compression(%d)", uint8(c))
}

// Ext is the file suffix conventionally added for c.
func (c Compression) Ext() string {
	switch c {
	case CompGzip:
		return ".gz"
	case CompZstd:
		return ".zst"
	case CompZlib:
		return ".zz"
	}
	return ""
}

// ParseCompression accepts the names printed by String.
func ParseCompression(s string) (Compression, error) {
	switch strings.ToLower(s) {
	case "", "none":
		return CompNone, nil
	case "gzip", "gz":
		return CompGzip, nil
	case "zstd", "zst":
		return CompZstd, nil
	case "zlib":
		return CompZlib, nil
	}
	return CompNone, fmt.Errorf("unknown compression %q (supported: none, gzip, zstd, zlib)", s)
}

var zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}

// Detect guesses the codec of data from its leading bytes.
func Detect(data []byte) Compression {
	switch {
	case len(data) >= 2 && data[0] == 0x1f && data[1] == 0x8b:
		return CompGzip
	case bytes.HasPrefix(data, zstdMagic):
		return CompZstd
	case len(data) >= 2 && data[0] == 0x78 && (uint16(data[0])<<8|uint16(data[1]))%31 == 0:
		return CompZlib
	}
	return CompNone
}

// Decompress unpacks data if it carries a known compression header and
// returns it unchanged otherwise.
func Decompress(data []byte) ([]byte, error) {
	var (
		out []byte
		err error
	)
	switch Detect(data) {
	case CompGzip:
		var zr *gzip.Reader
		if zr, err = gzip.NewReader(bytes.NewReader(data)); err == nil {
			defer zr.Close()
			out, err = io.ReadAll(zr)
		}
	case CompZlib:
		var zr io.ReadCloser
		if zr, err = zlib.NewReader(bytes.NewReader(data)); err == nil {
			defer zr.Close()
			out, err = io.ReadAll(zr)
		}
	case CompZstd:
		var dec *zstd.Decoder
		if dec, err = zstd.NewReader(nil); err == nil {
			defer dec.Close()
			out, err = dec.DecodeAll(data, nil)
		}
	default:
		return data, nil
	}
	if err != nil {
		return nil, &IoError{Op: "decompress", Path: Detect(data).String(), Err: err}
	}
	return out, nil
}

// Compress packs b with c. CompNone returns b as is.
func Compress(b []byte, c Compression) ([]byte, error) {
	switch c {
	case CompNone:
		return b, nil
	case CompGzip:
		var buf bytes.Buffer
		zw, err := gzip.NewWriterLevel(&buf, gzip.BestCompression)
		if err != nil {
			return nil, err
		}
		if _, err := zw.Write(b); err != nil {
			return nil, err
		}
		if err := zw.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case CompZlib:
		var buf bytes.Buffer
		zw, err := zlib.NewWriterLevel(&buf, zlib.BestCompression)
		if err != nil {
			return nil, err
		}
		if _, err := zw.Write(b); err != nil {
			return nil, err
		}
		if err := zw.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case CompZstd:
		enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
		if err != nil {
			return nil, err
		}
		defer enc.Close()
		return enc.EncodeAll(b, nil), nil
	}
	return nil, fmt.Errorf("unsupported compression: %d", c)
}
