package dose

import (
	"bufio"
	"bytes"
	"io"
	"os"
	"strconv"
)

// LoadDoseBlock reads and parses the 3ddose file at filename.
func LoadDoseBlock(filename string) (*DoseBlock, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, &IoError{Op: "read", Path: filename, Err: err}
	}
	return LoadDoseBlockFromBytes(data)
}

// LoadDoseBlockFromBytes parses a 3ddose file from memory. gzip, zlib and
// zstd compressed input is unpacked first.
func LoadDoseBlockFromBytes(data []byte) (*DoseBlock, error) {
	raw, err := Decompress(data)
	if err != nil {
		return nil, err
	}
	return Parse(raw)
}

// Write3DDose writes b in 3ddose layout, one array per line, with the
// shortest float text that parses back to the same value.
func Write3DDose(w io.Writer, b *DoseBlock) error {
	if err := CheckForEncoding(b, "3ddose"); err != nil {
		return err
	}
	bw := bufio.NewWriter(w)
	buf := make([]byte, 0, 32)
	writeLine := func(vals []float64) {
		for i, v := range vals {
			buf = buf[:0]
			if i > 0 {
				buf = append(buf, ' ')
			}
			buf = AppendFloat(buf, v)
			_, _ = bw.Write(buf)
		}
		_ = bw.WriteByte('\n')
	}

	buf = strconv.AppendInt(buf[:0], int64(b.NX()), 10)
	buf = append(buf, ' ')
	buf = strconv.AppendInt(buf, int64(b.NY()), 10)
	buf = append(buf, ' ')
	buf = strconv.AppendInt(buf, int64(b.NZ()), 10)
	buf = append(buf, '\n')
	_, _ = bw.Write(buf)
	for a := range 3 {
		writeLine(b.Bounds[a])
	}
	writeLine(b.Doses)
	if b.HasErrors() {
		writeLine(b.Errors)
	}
	return bw.Flush()
}

// Marshal3DDose returns the 3ddose text of b.
func Marshal3DDose(b *DoseBlock) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write3DDose(&buf, b); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// AppendFloat appends the shortest decimal form of v that round-trips.
func AppendFloat(dst []byte, v float64) []byte {
	return strconv.AppendFloat(dst, v, 'g', -1, 64)
}
