package dose

import (
	"encoding/binary"
	"fmt"
	"math"

	xxhash "github.com/cespare/xxhash/v2"
)

// Fingerprint hashes the counts, boundaries and payloads of b. Two blocks
// with bit-identical values have the same fingerprint.
func (b *DoseBlock) Fingerprint() uint64 {
	d := xxhash.New()
	var buf [8]byte
	put := func(v uint64) {
		binary.LittleEndian.PutUint64(buf[:], v)
		_, _ = d.Write(buf[:])
	}
	putAll := func(vals []float64) {
		put(uint64(len(vals)))
		for _, v := range vals {
			put(math.Float64bits(v))
		}
	}
	for a := range 3 {
		put(uint64(b.Counts[a]))
	}
	for a := range 3 {
		putAll(b.Bounds[a])
	}
	putAll(b.Doses)
	if b.HasErrors() {
		putAll(b.Errors)
	}
	return d.Sum64()
}

// FingerprintHex is Fingerprint as 16 hex digits.
func (b *DoseBlock) FingerprintHex() string {
	return fmt.Sprintf("%016x", b.Fingerprint())
}
