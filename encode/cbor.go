package encode

import (
	"fmt"
	"io"

	"github.com/fxamacker/cbor/v2"

	"github.com/voxelsplace/dose2gmsh/dose"
)

// cborVersion is bumped whenever cborBlock changes incompatibly.
const cborVersion = 1

// cborBlock is the wire layout of the cbor format. Integer keys keep the
// encoding compact.
type cborBlock struct {
	Version     int          `cbor:"0,keyasint"`
	Counts      [3]int       `cbor:"1,keyasint"`
	Bounds      [3][]float64 `cbor:"2,keyasint"`
	Doses       []float64    `cbor:"3,keyasint"`
	Errors      []float64    `cbor:"4,keyasint,omitempty"`
	Fingerprint uint64       `cbor:"5,keyasint"`
}

var (
	cborEncMode cbor.EncMode
	cborDecMode cbor.DecMode
)

func init() {
	var err error
	encOpts := cbor.EncOptions{
		Sort:          cbor.SortCanonical,
		IndefLength:   cbor.IndefLengthForbidden,
		NilContainers: cbor.NilContainerAsNull,
		ShortestFloat: cbor.ShortestFloatNone,
	}
	cborEncMode, err = encOpts.EncMode()
	if err != nil {
		panic(fmt.Sprintf("failed to create dose CBOR encoder mode: %v", err))
	}
	decOpts := cbor.DecOptions{
		DupMapKey:   cbor.DupMapKeyEnforcedAPF,
		IndefLength: cbor.IndefLengthForbidden,
	}
	cborDecMode, err = decOpts.DecMode()
	if err != nil {
		panic(fmt.Sprintf("failed to create dose CBOR decoder mode: %v", err))
	}
}

// WriteCBOR writes b as a single CBOR map carrying its fingerprint.
func WriteCBOR(w io.Writer, b *dose.DoseBlock) error {
	if err := dose.CheckForEncoding(b, Cbor.String()); err != nil {
		return err
	}
	return cborEncMode.NewEncoder(w).Encode(cborBlock{
		Version:     cborVersion,
		Counts:      b.Counts,
		Bounds:      b.Bounds,
		Doses:       b.Doses,
		Errors:      b.Errors,
		Fingerprint: b.Fingerprint(),
	})
}

// DecodeCBOR reads a block written by WriteCBOR and checks its fingerprint.
func DecodeCBOR(data []byte) (*dose.DoseBlock, error) {
	var cb cborBlock
	if err := cborDecMode.Unmarshal(data, &cb); err != nil {
		return nil, &dose.FormatError{Msg: "cbor: " + err.Error()}
	}
	if cb.Version != cborVersion {
		return nil, &dose.FormatError{Msg: fmt.Sprintf("cbor: unsupported version %d", cb.Version)}
	}
	b := &dose.DoseBlock{Counts: cb.Counts, Bounds: cb.Bounds, Doses: cb.Doses, Errors: cb.Errors}
	if len(b.Errors) == 0 {
		b.Errors = nil
	}
	if err := b.Validate(); err != nil {
		return nil, err
	}
	if got := b.Fingerprint(); got != cb.Fingerprint {
		return nil, &dose.FormatError{Msg: fmt.Sprintf("cbor: fingerprint mismatch (stored %016x, computed %016x)", cb.Fingerprint, got)}
	}
	return b, nil
}
