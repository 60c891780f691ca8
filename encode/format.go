// Package encode turns a dose.DoseBlock into the supported output formats.
package encode

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/voxelsplace/dose2gmsh/dose"
)

// Format is the closed set of output formats.
type Format uint8

const (
	Msh2 Format = iota
	Vtk
	Csv
	Glb
	Cbor
	Dose3D
)

// Formats lists every Format in flag help order.
var Formats = []Format{Msh2, Vtk, Csv, Glb, Cbor, Dose3D}

func (f Format) String() string {
	switch f {
	case Msh2:
		return "msh2"
	case Vtk:
		return "vtk"
	case Csv:
		return "csv"
	case Glb:
		return "glb"
	case Cbor:
		return "cbor"
	case Dose3D:
		return "3ddose"
	}
	return fmt.Sprintf("format(%d)", uint8(f))
}

// Ext is the canonical file extension, dot included.
func (f Format) Ext() string {
	switch f {
	case Msh2:
		return ".msh"
	case Vtk:
		return ".vtk"
	case Csv:
		return ".csv"
	case Glb:
		return ".glb"
	case Cbor:
		return ".cbor"
	case Dose3D:
		return ".3ddose"
	}
	return ""
}

// ParseFormat resolves a format name as given on the command line.
func ParseFormat(s string) (Format, error) {
	for _, f := range Formats {
		if strings.EqualFold(s, f.String()) {
			return f, nil
		}
	}
	if strings.EqualFold(s, "msh") {
		return Msh2, nil
	}
	names := make([]string, len(Formats))
	for i, f := range Formats {
		names[i] = f.String()
	}
	return 0, fmt.Errorf("unknown format %q (supported: %s)", s, strings.Join(names, ", "))
}

// Write encodes b to w in format f.
func Write(w io.Writer, f Format, b *dose.DoseBlock) error {
	switch f {
	case Msh2:
		return WriteMsh2(w, b)
	case Vtk:
		return WriteVTK(w, b)
	case Csv:
		return WriteCSV(w, b)
	case Glb:
		return WriteGLB(w, b)
	case Cbor:
		return WriteCBOR(w, b)
	case Dose3D:
		return dose.Write3DDose(w, b)
	}
	return &dose.EncodingError{Format: f.String(), Msg: "unsupported format"}
}

// Encode returns b encoded in format f.
func Encode(f Format, b *dose.DoseBlock) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(&buf, f, b); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
