package encode

import (
	"bufio"
	"io"
	"strconv"

	"github.com/voxelsplace/dose2gmsh/dose"
)

// WriteVTK writes b as a legacy ASCII VTK dataset with cell data.
//
// When all three axes are uniformly spaced the dataset is STRUCTURED_POINTS
// (ORIGIN and SPACING). Otherwise it is a RECTILINEAR_GRID that lists every
// boundary explicitly. DIMENSIONS counts grid points, one more than voxels.
func WriteVTK(w io.Writer, b *dose.DoseBlock) error {
	if err := dose.CheckForEncoding(b, Vtk.String()); err != nil {
		return err
	}
	bw := bufio.NewWriter(w)
	buf := make([]byte, 0, 64)
	line := func(parts ...[]byte) {
		for i, p := range parts {
			if i > 0 {
				_ = bw.WriteByte(' ')
			}
			_, _ = bw.Write(p)
		}
		_ = bw.WriteByte('\n')
	}
	triple := func(key string, v [3]float64) {
		buf = append(buf[:0], key...)
		for _, f := range v {
			buf = append(buf, ' ')
			buf = dose.AppendFloat(buf, f)
		}
		line(buf)
	}

	_, _ = bw.WriteString("# vtk DataFile Version 3.0\n3ddose dose distribution\nASCII\n")

	var spacing [3]float64
	uniform := true
	for a := range 3 {
		s, ok := b.Spacing(dose.Axis(a))
		spacing[a] = s
		uniform = uniform && ok
	}
	dims := []byte("DIMENSIONS")
	for a := range 3 {
		dims = append(dims, ' ')
		dims = strconv.AppendInt(dims, int64(b.Counts[a]+1), 10)
	}

	if uniform {
		_, _ = bw.WriteString("DATASET STRUCTURED_POINTS\n")
		line(dims)
		triple("ORIGIN", b.Origin())
		triple("SPACING", spacing)
	} else {
		_, _ = bw.WriteString("DATASET RECTILINEAR_GRID\n")
		line(dims)
		for a, key := range []string{"X_COORDINATES", "Y_COORDINATES", "Z_COORDINATES"} {
			bs := b.Bounds[a]
			_, _ = bw.WriteString(key + " " + strconv.Itoa(len(bs)) + " double\n")
			writeColumn(bw, bs)
		}
	}

	_, _ = bw.WriteString("CELL_DATA " + strconv.Itoa(b.NumVoxels()) + "\n")
	_, _ = bw.WriteString("SCALARS dose double 1\nLOOKUP_TABLE default\n")
	writeColumn(bw, b.Doses)
	if b.HasErrors() {
		_, _ = bw.WriteString("SCALARS uncertainty double 1\nLOOKUP_TABLE default\n")
		writeColumn(bw, b.Errors)
	}
	return bw.Flush()
}

func writeColumn(bw *bufio.Writer, vals []float64) {
	buf := make([]byte, 0, 32)
	for _, v := range vals {
		buf = dose.AppendFloat(buf[:0], v)
		buf = append(buf, '\n')
		_, _ = bw.Write(buf)
	}
}
