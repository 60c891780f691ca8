package encode

import (
	"bufio"
	"io"
	"strconv"

	"github.com/voxelsplace/dose2gmsh/dose"
)

const (
	mshDoseField   = `"Dose [Gy·cm2]"`
	mshUncertField = `"Uncertainty fraction"`
	// gmsh element type for an 8-node hexahedron
	mshHexahedron = 5
)

// WriteMsh2 writes b as a Gmsh ASCII mesh, format version 2.2.
//
// Nodes are the grid corners numbered from 1 with x fastest, elements are
// one hexahedron per voxel numbered from 1 in dose order, and each payload
// becomes an $ElementData block keyed by element number.
func WriteMsh2(w io.Writer, b *dose.DoseBlock) error {
	if err := dose.CheckForEncoding(b, Msh2.String()); err != nil {
		return err
	}
	bw := bufio.NewWriter(w)
	buf := make([]byte, 0, 128)

	_, _ = bw.WriteString("$MeshFormat\n2.2 0 8\n$EndMeshFormat\n")

	_, _ = bw.WriteString("$Nodes\n" + strconv.Itoa(b.NumNodes()) + "\n")
	xs, ys, zs := b.Bounds[dose.X], b.Bounds[dose.Y], b.Bounds[dose.Z]
	for k, z := range zs {
		for j, y := range ys {
			for i, x := range xs {
				buf = strconv.AppendInt(buf[:0], int64(b.NodeIndex(i, j, k)+1), 10)
				buf = append(buf, ' ')
				buf = dose.AppendFloat(buf, x)
				buf = append(buf, ' ')
				buf = dose.AppendFloat(buf, y)
				buf = append(buf, ' ')
				buf = dose.AppendFloat(buf, z)
				buf = append(buf, '\n')
				_, _ = bw.Write(buf)
			}
		}
	}
	_, _ = bw.WriteString("$EndNodes\n")

	// id type ntags physical elementary n0..n7
	_, _ = bw.WriteString("$Elements\n" + strconv.Itoa(b.NumVoxels()) + "\n")
	id := 1
	for k := range b.NZ() {
		for j := range b.NY() {
			for i := range b.NX() {
				buf = strconv.AppendInt(buf[:0], int64(id), 10)
				buf = append(buf, ' ')
				buf = strconv.AppendInt(buf, mshHexahedron, 10)
				buf = append(buf, " 2 0 0"...)
				for _, n := range b.HexCorners(i, j, k) {
					buf = append(buf, ' ')
					buf = strconv.AppendInt(buf, int64(n+1), 10)
				}
				buf = append(buf, '\n')
				_, _ = bw.Write(buf)
				id++
			}
		}
	}
	_, _ = bw.WriteString("$EndElements\n")

	writeElementData(bw, mshDoseField, b.Doses)
	if b.HasErrors() {
		writeElementData(bw, mshUncertField, b.Errors)
	}
	return bw.Flush()
}

// writeElementData emits one string tag (the name), one real tag (time 0)
// and three int tags (step 0, one component, value count).
func writeElementData(bw *bufio.Writer, name string, vals []float64) {
	_, _ = bw.WriteString("$ElementData\n1\n" + name + "\n1\n0.0\n3\n0\n1\n" + strconv.Itoa(len(vals)) + "\n")
	buf := make([]byte, 0, 48)
	for i, v := range vals {
		buf = strconv.AppendInt(buf[:0], int64(i+1), 10)
		buf = append(buf, ' ')
		buf = dose.AppendFloat(buf, v)
		buf = append(buf, '\n')
		_, _ = bw.Write(buf)
	}
	_, _ = bw.WriteString("$EndElementData\n")
}
