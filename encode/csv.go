package encode

import (
	"encoding/csv"
	"io"

	"github.com/voxelsplace/dose2gmsh/dose"
)

var csvHeader = []string{"xc [cm]", "yc [cm]", "zc [cm]", "Dose [Gy cm2]"}

const csvUncertColumn = "Uncertainty fraction"

// WriteCSV writes one row per voxel with its centre and payload values, in
// dose order.
func WriteCSV(w io.Writer, b *dose.DoseBlock) error {
	if err := dose.CheckForEncoding(b, Csv.String()); err != nil {
		return err
	}
	cw := csv.NewWriter(w)

	header := csvHeader
	if b.HasErrors() {
		header = append(append([]string{}, csvHeader...), csvUncertColumn)
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	xc, yc, zc := b.Centers(dose.X), b.Centers(dose.Y), b.Centers(dose.Z)
	row := make([]string, len(header))
	for idx := range b.NumVoxels() {
		i, j, k := b.VoxelCoords(idx)
		row[0] = formatFloat(xc[i])
		row[1] = formatFloat(yc[j])
		row[2] = formatFloat(zc[k])
		row[3] = formatFloat(b.Doses[idx])
		if b.HasErrors() {
			row[4] = formatFloat(b.Errors[idx])
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatFloat(v float64) string {
	return string(dose.AppendFloat(nil, v))
}
