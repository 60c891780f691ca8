package encode

import (
	"math"

	"github.com/voxelsplace/dose2gmsh/dose"
)

// Vertex is one corner of a surface quad.
type Vertex struct {
	Position [3]float32
	Normal   [3]float32
	Color    [4]float32
}

// Mesh is an indexed triangle list.
type Mesh struct {
	Vertices []Vertex
	Indices  []uint32
}

type dirSpec struct {
	normal [3]float32
	u, v   int
}

var directions = []dirSpec{
	{[3]float32{1, 0, 0}, 1, 2},
	{[3]float32{-1, 0, 0}, 1, 2},
	{[3]float32{0, 1, 0}, 0, 2},
	{[3]float32{0, -1, 0}, 0, 2},
	{[3]float32{0, 0, 1}, 0, 1},
	{[3]float32{0, 0, -1}, 0, 1},
}

func addQuad(mesh *Mesh, dir dirSpec, perp int, plane float64, lo, hi [2]float64, color [4]float32) {
	corner := func(cu, cv float64) Vertex {
		var p [3]float32
		p[perp] = float32(plane)
		p[dir.u] = float32(cu)
		p[dir.v] = float32(cv)
		return Vertex{Position: p, Normal: dir.normal, Color: color}
	}
	verts := [4]Vertex{
		corner(lo[0], lo[1]),
		corner(hi[0], lo[1]),
		corner(hi[0], hi[1]),
		corner(lo[0], hi[1]),
	}

	// keep counter-clockwise winding as seen from outside
	swap := (dir.normal[perp] < 0) != (perp == 1)
	if swap {
		verts[1], verts[3] = verts[3], verts[1]
	}

	baseIdx := uint32(len(mesh.Vertices))
	mesh.Vertices = append(mesh.Vertices, verts[:]...)
	mesh.Indices = append(mesh.Indices, baseIdx, baseIdx+1, baseIdx+2, baseIdx, baseIdx+2, baseIdx+3)
}

// GenerateSurface builds the six outer faces of the block, one quad per
// boundary voxel face, coloured by that voxel's dose on ramp.
func GenerateSurface(b *dose.DoseBlock, ramp *ColorRamp) *Mesh {
	mesh := &Mesh{}
	lo, hi := doseRange(b.Doses)

	for _, dir := range directions {
		perp := 3 - dir.u - dir.v
		bp := b.Bounds[perp]
		layer, plane := 0, bp[0]
		if dir.normal[perp] > 0 {
			layer, plane = b.Counts[perp]-1, bp[len(bp)-1]
		}
		bu, bv := b.Bounds[dir.u], b.Bounds[dir.v]
		for iu := range b.Counts[dir.u] {
			for iv := range b.Counts[dir.v] {
				var pos [3]int
				pos[perp] = layer
				pos[dir.u] = iu
				pos[dir.v] = iv
				d := b.Doses[b.VoxelIndex(pos[0], pos[1], pos[2])]
				addQuad(mesh, dir, perp, plane,
					[2]float64{bu[iu], bv[iv]},
					[2]float64{bu[iu+1], bv[iv+1]},
					ramp.At(normalize(d, lo, hi)))
			}
		}
	}
	return mesh
}

// doseRange is the range of the finite values in vals, or 0, 0 when there
// are none.
func doseRange(vals []float64) (lo, hi float64) {
	seen := false
	for _, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		if !seen {
			lo, hi, seen = v, v, true
			continue
		}
		lo = min(lo, v)
		hi = max(hi, v)
	}
	return lo, hi
}

func normalize(v, lo, hi float64) float64 {
	if hi <= lo {
		return 0
	}
	return (v - lo) / (hi - lo)
}
