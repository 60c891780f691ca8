package encode

import (
	"bytes"
	"math"
	"testing"

	"github.com/qmuntal/gltf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voxelsplace/dose2gmsh/dose"
)

func surfaceQuads(nx, ny, nz int) int {
	return 2 * (ny*nz + nx*nz + nx*ny)
}

func TestGenerateSurfaceCounts(t *testing.T) {
	b := gridBlock(t, 4, 3, 2)
	mesh := GenerateSurface(b, DefaultRamp)
	q := surfaceQuads(4, 3, 2)
	assert.Len(t, mesh.Vertices, 4*q)
	assert.Len(t, mesh.Indices, 6*q)
}

func TestGenerateSurfaceOutwardWinding(t *testing.T) {
	b := gridBlock(t, 3, 2, 2)
	mesh := GenerateSurface(b, DefaultRamp)
	for i := 0; i < len(mesh.Indices); i += 3 {
		p0 := mesh.Vertices[mesh.Indices[i]].Position
		p1 := mesh.Vertices[mesh.Indices[i+1]].Position
		p2 := mesh.Vertices[mesh.Indices[i+2]].Position
		n := mesh.Vertices[mesh.Indices[i]].Normal
		e1 := [3]float32{p1[0] - p0[0], p1[1] - p0[1], p1[2] - p0[2]}
		e2 := [3]float32{p2[0] - p0[0], p2[1] - p0[1], p2[2] - p0[2]}
		cross := [3]float32{
			e1[1]*e2[2] - e1[2]*e2[1],
			e1[2]*e2[0] - e1[0]*e2[2],
			e1[0]*e2[1] - e1[1]*e2[0],
		}
		dot := cross[0]*n[0] + cross[1]*n[1] + cross[2]*n[2]
		require.Greater(t, dot, float32(0), "triangle %d faces inward", i/3)
	}
}

func TestGenerateSurfaceColorsFollowDose(t *testing.T) {
	b := smallBlock(t, false)
	mesh := GenerateSurface(b, DefaultRamp)
	// the -x face touches only voxel 0 (lowest dose), the +x face only voxel 1
	var sawLow, sawHigh bool
	for _, v := range mesh.Vertices {
		switch {
		case v.Normal == [3]float32{-1, 0, 0}:
			assert.Equal(t, DefaultRamp.At(0), v.Color)
			sawLow = true
		case v.Normal == [3]float32{1, 0, 0}:
			assert.Equal(t, DefaultRamp.At(1), v.Color)
			sawHigh = true
		}
	}
	assert.True(t, sawLow)
	assert.True(t, sawHigh)
}

func TestColorRamp(t *testing.T) {
	r, err := NewRamp("#000000", "#ffffff80")
	require.NoError(t, err)
	assert.Equal(t, [4]float32{0, 0, 0, 1}, r.At(-3))
	assert.Equal(t, [4]float32{1, 1, 1, float32(0x80) / 255}, r.At(7))
	mid := r.At(0.5)
	assert.InDelta(t, 0.5, mid[0], 1e-6)

	assert.Equal(t, r.At(0), r.At(math.NaN()))
	assert.Equal(t, r.At(1), r.At(math.Inf(1)))

	_, err = NewRamp("#000000")
	assert.Error(t, err)
	_, err = ParseHexColor("00ff00")
	assert.Error(t, err)
	_, err = ParseHexColor("#00gg00")
	assert.Error(t, err)
}

func TestGLBDecodes(t *testing.T) {
	b := gridBlock(t, 3, 2, 2)
	out, err := Encode(Glb, b)
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(out, []byte("glTF")))

	var doc gltf.Document
	require.NoError(t, gltf.NewDecoder(bytes.NewReader(out)).Decode(&doc))
	require.Len(t, doc.Meshes, 1)
	prim := doc.Meshes[0].Primitives[0]
	pos := doc.Accessors[prim.Attributes[gltf.POSITION]]
	assert.Equal(t, 4*surfaceQuads(3, 2, 2), int(pos.Count))
	assert.Contains(t, prim.Attributes, gltf.COLOR_0)
	assert.Contains(t, prim.Attributes, gltf.NORMAL)
}

func TestGLBNonFiniteDoses(t *testing.T) {
	b, err := dose.New([3][]float64{{0, 1, 2, 3}, {0, 1}, {0, 1}},
		[]float64{math.NaN(), math.Inf(1), 4}, nil)
	require.NoError(t, err)

	mesh := GenerateSurface(b, DefaultRamp)
	for _, v := range mesh.Vertices {
		for _, c := range v.Color {
			assert.False(t, math.IsNaN(float64(c)))
		}
	}
	data, err := Encode(Glb, b)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("glTF")))

	lo, hi := doseRange([]float64{math.NaN(), math.Inf(-1)})
	assert.Equal(t, 0.0, lo)
	assert.Equal(t, 0.0, hi)
}
