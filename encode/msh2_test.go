package encode

import (
	"bufio"
	"bytes"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const smallMsh2 = `$MeshFormat
2.2 0 8
$EndMeshFormat
$Nodes
12
1 0 0 0
2 1 0 0
3 2 0 0
4 0 5 0
5 1 5 0
6 2 5 0
7 0 0 10
8 1 0 10
9 2 0 10
10 0 5 10
11 1 5 10
12 2 5 10
$EndNodes
$Elements
2
1 5 2 0 0 1 2 5 4 7 8 11 10
2 5 2 0 0 2 3 6 5 8 9 12 11
$EndElements
$ElementData
1
"Dose [Gy·cm2]"
1
0.0
3
0
1
2
1 1
2 2
$EndElementData
$ElementData
1
"Uncertainty fraction"
1
0.0
3
0
1
2
1 0.1
2 0.2
$EndElementData
`

func TestMsh2Exact(t *testing.T) {
	out, err := Encode(Msh2, smallBlock(t, true))
	require.NoError(t, err)
	assert.Equal(t, smallMsh2, string(out))
}

func TestMsh2WithoutUncertainty(t *testing.T) {
	out, err := Encode(Msh2, smallBlock(t, false))
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(string(out), "$ElementData\n"))
	assert.NotContains(t, string(out), "Uncertainty")
}

// mshSections splits a msh file into section name -> body lines.
func mshSections(t *testing.T, data []byte) map[string][]string {
	t.Helper()
	sections := map[string][]string{}
	var cur string
	sc := bufio.NewScanner(bytes.NewReader(data))
	sc.Buffer(make([]byte, 1<<20), 1<<20)
	for sc.Scan() {
		line := sc.Text()
		switch {
		case strings.HasPrefix(line, "$End"):
			cur = ""
		case strings.HasPrefix(line, "$"):
			cur = line[1:]
			if _, dup := sections[cur]; dup {
				cur += "#2"
			}
			sections[cur] = nil
		default:
			sections[cur] = append(sections[cur], line)
		}
	}
	require.NoError(t, sc.Err())
	return sections
}

func TestMsh2Counts(t *testing.T) {
	for _, dims := range [][3]int{{1, 1, 1}, {4, 3, 2}, {5, 1, 7}} {
		nx, ny, nz := dims[0], dims[1], dims[2]
		b := gridBlock(t, nx, ny, nz)
		out, err := Encode(Msh2, b)
		require.NoError(t, err)
		s := mshSections(t, out)

		nodes := s["Nodes"]
		assert.Equal(t, strconv.Itoa((nx+1)*(ny+1)*(nz+1)), nodes[0])
		assert.Len(t, nodes[1:], (nx+1)*(ny+1)*(nz+1))

		elems := s["Elements"]
		assert.Equal(t, strconv.Itoa(nx*ny*nz), elems[0])
		assert.Len(t, elems[1:], nx*ny*nz)

		// ids are contiguous from 1 in every section
		for i, line := range nodes[1:] {
			assert.True(t, strings.HasPrefix(line, strconv.Itoa(i+1)+" "), line)
		}
		for i, line := range elems[1:] {
			fields := strings.Fields(line)
			require.Len(t, fields, 13)
			assert.Equal(t, strconv.Itoa(i+1), fields[0])
		}
		data := s["ElementData"]
		assert.Len(t, data, 8+nx*ny*nz)
		for i, line := range data[8:] {
			assert.Equal(t, strconv.Itoa(i+1)+" "+strconv.Itoa(i), line)
		}
		assert.Len(t, s["ElementData#2"], 8+nx*ny*nz)
	}
}

func TestMsh2ElementCornersMatchVoxel(t *testing.T) {
	b := gridBlock(t, 3, 2, 2)
	out, err := Encode(Msh2, b)
	require.NoError(t, err)
	s := mshSections(t, out)

	coords := map[string][3]string{}
	for _, line := range s["Nodes"][1:] {
		f := strings.Fields(line)
		coords[f[0]] = [3]string{f[1], f[2], f[3]}
	}
	// element e covers voxel e-1: corner 0 is its lower corner, corner 6 its upper
	for e, line := range s["Elements"][1:] {
		f := strings.Fields(line)
		i, j, k := b.VoxelCoords(e)
		lo := coords[f[5]]
		hi := coords[f[11]]
		assert.Equal(t, [3]string{strconv.Itoa(i), strconv.Itoa(j), strconv.Itoa(k)}, lo)
		assert.Equal(t, [3]string{strconv.Itoa(i + 1), strconv.Itoa(j + 1), strconv.Itoa(k + 1)}, hi)
	}
}
