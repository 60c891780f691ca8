package utils

import (
	"bytes"
	"fmt"
	"math"
	"math/rand"

	"github.com/voxelsplace/dose2gmsh/dose"
)

// syntheticVoxel is the voxel edge length of generated phantoms in cm.
const syntheticVoxel = 0.5

// SyntheticBlock builds an nx*ny*nz phantom centred on the origin with a
// Gaussian dose peak and noisy relative uncertainties that grow where the
// dose falls off. The same seed always gives the same block.
func SyntheticBlock(nx, ny, nz int, seed int64) (*dose.DoseBlock, error) {
	if nx <= 0 || ny <= 0 || nz <= 0 {
		return nil, fmt.Errorf("voxel counts must be positive, got %dx%dx%d", nx, ny, nz)
	}
	r := rand.New(rand.NewSource(seed))
	counts := [3]int{nx, ny, nz}

	var bounds [3][]float64
	for a, n := range counts {
		bs := make([]float64, n+1)
		start := -float64(n) * syntheticVoxel / 2
		for i := range bs {
			bs[i] = start + float64(i)*syntheticVoxel
		}
		bounds[a] = bs
	}

	total := nx * ny * nz
	doses := make([]float64, total)
	errs := make([]float64, total)
	// peak sits slightly off centre so the block is not symmetric
	sigma := 0.25 * float64(max(nx, ny, nz)) * syntheticVoxel
	cx, cy, cz := 0.1*syntheticVoxel, -0.1*syntheticVoxel, 0.0
	p := 0
	for k := range nz {
		z := (bounds[2][k] + bounds[2][k+1]) / 2
		for j := range ny {
			y := (bounds[1][j] + bounds[1][j+1]) / 2
			for i := range nx {
				x := (bounds[0][i] + bounds[0][i+1]) / 2
				d2 := (x-cx)*(x-cx) + (y-cy)*(y-cy) + (z-cz)*(z-cz)
				rel := math.Exp(-d2 / (2 * sigma * sigma))
				noise := 1 + 0.02*r.NormFloat64()
				doses[p] = 1e-13 * rel * math.Max(noise, 0)
				errs[p] = math.Min(1, 0.005/math.Sqrt(rel)*(1+0.1*r.Float64()))
				p++
			}
		}
	}
	return dose.New(bounds, doses, errs)
}

// RunGenerateSynthetic writes a synthetic phantom as a 3ddose file,
// compressed with c.
func RunGenerateSynthetic(outPath string, nx, ny, nz int, seed int64, c dose.Compression) error {
	block, err := SyntheticBlock(nx, ny, nz, seed)
	if err != nil {
		return err
	}
	raw, err := dose.Marshal3DDose(block)
	if err != nil {
		return err
	}
	data, err := dose.Compress(raw, c)
	if err != nil {
		return err
	}
	return writeFileAtomic(outPath, bytes.NewReader(data))
}
