package dose

import (
	"math"

	"gopkg.in/yaml.v3"
)

// Summary is a short description of a DoseBlock for humans.
type Summary struct {
	Voxels      [3]int     `yaml:"voxels,flow"`
	Origin      [3]float64 `yaml:"origin,flow"`
	Extent      [3]float64 `yaml:"extent,flow"`
	Uniform     [3]bool    `yaml:"uniform,flow"`
	Dose        DoseStats  `yaml:"dose"`
	Uncertainty *DoseStats `yaml:"uncertainty,omitempty"`
	Fingerprint string     `yaml:"fingerprint"`
}

// DoseStats summarises one payload.
type DoseStats struct {
	Min     float64 `yaml:"min"`
	Max     float64 `yaml:"max"`
	Mean    float64 `yaml:"mean"`
	MaxAt   [3]int  `yaml:"max_at,flow"`
	NonZero int     `yaml:"nonzero"`
}

func (b *DoseBlock) stats(vals []float64) DoseStats {
	s := DoseStats{Min: math.Inf(1), Max: math.Inf(-1)}
	maxIdx := 0
	var sum float64
	for i, v := range vals {
		if v < s.Min {
			s.Min = v
		}
		if v > s.Max {
			s.Max = v
			maxIdx = i
		}
		if v != 0 {
			s.NonZero++
		}
		sum += v
	}
	s.Mean = sum / float64(len(vals))
	i, j, k := b.VoxelCoords(maxIdx)
	s.MaxAt = [3]int{i, j, k}
	return s
}

// Summary computes a Summary of b.
func (b *DoseBlock) Summary() Summary {
	s := Summary{
		Voxels:      b.Counts,
		Origin:      b.Origin(),
		Extent:      b.Extent(),
		Dose:        b.stats(b.Doses),
		Fingerprint: b.FingerprintHex(),
	}
	for a := range 3 {
		_, s.Uniform[a] = b.Spacing(Axis(a))
	}
	if b.HasErrors() {
		u := b.stats(b.Errors)
		s.Uncertainty = &u
	}
	return s
}

// YAML renders s as a YAML document.
func (s Summary) YAML() ([]byte, error) {
	return yaml.Marshal(s)
}
