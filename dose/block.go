package dose

import "math"

// Axis selects one of the three grid directions.
type Axis int

const (
	X Axis = iota
	Y
	Z
)

func (a Axis) String() string {
	switch a {
	case X:
		return "x"
	case Y:
		return "y"
	case Z:
		return "z"
	}
	return "?"
}

// uniformTolerance is the relative deviation from the first step that still
// counts as uniform spacing.
const uniformTolerance = 1e-9

// DoseBlock holds dose and uncertainty data for a rectilinear hexahedral grid.
//
// Coordinates are centimetres following EGSnrc convention, doses are
// Gy·cm² and uncertainties are fractions of their dose value. Voxel data is
// stored x fastest, then y, then z.
type DoseBlock struct {
	// Counts is the number of voxels along x, y and z.
	Counts [3]int
	// Bounds holds the voxel face positions for each axis, len Counts[a]+1.
	Bounds [3][]float64
	// Doses is one value per voxel.
	Doses []float64
	// Errors is nil when the source carried no uncertainty payload.
	Errors []float64
}

// New builds a DoseBlock from boundary sequences and payloads after checking
// every structural invariant. errs may be nil.
func New(bounds [3][]float64, doses, errs []float64) (*DoseBlock, error) {
	b := &DoseBlock{Bounds: bounds, Doses: doses, Errors: errs}
	for a := range 3 {
		if len(bounds[a]) < 2 {
			return nil, formatErrorf("%s boundaries: need at least 2 values, got %d", Axis(a), len(bounds[a]))
		}
		b.Counts[a] = len(bounds[a]) - 1
	}
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return b, nil
}

// Validate reports the first broken invariant as a *FormatError.
func (b *DoseBlock) Validate() error {
	for a := range 3 {
		if b.Counts[a] <= 0 {
			return formatErrorf("%s voxel count must be positive, got %d", Axis(a), b.Counts[a])
		}
		bs := b.Bounds[a]
		if len(bs) != b.Counts[a]+1 {
			return formatErrorf("%s boundaries: expected %d values, got %d", Axis(a), b.Counts[a]+1, len(bs))
		}
		for i := 1; i < len(bs); i++ {
			if !(bs[i] > bs[i-1]) {
				return formatErrorf("%s boundaries not strictly increasing at index %d (%g after %g)", Axis(a), i, bs[i], bs[i-1])
			}
		}
	}
	n := b.NumVoxels()
	if len(b.Doses) != n {
		return formatErrorf("expected %d dose values, got %d", n, len(b.Doses))
	}
	if b.Errors != nil && len(b.Errors) != n {
		return formatErrorf("expected %d uncertainty values, got %d", n, len(b.Errors))
	}
	return nil
}

// NX is the number of voxels along x.
func (b *DoseBlock) NX() int { return b.Counts[X] }

// NY is the number of voxels along y.
func (b *DoseBlock) NY() int { return b.Counts[Y] }

// NZ is the number of voxels along z.
func (b *DoseBlock) NZ() int { return b.Counts[Z] }

// NumVoxels is nx*ny*nz.
func (b *DoseBlock) NumVoxels() int { return b.Counts[X] * b.Counts[Y] * b.Counts[Z] }

// NumNodes is (nx+1)*(ny+1)*(nz+1).
func (b *DoseBlock) NumNodes() int {
	return (b.Counts[X] + 1) * (b.Counts[Y] + 1) * (b.Counts[Z] + 1)
}

// HasErrors reports whether an uncertainty payload is present.
func (b *DoseBlock) HasErrors() bool { return b.Errors != nil }

// Origin is the lower corner of the grid.
func (b *DoseBlock) Origin() [3]float64 {
	return [3]float64{b.Bounds[X][0], b.Bounds[Y][0], b.Bounds[Z][0]}
}

// Extent is the upper corner of the grid.
func (b *DoseBlock) Extent() [3]float64 {
	var e [3]float64
	for a := range 3 {
		e[a] = b.Bounds[a][len(b.Bounds[a])-1]
	}
	return e
}

// Centers returns the voxel midpoints along axis a.
func (b *DoseBlock) Centers(a Axis) []float64 {
	bs := b.Bounds[a]
	cs := make([]float64, len(bs)-1)
	for i := range cs {
		cs[i] = (bs[i] + bs[i+1]) / 2
	}
	return cs
}

// Spacing returns the step along axis a and whether every step matches it.
func (b *DoseBlock) Spacing(a Axis) (float64, bool) {
	bs := b.Bounds[a]
	first := bs[1] - bs[0]
	for i := 2; i < len(bs); i++ {
		if math.Abs((bs[i]-bs[i-1])-first) > uniformTolerance*math.Abs(first) {
			return first, false
		}
	}
	return (bs[len(bs)-1] - bs[0]) / float64(len(bs)-1), true
}
