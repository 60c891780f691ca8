package encode

import (
	"fmt"
	"strconv"
)

// DefaultRamp runs from cold blue through green and yellow to dark red.
var DefaultRamp = MustRamp("#00007f", "#0000ff", "#007fff", "#00ffff", "#7fff7f", "#ffff00", "#ff7f00", "#ff0000", "#7f0000")

// ColorRamp interpolates linearly between evenly spaced stops.
type ColorRamp struct {
	stops [][4]float32
}

// NewRamp parses hex stops into a ramp. At least two stops are required.
func NewRamp(hex ...string) (*ColorRamp, error) {
	if len(hex) < 2 {
		return nil, fmt.Errorf("color ramp needs at least 2 stops, got %d", len(hex))
	}
	r := &ColorRamp{stops: make([][4]float32, len(hex))}
	for i, h := range hex {
		c, err := ParseHexColor(h)
		if err != nil {
			return nil, err
		}
		r.stops[i] = c
	}
	return r, nil
}

// MustRamp is like NewRamp but panics on an invalid colour.
func MustRamp(hex ...string) *ColorRamp {
	r, err := NewRamp(hex...)
	if err != nil {
		panic(err)
	}
	return r
}

// At returns the colour for t in [0,1]; t is clamped and NaN maps to the
// first stop.
func (r *ColorRamp) At(t float64) [4]float32 {
	if !(t > 0) {
		return r.stops[0]
	}
	last := len(r.stops) - 1
	if t >= 1 {
		return r.stops[last]
	}
	pos := t * float64(last)
	i := int(pos)
	f := float32(pos - float64(i))
	a, b := r.stops[i], r.stops[i+1]
	return [4]float32{
		a[0] + (b[0]-a[0])*f,
		a[1] + (b[1]-a[1])*f,
		a[2] + (b[2]-a[2])*f,
		a[3] + (b[3]-a[3])*f,
	}
}

// ParseHexColor parses #rrggbb or #rrggbbaa into RGBA in [0,1].
func ParseHexColor(hex string) ([4]float32, error) {
	if len(hex) == 0 || hex[0] != '#' {
		return [4]float32{}, fmt.Errorf("invalid hex color: %s", hex)
	}
	h := hex[1:]
	if len(h) != 6 && len(h) != 8 {
		return [4]float32{}, fmt.Errorf("invalid hex color length: %s", hex)
	}
	var c [4]float32
	c[3] = 1
	for i := 0; i < len(h)/2; i++ {
		v, err := strconv.ParseUint(h[2*i:2*i+2], 16, 8)
		if err != nil {
			return [4]float32{}, fmt.Errorf("invalid hex color %s: %w", hex, err)
		}
		c[i] = float32(v) / 255
	}
	return c, nil
}
