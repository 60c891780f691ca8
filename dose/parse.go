package dose

import (
	"strconv"
)

// scanner walks whitespace-delimited tokens and keeps track of the line each
// token starts on.
type scanner struct {
	data []byte
	pos  int
	line int
}

func newScanner(data []byte) *scanner { return &scanner{data: data, line: 1} }

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\v' || c == '\f'
}

// next returns the next token, or ok=false at end of input.
func (s *scanner) next() (tok string, line int, ok bool) {
	for s.pos < len(s.data) && isSpace(s.data[s.pos]) {
		if s.data[s.pos] == '\n' {
			s.line++
		}
		s.pos++
	}
	if s.pos >= len(s.data) {
		return "", s.line, false
	}
	start := s.pos
	for s.pos < len(s.data) && !isSpace(s.data[s.pos]) {
		s.pos++
	}
	return string(s.data[start:s.pos]), s.line, true
}

func (s *scanner) floats(field string, n int) ([]float64, error) {
	out := make([]float64, n)
	for i := range out {
		tok, line, ok := s.next()
		if !ok {
			return nil, formatErrorf("expected %d %s values, found %d before end of input", n, field, i)
		}
		v, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			return nil, &NumericParseError{Field: field, Line: line, Token: tok, Err: err}
		}
		out[i] = v
	}
	return out, nil
}

// payloadSize returns nx*ny*nz after checking that the boundary and dose
// tokens the header promises could fit in the rest bytes still unread. Every
// token but the last needs a separator, so k tokens take at least 2k-1 bytes.
func payloadSize(counts [3]int, rest int) (int, error) {
	n := 1
	for a := range 3 {
		if counts[a] > rest || n > rest/counts[a] {
			return 0, formatErrorf("header: %d x %d x %d voxels cannot fit in %d bytes of payload", counts[X], counts[Y], counts[Z], rest)
		}
		n *= counts[a]
	}
	tokens := counts[X] + counts[Y] + counts[Z] + 3 + n
	if 2*tokens-1 > rest {
		return 0, formatErrorf("header: %d x %d x %d voxels need %d values, input too short", counts[X], counts[Y], counts[Z], tokens)
	}
	return n, nil
}

// Parse reads a complete 3ddose document: three voxel counts, the x, y and z
// boundary arrays, nx*ny*nz doses and an optional uncertainty array of the
// same length. Line breaks are not significant.
func Parse(data []byte) (*DoseBlock, error) {
	s := newScanner(data)

	var counts [3]int
	for a := range 3 {
		tok, line, ok := s.next()
		if !ok {
			return nil, formatErrorf("header: expected 3 voxel counts, found %d", a)
		}
		n, err := strconv.Atoi(tok)
		if err != nil {
			return nil, formatErrorf("header line %d: %s voxel count %q is not an integer", line, Axis(a), tok)
		}
		if n <= 0 {
			return nil, formatErrorf("header line %d: %s voxel count must be positive, got %d", line, Axis(a), n)
		}
		counts[a] = n
	}
	n, err := payloadSize(counts, len(data)-s.pos)
	if err != nil {
		return nil, err
	}

	var bounds [3][]float64
	for a := range 3 {
		bs, err := s.floats(Axis(a).String()+" boundary", counts[a]+1)
		if err != nil {
			return nil, err
		}
		bounds[a] = bs
	}

	doses, err := s.floats("dose", n)
	if err != nil {
		return nil, err
	}

	// The uncertainty payload is optional but all-or-nothing.
	var errs []float64
	mark, markLine := s.pos, s.line
	if _, _, ok := s.next(); ok {
		s.pos, s.line = mark, markLine
		if errs, err = s.floats("uncertainty", n); err != nil {
			return nil, err
		}
		if tok, line, ok := s.next(); ok {
			return nil, formatErrorf("line %d: unexpected trailing data %q", line, tok)
		}
	}

	b := &DoseBlock{Counts: counts, Bounds: bounds, Doses: doses, Errors: errs}
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return b, nil
}
