package dose

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const small3DDose = `2 1 1
0 1 2
0 5
0 10
1.0 2.0
0.1 0.2
`

func TestParseSmall(t *testing.T) {
	b, err := Parse([]byte(small3DDose))
	require.NoError(t, err)

	assert.Equal(t, [3]int{2, 1, 1}, b.Counts)
	assert.Equal(t, []float64{0, 1, 2}, b.Bounds[X])
	assert.Equal(t, []float64{0, 5}, b.Bounds[Y])
	assert.Equal(t, []float64{0, 10}, b.Bounds[Z])
	assert.Equal(t, []float64{1, 2}, b.Doses)
	assert.Equal(t, []float64{0.1, 0.2}, b.Errors)
	assert.Equal(t, [3]float64{0, 0, 0}, b.Origin())
	assert.Equal(t, 2, b.NumVoxels())
	assert.Equal(t, 8, b.NumNodes())
}

func TestParseTestdataFile(t *testing.T) {
	b, err := LoadDoseBlock("testdata/small.3ddose")
	require.NoError(t, err)
	want, err := Parse([]byte(small3DDose))
	require.NoError(t, err)
	if diff := cmp.Diff(want, b); diff != "" {
		t.Errorf("testdata block mismatch (-want +got):\n%s", diff)
	}
}

func TestParseWithoutUncertainty(t *testing.T) {
	b, err := Parse([]byte("2 1 1\n0 1 2\n0 5\n0 10\n1.0 2.0\n"))
	require.NoError(t, err)
	assert.False(t, b.HasErrors())
	assert.Nil(t, b.Errors)
}

func TestParseWrappedLines(t *testing.T) {
	// DOSXYZnrc wraps long arrays; line breaks carry no meaning.
	b, err := Parse([]byte("  2  1\n1\n0\n1 2 0\n5 0 10 1.0\n2.0 0.1\n\n0.2\n"))
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2}, b.Doses)
	assert.Equal(t, []float64{0.1, 0.2}, b.Errors)
}

func TestParseScientificNotation(t *testing.T) {
	b, err := Parse([]byte("1 1 1\n-1.5E+00 1.5e0\n-2 2\n0 1\n3.2565E-14\n1.0000E+00\n"))
	require.NoError(t, err)
	assert.Equal(t, 3.2565e-14, b.Doses[0])
	assert.Equal(t, -1.5, b.Bounds[X][0])
}

func TestParseFormatErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"short header", "2 1"},
		{"zero count", "0 1 1\n0\n0 1\n0 1\n"},
		{"negative count", "2 -1 1\n0 1 2\n0 5\n0 10\n1 2\n"},
		{"non integer count", "2.5 1 1\n0 1 2\n0 5\n0 10\n1 2\n"},
		{"short x boundaries", "3 1 1\n0 1 2\n0 5\n0 10\n1 2 3\n"},
		{"missing z boundaries", "2 1 1\n0 1 2\n0 5\n"},
		{"non monotonic", "2 1 1\n0 2 1\n0 5\n0 10\n1 2\n"},
		{"repeated boundary", "2 1 1\n0 1 1\n0 5\n0 10\n1 2\n"},
		{"short doses", "2 1 1\n0 1 2\n0 5\n0 10\n1\n"},
		{"short uncertainties", "2 1 1\n0 1 2\n0 5\n0 10\n1 2\n0.1\n"},
		{"trailing data", "2 1 1\n0 1 2\n0 5\n0 10\n1 2\n0.1 0.2\n7\n"},
		{"max int count", "9223372036854775807 1 1\n0 1\n0 1\n0 1\n1\n"},
		{"overflowing product", "3000000000 3000000000 3000000000\n0 1\n"},
		{"counts beyond input", "100 100 100\n0 1 2\n0 1\n0 1\n1 2\n"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.input))
			require.Error(t, err)
			var fe *FormatError
			assert.True(t, errors.As(err, &fe), "want *FormatError, got %T: %v", err, err)
		})
	}
}

func TestParseNumericError(t *testing.T) {
	_, err := Parse([]byte("2 1 1\n0 1 2\n0 5\n0 10\n1.0 abc\n"))
	var ne *NumericParseError
	require.True(t, errors.As(err, &ne), "want *NumericParseError, got %T: %v", err, err)
	assert.Equal(t, 5, ne.Line)
	assert.Equal(t, "abc", ne.Token)
	assert.Equal(t, "dose", ne.Field)
	assert.Contains(t, err.Error(), "line 5")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := LoadDoseBlock("testdata/does-not-exist.3ddose")
	var ioe *IoError
	require.True(t, errors.As(err, &ioe))
	assert.Equal(t, "read", ioe.Op)
}

func TestWriteParseRoundTrip(t *testing.T) {
	bounds := [3][]float64{
		{-1.25, -0.5, 0.1, 0.7000000000000001},
		{0, 0.3333333333333333},
		{-10, -5, 0},
	}
	doses := []float64{1e-14, 2.5e-13, 0, 3.1415926535, 1.7976931348623157e308, 5e-324}
	errs := []float64{0.5, 0.25, 1, 0.0001, 0.01, 0.02}
	b, err := New(bounds, doses, errs)
	require.NoError(t, err)

	out, err := Marshal3DDose(b)
	require.NoError(t, err)
	got, err := Parse(out)
	require.NoError(t, err)

	if diff := cmp.Diff(b, got, cmpopts.EquateApprox(0, 1e-12)); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, b.Fingerprint(), got.Fingerprint(), "shortest float formatting must be exact")
}

func TestWriteOmitsMissingUncertainty(t *testing.T) {
	b, err := New([3][]float64{{0, 1}, {0, 1}, {0, 1}}, []float64{3}, nil)
	require.NoError(t, err)
	out, err := Marshal3DDose(b)
	require.NoError(t, err)
	assert.Equal(t, "1 1 1\n0 1\n0 1\n0 1\n3\n", string(out))
}
