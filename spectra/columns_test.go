package spectra

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeText(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "spectrum.txt")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestColumnReaderScenario(t *testing.T) {
	path := writeText(t, "#comment\n400 0.1 0.2\n401 0.15 0.25\n")
	r := NewColumnReader()

	sheets, err := r.Sheets(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"2", "3"}, sheets)

	ds, err := r.ReadSpectra(path, "3")
	require.NoError(t, err)
	assert.Equal(t, []float64{400, 401}, ds.Axis)
	assert.Equal(t, 1, ds.Rows())
	assert.Equal(t, []float64{0.2, 0.25}, ds.Spectrum(0))
	assert.Nil(t, ds.Coords)
	assert.NoError(t, ds.Validate())
}

func TestColumnReaderDefaultSheet(t *testing.T) {
	path := writeText(t, "#comment\n400 0.1 0.2\n401 0.15 0.25\n")
	ds, err := NewColumnReader().ReadSpectra(path, "")
	require.NoError(t, err)
	assert.Equal(t, []float64{0.1, 0.15}, ds.Spectrum(0))
}

func TestColumnReaderCommentMarker(t *testing.T) {
	path := writeText(t, "; exported by ATHENA\n400 0.1 0.2\n401 0.15 0.25\n")

	_, err := NewColumnReader().ReadSpectra(path, "2")
	assert.ErrorIs(t, err, ErrParse)

	r := NewColumnReader(WithCommentMarker(";"))
	sheets, err := r.Sheets(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"2", "3"}, sheets)

	ds, err := r.ReadSpectra(path, "2")
	require.NoError(t, err)
	assert.Equal(t, []float64{0.1, 0.15}, ds.Spectrum(0))
}

func TestColumnReaderSheetCount(t *testing.T) {
	for tokens := 1; tokens <= 14; tokens++ {
		t.Run(strconv.Itoa(tokens), func(t *testing.T) {
			row := strings.TrimSpace(strings.Repeat("1 ", tokens))
			path := writeText(t, "# header\n"+row+"\n")

			sheets, err := NewColumnReader().Sheets(path)
			require.NoError(t, err)

			n := min(tokens, 10)
			require.Len(t, sheets, n-1)
			if n > 1 {
				assert.Equal(t, "2", sheets[0])
				assert.Equal(t, strconv.Itoa(n), sheets[len(sheets)-1])
			}
		})
	}
}

func TestColumnReaderRoundTrip(t *testing.T) {
	axis := []float64{1000.5, 1001.25, 1002, 1003.125}
	spectra := [][]float64{
		{0.001, 0.5, 1e-7, 3.25},
		{-1.5, 2, 2.5, 1e10},
	}

	var b strings.Builder
	b.WriteString("# wavelength s1 s2\n")
	for i, w := range axis {
		b.WriteString(strconv.FormatFloat(w, 'g', -1, 64))
		for _, s := range spectra {
			b.WriteString("\t" + strconv.FormatFloat(s[i], 'g', -1, 64))
		}
		b.WriteString("\n")
	}
	path := writeText(t, b.String())

	r := NewColumnReader()
	for i, want := range spectra {
		ds, err := r.ReadSpectra(path, strconv.Itoa(i+2))
		require.NoError(t, err)
		if diff := cmp.Diff(axis, ds.Axis); diff != "" {
			t.Errorf("axis mismatch (-want +got):\n%s", diff)
		}
		if diff := cmp.Diff(want, ds.Spectrum(0)); diff != "" {
			t.Errorf("sheet %d mismatch (-want +got):\n%s", i+2, diff)
		}
	}
}

func TestColumnReaderIdempotent(t *testing.T) {
	path := writeText(t, "400 0.1 0.2\n401 0.15 0.25\n")
	r := NewColumnReader()
	a, err := r.ReadSpectra(path, "2")
	require.NoError(t, err)
	b, err := r.ReadSpectra(path, "2")
	require.NoError(t, err)
	assert.Equal(t, a.Axis, b.Axis)
	assert.Equal(t, a.Intensities.RawMatrix().Data, b.Intensities.RawMatrix().Data)
}

func TestColumnReaderErrors(t *testing.T) {
	r := NewColumnReader()

	bad := writeText(t, "400 0.1\n401 oops\n")
	_, err := r.ReadSpectra(bad, "2")
	assert.ErrorIs(t, err, ErrParse)
	assert.Contains(t, err.Error(), "line 2")

	short := writeText(t, "400 0.1 0.2\n")
	_, err = r.ReadSpectra(short, "4")
	assert.ErrorIs(t, err, ErrParse)

	_, err = r.ReadSpectra(short, "x")
	assert.ErrorIs(t, err, ErrInvalidSheet)

	_, err = r.ReadSpectra(short, "1")
	assert.ErrorIs(t, err, ErrInvalidSheet)

	onlyAxis := writeText(t, "# nothing but wavelengths\n400\n401\n")
	_, err = r.ReadSpectra(onlyAxis, "")
	assert.ErrorIs(t, err, ErrParse)

	empty := writeText(t, "# empty\n")
	sheets, err := r.Sheets(empty)
	require.NoError(t, err)
	assert.Empty(t, sheets)

	// A comment line is never split into columns.
	commented := writeText(t, "# a b c\n")
	sheets, err = r.Sheets(commented)
	require.NoError(t, err)
	assert.Empty(t, sheets)

	_, err = r.Sheets(filepath.Join(t.TempDir(), "missing.txt"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
