package spectra

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// rockFile builds a ROCK-like container with n cubes of shape
// (channel=2, height=2, width=3). Cube k holds 1000*k + 100*c + 10*iy + ix.
func rockFile(n int) *memContainer {
	const channels, height, width = 2, 2, 3
	m := newMemContainer().array("context/energies", []float64{7100, 7101}, channels)
	for k := 1; k <= n; k++ {
		var data []float64
		for c := 0; c < channels; c++ {
			for iy := 0; iy < height; iy++ {
				for ix := 0; ix < width; ix++ {
					data = append(data, float64(1000*k+100*c+10*iy+ix))
				}
			}
		}
		m.array(fmt.Sprintf("data/cube_%05d", k), data, channels, height, width)
	}
	return m
}

func TestCubeReaderSheets(t *testing.T) {
	m := rockFile(3)
	sheets, err := NewCubeReader(WithOpener(m.opener())).Sheets("map.h5")
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2", "3"}, sheets)
	assert.Equal(t, 1, m.closes)
}

func TestCubeReaderReadSheet(t *testing.T) {
	m := rockFile(3)
	ds, err := NewCubeReader(WithOpener(m.opener())).ReadSpectra("map.h5", "2")
	require.NoError(t, err)
	require.NoError(t, ds.Validate())

	assert.Equal(t, []float64{7100, 7101}, ds.Axis)
	assert.Equal(t, 6, ds.Rows())
	// pixel (ix=2, iy=1) is row 1*3+2
	assert.Equal(t, []float64{2012, 2112}, ds.Spectrum(5))
	assert.Equal(t, []float64{0, 1, 2, 0, 1, 2}, ds.Coords.X)
	assert.Equal(t, []float64{0, 0, 0, 1, 1, 1}, ds.Coords.Y)
	assert.Equal(t, m.opens, m.closes)
}

func TestCubeReaderDefaultSheet(t *testing.T) {
	m := rockFile(2)
	ds, err := NewCubeReader(WithOpener(m.opener())).ReadSpectra("map.h5", "")
	require.NoError(t, err)
	assert.Equal(t, []float64{1000, 1100}, ds.Spectrum(0))
}

func TestCubeReaderIdempotent(t *testing.T) {
	m := rockFile(1)
	r := NewCubeReader(WithOpener(m.opener()))
	a, err := r.ReadSpectra("map.h5", "1")
	require.NoError(t, err)
	b, err := r.ReadSpectra("map.h5", "1")
	require.NoError(t, err)
	assert.Equal(t, a.Intensities.RawMatrix().Data, b.Intensities.RawMatrix().Data)
	assert.Equal(t, a.Coords, b.Coords)
}

func TestCubeReaderErrors(t *testing.T) {
	m := rockFile(1)
	r := NewCubeReader(WithOpener(m.opener()))

	_, err := r.ReadSpectra("map.h5", "0")
	assert.ErrorIs(t, err, ErrInvalidSheet)

	_, err = r.ReadSpectra("map.h5", "two")
	assert.ErrorIs(t, err, ErrInvalidSheet)

	_, err = r.ReadSpectra("map.h5", "4")
	assert.ErrorIs(t, err, ErrStructure)

	m.array("data/cube_00001", seq(0, 12), 2, 6)
	_, err = r.ReadSpectra("map.h5", "1")
	assert.ErrorIs(t, err, ErrStructure)

	// shape and element count disagree
	m.array("data/cube_00001", seq(0, 5), 2, 2, 2)
	_, err = r.ReadSpectra("map.h5", "1")
	assert.ErrorIs(t, err, ErrStructure)

	assert.Equal(t, m.opens, m.closes)
}

func TestCubeReaderMissingGroup(t *testing.T) {
	m := newMemContainer()
	_, err := NewCubeReader(WithOpener(m.opener())).Sheets("map.h5")
	assert.ErrorIs(t, err, ErrStructure)
}

func TestCubePath(t *testing.T) {
	assert.Equal(t, "/data/cube_00001", CubePath(1))
	assert.Equal(t, "/data/cube_12345", CubePath(12345))
}
