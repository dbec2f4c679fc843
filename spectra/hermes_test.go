package spectra

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// hermesFile builds a HERMES-like container. The stored intensity array
// has shape (channel, width, height) with value 100*c + 10*ix + iy.
func hermesFile(prefix, beamline string) *memContainer {
	const channels, width, height = 2, 3, 2
	data := make([]float64, 0, channels*width*height)
	for c := 0; c < channels; c++ {
		for ix := 0; ix < width; ix++ {
			for iy := 0; iy < height; iy++ {
				data = append(data, float64(100*c+10*ix+iy))
			}
		}
	}
	m := newMemContainer()
	if beamline != "" {
		m.str(prefix+"/collection/beamline", beamline)
	}
	return m.
		array(prefix+"/Counter0/sample_x", []float64{1.0, 1.5, 2.0}, 3).
		array(prefix+"/Counter0/sample_y", []float64{7, 8}, 2).
		array(prefix+"/Counter0/energy", []float64{700, 710}, 2).
		array(prefix+"/Counter0/data", data, channels, width, height)
}

func assertHermesMap(t *testing.T, ds *Dataset) {
	t.Helper()
	require.NoError(t, ds.Validate())
	assert.Equal(t, []float64{700, 710}, ds.Axis)
	assert.Equal(t, 6, ds.Rows())

	// row iy*width+ix holds channel values 100*c + 10*ix + iy
	assert.Equal(t, []float64{0, 100}, ds.Spectrum(0))
	assert.Equal(t, []float64{21, 121}, ds.Spectrum(1*3+2))
	assert.Equal(t, []float64{1.0, 1.5, 2.0, 1.0, 1.5, 2.0}, ds.Coords.X)
	assert.Equal(t, []float64{7, 7, 7, 8, 8, 8}, ds.Coords.Y)
}

func TestHermesReader(t *testing.T) {
	m := hermesFile("entry1", "Hermes")
	ds, err := NewHermesReader(WithOpener(m.opener())).ReadSpectra("scan.hdf5", "")
	require.NoError(t, err)
	assertHermesMap(t, ds)
	assert.Equal(t, m.opens, m.closes)
}

func TestHermesReaderMarker(t *testing.T) {
	cases := map[string]*memContainer{
		"missing":    hermesFile("entry1", ""),
		"wrong":      hermesFile("entry1", "Hermès"),
		"wrong case": hermesFile("entry1", "hermes"),
	}
	for name, m := range cases {
		t.Run(name, func(t *testing.T) {
			ds, err := NewHermesReader(WithOpener(m.opener())).ReadSpectra("scan.hdf5", "")
			assert.ErrorIs(t, err, ErrFormatMismatch)
			assert.Nil(t, ds)
			assert.Equal(t, 1, m.closes)
		})
	}
}

func TestHermesReaderMissingData(t *testing.T) {
	m := hermesFile("entry1", "Hermes")
	delete(m.arrays, CleanPath("entry1/Counter0/energy"))

	_, err := NewHermesReader(WithOpener(m.opener())).ReadSpectra("scan.hdf5", "")
	assert.ErrorIs(t, err, ErrStructure)
	assert.Equal(t, 1, m.closes)
}

func TestHermesReaderShapeMismatch(t *testing.T) {
	m := hermesFile("entry1", "Hermes")
	m.array("entry1/Counter0/sample_x", []float64{1, 2}, 2)

	_, err := NewHermesReader(WithOpener(m.opener())).ReadSpectra("scan.hdf5", "")
	assert.ErrorIs(t, err, ErrStructure)
}

func TestHermesReaderFlatData(t *testing.T) {
	m := hermesFile("entry1", "Hermes")
	m.array("entry1/Counter0/data", seq(0, 12), 12)

	_, err := NewHermesReader(WithOpener(m.opener())).ReadSpectra("scan.hdf5", "")
	assert.ErrorIs(t, err, ErrStructure)
}

func TestHermesReaderDataSizeMismatch(t *testing.T) {
	m := hermesFile("entry1", "Hermes")
	m.array("entry1/Counter0/data", seq(0, 5), 2, 2, 2)

	ds, err := NewHermesReader(WithOpener(m.opener())).ReadSpectra("scan.hdf5", "")
	assert.ErrorIs(t, err, ErrStructure)
	assert.Nil(t, ds)

	m = hermesFile("entry1", "Hermes")
	m.array("entry1/Counter0/energy", []float64{700, 710, 720}, 2)
	_, err = NewHermesReader(WithOpener(m.opener())).ReadSpectra("scan.hdf5", "")
	assert.ErrorIs(t, err, ErrStructure)
}
