package spectra

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robert-malhotra/go-spectra/config"
	"github.com/robert-malhotra/go-spectra/hdf5"
)

// createH5 writes a small ROCK-shaped file. The cubes are stored flat
// since only their count matters to Sheets.
func createH5(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "map.h5")

	f, err := hdf5.Create(path)
	require.NoError(t, err)

	ctx, err := f.Root().CreateGroup("context")
	require.NoError(t, err)
	_, err = ctx.CreateDataset("energies", []float64{7100, 7100.5, 7101})
	require.NoError(t, err)
	_, err = ctx.CreateDataset("counts", []int64{3, 1, 4})
	require.NoError(t, err)

	data, err := f.Root().CreateGroup("data")
	require.NoError(t, err)
	for _, name := range []string{"cube_00001", "cube_00002"} {
		_, err = data.CreateDataset(name, []float64{1, 2, 3, 4})
		require.NoError(t, err)
	}

	require.NoError(t, f.Close())
	return path
}

func TestOpenHDF5(t *testing.T) {
	path := createH5(t)
	c, err := OpenHDF5(path)
	require.NoError(t, err)
	defer c.Close()

	assert.True(t, c.Has("context"))
	assert.True(t, c.Has("/context/energies"))
	assert.True(t, c.Has("context/energies/"))
	assert.False(t, c.Has("context/missing"))

	a, err := c.ReadArray("context/energies")
	require.NoError(t, err)
	assert.Equal(t, []float64{7100, 7100.5, 7101}, a.Data)
	assert.Equal(t, []int{3}, a.Shape)

	counts, err := c.ReadArray("context/counts")
	require.NoError(t, err)
	assert.Equal(t, []float64{3, 1, 4}, counts.Data)

	members, err := c.Members("data")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"cube_00001", "cube_00002"}, members)

	_, err = c.ReadArray("context/missing")
	assert.ErrorIs(t, err, ErrStructure)
	_, err = c.Members("context/energies")
	assert.ErrorIs(t, err, ErrStructure)
}

func TestOpenHDF5NotHDF5(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scan.hdf5")
	require.NoError(t, os.WriteFile(path, []byte("400 0.1 0.2\n"), 0o644))

	_, err := OpenHDF5(path)
	assert.ErrorIs(t, err, ErrFormatMismatch)

	_, err = OpenHDF5(filepath.Join(t.TempDir(), "missing.hdf5"))
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.NotErrorIs(t, err, ErrFormatMismatch)
}

func TestCubeReaderRealFile(t *testing.T) {
	path := createH5(t)
	r := NewCubeReader()

	sheets, err := r.Sheets(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2"}, sheets)

	// flat cubes are rejected
	_, err = r.ReadSpectra(path, "1")
	assert.ErrorIs(t, err, ErrStructure)
}

func TestHermesReaderRealFile(t *testing.T) {
	// A valid HDF5 file without the HERMES marker.
	_, err := NewHermesReader().ReadSpectra(createH5(t), "")
	assert.ErrorIs(t, err, ErrFormatMismatch)
}

// createHermesH5 writes the map of hermesFile to a real HDF5 file. marker
// writes entry1/collection/beamline; dataOpts apply to entry1/Counter0/data.
func createHermesH5(t *testing.T, marker func(g *hdf5.Group) error, dataOpts ...hdf5.DatasetOption) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scan.hdf5")

	f, err := hdf5.Create(path)
	require.NoError(t, err)

	entry, err := f.Root().CreateGroup("entry1")
	require.NoError(t, err)
	collection, err := entry.CreateGroup("collection")
	require.NoError(t, err)
	require.NoError(t, marker(collection))

	counter, err := entry.CreateGroup("Counter0")
	require.NoError(t, err)
	_, err = counter.CreateDataset("sample_x", []float64{1.0, 1.5, 2.0})
	require.NoError(t, err)
	_, err = counter.CreateDataset("sample_y", []float64{7, 8})
	require.NoError(t, err)
	_, err = counter.CreateDataset("energy", []float64{700, 710}, hdf5.WithAttribute("units", "eV"))
	require.NoError(t, err)

	// (channel, width, height), value 100*c + 10*ix + iy
	data := make([][][]float64, 2)
	for c := range data {
		data[c] = make([][]float64, 3)
		for ix := range data[c] {
			data[c][ix] = []float64{float64(100*c + 10*ix), float64(100*c + 10*ix + 1)}
		}
	}
	_, err = counter.CreateDataset("data", data, dataOpts...)
	require.NoError(t, err)

	require.NoError(t, f.Close())
	return path
}

func fixedLengthMarker(value string) func(g *hdf5.Group) error {
	return func(g *hdf5.Group) error {
		_, err := g.CreateDataset("beamline", value, hdf5.WithStringSize(16))
		return err
	}
}

func TestHermesReaderRealFileMarkers(t *testing.T) {
	cases := map[string]func(g *hdf5.Group) error{
		"fixed-length string": fixedLengthMarker("Hermes"),
		"byte array": func(g *hdf5.Group) error {
			_, err := g.CreateDataset("beamline", []uint8("Hermes\x00\x00"))
			return err
		},
		"variable-length string": func(g *hdf5.Group) error {
			_, err := g.CreateDataset("beamline", []string{"Hermes"})
			return err
		},
	}
	for name, marker := range cases {
		t.Run(name, func(t *testing.T) {
			ds, err := NewHermesReader().ReadSpectra(createHermesH5(t, marker), "")
			require.NoError(t, err)
			assertHermesMap(t, ds)
		})
	}
}

func TestHermesReaderRealFileWrongMarker(t *testing.T) {
	cases := map[string]func(g *hdf5.Group) error{
		"other beamline": fixedLengthMarker("Rock"),
		"numeric": func(g *hdf5.Group) error {
			_, err := g.CreateDataset("beamline", []float64{1})
			return err
		},
		"wide integers": func(g *hdf5.Group) error {
			_, err := g.CreateDataset("beamline", []int32{72, 101})
			return err
		},
	}
	for name, marker := range cases {
		t.Run(name, func(t *testing.T) {
			path := createHermesH5(t, marker)

			var ds *Dataset
			var err error
			require.NotPanics(t, func() { ds, err = NewHermesReader().ReadSpectra(path, "") })
			assert.ErrorIs(t, err, ErrFormatMismatch)
			assert.Nil(t, ds)

			require.NotPanics(t, func() { _, _, err = DefaultRegistry.Read(path, "", WithCatalog(twoLayoutCatalog(t))) })
			assert.ErrorIs(t, err, ErrFormatMismatch)
		})
	}
}

func TestOpenHDF5ClassChecks(t *testing.T) {
	c, err := OpenHDF5(createHermesH5(t, fixedLengthMarker("Hermes")))
	require.NoError(t, err)
	defer c.Close()

	s, err := c.ReadString("entry1/collection/beamline")
	require.NoError(t, err)
	assert.Equal(t, "Hermes", s)

	a, err := c.ReadArray("entry1/Counter0/data")
	require.NoError(t, err)
	assert.Equal(t, []int{2, 3, 2}, a.Shape)
	assert.Equal(t, []float64{0, 1, 10, 11, 20, 21, 100, 101, 110, 111, 120, 121}, a.Data)

	_, err = c.ReadString("entry1/Counter0/energy")
	assert.ErrorIs(t, err, ErrStructure)
	_, err = c.ReadArray("entry1/collection/beamline")
	assert.ErrorIs(t, err, ErrStructure)
}

func TestOpenHDF5Attributes(t *testing.T) {
	c, err := OpenHDF5(createHermesH5(t, fixedLengthMarker("Hermes")))
	require.NoError(t, err)
	defer c.Close()

	assert.True(t, c.Has("entry1/Counter0/energy@units"))
	assert.True(t, c.Has("/entry1/Counter0/energy/@units"))
	assert.False(t, c.Has("entry1/Counter0/energy@offset"))
	assert.False(t, c.Has("entry1/missing@units"))

	units, err := c.ReadString("entry1/Counter0/energy@units")
	require.NoError(t, err)
	assert.Equal(t, "eV", units)

	_, err = c.ReadString("entry1/Counter0/energy@offset")
	assert.ErrorIs(t, err, ErrStructure)
}

const attributeLayout = `
h5entries:
  hermes_by_attribute:
    format_id: entry1/Counter0/data@beamline
    format_id_value: Hermes
    x_locs: entry1/Counter0/sample_x
    y_locs: entry1/Counter0/sample_y
    energies: entry1/Counter0/energy
    intensities: entry1/Counter0/data
`

func TestConfiguredReaderAttributeMarker(t *testing.T) {
	catalog, err := config.Parse([]byte(attributeLayout), "test")
	require.NoError(t, err)
	noMarker := func(*hdf5.Group) error { return nil }

	path := createHermesH5(t, noMarker, hdf5.WithAttribute("beamline", "Hermes"))
	r := NewConfiguredReader(WithCatalog(catalog), WithEntry("hermes_by_attribute"))
	ds, err := r.ReadSpectra(path, "")
	require.NoError(t, err)
	assertHermesMap(t, ds)

	path = createHermesH5(t, noMarker, hdf5.WithAttribute("beamline", "Rock"))
	_, err = r.ReadSpectra(path, "")
	assert.ErrorIs(t, err, ErrFormatMismatch)

	path = createHermesH5(t, noMarker)
	_, err = NewAutoReader(WithCatalog(catalog)).ReadSpectra(path, "")
	assert.ErrorIs(t, err, ErrFormatMismatch)
}

func TestInspect(t *testing.T) {
	nodes, err := Inspect(createH5(t))
	require.NoError(t, err)

	var paths []string
	byPath := map[string]Node{}
	for _, n := range nodes {
		require.NoError(t, n.Err)
		paths = append(paths, n.Path)
		byPath[n.Path] = n
	}
	assert.ElementsMatch(t, []string{
		"/",
		"/context", "/context/energies", "/context/counts",
		"/data", "/data/cube_00001", "/data/cube_00002",
	}, paths)
	assert.Equal(t, "/", paths[0])

	assert.False(t, byPath["/data"].Dataset)
	assert.True(t, byPath["/context/energies"].Dataset)
	assert.Equal(t, []uint64{3}, byPath["/context/energies"].Shape)
}

func TestInspectNotHDF5(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("hello"), 0o644))
	_, err := Inspect(path)
	assert.Error(t, err)
}
