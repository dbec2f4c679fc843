package spectra

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robert-malhotra/go-spectra/config"
)

type stubReader struct {
	ds  *Dataset
	err error
}

func (s stubReader) ReadSpectra(string, string) (*Dataset, error) { return s.ds, s.err }

func stubFormat(name string, priority int, ds *Dataset, err error, exts ...string) Format {
	return Format{
		Name:       name,
		Extensions: exts,
		Priority:   priority,
		New:        func(...ReaderOption) Reader { return stubReader{ds: ds, err: err} },
	}
}

func formatNames(fs []Format) []string {
	var names []string
	for _, f := range fs {
		names = append(names, f.Name)
	}
	return names
}

func TestRegistryOrdering(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(stubFormat("b", 10, nil, nil, ".DAT")))
	require.NoError(t, r.Register(stubFormat("a", 10, nil, nil, ".dat")))
	require.NoError(t, r.Register(stubFormat("c", 5, nil, nil, ".dat", ".txt")))

	assert.Equal(t, []string{"c", "a", "b"}, formatNames(r.Lookup("x.Dat")))
	assert.Equal(t, []string{"c"}, formatNames(r.Lookup("x.txt")))
	assert.Empty(t, r.Lookup("x.csv"))
	assert.Empty(t, r.Lookup("noext"))

	f, ok := r.Format("b")
	require.True(t, ok)
	assert.Equal(t, []string{".dat"}, f.Extensions)
	_, ok = r.Format("z")
	assert.False(t, ok)
}

func TestRegistryRegisterErrors(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(stubFormat("a", 1, nil, nil, ".dat")))
	assert.Error(t, r.Register(stubFormat("a", 2, nil, nil, ".txt")))
	assert.Error(t, r.Register(stubFormat("", 2, nil, nil, ".txt")))
	assert.Error(t, r.Register(stubFormat("b", 2, nil, nil)))
	assert.Error(t, r.Register(Format{Name: "c", Extensions: []string{".c"}}))
	assert.Len(t, r.Formats(), 1)
}

func TestRegistryReadFallsThrough(t *testing.T) {
	want := &Dataset{Axis: []float64{1}}
	r := NewRegistry()
	require.NoError(t, r.Register(stubFormat("first", 1, nil, ErrFormatMismatch, ".dat")))
	require.NoError(t, r.Register(stubFormat("second", 2, want, nil, ".dat")))
	require.NoError(t, r.Register(stubFormat("third", 3, nil, errors.New("unreached"), ".dat")))

	ds, f, err := r.Read("x.dat", "")
	require.NoError(t, err)
	assert.Same(t, want, ds)
	assert.Equal(t, "second", f.Name)
}

func TestRegistryReadJoinsErrors(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(stubFormat("first", 1, nil, ErrFormatMismatch, ".dat")))
	require.NoError(t, r.Register(stubFormat("second", 2, nil, ErrStructure, ".dat")))

	_, _, err := r.Read("x.dat", "")
	assert.ErrorIs(t, err, ErrFormatMismatch)
	assert.ErrorIs(t, err, ErrStructure)
	assert.Contains(t, err.Error(), "first")
	assert.Contains(t, err.Error(), "second")

	_, _, err = r.Read("x.csv", "")
	assert.ErrorIs(t, err, ErrUnsupported)
}

func TestBuiltinFormats(t *testing.T) {
	assert.Equal(t,
		[]string{FormatHermes, FormatHermesConfigured, FormatHDF5Auto},
		formatNames(DefaultRegistry.Lookup("scan.HDF5")))
	assert.Equal(t, []string{FormatHDF5Auto}, formatNames(DefaultRegistry.Lookup("scan.nxs")))
	assert.Equal(t, []string{FormatCube}, formatNames(DefaultRegistry.Lookup("map.h5")))
	assert.Equal(t, []string{FormatColumns}, formatNames(DefaultRegistry.Lookup("xas.txt")))
	assert.Len(t, DefaultRegistry.Formats(), 5)
}

func TestReadText(t *testing.T) {
	path := writeText(t, "#comment\n400 0.1 0.2\n401 0.15 0.25\n")

	sheets, err := Sheets(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"2", "3"}, sheets)

	ds, err := Read(path, "3")
	require.NoError(t, err)
	assert.Equal(t, []float64{0.2, 0.25}, ds.Spectrum(0))
}

func TestReadHDF5Candidates(t *testing.T) {
	t.Setenv(config.EnvVar, "")

	m := hermesFile("entry1", "Hermes")
	ds, f, err := DefaultRegistry.Read("scan.hdf5", "", WithOpener(m.opener()))
	require.NoError(t, err)
	assert.Equal(t, FormatHermes, f.Name)
	assertHermesMap(t, ds)

	// Only the catalog-driven reader knows this layout.
	other := hermesFile("first", "First")
	ds, f, err = DefaultRegistry.Read("scan.hdf5", "",
		WithOpener(other.opener()), WithCatalog(twoLayoutCatalog(t)))
	require.NoError(t, err)
	assert.Equal(t, FormatHDF5Auto, f.Name)
	assertHermesMap(t, ds)
	assert.Equal(t, other.opens, other.closes)
}

func TestReadHDF5NoMatch(t *testing.T) {
	t.Setenv(config.EnvVar, "")
	path := filepath.Join(t.TempDir(), "scan.hdf5")
	require.NoError(t, os.WriteFile(path, []byte("400 0.1 0.2\n"), 0o644))

	_, err := Read(path, "")
	assert.ErrorIs(t, err, ErrFormatMismatch)
	for _, name := range []string{FormatHermes, FormatHermesConfigured, FormatHDF5Auto} {
		assert.Contains(t, err.Error(), name)
	}
}

func TestSheetsByFormat(t *testing.T) {
	m := rockFile(4)
	sheets, err := Sheets("map.h5", WithOpener(m.opener()))
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2", "3", "4"}, sheets)

	h := hermesFile("entry1", "Hermes")
	sheets, err = Sheets("scan.hdf5", WithOpener(h.opener()))
	require.NoError(t, err)
	assert.Empty(t, sheets)
	assert.Zero(t, h.opens)

	_, err = Sheets("scan.csv")
	assert.ErrorIs(t, err, ErrUnsupported)
}
