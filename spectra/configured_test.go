package spectra

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robert-malhotra/go-spectra/config"
)

const twoLayouts = `
h5entries:
  first_layout:
    format_id: first/collection/beamline
    format_id_value: First
    x_locs: first/Counter0/sample_x
    y_locs: first/Counter0/sample_y
    energies: first/Counter0/energy
    intensities: first/Counter0/data
  second_layout:
    format_id: second/collection/beamline
    format_id_value: Second
    x_locs: second/Counter0/sample_x
    y_locs: second/Counter0/sample_y
    energies: second/Counter0/energy
    intensities: second/Counter0/data
`

func twoLayoutCatalog(t *testing.T) *config.Catalog {
	t.Helper()
	c, err := config.Parse([]byte(twoLayouts), "test")
	require.NoError(t, err)
	return c
}

func TestConfiguredReaderDefaultEntry(t *testing.T) {
	t.Setenv(config.EnvVar, "")
	m := hermesFile("entry1", "Hermes")
	ds, err := NewConfiguredReader(WithOpener(m.opener())).ReadSpectra("scan.hdf5", "")
	require.NoError(t, err)
	assertHermesMap(t, ds)
	assert.Equal(t, m.opens, m.closes)
}

func TestConfiguredReaderNamedEntry(t *testing.T) {
	m := hermesFile("second", "Second")
	r := NewConfiguredReader(
		WithOpener(m.opener()),
		WithCatalog(twoLayoutCatalog(t)),
		WithEntry("second_layout"),
	)
	ds, err := r.ReadSpectra("scan.hdf5", "")
	require.NoError(t, err)
	assertHermesMap(t, ds)
}

func TestConfiguredReaderChecksValue(t *testing.T) {
	m := hermesFile("second", "Other")
	r := NewConfiguredReader(
		WithOpener(m.opener()),
		WithCatalog(twoLayoutCatalog(t)),
		WithEntry("second_layout"),
	)
	_, err := r.ReadSpectra("scan.hdf5", "")
	assert.ErrorIs(t, err, ErrFormatMismatch)
}

func TestConfiguredReaderMissingMarker(t *testing.T) {
	m := hermesFile("entry1", "")
	_, err := NewConfiguredReader(WithOpener(m.opener()), WithCatalog(config.Default())).
		ReadSpectra("scan.hdf5", "")
	assert.ErrorIs(t, err, ErrFormatMismatch)
}

func TestConfiguredReaderUnknownEntry(t *testing.T) {
	m := hermesFile("entry1", "Hermes")
	r := NewConfiguredReader(WithOpener(m.opener()), WithCatalog(twoLayoutCatalog(t)))
	_, err := r.ReadSpectra("scan.hdf5", "")
	assert.ErrorIs(t, err, ErrConfig)
	assert.Zero(t, m.opens)
}

func TestConfiguredReaderBadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("h5entries: ["), 0o644))

	m := hermesFile("entry1", "Hermes")
	_, err := NewConfiguredReader(WithOpener(m.opener()), WithConfigFile(path)).ReadSpectra("scan.hdf5", "")
	assert.ErrorIs(t, err, ErrConfig)
}

func TestConfiguredReaderCachesUntilReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mappings.yaml")
	require.NoError(t, os.WriteFile(path, []byte(twoLayouts), 0o644))

	m := hermesFile("second", "Second")
	r := NewConfiguredReader(WithOpener(m.opener()), WithConfigFile(path), WithEntry("second_layout"))
	_, err := r.ReadSpectra("scan.hdf5", "")
	require.NoError(t, err)

	// The cached catalog survives the file going away...
	require.NoError(t, os.Remove(path))
	_, err = r.ReadSpectra("scan.hdf5", "")
	require.NoError(t, err)

	// ...until an explicit reload.
	assert.ErrorIs(t, r.Reload(), ErrConfig)
}

func TestAutoReaderFirstEntryMatches(t *testing.T) {
	// The marker value is not compared.
	m := hermesFile("first", "anything")
	r := NewAutoReader(WithOpener(m.opener()), WithCatalog(twoLayoutCatalog(t)))
	ds, err := r.ReadSpectra("scan.nxs", "")
	require.NoError(t, err)
	assertHermesMap(t, ds)
	assert.Equal(t, m.opens, m.closes)
}

func TestAutoReaderStopsAtFirstMismatch(t *testing.T) {
	m := hermesFile("second", "Second")
	r := NewAutoReader(WithOpener(m.opener()), WithCatalog(twoLayoutCatalog(t)))
	_, err := r.ReadSpectra("scan.nxs", "")
	assert.ErrorIs(t, err, ErrFormatMismatch)
	assert.Contains(t, err.Error(), "first_layout")
	assert.Equal(t, 1, m.closes)
}

func TestAutoReaderExhaustiveScan(t *testing.T) {
	m := hermesFile("second", "Second")
	r := NewAutoReader(WithOpener(m.opener()), WithCatalog(twoLayoutCatalog(t)), WithExhaustiveScan())
	ds, err := r.ReadSpectra("scan.nxs", "")
	require.NoError(t, err)
	assertHermesMap(t, ds)

	none := hermesFile("third", "Third")
	r = NewAutoReader(WithOpener(none.opener()), WithCatalog(twoLayoutCatalog(t)), WithExhaustiveScan())
	_, err = r.ReadSpectra("scan.nxs", "")
	assert.ErrorIs(t, err, ErrFormatMismatch)
}

func TestAutoReaderEmptyCatalog(t *testing.T) {
	empty, err := config.Parse([]byte("h5entries: {}\n"), "empty")
	require.NoError(t, err)

	m := hermesFile("entry1", "Hermes")
	_, err = NewAutoReader(WithOpener(m.opener()), WithCatalog(empty)).ReadSpectra("scan.nxs", "")
	assert.ErrorIs(t, err, ErrConfig)
	assert.Zero(t, m.opens)
}

func TestAutoReaderEnvConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "env.yml")
	require.NoError(t, os.WriteFile(path, []byte(twoLayouts), 0o644))
	t.Setenv(config.EnvVar, path)

	m := hermesFile("first", "First")
	ds, err := NewAutoReader(WithOpener(m.opener())).ReadSpectra("scan.nxs", "")
	require.NoError(t, err)
	assert.Equal(t, 6, ds.Rows())
}
