package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const twoEntries = `
h5entries:
  zeta_layout:
    format_id: z/marker
    format_id_value: Z
    x_locs: z/x
    y_locs: z/y
    energies: z/e
    intensities: z/data
  alpha_layout:
    format_id: a/marker
    format_id_value: A
    x_locs: a/x
    y_locs: a/y
    energies: a/e
    intensities: a/data
`

func writeConfig(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestParsePreservesOrder(t *testing.T) {
	c, err := Parse([]byte(twoEntries), "test")
	require.NoError(t, err)
	require.Equal(t, 2, c.Len())

	entries := c.Entries()
	assert.Equal(t, "zeta_layout", entries[0].Name)
	assert.Equal(t, "alpha_layout", entries[1].Name)
	assert.Equal(t, "a/data", entries[1].Intensities)
}

func TestEntriesReturnsCopy(t *testing.T) {
	c, err := Parse([]byte(twoEntries), "test")
	require.NoError(t, err)
	entries := c.Entries()
	entries[0].FormatID = "mutated"

	m, err := c.Lookup("zeta_layout")
	require.NoError(t, err)
	assert.Equal(t, "z/marker", m.FormatID)
}

func TestLookupUnknown(t *testing.T) {
	c, err := Parse([]byte(twoEntries), "test")
	require.NoError(t, err)
	_, err = c.Lookup("nope")
	assert.ErrorIs(t, err, ErrUnknownEntry)
}

func TestParseInvalid(t *testing.T) {
	cases := map[string]string{
		"not yaml":       "h5entries: [",
		"empty":          "",
		"scalar root":    "just a string",
		"no h5entries":   "other: {}",
		"entries list":   "h5entries: [a, b]",
		"missing key":    "h5entries:\n  e:\n    format_id: x\n",
		"nested value":   "h5entries:\n  e:\n    format_id: {a: b}\n",
		"duplicate name": "h5entries:\n  e: {format_id: a, format_id_value: b, x_locs: c, y_locs: d, energies: e, intensities: f}\n  e: {format_id: a, format_id_value: b, x_locs: c, y_locs: d, energies: e, intensities: f}\n",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(doc), "test")
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestDefault(t *testing.T) {
	c := Default()
	m, err := c.Lookup(DefaultEntry)
	require.NoError(t, err)
	assert.Equal(t, "entry1/collection/beamline", m.FormatID)
	assert.Equal(t, "Hermes", m.FormatIDValue)
	assert.Equal(t, "entry1/Counter0/data", m.Intensities)
	assert.Equal(t, "embedded", c.Source())
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, "mappings.yaml", twoEntries)
	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 2, c.Len())
	assert.Equal(t, path, c.Source())
}

func TestLoadRejectsExtension(t *testing.T) {
	path := writeConfig(t, "mappings.json", twoEntries)
	_, err := Load(path)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yml"))
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestResolve(t *testing.T) {
	path := writeConfig(t, "env.yaml", twoEntries)

	t.Setenv(EnvVar, "")
	c, err := Resolve("")
	require.NoError(t, err)
	assert.Equal(t, "embedded", c.Source())

	t.Setenv(EnvVar, path)
	c, err = Resolve("")
	require.NoError(t, err)
	assert.Equal(t, path, c.Source())

	explicit := writeConfig(t, "explicit.yml", twoEntries)
	c, err = Resolve(explicit)
	require.NoError(t, err)
	assert.Equal(t, explicit, c.Source())
}
