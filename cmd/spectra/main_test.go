package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/robert-malhotra/go-spectra/hdf5"
	"github.com/robert-malhotra/go-spectra/config"
	"github.com/robert-malhotra/go-spectra/spectra"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

const xas = "#comment\n400 0.1 0.2\n401 0.15 0.25\n"

func TestFormats(t *testing.T) {
	out, err := run(t, "formats")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 5)
	assert.True(t, strings.HasPrefix(lines[0], spectra.FormatColumns))
	assert.Contains(t, out, ".hdf5,.nxs")
}

func TestSheetsAndRead(t *testing.T) {
	path := writeFile(t, "xas.txt", xas)

	out, err := run(t, "sheets", path)
	require.NoError(t, err)
	assert.Equal(t, "2\n3\n", out)

	out, err = run(t, "read", path, "--sheet", "3", "--summary")
	require.NoError(t, err)
	assert.Contains(t, out, "format:   columns")
	assert.Contains(t, out, "spectra:  1")
	assert.Contains(t, out, "channels: 2 (400 .. 401)")
	assert.Contains(t, out, "0.25")

	_, err = run(t, "read", path, "--sheet", "x")
	assert.ErrorIs(t, err, spectra.ErrInvalidSheet)

	_, err = run(t, "read", writeFile(t, "xas.csv", xas))
	assert.ErrorIs(t, err, spectra.ErrUnsupported)
}

func TestExportAndPlot(t *testing.T) {
	path := writeFile(t, "xas.txt", xas)
	dir := t.TempDir()

	xlsx := filepath.Join(dir, "xas.xlsx")
	out, err := run(t, "export", path, xlsx)
	require.NoError(t, err)
	assert.Contains(t, out, "wrote 1 spectra")

	f, err := excelize.OpenFile(xlsx)
	require.NoError(t, err)
	defer f.Close()
	v, err := f.GetCellValue("spectra", "B2")
	require.NoError(t, err)
	assert.Equal(t, "0.15", v)

	png := filepath.Join(dir, "xas.png")
	_, err = run(t, "plot", path, png, "--rows", "0")
	require.NoError(t, err)
	_, err = os.Stat(png)
	assert.NoError(t, err)

	_, err = run(t, "plot", path, png, "--rows", "zero")
	assert.Error(t, err)
}

func TestInspect(t *testing.T) {
	path := filepath.Join(t.TempDir(), "map.h5")
	f, err := hdf5.Create(path)
	require.NoError(t, err)
	g, err := f.Root().CreateGroup("context")
	require.NoError(t, err)
	_, err = g.CreateDataset("energies", []float64{1, 2, 3})
	require.NoError(t, err)
	require.NoError(t, f.Close())

	out, err := run(t, "inspect", path)
	require.NoError(t, err)
	assert.Contains(t, out, `Group "/context"`)
	assert.Contains(t, out, `  Dataset "/context/energies" shape=[3]`)
}

func TestEnvFileConfig(t *testing.T) {
	t.Setenv(config.EnvVar, "")
	require.NoError(t, os.Unsetenv(config.EnvVar))

	env := writeFile(t, "test.env", config.EnvVar+"=/nonexistent/mappings.yaml\n")
	scan := writeFile(t, "scan.nxs", "not hdf5")

	_, err := run(t, "--env-file", env, "read", scan)
	assert.ErrorIs(t, err, spectra.ErrConfig)
	assert.Equal(t, "/nonexistent/mappings.yaml", os.Getenv(config.EnvVar))
}

func TestParseRows(t *testing.T) {
	rows, err := parseRows(" 0, 2,5 ")
	require.NoError(t, err)
	assert.Equal(t, []int{0, 2, 5}, rows)

	rows, err = parseRows("")
	require.NoError(t, err)
	assert.Nil(t, rows)

	_, err = parseRows("1,,2")
	assert.Error(t, err)
}
