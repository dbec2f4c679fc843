package report

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"gonum.org/v1/gonum/mat"

	"github.com/robert-malhotra/go-spectra/spectra"
)

// mapDataset is a 1x2 map with three channels.
func mapDataset(t *testing.T) *spectra.Dataset {
	t.Helper()
	ds, err := spectra.FromImage(spectra.Image{
		Height: 1, Width: 2, Channels: 3,
		Data: []float64{1, 2, 3, 3, 6, 9},
	}, []float64{700, 701, 702}, []float64{0.5, 1.5}, []float64{4})
	require.NoError(t, err)
	return ds
}

func TestSummarize(t *testing.T) {
	s, err := Summarize(mapDataset(t))
	require.NoError(t, err)
	require.Len(t, s, 3)

	assert.Equal(t, 700.0, s[0].Axis)
	assert.InDelta(t, 2, s[0].Mean, 1e-12)
	assert.InDelta(t, 1, s[0].StdDev, 1e-12)
	assert.Equal(t, 1.0, s[0].Min)
	assert.Equal(t, 3.0, s[0].Max)
	assert.InDelta(t, 2, s[0].Median, 1e-12)

	assert.InDelta(t, 6, s[2].Mean, 1e-12)
	assert.InDelta(t, 3, s[2].StdDev, 1e-12)
}

func TestSummarizeSingleSpectrum(t *testing.T) {
	ds := &spectra.Dataset{
		Axis:        []float64{400, 401},
		Intensities: mat.NewDense(1, 2, []float64{0.2, 0.25}),
	}
	s, err := Summarize(ds)
	require.NoError(t, err)
	assert.Equal(t, 0.25, s[1].Mean)
	assert.Zero(t, s[1].StdDev)
}

func TestSummarizeInvalid(t *testing.T) {
	ds := &spectra.Dataset{
		Axis:        []float64{400},
		Intensities: mat.NewDense(1, 2, []float64{0.2, 0.25}),
	}
	_, err := Summarize(ds)
	assert.ErrorIs(t, err, spectra.ErrStructure)
}

func TestWriteXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "map.xlsx")
	require.NoError(t, WriteXLSX(path, mapDataset(t)))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SpectraSheet, SummarySheet}, f.GetSheetList())

	rows, err := f.GetRows(SpectraSheet)
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"map_x", "map_y", "700", "701", "702"},
		{"0.5", "4", "1", "2", "3"},
		{"1.5", "4", "3", "6", "9"},
	}, rows)

	summary, err := f.GetRows(SummarySheet)
	require.NoError(t, err)
	require.Len(t, summary, 4)
	assert.Equal(t, []string{"axis", "mean", "stddev", "min", "max", "median"}, summary[0])
	assert.Equal(t, []string{"701", "4", "2", "2", "6", "4"}, summary[2])
}

func TestWriteXLSXWithoutCoordinates(t *testing.T) {
	ds := &spectra.Dataset{
		Axis:        []float64{400, 401},
		Intensities: mat.NewDense(1, 2, []float64{0.5, 0.25}),
	}
	path := filepath.Join(t.TempDir(), "xas.xlsx")
	require.NoError(t, WriteXLSX(path, ds))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(SpectraSheet)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"400", "401"}, {"0.5", "0.25"}}, rows)
}

func TestPlotSpectra(t *testing.T) {
	dir := t.TempDir()
	ds := mapDataset(t)

	png := filepath.Join(dir, "map.png")
	require.NoError(t, PlotSpectra(png, ds, PlotOptions{Title: "map"}))
	info, err := os.Stat(png)
	require.NoError(t, err)
	assert.Positive(t, info.Size())

	svg := filepath.Join(dir, "one.svg")
	require.NoError(t, PlotSpectra(svg, ds, PlotOptions{Rows: []int{1}}))

	err = PlotSpectra(filepath.Join(dir, "bad.png"), ds, PlotOptions{Rows: []int{2}})
	assert.Error(t, err)
}
