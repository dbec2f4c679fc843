package report

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/robert-malhotra/go-spectra/spectra"
)

// MaxPlotLines caps the number of spectra PlotSpectra draws when no rows
// are given.
const MaxPlotLines = 16

// PlotOptions controls PlotSpectra.
type PlotOptions struct {
	Title  string
	XLabel string // default "Energy"
	YLabel string // default "Intensity"

	// Rows selects the spectra to draw. Empty means the first
	// MaxPlotLines rows.
	Rows []int
}

// PlotSpectra draws the selected spectra of ds against its axis and saves
// the figure to path. The image format follows the extension (.png, .svg,
// .pdf, ...).
func PlotSpectra(path string, ds *spectra.Dataset, opts PlotOptions) error {
	if err := ds.Validate(); err != nil {
		return err
	}

	rows := opts.Rows
	if len(rows) == 0 {
		for i := 0; i < ds.Rows() && i < MaxPlotLines; i++ {
			rows = append(rows, i)
		}
	}

	p := plot.New()
	p.Title.Text = opts.Title
	p.X.Label.Text = orDefault(opts.XLabel, "Energy")
	p.Y.Label.Text = orDefault(opts.YLabel, "Intensity")

	for n, i := range rows {
		if i < 0 || i >= ds.Rows() {
			return fmt.Errorf("row %d out of range [0, %d)", i, ds.Rows())
		}
		pts := make(plotter.XYs, ds.Channels())
		for j, v := range ds.Spectrum(i) {
			pts[j] = plotter.XY{X: ds.Axis[j], Y: v}
		}
		line, err := plotter.NewLine(pts)
		if err != nil {
			return fmt.Errorf("row %d: %w", i, err)
		}
		line.Color = plotutil.Color(n)
		line.Width = vg.Points(1)
		p.Add(line)
		p.Legend.Add(legendLabel(ds, i), line)
	}

	p.Legend.Top = true
	p.Legend.Left = false
	p.Legend.XOffs = -10
	p.Legend.YOffs = -10

	if err := p.Save(10*vg.Inch, 6*vg.Inch, path); err != nil {
		return fmt.Errorf("save plot: %w", err)
	}
	return nil
}

func legendLabel(ds *spectra.Dataset, i int) string {
	if ds.Coords != nil {
		return fmt.Sprintf("(%g, %g)", ds.Coords.X[i], ds.Coords.Y[i])
	}
	return fmt.Sprintf("#%d", i)
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
