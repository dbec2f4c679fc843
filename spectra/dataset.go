package spectra

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Dataset is the result of every reader.
type Dataset struct {
	// Axis holds one wavelength or energy per channel, in file order.
	Axis []float64

	// Intensities has one row per spectrum and one column per channel.
	Intensities *mat.Dense

	// Coords is nil unless the spectra come from a spatial map.
	Coords *Coordinates
}

// Coordinates gives the sample position of every intensity row.
type Coordinates struct {
	X []float64 // map_x
	Y []float64 // map_y
}

// Rows returns the number of spectra.
func (d *Dataset) Rows() int {
	r, _ := d.Intensities.Dims()
	return r
}

// Channels returns the number of spectral channels.
func (d *Dataset) Channels() int {
	_, c := d.Intensities.Dims()
	return c
}

// Spectrum returns a copy of row i.
func (d *Dataset) Spectrum(i int) []float64 {
	return mat.Row(nil, i, d.Intensities)
}

// Validate checks that the axis, matrix and coordinates agree in size.
func (d *Dataset) Validate() error {
	if d.Intensities == nil {
		return fmt.Errorf("%w: no intensity matrix", ErrStructure)
	}
	rows, cols := d.Intensities.Dims()
	if cols != len(d.Axis) {
		return fmt.Errorf("%w: %d channels but axis has %d values", ErrStructure, cols, len(d.Axis))
	}
	if d.Coords != nil {
		if len(d.Coords.X) != rows || len(d.Coords.Y) != rows {
			return fmt.Errorf("%w: %d rows but %d x and %d y coordinates",
				ErrStructure, rows, len(d.Coords.X), len(d.Coords.Y))
		}
	}
	return nil
}
