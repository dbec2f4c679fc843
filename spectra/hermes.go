package spectra

import (
	"fmt"

	"github.com/robert-malhotra/go-spectra/config"
)

// hermesLayout is the HERMES (SOLEIL) scan layout.
var hermesLayout = config.FieldMapping{
	Name:          "hermes",
	FormatID:      "entry1/collection/beamline",
	FormatIDValue: "Hermes",
	XLocs:         "entry1/Counter0/sample_x",
	YLocs:         "entry1/Counter0/sample_y",
	Energies:      "entry1/Counter0/energy",
	Intensities:   "entry1/Counter0/data",
}

// HermesReader reads STXM maps from the HERMES beamline at SOLEIL. The file
// must carry entry1/collection/beamline == "Hermes".
type HermesReader struct {
	opts *readerOptions
}

// NewHermesReader returns a HermesReader. WithOpener replaces the HDF5
// backend.
func NewHermesReader(opts ...ReaderOption) *HermesReader {
	return &HermesReader{opts: newReaderOptions(opts)}
}

// ReadSpectra ignores sheet; HERMES files hold a single map.
func (r *HermesReader) ReadSpectra(filename, sheet string) (*Dataset, error) {
	c, err := r.opts.open(filename)
	if err != nil {
		return nil, err
	}
	defer c.Close()

	if err := checkMarker(c, hermesLayout, filename); err != nil {
		return nil, err
	}
	return readMapped(c, hermesLayout)
}

// checkMarker requires the marker dataset to exist and to hold exactly
// m.FormatIDValue.
func checkMarker(c Container, m config.FieldMapping, filename string) error {
	if !c.Has(m.FormatID) {
		return fmt.Errorf("%w: %s: not an HDF5 %s file (no %s)", ErrFormatMismatch, filename, m.Name, CleanPath(m.FormatID))
	}
	v, err := c.ReadString(m.FormatID)
	if err != nil {
		return fmt.Errorf("%w: %s: not an HDF5 %s file: %v", ErrFormatMismatch, filename, m.Name, err)
	}
	if v != m.FormatIDValue {
		return fmt.Errorf("%w: %s: not an HDF5 %s file (%s is %q, want %q)",
			ErrFormatMismatch, filename, m.Name, CleanPath(m.FormatID), v, m.FormatIDValue)
	}
	return nil
}

// readMapped loads the map described by m. The stored intensity array is
// transposed (all axes reversed) into [height][width][channel].
func readMapped(c Container, m config.FieldMapping) (*Dataset, error) {
	x, err := readVector(c, m.XLocs)
	if err != nil {
		return nil, err
	}
	y, err := readVector(c, m.YLocs)
	if err != nil {
		return nil, err
	}
	energy, err := readVector(c, m.Energies)
	if err != nil {
		return nil, err
	}
	data, shape, err := readCube(c, m.Intensities)
	if err != nil {
		return nil, err
	}

	data, shape = transpose3(data, shape, [3]int{2, 1, 0})
	return FromImage(Image{
		Height:   shape[0],
		Width:    shape[1],
		Channels: shape[2],
		Data:     data,
	}, energy, x, y)
}
