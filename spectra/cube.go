package spectra

import "fmt"

// energiesPath is the energy axis shared by every ROCK cube.
const energiesPath = "context/energies"

// CubeReader reads hyperspectral imaging files from the ROCK beamline at
// SOLEIL. Cubes are stored as data/cube_00001, data/cube_00002, ... with
// shape (channel, height, width); sheet "n" selects cube n.
type CubeReader struct {
	opts *readerOptions
}

// NewCubeReader returns a CubeReader. WithOpener replaces the HDF5 backend.
func NewCubeReader(opts ...ReaderOption) *CubeReader {
	return &CubeReader{opts: newReaderOptions(opts)}
}

// Sheets returns "1".."N" for the N members of the data group.
func (r *CubeReader) Sheets(filename string) ([]string, error) {
	c, err := r.opts.open(filename)
	if err != nil {
		return nil, err
	}
	defer c.Close()

	members, err := c.Members(cubeGroup)
	if err != nil {
		return nil, err
	}
	return sheetRange(1, len(members)), nil
}

// ReadSpectra reads one cube; an empty sheet means "1". Pixel coordinates
// are plain indices, not physical positions.
func (r *CubeReader) ReadSpectra(filename, sheet string) (*Dataset, error) {
	n := 1
	if sheet != "" {
		var err error
		if n, err = parseSheet(sheet, 1); err != nil {
			return nil, err
		}
	}

	c, err := r.opts.open(filename)
	if err != nil {
		return nil, err
	}
	defer c.Close()

	path := CubePath(n)
	if !c.Has(path) {
		return nil, fmt.Errorf("%w: %s: no cube %s", ErrStructure, filename, path)
	}
	data, shape, err := readCube(c, path)
	if err != nil {
		return nil, err
	}
	energies, err := readVector(c, energiesPath)
	if err != nil {
		return nil, err
	}

	// (channel, height, width) -> (height, width, channel)
	data, shape = transpose3(data, shape, [3]int{1, 2, 0})
	height, width := shape[0], shape[1]
	logger.Infof("%s: cube %d is %dx%d with %d channels", filename, n, height, width, shape[2])

	return FromImage(Image{
		Height:   height,
		Width:    width,
		Channels: shape[2],
		Data:     data,
	}, energies, indexAxis(width), indexAxis(height))
}
