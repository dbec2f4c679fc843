package spectra

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/robert-malhotra/go-spectra/hdf5"
)

// Container is the hierarchical file surface the HDF5 readers use. Paths
// are slash separated and may omit the leading slash.
type Container interface {
	// Has reports whether a group, dataset or "object@name" attribute
	// exists at path.
	Has(path string) bool

	// ReadString decodes a string (or byte) dataset, dropping NUL padding.
	// Multi-element datasets yield their first element. A path of the form
	// "object@name" reads the attribute name of object instead.
	ReadString(path string) (string, error)

	// ReadArray reads a numeric dataset as float64.
	ReadArray(path string) (Array, error)

	// Members lists the names directly inside the group at path.
	Members(path string) ([]string, error)

	Close() error
}

// Array is a row-major numeric dataset.
type Array struct {
	Data  []float64
	Shape []int // nil for scalars
}

// OpenFunc opens a Container. OpenHDF5 is the default.
type OpenFunc func(filename string) (Container, error)

type h5Container struct {
	f *hdf5.File
}

// OpenHDF5 opens an HDF5 file. Files that are not HDF5 fail with
// ErrFormatMismatch so a Registry can move on to the next candidate.
func OpenHDF5(filename string) (Container, error) {
	f, err := hdf5.Open(filename)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrPermission) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrFormatMismatch, filename, err)
	}
	return &h5Container{f: f}, nil
}

func (c *h5Container) Has(path string) bool {
	if hdf5.IsAttrPath(path) {
		_, err := c.f.GetAttr(path)
		return err == nil
	}
	_, err := c.f.OpenDataset(CleanPath(path))
	// A group at path answers ErrNotDataset.
	return err == nil || errors.Is(err, hdf5.ErrNotDataset)
}

func (c *h5Container) dataset(path string) (*hdf5.Dataset, error) {
	ds, err := c.f.OpenDataset(CleanPath(path))
	if err != nil {
		return nil, fmt.Errorf("%w: dataset %s: %v", ErrStructure, CleanPath(path), err)
	}
	return ds, nil
}

func (c *h5Container) ReadString(path string) (string, error) {
	var s string
	var err error
	if hdf5.IsAttrPath(path) {
		var a *hdf5.Attribute
		if a, err = c.f.GetAttr(path); err == nil {
			s, err = a.ReadText()
		}
	} else {
		var ds *hdf5.Dataset
		if ds, err = c.dataset(path); err != nil {
			return "", err
		}
		s, err = ds.ReadText()
	}
	if err != nil {
		return "", fmt.Errorf("%w: %s is not a string: %v", ErrStructure, path, err)
	}
	return s, nil
}

func (c *h5Container) ReadArray(path string) (Array, error) {
	ds, err := c.dataset(path)
	if err != nil {
		return Array{}, err
	}
	data, err := ds.ReadNumeric()
	if err != nil {
		return Array{}, fmt.Errorf("%w: %s is not numeric: %v", ErrStructure, ds.Path(), err)
	}

	var shape []int
	for _, d := range ds.Shape() {
		shape = append(shape, int(d))
	}
	return Array{Data: data, Shape: shape}, nil
}

func (c *h5Container) Members(path string) ([]string, error) {
	g, err := c.f.OpenGroup(CleanPath(path))
	if err != nil {
		return nil, fmt.Errorf("%w: group %s: %v", ErrStructure, CleanPath(path), err)
	}
	return g.Members()
}

func (c *h5Container) Close() error {
	return c.f.Close()
}

// readVector reads a dataset that must be one-dimensional (or scalar).
func readVector(c Container, path string) ([]float64, error) {
	a, err := c.ReadArray(path)
	if err != nil {
		return nil, err
	}
	if len(a.Shape) > 1 {
		return nil, fmt.Errorf("%w: %s has shape %v, want a vector", ErrStructure, CleanPath(path), a.Shape)
	}
	if err := checkSize(a, path); err != nil {
		return nil, err
	}
	return a.Data, nil
}

// readCube reads a dataset that must be three-dimensional.
func readCube(c Container, path string) ([]float64, [3]int, error) {
	a, err := c.ReadArray(path)
	if err != nil {
		return nil, [3]int{}, err
	}
	if len(a.Shape) != 3 {
		return nil, [3]int{}, fmt.Errorf("%w: %s has shape %v, want 3 dimensions", ErrStructure, CleanPath(path), a.Shape)
	}
	if err := checkSize(a, path); err != nil {
		return nil, [3]int{}, err
	}
	return a.Data, [3]int{a.Shape[0], a.Shape[1], a.Shape[2]}, nil
}

// checkSize requires the element count to match the shape.
func checkSize(a Array, path string) error {
	n := 1
	for _, d := range a.Shape {
		if d < 0 {
			return fmt.Errorf("%w: %s has shape %v", ErrStructure, CleanPath(path), a.Shape)
		}
		n *= d
	}
	if len(a.Data) != n {
		return fmt.Errorf("%w: %s has %d values for shape %v", ErrStructure, CleanPath(path), len(a.Data), a.Shape)
	}
	return nil
}
