package spectra

import (
	"fmt"

	"github.com/robert-malhotra/go-spectra/hdf5"
)

// Node describes one object found by Inspect.
type Node struct {
	Path    string
	Dataset bool
	Shape   []uint64 // datasets only
	Attrs   []string
	Err     error // set when the object could not be opened
}

// Inspect lists every group and dataset of an HDF5 file, parents before
// children. It is meant for writing new field-mapping entries.
func Inspect(filename string) ([]Node, error) {
	f, err := hdf5.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", filename, err)
	}
	defer f.Close()

	var nodes []Node
	err = hdf5.Walk(f.Root(), func(path string, obj interface{}, err error) error {
		if err != nil {
			nodes = append(nodes, Node{Path: path, Err: err})
			return nil
		}
		switch o := obj.(type) {
		case *hdf5.Group:
			nodes = append(nodes, Node{Path: path, Attrs: o.Attrs()})
		case *hdf5.Dataset:
			nodes = append(nodes, Node{Path: path, Dataset: true, Shape: o.Shape(), Attrs: o.Attrs()})
		}
		return nil
	})
	if err != nil {
		return nodes, fmt.Errorf("walking %s: %w", filename, err)
	}
	return nodes, nil
}
