// Package hdf5 is a pure Go HDF5 reader (and minimal writer) used to load
// synchrotron spectral maps. Datasets can be read either into caller
// supplied slices or through the class checked ReadText and ReadNumeric
// helpers, which refuse a dataset whose stored class does not fit.
package hdf5

import "errors"

// Common errors
var (
	ErrNotHDF5      = errors.New("not an HDF5 file")
	ErrNotFound     = errors.New("object not found")
	ErrNotDataset   = errors.New("object is not a dataset")
	ErrNotGroup     = errors.New("object is not a group")
	ErrUnsupported  = errors.New("unsupported feature")
	ErrInvalidPath  = errors.New("invalid path")
	ErrClosed       = errors.New("file is closed")
	ErrLinkDepth    = errors.New("maximum link depth exceeded")
	ErrTypeMismatch = errors.New("dataset class does not match the requested type")
)

// MaxLinkDepth is the maximum number of soft/external links that can be followed
// in a single path resolution. This prevents stack overflow from deeply nested links.
const MaxLinkDepth = 100
