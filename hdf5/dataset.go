package hdf5

import (
	"fmt"
	"path"
	"strings"

	"github.com/robert-malhotra/go-spectra/internal/dtype"
	"github.com/robert-malhotra/go-spectra/internal/layout"
	"github.com/robert-malhotra/go-spectra/internal/message"
	"github.com/robert-malhotra/go-spectra/internal/object"
)

// Dataset represents an HDF5 dataset.
type Dataset struct {
	file      *File
	path      string
	header    *object.Header
	dataspace *message.Dataspace
	datatype  *message.Datatype
	layout    layout.Layout

	// Set by CreateDatasetWithType so Write knows where the data goes.
	dataAddr    uint64
	dataSize    uint64
	numElements uint64
}

// newDataset creates a Dataset from an object header.
func newDataset(f *File, path string, header *object.Header) (*Dataset, error) {
	ds := &Dataset{
		file:   f,
		path:   path,
		header: header,
	}

	// Get dataspace
	ds.dataspace = header.Dataspace()
	if ds.dataspace == nil {
		return nil, fmt.Errorf("dataset missing dataspace message")
	}

	// Get datatype
	ds.datatype = header.Datatype()
	if ds.datatype == nil {
		return nil, fmt.Errorf("dataset missing datatype message")
	}

	// Get layout
	layoutMsg := header.DataLayout()
	if layoutMsg == nil {
		return nil, fmt.Errorf("dataset missing layout message")
	}

	// Create layout handler
	filterMsg := header.FilterPipeline()
	var err error
	ds.layout, err = layout.New(layoutMsg, ds.dataspace, ds.datatype, filterMsg, f.reader)
	if err != nil {
		return nil, fmt.Errorf("creating layout: %w", err)
	}

	return ds, nil
}

// Name returns the dataset name (last component of path).
func (d *Dataset) Name() string {
	return path.Base(d.path)
}

// Path returns the full path to this dataset.
func (d *Dataset) Path() string {
	return d.path
}

// Shape returns the dimensions of the dataset.
func (d *Dataset) Shape() []uint64 {
	if d.dataspace.IsScalar() {
		return nil
	}
	return d.dataspace.Dimensions
}

// Rank returns the number of dimensions.
func (d *Dataset) Rank() int {
	return d.dataspace.Rank
}

// NumElements returns the total number of elements.
func (d *Dataset) NumElements() uint64 {
	return d.dataspace.NumElements()
}

// IsScalar returns true if the dataset is a scalar (single value).
func (d *Dataset) IsScalar() bool {
	return d.dataspace.IsScalar()
}

// DtypeSize returns the size of each element in bytes.
func (d *Dataset) DtypeSize() int {
	return int(d.datatype.Size)
}

// DtypeClass returns the datatype class.
func (d *Dataset) DtypeClass() message.DatatypeClass {
	return d.datatype.Class
}

// Read reads all data from the dataset into dest.
// dest should be a pointer to a slice of the appropriate type.
func (d *Dataset) Read(dest interface{}) error {
	raw, err := d.layout.Read()
	if err != nil {
		return fmt.Errorf("reading data: %w", err)
	}

	// The reader resolves variable-length strings held in the global heap.
	return dtype.ConvertWithReader(d.datatype, raw, d.dataspace.NumElements(), dest, d.file.reader)
}

// ReadFloat64 reads the dataset as float64 values.
func (d *Dataset) ReadFloat64() ([]float64, error) {
	var result []float64
	err := d.Read(&result)
	return result, err
}

// ReadString reads the dataset as string values.
func (d *Dataset) ReadString() ([]string, error) {
	var result []string
	err := d.Read(&result)
	return result, err
}

// ReadUint8 reads the dataset as uint8 values.
func (d *Dataset) ReadUint8() ([]uint8, error) {
	var result []uint8
	err := d.Read(&result)
	return result, err
}

// ReadText decodes a text dataset. Fixed-length and variable-length string
// datasets yield their first element. A dataset of single byte integers is
// taken as the bytes of one string, with trailing NULs dropped. Any other
// class fails with ErrTypeMismatch.
func (d *Dataset) ReadText() (string, error) {
	switch {
	case d.datatype.IsString():
		s, err := d.ReadString()
		if err != nil {
			return "", err
		}
		if len(s) == 0 {
			return "", nil
		}
		return s[0], nil

	case d.datatype.Class == message.ClassFixedPoint && d.datatype.Size == 1:
		b, err := d.ReadUint8()
		if err != nil {
			return "", err
		}
		return strings.TrimRight(string(b), "\x00"), nil

	default:
		return "", d.mismatch("text")
	}
}

// ReadNumeric reads an integer or floating point dataset as float64 values
// in storage (row-major) order. Any other class fails with ErrTypeMismatch.
func (d *Dataset) ReadNumeric() ([]float64, error) {
	switch d.datatype.Class {
	case message.ClassFixedPoint, message.ClassFloatPoint:
	default:
		return nil, d.mismatch("numeric")
	}

	data, err := d.ReadFloat64()
	if err != nil {
		return nil, err
	}
	if n := d.dataspace.NumElements(); uint64(len(data)) != n {
		return nil, fmt.Errorf("%s: read %d values, dataspace holds %d", d.path, len(data), n)
	}
	return data, nil
}

func (d *Dataset) mismatch(want string) error {
	return fmt.Errorf("%w: %s holds %s data (%d-byte elements), want %s",
		ErrTypeMismatch, d.path, d.datatype.Class, d.datatype.Size, want)
}

// Attrs returns the attribute names for this dataset.
func (d *Dataset) Attrs() []string {
	var names []string
	for _, msg := range d.header.GetMessages(message.TypeAttribute) {
		attr := msg.(*message.Attribute)
		names = append(names, attr.Name)
	}
	return names
}

// Attr returns an attribute by name, or nil if not found.
func (d *Dataset) Attr(name string) *Attribute {
	for _, msg := range d.header.GetMessages(message.TypeAttribute) {
		attr := msg.(*message.Attribute)
		if attr.Name == name {
			return &Attribute{msg: attr, reader: d.file.reader}
		}
	}
	return nil
}

// HasAttr returns true if the dataset has an attribute with the given name.
func (d *Dataset) HasAttr(name string) bool {
	return d.Attr(name) != nil
}
