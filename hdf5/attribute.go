package hdf5

import (
	"fmt"
	"strings"

	"github.com/robert-malhotra/go-spectra/internal/binary"
	"github.com/robert-malhotra/go-spectra/internal/dtype"
	"github.com/robert-malhotra/go-spectra/internal/message"
)

// Attribute represents an HDF5 attribute attached to a dataset or group.
type Attribute struct {
	msg    *message.Attribute
	reader *binary.Reader // For resolving global heap references
}

// Name returns the attribute name.
func (a *Attribute) Name() string {
	return a.msg.Name
}

// Shape returns the dimensions of the attribute value.
func (a *Attribute) Shape() []uint64 {
	if a.msg.Dataspace == nil || a.msg.Dataspace.IsScalar() {
		return nil
	}
	return a.msg.Dataspace.Dimensions
}

// NumElements returns the total number of elements.
func (a *Attribute) NumElements() uint64 {
	if a.msg.Dataspace == nil {
		return 1
	}
	return a.msg.Dataspace.NumElements()
}

// DtypeClass returns the datatype class.
func (a *Attribute) DtypeClass() message.DatatypeClass {
	if a.msg.Datatype == nil {
		return 0
	}
	return a.msg.Datatype.Class
}

// Read reads the attribute value into dest.
// dest should be a pointer to the appropriate type.
func (a *Attribute) Read(dest interface{}) error {
	if a.msg.Datatype == nil {
		return fmt.Errorf("attribute has no datatype")
	}
	if a.msg.Data == nil {
		return fmt.Errorf("attribute has no data")
	}

	return dtype.ConvertWithReader(a.msg.Datatype, a.msg.Data, a.NumElements(), dest, a.reader)
}

// ReadFloat64 reads the attribute as float64 values.
func (a *Attribute) ReadFloat64() ([]float64, error) {
	var result []float64
	err := a.Read(&result)
	return result, err
}

// ReadString reads the attribute as string values.
func (a *Attribute) ReadString() ([]string, error) {
	var result []string
	err := a.Read(&result)
	return result, err
}

// ReadText decodes a text attribute the way Dataset.ReadText decodes a
// dataset: the first string element, or single byte integers taken as the
// bytes of one string.
func (a *Attribute) ReadText() (string, error) {
	dt := a.msg.Datatype
	switch {
	case dt == nil:
		return "", fmt.Errorf("attribute has no datatype")

	case dt.IsString():
		vals, err := a.ReadString()
		if err != nil {
			return "", err
		}
		if len(vals) == 0 {
			return "", nil
		}
		return vals[0], nil

	case dt.Class == message.ClassFixedPoint && dt.Size == 1:
		var b []uint8
		if err := a.Read(&b); err != nil {
			return "", err
		}
		return strings.TrimRight(string(b), "\x00"), nil

	default:
		return "", fmt.Errorf("%w: attribute %s holds %s data, want text", ErrTypeMismatch, a.msg.Name, dt.Class)
	}
}
