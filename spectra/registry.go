package spectra

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
)

// Reader turns a file into a Dataset. sheet selects a sub-dataset for
// readers that have them; others ignore it.
type Reader interface {
	ReadSpectra(filename, sheet string) (*Dataset, error)
}

// SheetLister is implemented by readers whose files hold several
// selectable datasets.
type SheetLister interface {
	Sheets(filename string) ([]string, error)
}

// Format describes a registered reader.
type Format struct {
	Name        string
	Description string
	Extensions  []string // lower case, with the dot
	// Priority orders readers claiming the same extension; lower wins,
	// ties go by Name.
	Priority int
	New      func(opts ...ReaderOption) Reader
}

func (f Format) handles(ext string) bool {
	for _, e := range f.Extensions {
		if e == ext {
			return true
		}
	}
	return false
}

// Registry maps file extensions to readers.
type Registry struct {
	formats []Format
}

// NewRegistry returns an empty Registry. DefaultRegistry holds the
// built-in formats.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register adds f. Names must be unique.
func (r *Registry) Register(f Format) error {
	if f.Name == "" || f.New == nil || len(f.Extensions) == 0 {
		return fmt.Errorf("format %q: name, extensions and constructor are required", f.Name)
	}
	for _, g := range r.formats {
		if g.Name == f.Name {
			return fmt.Errorf("format %q already registered", f.Name)
		}
	}
	exts := make([]string, len(f.Extensions))
	for i, e := range f.Extensions {
		exts[i] = strings.ToLower(e)
	}
	f.Extensions = exts
	r.formats = append(r.formats, f)
	sort.SliceStable(r.formats, func(i, j int) bool {
		a, b := r.formats[i], r.formats[j]
		if a.Priority != b.Priority {
			return a.Priority < b.Priority
		}
		return a.Name < b.Name
	})
	return nil
}

// Formats returns every registered format in priority order.
func (r *Registry) Formats() []Format {
	out := make([]Format, len(r.formats))
	copy(out, r.formats)
	return out
}

// Lookup returns the formats claiming filename's extension, best first.
func (r *Registry) Lookup(filename string) []Format {
	ext := strings.ToLower(filepath.Ext(filename))
	var out []Format
	for _, f := range r.formats {
		if f.handles(ext) {
			out = append(out, f)
		}
	}
	return out
}

// Format returns the named format.
func (r *Registry) Format(name string) (Format, bool) {
	for _, f := range r.formats {
		if f.Name == name {
			return f, true
		}
	}
	return Format{}, false
}

// Read tries the candidates for filename in order and returns the first
// Dataset produced, along with the format that produced it. When every
// candidate fails the errors are joined.
func (r *Registry) Read(filename, sheet string, opts ...ReaderOption) (*Dataset, Format, error) {
	candidates := r.Lookup(filename)
	if len(candidates) == 0 {
		return nil, Format{}, fmt.Errorf("%w: %s", ErrUnsupported, filename)
	}

	var errs []error
	for _, f := range candidates {
		ds, err := f.New(opts...).ReadSpectra(filename, sheet)
		if err == nil {
			logger.Infof("%s: read with %s", filename, f.Name)
			return ds, f, nil
		}
		logger.Warnf("%s: %s: %v", filename, f.Name, err)
		errs = append(errs, fmt.Errorf("%s: %w", f.Name, err))
	}
	return nil, Format{}, errors.Join(errs...)
}

// Sheets lists the sheets of filename using the best candidate that has
// sheets. Files whose readers have none yield an empty list.
func (r *Registry) Sheets(filename string, opts ...ReaderOption) ([]string, error) {
	candidates := r.Lookup(filename)
	if len(candidates) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrUnsupported, filename)
	}
	for _, f := range candidates {
		if sl, ok := f.New(opts...).(SheetLister); ok {
			return sl.Sheets(filename)
		}
	}
	return []string{}, nil
}

// Built-in format names.
const (
	FormatColumns          = "columns"
	FormatHermes           = "hermes"
	FormatHermesConfigured = "hermes-configured"
	FormatHDF5Auto         = "hdf5-auto"
	FormatCube             = "rock-cube"
)

// BuiltinFormats returns the readers shipped with the package.
func BuiltinFormats() []Format {
	return []Format{
		{
			Name:        FormatColumns,
			Description: "XAS ascii spectrum from ROCK",
			Extensions:  []string{".txt"},
			Priority:    9999,
			New:         func(opts ...ReaderOption) Reader { return NewColumnReader(opts...) },
		},
		{
			Name:        FormatHermes,
			Description: "HDF5 file @HERMES/SOLEIL",
			Extensions:  []string{".hdf5"},
			Priority:    10000,
			New:         func(opts ...ReaderOption) Reader { return NewHermesReader(opts...) },
		},
		{
			Name:        FormatHermesConfigured,
			Description: "HDF5 auto file @HERMES/SOLEIL",
			Extensions:  []string{".hdf5"},
			Priority:    10010,
			New:         func(opts ...ReaderOption) Reader { return NewConfiguredReader(opts...) },
		},
		{
			Name:        FormatHDF5Auto,
			Description: "HDF5 reader",
			Extensions:  []string{".hdf5", ".nxs"},
			Priority:    10020,
			New:         func(opts ...ReaderOption) Reader { return NewAutoReader(opts...) },
		},
		{
			Name:        FormatCube,
			Description: "HDF5 file @ROCK(hyperspectral imaging)/SOLEIL",
			Extensions:  []string{".h5"},
			Priority:    10000,
			New:         func(opts ...ReaderOption) Reader { return NewCubeReader(opts...) },
		},
	}
}

// DefaultRegistry holds BuiltinFormats.
var DefaultRegistry = newDefaultRegistry()

func newDefaultRegistry() *Registry {
	r := NewRegistry()
	for _, f := range BuiltinFormats() {
		if err := r.Register(f); err != nil {
			panic(err)
		}
	}
	return r
}

// Read reads filename with DefaultRegistry.
func Read(filename, sheet string, opts ...ReaderOption) (*Dataset, error) {
	ds, _, err := DefaultRegistry.Read(filename, sheet, opts...)
	return ds, err
}

// Sheets lists the sheets of filename with DefaultRegistry.
func Sheets(filename string, opts ...ReaderOption) ([]string, error) {
	return DefaultRegistry.Sheets(filename, opts...)
}
