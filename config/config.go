// Package config loads the field mappings used by the configured HDF5
// readers.
//
// A mapping document has a single top-level key, h5entries, holding one
// entry per file layout:
//
//	h5entries:
//	  soleil_hermes_beamline_2024:
//	    format_id: entry1/collection/beamline
//	    format_id_value: Hermes
//	    x_locs: entry1/Counter0/sample_x
//	    y_locs: entry1/Counter0/sample_y
//	    energies: entry1/Counter0/energy
//	    intensities: entry1/Counter0/data
//
// Entry order in the document is preserved.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// EnvVar names the environment variable consulted by Resolve.
const EnvVar = "SPECTRA_H5_CONFIG"

// DefaultEntry is the entry used by the configured HERMES reader.
const DefaultEntry = "soleil_hermes_beamline_2024"

const maxFileSize = 1 << 20

var (
	ErrInvalidConfig = errors.New("invalid field mapping configuration")
	ErrUnknownEntry  = errors.New("unknown field mapping entry")
)

//go:embed hdf5_reader_config.yaml
var defaultDocument []byte

// FieldMapping maps the logical fields of a spectral HDF5 layout to dataset
// paths inside the file. FormatID may also name an attribute as
// "object@attribute".
type FieldMapping struct {
	Name          string
	FormatID      string
	FormatIDValue string
	XLocs         string
	YLocs         string
	Energies      string
	Intensities   string
}

// Catalog is an ordered, read-only set of field mappings.
type Catalog struct {
	source  string
	entries []FieldMapping
	index   map[string]int
}

var requiredKeys = []string{
	"format_id", "format_id_value", "x_locs", "y_locs", "energies", "intensities",
}

// Parse reads a mapping document. source is only used in error messages.
func Parse(data []byte, source string) (*Catalog, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidConfig, source, err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, fmt.Errorf("%w: %s: empty document", ErrInvalidConfig, source)
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: %s: top level is not a mapping", ErrInvalidConfig, source)
	}

	entriesNode := lookupKey(root, "h5entries")
	if entriesNode == nil {
		return nil, fmt.Errorf("%w: %s: missing h5entries", ErrInvalidConfig, source)
	}
	if entriesNode.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: %s: h5entries is not a mapping", ErrInvalidConfig, source)
	}

	c := &Catalog{source: source, index: make(map[string]int)}
	for i := 0; i+1 < len(entriesNode.Content); i += 2 {
		name := entriesNode.Content[i].Value
		m, err := decodeEntry(name, entriesNode.Content[i+1])
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidConfig, source, err)
		}
		if _, dup := c.index[name]; dup {
			return nil, fmt.Errorf("%w: %s: duplicate entry %q", ErrInvalidConfig, source, name)
		}
		c.index[name] = len(c.entries)
		c.entries = append(c.entries, m)
	}
	return c, nil
}

func lookupKey(m *yaml.Node, key string) *yaml.Node {
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value == key {
			return m.Content[i+1]
		}
	}
	return nil
}

func decodeEntry(name string, n *yaml.Node) (FieldMapping, error) {
	var raw map[string]string
	if err := n.Decode(&raw); err != nil {
		return FieldMapping{}, fmt.Errorf("entry %q: %v", name, err)
	}
	for _, k := range requiredKeys {
		if _, ok := raw[k]; !ok {
			return FieldMapping{}, fmt.Errorf("entry %q: missing %s", name, k)
		}
	}
	return FieldMapping{
		Name:          name,
		FormatID:      raw["format_id"],
		FormatIDValue: raw["format_id_value"],
		XLocs:         raw["x_locs"],
		YLocs:         raw["y_locs"],
		Energies:      raw["energies"],
		Intensities:   raw["intensities"],
	}, nil
}

// Load reads a mapping document from disk.
func Load(path string) (*Catalog, error) {
	clean := filepath.Clean(path)
	switch ext := filepath.Ext(clean); ext {
	case ".yaml", ".yml":
	default:
		return nil, fmt.Errorf("%w: config file must have .yaml or .yml extension, got %q", ErrInvalidConfig, ext)
	}

	info, err := os.Stat(clean)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if info.Size() > maxFileSize {
		return nil, fmt.Errorf("%w: config file too large: %d bytes (max %d)", ErrInvalidConfig, info.Size(), maxFileSize)
	}

	data, err := os.ReadFile(clean)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return Parse(data, clean)
}

// Default returns the catalog compiled into the binary.
func Default() *Catalog {
	c, err := Parse(defaultDocument, "embedded")
	if err != nil {
		panic(err)
	}
	return c
}

// Resolve picks the catalog source: an explicit path, then the file named
// by $SPECTRA_H5_CONFIG, then the embedded default.
func Resolve(path string) (*Catalog, error) {
	if path == "" {
		path = os.Getenv(EnvVar)
	}
	if path == "" {
		return Default(), nil
	}
	return Load(path)
}

// Source describes where the catalog was read from.
func (c *Catalog) Source() string { return c.source }

// Len returns the number of entries.
func (c *Catalog) Len() int { return len(c.entries) }

// Entries returns the mappings in document order.
func (c *Catalog) Entries() []FieldMapping {
	out := make([]FieldMapping, len(c.entries))
	copy(out, c.entries)
	return out
}

// Lookup returns the named mapping.
func (c *Catalog) Lookup(name string) (FieldMapping, error) {
	i, ok := c.index[name]
	if !ok {
		return FieldMapping{}, fmt.Errorf("%w: %q in %s", ErrUnknownEntry, name, c.source)
	}
	return c.entries[i], nil
}
