package spectra

import (
	"fmt"

	"github.com/robert-malhotra/go-spectra/config"
)

// ConfiguredReader is HermesReader with every path taken from one catalog
// entry (config.DefaultEntry unless WithEntry says otherwise).
type ConfiguredReader struct {
	opts    *readerOptions
	catalog catalogCache
}

// NewConfiguredReader returns a ConfiguredReader. The catalog comes from
// WithCatalog, WithConfigFile, $SPECTRA_H5_CONFIG or the embedded default,
// in that order, and is loaded on first use.
func NewConfiguredReader(opts ...ReaderOption) *ConfiguredReader {
	o := newReaderOptions(opts)
	return &ConfiguredReader{opts: o, catalog: catalogCache{opts: o}}
}

// Reload discards the cached catalog and reads it again.
func (r *ConfiguredReader) Reload() error {
	_, err := r.catalog.reload()
	return err
}

// ReadSpectra ignores sheet.
func (r *ConfiguredReader) ReadSpectra(filename, sheet string) (*Dataset, error) {
	m, err := r.mapping()
	if err != nil {
		return nil, err
	}

	c, err := r.opts.open(filename)
	if err != nil {
		return nil, err
	}
	defer c.Close()

	if err := checkMarker(c, m, filename); err != nil {
		return nil, err
	}
	return readMapped(c, m)
}

func (r *ConfiguredReader) mapping() (config.FieldMapping, error) {
	cat, err := r.catalog.get()
	if err != nil {
		return config.FieldMapping{}, err
	}
	m, err := cat.Lookup(r.opts.entryID)
	if err != nil {
		return config.FieldMapping{}, fmt.Errorf("%w: %v", ErrConfig, err)
	}
	return m, nil
}

// AutoReader picks the layout from the catalog by structure: the first
// entry, in document order, whose marker dataset exists. The marker value
// is not compared.
//
// By default only the first entry is inspected: if its marker is absent the
// read fails without trying the others. WithExhaustiveScan lifts that
// restriction.
type AutoReader struct {
	opts    *readerOptions
	catalog catalogCache
}

// NewAutoReader returns an AutoReader over the same catalog sources as
// NewConfiguredReader.
func NewAutoReader(opts ...ReaderOption) *AutoReader {
	o := newReaderOptions(opts)
	return &AutoReader{opts: o, catalog: catalogCache{opts: o}}
}

// Reload discards the cached catalog and reads it again.
func (r *AutoReader) Reload() error {
	_, err := r.catalog.reload()
	return err
}

// ReadSpectra ignores sheet.
func (r *AutoReader) ReadSpectra(filename, sheet string) (*Dataset, error) {
	cat, err := r.catalog.get()
	if err != nil {
		return nil, err
	}
	if cat.Len() == 0 {
		return nil, fmt.Errorf("%w: %s has no field mappings", ErrConfig, cat.Source())
	}

	c, err := r.opts.open(filename)
	if err != nil {
		return nil, err
	}
	defer c.Close()

	m, err := r.match(c, cat, filename)
	if err != nil {
		return nil, err
	}
	logger.Infof("%s: matched layout %s", filename, m.Name)
	return readMapped(c, m)
}

func (r *AutoReader) match(c Container, cat *config.Catalog, filename string) (config.FieldMapping, error) {
	for _, m := range cat.Entries() {
		if c.Has(m.FormatID) {
			return m, nil
		}
		if !r.opts.exhaustive {
			return config.FieldMapping{}, fmt.Errorf("%w: %s: marker %s of layout %s not found",
				ErrFormatMismatch, filename, CleanPath(m.FormatID), m.Name)
		}
		logger.Infof("%s: layout %s does not match", filename, m.Name)
	}
	return config.FieldMapping{}, fmt.Errorf("%w: %s: none of %d configured layouts match",
		ErrFormatMismatch, filename, cat.Len())
}
