package spectra

import (
	"fmt"

	"github.com/robert-malhotra/go-spectra/config"
)

// ReaderOption configures a reader.
type ReaderOption func(*readerOptions)

type readerOptions struct {
	open       OpenFunc
	catalog    *config.Catalog
	configPath string
	entryID    string
	exhaustive bool
	comment    string
}

func defaultReaderOptions() *readerOptions {
	return &readerOptions{
		open:    OpenHDF5,
		entryID: config.DefaultEntry,
		comment: "#",
	}
}

func newReaderOptions(opts []ReaderOption) *readerOptions {
	o := defaultReaderOptions()
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithOpener replaces the HDF5 backend, e.g. with an in-memory Container.
func WithOpener(open OpenFunc) ReaderOption {
	return func(o *readerOptions) {
		if open != nil {
			o.open = open
		}
	}
}

// WithCatalog supplies the field mappings directly. It takes precedence
// over WithConfigFile.
func WithCatalog(c *config.Catalog) ReaderOption {
	return func(o *readerOptions) {
		o.catalog = c
	}
}

// WithConfigFile loads field mappings from a YAML file instead of
// $SPECTRA_H5_CONFIG or the embedded default.
func WithConfigFile(path string) ReaderOption {
	return func(o *readerOptions) {
		o.configPath = path
	}
}

// WithEntry selects the catalog entry used by ConfiguredReader.
func WithEntry(id string) ReaderOption {
	return func(o *readerOptions) {
		if id != "" {
			o.entryID = id
		}
	}
}

// WithExhaustiveScan makes AutoReader try every catalog entry before
// giving up, instead of stopping at the first entry whose marker is
// missing.
func WithExhaustiveScan() ReaderOption {
	return func(o *readerOptions) {
		o.exhaustive = true
	}
}

// WithCommentMarker sets the line prefix ColumnReader skips as a comment.
// The default is "#".
func WithCommentMarker(prefix string) ReaderOption {
	return func(o *readerOptions) {
		if prefix != "" {
			o.comment = prefix
		}
	}
}

// catalogCache loads the field mappings once and hands out the same
// read-only catalog until reload is called.
type catalogCache struct {
	opts   *readerOptions
	loaded *config.Catalog
}

func (cc *catalogCache) get() (*config.Catalog, error) {
	if cc.loaded != nil {
		return cc.loaded, nil
	}
	return cc.reload()
}

func (cc *catalogCache) reload() (*config.Catalog, error) {
	if cc.opts.catalog != nil {
		cc.loaded = cc.opts.catalog
		return cc.loaded, nil
	}
	c, err := config.Resolve(cc.opts.configPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfig, err)
	}
	logger.Infof("loaded %d field mappings from %s", c.Len(), c.Source())
	cc.loaded = c
	return c, nil
}
