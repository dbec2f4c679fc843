// Package spectra reads instrument spectral files into a Dataset: a
// wavelength (or energy) axis, one intensity row per spectrum and, for
// hyperspectral maps, the x/y position of every row.
//
// Readers exist for multi-column ASCII files and for several synchrotron
// HDF5 layouts. Pick one directly, or let a Registry choose by extension:
//
//	ds, err := spectra.Read("scan.h5", "2")
//	if err != nil {
//	    return err
//	}
//	fmt.Println(ds.Rows(), "spectra of", ds.Channels(), "channels")
package spectra

import "github.com/robert-malhotra/go-spectra/internal/logging"

var logger = logging.New("spectra")

// SetLogLevel sets the package log level: 0 fatal, 1 error, 2 warn
// (default), 3 info.
func SetLogLevel(level int) {
	logger.SetLevel(logging.Level(level))
}
