package spectra

import (
	"errors"
	"fmt"
	"os"

	"gonum.org/v1/gonum/mat"

	"github.com/robert-malhotra/go-spectra/internal/textcol"
)

const (
	// Column 1 holds the wavelengths; sheets name columns 2..maxColumnSheet.
	firstColumnSheet = 2
	maxColumnSheet   = 10
)

// ColumnReader reads whitespace-delimited ASCII files whose first column is
// the wavelength axis and whose other columns are spectra, such as the XAS
// exports of the ROCK beamline. Each intensity column is a sheet, named by
// its 1-based column number.
type ColumnReader struct {
	opts *readerOptions
}

// NewColumnReader returns a ColumnReader. Of the reader options only
// WithCommentMarker applies.
func NewColumnReader(opts ...ReaderOption) *ColumnReader {
	return &ColumnReader{opts: newReaderOptions(opts)}
}

// Sheets returns "2" up to the column count of the first data line, capped
// at "10".
func (r *ColumnReader) Sheets(filename string) ([]string, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	fields, err := textcol.FirstFields(f, r.opts.comment)
	if err != nil {
		return nil, wrapTextErr(filename, err)
	}
	return sheetRange(firstColumnSheet, min(len(fields), maxColumnSheet)), nil
}

// ReadSpectra returns the selected column as a single spectrum. An empty
// sheet selects the first listed one.
func (r *ColumnReader) ReadSpectra(filename, sheet string) (*Dataset, error) {
	if sheet == "" {
		sheets, err := r.Sheets(filename)
		if err != nil {
			return nil, err
		}
		if len(sheets) == 0 {
			return nil, fmt.Errorf("%w: %s: no intensity columns", ErrParse, filename)
		}
		sheet = sheets[0]
	}
	col, err := parseSheet(sheet, firstColumnSheet)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	cols, err := textcol.ReadColumns(f, r.opts.comment, 0, col-1)
	if err != nil {
		return nil, wrapTextErr(filename, err)
	}
	axis, intensity := cols[0], cols[1]
	logger.Infof("%s: column %d, %d channels", filename, col, len(axis))

	return &Dataset{
		Axis:        axis,
		Intensities: mat.NewDense(1, len(intensity), intensity),
	}, nil
}

func wrapTextErr(filename string, err error) error {
	if errors.Is(err, textcol.ErrSyntax) || errors.Is(err, textcol.ErrNoData) {
		return fmt.Errorf("%w: %s: %v", ErrParse, filename, err)
	}
	return err
}
