// Package textcol reads whitespace-delimited numeric column files.
//
// Lines starting with the comment marker are skipped, as are blank lines.
// Anything after the marker on a data line is ignored.
package textcol

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/batchatco/go-thrower"
)

// ErrSyntax is wrapped by every LineError.
var ErrSyntax = errors.New("malformed column data")

// ErrNoData is returned when a file has no data lines.
var ErrNoData = errors.New("no data lines")

// LineError reports the offending line (1-based) and column (0-based).
type LineError struct {
	Line   int
	Column int
	Token  string
	Reason string
}

func (e *LineError) Error() string {
	if e.Token != "" {
		return fmt.Sprintf("line %d, column %d: %s: %q", e.Line, e.Column, e.Reason, e.Token)
	}
	return fmt.Sprintf("line %d, column %d: %s", e.Line, e.Column, e.Reason)
}

func (e *LineError) Unwrap() error { return ErrSyntax }

const maxLine = 1 << 20

type scanner struct {
	sc      *bufio.Scanner
	comment string
	line    int
	fields  []string
}

func newScanner(r io.Reader, comment string) *scanner {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), maxLine)
	return &scanner{sc: sc, comment: comment}
}

// next advances to the next data line, throwing on read errors.
func (s *scanner) next() bool {
	for s.sc.Scan() {
		s.line++
		text := s.sc.Text()
		if s.comment != "" {
			if strings.HasPrefix(text, s.comment) {
				continue
			}
			if i := strings.Index(text, s.comment); i >= 0 {
				text = text[:i]
			}
		}
		s.fields = strings.Fields(text)
		if len(s.fields) == 0 {
			continue
		}
		return true
	}
	thrower.ThrowIfError(s.sc.Err())
	return false
}

func (s *scanner) mustFloat(col int) float64 {
	if col >= len(s.fields) {
		thrower.Throw(&LineError{
			Line:   s.line,
			Column: col,
			Reason: fmt.Sprintf("line has only %d columns", len(s.fields)),
		})
	}
	v, err := strconv.ParseFloat(s.fields[col], 64)
	if err != nil {
		thrower.Throw(&LineError{
			Line:   s.line,
			Column: col,
			Token:  s.fields[col],
			Reason: "not a number",
		})
	}
	return v
}

// FirstFields returns the tokens of the first data line, or nil when the
// input has none.
func FirstFields(r io.Reader, comment string) (fields []string, err error) {
	defer thrower.RecoverError(&err)
	s := newScanner(r, comment)
	if !s.next() {
		return nil, nil
	}
	return s.fields, nil
}

// ReadColumns parses the given 0-based columns of every data line. The
// result holds one slice per requested column, in request order.
func ReadColumns(r io.Reader, comment string, cols ...int) (out [][]float64, err error) {
	defer thrower.RecoverError(&err)
	s := newScanner(r, comment)
	out = make([][]float64, len(cols))
	rows := 0
	for s.next() {
		for i, c := range cols {
			out[i] = append(out[i], s.mustFloat(c))
		}
		rows++
	}
	if rows == 0 {
		return nil, ErrNoData
	}
	return out, nil
}
