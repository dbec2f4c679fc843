package spectra

import (
	"fmt"
	"strconv"
	"strings"
)

// CleanPath normalizes an in-file path so that "entry1/data", "/entry1/data"
// and "/entry1/data/" name the same object.
func CleanPath(path string) string {
	path = strings.Trim(path, "/")
	if path == "" {
		return "/"
	}
	return "/" + path
}

// cubeGroup holds the ROCK hyperspectral cubes.
const cubeGroup = "data"

// CubePath returns the dataset path of cube n (1-based), e.g.
// "/data/cube_00002".
func CubePath(n int) string {
	return fmt.Sprintf("/%s/cube_%05d", cubeGroup, n)
}

// sheetRange returns the sheet names from..to inclusive.
func sheetRange(from, to int) []string {
	if to < from {
		return []string{}
	}
	out := make([]string, 0, to-from+1)
	for i := from; i <= to; i++ {
		out = append(out, strconv.Itoa(i))
	}
	return out
}

// parseSheet converts a sheet name to its number, which must be >= min.
func parseSheet(sheet string, min int) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(sheet))
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", ErrInvalidSheet, sheet)
	}
	if n < min {
		return 0, fmt.Errorf("%w: %d is below %d", ErrInvalidSheet, n, min)
	}
	return n, nil
}
