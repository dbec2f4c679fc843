package spectra

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Image is a hyperspectral image stored row-major as
// [Height][Width][Channels].
type Image struct {
	Height   int
	Width    int
	Channels int
	Data     []float64
}

// FromImage flattens img into one spectrum per pixel. Rows run along x
// first, so pixel (ix, iy) becomes row iy*Width+ix with coordinates
// (x[ix], y[iy]). axis must have Channels values, x Width and y Height.
//
// The pixel data is not copied; the Dataset takes ownership of img.Data.
func FromImage(img Image, axis, x, y []float64) (*Dataset, error) {
	if img.Height <= 0 || img.Width <= 0 || img.Channels <= 0 {
		return nil, fmt.Errorf("%w: empty image %dx%dx%d", ErrStructure, img.Height, img.Width, img.Channels)
	}
	if n := img.Height * img.Width * img.Channels; len(img.Data) != n {
		return nil, fmt.Errorf("%w: image %dx%dx%d needs %d values, have %d",
			ErrStructure, img.Height, img.Width, img.Channels, n, len(img.Data))
	}
	if len(axis) != img.Channels {
		return nil, fmt.Errorf("%w: image has %d channels but axis has %d values", ErrStructure, img.Channels, len(axis))
	}
	if len(x) != img.Width {
		return nil, fmt.Errorf("%w: image width %d but %d x coordinates", ErrStructure, img.Width, len(x))
	}
	if len(y) != img.Height {
		return nil, fmt.Errorf("%w: image height %d but %d y coordinates", ErrStructure, img.Height, len(y))
	}

	rows := img.Height * img.Width
	coords := &Coordinates{
		X: make([]float64, rows),
		Y: make([]float64, rows),
	}
	for iy := 0; iy < img.Height; iy++ {
		for ix := 0; ix < img.Width; ix++ {
			r := iy*img.Width + ix
			coords.X[r] = x[ix]
			coords.Y[r] = y[iy]
		}
	}

	return &Dataset{
		Axis:        axis,
		Intensities: mat.NewDense(rows, img.Channels, img.Data),
		Coords:      coords,
	}, nil
}

// transpose3 reorders the axes of a 3-D row-major array: axis i of the
// result is axis perm[i] of the input.
func transpose3(data []float64, shape [3]int, perm [3]int) ([]float64, [3]int) {
	stride := [3]int{shape[1] * shape[2], shape[2], 1}
	out := [3]int{shape[perm[0]], shape[perm[1]], shape[perm[2]]}
	s0, s1, s2 := stride[perm[0]], stride[perm[1]], stride[perm[2]]

	res := make([]float64, len(data))
	k := 0
	for i := 0; i < out[0]; i++ {
		for j := 0; j < out[1]; j++ {
			base := i*s0 + j*s1
			for l := 0; l < out[2]; l++ {
				res[k] = data[base+l*s2]
				k++
			}
		}
	}
	return res, out
}

// indexAxis returns 0, 1, ..., n-1.
func indexAxis(n int) []float64 {
	a := make([]float64, n)
	for i := range a {
		a[i] = float64(i)
	}
	return a
}
