package spectra

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromImageRowOrder(t *testing.T) {
	// 2 rows (y) x 3 columns (x) x 2 channels; value = 100*iy + 10*ix + c
	var data []float64
	for iy := 0; iy < 2; iy++ {
		for ix := 0; ix < 3; ix++ {
			for c := 0; c < 2; c++ {
				data = append(data, float64(100*iy+10*ix+c))
			}
		}
	}
	img := Image{Height: 2, Width: 3, Channels: 2, Data: data}

	ds, err := FromImage(img, []float64{500, 501}, []float64{0.5, 1.5, 2.5}, []float64{-1, -2})
	require.NoError(t, err)
	require.NoError(t, ds.Validate())

	assert.Equal(t, 6, ds.Rows())
	assert.Equal(t, 2, ds.Channels())
	assert.Equal(t, []float64{110, 111}, ds.Spectrum(4)) // iy=1, ix=1

	wantX := []float64{0.5, 1.5, 2.5, 0.5, 1.5, 2.5}
	wantY := []float64{-1, -1, -1, -2, -2, -2}
	if diff := cmp.Diff(wantX, ds.Coords.X); diff != "" {
		t.Errorf("map_x mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(wantY, ds.Coords.Y); diff != "" {
		t.Errorf("map_y mismatch (-want +got):\n%s", diff)
	}
}

func TestFromImageMismatch(t *testing.T) {
	img := Image{Height: 1, Width: 2, Channels: 3, Data: seq(0, 6)}
	cases := []struct {
		name       string
		img        Image
		axis, x, y []float64
	}{
		{"axis", img, seq(0, 2), seq(0, 2), seq(0, 1)},
		{"x", img, seq(0, 3), seq(0, 3), seq(0, 1)},
		{"y", img, seq(0, 3), seq(0, 2), seq(0, 2)},
		{"data", Image{Height: 1, Width: 2, Channels: 3, Data: seq(0, 5)}, seq(0, 3), seq(0, 2), seq(0, 1)},
		{"empty", Image{}, nil, nil, nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := FromImage(tc.img, tc.axis, tc.x, tc.y)
			assert.ErrorIs(t, err, ErrStructure)
		})
	}
}

func TestTranspose3(t *testing.T) {
	// shape (2, 3, 4), value = 100*i + 10*j + k
	shape := [3]int{2, 3, 4}
	var data []float64
	for i := 0; i < 2; i++ {
		for j := 0; j < 3; j++ {
			for k := 0; k < 4; k++ {
				data = append(data, float64(100*i+10*j+k))
			}
		}
	}

	rev, revShape := transpose3(data, shape, [3]int{2, 1, 0})
	assert.Equal(t, [3]int{4, 3, 2}, revShape)
	// rev[k][j][i] == data[i][j][k]
	assert.Equal(t, 123.0, rev[3*6+2*2+1])

	rot, rotShape := transpose3(data, shape, [3]int{1, 2, 0})
	assert.Equal(t, [3]int{3, 4, 2}, rotShape)
	// rot[j][k][i] == data[i][j][k]
	assert.Equal(t, 123.0, rot[2*8+3*2+1])

	same, sameShape := transpose3(data, shape, [3]int{0, 1, 2})
	assert.Equal(t, shape, sameShape)
	assert.Equal(t, data, same)
}

func TestDatasetValidate(t *testing.T) {
	ds, err := FromImage(Image{Height: 1, Width: 1, Channels: 2, Data: []float64{1, 2}}, seq(0, 2), seq(0, 1), seq(0, 1))
	require.NoError(t, err)

	ds.Axis = ds.Axis[:1]
	assert.ErrorIs(t, ds.Validate(), ErrStructure)

	ds.Axis = seq(0, 2)
	ds.Coords.Y = nil
	assert.ErrorIs(t, ds.Validate(), ErrStructure)

	assert.ErrorIs(t, (&Dataset{}).Validate(), ErrStructure)
}
