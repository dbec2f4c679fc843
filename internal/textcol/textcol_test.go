package textcol

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `#comment
# another comment
400 0.1 0.2

401 0.15 0.25 # trailing note
`

func TestFirstFields(t *testing.T) {
	fields, err := FirstFields(strings.NewReader(sample), "#")
	require.NoError(t, err)
	assert.Equal(t, []string{"400", "0.1", "0.2"}, fields)
}

func TestFirstFieldsOnlyComments(t *testing.T) {
	fields, err := FirstFields(strings.NewReader("# a\n# b\n"), "#")
	require.NoError(t, err)
	assert.Nil(t, fields)
}

func TestReadColumns(t *testing.T) {
	cols, err := ReadColumns(strings.NewReader(sample), "#", 0, 2)
	require.NoError(t, err)
	want := [][]float64{{400, 401}, {0.2, 0.25}}
	if diff := cmp.Diff(want, cols); diff != "" {
		t.Errorf("columns mismatch (-want +got):\n%s", diff)
	}
}

func TestReadColumnsNotANumber(t *testing.T) {
	_, err := ReadColumns(strings.NewReader("400 abc\n"), "#", 0, 1)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSyntax))

	var le *LineError
	require.ErrorAs(t, err, &le)
	assert.Equal(t, 1, le.Line)
	assert.Equal(t, 1, le.Column)
	assert.Equal(t, "abc", le.Token)
}

func TestReadColumnsShortLine(t *testing.T) {
	_, err := ReadColumns(strings.NewReader("400 1 2\n401 1\n"), "#", 0, 2)
	var le *LineError
	require.ErrorAs(t, err, &le)
	assert.Equal(t, 2, le.Line)
	assert.Contains(t, le.Error(), "only 2 columns")
}

func TestReadColumnsNoData(t *testing.T) {
	_, err := ReadColumns(strings.NewReader("#only\n\n"), "#", 0, 1)
	assert.ErrorIs(t, err, ErrNoData)
}
