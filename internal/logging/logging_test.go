package logging

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := New("spectra")
	l.SetOutput(&buf)

	l.Infof("hidden %d", 1)
	assert.Empty(t, buf.String())

	l.Warnf("shown %d", 2)
	assert.Contains(t, buf.String(), "WARN [spectra] shown 2")

	old := l.SetLevel(LevelInfo)
	assert.Equal(t, LevelDefault, old)
	l.Info("now", "visible")
	assert.Contains(t, buf.String(), "INFO [spectra] now visible")
}

func TestSetLevelRejectsInvalid(t *testing.T) {
	l := New("")
	require.Panics(t, func() { l.SetLevel(LevelMax + 1) })
	require.Panics(t, func() { l.SetLevel(LevelMin - 1) })
	assert.Equal(t, LevelDefault, l.Level())
}

func TestNoNamePrefix(t *testing.T) {
	var buf bytes.Buffer
	l := New("")
	l.SetOutput(&buf)
	l.Error("boom")
	assert.Contains(t, buf.String(), "ERROR boom")
	assert.NotContains(t, buf.String(), "[")
}
