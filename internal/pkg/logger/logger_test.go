package logger

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, DEBUG, ParseLevel("debug"))
	assert.Equal(t, WARN, ParseLevel(" WARN "))
	assert.Equal(t, ERROR, ParseLevel("error"))
	assert.Equal(t, INFO, ParseLevel(""))
	assert.Equal(t, INFO, ParseLevel("verbose"))
}

func TestLoggerFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(WARN, &buf)

	l.Info("trip %s loaded", "GALR210214")
	assert.Empty(t, buf.String())

	l.Warn("slow query: %dms", 250)
	assert.Contains(t, buf.String(), "[WARN] slow query: 250ms")

	l.SetLevel(DEBUG)
	l.Debug("debugging")
	assert.Contains(t, buf.String(), "[DEBUG] debugging")
	assert.Equal(t, DEBUG, l.GetLevel())
}
