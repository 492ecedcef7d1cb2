package logging

import (
	"bytes"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetLevel(t *testing.T) {
	l := GetLogger()
	require.NoError(t, SetLevel(l, "warn"))
	assert.Equal(t, logrus.WarnLevel, l.GetLevel())

	assert.Error(t, SetLevel(l, "loud"))
	assert.Equal(t, logrus.WarnLevel, l.GetLevel(), "invalid level leaves logger unchanged")
}

func TestDiscard(t *testing.T) {
	l := Discard()
	assert.Equal(t, io.Discard, l.Out)

	var buf bytes.Buffer
	l.SetOutput(&buf)
	l.WithField("cable", "x").Info("kept")
	assert.Contains(t, buf.String(), "cable=x")
}
