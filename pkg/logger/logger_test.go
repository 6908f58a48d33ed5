package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	logr, err := New("recorder", "DEBUG")
	require.NoError(t, err)
	assert.True(t, logr.Core().Enabled(zapcore.DebugLevel))
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	_, err := New("recorder", "loud")
	assert.Error(t, err)
}
