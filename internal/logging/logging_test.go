package logging

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func resetLoggerForTest() {
	initOnce = sync.Once{}
	logger = nil
	level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	verbose = false
}

func TestParseLevelMappings(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, parseLevel("debug"))
	assert.Equal(t, zapcore.InfoLevel, parseLevel("INFO"))
	assert.Equal(t, zapcore.ErrorLevel, parseLevel("error"))
	assert.Equal(t, zapcore.WarnLevel, parseLevel("warn"))
	assert.Equal(t, zapcore.WarnLevel, parseLevel(""))
}

func TestLoggerSingleton(t *testing.T) {
	resetLoggerForTest()
	assert.Same(t, L(), L())
}

func TestEnvironmentLevel(t *testing.T) {
	resetLoggerForTest()
	t.Setenv(EnvLevel, "error")

	l := L()
	assert.False(t, l.Core().Enabled(zapcore.WarnLevel))
	assert.True(t, l.Core().Enabled(zapcore.ErrorLevel))
}

func TestSetVerbose(t *testing.T) {
	resetLoggerForTest()
	t.Setenv(EnvLevel, "")

	l := L()
	assert.False(t, l.Core().Enabled(zapcore.DebugLevel))

	SetVerbose(false)
	assert.False(t, l.Core().Enabled(zapcore.DebugLevel))

	SetVerbose(true)
	assert.True(t, l.Core().Enabled(zapcore.DebugLevel))
}

func TestVerboseBeforeFirstUse(t *testing.T) {
	resetLoggerForTest()
	t.Setenv(EnvLevel, "error")

	SetVerbose(true)
	assert.True(t, L().Core().Enabled(zapcore.DebugLevel))
}

func TestSyncWithoutLogger(t *testing.T) {
	resetLoggerForTest()
	assert.NoError(t, Sync())
}
