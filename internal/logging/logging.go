package logging

import (
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	EnvLevel  = "GAMGMT_LOG_LEVEL"
	EnvFormat = "GAMGMT_LOG_FORMAT"
)

var (
	initOnce sync.Once
	logger   *zap.Logger
	level    = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	verbose  bool
)

// L returns the shared logger, initializing it on first use. It always
// writes to stderr so stdout stays reserved for the report.
func L() *zap.Logger {
	initOnce.Do(func() {
		logger = newLogger()
	})
	return logger
}

// SetVerbose lowers the level to debug
func SetVerbose(on bool) {
	if on {
		verbose = true
		level.SetLevel(zapcore.DebugLevel)
	}
}

// Sync flushes any buffered log entries
func Sync() error {
	if logger != nil {
		return logger.Sync()
	}
	return nil
}

func newLogger() *zap.Logger {
	config := zap.NewProductionConfig()

	if !verbose {
		level.SetLevel(parseLevel(os.Getenv(EnvLevel)))
	}
	config.Level = level

	if strings.EqualFold(os.Getenv(EnvFormat), "json") {
		config.Encoding = "json"
	} else {
		config.Encoding = "console"
		config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		config.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	}

	config.OutputPaths = []string{"stderr"}
	config.ErrorOutputPaths = []string{"stderr"}

	logger, err := config.Build()
	if err != nil {
		logger, _ = zap.NewDevelopment()
	}

	return logger
}

func parseLevel(value string) zapcore.Level {
	switch strings.ToLower(value) {
	case "debug":
		return zapcore.DebugLevel
	case "info":
		return zapcore.InfoLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.WarnLevel
	}
}
