// Package logging builds the host's zap loggers.
package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options control how the host logger is built.
type Options struct {
	// Level is one of "debug", "info", "warn", "error".
	Level string
	// Development switches to a colorized console encoder with stack traces.
	Development bool
	// Paths are zap output sinks; stdout when empty.
	Paths []string
}

// New builds a logger for the host process.
func New(opts Options) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(opts.Level)); err != nil {
		return nil, fmt.Errorf("logging: bad level %q: %w", opts.Level, err)
	}
	paths := opts.Paths
	if len(paths) == 0 {
		paths = []string{"stdout"}
	}

	cfg := zap.Config{
		Level:             zap.NewAtomicLevelAt(level),
		Development:       opts.Development,
		Encoding:          "json",
		EncoderConfig:     encoderConfig(opts.Development),
		OutputPaths:       paths,
		ErrorOutputPaths:  []string{"stderr"},
		DisableStacktrace: !opts.Development,
	}
	if opts.Development {
		cfg.Encoding = "console"
	}
	return cfg.Build()
}

// Must builds a logger or falls back to a no-op one. Used at process start
// where a broken log config should not stop the host.
func Must(opts Options) *zap.Logger {
	log, err := New(opts)
	if err != nil {
		return zap.NewNop()
	}
	return log
}

func encoderConfig(development bool) zapcore.EncoderConfig {
	ec := zapcore.EncoderConfig{
		TimeKey:        "timestamp",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		FunctionKey:    zapcore.OmitKey,
		MessageKey:     "message",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.SecondsDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}
	if development {
		ec.TimeKey = "T"
		ec.LevelKey = "L"
		ec.CallerKey = "C"
		ec.MessageKey = "M"
		ec.StacktraceKey = "S"
		ec.EncodeLevel = zapcore.CapitalColorLevelEncoder
		ec.EncodeDuration = zapcore.StringDurationEncoder
	}
	return ec
}
