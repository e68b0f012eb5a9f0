// Package logger builds the zap logger shared by the CLI and the HTTP server.
package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New returns a logger writing to stderr so that stdout stays reserved for
// reports. json selects the JSON encoder; debug lowers the level to debug.
func New(json bool, debug bool) (*zap.Logger, error) {
	level := zapcore.InfoLevel
	encoding := "console"

	if json {
		encoding = "json"
	}

	if debug {
		level = zapcore.DebugLevel
	}

	cfg := zap.Config{
		Encoding:         encoding,
		Level:            zap.NewAtomicLevelAt(level),
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
		EncoderConfig: zapcore.EncoderConfig{
			MessageKey: "msg",

			LevelKey:    "level",
			EncodeLevel: zapcore.LowercaseLevelEncoder,

			TimeKey:    "time",
			EncodeTime: zapcore.RFC3339TimeEncoder,

			CallerKey:    "caller",
			EncodeCaller: zapcore.ShortCallerEncoder,
		},
	}
	return cfg.Build()
}
