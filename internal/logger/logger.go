package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const defaultOutput = "stderr"

// Options configures the CLI logger.
type Options struct {
	JSON  bool
	Debug bool
	// Output is a zap sink path. Empty means stderr so that stdout stays free for
	// command output such as JSON alignment records.
	Output string
}

func New(opts Options) (*zap.Logger, error) {
	cfg := zap.Config{
		Encoding:         encoding(opts.JSON),
		Level:            zap.NewAtomicLevelAt(level(opts.Debug)),
		OutputPaths:      []string{output(opts.Output)},
		ErrorOutputPaths: []string{defaultOutput},
		EncoderConfig:    encoderConfig(),
	}
	logger, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	defer logger.Sync()

	return logger, nil
}

func encoderConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		MessageKey: "step",

		LevelKey:    "level",
		EncodeLevel: zapcore.LowercaseLevelEncoder,

		TimeKey:    "time",
		EncodeTime: zapcore.RFC3339TimeEncoder,

		CallerKey:    "caller",
		EncodeCaller: zapcore.ShortCallerEncoder,
	}
}

func encoding(json bool) string {
	if json {
		return "json"
	}
	return "console"
}

func level(debug bool) zapcore.Level {
	if debug {
		return zapcore.DebugLevel
	}
	return zapcore.InfoLevel
}

func output(path string) string {
	if path == "" {
		return defaultOutput
	}
	return path
}
