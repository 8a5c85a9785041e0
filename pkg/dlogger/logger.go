// Package dlogger exposes a simple zap logger, with log levels
package dlogger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	// LogLevelError sets the log level to error
	LogLevelError = "error"

	// LogLevelWarn sets the log level to warn
	LogLevelWarn = "warn"

	// LogLevelInfo sets the log level to info
	LogLevelInfo = "info"

	// LogLevelDebug sets the log level to debug
	LogLevelDebug = "debug"

	// LogLevelNone sets logger to no logging
	LogLevelNone = "none"
)

// Option tunes the logger configuration
type Option func(*zap.Config)

// WithConsole uses a human-friendly console encoder, for interactive use
func WithConsole() Option {
	return func(cfg *zap.Config) {
		cfg.Encoding = "console"
		cfg.EncoderConfig = zap.NewDevelopmentEncoderConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		cfg.EncoderConfig.EncodeCaller = nil
		cfg.DisableStacktrace = true
		cfg.Sampling = nil
	}
}

// WithOutput redirects log output to the given paths (e.g. "stdout", a file)
func WithOutput(paths ...string) Option {
	return func(cfg *zap.Config) {
		cfg.OutputPaths = paths
	}
}

// GetLogger returns a zap logger with the specified level
func GetLogger(logLevel string, opts ...Option) (*zap.Logger, error) {
	if logLevel == LogLevelNone {
		return zap.NewNop(), nil
	}
	zapConfig := zap.NewProductionConfig()
	var lvl zapcore.Level
	err := lvl.UnmarshalText([]byte(logLevel))
	if err != nil {
		return nil, err
	}
	zapConfig.Level = zap.NewAtomicLevelAt(lvl)
	for _, apply := range opts {
		apply(&zapConfig)
	}
	logger, err := zapConfig.Build()
	if err != nil {
		return nil, err
	}
	return logger, nil
}

// MustGetLogger returns a zap logger with the specified level or panics
func MustGetLogger(logLevel string, opts ...Option) *zap.Logger {
	l, err := GetLogger(logLevel, opts...)
	if err != nil {
		panic(err)
	}
	return l
}
