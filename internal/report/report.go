// Package report is the generator's structured logging boundary.
package report

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Reporter receives generator diagnostics as a message plus key/value pairs.
type Reporter interface {
	Debug(msg string, keysAndValues ...any)
	Info(msg string, keysAndValues ...any)
	Warn(msg string, keysAndValues ...any)
	Error(msg string, keysAndValues ...any)
	// Child returns a reporter scoped under name.
	Child(name string) Reporter
}

type zapReporter struct {
	logger *zap.SugaredLogger
}

// New builds a development logger at level. An unknown level falls back to
// info; a logger that cannot be built falls back to a no-op logger.
func New(level string, noColor bool) Reporter {
	config := zap.NewDevelopmentConfig()
	config.DisableStacktrace = true

	parsed, err := zapcore.ParseLevel(level)
	if err != nil {
		parsed = zapcore.InfoLevel
	}
	config.Level = zap.NewAtomicLevelAt(parsed)
	if !noColor {
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	logger, err := config.Build()
	if err != nil {
		logger = zap.NewNop()
	}
	return FromLogger(logger)
}

// FromLogger wraps an existing zap logger.
func FromLogger(logger *zap.Logger) Reporter {
	return &zapReporter{logger: logger.Sugar()}
}

// NewNop returns a reporter that discards everything.
func NewNop() Reporter {
	return FromLogger(zap.NewNop())
}

func (r *zapReporter) Debug(msg string, keysAndValues ...any) {
	r.logger.Debugw(msg, keysAndValues...)
}

func (r *zapReporter) Info(msg string, keysAndValues ...any) {
	r.logger.Infow(msg, keysAndValues...)
}

func (r *zapReporter) Warn(msg string, keysAndValues ...any) {
	r.logger.Warnw(msg, keysAndValues...)
}

func (r *zapReporter) Error(msg string, keysAndValues ...any) {
	r.logger.Errorw(msg, keysAndValues...)
}

func (r *zapReporter) Child(name string) Reporter {
	return &zapReporter{logger: r.logger.Named(name)}
}

// Sync flushes a reporter created by New or FromLogger.
func Sync(r Reporter) {
	if z, ok := r.(*zapReporter); ok {
		_ = z.logger.Sync()
	}
}
