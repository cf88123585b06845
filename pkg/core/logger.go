package core

import (
	"fmt"

	"go.uber.org/zap"
)

// DefaultLogger implements Logger by writing to stdout
type DefaultLogger struct{}

func (dl *DefaultLogger) Printf(format string, args ...interface{}) {
	fmt.Printf(format, args...)
}

// NewDefaultLogger creates a new default logger
func NewDefaultLogger() Logger {
	return &DefaultLogger{}
}

// ZapLogger adapts a zap sugared logger to the Logger interface
type ZapLogger struct {
	sugar *zap.SugaredLogger
}

// NewZapLogger wraps a zap logger so library code can log through it
func NewZapLogger(logger *zap.Logger) Logger {
	return &ZapLogger{sugar: logger.Sugar()}
}

// Printf implements Logger. Trailing newlines are stripped since zap
// terminates each entry itself.
func (zl *ZapLogger) Printf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	for len(msg) > 0 && msg[len(msg)-1] == '\n' {
		msg = msg[:len(msg)-1]
	}
	zl.sugar.Info(msg)
}
