// Package zaplog adapts go.uber.org/zap to the log.Logger interface.
package zaplog

import (
	"go.uber.org/zap"

	"github.com/portside/ftpd/log"
)

type logger struct {
	s *zap.SugaredLogger
}

// New wraps an existing zap logger.
func New(z *zap.Logger) log.Logger {
	return &logger{s: z.Sugar()}
}

// Default returns a production-configured logger.
func Default() log.Logger {
	z, err := zap.NewProduction()
	if err != nil {
		z = zap.NewNop()
	}
	return New(z)
}

func (l *logger) Debug(event string, keyvals ...any) { l.s.Debugw(event, keyvals...) }
func (l *logger) Info(event string, keyvals ...any)  { l.s.Infow(event, keyvals...) }
func (l *logger) Warn(event string, keyvals ...any)  { l.s.Warnw(event, keyvals...) }
func (l *logger) Error(event string, keyvals ...any) { l.s.Errorw(event, keyvals...) }

func (l *logger) With(keyvals ...any) log.Logger {
	return &logger{s: l.s.With(keyvals...)}
}
