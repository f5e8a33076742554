package notify

import (
	"context"

	"go.uber.org/zap"
)

// Logger mirrors notifications into the structured log.
type Logger struct {
	log *zap.Logger
}

func NewLogger(log *zap.Logger) Logger {
	return Logger{log: log}
}

func (l Logger) Notify(_ context.Context, n Notification) {
	if l.log == nil {
		return
	}
	fields := []zap.Field{zap.String("title", n.Title), zap.String("description", n.Description)}
	if n.Variant == VariantDestructive {
		l.log.Warn("notification", fields...)
		return
	}
	l.log.Info("notification", fields...)
}
