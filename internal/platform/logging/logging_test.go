package logging_test

import (
	"testing"

	"go.uber.org/zap/zapcore"

	"neurocalm/internal/platform/logging"
)

func TestNewHonoursLevel(t *testing.T) {
	t.Parallel()
	logger, err := logging.New("error")
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}
	if logger.Core().Enabled(zapcore.WarnLevel) {
		t.Fatalf("warn must be disabled at error level")
	}
	if !logger.Core().Enabled(zapcore.ErrorLevel) {
		t.Fatalf("error must be enabled")
	}
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	t.Parallel()
	if _, err := logging.New("loud"); err == nil {
		t.Fatalf("expected parse failure")
	}
}
