package log_test

import (
	"context"
	"testing"

	"github.com/jrife/profile/utils/log"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestLoggerFromContext(t *testing.T) {
	defaultLogger := zap.NewNop()
	logger, ctx := log.LoggerFromContext(context.Background(), defaultLogger)

	if logger != defaultLogger {
		t.Fatalf("expected the default logger")
	}

	if log.Logger(ctx) != defaultLogger {
		t.Fatalf("expected the default logger to be attached to the context")
	}

	other := zap.NewExample()

	if logger, _ := log.LoggerFromContext(log.WithLogger(ctx, other), defaultLogger); logger != other {
		t.Fatalf("expected the logger of the context")
	}
}

func TestWithFields(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	parent := log.WithFields(context.Background(), zap.String("a", "1"))
	first := log.WithFields(parent, zap.String("b", "2"))
	second := log.WithFields(parent, zap.String("c", "3"))

	log.WithContext(first, zap.New(core)).Info("first")
	log.WithContext(second, zap.New(core)).Info("second")

	entries := logs.All()

	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}

	if fields := entries[0].ContextMap(); fields["a"] != "1" || fields["b"] != "2" || fields["c"] != nil {
		t.Fatalf("unexpected fields %v", fields)
	}

	if fields := entries[1].ContextMap(); fields["a"] != "1" || fields["c"] != "3" || fields["b"] != nil {
		t.Fatalf("unexpected fields %v", fields)
	}
}
