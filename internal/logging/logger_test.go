package logging_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/alnah/go-htmlinline/internal/logging"
)

func TestNew(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		level    string
		expected log.Level
	}{
		{"debug level", "debug", log.DebugLevel},
		{"info level", "info", log.InfoLevel},
		{"warn level", "warn", log.WarnLevel},
		{"warning level", "warning", log.WarnLevel},
		{"error level", "error", log.ErrorLevel},
		{"invalid defaults to info", "invalid", log.InfoLevel},
		{"empty defaults to info", "", log.InfoLevel},
		{"case insensitive DEBUG", "DEBUG", log.DebugLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			logger := logging.New(tt.level)
			if logger == nil {
				t.Fatal("New returned nil logger")
			}
			if logger.GetLevel() != tt.expected {
				t.Errorf("expected level %v, got %v", tt.expected, logger.GetLevel())
			}
		})
	}
}

func TestValidLevel(t *testing.T) {
	t.Parallel()

	for _, level := range []string{"", "debug", "INFO", "warn", "warning", "error"} {
		if !logging.ValidLevel(level) {
			t.Errorf("ValidLevel(%q) = false, want true", level)
		}
	}
	for _, level := range []string{"trace", "fatal", "verbose"} {
		if logging.ValidLevel(level) {
			t.Errorf("ValidLevel(%q) = true, want false", level)
		}
	}
}

func TestNewWithWriter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := logging.NewWithWriter(&buf, "debug")
	logger.Debug("inlined", logging.FieldElement, "script", logging.FieldRef, "main.js")

	out := buf.String()
	for _, want := range []string{"inlined", "element=script", "ref=main.js"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output %q should contain %q", out, want)
		}
	}
}

func TestContext(t *testing.T) {
	t.Parallel()

	t.Run("attached logger is returned", func(t *testing.T) {
		t.Parallel()

		logger := logging.New("error")
		ctx := logging.WithLogger(context.Background(), logger)
		if got := logging.FromContext(ctx); got != logger {
			t.Error("FromContext did not return the attached logger")
		}
	})

	t.Run("empty context falls back to default", func(t *testing.T) {
		t.Parallel()

		if got := logging.FromContext(context.Background()); got != logging.Default() {
			t.Error("FromContext should fall back to Default()")
		}
	})

	t.Run("HasLogger", func(t *testing.T) {
		t.Parallel()

		if logging.HasLogger(context.Background()) {
			t.Error("HasLogger(empty) = true, want false")
		}
		ctx := logging.WithLogger(context.Background(), logging.New("error"))
		if !logging.HasLogger(ctx) {
			t.Error("HasLogger(attached) = false, want true")
		}
	})

	t.Run("nil context falls back to default", func(t *testing.T) {
		t.Parallel()

		//nolint:staticcheck // nil context is the case under test
		if got := logging.FromContext(nil); got != logging.Default() {
			t.Error("FromContext(nil) should fall back to Default()")
		}
	})
}
