package cli

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/gogpu/psdkit"
)

func TestNewLoggerLevels(t *testing.T) {
	tests := []struct {
		name    string
		level   log.Level
		logFunc func(*log.Logger)
		wantLog bool
	}{
		{"info at info level", log.InfoLevel, func(l *log.Logger) { l.Info("test") }, true},
		{"debug at info level", log.InfoLevel, func(l *log.Logger) { l.Debug("test") }, false},
		{"debug at debug level", log.DebugLevel, func(l *log.Logger) { l.Debug("test") }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.logFunc(newLogger(&buf, tt.level))
			if got := buf.Len() > 0; got != tt.wantLog {
				t.Errorf("logged = %v, want %v", got, tt.wantLog)
			}
		})
	}
}

func TestInstallLogger(t *testing.T) {
	defer psdkit.SetLogger(nil)

	var buf bytes.Buffer
	installLogger(newLogger(&buf, log.DebugLevel))
	if !psdkit.Logger().Enabled(context.Background(), slog.LevelDebug) {
		t.Fatal("library logger not enabled at debug")
	}
	psdkit.Logger().Info("psdkit: hello", "layers", 3)
	if out := buf.String(); !strings.Contains(out, "psdkit: hello") || !strings.Contains(out, "layers=3") {
		t.Errorf("output = %q", out)
	}
}

func TestLoggerFromContext(t *testing.T) {
	if loggerFromContext(context.Background()) != log.Default() {
		t.Error("empty context should yield the default logger")
	}
	l := newLogger(&bytes.Buffer{}, log.InfoLevel)
	if loggerFromContext(withLogger(context.Background(), l)) != l {
		t.Error("logger not retrieved from context")
	}
}

func TestProgressDone(t *testing.T) {
	var buf bytes.Buffer
	newProgress(newLogger(&buf, log.InfoLevel)).done("Restored")
	if !strings.Contains(buf.String(), "Restored (") {
		t.Errorf("output = %q", buf.String())
	}
}
