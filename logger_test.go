package psdkit

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"testing"
)

// recorder is a slog.Handler that keeps every record it receives.
type recorder struct {
	mu      sync.Mutex
	records []slog.Record
}

func (r *recorder) Enabled(context.Context, slog.Level) bool { return true }

func (r *recorder) Handle(_ context.Context, rec slog.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, rec.Clone())
	return nil
}

func (r *recorder) WithAttrs([]slog.Attr) slog.Handler { return r }
func (r *recorder) WithGroup(string) slog.Handler      { return r }

// at returns the records logged at level whose message contains msg.
func (r *recorder) at(level slog.Level, msg string) []slog.Record {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []slog.Record
	for _, rec := range r.records {
		if rec.Level == level && strings.Contains(rec.Message, msg) {
			out = append(out, rec)
		}
	}
	return out
}

func attr(rec slog.Record, key string) (slog.Value, bool) {
	var v slog.Value
	found := false
	rec.Attrs(func(a slog.Attr) bool {
		if a.Key == key {
			v, found = a.Value, true
			return false
		}
		return true
	})
	return v, found
}

// record installs a recorder as the package logger for the test.
func record(t *testing.T) *recorder {
	t.Helper()
	rec := &recorder{}
	SetLogger(slog.New(rec))
	t.Cleanup(func() { SetLogger(nil) })
	return rec
}

func TestLoggerSilentByDefault(t *testing.T) {
	SetLogger(slog.New(&recorder{}))
	SetLogger(nil)

	l := Logger()
	if l == nil {
		t.Fatal("Logger() = nil after SetLogger(nil)")
	}
	for _, level := range []slog.Level{slog.LevelDebug, slog.LevelInfo, slog.LevelWarn, slog.LevelError} {
		if l.Enabled(context.Background(), level) {
			t.Errorf("silent logger enabled at %v", level)
		}
	}
	if _, ok := (nopHandler{}).WithGroup("g").(nopHandler); !ok {
		t.Error("nopHandler.WithGroup did not return a nopHandler")
	}
}

func TestEncodeLogsOffCanvasLayer(t *testing.T) {
	rec := record(t)

	set := NewLayerSet(20, 20,
		NewLayer("view", solid(10, 10, rgba(1, 2, 3, 255)), 5, 5),
		NewLayer("lost", solid(4, 4, rgba(9, 9, 9, 255)), 40, -30),
	)
	if _, err := EncodeBytes(set); err != nil {
		t.Fatal(err)
	}

	warns := rec.at(slog.LevelWarn, "outside canvas")
	if len(warns) != 1 {
		t.Fatalf("got %d off-canvas warnings, want 1", len(warns))
	}
	if v, ok := attr(warns[0], "layer"); !ok || v.String() != "lost" {
		t.Errorf("layer attr = %v, want lost", v)
	}
	if n := len(rec.at(slog.LevelDebug, "encoded document")); n != 1 {
		t.Errorf("got %d encode records, want 1", n)
	}
}

func TestStrokeVersionsLogEmptyParts(t *testing.T) {
	rec := record(t)

	set, err := Restore(unfoldedTemplate())
	if err != nil {
		t.Fatal(err)
	}
	p3 := set.Layers[set.Index(RolePart3)]
	set.Layers[set.Index(RolePart3)] = p3.moved(NewRasterBuffer(p3.Width(), p3.Height()), p3.X, p3.Y)

	if _, err := StrokeVersions(context.Background(), set, []int{1, 2, 3}, DefaultStrokeSpec()); err != nil {
		t.Fatal(err)
	}

	// One warning per version, logged from concurrent goroutines.
	warns := rec.at(slog.LevelWarn, "skipping stroke")
	if len(warns) != 3 {
		t.Fatalf("got %d warnings, want 3", len(warns))
	}
	for _, w := range warns {
		if v, _ := attr(w, "layer"); v.String() != "part3" {
			t.Errorf("warning names layer %v, want part3", v)
		}
	}
}

func TestPipelineLogsStages(t *testing.T) {
	rec := record(t)

	if _, err := PrepareTemplate(context.Background(), unfoldedTemplate(), WithStrokeWidths(2)); err != nil {
		t.Fatal(err)
	}
	for _, msg := range []string{"template restored", "stroke versions built"} {
		if n := len(rec.at(slog.LevelInfo, msg)); n != 1 {
			t.Errorf("%q logged %d times, want 1", msg, n)
		}
	}
}
