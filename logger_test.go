package softgpu

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"sync"
	"testing"
)

// captureLogs routes the package logger into a buffer for the rest of the
// test.
func captureLogs(t *testing.T, level slog.Level) *bytes.Buffer {
	t.Helper()
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })

	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: level})))
	return &buf
}

func TestNopHandler(t *testing.T) {
	var h slog.Handler = nopHandler{}
	for _, level := range []slog.Level{slog.LevelDebug, slog.LevelInfo, slog.LevelWarn, slog.LevelError} {
		if h.Enabled(context.Background(), level) {
			t.Errorf("Enabled(%v) = true", level)
		}
	}
	if err := h.Handle(context.Background(), slog.Record{}); err != nil {
		t.Errorf("Handle() = %v", err)
	}
	if _, ok := h.WithAttrs([]slog.Attr{slog.Int("n", 1)}).(nopHandler); !ok {
		t.Error("WithAttrs() left the nop handler")
	}
	if _, ok := h.WithGroup("g").(nopHandler); !ok {
		t.Error("WithGroup() left the nop handler")
	}
}

func TestSetLogger(t *testing.T) {
	if Logger().Enabled(context.Background(), slog.LevelError) {
		t.Fatal("default logger is not silent")
	}

	buf := captureLogs(t, slog.LevelDebug)
	Logger().Info("hello", "frame", 3)
	if !strings.Contains(buf.String(), "frame=3") {
		t.Errorf("output = %q", buf.String())
	}

	SetLogger(nil)
	if l := Logger(); l == nil || l.Enabled(context.Background(), slog.LevelError) {
		t.Error("SetLogger(nil) did not restore the silent logger")
	}
}

func TestPipelineLogsRejectedDraw(t *testing.T) {
	buf := captureLogs(t, slog.LevelWarn)
	p := mustNew(t, 4, 4)

	prog := colorProgram()
	prog.FragmentInputs = 3
	if err := p.Draw(Quad(1), prog, nil); err == nil {
		t.Fatal("Draw() with mismatched arity succeeded")
	}
	if !strings.Contains(buf.String(), "draw rejected") {
		t.Errorf("no warning for the rejected draw: %s", buf.String())
	}
}

func TestPipelineLogsInvalidConfig(t *testing.T) {
	buf := captureLogs(t, slog.LevelWarn)
	if _, err := New(4, 4, WithSampleCount(3)); err == nil {
		t.Fatal("New() with 3 samples succeeded")
	}
	if !strings.Contains(buf.String(), "count=3") {
		t.Errorf("no warning for the sample count: %s", buf.String())
	}
}

func TestPipelineLogsFrames(t *testing.T) {
	buf := captureLogs(t, slog.LevelDebug)
	p := mustNew(t, 4, 4)

	if err := p.Resize(8, 6); err != nil {
		t.Fatalf("Resize() = %v", err)
	}
	if err := p.Draw(fullscreen(0), clipProgram(solid(White), 0), nil); err != nil {
		t.Fatal(err)
	}
	p.Present()

	out := buf.String()
	for _, want := range []string{"pipeline created", "resized", "width=8", "frame presented", "draws=1"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output lacks %q:\n%s", want, out)
		}
	}
}

func TestLoggerConcurrentAccess(t *testing.T) {
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })

	var wg sync.WaitGroup
	for range 50 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			Logger().Debug("read")
		}()
		go func() {
			defer wg.Done()
			SetLogger(slog.Default())
			SetLogger(nil)
		}()
	}
	wg.Wait()
}

func BenchmarkLoggerDisabled(b *testing.B) {
	l := Logger()
	b.ReportAllocs()
	for b.Loop() {
		l.Debug("frame presented", "draws", 1)
	}
}
