package engine

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/go-drift/frameui/pkg/config"
	"github.com/go-drift/frameui/pkg/graphics"
	"github.com/go-drift/frameui/pkg/layout"
)

func drawScene(e *Engine, withOverlay bool) {
	e.BeginLayer("win")
	e.Canvas().DrawRect(graphics.Rect{W: 10, H: 10}, graphics.Fill(graphics.ColorWhite))
	e.BeginElement("a")
	e.Canvas().DrawText("a", graphics.Offset{X: 1, Y: 2}, graphics.TextStyle{})
	e.BeginElement("a1")
	e.Canvas().DrawLine(graphics.Offset{}, graphics.Offset{X: 1, Y: 1}, graphics.Stroke(graphics.ColorRed, 1))
	e.EndElement()
	e.EndElement()
	e.BeginElement("b")
	e.Canvas().Translate(5, 5)
	e.EndElement()
	e.EndLayer()

	if withOverlay {
		e.BeginLayer("overlay")
		e.Canvas().DrawRect(graphics.Rect{W: 1, H: 1}, graphics.Fill(graphics.ColorBlue))
		e.EndLayer()
	}
}

func TestRender_DrawOrder(t *testing.T) {
	var buf bytes.Buffer
	opts := noFlow
	opts.Backend = &graphics.DumpCanvas{W: &buf}
	e := newTestEngine(t, opts)

	frame(e, func() { drawScene(e, true) })
	want := strings.Join([]string{
		"layer win z=0",
		"  save",
		"  rect [0 0 10 10] fill #FFFFFFFF",
		"  restore",
		"  save",
		`  text "a" at 1,2 #00000000`,
		"  restore",
		"  save",
		"  line 0,0 -> 1,1 #FFFF0000",
		"  restore",
		"  save",
		"  translate 5,5",
		"  restore",
		"layer overlay z=1",
		"  save",
		"  rect [0 0 1 1] fill #FF0000FF",
		"  restore",
		"",
	}, "\n")
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("draw output mismatch (-want +got):\n%s", diff)
	}
}

func TestRender_SkipsUndeclaredLayers(t *testing.T) {
	rec := &graphics.Recorder{}
	opts := noFlow
	opts.Backend = rec
	e := newTestEngine(t, opts)

	frame(e, func() { drawScene(e, true) })
	full := rec.Len()
	rec.Reset()

	stats := frame(e, func() { drawScene(e, false) })
	if rec.Len() != full-3 {
		t.Errorf("recorded %d ops, want %d", rec.Len(), full-3)
	}
	if stats.Layers != 1 {
		t.Errorf("Layers = %d, want 1", stats.Layers)
	}
	if !e.HasLayer("overlay") {
		t.Error("overlay expires at the next frame start, not at render")
	}
}

func TestRender_EmptyFrame(t *testing.T) {
	e := newTestEngine(t, noFlow)
	stats := e.Render()
	if stats.Frame != 1 || stats.Elements != 0 {
		t.Errorf("unexpected stats %+v", stats)
	}
	if e.Render().Frame != 2 {
		t.Error("each Render completes one frame")
	}
}

func TestRender_Stats(t *testing.T) {
	e := newTestEngine(t, noFlow)
	e.Pointer().Move(1, 1)
	decl := func() {
		e.BeginLayer("win")
		place(e, 0, 0, 10, 10)
		e.BeginElement("a")
		place(e, 0, 0, 5, 5)
		e.EndElement()
		e.EndLayer()
	}
	frame(e, decl)
	stats := frame(e, decl)

	if stats.Frame != 2 || stats.Elements != 2 || stats.Candidates != 1 || stats.Hovered != "win/a" {
		t.Errorf("unexpected stats %+v", stats)
	}
	// Two keys, one record per parity buffer each.
	if stats.Pooled != 4 {
		t.Errorf("Pooled = %d, want 4", stats.Pooled)
	}
}

func TestRender_PoolSweepsAbsentKeys(t *testing.T) {
	e := newTestEngine(t, noFlow)
	frame(e, func() {
		e.BeginLayer("win")
		e.BeginElement("gone")
		e.EndElement()
		e.EndLayer()
	})
	frame(e, func() { declareLayers(e, "win") })
	stats := frame(e, func() { declareLayers(e, "win") })
	if stats.Swept != 1 {
		t.Errorf("Swept = %d, want 1", stats.Swept)
	}
}

func TestAbort_KeepsLastResolvedResults(t *testing.T) {
	e := newTestEngine(t, noFlow)
	e.Pointer().Move(1, 1)
	frame(e, func() {
		e.BeginLayer("win")
		place(e, 0, 0, 10, 10)
		e.EndLayer()
	})

	e.BeginLayer("win")
	e.BeginElement("half")
	if !e.InFrame() {
		t.Fatal("expected a frame in progress")
	}
	e.Abort()

	if e.InFrame() || e.Current() != nil {
		t.Error("Abort should close every open layer")
	}
	if key, _ := e.HoveredKey(); key != "win" {
		t.Errorf("hovered = %q, want win", key)
	}
	frame(e, func() { declareLayers(e, "win") })
}

func TestTrace_RecordsFrames(t *testing.T) {
	opts := noFlow
	opts.TraceCapacity = 2
	e := newTestEngine(t, opts)
	for n := 0; n < 3; n++ {
		frame(e, func() { drawScene(e, false) })
	}

	timeline := e.Trace().Snapshot()
	if len(timeline.Samples) != 2 {
		t.Fatalf("samples = %d, want 2", len(timeline.Samples))
	}
	if timeline.Samples[0].Frame != 2 || timeline.Samples[1].Frame != 3 {
		t.Errorf("expected frames 2 and 3, got %d and %d", timeline.Samples[0].Frame, timeline.Samples[1].Frame)
	}
	if c := timeline.Samples[1].Counts; c.Elements != 4 || c.Layers != 1 {
		t.Errorf("unexpected counts %+v", c)
	}
	if e.Trace().Capacity() != 2 || e.Trace().Threshold() != defaultFrameTraceThreshold {
		t.Error("unexpected trace buffer configuration")
	}
}

func TestFrameTraceBuffer_Dropped(t *testing.T) {
	b := NewFrameTraceBuffer(0, time.Millisecond)
	if b.Capacity() != frameTraceSamplesDefault {
		t.Errorf("Capacity() = %d", b.Capacity())
	}
	b.Add(FrameSample{Frame: 1}, 2*time.Millisecond)
	b.Add(FrameSample{Frame: 2}, time.Microsecond)
	tl := b.Snapshot()
	if tl.DroppedFrames != 1 || len(tl.Samples) != 2 || tl.ThresholdMs != 1 {
		t.Errorf("unexpected timeline %+v", tl)
	}
	if NewFrameTraceBuffer(1, 0).Snapshot().Samples != nil {
		t.Error("empty buffer should have no samples")
	}
}

func TestTraceDisabledByDefault(t *testing.T) {
	if New(Options{}).Trace() != nil {
		t.Error("expected no trace buffer without TraceCapacity")
	}
}

func TestOptionsFromConfig(t *testing.T) {
	r, err := (&config.Config{
		Hover:  config.HoverConfig{TieBreak: "first"},
		Layout: config.LayoutConfig{DefaultFlow: "none"},
		Trace:  config.TraceConfig{Capacity: 8, Threshold: "5ms"},
	}).Resolve()
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	opts := OptionsFromConfig(r)
	if opts.TieBreak != TieBreakFirst || opts.TraceCapacity != 8 || opts.TraceThreshold != 5*time.Millisecond {
		t.Errorf("unexpected options %+v", opts)
	}
	if opts.DefaultConstraints == nil || len(opts.DefaultConstraints) != 0 {
		t.Error("flow none should disable default constraints")
	}

	r.DefaultFlow = layout.FlowVertical
	if got := OptionsFromConfig(r).DefaultConstraints; len(got) != 1 {
		t.Errorf("vertical flow should yield one default constraint, got %d", len(got))
	}
	if OptionsFromConfig(nil).TraceCapacity != 0 {
		t.Error("nil config should yield zero options")
	}
}

func TestLogger_DebugRecords(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	defer SetLogger(nil)

	e := newTestEngine(t, noFlow)
	frame(e, func() {
		e.BeginLayer("win")
		e.BeginElement("a", Focusable)
		e.FocusElement()
		e.EndElement()
		e.EndLayer()
	})
	frame(e, func() {})
	frame(e, func() {})

	out := buf.String()
	for _, want := range []string{"focus changed", "layers expired", "pool swept"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
	if !Logger().Enabled(context.Background(), slog.LevelError) {
		t.Error("expected configured logger to be enabled")
	}
	SetLogger(nil)
	if Logger().Enabled(context.Background(), slog.LevelError) {
		t.Error("default logger should be disabled")
	}
}

func TestFlagsString(t *testing.T) {
	tests := []struct {
		flags Flags
		want  string
	}{
		{0, "none"},
		{Focusable, "focusable"},
		{Focusable | Persistent, "focusable|persistent"},
		{FlagUser << 1, "user"},
	}
	for _, tt := range tests {
		if got := tt.flags.String(); got != tt.want {
			t.Errorf("Flags(%d).String() = %q, want %q", tt.flags, got, tt.want)
		}
	}
}

func TestFrameTraceBuffer_Slowest(t *testing.T) {
	b := NewFrameTraceBuffer(3, time.Millisecond)
	for i, ms := range []float64{4, 1, 9, 4} {
		b.Add(FrameSample{Frame: uint64(i + 1), FrameMs: ms}, time.Duration(ms*float64(time.Millisecond)))
	}
	got := b.Slowest(2)
	if len(got) != 2 || got[0].Frame != 3 || got[1].Frame != 4 {
		t.Errorf("Slowest(2) = %+v, want frames 3 and 4", got)
	}
	// Frame 1 fell out of the window but still counts as dropped.
	if tl := b.Snapshot(); tl.DroppedFrames != 3 || tl.Samples[0].Frame != 2 {
		t.Errorf("unexpected timeline %+v", tl)
	}
	if len(b.Slowest(-1)) != 0 {
		t.Error("negative n should return nothing")
	}
}
