package engine

import (
	"slices"
	"sync/atomic"
	"time"

	"github.com/go-drift/frameui/pkg/errors"
	"github.com/go-drift/frameui/pkg/graphics"
	"github.com/go-drift/frameui/pkg/input"
	"github.com/go-drift/frameui/pkg/layout"
)

// Options configures an Engine. The zero value is usable: it creates its own
// watchers, draws nowhere, and lays elements out in a vertical flow.
type Options struct {
	// Backend receives every element's draw buffer at Render. If it also
	// implements graphics.LayerCanvas, each layer is bracketed with
	// BeginLayer/EndLayer. Nil skips drawing.
	Backend graphics.Canvas

	// Pointer, Keyboard and Window are the watchers host listeners write to.
	// Nil creates private ones, reachable through the engine accessors.
	Pointer  *input.Pointer
	Keyboard *input.Keyboard
	Window   *input.Window

	// Host is told when an element gains focus.
	Host input.Host

	// DefaultConstraints is the constraint list every element starts with.
	// Nil means a vertical flow with no gap; a non-nil empty slice disables
	// default placement.
	DefaultConstraints []layout.Constraint

	// TieBreak picks between overlapping unrelated hover candidates on the
	// same layer.
	TieBreak TieBreak

	// TraceCapacity enables the frame trace ring buffer when positive.
	TraceCapacity int
	// TraceThreshold is the frame duration counted as dropped.
	TraceThreshold time.Duration
}

// FrameStats summarizes one rendered frame.
type FrameStats struct {
	Frame         uint64
	Elements      int
	Candidates    int
	Layers        int
	Hovered       string
	Focused       string
	ExpiredLayers []string
	ExpiredState  []string
	Swept         int
	Pooled        int
	Duration      time.Duration
}

// Engine runs the frame lifecycle. Create one with New and drive it from a
// single goroutine: declare, then Render, every frame.
type Engine struct {
	keys   *keyStack
	pool   *pool
	layers *layerStack
	hit    *hitTester
	focus  *focusTracker
	state  *stateStore

	backend  graphics.Canvas
	pointer  *input.Pointer
	keyboard *input.Keyboard
	window   *input.Window
	defaults []layout.Constraint

	frame        uint64
	inFrame      bool
	frameStart   time.Time
	pointerState input.PointerState
	keyEvents    []input.KeyEvent
	stats        FrameStats

	trace      *FrameTraceBuffer
	inspecting atomic.Bool
	inspection atomic.Pointer[FrameInspection]
}

// New creates an Engine.
func New(opts Options) *Engine {
	e := &Engine{
		keys:     newKeyStack(),
		pool:     newPool(),
		layers:   newLayerStack(),
		hit:      &hitTester{tieBreak: opts.TieBreak},
		focus:    newFocusTracker(opts.Host),
		state:    newStateStore(),
		backend:  opts.Backend,
		pointer:  opts.Pointer,
		keyboard: opts.Keyboard,
		window:   opts.Window,
		defaults: opts.DefaultConstraints,
	}
	if e.pointer == nil {
		e.pointer = &input.Pointer{}
	}
	if e.keyboard == nil {
		e.keyboard = &input.Keyboard{}
	}
	if e.window == nil {
		e.window = &input.Window{}
	}
	if e.defaults == nil {
		e.defaults = layout.Defaults(layout.FlowVertical, 0)
	}
	if opts.TraceCapacity > 0 {
		e.trace = NewFrameTraceBuffer(opts.TraceCapacity, opts.TraceThreshold)
	}
	return e
}

// ensureFrame starts a frame on the first declaration after Render.
func (e *Engine) ensureFrame() {
	if e.inFrame {
		return
	}
	e.inFrame = true
	e.frame++
	e.frameStart = time.Now()
	e.stats = FrameStats{Frame: e.frame}

	if removed := e.layers.expire(); len(removed) > 0 {
		e.stats.ExpiredLayers = removed
		Logger().Debug("layers expired", "frame", e.frame, "keys", removed)
	}

	e.pointerState = e.pointer.Sample()
	e.keyEvents = e.keyboard.Sample()
	e.hit.beginFrame(e.pointerState)
	e.focus.beginFrame()
	if e.window.TakeBlur() {
		e.blur("window")
	}
}

// Render finishes the frame: it resolves hover and focus against the built
// tree, replays draw buffers onto the backend bottom layer first, then
// expires state and sweeps the pool. Every layer must have been ended.
// Calling Render with nothing declared renders an empty frame.
func (e *Engine) Render() FrameStats {
	e.ensureFrame()
	if l := e.layers.current(); l != nil {
		errors.Fault("engine.Render", errors.KindFrame, l.key, errors.ErrFrameOpen)
	}
	buildDone := time.Now()

	if e.window.TakeBlur() {
		e.blur("window")
	}
	e.hit.resolve(e.frame)
	if prev, next := e.focus.evaluate(); prev != next {
		Logger().Debug("focus changed", "frame", e.frame, "from", prev, "to", next)
	}
	resolveDone := time.Now()

	drawn := e.layers.drawn(e.frame)
	if e.backend != nil {
		e.draw(drawn)
	}
	drawDone := time.Now()

	e.keys.endFrame()
	if removed := e.state.expire(e.frame); len(removed) > 0 {
		e.stats.ExpiredState = removed
		Logger().Debug("state expired", "frame", e.frame, "keys", removed)
	}
	if n := e.pool.sweep(e.frame); n > 0 {
		e.stats.Swept = n
		Logger().Debug("pool swept", "frame", e.frame, "slots", n)
	}
	e.inFrame = false
	end := time.Now()

	e.stats.Candidates = len(e.hit.candidates)
	e.stats.Layers = len(drawn)
	e.stats.Hovered = e.hit.hovered.key
	e.stats.Focused = e.focus.focused.key
	e.stats.Pooled = e.pool.size()
	e.stats.Duration = end.Sub(e.frameStart)

	if e.trace != nil {
		e.trace.Add(FrameSample{
			Frame:     e.frame,
			Timestamp: e.frameStart.UnixMilli(),
			FrameMs:   durationToMillis(e.stats.Duration),
			Phases: FramePhaseTimings{
				BuildMs:       durationToMillis(buildDone.Sub(e.frameStart)),
				ResolveMs:     durationToMillis(resolveDone.Sub(buildDone)),
				DrawMs:        durationToMillis(drawDone.Sub(resolveDone)),
				BookkeepingMs: durationToMillis(end.Sub(drawDone)),
			},
			Counts: FrameCounts{
				Elements:     e.stats.Elements,
				Candidates:   e.stats.Candidates,
				Layers:       e.stats.Layers,
				StateBuckets: len(e.state.buckets),
				Pooled:       e.stats.Pooled,
			},
		}, e.stats.Duration)
	}
	if e.inspecting.Load() {
		e.publishInspection(drawn)
	}
	return e.stats
}

func (e *Engine) draw(layers []*Layer) {
	lc, composite := e.backend.(graphics.LayerCanvas)
	for _, l := range layers {
		if composite {
			lc.BeginLayer(l.key, l.zIndex)
		}
		drawTree(e.backend, l.root)
		if composite {
			lc.EndLayer()
		}
	}
}

// drawTree replays el and its same-frame descendants in pre-order. Each
// buffer runs inside its own save/restore pair.
func drawTree(canvas graphics.Canvas, el *Element) {
	if el.draw.Len() > 0 {
		canvas.Save()
		el.draw.Replay(canvas)
		canvas.Restore()
	}
	for _, child := range el.children {
		drawTree(canvas, child)
	}
}

// Abort discards a frame whose declaration was cut short by a fault. The
// next declaration starts a fresh frame. Hover and focus keep the values
// resolved by the last completed Render.
func (e *Engine) Abort() {
	if !e.inFrame {
		return
	}
	for _, l := range e.layers.open {
		clear(l.stack)
		l.stack = l.stack[:0]
	}
	clear(e.layers.open)
	e.layers.open = e.layers.open[:0]
	e.keys.reset()
	e.inFrame = false
	Logger().Warn("frame aborted", "frame", e.frame)
}

// Blur clears keyboard focus immediately, as if the host window lost focus.
func (e *Engine) Blur() {
	e.blur("engine")
}

func (e *Engine) blur(source string) {
	if e.focus.focused.key != "" || e.focus.hasRequest {
		Logger().Debug("focus cleared", "frame", e.frame, "source", source, "key", e.focus.focused.key)
	}
	e.focus.clear()
}

// Frame returns the number of the current (or last rendered) frame.
func (e *Engine) Frame() uint64 {
	return e.frame
}

// InFrame reports whether a frame is being declared.
func (e *Engine) InFrame() bool {
	return e.inFrame
}

// LayerOrder returns the live layer keys, bottom to top.
func (e *Engine) LayerOrder() []string {
	keys := make([]string, len(e.layers.order))
	for i, l := range e.layers.order {
		keys[i] = l.key
	}
	return keys
}

// HasLayer reports whether a layer with the qualified key is live.
func (e *Engine) HasLayer(key string) bool {
	return slices.ContainsFunc(e.layers.order, func(l *Layer) bool { return l.key == key })
}

// HoveredKey returns the element key resolved as hovered by the last Render.
func (e *Engine) HoveredKey() (string, bool) {
	return e.hit.hovered.key, e.hit.hovered.key != ""
}

// FocusedKey returns the focused element key as of the last Render.
func (e *Engine) FocusedKey() (string, bool) {
	return e.focus.focused.key, e.focus.focused.key != ""
}

// PointerState returns the pointer as sampled at the start of this frame.
func (e *Engine) PointerState() input.PointerState {
	return e.pointerState
}

// Pointer returns the pointer watcher.
func (e *Engine) Pointer() *input.Pointer {
	return e.pointer
}

// Keyboard returns the keyboard watcher.
func (e *Engine) Keyboard() *input.Keyboard {
	return e.keyboard
}

// Window returns the window watcher.
func (e *Engine) Window() *input.Window {
	return e.window
}

// Trace returns the frame trace buffer, or nil when tracing is disabled.
func (e *Engine) Trace() *FrameTraceBuffer {
	return e.trace
}
