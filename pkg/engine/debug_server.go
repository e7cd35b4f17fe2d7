package engine

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"
)

// SafeFloat wraps a float64 to handle Inf/NaN in JSON encoding. Constraints
// are caller code and can produce either.
type SafeFloat float64

func (f SafeFloat) MarshalJSON() ([]byte, error) {
	v := float64(f)
	if math.IsInf(v, 1) {
		return []byte(`"Infinity"`), nil
	}
	if math.IsInf(v, -1) {
		return []byte(`"-Infinity"`), nil
	}
	if math.IsNaN(v) {
		return []byte(`"NaN"`), nil
	}
	return json.Marshal(v)
}

// SafeRect is a JSON-safe version of graphics.Rect.
type SafeRect struct {
	X SafeFloat `json:"x"`
	Y SafeFloat `json:"y"`
	W SafeFloat `json:"w"`
	H SafeFloat `json:"h"`
}

// ElementNode is a serialized element of an inspected frame.
type ElementNode struct {
	Key      string        `json:"key"`
	Bounds   SafeRect      `json:"bounds"`
	Flags    string        `json:"flags,omitempty"`
	DrawOps  int           `json:"drawOps,omitempty"`
	Children []ElementNode `json:"children,omitempty"`
}

// LayerNode is a serialized layer of an inspected frame.
type LayerNode struct {
	Key    string      `json:"key"`
	ZIndex int         `json:"z"`
	Root   ElementNode `json:"root"`
}

// FrameInspection is the published view of the last rendered frame.
type FrameInspection struct {
	Frame   uint64      `json:"frame"`
	Hovered string      `json:"hovered,omitempty"`
	Focused string      `json:"focused,omitempty"`
	Layers  []LayerNode `json:"layers"`
}

// maxTreeDepth limits recursion depth when serializing pathological trees.
const maxTreeDepth = 500

// EnableInspection makes Render publish a FrameInspection after every frame.
// It is switched on by DebugHandler.
func (e *Engine) EnableInspection() {
	e.inspecting.Store(true)
}

// Inspection returns the last published frame, or nil.
func (e *Engine) Inspection() *FrameInspection {
	return e.inspection.Load()
}

func (e *Engine) publishInspection(drawn []*Layer) {
	in := &FrameInspection{
		Frame:   e.frame,
		Hovered: e.hit.hovered.key,
		Focused: e.focus.focused.key,
		Layers:  make([]LayerNode, 0, len(drawn)),
	}
	for _, l := range drawn {
		in.Layers = append(in.Layers, LayerNode{
			Key:    l.key,
			ZIndex: l.zIndex,
			Root:   serializeElement(l.root, 0),
		})
	}
	e.inspection.Store(in)
}

func serializeElement(el *Element, depth int) ElementNode {
	node := ElementNode{
		Key: el.key,
		Bounds: SafeRect{
			X: SafeFloat(el.bounds.X),
			Y: SafeFloat(el.bounds.Y),
			W: SafeFloat(el.bounds.W),
			H: SafeFloat(el.bounds.H),
		},
		DrawOps: el.draw.Len(),
	}
	if el.flags != 0 {
		node.Flags = el.flags.String()
	}
	if depth >= maxTreeDepth {
		return node
	}
	for _, c := range el.children {
		node.Children = append(node.Children, serializeElement(c, depth+1))
	}
	return node
}

// DebugHandler returns an HTTP handler exposing the engine's diagnostics:
//
//	/health  liveness probe
//	/frames  frame trace timeline, filterable by limit, min_ms and the
//	         per-phase build_ms, resolve_ms, draw_ms, bookkeeping_ms
//	/tree    the last rendered frame's layers and element tree
//
// Handlers only read data published at Render, so they are safe to serve
// from another goroutine while the engine runs.
func (e *Engine) DebugHandler() http.Handler {
	e.EnableInspection()
	mux := http.NewServeMux()
	mux.HandleFunc("/health", handleHealth)
	mux.HandleFunc("/frames", e.handleFrameTimeline)
	mux.HandleFunc("/tree", e.handleTree)
	return mux
}

// DebugServer serves DebugHandler on a TCP listener.
type DebugServer struct {
	mu       sync.Mutex
	server   *http.Server
	listener net.Listener
}

// StartDebugServer listens on addr (":0" picks a free port) and serves the
// engine's diagnostics until Close.
func (e *Engine) StartDebugServer(addr string) (*DebugServer, error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("debug server listen: %w", err)
	}
	s := &DebugServer{
		server:   &http.Server{Handler: e.DebugHandler(), ReadHeaderTimeout: 5 * time.Second},
		listener: listener,
	}
	go func() {
		if err := s.server.Serve(listener); err != nil && err != http.ErrServerClosed {
			Logger().Error("debug server stopped", "err", err)
		}
	}()
	Logger().Info("debug server listening", "addr", listener.Addr().String())
	return s, nil
}

// Addr returns the address the server listens on.
func (s *DebugServer) Addr() string {
	return s.listener.Addr().String()
}

// Close gracefully shuts the server down.
func (s *DebugServer) Close() error {
	s.mu.Lock()
	server := s.server
	s.server = nil
	s.mu.Unlock()

	if server == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return server.Shutdown(ctx)
}

// handleHealth returns a simple health check response.
func handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

func (e *Engine) handleFrameTimeline(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if e.trace == nil {
		http.Error(w, "frame tracing disabled", http.StatusServiceUnavailable)
		return
	}
	resp := e.trace.Snapshot()
	applyFrameFilters(r, &resp)
	writeJSON(w, resp)
}

func (e *Engine) handleTree(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	in := e.Inspection()
	if in == nil {
		http.Error(w, "no frame rendered yet", http.StatusServiceUnavailable)
		return
	}
	writeJSON(w, in)
}

func writeJSON(w http.ResponseWriter, v any) {
	// Encode to a buffer first so errors can still change the status.
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		http.Error(w, fmt.Sprintf("json encode error: %v", err), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}

func applyFrameFilters(r *http.Request, resp *FrameTimeline) {
	limit := 0
	if value := r.URL.Query().Get("limit"); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	var filters []func(FrameSample) bool

	if v := parseFloatQuery(r, "min_ms"); v > 0 {
		filters = append(filters, func(s FrameSample) bool { return s.FrameMs >= v })
	}
	if v := parseFloatQuery(r, "build_ms"); v > 0 {
		filters = append(filters, func(s FrameSample) bool { return s.Phases.BuildMs >= v })
	}
	if v := parseFloatQuery(r, "resolve_ms"); v > 0 {
		filters = append(filters, func(s FrameSample) bool { return s.Phases.ResolveMs >= v })
	}
	if v := parseFloatQuery(r, "draw_ms"); v > 0 {
		filters = append(filters, func(s FrameSample) bool { return s.Phases.DrawMs >= v })
	}
	if v := parseFloatQuery(r, "bookkeeping_ms"); v > 0 {
		filters = append(filters, func(s FrameSample) bool { return s.Phases.BookkeepingMs >= v })
	}

	if len(filters) > 0 {
		filtered := make([]FrameSample, 0, len(resp.Samples))
	outer:
		for _, sample := range resp.Samples {
			for _, f := range filters {
				if !f(sample) {
					continue outer
				}
			}
			filtered = append(filtered, sample)
		}
		resp.Samples = filtered
	}

	if limit > 0 && len(resp.Samples) > limit {
		resp.Samples = resp.Samples[len(resp.Samples)-limit:]
	}
}

func parseFloatQuery(r *http.Request, key string) float64 {
	value := r.URL.Query().Get(key)
	if value == "" {
		return 0
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0
	}
	return parsed
}
