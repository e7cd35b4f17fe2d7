package testing

import (
	"fmt"
	"math"
	"sort"

	"github.com/go-drift/frameui/pkg/graphics"
)

// DisplayOp represents a serialized canvas drawing operation.
type DisplayOp struct {
	Op     string         `json:"op"`
	Params map[string]any `json:"params,omitempty"`
}

// serializingCanvas implements graphics.LayerCanvas and records ops as
// DisplayOp.
type serializingCanvas struct {
	ops []DisplayOp
}

func (c *serializingCanvas) reset() {
	c.ops = nil
}

func (c *serializingCanvas) BeginLayer(key string, zIndex int) {
	c.ops = append(c.ops, DisplayOp{
		Op:     "beginLayer",
		Params: sortedMap("key", key, "z", zIndex),
	})
}

func (c *serializingCanvas) EndLayer() {
	c.ops = append(c.ops, DisplayOp{Op: "endLayer"})
}

func (c *serializingCanvas) Save() {
	c.ops = append(c.ops, DisplayOp{Op: "save"})
}

func (c *serializingCanvas) Restore() {
	c.ops = append(c.ops, DisplayOp{Op: "restore"})
}

func (c *serializingCanvas) Translate(dx, dy float64) {
	c.ops = append(c.ops, DisplayOp{
		Op:     "translate",
		Params: sortedMap("dx", round2(dx), "dy", round2(dy)),
	})
}

func (c *serializingCanvas) ClipRect(rect graphics.Rect) {
	c.ops = append(c.ops, DisplayOp{
		Op:     "clipRect",
		Params: sortedMap("rect", serializeRect(rect)),
	})
}

func (c *serializingCanvas) DrawRect(rect graphics.Rect, paint graphics.Paint) {
	c.ops = append(c.ops, DisplayOp{
		Op:     "drawRect",
		Params: serializePaint(paint, "rect", serializeRect(rect)),
	})
}

func (c *serializingCanvas) DrawLine(start, end graphics.Offset, paint graphics.Paint) {
	c.ops = append(c.ops, DisplayOp{
		Op: "drawLine",
		Params: serializePaint(paint,
			"x1", round2(start.X), "y1", round2(start.Y),
			"x2", round2(end.X), "y2", round2(end.Y),
		),
	})
}

func (c *serializingCanvas) DrawPath(path *graphics.Path, paint graphics.Paint) {
	n := 0
	if path != nil {
		n = len(path.Commands)
	}
	c.ops = append(c.ops, DisplayOp{
		Op:     "drawPath",
		Params: serializePaint(paint, "commands", n),
	})
}

func (c *serializingCanvas) DrawText(text string, position graphics.Offset, style graphics.TextStyle) {
	c.ops = append(c.ops, DisplayOp{
		Op: "drawText",
		Params: sortedMap(
			"text", text,
			"x", round2(position.X),
			"y", round2(position.Y),
			"color", serializeColor(style.Color),
		),
	})
}

func serializeRect(r graphics.Rect) map[string]any {
	return sortedMap(
		"x", round2(r.X),
		"y", round2(r.Y),
		"w", round2(r.W),
		"h", round2(r.H),
	)
}

func serializePaint(p graphics.Paint, kvs ...any) map[string]any {
	m := sortedMap(kvs...)
	m["color"] = serializeColor(p.Color)
	if p.Style != graphics.PaintStyleFill {
		m["style"] = p.Style.String()
		m["strokeWidth"] = round2(p.StrokeWidth)
	}
	return m
}

func serializeColor(c graphics.Color) string {
	return fmt.Sprintf("0x%08X", uint32(c))
}

// round2 rounds a float64 to 2 decimal places.
func round2(f float64) float64 {
	return math.Round(f*100) / 100
}

// sortedMap creates a map from alternating key-value pairs.
func sortedMap(kvs ...any) map[string]any {
	m := make(map[string]any, len(kvs)/2)
	for i := 0; i+1 < len(kvs); i += 2 {
		m[kvs[i].(string)] = kvs[i+1]
	}
	return m
}

// sortedKeys returns the keys of a map in sorted order.
func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// String renders the op on one line with params in key order, for
// readable failure messages.
func (op DisplayOp) String() string {
	s := op.Op
	for _, k := range sortedKeys(op.Params) {
		s += fmt.Sprintf(" %s=%v", k, op.Params[k])
	}
	return s
}
