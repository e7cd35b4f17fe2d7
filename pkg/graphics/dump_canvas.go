package graphics

import (
	"fmt"
	"io"
	"strings"
)

// DumpCanvas is a backend that writes one line per draw call to W. It is
// used by the replay tool and for debugging draw order.
type DumpCanvas struct {
	W     io.Writer
	depth int
}

func (c *DumpCanvas) printf(format string, args ...any) {
	fmt.Fprintf(c.W, "%s%s\n", strings.Repeat("  ", c.depth), fmt.Sprintf(format, args...))
}

func (c *DumpCanvas) BeginLayer(key string, zIndex int) {
	c.printf("layer %s z=%d", key, zIndex)
	c.depth++
}

func (c *DumpCanvas) EndLayer() {
	if c.depth > 0 {
		c.depth--
	}
}

func (c *DumpCanvas) Save() {
	c.printf("save")
}

func (c *DumpCanvas) Restore() {
	c.printf("restore")
}

func (c *DumpCanvas) Translate(dx, dy float64) {
	c.printf("translate %g,%g", dx, dy)
}

func (c *DumpCanvas) ClipRect(rect Rect) {
	c.printf("clip %s", formatRect(rect))
}

func (c *DumpCanvas) DrawRect(rect Rect, paint Paint) {
	c.printf("rect %s %s %s", formatRect(rect), paint.Style, paint.Color.Hex())
}

func (c *DumpCanvas) DrawLine(start, end Offset, paint Paint) {
	c.printf("line %g,%g -> %g,%g %s", start.X, start.Y, end.X, end.Y, paint.Color.Hex())
}

func (c *DumpCanvas) DrawPath(path *Path, paint Paint) {
	n := 0
	if path != nil {
		n = len(path.Commands)
	}
	c.printf("path cmds=%d %s %s", n, paint.Style, paint.Color.Hex())
}

func (c *DumpCanvas) DrawText(text string, position Offset, style TextStyle) {
	c.printf("text %q at %g,%g %s", text, position.X, position.Y, style.Color.Hex())
}

func formatRect(r Rect) string {
	return fmt.Sprintf("[%g %g %g %g]", r.X, r.Y, r.W, r.H)
}
