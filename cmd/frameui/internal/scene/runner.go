package scene

import (
	"bytes"
	"fmt"

	"github.com/go-drift/frameui/pkg/engine"
	"github.com/go-drift/frameui/pkg/errors"
	"github.com/go-drift/frameui/pkg/graphics"
	"github.com/go-drift/frameui/pkg/layout"
)

// textPadding surrounds text elements sized with FitText.
const textPadding = 4

// Report describes one rendered frame.
type Report struct {
	// Index is the 1-based position of the frame in the script after repeats.
	Index   int
	Stats   engine.FrameStats
	Hovered string
	Focused string
	Layers  []string
	// Ops is the DumpCanvas transcript of the frame's draw calls.
	Ops string
}

// Runner declares scene frames against an engine whose backend is a
// DumpCanvas.
type Runner struct {
	engine *engine.Engine
	ops    bytes.Buffer
	index  int
}

// NewRunner creates a runner. opts.Backend is replaced.
func NewRunner(opts engine.Options) *Runner {
	r := &Runner{}
	opts.Backend = &graphics.DumpCanvas{W: &r.ops}
	r.engine = engine.New(opts)
	return r
}

// Engine returns the engine frames are declared against.
func (r *Runner) Engine() *engine.Engine {
	return r.engine
}

// Step feeds f's input, declares its layers and renders once. A contract
// violation is returned as an error and the frame is aborted.
func (r *Runner) Step(f Frame) (Report, error) {
	r.ops.Reset()
	r.index++
	r.feed(f.Input)

	var stats engine.FrameStats
	err := errors.Catch("scene.Step", func() {
		for _, l := range f.Layers {
			r.declareLayer(l)
		}
		stats = r.engine.Render()
	})
	if err != nil {
		r.engine.Abort()
		return Report{Index: r.index}, fmt.Errorf("frame %d: %w", r.index, err)
	}

	rep := Report{
		Index:  r.index,
		Stats:  stats,
		Layers: r.engine.LayerOrder(),
		Ops:    r.ops.String(),
	}
	rep.Hovered, _ = r.engine.HoveredKey()
	rep.Focused, _ = r.engine.FocusedKey()
	return rep, nil
}

// Run steps through every frame of s, calling fn with each report. It stops
// at the first error.
func (r *Runner) Run(s *Scene, fn func(Report)) error {
	for _, f := range s.Frames {
		for n, reps := 0, max(f.Repeat, 1); n < reps; n++ {
			rep, err := r.Step(f)
			if err != nil {
				return err
			}
			if fn != nil {
				fn(rep)
			}
			// Input is delivered once per scripted frame, not per repeat.
			f.Input = Input{}
		}
	}
	return nil
}

func (r *Runner) feed(in Input) {
	p, k := r.engine.Pointer(), r.engine.Keyboard()
	if in.Leave {
		p.Leave()
	}
	if in.Move != nil {
		p.Move(in.Move[0], in.Move[1])
	}
	if in.Press {
		p.Press()
	}
	if in.Release {
		p.Release()
	}
	for _, key := range in.Keys {
		k.KeyDown(key)
		k.KeyUp(key)
	}
	for _, c := range in.Type {
		k.Type(c)
	}
	if in.Blur {
		r.engine.Window().Blur()
	}
	switch in.Traverse {
	case "":
	case "next":
		r.engine.MoveFocus(1)
	case "previous":
		r.engine.MoveFocus(-1)
	default:
		dir, _ := engine.ParseTraversalDirection(in.Traverse)
		r.engine.FocusInDirection(dir)
	}
}

func (r *Runner) declareLayer(l Layer) {
	r.engine.BeginLayer(l.Key)
	if l.Front {
		r.engine.BringToFront()
	}
	r.body(&l.Element)
	r.engine.EndLayer()
}

func (r *Runner) declareElement(el *Element) {
	flags, _ := parseFlags(el.Flags)
	r.engine.BeginElement(el.Key, flags)
	r.body(el)
	r.engine.EndElement()
}

// body runs inside an open element or layer root.
func (r *Runner) body(el *Element) {
	e := r.engine
	if cs := placement(el); len(cs) > 0 {
		e.AddConstraints(cs...)
	}
	e.CalculateLayout()

	if el.Focus || (el.FocusOnClick && e.Clicked()) {
		e.FocusElement()
	}

	for i := range el.Children {
		r.declareElement(&el.Children[i])
	}
	for i := range el.Layers {
		r.declareLayer(el.Layers[i])
	}

	if el.Fit != nil {
		e.AddConstraints(layout.FitChildren(*el.Fit))
		e.CalculateLayout()
	}
	r.paint(el)
}

func placement(el *Element) []layout.Constraint {
	var cs []layout.Constraint
	if el.Size != nil {
		cs = append(cs, layout.Fixed(el.Size[0], el.Size[1]))
	}
	if el.Text != "" && el.Size == nil && el.Bounds == nil {
		cs = append(cs, layout.FitText(el.Text, graphics.TextStyle{}, textPadding))
	}
	if el.At != nil {
		cs = append(cs, layout.At(el.At[0], el.At[1]))
	}
	if el.Center {
		cs = append(cs, layout.Center())
	}
	if b := el.Bounds; b != nil {
		rect := graphics.Rect{X: b[0], Y: b[1], W: b[2], H: b[3]}
		cs = append(cs, func(s layout.Scope) { *s.Self = rect })
	}
	return cs
}

func (r *Runner) paint(el *Element) {
	if el.Fill == "" && el.Text == "" {
		return
	}
	e := r.engine
	bounds := *e.Bounds()
	canvas := e.Canvas()
	if el.Fill != "" {
		c, _ := graphics.ParseHex(el.Fill)
		canvas.DrawRect(bounds, graphics.Fill(c))
	}
	if el.Text != "" {
		style := graphics.TextStyle{Color: graphics.ColorBlack}
		m := graphics.MeasureText(el.Text, style)
		canvas.DrawText(el.Text, graphics.Offset{
			X: bounds.X + textPadding,
			Y: bounds.Y + textPadding + m.Ascent,
		}, style)
	}
}
