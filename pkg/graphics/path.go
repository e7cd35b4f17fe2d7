package graphics

import "fmt"

// PathOp represents a path drawing operation type.
type PathOp int

const (
	PathOpMoveTo  PathOp = iota // Start new subpath at point (x, y)
	PathOpLineTo                // Line to point (x, y)
	PathOpQuadTo                // Quadratic curve to (x2, y2) via control (x1, y1)
	PathOpCubicTo               // Cubic curve to (x3, y3) via controls (x1, y1), (x2, y2)
	PathOpClose                 // Close subpath with line to start point
)

// String returns a human-readable representation of the path operation.
func (o PathOp) String() string {
	switch o {
	case PathOpMoveTo:
		return "move_to"
	case PathOpLineTo:
		return "line_to"
	case PathOpQuadTo:
		return "quad_to"
	case PathOpCubicTo:
		return "cubic_to"
	case PathOpClose:
		return "close"
	default:
		return fmt.Sprintf("PathOp(%d)", int(o))
	}
}

// PathCommand is a single path operation with its coordinate arguments.
type PathCommand struct {
	Op   PathOp
	Args []float64
}

// Path is a vector outline built from move/line/curve/close commands.
type Path struct {
	Commands []PathCommand
}

// NewPath creates an empty path.
func NewPath() *Path {
	return &Path{}
}

// MoveTo starts a new subpath at (x, y).
func (p *Path) MoveTo(x, y float64) *Path {
	p.Commands = append(p.Commands, PathCommand{Op: PathOpMoveTo, Args: []float64{x, y}})
	return p
}

// LineTo adds a straight segment to (x, y).
func (p *Path) LineTo(x, y float64) *Path {
	p.Commands = append(p.Commands, PathCommand{Op: PathOpLineTo, Args: []float64{x, y}})
	return p
}

// QuadTo adds a quadratic curve.
func (p *Path) QuadTo(x1, y1, x2, y2 float64) *Path {
	p.Commands = append(p.Commands, PathCommand{Op: PathOpQuadTo, Args: []float64{x1, y1, x2, y2}})
	return p
}

// CubicTo adds a cubic curve.
func (p *Path) CubicTo(x1, y1, x2, y2, x3, y3 float64) *Path {
	p.Commands = append(p.Commands, PathCommand{Op: PathOpCubicTo, Args: []float64{x1, y1, x2, y2, x3, y3}})
	return p
}

// Close closes the current subpath.
func (p *Path) Close() *Path {
	p.Commands = append(p.Commands, PathCommand{Op: PathOpClose})
	return p
}

// Clone returns a deep copy so recorded paths stay immutable when the caller
// keeps building the original.
func (p *Path) Clone() *Path {
	if p == nil {
		return nil
	}
	out := &Path{Commands: make([]PathCommand, len(p.Commands))}
	for i, cmd := range p.Commands {
		out.Commands[i] = PathCommand{Op: cmd.Op, Args: append([]float64(nil), cmd.Args...)}
	}
	return out
}
