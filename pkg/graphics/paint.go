package graphics

// PaintStyle selects whether a shape is filled, stroked, or both.
type PaintStyle int

const (
	// PaintStyleFill fills the interior.
	PaintStyleFill PaintStyle = iota
	// PaintStyleStroke strokes the outline.
	PaintStyleStroke
	// PaintStyleFillAndStroke fills then strokes.
	PaintStyleFillAndStroke
)

func (s PaintStyle) String() string {
	switch s {
	case PaintStyleStroke:
		return "stroke"
	case PaintStyleFillAndStroke:
		return "fill+stroke"
	default:
		return "fill"
	}
}

// Paint describes how a draw command colors its shape.
type Paint struct {
	Color       Color
	Style       PaintStyle
	StrokeWidth float64
}

// Fill returns a fill paint of the given color.
func Fill(c Color) Paint {
	return Paint{Color: c, Style: PaintStyleFill}
}

// Stroke returns a stroke paint of the given color and width.
func Stroke(c Color, width float64) Paint {
	return Paint{Color: c, Style: PaintStyleStroke, StrokeWidth: width}
}
