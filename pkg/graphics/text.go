package graphics

import (
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// TextStyle describes how a text draw command is rendered. Font selection is
// the host's concern; the engine only needs a face to measure with.
type TextStyle struct {
	Face  font.Face
	Color Color
}

// DefaultFace returns the fallback face used when a TextStyle has none.
func DefaultFace() font.Face {
	return basicfont.Face7x13
}

func (s TextStyle) face() font.Face {
	if s.Face != nil {
		return s.Face
	}
	return DefaultFace()
}

// TextMetrics are the measured extent of a run of text.
type TextMetrics struct {
	Size    Size
	Ascent  float64
	Descent float64
}

// MeasureText measures text with the style's face. Each '\n' starts a new
// line; the width is the widest line.
func MeasureText(text string, style TextStyle) TextMetrics {
	face := style.face()
	m := face.Metrics()
	lines := strings.Split(text, "\n")
	var width fixed.Int26_6
	for _, line := range lines {
		if adv := font.MeasureString(face, line); adv > width {
			width = adv
		}
	}
	return TextMetrics{
		Size: Size{
			Width:  fixedToFloat(width),
			Height: fixedToFloat(m.Height) * float64(len(lines)),
		},
		Ascent:  fixedToFloat(m.Ascent),
		Descent: fixedToFloat(m.Descent),
	}
}

func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}
