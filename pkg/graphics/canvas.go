package graphics

// Canvas is the drawing backend that element draw buffers are replayed onto
// at render time. Implementations translate these calls into real graphics
// API calls; the engine never draws eagerly.
type Canvas interface {
	// Save pushes the current transform and clip state.
	Save()
	// Restore pops the most recent transform and clip state.
	Restore()
	// Translate moves the origin by the given offset.
	Translate(dx, dy float64)
	// ClipRect restricts future drawing to the given rectangle.
	ClipRect(rect Rect)
	// DrawRect draws a rectangle with the provided paint.
	DrawRect(rect Rect, paint Paint)
	// DrawLine draws a line segment with the provided paint.
	DrawLine(start, end Offset, paint Paint)
	// DrawPath fills and/or strokes a path.
	DrawPath(path *Path, paint Paint)
	// DrawText draws a single run of text with its baseline origin at position.
	DrawText(text string, position Offset, style TextStyle)
}

// LayerCanvas is implemented by backends that composite layers separately.
// The engine brackets each layer's draw buffers with these calls, in z order.
type LayerCanvas interface {
	Canvas
	BeginLayer(key string, zIndex int)
	EndLayer()
}
