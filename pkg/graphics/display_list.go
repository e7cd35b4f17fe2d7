package graphics

// Recorder is a draw buffer. It implements Canvas by recording every call as
// an op, in order, and replays them onto a real backend later. Each element
// owns one; widget painters write into it during declaration and the engine
// flushes it at render time.
type Recorder struct {
	ops []displayOp
}

// Reset drops all recorded ops, keeping the backing storage for reuse.
func (r *Recorder) Reset() {
	clear(r.ops)
	r.ops = r.ops[:0]
}

// Len returns the number of recorded ops.
func (r *Recorder) Len() int {
	return len(r.ops)
}

// Replay executes the recorded ops on canvas in recording order.
func (r *Recorder) Replay(canvas Canvas) {
	for _, op := range r.ops {
		op.execute(canvas)
	}
}

// Snapshot copies the current ops into an immutable DisplayList.
func (r *Recorder) Snapshot() *DisplayList {
	ops := make([]displayOp, len(r.ops))
	copy(ops, r.ops)
	return &DisplayList{ops: ops}
}

func (r *Recorder) append(op displayOp) {
	r.ops = append(r.ops, op)
}

func (r *Recorder) Save() {
	r.append(opSave{})
}

func (r *Recorder) Restore() {
	r.append(opRestore{})
}

func (r *Recorder) Translate(dx, dy float64) {
	r.append(opTranslate{dx: dx, dy: dy})
}

func (r *Recorder) ClipRect(rect Rect) {
	r.append(opClipRect{rect: rect})
}

func (r *Recorder) DrawRect(rect Rect, paint Paint) {
	r.append(opRect{rect: rect, paint: paint})
}

func (r *Recorder) DrawLine(start, end Offset, paint Paint) {
	r.append(opLine{start: start, end: end, paint: paint})
}

func (r *Recorder) DrawPath(path *Path, paint Paint) {
	r.append(opPath{path: path.Clone(), paint: paint})
}

func (r *Recorder) DrawText(text string, position Offset, style TextStyle) {
	r.append(opText{text: text, position: position, style: style})
}

// DisplayList is an immutable list of drawing operations.
type DisplayList struct {
	ops []displayOp
}

// Len returns the number of ops.
func (d *DisplayList) Len() int {
	return len(d.ops)
}

// Paint replays the recorded operations onto the provided canvas.
func (d *DisplayList) Paint(canvas Canvas) {
	for _, op := range d.ops {
		op.execute(canvas)
	}
}

type displayOp interface {
	execute(canvas Canvas)
}

type opSave struct{}

func (opSave) execute(canvas Canvas) {
	canvas.Save()
}

type opRestore struct{}

func (opRestore) execute(canvas Canvas) {
	canvas.Restore()
}

type opTranslate struct {
	dx, dy float64
}

func (op opTranslate) execute(canvas Canvas) {
	canvas.Translate(op.dx, op.dy)
}

type opClipRect struct {
	rect Rect
}

func (op opClipRect) execute(canvas Canvas) {
	canvas.ClipRect(op.rect)
}

type opRect struct {
	rect  Rect
	paint Paint
}

func (op opRect) execute(canvas Canvas) {
	canvas.DrawRect(op.rect, op.paint)
}

type opLine struct {
	start, end Offset
	paint      Paint
}

func (op opLine) execute(canvas Canvas) {
	canvas.DrawLine(op.start, op.end, op.paint)
}

type opPath struct {
	path  *Path
	paint Paint
}

func (op opPath) execute(canvas Canvas) {
	canvas.DrawPath(op.path, op.paint)
}

type opText struct {
	text     string
	position Offset
	style    TextStyle
}

func (op opText) execute(canvas Canvas) {
	canvas.DrawText(op.text, op.position, op.style)
}
