package engine

// poolSlot holds the records for one qualified key, double-buffered by frame
// parity. A key may be declared more than once in a frame (under different
// open parents); each occurrence gets its own record.
type poolSlot struct {
	records   [2][]*Element
	used      int
	lastFrame uint64
}

// pool provisions element records keyed by qualified key. The record handed
// out in frame N is not touched again until frame N+2 asks for the same slot,
// so everything resolved from frame N-1's tree stays readable throughout
// frame N.
type pool struct {
	slots map[string]*poolSlot
}

func newPool() *pool {
	return &pool{slots: make(map[string]*poolSlot)}
}

// provision returns a reset record for key in frame.
func (p *pool) provision(key string, frame uint64) *Element {
	slot := p.slots[key]
	if slot == nil {
		slot = &poolSlot{}
		p.slots[key] = slot
	}
	if slot.lastFrame != frame {
		slot.lastFrame = frame
		slot.used = 0
	}
	buf := &slot.records[frame&1]
	if slot.used == len(*buf) {
		*buf = append(*buf, &Element{})
	}
	el := (*buf)[slot.used]
	slot.used++
	el.reset()
	el.frame = frame
	return el
}

// sweep drops slots not revisited in this frame or the previous one.
func (p *pool) sweep(frame uint64) int {
	removed := 0
	for key, slot := range p.slots {
		if frame-slot.lastFrame >= 2 {
			delete(p.slots, key)
			removed++
		}
	}
	return removed
}

// size returns the number of live records across both buffers.
func (p *pool) size() int {
	n := 0
	for _, slot := range p.slots {
		n += len(slot.records[0]) + len(slot.records[1])
	}
	return n
}
