// Package input holds the watcher records that host event listeners write
// into. Host events arrive at arbitrary times, possibly on other goroutines;
// listeners only record them here. The engine samples the records once per
// frame during its own synchronous phases and never processes events inline.
package input

import (
	"sync"

	"github.com/go-drift/frameui/pkg/graphics"
)

// PointerState is a sampled view of the pointer for one frame.
type PointerState struct {
	// Position is the last known pointer position in logical pixels.
	Position graphics.Offset
	// Inside is false once the pointer has left the host surface.
	Inside bool
	// Down reports whether the primary button is held.
	Down bool
	// Pressed reports whether the button went down since the previous sample.
	Pressed bool
	// Released reports whether the button went up since the previous sample.
	Released bool
}

// Pointer records pointer move and button events.
type Pointer struct {
	mu       sync.Mutex
	position graphics.Offset
	inside   bool
	down     bool
	pressed  bool
	released bool
}

// Move records a pointer move to (x, y).
func (p *Pointer) Move(x, y float64) {
	p.mu.Lock()
	p.position = graphics.Offset{X: x, Y: y}
	p.inside = true
	p.mu.Unlock()
}

// Leave records that the pointer left the host surface.
func (p *Pointer) Leave() {
	p.mu.Lock()
	p.inside = false
	p.mu.Unlock()
}

// Press records a primary button press.
func (p *Pointer) Press() {
	p.mu.Lock()
	if !p.down {
		p.pressed = true
	}
	p.down = true
	p.mu.Unlock()
}

// Release records a primary button release.
func (p *Pointer) Release() {
	p.mu.Lock()
	if p.down {
		p.released = true
	}
	p.down = false
	p.mu.Unlock()
}

// Sample returns the current state and clears the press/release edges.
func (p *Pointer) Sample() PointerState {
	p.mu.Lock()
	defer p.mu.Unlock()
	s := PointerState{
		Position: p.position,
		Inside:   p.inside,
		Down:     p.down,
		Pressed:  p.pressed,
		Released: p.released,
	}
	p.pressed, p.released = false, false
	return s
}

// KeyEvent is a single key transition or typed character.
type KeyEvent struct {
	// Key names the physical key ("Enter", "Tab", "a"). Empty for typed runes.
	Key string
	// Rune is the typed character, or 0 for key transitions.
	Rune rune
	// Down is true for key presses and typed runes.
	Down bool
}

// Keyboard queues key events between samples.
type Keyboard struct {
	mu     sync.Mutex
	events []KeyEvent
	held   map[string]bool
}

// KeyDown records a key press.
func (k *Keyboard) KeyDown(key string) {
	k.mu.Lock()
	if k.held == nil {
		k.held = make(map[string]bool)
	}
	k.held[key] = true
	k.events = append(k.events, KeyEvent{Key: key, Down: true})
	k.mu.Unlock()
}

// KeyUp records a key release.
func (k *Keyboard) KeyUp(key string) {
	k.mu.Lock()
	delete(k.held, key)
	k.events = append(k.events, KeyEvent{Key: key})
	k.mu.Unlock()
}

// Type records a typed character.
func (k *Keyboard) Type(r rune) {
	k.mu.Lock()
	k.events = append(k.events, KeyEvent{Rune: r, Down: true})
	k.mu.Unlock()
}

// IsHeld reports whether key is currently held.
func (k *Keyboard) IsHeld(key string) bool {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.held[key]
}

// Sample drains and returns the events queued since the previous sample.
func (k *Keyboard) Sample() []KeyEvent {
	k.mu.Lock()
	defer k.mu.Unlock()
	events := k.events
	k.events = nil
	return events
}

// Window records host window focus loss.
type Window struct {
	mu      sync.Mutex
	blurred bool
}

// Blur records that the host window lost input focus.
func (w *Window) Blur() {
	w.mu.Lock()
	w.blurred = true
	w.mu.Unlock()
}

// TakeBlur reports whether a blur happened since the previous call and
// clears it.
func (w *Window) TakeBlur() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	b := w.blurred
	w.blurred = false
	return b
}

// Host is the engine's only callback into the host: asking it to route
// keyboard input to the surface when an element gains focus.
type Host interface {
	RequestInputFocus(key string)
}

// HostFunc adapts a function to Host.
type HostFunc func(key string)

// RequestInputFocus calls f(key).
func (f HostFunc) RequestInputFocus(key string) {
	f(key)
}
