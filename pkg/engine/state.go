package engine

import (
	"github.com/go-drift/frameui/pkg/errors"
)

// ComponentKey names one piece of per-element state and declares its
// default. Create keys once, at package level, and reuse them: two distinct
// keys with the same name are a fault.
type ComponentKey[T any] struct {
	name  string
	def   T
	clone func(T) T
}

// NewComponentKey declares a state component. Values are created by deep
// copying def (or the initial value passed to GetState).
func NewComponentKey[T any](name string, def T) *ComponentKey[T] {
	return &ComponentKey[T]{name: name, def: def}
}

// NewComponentKeyFunc is NewComponentKey with an explicit copy function.
func NewComponentKeyFunc[T any](name string, def T, clone func(T) T) *ComponentKey[T] {
	return &ComponentKey[T]{name: name, def: def, clone: clone}
}

// Name returns the component name.
func (k *ComponentKey[T]) Name() string {
	return k.name
}

// Cloner is implemented by values that know how to deep copy themselves.
type Cloner[T any] interface {
	Clone() T
}

func (k *ComponentKey[T]) copyOf(v T) T {
	if k.clone != nil {
		return k.clone(v)
	}
	if c, ok := any(v).(Cloner[T]); ok {
		return c.Clone()
	}
	return deepCopy(v)
}

// stateBucket is all state owned by one element key.
type stateBucket struct {
	values     map[string]any
	persistent bool
	seen       uint64
}

// stateStore maps (element key, component name) to a value.
type stateStore struct {
	buckets map[string]*stateBucket
	names   map[string]any
}

func newStateStore() *stateStore {
	return &stateStore{
		buckets: make(map[string]*stateBucket),
		names:   make(map[string]any),
	}
}

// observe records that el was declared in frame.
func (s *stateStore) observe(el *Element, frame uint64) {
	if b := s.buckets[el.key]; b != nil {
		b.seen = frame
		b.persistent = el.flags.Has(Persistent)
	}
}

// claim binds name to key, faulting if another key already owns it.
func (s *stateStore) claim(name string, key any, elementKey string) {
	owner, ok := s.names[name]
	if !ok {
		s.names[name] = key
		return
	}
	if owner != key {
		errors.Fault("engine.GetState", errors.KindState, elementKey+"#"+name, errors.ErrComponentCollision)
	}
}

func (s *stateStore) bucket(el *Element, frame uint64) *stateBucket {
	b := s.buckets[el.key]
	if b == nil {
		b = &stateBucket{values: make(map[string]any)}
		s.buckets[el.key] = b
	}
	b.seen = frame
	b.persistent = el.flags.Has(Persistent)
	return b
}

// expire deletes the buckets of element keys not declared in frame, unless
// the element was persistent the last time it was declared.
func (s *stateStore) expire(frame uint64) []string {
	var removed []string
	for key, b := range s.buckets {
		if b.seen != frame && !b.persistent {
			delete(s.buckets, key)
			removed = append(removed, key)
		}
	}
	return removed
}

// GetState returns the current element's value for key, creating it on first
// sight from a deep copy of init[0] if given, else of the key's default. The
// returned pointer stays valid for as long as the element's state lives;
// writes through it persist across frames.
func GetState[T any](e *Engine, key *ComponentKey[T], init ...T) *T {
	el := e.mustCurrent("engine.GetState")
	e.state.claim(key.name, key, el.key)
	b := e.state.bucket(el, e.frame)
	if v, ok := b.values[key.name]; ok {
		return v.(*T)
	}
	src := key.def
	if len(init) > 0 {
		src = init[0]
	}
	p := new(T)
	*p = key.copyOf(src)
	b.values[key.name] = p
	return p
}

// LookupState returns an element key's value for key without creating it.
// It may be called outside of declaration.
func LookupState[T any](e *Engine, elementKey string, key *ComponentKey[T]) (*T, bool) {
	b := e.state.buckets[elementKey]
	if b == nil {
		return nil, false
	}
	v, ok := b.values[key.name]
	if !ok {
		return nil, false
	}
	p, ok := v.(*T)
	return p, ok
}
