// Package scene reads YAML scene scripts for the frameui CLI.
//
// A scene is a list of frames. Each frame optionally feeds input to the
// watchers, then declares layers and elements the way a host would:
//
//	name: popup
//	frames:
//	  - input: {move: [15, 15]}
//	    layers:
//	      - key: win
//	        bounds: [0, 0, 200, 200]
//	        children:
//	          - key: ok
//	            flags: [focusable]
//	            at: [10, 10]
//	            text: OK
//	            focus_on_click: true
//	    repeat: 2
package scene

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/go-drift/frameui/pkg/config"
	"github.com/go-drift/frameui/pkg/engine"
	"github.com/go-drift/frameui/pkg/graphics"
)

// Scene is a parsed scene script.
type Scene struct {
	Name string `yaml:"name"`
	// Config overrides frameui.yaml for this scene when present.
	Config *config.Config `yaml:"config,omitempty"`
	Frames []Frame        `yaml:"frames"`
}

// Frame is one declared frame, run Repeat times (at least once).
type Frame struct {
	Input  Input   `yaml:"input,omitempty"`
	Layers []Layer `yaml:"layers"`
	Repeat int     `yaml:"repeat,omitempty"`
}

// Input is fed to the watchers before the frame is declared.
type Input struct {
	Move    *[2]float64 `yaml:"move,omitempty"`
	Leave   bool        `yaml:"leave,omitempty"`
	Press   bool        `yaml:"press,omitempty"`
	Release bool        `yaml:"release,omitempty"`
	Keys    []string    `yaml:"keys,omitempty"`
	Type    string      `yaml:"type,omitempty"`
	Blur    bool        `yaml:"blur,omitempty"`
	// Traverse moves focus: next, previous, up, down, left or right.
	Traverse string `yaml:"traverse,omitempty"`
}

// Layer declares a layer; its inline element fields describe the root.
type Layer struct {
	Element `yaml:",inline"`
	Front   bool `yaml:"front,omitempty"`
}

// Element declares one element and its subtree.
type Element struct {
	Key   string   `yaml:"key"`
	Flags []string `yaml:"flags,omitempty"`

	// Bounds places the element absolutely as [x, y, w, h].
	Bounds *[4]float64 `yaml:"bounds,omitempty"`
	// At offsets the element from its parent's origin.
	At *[2]float64 `yaml:"at,omitempty"`
	// Size fixes the element's extent.
	Size *[2]float64 `yaml:"size,omitempty"`
	// Fit grows the element around its children with the given padding.
	Fit *float64 `yaml:"fit,omitempty"`
	// Center centers the element in its parent.
	Center bool `yaml:"center,omitempty"`

	Fill string `yaml:"fill,omitempty"`
	Text string `yaml:"text,omitempty"`

	Focus        bool `yaml:"focus,omitempty"`
	FocusOnClick bool `yaml:"focus_on_click,omitempty"`

	Children []Element `yaml:"children,omitempty"`
	// Layers open floating layers while this element is building.
	Layers []Layer `yaml:"layers,omitempty"`
}

// Load reads and parses a scene file.
func Load(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scene: %w", err)
	}
	return Parse(data)
}

// Parse decodes a scene script. Unknown fields are rejected.
func Parse(data []byte) (*Scene, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	var s Scene
	if err := dec.Decode(&s); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("scene is empty")
		}
		return nil, fmt.Errorf("failed to parse scene: %w", err)
	}
	if err := s.validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

func (s *Scene) validate() error {
	if len(s.Frames) == 0 {
		return fmt.Errorf("scene has no frames")
	}
	for i, f := range s.Frames {
		if f.Repeat < 0 {
			return fmt.Errorf("frame %d: repeat must not be negative", i+1)
		}
		if t := f.Input.Traverse; t != "" && t != "next" && t != "previous" {
			if _, ok := engine.ParseTraversalDirection(t); !ok {
				return fmt.Errorf("frame %d: unknown traverse %q", i+1, t)
			}
		}
		for j := range f.Layers {
			if err := f.Layers[j].validate(fmt.Sprintf("frame %d", i+1)); err != nil {
				return err
			}
		}
	}
	return nil
}

func (el *Element) validate(where string) error {
	if el.Key == "" {
		return fmt.Errorf("%s: element without key", where)
	}
	where += ": " + el.Key
	if _, err := parseFlags(el.Flags); err != nil {
		return fmt.Errorf("%s: %w", where, err)
	}
	if el.Fill != "" {
		if _, err := graphics.ParseHex(el.Fill); err != nil {
			return fmt.Errorf("%s: %w", where, err)
		}
	}
	for i := range el.Children {
		if err := el.Children[i].validate(where); err != nil {
			return err
		}
	}
	for i := range el.Layers {
		if err := el.Layers[i].validate(where); err != nil {
			return err
		}
	}
	return nil
}

// Layer roots carry no flags, so they cannot take focus.
func (l *Layer) validate(where string) error {
	if len(l.Flags) > 0 || l.Focus || l.FocusOnClick {
		return fmt.Errorf("%s: layer %q: layer roots take no flags or focus", where, l.Key)
	}
	return l.Element.validate(where)
}

func parseFlags(names []string) (engine.Flags, error) {
	var f engine.Flags
	for _, n := range names {
		switch n {
		case "focusable":
			f |= engine.Focusable
		case "persistent":
			f |= engine.Persistent
		default:
			return 0, fmt.Errorf("unknown flag %q", n)
		}
	}
	return f, nil
}

// FrameCount returns the number of frames the scene renders.
func (s *Scene) FrameCount() int {
	n := 0
	for _, f := range s.Frames {
		n += max(f.Repeat, 1)
	}
	return n
}
