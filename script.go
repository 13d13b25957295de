package bough

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// scriptStep is a single action in a playback script.
type scriptStep struct {
	Action string  `yaml:"action"`
	Label  string  `yaml:"label,omitempty"`
	X      float64 `yaml:"x,omitempty"`
	Y      float64 `yaml:"y,omitempty"`
	FromX  float64 `yaml:"fromX,omitempty"`
	FromY  float64 `yaml:"fromY,omitempty"`
	ToX    float64 `yaml:"toX,omitempty"`
	ToY    float64 `yaml:"toY,omitempty"`
	Frames int     `yaml:"frames,omitempty"`

	// Transition steps
	Target     string           `yaml:"target,omitempty"`
	Set        map[string]any   `yaml:"set,omitempty"`
	Transition TransitionConfig `yaml:"transition,omitempty"`
}

// scriptDocument is the top-level structure of a playback script.
type scriptDocument struct {
	Steps []scriptStep `yaml:"steps"`
}

// Script sequences injected pointer events, transitions and screenshots
// across frames for headless playback and visual regression runs. Attach it
// to a Scene with SetScript; it advances one step per Scene.Update.
//
// Steps:
//
//	hover      pointer sweep from (fromX, fromY) to (toX, toY) over frames, or a single move to (x, y)
//	leave      pointer leaves the surface
//	wait       idle for frames frames
//	transition update the elements named target with set, then transition them
//	screenshot capture the surface with label
type Script struct {
	// Renderer receives transition steps. Without one they are skipped.
	Renderer *Renderer

	steps     []scriptStep
	cursor    int
	waitCount int
	done      bool
	err       error
}

var scriptActions = map[string]bool{
	"hover": true, "leave": true, "wait": true, "transition": true, "screenshot": true,
}

// LoadScript parses a YAML (or JSON) playback script.
func LoadScript(data []byte) (*Script, error) {
	var doc scriptDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	if len(doc.Steps) == 0 {
		return nil, errors.New("parse script: no steps")
	}
	for i, st := range doc.Steps {
		if !scriptActions[st.Action] {
			return nil, fmt.Errorf("parse script: step %d: unknown action %q", i, st.Action)
		}
		if st.Action == "transition" {
			if st.Target == "" {
				return nil, fmt.Errorf("parse script: step %d: transition needs a target", i)
			}
			if _, err := st.Transition.Options(); err != nil {
				return nil, fmt.Errorf("parse script: step %d: %w", i, err)
			}
		}
	}
	return &Script{steps: doc.Steps}, nil
}

// SetScript attaches a script to the scene. The script's step method is
// called from Scene.Update before injected input is processed.
func (s *Scene) SetScript(script *Script) {
	s.script = script
}

// Done reports whether all steps in the script have been executed.
func (sc *Script) Done() bool {
	return sc.done
}

// Err returns the first error met while playing, such as a transition state
// value that could not be decoded.
func (sc *Script) Err() error {
	return sc.err
}

// step advances the script by one frame. Called from Scene.Update.
func (sc *Script) step(s *Scene) {
	if sc.done {
		return
	}
	// Wait for pending injections to drain before advancing.
	if s.injecting() {
		return
	}
	if sc.waitCount > 0 {
		sc.waitCount--
		return
	}
	if sc.cursor >= len(sc.steps) {
		sc.done = true
		return
	}

	st := sc.steps[sc.cursor]
	sc.cursor++

	switch st.Action {
	case "screenshot":
		s.Screenshot(st.Label)
	case "hover":
		if st.Frames > 0 {
			s.InjectPointerPath(st.FromX, st.FromY, st.ToX, st.ToY, st.Frames)
		} else {
			s.InjectPointerMove(st.X, st.Y)
		}
	case "leave":
		s.InjectPointerLeave()
	case "wait":
		if st.Frames > 0 {
			sc.waitCount = st.Frames - 1 // this frame counts as one
		}
	case "transition":
		sc.runTransition(s, st)
	}

	if sc.cursor >= len(sc.steps) && sc.waitCount == 0 && !s.injecting() {
		sc.done = true
	}
}

func (sc *Script) runTransition(s *Scene, st scriptStep) {
	if sc.Renderer == nil {
		return
	}
	patch, err := decodeState(st.Set)
	if err != nil {
		sc.fail(fmt.Errorf("script: transition %q: %w", st.Target, err))
		return
	}
	opts, err := st.Transition.Options()
	if err != nil {
		sc.fail(fmt.Errorf("script: transition %q: %w", st.Target, err))
		return
	}
	targets := s.Root().FindAll(st.Target)
	if len(targets) == 0 {
		sc.fail(fmt.Errorf("script: no element named %q", st.Target))
		return
	}
	sc.Renderer.UpdateAndTransition(targets, patch, opts)
}

func (sc *Script) fail(err error) {
	if sc.err == nil {
		sc.err = err
	}
}
