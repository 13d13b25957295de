package bough

import (
	"cmp"
	"errors"
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// RendererConfig is the YAML form of RendererOptions. Omitted booleans take
// the DefaultRendererOptions values.
type RendererConfig struct {
	AutoStart *bool `yaml:"autoStart,omitempty"`
	AutoStop  *bool `yaml:"autoStop,omitempty"`
	Debug     bool  `yaml:"debug,omitempty"`
}

// Options resolves the config against DefaultRendererOptions.
func (c RendererConfig) Options() RendererOptions {
	o := DefaultRendererOptions()
	if c.AutoStart != nil {
		o.AutoStart = *c.AutoStart
	}
	if c.AutoStop != nil {
		o.AutoStop = *c.AutoStop
	}
	return o
}

// TransitionConfig is the YAML form of TransitionOptions. Times are in
// milliseconds. Stagger, when set, delays element i by delay + i*stagger.
type TransitionConfig struct {
	Duration float64  `yaml:"duration,omitempty"`
	Delay    float64  `yaml:"delay,omitempty"`
	Stagger  float64  `yaml:"stagger,omitempty"`
	Loop     bool     `yaml:"loop,omitempty"`
	Ease     string   `yaml:"ease,omitempty"`
	FillMode FillMode `yaml:"fillMode,omitempty"`
}

// Options converts the config, resolving the ease by name.
func (c TransitionConfig) Options() (TransitionOptions, error) {
	e, err := EaseByName(c.Ease)
	if err != nil {
		return TransitionOptions{}, err
	}
	if c.Duration < 0 || c.Delay < 0 {
		return TransitionOptions{}, fmt.Errorf("negative duration or delay (%vms, %vms)", c.Duration, c.Delay)
	}
	opts := TransitionOptions{
		Duration: millis(c.Duration),
		Delay:    millis(c.Delay),
		Loop:     c.Loop,
		Ease:     e,
		FillMode: c.FillMode,
	}
	if c.Stagger != 0 {
		opts.DelayFunc = Stagger(opts.Delay, millis(c.Stagger))
	}
	return opts, nil
}

func millis(ms float64) time.Duration {
	return time.Duration(ms * float64(time.Millisecond))
}

// ElementConfig declares one element of a scene document. Shape is "rect",
// "circle", "line" or "group"; Name overrides the element name used by
// timeline targets and QueryName.
type ElementConfig struct {
	Shape    string          `yaml:"shape"`
	Name     string          `yaml:"name,omitempty"`
	State    map[string]any  `yaml:"state,omitempty"`
	Children []ElementConfig `yaml:"children,omitempty"`
}

// TimelineEntry updates the elements named Target with Set and transitions
// them, At milliseconds after playback starts.
type TimelineEntry struct {
	At         float64          `yaml:"at"`
	Target     string           `yaml:"target"`
	Set        map[string]any   `yaml:"set,omitempty"`
	Transition TransitionConfig `yaml:"transition,omitempty"`
}

// SceneDocument is a declarative scene: canvas size, an optional background,
// the element tree and a timeline of transitions.
type SceneDocument struct {
	Width      int             `yaml:"width"`
	Height     int             `yaml:"height"`
	FPS        int             `yaml:"fps,omitempty"`
	Background string          `yaml:"background,omitempty"`
	Renderer   RendererConfig  `yaml:"renderer,omitempty"`
	Elements   []ElementConfig `yaml:"elements"`
	Timeline   []TimelineEntry `yaml:"timeline,omitempty"`
}

// Scene document defaults.
const (
	DefaultSceneWidth  = 640
	DefaultSceneHeight = 480
	DefaultSceneFPS    = 60
)

// LoadSceneDocument parses a YAML scene document and applies defaults.
func LoadSceneDocument(data []byte) (*SceneDocument, error) {
	var doc SceneDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse scene: %w", err)
	}
	if doc.Width <= 0 {
		doc.Width = DefaultSceneWidth
	}
	if doc.Height <= 0 {
		doc.Height = DefaultSceneHeight
	}
	if doc.FPS <= 0 {
		doc.FPS = DefaultSceneFPS
	}
	for i, entry := range doc.Timeline {
		if entry.Target == "" {
			return nil, fmt.Errorf("parse scene: timeline %d: missing target", i)
		}
		if _, err := entry.Transition.Options(); err != nil {
			return nil, fmt.Errorf("parse scene: timeline %d: %w", i, err)
		}
	}
	return &doc, nil
}

// LoadSceneFile reads and parses the scene document at path.
func LoadSceneFile(path string) (*SceneDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scene: %w", err)
	}
	return LoadSceneDocument(data)
}

// shapeKinds builds an element with its default state for each shape name.
var shapeKinds = map[string]func() *Element{
	"rect":   func() *Element { return NewRect(RectOptions{}) },
	"circle": func() *Element { return NewCircle(CircleOptions{}) },
	"line":   func() *Element { return NewLine(LineOptions{}) },
}

// Build creates a scene on surface holding the document's elements. A
// background color becomes a full-size "background" rect beneath them.
func (d *SceneDocument) Build(surface Surface) (*Scene, error) {
	scene := NewScene(surface)
	scene.SetDebugMode(d.Renderer.Debug)
	if d.Background != "" {
		c, err := ParseHexColor(d.Background)
		if err != nil {
			return nil, fmt.Errorf("build scene: background: %w", err)
		}
		bg := NewRect(RectOptions{
			Width:  float64(d.Width),
			Height: float64(d.Height),
			Style:  Style{Fill: c},
		})
		bg.Name = "background"
		scene.Add(bg)
	}
	for i, cfg := range d.Elements {
		el, err := buildElement(cfg)
		if err != nil {
			return nil, fmt.Errorf("build scene: element %d: %w", i, err)
		}
		scene.Add(el)
	}
	return scene, nil
}

func buildElement(cfg ElementConfig) (*Element, error) {
	if cfg.Shape == "group" {
		g := NewGroup(cfg.Name)
		for i, child := range cfg.Children {
			el, err := buildElement(child)
			if err != nil {
				return nil, fmt.Errorf("%s child %d: %w", g.Name, i, err)
			}
			g.Add(el)
		}
		return g, nil
	}
	ctor, ok := shapeKinds[cfg.Shape]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownShape, cfg.Shape)
	}
	if len(cfg.Children) > 0 {
		return nil, fmt.Errorf("%s cannot have children", cfg.Shape)
	}
	el := ctor()
	if cfg.Name != "" {
		el.Name = cfg.Name
	}
	st, err := decodeState(cfg.State)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", el.Name, err)
	}
	// Apply the declared state as the rest state.
	el.Update(st)
	el.Update(el.State())
	return el, nil
}

// Timeline plays a document's timeline against a renderer. Entries fire on
// the renderer's tick once their offset has elapsed, so the renderer must
// keep running for the whole timeline (disable AutoStop).
type Timeline struct {
	entries []TimelineEntry
	next    int
	start   time.Time
	scene   *Scene
	r       *Renderer
	handle  CallbackHandle
	err     error
}

// Play starts the renderer and schedules the timeline from the current clock
// reading. Entries are fired in At order.
func (d *SceneDocument) Play(r *Renderer) *Timeline {
	entries := append([]TimelineEntry(nil), d.Timeline...)
	slices.SortStableFunc(entries, func(a, b TimelineEntry) int { return cmp.Compare(a.At, b.At) })
	tl := &Timeline{entries: entries, scene: r.Scene(), r: r}
	r.Start()
	tl.start = r.clock.Now()
	tl.handle = r.On(EventTick, tl.onTick)
	return tl
}

// Done reports whether every entry has fired.
func (tl *Timeline) Done() bool {
	return tl.next >= len(tl.entries)
}

// End returns the offset at which the last entry's transitions finish, the
// longest duration plus delay (stagger included) after its start.
func (tl *Timeline) End() time.Duration {
	var end time.Duration
	for _, e := range tl.entries {
		opts, err := e.Transition.Options()
		if err != nil {
			continue
		}
		n := len(expandTargets(tl.scene.Root().FindAll(e.Target)))
		last := opts.Delay
		if opts.DelayFunc != nil && n > 0 {
			last = opts.DelayFunc(n - 1)
		}
		end = max(end, millis(e.At)+last+opts.Duration)
	}
	return end
}

// Err returns the first error met while firing entries.
func (tl *Timeline) Err() error {
	return tl.err
}

// Stop detaches the timeline from the renderer.
func (tl *Timeline) Stop() {
	tl.handle.Remove()
}

func (tl *Timeline) onTick(ev Event) {
	for tl.next < len(tl.entries) {
		e := tl.entries[tl.next]
		if ev.Time.Sub(tl.start) < millis(e.At) {
			return
		}
		tl.next++
		if err := tl.fire(e); err != nil && tl.err == nil {
			tl.err = err
		}
	}
}

func (tl *Timeline) fire(e TimelineEntry) error {
	targets := tl.scene.Root().FindAll(e.Target)
	if len(targets) == 0 {
		return fmt.Errorf("timeline: no element named %q", e.Target)
	}
	patch, err := decodeState(e.Set)
	if err != nil {
		return fmt.Errorf("timeline: %s: %w", e.Target, err)
	}
	opts, err := e.Transition.Options()
	if err != nil {
		return fmt.Errorf("timeline: %s: %w", e.Target, err)
	}
	tl.r.UpdateAndTransition(targets, patch, opts)
	return nil
}

// decodeState converts YAML values to the types the interpolators use:
// numbers become float64, "#rrggbb" strings become Color, [x, y] becomes
// Vec2, a list of [x, y] pairs becomes []Vec2 and four numbers become
// per-corner radii.
func decodeState(raw map[string]any) (State, error) {
	st := make(State, len(raw))
	for k, v := range raw {
		dv, err := decodeValue(v)
		if err != nil {
			return nil, fmt.Errorf("state %q: %w", k, err)
		}
		st[k] = dv
	}
	return st, nil
}

func decodeValue(v any) (any, error) {
	switch x := v.(type) {
	case int:
		return float64(x), nil
	case float64:
		return x, nil
	case bool:
		return x, nil
	case string:
		if strings.HasPrefix(x, "#") {
			return ParseHexColor(x)
		}
		return x, nil
	case map[string]any:
		return decodeColorMap(x)
	case []any:
		return decodeList(x)
	}
	return nil, fmt.Errorf("unsupported value %v (%T)", v, v)
}

func decodeList(list []any) (any, error) {
	if len(list) > 0 {
		if _, nested := list[0].([]any); nested {
			pts := make([]Vec2, len(list))
			for i, item := range list {
				pair, ok := item.([]any)
				if !ok {
					return nil, fmt.Errorf("point %d: not a pair", i)
				}
				nums, err := decodeNumbers(pair)
				if err != nil || len(nums) != 2 {
					return nil, fmt.Errorf("point %d: want [x, y]", i)
				}
				pts[i] = Vec2{nums[0], nums[1]}
			}
			return pts, nil
		}
	}
	nums, err := decodeNumbers(list)
	if err != nil {
		return nil, err
	}
	switch len(nums) {
	case 2:
		return Vec2{nums[0], nums[1]}, nil
	case 4:
		return [4]float64{nums[0], nums[1], nums[2], nums[3]}, nil
	}
	return nil, fmt.Errorf("list of %d numbers: want 2 or 4", len(nums))
}

func decodeNumbers(list []any) ([]float64, error) {
	out := make([]float64, len(list))
	for i, item := range list {
		switch n := item.(type) {
		case int:
			out[i] = float64(n)
		case float64:
			out[i] = n
		default:
			return nil, fmt.Errorf("item %d: not a number", i)
		}
	}
	return out, nil
}

func decodeColorMap(m map[string]any) (Color, error) {
	var c Color
	c.A = 1
	for k, v := range m {
		var f float64
		switch n := v.(type) {
		case int:
			f = float64(n)
		case float64:
			f = n
		default:
			return Color{}, fmt.Errorf("color %s: not a number", k)
		}
		switch k {
		case "r":
			c.R = f
		case "g":
			c.G = f
		case "b":
			c.B = f
		case "a":
			c.A = f
		default:
			return Color{}, fmt.Errorf("color: unknown channel %q", k)
		}
	}
	return c, nil
}

// ParseHexColor parses "#rgb", "#rrggbb" or "#rrggbbaa".
func ParseHexColor(s string) (Color, error) {
	hex, ok := strings.CutPrefix(s, "#")
	if !ok {
		return Color{}, fmt.Errorf("color %q: missing #", s)
	}
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	if len(hex) != 8 {
		return Color{}, fmt.Errorf("color %q: want #rgb, #rrggbb or #rrggbbaa", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("color %q: %w", s, errors.Unwrap(err))
	}
	return Color{
		R: float64(v>>24&0xff) / 255,
		G: float64(v>>16&0xff) / 255,
		B: float64(v>>8&0xff) / 255,
		A: float64(v&0xff) / 255,
	}, nil
}
