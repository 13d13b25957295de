package bough

import (
	"bytes"
	"io"
	"strings"
	"testing"
)

// captureDebug enables group debug checks writing to a buffer for the
// duration of the test.
func captureDebug(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prevEnabled, prevOut := debugEnabled, debugOutput
	debugEnabled, debugOutput = true, &buf
	t.Cleanup(func() { debugEnabled, debugOutput = prevEnabled, prevOut })
	return &buf
}

func TestDebugTreeDepthWarning(t *testing.T) {
	buf := captureDebug(t)
	parent := NewGroup("top")
	for range debugMaxTreeDepth {
		g := NewGroup("nested")
		parent.Add(g)
		parent = g
	}
	if !strings.Contains(buf.String(), "[bough] warning: tree depth 33 exceeds 32") {
		t.Errorf("output = %q", buf.String())
	}
}

func TestDebugChildCountWarning(t *testing.T) {
	buf := captureDebug(t)
	g := NewGroup("wide")
	children := make([]*Element, debugMaxChildCount+1)
	for i := range children {
		children[i] = leaf("c")
	}
	g.Set(children...)
	if !strings.Contains(buf.String(), `group "wide" has 1001 children`) {
		t.Errorf("output = %q", buf.String())
	}
}

func TestDebugQuietUnderThresholds(t *testing.T) {
	buf := captureDebug(t)
	NewGroup("g", leaf("a"), NewGroup("h", leaf("b")))
	if buf.Len() != 0 {
		t.Errorf("unexpected output %q", buf.String())
	}
}

func TestSetDebugModeRoutesOutput(t *testing.T) {
	prevEnabled, prevOut := debugEnabled, debugOutput
	t.Cleanup(func() { debugEnabled, debugOutput = prevEnabled, prevOut })

	var buf bytes.Buffer
	s := NewScene(nil)
	s.DebugOutput = &buf
	s.SetDebugMode(true)
	if !debugEnabled || debugOutput != io.Writer(&buf) {
		t.Error("SetDebugMode(true) should route group checks to DebugOutput")
	}
	s.SetDebugMode(false)
	if debugEnabled {
		t.Error("SetDebugMode(false)")
	}
}

func TestDebugLogSilentWhenDisabled(t *testing.T) {
	rig := newTestRig(t, RendererOptions{})
	var buf bytes.Buffer
	rig.scene.DebugOutput = &buf
	rig.r.Start()
	rig.frame(0)
	if buf.Len() != 0 {
		t.Errorf("output = %q", buf.String())
	}
}
