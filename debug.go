package bough

import (
	"fmt"
	"io"
	"os"
	"time"
)

// debugStats holds per-frame timing and element metrics.
// Only populated when Scene.debug is true.
type debugStats struct {
	frame        int
	tickTime     time.Duration
	elementCount int
	pending      int
	completed    int
}

// debugLog prints frame stats to the scene's DebugOutput.
func (r *Renderer) debugLog(stats debugStats) {
	if !r.scene.debug {
		return
	}
	w := r.scene.DebugOutput
	if w == nil {
		w = os.Stderr
	}
	_, _ = fmt.Fprintf(w,
		"[bough] frame %d | tick: %v | elements: %d | pending: %d | completed: %d\n",
		stats.frame, stats.tickTime, stats.elementCount, stats.pending, stats.completed)
}

// debugOutput mirrors the DebugOutput of the scene that last enabled debug
// mode, for group checks that have no Scene pointer.
var debugOutput io.Writer = os.Stderr

// debugCheckTreeDepth warns if tree depth exceeds the threshold.
const debugMaxTreeDepth = 32

func debugCheckTreeDepth(e *Element) {
	depth := 0
	for p := e; p != nil; p = p.Parent {
		depth++
	}
	if depth > debugMaxTreeDepth {
		_, _ = fmt.Fprintf(debugOutput, "[bough] warning: tree depth %d exceeds %d (element %q)\n",
			depth, debugMaxTreeDepth, e.Name)
	}
}

// debugCheckChildCount warns if a group has more than 1000 children.
const debugMaxChildCount = 1000

func debugCheckChildCount(e *Element) {
	if len(e.children) > debugMaxChildCount {
		_, _ = fmt.Fprintf(debugOutput, "[bough] warning: group %q has %d children (threshold %d)\n",
			e.Name, len(e.children), debugMaxChildCount)
	}
}
