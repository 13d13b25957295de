package bough

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Screenshot queues a labeled screenshot to be captured at the end of the
// current Scene.Update, after the frame's ticks have painted the surface. The
// PNG is written to ScreenshotDir with a timestamped filename. Surfaces that
// do not implement Snapshotter drop the request with a warning.
func (s *Scene) Screenshot(label string) {
	s.screenshotQueue = append(s.screenshotQueue, label)
}

// flushScreenshots captures the surface for every queued label and writes
// each as a PNG file. Called at the end of Scene.Update.
func (s *Scene) flushScreenshots() {
	if len(s.screenshotQueue) == 0 {
		return
	}
	defer func() { s.screenshotQueue = s.screenshotQueue[:0] }()

	snap, ok := s.surface.(Snapshotter)
	if !ok {
		s.warnf("screenshot: surface %T cannot be captured", s.surface)
		return
	}
	if err := os.MkdirAll(s.ScreenshotDir, 0o755); err != nil {
		s.warnf("screenshot: mkdir %s: %v", s.ScreenshotDir, err)
		return
	}

	img := snap.Snapshot()
	stamp := time.Now().Format("20060102_150405")

	for _, label := range s.screenshotQueue {
		path := filepath.Join(s.ScreenshotDir, fmt.Sprintf("%s_%s.png", stamp, sanitizeLabel(label)))
		if err := WritePNG(path, img); err != nil {
			s.warnf("screenshot: %v", err)
		}
	}
}

// warnf writes a [bough] line to DebugOutput.
func (s *Scene) warnf(format string, args ...any) {
	w := s.DebugOutput
	if w == nil {
		w = os.Stderr
	}
	_, _ = fmt.Fprintf(w, "[bough] "+format+"\n", args...)
}

// WritePNG encodes an image to a PNG file at the given path.
func WritePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

// sanitizeLabel replaces characters that are unsafe in file names with
// underscores and falls back to "unlabeled" for empty strings.
func sanitizeLabel(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return "unlabeled"
	}
	var b strings.Builder
	b.Grow(len(label))
	for _, r := range label {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z',
			r >= '0' && r <= '9', r == '-', r == '.':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}
