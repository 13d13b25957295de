package bough

// FrameID identifies a requested frame callback. Zero is never issued.
type FrameID uint64

// FrameScheduler is the host's per-frame primitive: run a callback once,
// before the next paint. Requests made while callbacks are running belong to
// the following frame.
type FrameScheduler interface {
	RequestFrame(fn func()) FrameID
	CancelFrame(id FrameID)
}

type frameRequest struct {
	id FrameID
	fn func()
}

// FrameQueue is a FrameScheduler pumped by the host: Run calls Step once per
// ebiten update, the render CLI once per output frame, tests whenever they
// want a frame to happen.
type FrameQueue struct {
	pending []frameRequest
	running []frameRequest
	nextID  FrameID
}

// NewFrameQueue creates an empty queue.
func NewFrameQueue() *FrameQueue {
	return &FrameQueue{}
}

// RequestFrame queues fn for the next Step.
func (q *FrameQueue) RequestFrame(fn func()) FrameID {
	q.nextID++
	q.pending = append(q.pending, frameRequest{id: q.nextID, fn: fn})
	return q.nextID
}

// CancelFrame drops a queued callback. Cancelling a callback that already ran
// or was never issued is a no-op. A callback cancelled by an earlier callback
// in the same Step does not run.
func (q *FrameQueue) CancelFrame(id FrameID) {
	if id == 0 {
		return
	}
	if removeFrame(&q.pending, id) {
		return
	}
	for i := range q.running {
		if q.running[i].id == id {
			q.running[i].fn = nil
			return
		}
	}
}

// Step runs every callback that was pending when Step was called, in request
// order, and returns how many ran.
func (q *FrameQueue) Step() int {
	if len(q.pending) == 0 {
		return 0
	}
	q.running, q.pending = q.pending, q.running[:0]
	ran := 0
	for i := range q.running {
		fn := q.running[i].fn
		if fn == nil {
			continue
		}
		q.running[i].fn = nil
		fn()
		ran++
	}
	q.running = q.running[:0]
	return ran
}

// Pending returns the number of callbacks waiting for the next Step.
func (q *FrameQueue) Pending() int {
	return len(q.pending)
}

func removeFrame(list *[]frameRequest, id FrameID) bool {
	s := *list
	for i := range s {
		if s[i].id == id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = frameRequest{}
			*list = s[:len(s)-1]
			return true
		}
	}
	return false
}
