package quiz

// Window is a bounded FIFO of answer results. Pushing past capacity evicts
// the oldest entry.
type Window struct {
	buf   []bool
	start int
	n     int
}

// NewWindow creates a window holding at most capacity results.
// A capacity below 1 is treated as 1.
func NewWindow(capacity int) *Window {
	if capacity < 1 {
		capacity = 1
	}
	return &Window{buf: make([]bool, capacity)}
}

// Push appends a result, evicting the oldest one when full.
func (w *Window) Push(correct bool) {
	if w.n < len(w.buf) {
		w.buf[(w.start+w.n)%len(w.buf)] = correct
		w.n++
		return
	}
	w.buf[w.start] = correct
	w.start = (w.start + 1) % len(w.buf)
}

// Values returns the results from oldest to newest.
func (w *Window) Values() []bool {
	out := make([]bool, w.n)
	for i := range w.n {
		out[i] = w.buf[(w.start+i)%len(w.buf)]
	}
	return out
}

// Len returns the number of results held.
func (w *Window) Len() int { return w.n }

// Cap returns the window capacity.
func (w *Window) Cap() int { return len(w.buf) }

// Correct returns how many held results are true.
func (w *Window) Correct() int {
	c := 0
	for i := range w.n {
		if w.buf[(w.start+i)%len(w.buf)] {
			c++
		}
	}
	return c
}
