package engine

// window is a fixed-capacity FIFO ring buffer. Appending beyond capacity
// evicts the oldest entry. The backing array is allocated once, so per-frame
// appends never reallocate.
type window[T any] struct {
	buf   []T
	start int
	count int
}

func newWindow[T any](capacity int) *window[T] {
	return &window[T]{buf: make([]T, capacity)}
}

// Append adds a value, evicting the oldest entry when full.
func (w *window[T]) Append(v T) {
	if w.count < len(w.buf) {
		w.buf[(w.start+w.count)%len(w.buf)] = v
		w.count++
		return
	}
	w.buf[w.start] = v
	w.start = (w.start + 1) % len(w.buf)
}

// Len returns the number of retained values.
func (w *window[T]) Len() int {
	return w.count
}

// At returns the i-th retained value, oldest first.
func (w *window[T]) At(i int) T {
	return w.buf[(w.start+i)%len(w.buf)]
}

// First returns the oldest retained value.
func (w *window[T]) First() (T, bool) {
	var zero T
	if w.count == 0 {
		return zero, false
	}
	return w.At(0), true
}

// Last returns the most recently appended value.
func (w *window[T]) Last() (T, bool) {
	var zero T
	if w.count == 0 {
		return zero, false
	}
	return w.At(w.count - 1), true
}

// Clear discards all retained values.
func (w *window[T]) Clear() {
	w.start = 0
	w.count = 0
}

// Values returns the retained values in insertion order.
func (w *window[T]) Values() []T {
	out := make([]T, w.count)
	for i := 0; i < w.count; i++ {
		out[i] = w.At(i)
	}
	return out
}
