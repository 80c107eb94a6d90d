package dispatch

import "sync"

// Ring is a thread-safe buffer that doubles its capacity when full, so
// a slow consumer never causes samples to be dropped or reordered.
type Ring[T any] struct {
	mu     sync.Mutex
	cond   *sync.Cond
	buf    []T
	head   int
	tail   int
	count  int
	closed bool
}

// NewRing creates a ring with the given initial capacity.
func NewRing[T any](capacity int) *Ring[T] {
	if capacity < 1 {
		capacity = 1
	}
	r := &Ring[T]{buf: make([]T, capacity)}
	r.cond = sync.NewCond(&r.mu)
	return r
}

// Push appends an item, growing the ring when full.
// Returns false once the ring is closed.
func (r *Ring[T]) Push(item T) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return false
	}

	if r.count == len(r.buf) {
		r.grow()
	}

	r.buf[r.tail] = item
	r.tail = (r.tail + 1) % len(r.buf)
	r.count++

	r.cond.Signal()
	return true
}

// Pop removes the oldest item, blocking until one is available.
// The second return is false when the ring is closed and drained.
func (r *Ring[T]) Pop() (T, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for r.count == 0 && !r.closed {
		r.cond.Wait()
	}

	if r.count == 0 {
		var zero T
		return zero, false
	}
	return r.take(), true
}

// TryPop removes the oldest item without blocking.
func (r *Ring[T]) TryPop() (T, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.count == 0 {
		var zero T
		return zero, false
	}
	return r.take(), true
}

// Drain removes and returns every buffered item in order.
func (r *Ring[T]) Drain() []T {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.count == 0 {
		return nil
	}

	out := make([]T, 0, r.count)
	for r.count > 0 {
		out = append(out, r.take())
	}
	return out
}

// Close stops further pushes. Buffered items remain receivable.
func (r *Ring[T]) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.closed = true
	r.cond.Broadcast()
}

// Len returns the number of buffered items.
func (r *Ring[T]) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.count
}

// take removes the head item. Caller holds the lock.
func (r *Ring[T]) take() T {
	item := r.buf[r.head]
	var zero T
	r.buf[r.head] = zero
	r.head = (r.head + 1) % len(r.buf)
	r.count--
	return item
}

// grow doubles capacity. Caller holds the lock.
func (r *Ring[T]) grow() {
	newBuf := make([]T, len(r.buf)*2)
	if r.head < r.tail {
		copy(newBuf, r.buf[r.head:r.tail])
	} else {
		n := copy(newBuf, r.buf[r.head:])
		copy(newBuf[n:], r.buf[:r.tail])
	}
	r.buf = newBuf
	r.head = 0
	r.tail = r.count
}
