// Package rc provides the atomic reference count embedded in every
// persistent (shared, immutable) node of the canvas tree: tiles, layer
// content, layer props, layer lists, and canvas states.
//
// A node is persistent (shared) while its count may be >1; it becomes a
// transient (exclusively owned) mutable clone via TransientNew-style
// constructors in the owning package, which reset the count to 1. The
// counter itself knows nothing about that duality — it only tracks how
// many parents currently hold a reference.
package rc

import "sync/atomic"

// Counter is a relaxed, concurrency-safe reference count.
//
// Incref/Decref are safe to call from any goroutine without additional
// synchronization: readers may drop their reference to a snapshot while
// another goroutine holds or drops references to the same shared node.
// Mutation of a transient node (refcount == 1, exclusively owned) is not
// protected by Counter itself; the caller's single-writer discipline is
// what makes that safe.
type Counter struct {
	n atomic.Int32
}

// NewCounter returns a counter initialized to 1, as when a brand new
// persistent object is created with a single owner.
func NewCounter() *Counter {
	c := &Counter{}
	c.n.Store(1)
	return c
}

// Incref increments the count. It is a no-op on a nil Counter, so callers
// can freely call Incref on the counter backing a nullable child
// reference.
func (c *Counter) Incref() {
	if c == nil {
		return
	}
	c.n.Add(1)
}

// Decref decrements the count and reports whether it reached zero. It is a
// no-op (returning false) on a nil Counter.
//
// Go's garbage collector reclaims the underlying object's memory once no
// references remain regardless of this count; Decref exists so that the
// tree's sharing discipline is independently verifiable and so a caller
// can hook cleanup (e.g. returning a tile to a pool) on the transition to
// zero.
func (c *Counter) Decref() bool {
	if c == nil {
		return false
	}
	return c.n.Add(-1) == 0
}

// Load returns the current count. Zero Counters (never incremented) and nil
// Counters both report 0.
func (c *Counter) Load() int32 {
	if c == nil {
		return 0
	}
	return c.n.Load()
}

// Reset sets the count back to 1, as if a single owner held the object.
func (c *Counter) Reset() {
	c.n.Store(1)
}
