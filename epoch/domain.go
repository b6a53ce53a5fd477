// Copyright The LTTng Authors
// SPDX-License-Identifier: Apache-2.0

// Package epoch implements the refcount/grace-period substrate that the rest of
// this module builds its lifetime management on: a StrongRef/WeakLookup pair
// (Ref/WeakLookup here) instead of raw RCU pointers, so that a lookup racing a
// concurrent teardown fails explicitly rather than resurrecting a dying object.
package epoch // import "go.lttng.org/relayd-core/epoch"

import (
	"sync"
	"sync/atomic"
)

// Domain is the epoch-read/grace-period fence shared by every WeakLookup and Ref
// that belongs to the same process-scoped registry. There is normally exactly one
// Domain per process.
//
// Domain reuses sync.RWMutex as the fence: Read opens a read-side critical section
// (the "epoch_read" of the refcount substrate); afterGracePeriod proves no such
// section is in flight by momentarily taking the write side before running its
// callback. This is the same trade the xsync package makes when it wraps
// sync.RWMutex instead of hand-rolling a lock: sync.RWMutex's existing fairness
// guarantees give us the grace period for free.
type Domain struct {
	fence sync.RWMutex

	nextID atomic.Uint64
}

// NewDomain constructs a fresh epoch domain.
func NewDomain() *Domain {
	return &Domain{}
}

// Read runs fn inside a read-side critical section. Any code that reads a
// WeakLookup's table directly, without going through Acquire/TryAcquire and
// without already holding a Ref to every element it touches, must run inside Read.
func (d *Domain) Read(fn func()) {
	d.fence.RLock()
	defer d.fence.RUnlock()
	fn()
}

// afterGracePeriod blocks until every Read critical section in flight at the time
// of the call has exited, then runs fn. Acquiring the fence's write side can only
// succeed once all concurrent readers have released it, which is exactly the
// "destruction deferred past any concurrent reader's critical section" guarantee
// the refcount substrate requires.
func (d *Domain) afterGracePeriod(fn func()) {
	d.fence.Lock()
	d.fence.Unlock() //nolint:staticcheck // the lock/unlock pair itself is the fence.
	fn()
}

// NextID returns a fresh, process-unique, monotonically increasing identifier.
// Used for session, CTFTrace, stream, and viewer-stream ids.
func (d *Domain) NextID() uint64 {
	return d.nextID.Add(1)
}
