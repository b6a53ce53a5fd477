// Copyright The LTTng Authors
// SPDX-License-Identifier: Apache-2.0

package epoch

import (
	"sync"
	"sync/atomic"
)

// entry is the refcounted slot a WeakLookup stores. Its lifetime is: created with
// count 1, handed out as additional Refs via getUnlessZero, and torn down the
// instant the count reaches zero.
type entry[T any] struct {
	value T

	domain *Domain

	// count is the number of live Refs to the entry: it starts at 1 for the Ref
	// handed back by Insert/GetOrInsert and every further Ref adds 1. The table
	// itself holds no count. It is manipulated with an increment-unless-zero CAS
	// loop so that a lookup racing the final release never resurrects the entry.
	count atomic.Int64

	// onZero runs synchronously, in the goroutine whose release drove count to
	// zero, before onDestroyed is scheduled. It exists to unlink the entry from
	// its table and takes that table's write lock itself.
	onZero func()

	// onDestroyed runs once, after the grace period following the release that
	// drove count to zero. It exists to run the caller's teardown logic (closing
	// a stream, running a trace's close sequence) only once no concurrent reader
	// could still be observing the entry through a Read section.
	onDestroyed func()

	destroyed sync.Once
}

func newEntry[T any](domain *Domain, value T, onDestroyed func()) *entry[T] {
	e := &entry[T]{
		value:       value,
		domain:      domain,
		onDestroyed: onDestroyed,
	}
	e.count.Store(1)
	return e
}

// getUnlessZero atomically increments the count unless it has already reached
// zero, returning whether the increment happened.
func (e *entry[T]) getUnlessZero() bool {
	for {
		cur := e.count.Load()
		if cur <= 0 {
			return false
		}
		if e.count.CompareAndSwap(cur, cur+1) {
			return true
		}
	}
}

// release decrements the count. The caller that drives it to zero runs onZero
// synchronously and then schedules onDestroyed after the owning Domain's grace
// period.
func (e *entry[T]) release() {
	n := e.count.Add(-1)
	switch {
	case n > 0:
		return
	case n < 0:
		panic("epoch: entry released more times than it was acquired")
	}

	e.destroyed.Do(func() {
		if e.onZero != nil {
			e.onZero()
		}
		if e.onDestroyed == nil {
			return
		}
		if e.domain == nil {
			e.onDestroyed()
			return
		}
		e.domain.afterGracePeriod(e.onDestroyed)
	})
}

// Ref is a StrongRef: an owning handle on a value stored in a WeakLookup. While any
// Ref to an entry exists, the entry's value is guaranteed alive. Each Ref must be
// released exactly once.
type Ref[T any] struct {
	e        *entry[T]
	released sync.Once
}

// Get returns a pointer to the referenced value. The pointer is valid until Release
// is called on this Ref.
func (r *Ref[T]) Get() *T {
	return &r.e.value
}

// Release drops this Ref's contribution to the entry's refcount. Calling Release
// more than once on the same Ref is a no-op; each distinct Ref obtained from
// WeakLookup must still be released exactly once.
func (r *Ref[T]) Release() {
	r.released.Do(r.e.release)
}

// Clone acquires a second independent Ref to the same entry, incrementing its
// count. It always succeeds: the caller already holds a live Ref, so the count
// cannot have reached zero.
func (r *Ref[T]) Clone() Ref[T] {
	if !r.e.getUnlessZero() {
		panic("epoch: Clone on a Ref whose entry already reached zero")
	}
	return Ref[T]{e: r.e}
}
