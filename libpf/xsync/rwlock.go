// Copyright The LTTng Authors
// SPDX-License-Identifier: Apache-2.0

package xsync // import "go.lttng.org/relayd-core/libpf/xsync"

import "sync"

// RWMutex is a thin wrapper around sync.RWMutex that hides away the data it protects to ensure
// it's not accidentally accessed without actually holding the lock.
//
// The design is inspired by how Rust implements its locks: there is no direct pointer to the
// guarded value lying around to accidentally read or write outside of a locked section, so a
// missing RLock/WLock call is a compile error rather than a race condition that only shows up
// under `-race`.
//
// Example, guarding a lookup table the way relay.Session guards its ctf_traces table:
//
//	type streams struct {
//		table xsync.RWMutex[map[string]*Stream]
//	}
//
//	func (s *streams) lookup(subpath string) *Stream {
//		table := s.table.RLock()
//		defer s.table.RUnlock(&table)
//		return (*table)[subpath]
//	}
type RWMutex[T any] struct {
	guarded T
	mutex   sync.RWMutex
}

// NewRWMutex creates a new read-write mutex.
func NewRWMutex[T any](guarded T) RWMutex[T] {
	return RWMutex[T]{
		guarded: guarded,
	}
}

// RLock locks the mutex for reading, returning a pointer to the protected data.
//
// The caller **must not** write to the data pointed to by the returned pointer.
//
// Further, the caller **must not** let the returned pointer leak out of the scope of the function
// where it was originally created, except for temporarily borrowing it to other functions. The
// caller must make sure that callees never save this pointer anywhere.
func (mtx *RWMutex[T]) RLock() *T {
	mtx.mutex.RLock()
	return &mtx.guarded
}

// RUnlock unlocks the mutex after previously being locked by RLock.
//
// Pass a reference to the pointer returned from RLock here to ensure it is invalidated.
func (mtx *RWMutex[T]) RUnlock(ref **T) {
	*ref = nil
	mtx.mutex.RUnlock()
}

// WLock locks the mutex for writing, returning a pointer to the protected data.
//
// The caller **must not** let the returned pointer leak out of the scope of the function where it
// was originally created, except for temporarily borrowing it to other functions. The caller must
// make sure that callees never save this pointer anywhere.
func (mtx *RWMutex[T]) WLock() *T {
	mtx.mutex.Lock()
	return &mtx.guarded
}

// WUnlock unlocks the mutex after previously being locked by WLock.
//
// Pass a reference to the pointer returned from WLock here to ensure it is invalidated.
func (mtx *RWMutex[T]) WUnlock(ref **T) {
	*ref = nil
	mtx.mutex.Unlock()
}
