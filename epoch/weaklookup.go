// Copyright The LTTng Authors
// SPDX-License-Identifier: Apache-2.0

package epoch

import "go.lttng.org/relayd-core/libpf/xsync"

// WeakLookup is a keyed table of refcounted entries. Holding no Ref to an entry
// gives the caller no ownership guarantee over it: the entry may be destroyed by a
// concurrent Release at any time. Looking an entry up without first holding a Ref
// to it must happen inside the owning Domain's Read critical section, or through
// Acquire/TryAcquire, which open one internally.
type WeakLookup[K comparable, V any] struct {
	table xsync.RWMutex[map[K]*entry[V]]
}

// NewWeakLookup constructs an empty table.
func NewWeakLookup[K comparable, V any]() *WeakLookup[K, V] {
	return &WeakLookup[K, V]{table: xsync.NewRWMutex(make(map[K]*entry[V]))}
}

// TryAcquire looks key up and, if found and not already at a zero count, returns a
// live Ref to it. It opens its own Read critical section, so a single lookup does
// not require the caller to open one explicitly.
func (l *WeakLookup[K, V]) TryAcquire(domain *Domain, key K) (Ref[V], bool) {
	var (
		ref Ref[V]
		ok  bool
	)
	domain.Read(func() {
		table := l.table.RLock()
		defer l.table.RUnlock(&table)

		e, found := (*table)[key]
		if !found {
			return
		}
		if e.getUnlessZero() {
			ref, ok = Ref[V]{e: e}, true
		}
	})
	return ref, ok
}

// Acquire is TryAcquire with the absent/vanishing case folded into ErrVanishing,
// for call sites that want a single error return rather than a bool.
func (l *WeakLookup[K, V]) Acquire(domain *Domain, key K) (Ref[V], error) {
	ref, ok := l.TryAcquire(domain, key)
	if !ok {
		return Ref[V]{}, ErrVanishing
	}
	return ref, nil
}

// Insert publishes value under key with an initial count of 1, and returns a Ref
// representing that initial count to the caller. The entry is automatically
// unlinked from the table the moment its count reaches zero; onDestroyed, if
// non-nil, then runs once after the owning domain's grace period.
func (l *WeakLookup[K, V]) Insert(domain *Domain, key K, value V, onDestroyed func()) Ref[V] {
	e := newEntry(domain, value, onDestroyed)
	e.onZero = func() { l.Remove(key) }

	table := l.table.WLock()
	(*table)[key] = e
	l.table.WUnlock(&table)

	return Ref[V]{e: e}
}

// GetOrInsert returns a live Ref to the existing entry at key if one is already
// alive, otherwise it installs a new value (built lazily by makeValue, called
// at most once, while holding the table's write lock) and returns a fresh Ref
// to it. inserted reports whether a new entry was installed.
func (l *WeakLookup[K, V]) GetOrInsert(
	domain *Domain, key K, makeValue func() V, onDestroyed func(),
) (ref Ref[V], inserted bool) {
	if existing, ok := l.TryAcquire(domain, key); ok {
		return existing, false
	}

	table := l.table.WLock()
	defer l.table.WUnlock(&table)

	if e, found := (*table)[key]; found && e.getUnlessZero() {
		return Ref[V]{e: e}, false
	}

	e := newEntry(domain, makeValue(), onDestroyed)
	e.onZero = func() { l.Remove(key) }
	(*table)[key] = e
	return Ref[V]{e: e}, true
}

// Remove unlinks key from the table without touching any entry's refcount. It is
// used internally as the onZero hook installed by Insert/GetOrInsert, and is
// exposed for callers that need to force an entry out of lookup-ability (e.g. a
// session tearing down its whole trace table) independent of refcounting.
func (l *WeakLookup[K, V]) Remove(key K) {
	table := l.table.WLock()
	delete(*table, key)
	l.table.WUnlock(&table)
}

// Range iterates every entry currently in the table, calling fn with each key and
// a pointer to its value. fn's pointer is valid only for the duration of the call.
// Range does not open a Read critical section itself: per the package-level rule,
// the caller must either already hold a Ref on every element it touches, or call
// Range from inside the owning Domain's Read.
func (l *WeakLookup[K, V]) Range(fn func(key K, value *V) bool) {
	table := l.table.RLock()
	defer l.table.RUnlock(&table)

	for k, e := range *table {
		if !fn(k, &e.value) {
			return
		}
	}
}

// Len returns the number of entries currently in the table. An entry mid-teardown
// whose onZero hasn't yet run is still counted.
func (l *WeakLookup[K, V]) Len() int {
	table := l.table.RLock()
	defer l.table.RUnlock(&table)
	return len(*table)
}
