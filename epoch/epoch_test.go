// Copyright The LTTng Authors
// SPDX-License-Identifier: Apache-2.0

package epoch

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func TestRefLifecycle(t *testing.T) {
	domain := NewDomain()
	table := NewWeakLookup[string, int]()

	var destroyed atomic.Bool
	ref := table.Insert(domain, "a", 42, func() {
		destroyed.Store(true)
	})

	assert.Equal(t, 42, *ref.Get())
	assert.Equal(t, 1, table.Len())

	second, ok := table.TryAcquire(domain, "a")
	require.True(t, ok)
	assert.Equal(t, 42, *second.Get())

	ref.Release()
	// one live Ref remains (second), entry must still be in the table.
	assert.Equal(t, 1, table.Len())
	assert.False(t, destroyed.Load())

	second.Release()
	assert.Equal(t, 0, table.Len())
	assert.True(t, destroyed.Load())

	// Releasing again must not run onDestroyed a second time and must not panic.
	assert.NotPanics(t, second.Release)
}

func TestTryAcquireFailsOnceVanishing(t *testing.T) {
	domain := NewDomain()
	table := NewWeakLookup[string, int]()

	ref := table.Insert(domain, "a", 1, nil)
	ref.Release()

	_, ok := table.TryAcquire(domain, "a")
	assert.False(t, ok)

	_, err := table.Acquire(domain, "a")
	assert.ErrorIs(t, err, ErrVanishing)
}

// TestAcquireUnlessZeroRace exercises the core safety property of the refcount
// substrate: a release racing a fresh acquire attempt must never result in both
// succeeding, because that would hand out a Ref to an object already torn down.
func TestAcquireUnlessZeroRace(t *testing.T) {
	domain := NewDomain()
	table := NewWeakLookup[string, int]()

	for i := 0; i < 2000; i++ {
		ref := table.Insert(domain, "k", i, nil)

		var wg sync.WaitGroup
		var acquired atomic.Bool
		wg.Add(2)
		go func() {
			defer wg.Done()
			if r, ok := table.TryAcquire(domain, "k"); ok {
				acquired.Store(true)
				r.Release()
			}
		}()
		go func() {
			defer wg.Done()
			ref.Release()
		}()
		wg.Wait()

		// Whether or not the racing acquire won, the entry must end up gone once
		// both releases have run - there's no leaked Ref left dangling.
		assert.Eventually(t, func() bool {
			return table.Len() == 0
		}, time.Second, time.Millisecond)
	}
}

// TestGetOrInsertExactlyOnce is the generic substrate's version of the
// "exactly once, 16 concurrent creators" property: many goroutines racing
// GetOrInsert for the same key must observe exactly one inserted=true and every
// Ref must point at the same underlying value.
func TestGetOrInsertExactlyOnce(t *testing.T) {
	domain := NewDomain()
	table := NewWeakLookup[string, *int]()

	const n = 16
	refs := make([]Ref[*int], n)
	inserted := make([]bool, n)

	var g errgroup.Group
	for i := 0; i < n; i++ {
		i := i
		g.Go(func() error {
			value := new(int)
			*value = i
			ref, ok := table.GetOrInsert(domain, "shared", func() *int { return value }, nil)
			refs[i] = ref
			inserted[i] = ok
			return nil
		})
	}
	require.NoError(t, g.Wait())

	insertedCount := 0
	for _, ok := range inserted {
		if ok {
			insertedCount++
		}
	}
	assert.Equal(t, 1, insertedCount)

	first := *refs[0].Get()
	for _, r := range refs {
		assert.Same(t, first, *r.Get())
	}

	for _, r := range refs {
		r.Release()
	}
	assert.Equal(t, 0, table.Len())
}

func TestRangeVisitsEveryEntry(t *testing.T) {
	domain := NewDomain()
	table := NewWeakLookup[string, int]()

	refA := table.Insert(domain, "a", 1, nil)
	refB := table.Insert(domain, "b", 2, nil)
	defer refA.Release()
	defer refB.Release()

	seen := map[string]int{}
	domain.Read(func() {
		table.Range(func(key string, value *int) bool {
			seen[key] = *value
			return true
		})
	})
	assert.Equal(t, map[string]int{"a": 1, "b": 2}, seen)
}

func TestCloneIncrementsCount(t *testing.T) {
	domain := NewDomain()
	table := NewWeakLookup[string, int]()

	var destroyed atomic.Bool
	ref := table.Insert(domain, "a", 7, func() { destroyed.Store(true) })
	clone := ref.Clone()

	ref.Release()
	assert.False(t, destroyed.Load())

	clone.Release()
	assert.True(t, destroyed.Load())
}
