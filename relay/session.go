// Copyright The LTTng Authors
// SPDX-License-Identifier: Apache-2.0

package relay

import (
	"sync"
	"time"

	"go.lttng.org/relayd-core/epoch"
)

// Session is a relay session: one connection's worth of CTF traces, keyed by
// their subpath, plus the bookkeeping a viewer attach/detach needs.
type Session struct {
	ID                uint64
	Name              string
	Hostname          string
	LiveTimerInterval time.Duration

	domain *epoch.Domain

	mu                sync.Mutex
	viewerAttached    bool
	currentTraceChunk ChunkHandle

	traces *epoch.WeakLookup[string, CTFTrace]
}

// NewSession builds a Session that mints trace and stream ids from domain.
func NewSession(domain *epoch.Domain, id uint64, name, hostname string, liveTimerInterval time.Duration) *Session {
	return &Session{
		ID:                id,
		Name:              name,
		Hostname:          hostname,
		LiveTimerInterval: liveTimerInterval,
		domain:            domain,
		traces:            epoch.NewWeakLookup[string, CTFTrace](),
	}
}

// GetCTFTraceByPathOrCreate returns a Ref to the CTFTrace at subpath,
// creating one with a fresh monotonic id if none exists yet. Creation is
// exactly-once under concurrent callers: all of them observe the same object.
func (s *Session) GetCTFTraceByPathOrCreate(subpath string) epoch.Ref[CTFTrace] {
	ref, _ := s.traces.GetOrInsert(s.domain, subpath, func() CTFTrace {
		return CTFTrace{ID: s.domain.NextID(), Subpath: subpath, domain: s.domain}
	}, nil)
	return ref
}

// SetTraceChunk installs chunk as the session's current trace chunk, releasing
// whatever chunk was previously installed.
func (s *Session) SetTraceChunk(chunk ChunkHandle) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.currentTraceChunk != nil {
		s.currentTraceChunk.Release()
	}
	s.currentTraceChunk = chunk
}

// Close walks every CTFTrace still reachable through the session's trace
// table and closes it, which in turn closes each of its streams. It is meant
// to run once the session itself has become unreachable (see
// registry.Registry.CreateSession's onDestroyed hook), not while a live Ref
// to the session could still be racing a lookup against the same table.
func (s *Session) Close() {
	s.domain.Read(func() {
		s.traces.Range(func(_ string, t *CTFTrace) bool {
			t.Close()
			return true
		})
	})
}
