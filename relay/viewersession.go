// Copyright The LTTng Authors
// SPDX-License-Identifier: Apache-2.0

package relay

import (
	"sync"

	"go.lttng.org/relayd-core/epoch"
)

type attachedSession struct {
	ref epoch.Ref[Session]
}

type attachedViewerStream struct {
	tableRef   epoch.Ref[ViewerStream]
	sessionRef epoch.Ref[ViewerStream]
}

// ViewerSession is a live-viewer client's view: the set of relay sessions it
// is attached to, the viewer streams it has pulled in from those sessions'
// traces, and the one trace chunk handle it currently holds. The chunk handle
// belongs to the viewer session as a whole, not to any one attached relay
// session: every successful Attach overwrites it with a fresh copy of the
// target session's current chunk, a plain Detach leaves it untouched, and
// only Close releases it.
type ViewerSession struct {
	listMu   sync.Mutex
	sessions map[uint64]attachedSession
	streams  map[uint64]attachedViewerStream

	currentTraceChunk ChunkHandle
}

// NewViewerSession builds an empty ViewerSession.
func NewViewerSession() *ViewerSession {
	return &ViewerSession{
		sessions: make(map[uint64]attachedSession),
		streams:  make(map[uint64]attachedViewerStream),
	}
}

// Attach acquires a Ref on the session identified by sessionID through
// sessions, marks it as having a viewer attached (failing with AttachAlready
// if one already is), and links it into the viewer session's attached-session
// list. The session's current trace chunk, if any, is copied and installed as
// the viewer session's own currentTraceChunk, overwriting (and releasing)
// whatever was installed there before.
//
// Attach is only legal while the caller is not already holding the target
// session's lock; it takes that lock itself for the duration of the
// viewer-attached check and chunk copy.
func (vs *ViewerSession) Attach(domain *epoch.Domain, sessions *epoch.WeakLookup[uint64, Session], sessionID uint64) (AttachResult, error) {
	ref, ok := sessions.TryAcquire(domain, sessionID)
	if !ok {
		return AttachUnknown, ErrSessionVanishing
	}

	session := ref.Get()
	session.mu.Lock()
	if session.viewerAttached {
		session.mu.Unlock()
		ref.Release()
		return AttachAlready, ErrAlreadyAttached
	}

	var chunk ChunkHandle
	if session.currentTraceChunk != nil {
		var copied bool
		chunk, copied = session.currentTraceChunk.Copy()
		if !copied {
			session.mu.Unlock()
			ref.Release()
			return AttachUnknown, ErrSessionVanishing
		}
	}
	session.viewerAttached = true
	session.mu.Unlock()

	vs.listMu.Lock()
	vs.sessions[sessionID] = attachedSession{ref: ref}
	if vs.currentTraceChunk != nil {
		vs.currentTraceChunk.Release()
	}
	vs.currentTraceChunk = chunk
	vs.listMu.Unlock()
	return AttachOK, nil
}

// Detach reverses a prior successful Attach: it clears the session's
// viewer-attached flag and releases the session Ref. It does not touch
// currentTraceChunk; that handle outlives any one attach/detach cycle and is
// only released by Close. Detaching a session that was never attached is a
// no-op.
func (vs *ViewerSession) Detach(sessionID uint64) {
	vs.listMu.Lock()
	attached, found := vs.sessions[sessionID]
	if found {
		delete(vs.sessions, sessionID)
	}
	vs.listMu.Unlock()
	if !found {
		return
	}

	session := attached.ref.Get()
	session.mu.Lock()
	session.viewerAttached = false
	session.mu.Unlock()

	attached.ref.Release()
}

// Close tears down the viewer session itself, releasing its currentTraceChunk
// (if any) and clearing it. It does not detach any still-attached relay
// session; callers detach those individually via Detach first.
func (vs *ViewerSession) Close() {
	vs.listMu.Lock()
	defer vs.listMu.Unlock()
	if vs.currentTraceChunk != nil {
		vs.currentTraceChunk.Release()
		vs.currentTraceChunk = nil
	}
}

// AttachViewerStream links a viewer stream into this viewer session, storing
// both the table's own Ref and a dedicated session Ref on it per the two-refs
// rule: one keeps the entry reachable through the global table, the other
// keeps it reachable through this viewer session.
func (vs *ViewerSession) AttachViewerStream(streamID uint64, tableRef, sessionRef epoch.Ref[ViewerStream]) {
	vs.listMu.Lock()
	vs.streams[streamID] = attachedViewerStream{tableRef: tableRef, sessionRef: sessionRef}
	vs.listMu.Unlock()
}

// DetachStreamsForSession removes and returns every viewer stream this
// session has linked whose underlying relay stream belongs to sessionID. The
// caller is expected to release both Refs of each returned entry, which is
// sufficient to drive the viewer stream's teardown once no other reference
// remains.
func (vs *ViewerSession) DetachStreamsForSession(sessionID uint64) []attachedViewerStream {
	vs.listMu.Lock()
	defer vs.listMu.Unlock()

	var detached []attachedViewerStream
	for id, entry := range vs.streams {
		if entry.tableRef.Get().SessionID != sessionID {
			continue
		}
		detached = append(detached, entry)
		delete(vs.streams, id)
	}
	return detached
}

// ReleaseDetached releases both Refs of every entry, the step that actually
// drives a detached viewer stream's refcount to zero.
func ReleaseDetached(entries []attachedViewerStream) {
	for _, e := range entries {
		e.tableRef.Release()
		e.sessionRef.Release()
	}
}
