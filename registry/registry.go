// Copyright The LTTng Authors
// SPDX-License-Identifier: Apache-2.0

// Package registry holds the process-scoped state a relay daemon needs
// exactly one of: the epoch domain every Ref and WeakLookup in the process
// shares, the session table sessions are looked up through, and the global
// viewer-stream table every viewer session's streams are also linked into.
package registry // import "go.lttng.org/relayd-core/registry"

import (
	"fmt"
	"time"

	"go.lttng.org/relayd-core/epoch"
	"go.lttng.org/relayd-core/relay"
)

// Registry is the single process-wide instance a daemon constructs at
// startup and tears down at shutdown.
type Registry struct {
	Domain *epoch.Domain

	sessions      *epoch.WeakLookup[uint64, relay.Session]
	viewerStreams *epoch.WeakLookup[uint64, relay.ViewerStream]
}

// New constructs an empty Registry with a fresh epoch domain.
func New() *Registry {
	return &Registry{
		Domain:        epoch.NewDomain(),
		sessions:      epoch.NewWeakLookup[uint64, relay.Session](),
		viewerStreams: epoch.NewWeakLookup[uint64, relay.ViewerStream](),
	}
}

// CreateSession mints a fresh session id and publishes a new Session under it,
// returning the initial Ref. Once the session's refcount reaches zero, its
// onDestroyed hook closes every CTFTrace still linked to it (and, in turn,
// every stream of each), per the session teardown lifecycle.
func (r *Registry) CreateSession(name, hostname string, liveTimerInterval time.Duration) epoch.Ref[relay.Session] {
	id := r.Domain.NextID()
	session := relay.NewSession(r.Domain, id, name, hostname, liveTimerInterval)
	return r.sessions.Insert(r.Domain, id, *session, session.Close)
}

// GetSession acquires a Ref to the session with the given id, failing with
// relay.ErrSessionVanishing if it can no longer be referenced.
func (r *Registry) GetSession(id uint64) (epoch.Ref[relay.Session], error) {
	ref, err := r.sessions.Acquire(r.Domain, id)
	if err != nil {
		return ref, fmt.Errorf("%w: %w", relay.ErrSessionVanishing, err)
	}
	return ref, nil
}

// Sessions returns the underlying session table, for collaborators (such as
// relay.ViewerSession.Attach) that need to acquire a Ref themselves rather
// than go through GetSession.
func (r *Registry) Sessions() *epoch.WeakLookup[uint64, relay.Session] {
	return r.sessions
}

// PublishViewerStream mints a fresh viewer-stream id and inserts a new
// ViewerStream into the global table, returning the table's own Ref (the
// first of the two refs spec'd for a viewer stream) alongside the id.
func (r *Registry) PublishViewerStream(streamID, sessionID uint64) (uint64, epoch.Ref[relay.ViewerStream]) {
	id := r.Domain.NextID()
	vstream := relay.ViewerStream{ID: id, StreamID: streamID, SessionID: sessionID}
	ref := r.viewerStreams.Insert(r.Domain, id, vstream, nil)
	return id, ref
}

// AcquireViewerStream looks up a published viewer stream by id, for a viewer
// session linking one in via relay.ViewerSession.AttachViewerStream.
func (r *Registry) AcquireViewerStream(id uint64) (epoch.Ref[relay.ViewerStream], error) {
	return r.viewerStreams.Acquire(r.Domain, id)
}

// CloseSessionForViewer implements the viewer-close protocol of a single
// session detach: it walks vs's linked viewer streams for sessionID, releases
// both refs on each (sufficient to trigger their teardown once no other
// reference remains), then detaches the session itself from vs. It leaves
// vs's currentTraceChunk untouched, since that handle belongs to the viewer
// session as a whole, not to any one attached relay session; tearing down the
// viewer session itself is a separate call to vs.Close.
func (r *Registry) CloseSessionForViewer(vs *relay.ViewerSession, sessionID uint64) {
	detached := vs.DetachStreamsForSession(sessionID)
	relay.ReleaseDetached(detached)
	vs.Detach(sessionID)
}
