// Copyright The LTTng Authors
// SPDX-License-Identifier: Apache-2.0

package relay

import (
	"sync"

	"go.lttng.org/relayd-core/epoch"
)

// CTFTrace is one CTF trace within a relay session, keyed by its subpath in
// the session's trace table. It stays reachable from that table for as long
// as its refcount is above zero, and stays alive for as long as any of its
// streams hold a Ref on it.
type CTFTrace struct {
	ID      uint64
	Subpath string

	domain *epoch.Domain

	mu                   sync.Mutex
	streams              []*Stream
	viewerMetadataStream *epoch.Ref[ViewerStream]
}

// AddStream allocates a new Stream on the trace. traceRef is a live Ref the
// caller already holds on this same trace; it is cloned for the new stream to
// hold for its own lifetime and is not consumed by this call.
func (t *CTFTrace) AddStream(traceRef epoch.Ref[CTFTrace]) *Stream {
	id := t.domain.NextID()
	s := newStream(id, traceRef.Clone())

	t.mu.Lock()
	t.streams = append(t.streams, s)
	t.mu.Unlock()
	return s
}

// Streams returns a snapshot of the trace's currently linked streams.
func (t *CTFTrace) Streams() []*Stream {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]*Stream(nil), t.streams...)
}

// Close calls TryClose on every stream currently linked to the trace. It is
// idempotent: streams already Closing or Destroyed are left untouched. Close
// does not itself destroy streams or wait for their refs to drop; that is
// driven by whatever external collaborator finishes draining each stream.
func (t *CTFTrace) Close() {
	for _, s := range t.Streams() {
		s.TryClose()
	}
}

// GetViewerMetadataStream atomically obtains a Ref to the trace's published
// viewer-side metadata stream, reporting false if none has been published yet.
func (t *CTFTrace) GetViewerMetadataStream() (epoch.Ref[ViewerStream], bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.viewerMetadataStream == nil {
		return epoch.Ref[ViewerStream]{}, false
	}
	return t.viewerMetadataStream.Clone(), true
}

// PublishViewerMetadataStream records ref as the trace's viewer-side metadata
// stream. A second call replaces the previous publication, releasing the Ref
// this trace was holding on it.
func (t *CTFTrace) PublishViewerMetadataStream(ref epoch.Ref[ViewerStream]) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.viewerMetadataStream != nil {
		t.viewerMetadataStream.Release()
	}
	t.viewerMetadataStream = &ref
}
