// Copyright The LTTng Authors
// SPDX-License-Identifier: Apache-2.0

// Package relay implements the runtime session/trace/stream/viewer lifecycle a
// relay daemon manages: relay sessions holding CTF traces keyed by subpath,
// per-stream state machines, and viewer sessions/streams attaching to them.
// Trace chunk storage, wire framing, and the filter-expression language are
// external collaborators this package only reaches through narrow interfaces.
package relay // import "go.lttng.org/relayd-core/relay"

// ChunkHandle is an opaque reference to a trace chunk owned by an external
// chunk-registry collaborator. The core never inspects a chunk beyond copying
// and releasing its handle.
type ChunkHandle interface {
	// Copy returns an independent handle referencing the same underlying chunk,
	// or (nil, false) if the chunk has already vanished.
	Copy() (ChunkHandle, bool)
	Release()
}
