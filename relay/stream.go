// Copyright The LTTng Authors
// SPDX-License-Identifier: Apache-2.0

package relay

import (
	"sync/atomic"

	"go.lttng.org/relayd-core/epoch"
)

// StreamState is a relay stream's position in its readiness state machine:
//
//	Allocated --publish--> Indexed --data-boundary--> Ready
//	                            ^                         |
//	                            +---------try_close-------+
//	                                       |
//	                                       v
//	                                    Closing --refs->0--> Destroyed
type StreamState int32

const (
	StreamAllocated StreamState = iota
	StreamIndexed
	StreamReady
	StreamClosing
	StreamDestroyed
)

func (s StreamState) String() string {
	switch s {
	case StreamAllocated:
		return "Allocated"
	case StreamIndexed:
		return "Indexed"
	case StreamReady:
		return "Ready"
	case StreamClosing:
		return "Closing"
	case StreamDestroyed:
		return "Destroyed"
	default:
		return "Invalid"
	}
}

// Stream is a per-CPU relay stream belonging to one CTFTrace. While alive it
// holds one Ref on that trace, released when the stream is destroyed; this is
// what keeps a CTFTrace alive for as long as any of its streams are.
type Stream struct {
	ID uint64

	state    atomic.Int32
	traceRef epoch.Ref[CTFTrace]
}

func newStream(id uint64, traceRef epoch.Ref[CTFTrace]) *Stream {
	s := &Stream{ID: id, traceRef: traceRef}
	s.state.Store(int32(StreamAllocated))
	return s
}

// State returns the stream's current readiness state.
func (s *Stream) State() StreamState {
	return StreamState(s.state.Load())
}

// Publish transitions Allocated to Indexed, reporting whether this call made
// the transition.
func (s *Stream) Publish() bool {
	return s.state.CompareAndSwap(int32(StreamAllocated), int32(StreamIndexed))
}

// MarkReady transitions Indexed to Ready at the next packet boundary.
func (s *Stream) MarkReady() bool {
	return s.state.CompareAndSwap(int32(StreamIndexed), int32(StreamReady))
}

// TryClose moves the stream to Closing from any state other than Closing or
// Destroyed. Concurrent readers that already hold a Ref on the stream's trace
// continue to observe a consistent snapshot. TryClose does not unlink the
// stream from its trace: CTFTrace.Streams keeps listing it.
func (s *Stream) TryClose() {
	for {
		cur := StreamState(s.state.Load())
		if cur == StreamClosing || cur == StreamDestroyed {
			return
		}
		if s.state.CompareAndSwap(int32(cur), int32(StreamClosing)) {
			return
		}
	}
}

// Destroy transitions a Closing stream to Destroyed and releases its Ref on
// the owning trace. Calling Destroy on a stream that is not Closing is a
// caller error; Destroy is the only path that drops the stream's trace Ref,
// so it must run at most once.
func (s *Stream) Destroy() {
	if !s.state.CompareAndSwap(int32(StreamClosing), int32(StreamDestroyed)) {
		return
	}
	s.traceRef.Release()
}
