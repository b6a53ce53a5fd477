// Copyright The LTTng Authors
// SPDX-License-Identifier: Apache-2.0

package relay

// ViewerStream is a viewer-facing shadow of one relay Stream, linked into the
// registry's global viewer-stream table. It carries just enough of its own
// identity plus a back-reference to the owning session for the viewer-close
// walk (relay.ViewerSession.DetachStreamsForSession) to find the streams that
// belong to a session being detached.
type ViewerStream struct {
	ID        uint64
	StreamID  uint64
	SessionID uint64
}
