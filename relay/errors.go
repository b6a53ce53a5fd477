// Copyright The LTTng Authors
// SPDX-License-Identifier: Apache-2.0

package relay

import "errors"

var (
	// ErrSessionVanishing is returned when a session referenced by a weak handle
	// (a session id) can no longer be acquired: its refcount had already reached
	// zero by the time the lookup ran.
	ErrSessionVanishing = errors.New("relay: session is vanishing")

	// ErrAlreadyAttached is returned by ViewerSession.Attach when the target
	// session already has a viewer attached.
	ErrAlreadyAttached = errors.New("relay: viewer already attached to session")
)
