// Copyright The LTTng Authors
// SPDX-License-Identifier: Apache-2.0

package epoch

import "errors"

// ErrVanishing is returned by Acquire when a WeakLookup entry's refcount has already
// reached zero. A concurrent Release can drive an entry to zero, and thus out of the
// table, at any point between another goroutine's lookup and its increment attempt;
// the caller must treat the target as absent rather than resurrect it.
var ErrVanishing = errors.New("epoch: reference target is vanishing")
