// Copyright The LTTng Authors
// SPDX-License-Identifier: Apache-2.0

// Package tsdl serializes the trace object model (package trace) into CTF 1.8
// TSDL text fragments, bit-stable against the historical consumers of this
// trace format.
package tsdl // import "go.lttng.org/relayd-core/tsdl"

import (
	"fmt"
	"strings"

	"go.lttng.org/relayd-core/libpf"
	"go.lttng.org/relayd-core/libpf/freelru"
	"go.lttng.org/relayd-core/libpf/hash"
)

// reservedIdentifiers is the fixed whitelist of CTF role names that pass
// through identifier escaping unchanged. This list is stable: historical
// consumers parse these exact names and must never see them rewritten.
var reservedIdentifiers = libpf.SliceToSet([]string{
	"stream_id", "packet_size", "content_size", "id", "v", "timestamp",
	"events_discarded", "packet_seq_num", "timestamp_begin", "timestamp_end",
	"cpu_id", "magic", "uuid", "stream_instance_id",
})

func isIdentifierChar(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') || c == '_'
}

// EscapeIdentifier turns an arbitrary user-space field/clock/stream name into a
// valid TSDL identifier: names in the reserved whitelist pass through
// unchanged, everything else is prefixed with `_` and has every character
// outside `[A-Za-z0-9_]` replaced with `_`. An empty name is an error.
//
// The leading-underscore prefix looks redundant once escaping has also
// normalized the body, but it is not: historical consumers of this format key
// off the leading underscore to distinguish a tracer-supplied field from a
// reserved one, so it must never be optimized away.
func EscapeIdentifier(name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("%w: empty identifier", ErrInvalidIdentifier)
	}
	if _, reserved := reservedIdentifiers[name]; reserved {
		return name, nil
	}

	var b strings.Builder
	b.Grow(len(name) + 1)
	b.WriteByte('_')
	for i := 0; i < len(name); i++ {
		c := name[i]
		if isIdentifierChar(c) {
			b.WriteByte(c)
		} else {
			b.WriteByte('_')
		}
	}
	return b.String(), nil
}

// identifierCacheCapacity bounds the bounded identifier-escape cache. Field and
// clock names repeat heavily across events within one trace (the same handful
// of field names recur on every event of a given class), so a small cache
// captures almost all repeat traffic.
const identifierCacheCapacity = 1024

// identifierCache memoizes EscapeIdentifier, since a busy trace re-escapes the
// same handful of identifiers on every single event emitted.
type identifierCache struct {
	lru *freelru.LRU[string, string]
}

func newIdentifierCache() *identifierCache {
	lru, err := freelru.New[string, string](identifierCacheCapacity, func(s string) uint32 {
		return hash.String(s)
	})
	if err != nil {
		// Only returns an error for a zero or non-power-of-two capacity; both
		// are programmer errors here, not a runtime condition callers need to
		// handle.
		panic(fmt.Sprintf("tsdl: constructing identifier cache: %v", err))
	}
	return &identifierCache{lru: lru}
}

func (c *identifierCache) escape(name string) (string, error) {
	if cached, ok := c.lru.Get(name); ok {
		return cached, nil
	}
	escaped, err := EscapeIdentifier(name)
	if err != nil {
		return "", err
	}
	c.lru.Add(name, escaped)
	return escaped, nil
}
