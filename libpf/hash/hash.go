// Copyright The LTTng Authors
// SPDX-License-Identifier: Apache-2.0

// Package hash provides small, dependency-free hash primitives used to key the
// bounded caches in this module (the TSDL identifier-escape cache).
package hash // import "go.lttng.org/relayd-core/libpf/hash"

// Uint32 computes a hash of a 32-bit uint using the finalizer function for Murmur.
// 32-bit via https://en.wikipedia.org/wiki/MurmurHash#Algorithm
func Uint32(x uint32) uint32 {
	x ^= x >> 16
	x *= 0x85ebca6b
	x ^= x >> 13
	x *= 0xc2b2ae35
	x ^= x >> 16
	return x
}

// Uint64 computes a hash of a 64-bit uint using the finalizer function for Murmur3
// Via https://lemire.me/blog/2018/08/15/fast-strongly-universal-64-bit-hashing-everywhere/
func Uint64(x uint64) uint64 {
	x ^= x >> 33
	x *= 0xff51afd7ed558ccd
	x ^= x >> 33
	x *= 0xc4ceb9fe1a85ec53
	x ^= x >> 33
	return x
}

// String hashes an arbitrary string with FNV-1a, then runs the result through the
// Murmur finalizer above to spread low-entropy inputs (short identifiers, path
// fragments) across the full 32-bit range.
func String(s string) uint32 {
	const (
		fnvOffset = 2166136261
		fnvPrime  = 16777619
	)

	h := uint32(fnvOffset)
	for i := 0; i < len(s); i++ {
		h ^= uint32(s[i])
		h *= fnvPrime
	}

	return Uint32(h)
}
