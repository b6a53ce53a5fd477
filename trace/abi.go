// Copyright The LTTng Authors
// SPDX-License-Identifier: Apache-2.0

// Package trace implements the typed trace object model: ABI, ClockClass,
// TraceClass, StreamClass, EventClass, and the FieldType sum type. These are pure
// data plus invariant-enforcing constructors and a visitor protocol; no string
// emission happens here (see package tsdl for that).
package trace // import "go.lttng.org/relayd-core/trace"

import "fmt"

// ByteOrder is the trace-wide or per-field byte order.
type ByteOrder uint8

const (
	LittleEndian ByteOrder = iota
	BigEndian
)

func (b ByteOrder) String() string {
	if b == BigEndian {
		return "be"
	}
	return "le"
}

// ABI carries the integer-width and alignment assumptions a trace was produced
// under.
type ABI struct {
	ByteOrder ByteOrder

	Uint8Alignment, Uint8Size   uint8
	Uint16Alignment, Uint16Size uint8
	Uint32Alignment, Uint32Size uint8
	Uint64Alignment, Uint64Size uint8
	LongAlignment, LongWidth    uint8
	BitsPerLong                 uint8
}

// DefaultABI returns the ABI of a typical 64-bit little-endian producer:
// natural alignment equal to size for every integer width, 64-bit long.
func DefaultABI() ABI {
	return ABI{
		ByteOrder:       LittleEndian,
		Uint8Alignment:  8, Uint8Size: 8,
		Uint16Alignment: 16, Uint16Size: 16,
		Uint32Alignment: 32, Uint32Size: 32,
		Uint64Alignment: 64, Uint64Size: 64,
		LongAlignment: 64, LongWidth: 64,
		BitsPerLong: 64,
	}
}

// Validate checks the internal consistency of an ABI: every size must be a
// positive multiple of 8, every alignment must be positive and no larger than
// its size, and LongWidth must match BitsPerLong
// (the two are meant to describe the same native word and would otherwise
// silently disagree, as the historical OQ-3 conflation in this trace format's
// reference implementation showed).
func (a ABI) Validate() error {
	for _, pair := range []struct {
		name        string
		size, align uint8
	}{
		{"uint8", a.Uint8Size, a.Uint8Alignment},
		{"uint16", a.Uint16Size, a.Uint16Alignment},
		{"uint32", a.Uint32Size, a.Uint32Alignment},
		{"uint64", a.Uint64Size, a.Uint64Alignment},
		{"long", a.LongWidth, a.LongAlignment},
	} {
		if pair.size == 0 || pair.size%8 != 0 {
			return fmt.Errorf("%w: %s size %d is not a positive multiple of 8",
				ErrInvalidABI, pair.name, pair.size)
		}
		if pair.align == 0 || pair.align > pair.size {
			return fmt.Errorf("%w: %s alignment %d is not in (0, %d]",
				ErrInvalidABI, pair.name, pair.align, pair.size)
		}
	}
	if a.LongWidth != a.BitsPerLong {
		return fmt.Errorf("%w: long width %d disagrees with bits-per-long %d",
			ErrInvalidABI, a.LongWidth, a.BitsPerLong)
	}
	return nil
}
