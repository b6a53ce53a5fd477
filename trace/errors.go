// Copyright The LTTng Authors
// SPDX-License-Identifier: Apache-2.0

package trace

import "errors"

var (
	// ErrInvalidABI is returned when an ABI's fields are internally inconsistent.
	ErrInvalidABI = errors.New("trace: invalid ABI")

	// ErrInvalidIdentifier is returned when a clock class or event class name is
	// empty, or when a clock class name is already registered on the trace.
	ErrInvalidIdentifier = errors.New("trace: invalid identifier")

	// ErrMissingDefaultClock is returned when an integer field carries the
	// DefaultClockTimestamp or PacketEndDefaultClockTimestamp role but its
	// enclosing StreamClass has no default clock class name.
	ErrMissingDefaultClock = errors.New("trace: role requires a default clock class")

	// ErrInvalidFieldType is returned by FieldType constructors when an
	// argument violates the model's invariants (e.g. an empty enum mapping
	// list, an alignment larger than the size, a nil element type).
	ErrInvalidFieldType = errors.New("trace: invalid field type")

	// ErrInvalidLocation is returned when a dynamic-length field's location
	// path is empty.
	ErrInvalidLocation = errors.New("trace: invalid field location")
)
