// Copyright The LTTng Authors
// SPDX-License-Identifier: Apache-2.0

package trace

import (
	"fmt"

	"github.com/google/uuid"
)

// TraceClass is the root of the trace object model: one per CTF trace, owning
// the ABI it was produced under, its environment, its clock classes, and its
// stream classes.
type TraceClass struct {
	ABI         ABI
	UUID        uuid.UUID
	Environment []EnvEntry
	// PacketHeader is the structure emitted as the trace-level packet.header
	// type; nil means the trace fragment carries no packet.header at all.
	PacketHeader *Structure

	clocks  []*ClockClass
	streams []*StreamClass
}

// NewTraceClass builds a TraceClass, validating the ABI and generating a random
// UUID if the caller does not supply one via WithUUID.
func NewTraceClass(abi ABI) (*TraceClass, error) {
	if err := abi.Validate(); err != nil {
		return nil, err
	}
	id, err := uuid.NewRandom()
	if err != nil {
		return nil, fmt.Errorf("trace: generating trace UUID: %w", err)
	}
	return &TraceClass{ABI: abi, UUID: id}, nil
}

// WithUUID overrides the generated UUID, for callers resuming a trace whose
// UUID must match an existing metadata stream.
func (t *TraceClass) WithUUID(id uuid.UUID) *TraceClass {
	t.UUID = id
	return t
}

// SetEnv appends (or, if key already exists, overwrites in place, preserving
// the original position) one environment entry.
func (t *TraceClass) SetEnv(key string, value EnvValue) {
	for i := range t.Environment {
		if t.Environment[i].Key == key {
			t.Environment[i].Value = value
			return
		}
	}
	t.Environment = append(t.Environment, EnvEntry{Key: key, Value: value})
}

// AddClockClass registers a clock class with the trace, rejecting a duplicate
// name.
func (t *TraceClass) AddClockClass(c *ClockClass) error {
	for _, existing := range t.clocks {
		if existing.Name == c.Name {
			return fmt.Errorf("%w: duplicate clock class name %q", ErrInvalidIdentifier, c.Name)
		}
	}
	t.clocks = append(t.clocks, c)
	return nil
}

// ClockClasses returns the trace's clock classes in registration order.
func (t *TraceClass) ClockClasses() []*ClockClass {
	return t.clocks
}

// HasClockClass reports whether name refers to a registered clock class.
func (t *TraceClass) HasClockClass(name string) bool {
	for _, c := range t.clocks {
		if c.Name == name {
			return true
		}
	}
	return false
}

// AddStreamClass registers a stream class, validating its default-clock
// reference (if any) against the trace's registered clock classes and
// rejecting a duplicate stream class id.
func (t *TraceClass) AddStreamClass(s *StreamClass) error {
	if s.DefaultClockClassName != "" && !t.HasClockClass(s.DefaultClockClassName) {
		return fmt.Errorf("%w: stream class %d references unknown clock class %q",
			ErrMissingDefaultClock, s.ID, s.DefaultClockClassName)
	}
	for _, existing := range t.streams {
		if existing.ID == s.ID {
			return fmt.Errorf("%w: duplicate stream class id %d", ErrInvalidFieldType, s.ID)
		}
	}
	t.streams = append(t.streams, s)
	return nil
}

// StreamClasses returns the trace's stream classes in registration order.
func (t *TraceClass) StreamClasses() []*StreamClass {
	return t.streams
}
