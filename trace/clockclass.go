// Copyright The LTTng Authors
// SPDX-License-Identifier: Apache-2.0

package trace

import (
	"fmt"

	"github.com/google/uuid"
)

// ClockClass describes one clock domain a trace's streams may reference by name.
type ClockClass struct {
	Name        string
	UUID        uuid.UUID
	HasUUID     bool
	Description string
	FrequencyHz uint64
	// Offset is the number of clock ticks since the Unix epoch at the point the
	// clock was zero, expressed in the clock's own tick units.
	Offset int64
}

// NewClockClass builds a ClockClass, requiring a non-empty name and a positive
// frequency. Uniqueness of the name within a trace is checked by
// TraceClass.AddClockClass, not here.
func NewClockClass(name string, frequencyHz uint64) (*ClockClass, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: clock class name must not be empty", ErrInvalidIdentifier)
	}
	if frequencyHz == 0 {
		return nil, fmt.Errorf("%w: clock class %q frequency must be positive",
			ErrInvalidFieldType, name)
	}
	return &ClockClass{Name: name, FrequencyHz: frequencyHz}, nil
}

// WithUUID attaches an explicit UUID to the clock class, returning the same
// pointer for chaining at construction time.
func (c *ClockClass) WithUUID(id uuid.UUID) *ClockClass {
	c.UUID = id
	c.HasUUID = true
	return c
}
