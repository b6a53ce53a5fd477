// Copyright The LTTng Authors
// SPDX-License-Identifier: Apache-2.0

package trace

import "fmt"

// StreamClass describes one category of stream within a trace: its id, the
// clock it defaults to, and the three structural types (event header, packet
// context, event context) shared by every event emitted on streams of this
// class.
type StreamClass struct {
	ID                    uint64
	DefaultClockClassName string
	EventHeaderType       *Structure
	PacketContextType     *Structure
	EventContextType      *Structure

	events []*EventClass
}

// NewStreamClass builds a StreamClass, validating that any DEFAULT_CLOCK_TIMESTAMP
// or PACKET_END_DEFAULT_CLOCK_TIMESTAMP role appearing in the header/context
// types only does so when defaultClockClassName is non-empty.
func NewStreamClass(id uint64, defaultClockClassName string,
	eventHeader, packetContext, eventContext *Structure) (*StreamClass, error) {
	s := &StreamClass{
		ID:                    id,
		DefaultClockClassName: defaultClockClassName,
		EventHeaderType:       eventHeader,
		PacketContextType:     packetContext,
		EventContextType:      eventContext,
	}
	if err := s.validateClockRoles(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *StreamClass) validateClockRoles() error {
	for _, st := range []*Structure{s.EventHeaderType, s.PacketContextType} {
		if st == nil {
			continue
		}
		if err := walkIntegers(st, func(i *Integer) error {
			if s.DefaultClockClassName != "" {
				return nil
			}
			if i.HasRole(RoleDefaultClockTimestamp) || i.HasRole(RolePacketEndDefaultClockTimestamp) {
				return fmt.Errorf("%w: stream class %d", ErrMissingDefaultClock, s.ID)
			}
			return nil
		}); err != nil {
			return err
		}
	}
	return nil
}

// walkIntegers recursively visits every Integer reachable from t, including
// through arrays, enums, and variants, calling fn on each.
func walkIntegers(t FieldType, fn func(*Integer) error) error {
	switch v := t.(type) {
	case *Integer:
		return fn(v)
	case *SignedEnum:
		return walkIntegers(&v.Underlying, fn)
	case *UnsignedEnum:
		return walkIntegers(&v.Underlying, fn)
	case *StaticArray:
		return walkIntegers(v.Element, fn)
	case *DynamicArray:
		return walkIntegers(v.Element, fn)
	case *Structure:
		for _, f := range v.Fields {
			if err := walkIntegers(f.Type, fn); err != nil {
				return err
			}
		}
		return nil
	case *Variant:
		for _, c := range v.Choices {
			if err := walkIntegers(c.Type, fn); err != nil {
				return err
			}
		}
		return nil
	default:
		return nil
	}
}

// AddEventClass registers an event class on the stream, rejecting a duplicate
// event class id.
func (s *StreamClass) AddEventClass(e *EventClass) error {
	for _, existing := range s.events {
		if existing.ID == e.ID {
			return fmt.Errorf("%w: duplicate event class id %d on stream class %d",
				ErrInvalidFieldType, e.ID, s.ID)
		}
	}
	e.StreamClassID = s.ID
	s.events = append(s.events, e)
	return nil
}

// EventClasses returns the stream class's event classes in registration order.
func (s *StreamClass) EventClasses() []*EventClass {
	return s.events
}
