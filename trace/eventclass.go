// Copyright The LTTng Authors
// SPDX-License-Identifier: Apache-2.0

package trace

import "fmt"

// EventClass describes one event type: its id (unique within its stream
// class), name, log level, optional EMF (Eclipse Modeling Framework) URI used
// by some viewers to resolve a model-trace link, and payload type.
type EventClass struct {
	ID            uint64
	Name          string
	StreamClassID uint64
	LogLevel      int
	EMFURI        string
	HasEMFURI     bool
	Payload       *Structure
}

// NewEventClass builds an EventClass, requiring a non-empty name.
func NewEventClass(id uint64, name string, logLevel int, payload *Structure) (*EventClass, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: event class name must not be empty", ErrInvalidIdentifier)
	}
	return &EventClass{ID: id, Name: name, LogLevel: logLevel, Payload: payload}, nil
}

// WithEMFURI attaches an EMF URI, returning the same pointer for chaining.
func (e *EventClass) WithEMFURI(uri string) *EventClass {
	e.EMFURI = uri
	e.HasEMFURI = true
	return e
}
