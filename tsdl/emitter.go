// Copyright The LTTng Authors
// SPDX-License-Identifier: Apache-2.0

package tsdl

import (
	"fmt"
	"strings"

	"go.lttng.org/relayd-core/trace"
)

// AppendFragment is supplied by the collaborator that owns the metadata
// channel (a CTFTrace's metadata stream, in package relay). The emitter calls
// it once per top-level fragment, in the order trace, env, clocks, streams,
// events; each fragment is self-terminating with ";\n\n" so straight
// concatenation by the collaborator produces a valid TSDL document.
type AppendFragment func(text string) error

// Emitter serializes trace object model values into TSDL fragments. It holds
// no state across calls other than its identifier-escape cache and the
// bookkeeping needed to drive a full-tree Accept walk; the same Emitter can
// be reused across any number of traces.
type Emitter struct {
	append AppendFragment
	cache  *identifierCache

	pendingEnv []trace.EnvEntry
	envFlushed bool
	traceABI   trace.ABI
	err        error
}

// NewEmitter builds an Emitter that calls appendFragment once per fragment.
func NewEmitter(appendFragment AppendFragment) *Emitter {
	return &Emitter{append: appendFragment, cache: newIdentifierCache()}
}

func (e *Emitter) emit(fragment string) error {
	if err := e.append(fragment + ";\n\n"); err != nil {
		return fmt.Errorf("%w: %w", ErrIOAppend, err)
	}
	return nil
}

// EmitTraceClass appends the `trace { ... };` fragment: major/minor version,
// UUID, byte order, and packet.header type.
func (e *Emitter) EmitTraceClass(t *trace.TraceClass) error {
	var sb strings.Builder
	sb.WriteString("/* CTF 1.8 */\n")
	fmt.Fprintf(&sb, "trace { major = 1; minor = 8; uuid = %q; byte_order = %s;",
		t.UUID.String(), t.ABI.ByteOrder)
	if t.PacketHeader != nil {
		fv := newFieldVisitor(&sb, t.ABI, "", e.cache)
		sb.WriteString(" packet.header := ")
		sb.WriteString(fv.renderStructure(t.PacketHeader))
		sb.WriteString(";")
	}
	sb.WriteString(" }")
	return e.emit(sb.String())
}

// emitEnvironment appends the single `env { ... };` fragment, with string
// values escaped per EscapeEnvString and integer values printed in decimal.
// It is unexported: the environment has no standalone FieldType-level
// identity of its own (it is a property of the TraceClass), so it is never
// emitted except as a side effect of emitting the owning trace.
func (e *Emitter) emitEnvironment(entries []trace.EnvEntry) error {
	var sb strings.Builder
	sb.WriteString("env {")
	for _, entry := range entries {
		if entry.Value.IsString() {
			fmt.Fprintf(&sb, " %s = \"%s\";", entry.Key, EscapeEnvString(entry.Value.StringValue()))
		} else {
			fmt.Fprintf(&sb, " %s = %d;", entry.Key, entry.Value.IntValue())
		}
	}
	sb.WriteString(" }")
	return e.emit(sb.String())
}

// EmitClockClass appends one `clock { ... };` fragment.
func (e *Emitter) EmitClockClass(c *trace.ClockClass) error {
	var sb strings.Builder
	fmt.Fprintf(&sb, "clock { name = %q;", c.Name)
	if c.HasUUID {
		fmt.Fprintf(&sb, " uuid = %q;", c.UUID.String())
	}
	fmt.Fprintf(&sb, " description = %q; freq = %d; offset = %d; }",
		c.Description, c.FrequencyHz, c.Offset)
	return e.emit(sb.String())
}

// EmitStreamClass appends one `stream { ... };` fragment. The event header
// and packet context sub-types are rendered with the stream's own default
// clock class name propagated in, so that a DEFAULT_CLOCK_TIMESTAMP role
// inside either resolves to `map = clock.<name>.value;`. The event context
// type does not receive the default clock, per this format's own convention.
func (e *Emitter) EmitStreamClass(s *trace.StreamClass, abi trace.ABI) error {
	var sb strings.Builder
	fmt.Fprintf(&sb, "stream { id = %d;", s.ID)
	if s.EventHeaderType != nil {
		fv := newFieldVisitor(&sb, abi, s.DefaultClockClassName, e.cache)
		sb.WriteString(" event.header := ")
		sb.WriteString(fv.renderStructure(s.EventHeaderType))
		sb.WriteString(";")
	}
	if s.PacketContextType != nil {
		fv := newFieldVisitor(&sb, abi, s.DefaultClockClassName, e.cache)
		sb.WriteString(" packet.context := ")
		sb.WriteString(fv.renderStructure(s.PacketContextType))
		sb.WriteString(";")
	}
	if s.EventContextType != nil {
		fv := newFieldVisitor(&sb, abi, "", e.cache)
		sb.WriteString(" event.context := ")
		sb.WriteString(fv.renderStructure(s.EventContextType))
		sb.WriteString(";")
	}
	sb.WriteString(" }")
	return e.emit(sb.String())
}

// EmitEventClass appends one `event { ... };` fragment.
func (e *Emitter) EmitEventClass(ev *trace.EventClass, abi trace.ABI) error {
	var sb strings.Builder
	fmt.Fprintf(&sb, "event { name = %q; id = %d; stream_id = %d; loglevel = %d;",
		ev.Name, ev.ID, ev.StreamClassID, ev.LogLevel)
	if ev.HasEMFURI {
		fmt.Fprintf(&sb, " model.emf.uri = %q;", ev.EMFURI)
	}
	if ev.Payload != nil {
		fv := newFieldVisitor(&sb, abi, "", e.cache)
		sb.WriteString(" fields := ")
		sb.WriteString(fv.renderStructure(ev.Payload))
		sb.WriteString(";")
	}
	sb.WriteString(" }")
	return e.emit(sb.String())
}

// EmitTrace walks t in the canonical order (trace, env, clocks, streams and
// their event classes) and appends every resulting fragment. It is the
// one-shot equivalent of calling the Emit* methods individually while
// driving the walk by hand, used to produce a trace's initial metadata blob;
// later-registered event/stream classes are emitted incrementally via the
// individual Emit* methods instead of a second full walk.
func (e *Emitter) EmitTrace(t *trace.TraceClass) error {
	e.pendingEnv = nil
	e.envFlushed = false
	t.Accept(e)
	// A trace with no clock classes and no stream classes never hits either
	// of the flush call sites below, but env{} must still be emitted: it is
	// a property of the trace itself, not conditioned on what else the trace
	// declares.
	e.flushEnvIfNeeded()
	return e.err
}

// The following methods implement trace.TraceClassVisitor so that EmitTrace
// can drive the walk through TraceClass.Accept. Any error encountered is
// stashed in e.err and surfaces once the walk completes; Accept itself has no
// error return, matching the pure-data visitor protocol package trace
// defines.
var _ trace.TraceClassVisitor = (*Emitter)(nil)

func (e *Emitter) OnTraceClass(t *trace.TraceClass) {
	if e.err != nil {
		return
	}
	e.traceABI = t.ABI
	e.err = e.EmitTraceClass(t)
}

func (e *Emitter) OnEnvironment(key string, value trace.EnvValue) {
	if e.err != nil {
		return
	}
	e.pendingEnv = append(e.pendingEnv, trace.EnvEntry{Key: key, Value: value})
}

func (e *Emitter) flushEnvIfNeeded() {
	if e.envFlushed || e.err != nil {
		return
	}
	e.envFlushed = true
	e.err = e.emitEnvironment(e.pendingEnv)
}

func (e *Emitter) OnClockClass(c *trace.ClockClass) {
	e.flushEnvIfNeeded()
	if e.err != nil {
		return
	}
	e.err = e.EmitClockClass(c)
}

func (e *Emitter) OnStreamClass(s *trace.StreamClass) {
	e.flushEnvIfNeeded()
	if e.err != nil {
		return
	}
	e.err = e.EmitStreamClass(s, e.traceABI)
}

func (e *Emitter) OnEventClass(ev *trace.EventClass) {
	if e.err != nil {
		return
	}
	e.err = e.EmitEventClass(ev, e.traceABI)
}
