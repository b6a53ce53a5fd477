// Copyright The LTTng Authors
// SPDX-License-Identifier: Apache-2.0

package trace

// TraceClassVisitor walks the trace object model's tree: a TraceClass, its
// environment, its clock classes, and its stream classes (and, transitively,
// each stream class's event classes). Implementations do not need to recurse
// themselves; Accept drives the walk.
type TraceClassVisitor interface {
	OnTraceClass(t *TraceClass)
	OnEnvironment(key string, value EnvValue)
	OnClockClass(c *ClockClass)
	OnStreamClass(s *StreamClass)
	OnEventClass(e *EventClass)
}

// Accept walks t in the order: trace class itself, environment entries, clock
// classes, then each stream class followed immediately by its event classes.
// This ordering matches what a TSDL document requires: environment before
// clocks (clocks may be referenced by name from event field roles, not from
// env), clocks before any stream that names one as its default, and each
// stream's own event classes emitted right after it.
func (t *TraceClass) Accept(v TraceClassVisitor) {
	v.OnTraceClass(t)
	for _, entry := range t.Environment {
		v.OnEnvironment(entry.Key, entry.Value)
	}
	for _, c := range t.clocks {
		v.OnClockClass(c)
	}
	for _, s := range t.streams {
		v.OnStreamClass(s)
		for _, e := range s.events {
			v.OnEventClass(e)
		}
	}
}

// FieldTypeVisitor has one method per FieldType variant. It is responsible for
// any ordering or indentation it needs when recursing into composite variants
// (Structure, StaticArray, DynamicArray, Variant) via their exported fields;
// FieldType values do no string emission themselves.
type FieldTypeVisitor interface {
	VisitInteger(*Integer)
	VisitFloat(*Float)
	VisitSignedEnum(*SignedEnum)
	VisitUnsignedEnum(*UnsignedEnum)
	VisitStaticArray(*StaticArray)
	VisitDynamicArray(*DynamicArray)
	VisitStaticBlob(*StaticBlob)
	VisitDynamicBlob(*DynamicBlob)
	VisitNullTerminatedString(*NullTerminatedString)
	VisitStaticString(*StaticString)
	VisitDynamicString(*DynamicString)
	VisitStructure(*Structure)
	VisitVariant(*Variant)
}

// Accept dispatches ft to the matching method of v. It panics on an unknown
// concrete type, which can only happen if a type outside this package
// implemented the unexported FieldType marker method, which is impossible from
// outside the package - the panic exists purely to fail loudly if this
// invariant is ever broken by a future edit to this file.
func Accept(ft FieldType, v FieldTypeVisitor) {
	switch t := ft.(type) {
	case *Integer:
		v.VisitInteger(t)
	case *Float:
		v.VisitFloat(t)
	case *SignedEnum:
		v.VisitSignedEnum(t)
	case *UnsignedEnum:
		v.VisitUnsignedEnum(t)
	case *StaticArray:
		v.VisitStaticArray(t)
	case *DynamicArray:
		v.VisitDynamicArray(t)
	case *StaticBlob:
		v.VisitStaticBlob(t)
	case *DynamicBlob:
		v.VisitDynamicBlob(t)
	case *NullTerminatedString:
		v.VisitNullTerminatedString(t)
	case *StaticString:
		v.VisitStaticString(t)
	case *DynamicString:
		v.VisitDynamicString(t)
	case *Structure:
		v.VisitStructure(t)
	case *Variant:
		v.VisitVariant(t)
	default:
		panic("trace: unknown FieldType implementation")
	}
}
