// Copyright The LTTng Authors
// SPDX-License-Identifier: Apache-2.0

package tsdl

import (
	"fmt"
	"strings"

	"go.lttng.org/relayd-core/trace"
)

// fieldVisitor implements trace.FieldTypeVisitor, driving the recursive
// lowering of a field-type tree into TSDL text. It carries the current
// indentation level, the trace ABI, the default-clock-class name propagated
// from the enclosing stream class, a stack of the field names currently being
// emitted, and whether identifier escaping is bypassed (inside a variant). The
// integer encoding override used while lowering a string field to a byte array
// is passed to integerFragment as a parameter rather than carried here.
type fieldVisitor struct {
	out   *strings.Builder
	abi   trace.ABI
	cache *identifierCache

	indent       int
	defaultClock string
	nameStack    []string
	bypassEscape bool
}

func newFieldVisitor(out *strings.Builder, abi trace.ABI, defaultClock string, cache *identifierCache) *fieldVisitor {
	return &fieldVisitor{out: out, abi: abi, defaultClock: defaultClock, cache: cache}
}

func baseValue(b trace.NumericBase) int {
	switch b {
	case trace.BaseBinary:
		return 2
	case trace.BaseOctal:
		return 8
	case trace.BaseHex:
		return 16
	default:
		return 10
	}
}

func encodingName(e trace.StringEncoding) string {
	if e == trace.EncodingUTF8 {
		return "UTF8"
	}
	return "ASCII"
}

func (fv *fieldVisitor) currentName() string {
	raw := fv.nameStack[len(fv.nameStack)-1]
	return fv.escapeOrRaw(raw)
}

func (fv *fieldVisitor) escapeOrRaw(name string) string {
	if fv.bypassEscape {
		return name
	}
	escaped, err := fv.cache.escape(name)
	if err != nil {
		// Every name reaching this point was already validated non-empty by
		// the trace package's constructors; this can only fire if that
		// invariant is broken elsewhere.
		panic(fmt.Sprintf("tsdl: %v", err))
	}
	return escaped
}

func (fv *fieldVisitor) writeIndentLine(line string) {
	fv.out.WriteString(strings.Repeat("\t", fv.indent))
	fv.out.WriteString(line)
	fv.out.WriteString("\n")
}

// emitLine writes one "<core> <name>;" struct-field line at the current
// indentation, using the name on top of the name stack.
func (fv *fieldVisitor) emitLine(core string) {
	fv.writeIndentLine(fmt.Sprintf("%s %s;", core, fv.currentName()))
}

// emitField pushes name, dispatches ft to the matching Visit method, and pops.
func (fv *fieldVisitor) emitField(name string, ft trace.FieldType) {
	fv.nameStack = append(fv.nameStack, name)
	trace.Accept(ft, fv)
	fv.nameStack = fv.nameStack[:len(fv.nameStack)-1]
}

// integerFragment renders an Integer's "integer { ... }" core text.
// forceExplicitBase is set only by the string-lowering path below, which
// always shows `base = 10;` even though decimal is Integer's own default -
// matching this format's literal byte-array-for-string convention rather than
// the generic omit-for-decimal rule that applies to tracer-declared fields.
func (fv *fieldVisitor) integerFragment(i *trace.Integer, forceExplicitBase bool, encodingOverride *trace.StringEncoding) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "integer { size = %d; align = %d;", i.SizeBits, i.Alignment)
	if i.Signed {
		sb.WriteString(" signed = true;")
	}
	if base := baseValue(i.Base); base != 10 || forceExplicitBase {
		fmt.Fprintf(&sb, " base = %d;", base)
	}
	if i.ByteOrder != fv.abi.ByteOrder {
		fmt.Fprintf(&sb, " byte_order = %s;", i.ByteOrder)
	}
	if encodingOverride != nil {
		fmt.Fprintf(&sb, " encoding = %s;", encodingName(*encodingOverride))
	}
	if fv.defaultClock != "" &&
		(i.HasRole(trace.RoleDefaultClockTimestamp) || i.HasRole(trace.RolePacketEndDefaultClockTimestamp)) {
		fmt.Fprintf(&sb, " map = clock.%s.value;", fv.defaultClock)
	}
	sb.WriteString(" }")
	return sb.String()
}

func (fv *fieldVisitor) floatFragment(f *trace.Float) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "floating_point { align = %d; mant_dig = %d; exp_dig = %d;",
		f.Alignment, f.MantissaDigits, f.ExponentDigits)
	if f.ByteOrder != fv.abi.ByteOrder {
		fmt.Fprintf(&sb, " byte_order = %s;", f.ByteOrder)
	}
	sb.WriteString(" }")
	return sb.String()
}

func (fv *fieldVisitor) enumFragment(underlying trace.Integer, mappings []trace.EnumMapping) string {
	var sb strings.Builder
	sb.WriteString("enum : ")
	sb.WriteString(fv.integerFragment(&underlying, false, nil))
	sb.WriteString(" { ")
	for idx, m := range mappings {
		if idx > 0 {
			sb.WriteString(", ")
		}
		if m.Begin == m.End {
			fmt.Fprintf(&sb, "%q = %d", m.Name, m.Begin)
		} else {
			fmt.Fprintf(&sb, "%q = %d ... %d", m.Name, m.Begin, m.End)
		}
	}
	sb.WriteString(" }")
	return sb.String()
}

// typeCore renders the "core" (name-less) text of ft, for use as an array or
// blob element type. Element types other than Integer/Float/Enum/Structure
// (arrays, blobs, strings, variants) are accepted by the trace constructors
// but are not rendered: they fall back to a marker comment rather than
// silently mis-rendering.
func (fv *fieldVisitor) typeCore(ft trace.FieldType) string {
	switch t := ft.(type) {
	case *trace.Integer:
		return fv.integerFragment(t, false, nil)
	case *trace.Float:
		return fv.floatFragment(t)
	case *trace.SignedEnum:
		return fv.enumFragment(t.Underlying, t.Mappings)
	case *trace.UnsignedEnum:
		return fv.enumFragment(t.Underlying, t.Mappings)
	case *trace.Structure:
		return fv.renderStructure(t)
	default:
		return fmt.Sprintf("/* %s: unsupported array element type %T */", ErrInvalidFieldType, t)
	}
}

func (fv *fieldVisitor) VisitInteger(i *trace.Integer) {
	fv.emitLine(fv.integerFragment(i, false, nil))
}

func (fv *fieldVisitor) VisitFloat(f *trace.Float) {
	fv.emitLine(fv.floatFragment(f))
}

func (fv *fieldVisitor) VisitSignedEnum(e *trace.SignedEnum) {
	fv.emitLine(fv.enumFragment(e.Underlying, e.Mappings))
}

func (fv *fieldVisitor) VisitUnsignedEnum(e *trace.UnsignedEnum) {
	fv.emitLine(fv.enumFragment(e.Underlying, e.Mappings))
}

func (fv *fieldVisitor) emitPaddingIfNeeded(alignment uint32, name string) {
	if alignment == 0 {
		return
	}
	fv.writeIndentLine(fmt.Sprintf("struct { } align(%d) %s_padding;", alignment, name))
}

func (fv *fieldVisitor) VisitStaticArray(a *trace.StaticArray) {
	name := fv.currentName()
	fv.emitPaddingIfNeeded(a.Alignment, name)
	core := fv.typeCore(a.Element)
	fv.writeIndentLine(fmt.Sprintf("%s %s[%d];", core, name, a.Length))
}

func (fv *fieldVisitor) VisitDynamicArray(a *trace.DynamicArray) {
	name := fv.currentName()
	fv.emitPaddingIfNeeded(a.Alignment, name)
	lengthName := fv.escapeOrRaw(a.LengthLocation.Last())
	core := fv.typeCore(a.Element)
	fv.writeIndentLine(fmt.Sprintf("%s %s[%s];", core, name, lengthName))
}

func (fv *fieldVisitor) blobByteInteger() trace.Integer {
	return trace.Integer{SizeBits: 8, Alignment: 8, Signed: false, Base: trace.BaseHex, ByteOrder: fv.abi.ByteOrder}
}

func (fv *fieldVisitor) VisitStaticBlob(b *trace.StaticBlob) {
	name := fv.currentName()
	fv.emitPaddingIfNeeded(b.Alignment, name)
	byteInt := fv.blobByteInteger()
	core := fv.integerFragment(&byteInt, false, nil)
	fv.writeIndentLine(fmt.Sprintf("%s %s[%d];", core, name, b.Length))
}

func (fv *fieldVisitor) VisitDynamicBlob(b *trace.DynamicBlob) {
	name := fv.currentName()
	fv.emitPaddingIfNeeded(b.Alignment, name)
	lengthName := fv.escapeOrRaw(b.LengthLocation.Last())
	byteInt := fv.blobByteInteger()
	core := fv.integerFragment(&byteInt, false, nil)
	fv.writeIndentLine(fmt.Sprintf("%s %s[%s];", core, name, lengthName))
}

// stringByteInteger builds the underlying byte-integer used to lower a
// bounded string into an array of bytes. base=10 is always shown explicitly
// here (forceExplicitBase), matching this format's literal convention for
// string-as-byte-array rendering.
func (fv *fieldVisitor) stringByteInteger() trace.Integer {
	return trace.Integer{SizeBits: 8, Alignment: 8, Signed: false, Base: trace.BaseDecimal, ByteOrder: fv.abi.ByteOrder}
}

func (fv *fieldVisitor) VisitNullTerminatedString(s *trace.NullTerminatedString) {
	if s.Encoding == trace.EncodingUTF8 {
		fv.emitLine("string")
		return
	}
	fv.emitLine("string { encoding = ASCII }")
}

func (fv *fieldVisitor) VisitStaticString(s *trace.StaticString) {
	name := fv.currentName()
	byteInt := fv.stringByteInteger()
	core := fv.integerFragment(&byteInt, true, &s.Encoding)
	fv.writeIndentLine(fmt.Sprintf("%s %s[%d];", core, name, s.Length))
}

func (fv *fieldVisitor) VisitDynamicString(s *trace.DynamicString) {
	name := fv.currentName()
	lengthName := fv.escapeOrRaw(s.LengthLocation.Last())
	byteInt := fv.stringByteInteger()
	core := fv.integerFragment(&byteInt, true, &s.Encoding)
	fv.writeIndentLine(fmt.Sprintf("%s %s[%s];", core, name, lengthName))
}

// renderStructure returns the multi-line "struct {\n\t...\n}" text for s,
// recursing with the indentation bumped by one level.
func (fv *fieldVisitor) renderStructure(s *trace.Structure) string {
	savedOut, savedIndent := fv.out, fv.indent

	var inner strings.Builder
	fv.out = &inner
	fv.indent = savedIndent + 1
	for _, f := range s.Fields {
		fv.emitField(f.Name, f.Type)
	}
	fv.out, fv.indent = savedOut, savedIndent

	var sb strings.Builder
	sb.WriteString("struct {\n")
	sb.WriteString(inner.String())
	sb.WriteString(strings.Repeat("\t", fv.indent))
	sb.WriteString("}")
	return sb.String()
}

func (fv *fieldVisitor) VisitStructure(s *trace.Structure) {
	fv.emitLine(fv.renderStructure(s))
}

func (fv *fieldVisitor) VisitVariant(v *trace.Variant) {
	name := fv.currentName()
	fv.emitPaddingIfNeeded(v.Alignment, name)

	tagName := fv.escapeOrRaw(v.TagLocation.Last())

	savedOut, savedIndent, savedBypass := fv.out, fv.indent, fv.bypassEscape
	var inner strings.Builder
	fv.out = &inner
	fv.indent = savedIndent + 1
	fv.bypassEscape = true
	for _, c := range v.Choices {
		fv.emitField(c.TagName, c.Type)
	}
	fv.out, fv.indent, fv.bypassEscape = savedOut, savedIndent, savedBypass

	var sb strings.Builder
	fmt.Fprintf(&sb, "variant %s {\n", tagName)
	sb.WriteString(inner.String())
	sb.WriteString(strings.Repeat("\t", fv.indent))
	sb.WriteString("}")
	fv.emitLine(sb.String())
}
