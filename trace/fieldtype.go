// Copyright The LTTng Authors
// SPDX-License-Identifier: Apache-2.0

package trace

import "fmt"

// NumericBase is the base an Integer or Enum's underlying integer is rendered in.
type NumericBase uint8

const (
	BaseBinary NumericBase = iota
	BaseOctal
	BaseDecimal
	BaseHex
)

// StringEncoding is the character encoding carried by a string-like FieldType.
type StringEncoding uint8

const (
	EncodingASCII StringEncoding = iota
	EncodingUTF8
)

// FieldLocation is a path of field names, relative to a well-known scope (the
// enclosing structure, or one of the named scopes a dynamic-length type is
// allowed to reach into), identifying the field that carries a dynamic array's
// length or a variant's tag.
//
// The model keeps the full path even though the current emitter (package tsdl)
// only ever resolves the last component, so that a future multi-component scope
// resolver has something to extend without a FieldType model change.
type FieldLocation []string

func (l FieldLocation) validate() error {
	if len(l) == 0 {
		return fmt.Errorf("%w: empty location path", ErrInvalidLocation)
	}
	for _, component := range l {
		if component == "" {
			return fmt.Errorf("%w: empty path component", ErrInvalidLocation)
		}
	}
	return nil
}

// Last returns the final component of the path, the only one the emitter
// currently resolves.
func (l FieldLocation) Last() string {
	return l[len(l)-1]
}

// FieldType is the closed sum type of every field-type variant the trace object
// model supports. It is implemented only by the concrete types in this package;
// the unexported marker method prevents other packages from adding variants
// FieldTypeVisitor does not know how to handle.
type FieldType interface {
	isFieldType()
}

// Integer is an N-bit, signed or unsigned, fixed-width integer field.
type Integer struct {
	SizeBits  uint32
	Alignment uint32
	Signed    bool
	Base      NumericBase
	ByteOrder ByteOrder
	Roles     []IntegerRole
}

func (*Integer) isFieldType() {}

// Float is an IEEE-754-shaped floating point field, with mantissa/exponent
// widths given explicitly rather than assumed from a fixed C type.
type Float struct {
	Alignment      uint32
	MantissaDigits uint32
	ExponentDigits uint32
	ByteOrder      ByteOrder
}

func (*Float) isFieldType() {}

// EnumMapping is one (name, inclusive range) pair of an Enum. Ranges may overlap
// between mappings; mapping order is preserved and emitted in that order.
type EnumMapping struct {
	Name  string
	Begin int64
	End   int64
}

// SignedEnum is an enumeration over a signed Integer.
type SignedEnum struct {
	Underlying Integer
	Mappings   []EnumMapping
}

func (*SignedEnum) isFieldType() {}

// UnsignedEnum is an enumeration over an unsigned Integer.
type UnsignedEnum struct {
	Underlying Integer
	Mappings   []EnumMapping
}

func (*UnsignedEnum) isFieldType() {}

// StaticArray is a fixed-length, fixed-element-type array.
type StaticArray struct {
	Element   FieldType
	Length    uint32
	Alignment uint32
}

func (*StaticArray) isFieldType() {}

// DynamicArray is a variable-length array whose element count is read from
// another field at emission time, named by LengthLocation.
type DynamicArray struct {
	Element        FieldType
	LengthLocation FieldLocation
	Alignment      uint32
}

func (*DynamicArray) isFieldType() {}

// StaticBlob is a fixed-length opaque byte blob, emitted as an array of 8-bit
// unsigned hex integers.
type StaticBlob struct {
	Length    uint32
	Alignment uint32
}

func (*StaticBlob) isFieldType() {}

// DynamicBlob is a variable-length opaque byte blob.
type DynamicBlob struct {
	LengthLocation FieldLocation
	Alignment      uint32
}

func (*DynamicBlob) isFieldType() {}

// NullTerminatedString is a NUL-terminated byte string of unbounded length.
type NullTerminatedString struct {
	Encoding StringEncoding
}

func (*NullTerminatedString) isFieldType() {}

// StaticString is a fixed-length byte string.
type StaticString struct {
	Length   uint32
	Encoding StringEncoding
}

func (*StaticString) isFieldType() {}

// DynamicString is a variable-length byte string whose length is read from
// another field at emission time.
type DynamicString struct {
	LengthLocation FieldLocation
	Encoding       StringEncoding
}

func (*DynamicString) isFieldType() {}

// Structure is an ordered list of named Fields.
type Structure struct {
	Fields []Field
}

func (*Structure) isFieldType() {}

// VariantChoice is one (tag value name → FieldType) arm of a Variant.
type VariantChoice struct {
	TagName string
	Type    FieldType
}

// Variant is a tagged union: the concrete FieldType in effect is selected at
// emission time by the value of the field named by TagLocation. The spec
// expresses this as two generic variants, Variant<signed> and Variant<unsigned>,
// distinguished only by whether the tag field is a SignedEnum or an
// UnsignedEnum; both share the same shape (tag location + ordered choices), so
// this model uses one Variant type with a Signed discriminant instead of two
// structurally-identical generic instantiations (see DESIGN.md).
type Variant struct {
	TagLocation FieldLocation
	Signed      bool
	Choices     []VariantChoice
	Alignment   uint32
}

func (*Variant) isFieldType() {}

// Field pairs a name with its FieldType.
type Field struct {
	Name string
	Type FieldType
}
